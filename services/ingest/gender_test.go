package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyGender(t *testing.T) {
	genders := map[string]string{
		"ABEL":  GenderMale,
		"MARIA": GenderFemale,
		"JOAO":  GenderMale,
	}

	require.Equal(t, GenderMale, ClassifyGender("Abel Rapha de Jesus Macedo", genders))
	require.Equal(t, GenderFemale, ClassifyGender("maria Clara Souza", genders))

	// punctuated first names retry with non-letters stripped
	require.Equal(t, GenderMale, ClassifyGender("Joao, Pedro", genders))

	require.Equal(t, GenderUnknown, ClassifyGender("Zyx Unknown", genders))
	require.Equal(t, GenderUnknown, ClassifyGender("", genders))
	require.Equal(t, GenderUnknown, ClassifyGender("   ", genders))
	require.Equal(t, GenderUnknown, ClassifyGender("Abel", nil))
}
