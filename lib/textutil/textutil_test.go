package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "Ciencias Biologicas", CollapseWhitespace("  Ciencias \t Biologicas "))
	require.Equal(t, "", CollapseWhitespace("   "))
	require.Equal(t, "", CollapseWhitespace(""))
}

func TestStripAccents(t *testing.T) {
	require.Equal(t, "Ciencia da Computacao", StripAccents("Ciência da Computação"))
	require.Equal(t, "Musica", StripAccents("Música"))
	require.Equal(t, "Pedagogia", StripAccents("Pedagogia"))
	require.Equal(t, "", StripAccents(""))
}

func TestFirstToken(t *testing.T) {
	require.Equal(t, "Abel", FirstToken("Abel Rapha de Jesus Macedo"))
	require.Equal(t, "", FirstToken("  "))
}
