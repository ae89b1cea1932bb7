package ingest

import (
	"testing"

	"calouros-backend/lib/callstore"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	records := []Record{
		{Enrollment: "1", Gender: GenderMale, City: "Campinas", Quota: "(*)"},
		{Enrollment: "2", Gender: GenderFemale, City: "Campinas"},
		{Enrollment: "3", Gender: GenderFemale, City: "Limeira", Quota: "(*)"},
		{Enrollment: "4", Gender: GenderUnknown},
	}

	got := Summarize(records)
	want := Summary{
		Total: 4,
		ByGender: map[string]int{
			GenderMale:    1,
			GenderFemale:  2,
			GenderUnknown: 1,
		},
		ByCity: map[string]int{
			"Campinas":              2,
			"Limeira":               1,
			callstore.Indeterminate: 1,
		},
		ByQuota: map[string]int{
			"(*)":   2,
			NoQuota: 2,
		},
	}
	require.Empty(t, cmp.Diff(want, got))
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	require.Equal(t, 0, got.Total)
	require.Empty(t, got.ByGender)
	require.Empty(t, got.ByCity)
	require.Empty(t, got.ByQuota)
}
