package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReportUnresolved(t *testing.T) {
	tables := testTables()
	records := []Record{
		// resolved on both axes, contributes nothing
		{Name: "Abel Macedo", Course: "Ciências Biológicas", Unit: "IB", City: "Campinas", Gender: GenderMale},
		// near-miss course key, should suggest the curated one
		{Name: "Maria Souza", Course: "Ciências Biologicas", Gender: GenderFemale},
		// duplicate unresolved key, reported once
		{Name: "Abel Junior", Course: "Ciências Biologicas", Gender: GenderMale},
		{Name: "Zyx Unknown", Course: "Medicina", Unit: "FCM-LIMEIRA", Gender: GenderUnknown},
		{Name: "Zyx Other", Course: "Medicina", Unit: "FCM-LIMEIRA", Gender: GenderUnknown},
	}

	report := ReportUnresolved(records, tables)

	require.Len(t, report.Courses, 1)
	require.Equal(t, "Ciências Biologicas", report.Courses[0].Key)
	require.Equal(t, "Ciências Biológicas", report.Courses[0].Nearest)
	require.Greater(t, report.Courses[0].Similarity, 0.9)

	require.Equal(t, []string{"ZYX"}, report.Names)
}

func TestReportUnresolvedNothing(t *testing.T) {
	report := ReportUnresolved([]Record{
		{Name: "Abel Macedo", Course: "Medicina", Unit: "FCM-LIMEIRA", Gender: GenderMale},
	}, testTables())
	require.Empty(t, report.Courses)
	require.Empty(t, report.Names)
}
