package ingest

import (
	"fmt"
	"testing"

	"calouros-backend/lib/textutil"

	"github.com/stretchr/testify/require"
)

func TestExtractRecords(t *testing.T) {
	raw := `
(241498191) Abel Rapha de Jesus Macedo (***)   Matematica - Licenciatura (N)

(241498192) Maria  Clara Souza   Ciencias Biologicas (D)
(241498193) Jose Pereira   Pedagogia REMANEJADO (N)
`
	candidates, report := ExtractRecords(raw, 2, "unicamp")

	require.Equal(t, 3, report.Lines)
	require.Equal(t, 3, report.Parsed)
	require.Equal(t, 0, report.Failed())
	require.Len(t, candidates, 3)

	abel := candidates[0]
	require.Equal(t, "241498191", abel.Enrollment)
	require.Equal(t, "Abel Rapha de Jesus Macedo", abel.Name)
	require.Equal(t, "(***)", abel.Quota)
	require.Equal(t, "Matematica - Licenciatura (N)", abel.RawCourse)
	require.Equal(t, 2, abel.Call)
	require.Equal(t, "unicamp", abel.Institution)

	// internal double spaces survive in the name, collapse in the course
	require.Equal(t, "Maria  Clara Souza", candidates[1].Name)
	require.Equal(t, "Ciencias Biologicas (D)", candidates[1].RawCourse)
	require.Equal(t, "", candidates[1].Quota)

	require.Equal(t, "Pedagogia REMANEJADO (N)", candidates[2].RawCourse)
}

func TestExtractRecordsBadLines(t *testing.T) {
	raw := "(241498191) Abel Macedo   Matematica\n" +
		"no id on this line   Matematica\n" +
		"(241498192) Name And Course Glued Together\n" +
		"(241498193) Only A Name And The Separator     \n"
	candidates, report := ExtractRecords(raw, 1, "unicamp")

	require.Len(t, candidates, 1)
	require.Equal(t, 4, report.Lines)
	require.Equal(t, 1, report.Parsed)
	require.Equal(t, 3, report.Failed())

	reasons := map[FailureReason]int{}
	for _, f := range report.Failures {
		reasons[f.Reason]++
		require.NotEmpty(t, f.Text)
		require.Greater(t, f.Line, 1)
	}
	require.Equal(t, 2, reasons[FailureBadGrammar])
	require.Equal(t, 1, reasons[FailureEmptyCourse])
}

func TestExtractRecordsEmptyInput(t *testing.T) {
	candidates, report := ExtractRecords("\n\n   \n", 1, "unicamp")
	require.Empty(t, candidates)
	require.Equal(t, 0, report.Lines)
	require.Equal(t, 0, report.Failed())
}

// the captured fields reconstruct the original line content, modulo
// whitespace collapsing
func TestExtractRecordsReserialize(t *testing.T) {
	lines := []string{
		"(241498191) Abel Rapha de Jesus Macedo (***)   Matematica - Licenciatura (N)",
		"(100) Fulano de Tal   Pedagogia",
		"(200) Maria  Souza (*)    Ciências  Biológicas",
	}
	for _, line := range lines {
		candidates, report := ExtractRecords(line, 1, "unicamp")
		require.Len(t, candidates, 1, "line: %q", line)
		require.Equal(t, 0, report.Failed())

		c := candidates[0]
		rebuilt := fmt.Sprintf("(%s) %s %s %s", c.Enrollment, c.Name, c.Quota, c.RawCourse)
		require.Equal(t,
			textutil.CollapseWhitespace(line),
			textutil.CollapseWhitespace(rebuilt),
		)
	}
}

func TestExtractClassifyEndToEnd(t *testing.T) {
	line := "(241498191) Abel Rapha de Jesus Macedo (***)   Matematica - Licenciatura (N)"
	candidates, _ := ExtractRecords(line, 1, "unicamp")
	require.Len(t, candidates, 1)

	records := Classify(candidates, testTables())
	rec := records[0]
	require.Equal(t, "241498191", rec.Enrollment)
	require.Equal(t, "Abel Rapha de Jesus Macedo", rec.Name)
	require.Equal(t, "(***)", rec.Quota)
	require.Equal(t, "Matematica", rec.CleanCourse)
	require.Equal(t, 1, rec.Call)
	require.False(t, rec.Reassigned)
}

func TestSplitQuota(t *testing.T) {
	name, quota := splitQuota("Abel Macedo (***)")
	require.Equal(t, "Abel Macedo", name)
	require.Equal(t, "(***)", quota)

	name, quota = splitQuota("Abel Macedo (* *)")
	require.Equal(t, "Abel Macedo", name)
	require.Equal(t, "(* *)", quota)

	// ordinary parentheticals are not quota markers
	name, quota = splitQuota("Abel Macedo (Junior)")
	require.Equal(t, "Abel Macedo (Junior)", name)
	require.Equal(t, "", quota)
}
