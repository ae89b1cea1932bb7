package ingest

import (
	"testing"

	"calouros-backend/lib/mirror"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRemoteRows(t *testing.T) {
	records := []Record{
		{
			Enrollment:  "1",
			Name:        "Abel Macedo",
			Course:      "Matemática - Licenciatura (N)",
			CleanCourse: "Matematica",
			City:        "Campinas",
			Unit:        "IMECC",
			Call:        2,
			Institution: "unicamp",
			Gender:      GenderMale,
			Quota:       "(***)",
			Reassigned:  true,
		},
		// unresolved city, the remote table requires one
		{Enrollment: "2", Name: "Maria Souza", CleanCourse: "Pedagogia", Gender: GenderFemale},
		// no enrollment id
		{Name: "Jose Pereira", CleanCourse: "Medicina", City: "Limeira"},
		// falls back to the raw course when the clean one is empty
		{Enrollment: "4", Name: "Ana Lima", Course: "Dança", City: "Campinas", Gender: GenderUnknown},
	}

	rows, skipped := RemoteRows(records)
	require.Equal(t, 2, skipped)
	require.Len(t, rows, 2)

	want := mirror.Row{
		Inscricao:  "1",
		Name:       "Abel Macedo",
		Course:     "Matematica",
		University: "unicamp",
		Cidade:     "Campinas",
		Unidade:    "IMECC",
		Chamada:    2,
		Genero:     "male",
		Cota:       "(***)",
		Remanejado: true,
	}
	require.Empty(t, cmp.Diff(want, rows[0]))

	require.Equal(t, "Dança", rows[1].Course)
	require.Equal(t, "other", rows[1].Genero)
}

func TestRemoteRowsLastWriteWins(t *testing.T) {
	records := []Record{
		{Enrollment: "1", Name: "Abel Macedo", CleanCourse: "Matematica", City: "Campinas", Gender: GenderMale},
		{Enrollment: "2", Name: "Maria Souza", CleanCourse: "Pedagogia", City: "Campinas", Gender: GenderFemale},
		{Enrollment: "1", Name: "Abel Macedo", CleanCourse: "Fisica", City: "Campinas", Gender: GenderMale},
	}

	rows, skipped := RemoteRows(records)
	require.Equal(t, 0, skipped)
	require.Len(t, rows, 2)

	// the later occurrence replaces the earlier one in place
	require.Equal(t, "1", rows[0].Inscricao)
	require.Equal(t, "Fisica", rows[0].Course)
	require.Equal(t, "2", rows[1].Inscricao)
}

func TestRemoteRowsEmpty(t *testing.T) {
	rows, skipped := RemoteRows(nil)
	require.Empty(t, rows)
	require.Equal(t, 0, skipped)
}
