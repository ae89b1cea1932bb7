package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanCourse(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want string
	}{
		{"Matemática - Licenciatura (N)", "Matematica"},
		{"Pedagogia REMANEJADO (N)", "Pedagogia"},
		{"Ciências Biológicas", "Ciencias Biologicas"},
		{"Física - licenciatura", "Fisica"},
		{"Engenharia de Computação (I)", "Engenharia de Computacao"},
		{"", ""},
	} {
		require.Equal(t, tc.want, CleanCourse(tc.raw), "raw: %q", tc.raw)
	}
}

func TestCleanCourseIdempotent(t *testing.T) {
	once := CleanCourse("Matemática - Licenciatura (N) REMANEJADO")
	require.Equal(t, once, CleanCourse(once))
}

// the shift marker must come off before the licenciatura suffix is
// anchored at the end of the string; running the steps out of order
// leaves the suffix behind
func TestCleanCourseStepOrder(t *testing.T) {
	raw := "Matemática - Licenciatura (N)"

	outOfOrder := StripLicenciaturaSuffix(raw)
	outOfOrder = StripShiftMarker(outOfOrder)
	require.Equal(t, "Matemática - Licenciatura", outOfOrder)

	require.Equal(t, "Matematica", CleanCourse(raw))
}

func TestLookupKeyKeepsShiftMarker(t *testing.T) {
	require.Equal(t, "Pedagogia (N)", LookupKey("Pedagogia REMANEJADO (N)"))
	require.Equal(t, "Matemática - Licenciatura (N)", LookupKey("Matemática - Licenciatura (N)"))
}

func TestStripReassignment(t *testing.T) {
	require.Equal(t, "Pedagogia (N)", StripReassignment("Pedagogia REMANEJADO (N)"))
	require.Equal(t, "Pedagogia", StripReassignment("REMANEJADO Pedagogia"))
	// only the whole word is a marker
	require.Equal(t, "REMANEJADOS", StripReassignment("REMANEJADOS"))
}

func TestStripShiftMarker(t *testing.T) {
	require.Equal(t, "Pedagogia", StripShiftMarker("Pedagogia (N)"))
	// only a trailing parenthetical is a shift marker
	require.Equal(t, "Musica (Canto) Popular", StripShiftMarker("Musica (Canto) Popular"))
	require.Equal(t, "Pedagogia", StripShiftMarker("Pedagogia"))
}
