package ingest

import (
	"regexp"
	"strings"

	"calouros-backend/lib/textutil"
)

// ReassignedMarker flags a candidate moved from their original course
// offer. It shows up verbatim inside the raw course segment.
const ReassignedMarker = "REMANEJADO"

// Step is one named course-name transformation.
type Step struct {
	Name  string
	Apply func(string) string
}

// CourseSteps is the canonical cleaning sequence for the stored course
// name. The order is a contract: the shift marker must be removed
// before the licenciatura suffix reaches the end of the string, and
// accents go last.
var CourseSteps = []Step{
	{Name: "strip_reassignment", Apply: StripReassignment},
	{Name: "strip_shift_marker", Apply: StripShiftMarker},
	{Name: "strip_licenciatura", Apply: StripLicenciaturaSuffix},
	{Name: "strip_accents", Apply: textutil.StripAccents},
}

// CleanCourse runs the full canonical sequence. Idempotent.
func CleanCourse(raw string) string {
	out := raw
	for _, step := range CourseSteps {
		out = step.Apply(out)
	}
	return out
}

// LookupKey derives the campus-lookup key: only the reassignment marker
// is stripped. The shift marker stays on, the course->units table is
// curated with it, so this key deliberately differs from CleanCourse.
func LookupKey(raw string) string {
	return StripReassignment(raw)
}

var reassignedRegex = regexp.MustCompile(`\s*\bREMANEJADO\b`)

func StripReassignment(course string) string {
	return strings.TrimSpace(reassignedRegex.ReplaceAllString(course, ""))
}

var shiftRegex = regexp.MustCompile(`\s*\([^)]+\)\s*$`)

// StripShiftMarker drops a trailing parenthetical shift annotation,
// e.g. "Pedagogia (N)" -> "Pedagogia".
func StripShiftMarker(course string) string {
	return strings.TrimSpace(shiftRegex.ReplaceAllString(course, ""))
}

var licenciaturaRegex = regexp.MustCompile(`(?i)\s*-\s*Licenciatura\s*$`)

// StripLicenciaturaSuffix drops a trailing "- Licenciatura" degree
// suffix, case-insensitively.
func StripLicenciaturaSuffix(course string) string {
	return strings.TrimSpace(licenciaturaRegex.ReplaceAllString(course, ""))
}
