package ingest

import (
	"strings"

	"calouros-backend/lib/lookup"
	"calouros-backend/lib/textutil"
)

// ResolveCampus maps a raw course to its unit and city. The key is
// looked up verbatim, then with internal whitespace collapsed to defend
// against incidental double-spacing in the source. On a multi-unit hit
// the first unit wins, the list order encodes curation priority. A unit
// missing from the city table resolves to (unit, "").
func ResolveCampus(rawCourse string, tables lookup.Tables) (unit, city string) {
	key := LookupKey(rawCourse)
	units, ok := tables.CourseUnits[key]
	if !ok {
		units, ok = tables.CourseUnits[textutil.CollapseWhitespace(key)]
	}
	if !ok || len(units) == 0 {
		return "", ""
	}
	unit = units[0]
	return unit, tables.UnitCities[unit]
}

// Classify derives an immutable record from every candidate.
func Classify(candidates []Candidate, tables lookup.Tables) []Record {
	records := make([]Record, len(candidates))
	for i, c := range candidates {
		unit, city := ResolveCampus(c.RawCourse, tables)
		records[i] = Record{
			Enrollment:  c.Enrollment,
			Name:        c.Name,
			Course:      c.RawCourse,
			CleanCourse: CleanCourse(c.RawCourse),
			City:        city,
			Unit:        unit,
			Call:        c.Call,
			Institution: c.Institution,
			Gender:      ClassifyGender(c.Name, tables.Genders),
			Quota:       c.Quota,
			Reassigned:  strings.Contains(c.RawCourse, ReassignedMarker),
		}
	}
	return records
}
