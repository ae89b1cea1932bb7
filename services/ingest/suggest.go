package ingest

import (
	"sort"
	"strings"

	"calouros-backend/lib/lookup"
	"calouros-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// CourseSuggestion pairs an unresolved course key with the most similar
// key known to the course->units table, to help table curation.
type CourseSuggestion struct {
	Key        string  `json:"key"`
	Nearest    string  `json:"nearest,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
}

// UnresolvedReport lists what the lookup tables failed to classify in a
// batch: course keys with no unit mapping, and first names with no
// gender mapping.
type UnresolvedReport struct {
	Courses []CourseSuggestion `json:"courses,omitempty"`
	Names   []string           `json:"names,omitempty"`
}

func ReportUnresolved(records []Record, tables lookup.Tables) UnresolvedReport {
	var report UnresolvedReport

	courseKeys := map[string]bool{}
	nameTokens := map[string]bool{}
	for _, r := range records {
		if r.Unit == "" && r.City == "" {
			courseKeys[textutil.CollapseWhitespace(LookupKey(r.Course))] = true
		}
		if r.Gender == GenderUnknown {
			if first := strings.ToUpper(textutil.FirstToken(r.Name)); first != "" {
				nameTokens[first] = true
			}
		}
	}

	for key := range courseKeys {
		nearest, similarity := nearestCourseKey(key, tables)
		report.Courses = append(report.Courses, CourseSuggestion{
			Key:        key,
			Nearest:    nearest,
			Similarity: similarity,
		})
	}
	sort.Slice(report.Courses, func(i, j int) bool {
		return report.Courses[i].Key < report.Courses[j].Key
	})

	for name := range nameTokens {
		report.Names = append(report.Names, name)
	}
	sort.Strings(report.Names)

	return report
}

func nearestCourseKey(key string, tables lookup.Tables) (string, float64) {
	var best string
	var bestSimilarity float64
	for known := range tables.CourseUnits {
		similarity := matchr.JaroWinkler(key, known, false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = known
		}
	}
	return best, bestSimilarity
}
