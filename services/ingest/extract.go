package ingest

import (
	"regexp"
	"strings"
	"unicode"

	"calouros-backend/lib/textutil"
)

// a listing line looks like:
//
//	(241498191) Abel Rapha de Jesus Macedo (***)   Matematica - Licenciatura (N)
//
// the id sits in parentheses at line start and the only reliable
// separator between the name segment and the course segment is a run of
// three or more spaces, since both segments may contain single and
// double spaces internally.
var lineRegex = regexp.MustCompile(`^\((\d+)\)\s*(.*?)\s{3,}(.*)$`)

// a trailing parenthetical of asterisks and whitespace on the name
// segment marks a quota tier, e.g. " (*)" or " (***)"
var quotaRegex = regexp.MustCompile(`(\([\*\s]+\))\s*$`)

type FailureReason string

const (
	// the line did not match the listing grammar
	FailureBadGrammar FailureReason = "bad_grammar"
	// the course segment was blank after whitespace collapsing
	FailureEmptyCourse FailureReason = "empty_course"
)

type LineFailure struct {
	Line   int           `json:"line"`
	Text   string        `json:"text"`
	Reason FailureReason `json:"reason"`
}

// ExtractReport accounts for every non-empty line of a listing. Empty
// lines are skipped silently and appear in no counter.
type ExtractReport struct {
	Lines    int           `json:"lines"`
	Parsed   int           `json:"parsed"`
	Failures []LineFailure `json:"failures,omitempty"`
}

func (r ExtractReport) Failed() int {
	return len(r.Failures)
}

// ExtractRecords tokenizes a raw listing blob into candidate records.
// A bad line never aborts the batch: it is reported as a typed failure
// and extraction moves on.
func ExtractRecords(raw string, call int, institution string) ([]Candidate, ExtractReport) {
	var candidates []Candidate
	var report ExtractReport

	for i, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		report.Lines++

		// keep trailing whitespace: a line that is all name and
		// separator must fail as an empty course, not as bad grammar
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
		groups := lineRegex.FindStringSubmatch(line)
		if groups == nil {
			report.Failures = append(report.Failures, LineFailure{
				Line:   i + 1,
				Text:   line,
				Reason: FailureBadGrammar,
			})
			continue
		}

		name, quota := splitQuota(strings.TrimSpace(groups[2]))
		course := textutil.CollapseWhitespace(groups[3])
		if course == "" {
			report.Failures = append(report.Failures, LineFailure{
				Line:   i + 1,
				Text:   line,
				Reason: FailureEmptyCourse,
			})
			continue
		}

		candidates = append(candidates, Candidate{
			Enrollment:  groups[1],
			Name:        name,
			RawCourse:   course,
			Quota:       quota,
			Call:        call,
			Institution: institution,
		})
		report.Parsed++
	}

	return candidates, report
}

// splitQuota strips a trailing quota marker off the name segment and
// returns both parts. The quota is empty when absent.
func splitQuota(namePart string) (name, quota string) {
	loc := quotaRegex.FindStringIndex(namePart)
	if loc == nil {
		return namePart, ""
	}
	return strings.TrimSpace(namePart[:loc[0]]), strings.TrimSpace(namePart[loc[0]:loc[1]])
}
