// Package ingest implements the admission-call pipeline: raw listing
// text is extracted into candidate records, classified by gender and
// campus city, normalized, staged for review, and merged into the
// per-call and per-city stores on confirmation.
package ingest

// Candidate is one extracted listing line, prior to classification.
type Candidate struct {
	Enrollment  string
	Name        string
	RawCourse   string
	// quota-tier annotation, e.g. "(***)"; empty when absent
	Quota       string
	Call        int
	Institution string
}

// Record is a fully classified candidate. Records are derived once and
// never mutated afterwards.
type Record struct {
	Enrollment  string `json:"inscricao"`
	Name        string `json:"nome"`
	Course      string `json:"curso"`
	CleanCourse string `json:"curso_limpo"`
	City        string `json:"cidade"`
	Unit        string `json:"unidade"`
	Call        int    `json:"chamada"`
	Institution string `json:"universidade"`
	Gender      string `json:"genero"`
	Quota       string `json:"cota"`
	Reassigned  bool   `json:"remanejado"`
}
