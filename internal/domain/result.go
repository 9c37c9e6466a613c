package domain

import "time"

// RunRecord summarises one harness run
type RunRecord struct {
	ID          string        `json:"id"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	Files       int           `json:"files"`
	FilesPassed int           `json:"files_passed"`
	CasesPassed int           `json:"cases_passed"`
	Workers     int           `json:"workers"`
	Passed      bool          `json:"passed"`
	Failure     *Failure      `json:"failure,omitempty"` // Set when the run stopped early
}

// TotalCases counts the cases across files
func TotalCases(files []*TestFile) int {
	total := 0
	for _, f := range files {
		total += len(f.Cases)
	}
	return total
}
