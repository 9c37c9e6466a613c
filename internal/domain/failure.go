package domain

// FailureKind classifies why a run stopped
type FailureKind string

const (
	KindMalformedSpec      FailureKind = "malformed_spec"
	KindExecutionError     FailureKind = "execution_error"
	KindComparisonMismatch FailureKind = "comparison_mismatch"
	KindBuildFailure       FailureKind = "build_failure"
)

// Failure is the diagnostic for the case (or step) that halted a run
type Failure struct {
	Kind        FailureKind `json:"kind"`
	File        string      `json:"file,omitempty"`
	Line        int         `json:"line,omitempty"`
	Query       string      `json:"query,omitempty"`
	Expected    string      `json:"expected,omitempty"`
	Actual      string      `json:"actual,omitempty"`
	Message     string      `json:"message,omitempty"`
	CompareMode string      `json:"compare_mode,omitempty"` // Comparator mode of a mismatch, empty means strict
}
