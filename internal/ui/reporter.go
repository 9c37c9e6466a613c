package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"qtr/internal/compare"
	"qtr/internal/domain"
)

// Reporter receives progress from the runner as it happens. Implementations
// write through immediately since the process may exit right after a failure.
type Reporter interface {
	AnnounceFile(name string)
	CasePassed()
	ReportFailure(failure domain.Failure)
	Finish(record *domain.RunRecord)
}

// ConsoleReporter prints a line per file and a dot per passed case
type ConsoleReporter struct {
	out    io.Writer
	inFile bool
}

// NewConsoleReporter creates a ConsoleReporter writing to out
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// AnnounceFile ends the previous file's progress line and names the next file
func (r *ConsoleReporter) AnnounceFile(name string) {
	if r.inFile {
		fmt.Fprintln(r.out)
	}
	color.New(color.FgCyan).Fprintf(r.out, "Running %s\n", name)
	r.inFile = true
}

// CasePassed appends a dot without a line break
func (r *ConsoleReporter) CasePassed() {
	color.New(color.FgGreen).Fprint(r.out, ".")
}

// ReportFailure prints the query with the expected and actual blocks
func (r *ConsoleReporter) ReportFailure(failure domain.Failure) {
	r.inFile = false
	fmt.Fprintln(r.out)
	WriteFailure(r.out, failure)
}

// Finish closes the progress line and prints a one-line summary
func (r *ConsoleReporter) Finish(record *domain.RunRecord) {
	if r.inFile {
		fmt.Fprintln(r.out)
		r.inFile = false
	}
	fmt.Fprintln(r.out)
	WriteSummaryLine(r.out, record)
}

// WriteFailure renders the diagnostic for a failure
func WriteFailure(w io.Writer, failure domain.Failure) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)

	red.Fprintln(w, "ERROR")
	if failure.File != "" {
		location := failure.File
		if failure.Line > 0 {
			location = fmt.Sprintf("%s:%d", failure.File, failure.Line)
		}
		color.New(color.FgCyan).Fprintln(w, location)
	}

	if failure.Kind != domain.KindComparisonMismatch {
		fmt.Fprintln(w, failure.Message)
		if failure.Query != "" {
			yellow.Fprintln(w, "\nQuery:")
			fmt.Fprintln(w, failure.Query)
		}
		return
	}

	fmt.Fprintln(w, failure.Query)
	yellow.Fprintln(w, "\nExpected:")
	fmt.Fprintln(w, failure.Expected)
	yellow.Fprintln(w, "\nActual:")
	fmt.Fprintln(w, strings.TrimRight(failure.Actual, "\n"))

	if !showDiff(failure) {
		return
	}
	if diff := compare.Diff(failure.Expected, failure.Actual); diff != "" {
		yellow.Fprintln(w, "\nDiff:")
		for _, line := range strings.SplitAfter(diff, "\n") {
			switch {
			case strings.HasPrefix(line, "- "):
				color.New(color.FgRed).Fprint(w, line)
			case strings.HasPrefix(line, "+ "):
				color.New(color.FgGreen).Fprint(w, line)
			default:
				fmt.Fprint(w, line)
			}
		}
	}
}

// showDiff reports whether a mismatch gets a line diff; prefix mismatches do not
func showDiff(failure domain.Failure) bool {
	return compare.Mode(failure.CompareMode) != compare.ModePrefix
}

// WriteSummaryLine prints the pass/fail line for a run
func WriteSummaryLine(w io.Writer, record *domain.RunRecord) {
	if record.Passed {
		color.New(color.FgGreen).Fprintf(w, "✓ %d case(s) in %d file(s) passed in %.2fs\n",
			record.CasesPassed, record.FilesPassed, record.Duration.Seconds())
		return
	}
	color.New(color.FgRed).Fprintf(w, "✗ run stopped after %d passing case(s) in %d of %d file(s)\n",
		record.CasesPassed, record.FilesPassed, record.Files)
}
