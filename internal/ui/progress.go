package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"qtr/internal/domain"
)

// ProgressReporter shows a progress bar over all cases instead of dots
type ProgressReporter struct {
	bar    *progressbar.ProgressBar
	out    io.Writer
	file   string
	passed int
}

// NewProgressReporter creates a progress bar for total cases. The bar is drawn
// on barOut, failures and the summary go to out.
func NewProgressReporter(total int, barOut, out io.Writer) *ProgressReporter {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(describe("", 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(barOut),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(barOut, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressReporter{bar: bar, out: out}
}

func describe(file string, passed int) string {
	return color.CyanString("Running %s ", file) + color.GreenString("[passed: %d]", passed)
}

// AnnounceFile shows the current file in the bar description
func (p *ProgressReporter) AnnounceFile(name string) {
	p.file = name
	p.bar.Describe(describe(p.file, p.passed))
}

// CasePassed advances the bar by one case
func (p *ProgressReporter) CasePassed() {
	p.passed++
	p.bar.Describe(describe(p.file, p.passed))
	_ = p.bar.Add(1)
}

// ReportFailure stops the bar and prints the diagnostic
func (p *ProgressReporter) ReportFailure(failure domain.Failure) {
	_ = p.bar.Exit()
	fmt.Fprintln(p.out)
	WriteFailure(p.out, failure)
}

// Finish completes the bar and prints the summary line
func (p *ProgressReporter) Finish(record *domain.RunRecord) {
	if record.Passed {
		_ = p.bar.Finish()
	}
	fmt.Fprintln(p.out)
	WriteSummaryLine(p.out, record)
}
