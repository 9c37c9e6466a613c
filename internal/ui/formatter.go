package ui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"qtr/internal/config"
	"qtr/internal/domain"
)

// Formatter formats run records and spec listings
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		out:    out,
	}
}

// PrintRecord prints the statistics of a run and, if it failed, the failure
func (f *Formatter) PrintRecord(record *domain.RunRecord) {
	fmt.Fprint(f.out, "\n")
	color.New(color.FgCyan).Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	color.New(color.FgCyan).Fprintln(f.out, "║                       Query Test Run                          ║")
	color.New(color.FgCyan).Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	status := color.GreenString("%-27s", "passed")
	if !record.Passed {
		status = color.RedString("%-27s", "failed")
	}

	rows := []struct {
		label string
		value string
	}{
		{"Run ID", fmt.Sprintf("%-27s", shortID(record.ID))},
		{"Status", status},
		{"Spec Files", fmt.Sprintf("%-27d", record.Files)},
		{"Passed Spec Files", color.GreenString("%-27d", record.FilesPassed)},
		{"Passed Cases", color.GreenString("%-27d", record.CasesPassed)},
		{"Duration", fmt.Sprintf("%-27s", fmt.Sprintf("%.2fs", record.Duration.Seconds()))},
		{"Workers", fmt.Sprintf("%-27d", record.Workers)},
		{"Started", fmt.Sprintf("%-27s", record.StartedAt.Format("2006-01-02 15:04:05"))},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ %s │\n", row.label, row.value)
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if record.Failure != nil {
		WriteFailure(f.out, *record.Failure)
	} else if record.Passed {
		color.New(color.FgGreen).Fprintln(f.out, "✓ All cases passed!")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// PrintSpecList prints discovered spec files, optionally with their cases
func (f *Formatter) PrintSpecList(files []*domain.TestFile, showCases bool) {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	if showCases {
		green.Fprintf(f.out, "Found %d spec file(s) with %d case(s):\n\n", len(files), domain.TotalCases(files))
	} else {
		green.Fprintf(f.out, "Found %d spec file(s):\n\n", len(files))
	}

	for i, tf := range files {
		isLastFile := i == len(files)-1
		connector := "├── "
		if isLastFile {
			connector = "└── "
		}
		cyan.Fprintf(f.out, "%s%s %s\n", connector, f.relative(tf.Path), color.WhiteString("(%s)", tf.DBPath))

		if !showCases {
			continue
		}

		indent := "│   "
		if isLastFile {
			indent = "    "
		}
		if len(tf.Cases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, color.RedString("(no cases found)"))
		}
		for j, tc := range tf.Cases {
			caseConnector := "├── "
			if j == len(tf.Cases)-1 {
				caseConnector = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", indent, caseConnector, color.YellowString("%d: %s", tc.Line, firstLine(tc.Query)))
		}
	}
}

func (f *Formatter) relative(path string) string {
	if f.config == nil {
		return path
	}
	if rel, err := filepath.Rel(f.config.ProjectPath, path); err == nil {
		return rel
	}
	return path
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i] + " …"
		}
	}
	return s
}
