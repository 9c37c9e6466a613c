package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"qtr/internal/compare"
	"qtr/internal/domain"
)

// FailureViewer displays the failure of the last run in an interactive TUI
type FailureViewer struct{}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer() *FailureViewer {
	return &FailureViewer{}
}

type section struct {
	title string
	body  string
}

// sections splits a failure into the panes the viewer can show
func sections(failure domain.Failure) []section {
	out := []section{{title: "Query", body: failure.Query}}
	if failure.Kind == domain.KindComparisonMismatch {
		out = append(out,
			section{title: "Expected", body: failure.Expected},
			section{title: "Actual", body: strings.TrimRight(failure.Actual, "\n")},
		)
		if showDiff(failure) {
			out = append(out, section{title: "Diff", body: colorDiff(compare.Diff(failure.Expected, failure.Actual))})
		}
		return out
	}
	return append(out, section{title: "Error", body: tview.Escape(failure.Message)})
}

func colorDiff(diff string) string {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		escaped := tview.Escape(line)
		switch {
		case strings.HasPrefix(line, "- "):
			sb.WriteString("[red]" + escaped + "[white]")
		case strings.HasPrefix(line, "+ "):
			sb.WriteString("[green]" + escaped + "[white]")
		default:
			sb.WriteString(escaped)
		}
	}
	return sb.String()
}

// View opens the viewer for the record's failure
func (fv *FailureViewer) View(record *domain.RunRecord) error {
	if record.Failure == nil {
		color.Green("✓ The last run passed, nothing to show")
		return nil
	}
	failure := *record.Failure
	parts := sections(failure)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, s := range parts {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s", i+1, s.title), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	location := failure.File
	if failure.Line > 0 {
		location = fmt.Sprintf("%s:%d", failure.File, failure.Line)
	}
	statsView.SetText(fmt.Sprintf("[cyan]spec:[white] [yellow]%s[white]  [cyan]kind:[white] %s", tview.Escape(location), failure.Kind))

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	updateDetails := func(index int) {
		if index < 0 || index >= len(parts) {
			return
		}
		body := parts[index].body
		if parts[index].title != "Diff" && parts[index].title != "Error" {
			body = tview.Escape(body)
		}
		if body == "" {
			body = "[gray](empty)[white]"
		}
		detailsView.SetText(body).ScrollToBeginning()
	}

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 2, 0, false).
		AddItem(detailsView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 3, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Run %s failed | ↑↓ to navigate, → to scroll details, ← to go back, q to exit ", shortID(record.ID)))

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails(index)
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	updateDetails(0)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
