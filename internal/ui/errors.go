package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"trp/internal/domain"
	"trp/internal/markdown"
)

const maxStackLines = 15

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct{}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer() *ErrorViewer {
	return &ErrorViewer{}
}

// View lists failures on the left and the selected failure on the right.
// R toggles a reviewed marker for the current session.
func (ev *ErrorViewer) View(failures []domain.TestCase) error {
	if len(failures) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	reviewed := make(map[int]bool)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, failure := range failures {
		list.AddItem(listItemText(failure, i, false), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(len(failures), len(failures)-countTrue(reviewed)))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(failures) {
			return
		}
		failure := failures[index]
		statsView.SetText(formatFailureStats(failure, index+1))
		detailsView.SetText(formatFailureDetails(failure))
		detailsView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'r', 'R':
				index := list.GetCurrentItem()
				if index >= 0 && index < len(failures) {
					reviewed[index] = !reviewed[index]
					list.SetItemText(index, listItemText(failures[index], index, reviewed[index]), "")
					updateHeader()
				}
				return nil
			case 'q':
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

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

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

func countTrue(m map[int]bool) int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

func headerText(total, unreviewed int) string {
	return fmt.Sprintf(" Test Failures (%d total, %d unreviewed) | ↑↓ navigate, [yellow]R[white] mark reviewed, → details, ← back, q or Ctrl+C exit ",
		total, unreviewed)
}

func listItemText(failure domain.TestCase, index int, reviewed bool) string {
	title := failure.FullTitle
	if title == "" {
		title = failure.Title
	}
	if title == "" {
		title = fmt.Sprintf("Test %d", index+1)
	}
	title = tview.Escape(title)

	if reviewed {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, title)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, title)
}

// formatFailureDetails renders a failure with tview color tags
func formatFailureDetails(failure domain.TestCase) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Test: %s[white]\n\n", tview.Escape(failure.FullTitle))
	fmt.Fprintf(&b, "[cyan]File:[white] %s\n", tview.Escape(failure.File))
	fmt.Fprintf(&b, "[cyan]Status:[white] %s\n", markdown.StatusBadge(failure.Status))
	fmt.Fprintf(&b, "[cyan]Duration:[white] %.2fs\n", float64(failure.Duration)/1000)
	if failure.Retries > 0 {
		fmt.Fprintf(&b, "[cyan]Retries:[white] %d\n", failure.Retries)
	}
	b.WriteString("\n")

	if failure.Error == nil {
		b.WriteString("[gray]No error details recorded[white]\n")
		return b.String()
	}

	if failure.Error.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Error.Message))
	}

	if failure.Error.Stack != "" {
		lines := strings.Split(strings.TrimRight(failure.Error.Stack, "\n"), "\n")
		b.WriteString("[yellow]Stack Trace:[white]\n")
		for i, line := range lines {
			if i == maxStackLines {
				fmt.Fprintf(&b, "  [gray]... and %d more lines[white]\n", len(lines)-maxStackLines)
				break
			}
			fmt.Fprintf(&b, "  %s\n", tview.Escape(line))
		}
	}

	return b.String()
}

// formatFailureStats formats the one-line location header
func formatFailureStats(failure domain.TestCase, number int) string {
	path := failure.File
	if path == "" {
		path = "Unknown path"
	}
	title := failure.Title
	if title == "" {
		title = fmt.Sprintf("Test %d", number)
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]%s[white]\n", tview.Escape(path), tview.Escape(title))
}
