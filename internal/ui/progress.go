package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages progress bars
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar on stderr, hidden when stderr is not a terminal
func NewProgressBar(count int) *ProgressBar {
	visible := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return newProgressBar(count, os.Stderr, visible)
}

func newProgressBar(count int, w io.Writer, visible bool) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionOnCompletion(func() {
			if visible {
				fmt.Fprint(w, "\n")
			}
		}),
		progressbar.OptionSetRenderBlankState(visible),
	)

	return &ProgressBar{bar: bar}
}

func describe(parsed, failed int) string {
	return color.CyanString("Parsing reports: ") +
		color.GreenString("[parsed: %d", parsed) +
		" | " +
		color.RedString("failed: %d]", failed)
}

// Update updates the progress bar with parsed and failed file counts
func (p *ProgressBar) Update(parsed, failed int) {
	_ = p.bar.Set(parsed + failed)
	p.bar.Describe(describe(parsed, failed))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}
