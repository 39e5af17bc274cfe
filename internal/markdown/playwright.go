package markdown

import (
	"fmt"
	"strings"

	"trp/internal/domain"
)

const (
	// DefaultPlaywrightTitle is the section title used when none is set
	DefaultPlaywrightTitle = "🎭 Playwright Tests"
	// DefaultMaxFailuresToShow is the default cap on rendered failures
	DefaultMaxFailuresToShow = 10

	separator = "----"
)

// PlaywrightOptions controls PlaywrightSection. Start from
// DefaultPlaywrightOptions; an empty Title falls back to the default.
type PlaywrightOptions struct {
	WorkflowRunURL        string
	IncludeFailureDetails bool
	MaxFailuresToShow     int
	IncludeFlakyTests     bool
	Title                 string
	ShowDuration          bool
}

// DefaultPlaywrightOptions returns the default rendering options
func DefaultPlaywrightOptions() PlaywrightOptions {
	return PlaywrightOptions{
		IncludeFailureDetails: true,
		MaxFailuresToShow:     DefaultMaxFailuresToShow,
		IncludeFlakyTests:     true,
		Title:                 DefaultPlaywrightTitle,
		ShowDuration:          true,
	}
}

// StatusBadge returns the emoji label for a test status
func StatusBadge(status domain.TestStatus) string {
	switch status {
	case domain.StatusPassed:
		return "✅ Passed"
	case domain.StatusFailed:
		return "❌ Failed"
	case domain.StatusTimedOut:
		return "⏱️ Timed Out"
	case domain.StatusSkipped:
		return "⏭️ Skipped"
	case domain.StatusFlaky:
		return "⚠️ Flaky"
	case domain.StatusInterrupted:
		return "⚠️ Interrupted"
	default:
		return "❓ Unknown"
	}
}

// HeaderEmoji picks the section emoji: failures dominate flakiness, which dominates success
func HeaderEmoji(stats domain.TestStatistics) string {
	switch {
	case stats.Failed > 0:
		return "❌"
	case stats.Flaky > 0:
		return "⚠️"
	default:
		return "✅"
	}
}

// PlaywrightSection renders parsed Playwright results
func PlaywrightSection(results *domain.ParsedTestResults, opts PlaywrightOptions) string {
	title := opts.Title
	if title == "" {
		title = DefaultPlaywrightTitle
	}
	stats := results.Statistics

	var b strings.Builder
	fmt.Fprintf(&b, "### %s %s\n\n", HeaderEmoji(stats), title)

	b.WriteString("| Status | Count |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| ✅ Passed | %d |\n", stats.Passed)
	fmt.Fprintf(&b, "| ❌ Failed | %d |\n", stats.Failed)
	fmt.Fprintf(&b, "| ⏭️ Skipped | %d |\n", stats.Skipped)
	if stats.Flaky > 0 {
		fmt.Fprintf(&b, "| ⚠️ Flaky | %d |\n", stats.Flaky)
	}
	fmt.Fprintf(&b, "| **Total** | **%d** |\n", stats.Total)
	if opts.ShowDuration {
		fmt.Fprintf(&b, "| ⏱️ Duration | %s |\n", seconds(stats.Duration))
	}
	b.WriteString("\n")

	if opts.IncludeFailureDetails && len(results.Failures) > 0 {
		writeFailures(&b, results, opts.MaxFailuresToShow)
	}

	if opts.IncludeFlakyTests && len(results.Flaky) > 0 {
		b.WriteString("#### ⚠️ Flaky Tests\n\n")
		for _, tc := range results.Flaky {
			fmt.Fprintf(&b, "- %s (retried %d %s)\n", tc.FullTitle, tc.Retries, plural(tc.Retries, "time", "times"))
		}
		b.WriteString("\n")
	}

	if opts.WorkflowRunURL != "" {
		fmt.Fprintf(&b, "📊 [View detailed report](%s#artifacts)\n\n", opts.WorkflowRunURL)
	}

	b.WriteString(separator + "\n")
	return b.String()
}

func writeFailures(b *strings.Builder, results *domain.ParsedTestResults, maxFailures int) {
	b.WriteString("#### ❌ Failed Tests\n\n")

	categories := results.Categories
	wroteCategory := false
	if n := len(categories.Assertions); n > 0 {
		fmt.Fprintf(b, "- 🔍 Assertion failures: %d\n", n)
		wroteCategory = true
	}
	if n := len(categories.Timeouts); n > 0 {
		fmt.Fprintf(b, "- ⏱️ Timeouts: %d\n", n)
		wroteCategory = true
	}
	if n := len(categories.Other); n > 0 {
		fmt.Fprintf(b, "- ❓ Other errors: %d\n", n)
		wroteCategory = true
	}
	if wroteCategory {
		b.WriteString("\n")
	}

	shown := len(results.Failures)
	if maxFailures < shown {
		shown = max(maxFailures, 0)
	}

	for i, tc := range results.Failures[:shown] {
		fmt.Fprintf(b, "**%d. %s**\n\n", i+1, tc.FullTitle)
		fmt.Fprintf(b, "- **File:** %s\n", inlineCode(tc.File))
		fmt.Fprintf(b, "- **Status:** %s\n", StatusBadge(tc.Status))
		fmt.Fprintf(b, "- **Duration:** %s\n", seconds(float64(tc.Duration)))
		if tc.Error != nil {
			fmt.Fprintf(b, "- **Error:** %s\n", inlineCode(firstLine(tc.Error.Message)))
		}
		if tc.Retries > 0 {
			fmt.Fprintf(b, "- **Retries:** %d\n", tc.Retries)
		}
		b.WriteString("\n")
	}

	if remaining := len(results.Failures) - shown; remaining > 0 {
		fmt.Fprintf(b, "... and %d more %s\n\n", remaining, plural(remaining, "failure", "failures"))
	}
}

// SimpleSection renders a status-only section for runs that produced no report
func SimpleSection(jobStatus, workflowRunURL string) string {
	var emoji, message string
	switch jobStatus {
	case "success":
		emoji, message = "✅", "All Playwright tests passed!"
	case "failure":
		emoji, message = "❌", "Playwright tests failed."
	default:
		emoji, message = "⚠️", fmt.Sprintf("Playwright tests status: %s.", jobStatus)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### %s %s\n\n", emoji, DefaultPlaywrightTitle)
	fmt.Fprintf(&b, "%s\n\n", message)
	fmt.Fprintf(&b, "📊 [View detailed report](%s#artifacts)\n\n", workflowRunURL)
	b.WriteString(separator + "\n")
	return b.String()
}
