package markdown

import (
	"fmt"
	"strings"

	"trp/internal/domain"
)

const (
	// DefaultVitestTitle is the section title used when none is set
	DefaultVitestTitle = "🧪 Vitest Unit Tests"
	// DefaultMaxFiles is the default cap on per-file rows
	DefaultMaxFiles = 20
)

// CoverageOptions controls CoverageSection. Start from DefaultCoverageOptions;
// an empty Title falls back to the default.
type CoverageOptions struct {
	IncludeFileBreakdown bool
	WorkspaceRoot        string
	MaxFiles             int
	Title                string
	UseEmoji             bool
}

// DefaultCoverageOptions returns the default rendering options
func DefaultCoverageOptions() CoverageOptions {
	return CoverageOptions{
		MaxFiles: DefaultMaxFiles,
		Title:    DefaultVitestTitle,
	}
}

// CoverageEmoji is the traffic light for a percentage; lower bounds are inclusive
func CoverageEmoji(pct float64) string {
	switch {
	case pct >= 90:
		return "🟢"
	case pct >= 75:
		return "🟡"
	default:
		return "🔴"
	}
}

// CoverageSection renders the total coverage table and an optional per-file breakdown
func CoverageSection(data *domain.ParsedCoverageData, opts CoverageOptions) string {
	title := opts.Title
	if title == "" {
		title = DefaultVitestTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", title)

	b.WriteString("| Metric | Coverage |\n")
	b.WriteString("|--------|----------|\n")
	total := data.Total
	for _, row := range []struct {
		name string
		pct  domain.Percent
	}{
		{"Statements", total.Statements.Pct},
		{"Branches", total.Branches.Pct},
		{"Functions", total.Functions.Pct},
		{"Lines", total.Lines.Pct},
	} {
		fmt.Fprintf(&b, "| %s | %s |\n", row.name, totalPct(float64(row.pct), opts.UseEmoji))
	}

	if opts.IncludeFileBreakdown && len(data.Files) > 0 {
		writeFileBreakdown(&b, data.Files, opts)
	}

	b.WriteString("\n" + separator + "\n")
	return b.String()
}

func totalPct(pct float64, useEmoji bool) string {
	s := toFixed(pct, 2) + "%"
	if useEmoji {
		return CoverageEmoji(pct) + " " + s
	}
	return s
}

func writeFileBreakdown(b *strings.Builder, files []domain.FileCoverage, opts CoverageOptions) {
	b.WriteString("\n#### 📁 File Coverage\n\n")
	b.WriteString("| File | Statements | Branches | Functions | Lines |\n")
	b.WriteString("|------|------------|----------|-----------|-------|\n")

	shown := len(files)
	if opts.MaxFiles < shown {
		shown = max(opts.MaxFiles, 0)
	}

	for _, f := range files[:shown] {
		c := f.Coverage
		fmt.Fprintf(b, "| %s | %s%% | %s%% | %s%% | %s%% |\n",
			inlineCode(displayPath(f.FilePath, opts.WorkspaceRoot)),
			toFixed(float64(c.Statements.Pct), 1),
			toFixed(float64(c.Branches.Pct), 1),
			toFixed(float64(c.Functions.Pct), 1),
			toFixed(float64(c.Lines.Pct), 1),
		)
	}

	if remaining := len(files) - shown; remaining > 0 {
		fmt.Fprintf(b, "\n_... and %d more %s_\n", remaining, plural(remaining, "file", "files"))
	}
}
