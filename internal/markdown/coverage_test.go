package markdown

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"trp/internal/domain"
)

func summary(statements, branches, functions, lines float64) domain.CoverageFileSummary {
	return domain.CoverageFileSummary{
		Statements: domain.CoverageStats{Pct: domain.Percent(statements)},
		Branches:   domain.CoverageStats{Pct: domain.Percent(branches)},
		Functions:  domain.CoverageStats{Pct: domain.Percent(functions)},
		Lines:      domain.CoverageStats{Pct: domain.Percent(lines)},
	}
}

func TestCoverageEmoji(t *testing.T) {
	tests := []struct {
		pct      float64
		expected string
	}{
		{100, "🟢"},
		{90, "🟢"},
		{89.99, "🟡"},
		{75, "🟡"},
		{74.99, "🔴"},
		{0, "🔴"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.pct), func(t *testing.T) {
			assert.Equal(t, tt.expected, CoverageEmoji(tt.pct))
		})
	}
}

func TestCoverageSection_Totals(t *testing.T) {
	data := &domain.ParsedCoverageData{Total: summary(95.5, 80, 74.25, 90)}

	t.Run("plain", func(t *testing.T) {
		out := CoverageSection(data, DefaultCoverageOptions())

		assert.True(t, strings.HasPrefix(out, "### 🧪 Vitest Unit Tests\n\n"))
		assert.Contains(t, out, "| Metric | Coverage |\n|--------|----------|\n"+
			"| Statements | 95.50% |\n"+
			"| Branches | 80.00% |\n"+
			"| Functions | 74.25% |\n"+
			"| Lines | 90.00% |\n")
		assert.NotContains(t, out, "File Coverage")
		assert.True(t, strings.HasSuffix(out, "|\n\n----\n"))
	})

	t.Run("emoji", func(t *testing.T) {
		opts := DefaultCoverageOptions()
		opts.UseEmoji = true

		out := CoverageSection(data, opts)

		assert.Contains(t, out, "| Statements | 🟢 95.50% |\n")
		assert.Contains(t, out, "| Branches | 🟡 80.00% |\n")
		assert.Contains(t, out, "| Functions | 🔴 74.25% |\n")
		assert.Contains(t, out, "| Lines | 🟢 90.00% |\n")
	})

	t.Run("custom title", func(t *testing.T) {
		opts := DefaultCoverageOptions()
		opts.Title = "Unit"
		assert.True(t, strings.HasPrefix(CoverageSection(data, opts), "### Unit\n"))
	})
}

func TestCoverageSection_FileBreakdown(t *testing.T) {
	data := &domain.ParsedCoverageData{
		Total: summary(90, 90, 90, 90),
		Files: []domain.FileCoverage{
			{FilePath: "/ws/src/a.ts", Coverage: summary(12.25, 100, 0, 66.666)},
			{FilePath: "/ws/src/b.ts", Coverage: summary(50, 50, 50, 50)},
		},
	}
	opts := DefaultCoverageOptions()
	opts.IncludeFileBreakdown = true
	opts.WorkspaceRoot = "/ws"

	out := CoverageSection(data, opts)

	assert.Contains(t, out, "\n#### 📁 File Coverage\n\n| File | Statements | Branches | Functions | Lines |\n")
	assert.Contains(t, out, "| `src/a.ts` | 12.3% | 100.0% | 0.0% | 66.7% |\n")
	assert.Contains(t, out, "| `src/b.ts` | 50.0% | 50.0% | 50.0% | 50.0% |\n")
	assert.NotContains(t, out, "more file")
	assert.True(t, strings.HasSuffix(out, "\n\n----\n"))

	t.Run("basename without workspace root", func(t *testing.T) {
		opts := opts
		opts.WorkspaceRoot = ""
		assert.Contains(t, CoverageSection(data, opts), "| `a.ts` |")
	})

	t.Run("breakdown disabled", func(t *testing.T) {
		opts := opts
		opts.IncludeFileBreakdown = false
		assert.NotContains(t, CoverageSection(data, opts), "File Coverage")
	})

	t.Run("no files", func(t *testing.T) {
		empty := &domain.ParsedCoverageData{Total: data.Total}
		assert.NotContains(t, CoverageSection(empty, opts), "File Coverage")
	})
}

func TestCoverageSection_MaxFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    int
		max      int
		expected string
	}{
		{"plural", 25, 20, "_... and 5 more files_"},
		{"singular", 21, 20, "_... and 1 more file_"},
		{"none", 20, 20, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &domain.ParsedCoverageData{Total: summary(1, 1, 1, 1)}
			for i := 0; i < tt.files; i++ {
				data.Files = append(data.Files, domain.FileCoverage{
					FilePath: fmt.Sprintf("/src/file%02d.ts", i),
					Coverage: summary(1, 1, 1, 1),
				})
			}
			opts := DefaultCoverageOptions()
			opts.IncludeFileBreakdown = true
			opts.MaxFiles = tt.max

			out := CoverageSection(data, opts)

			assert.Equal(t, min(tt.files, tt.max), strings.Count(out, "| `file"))
			if tt.expected == "" {
				assert.NotContains(t, out, "more file")
			} else {
				assert.Contains(t, out, tt.expected+"\n\n----\n")
			}
		})
	}
}
