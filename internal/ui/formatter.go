package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"trp/internal/config"
	"trp/internal/domain"
)

// Formatter prints run summaries to the console
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out (stderr when nil)
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	if out == nil {
		out = os.Stderr
	}
	return &Formatter{
		config: cfg,
		out:    out,
	}
}

// SetOutput redirects console output
func (f *Formatter) SetOutput(out io.Writer) {
	f.out = out
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

const (
	rowSeparator = "├─────────────────────────────────┼─────────────────────────────┤"
	tableTop     = "┌─────────────────────────────────┬─────────────────────────────┐"
	tableBottom  = "└─────────────────────────────────┴─────────────────────────────┘"
)

type statRow struct {
	label string
	value string
	paint *color.Color
}

func (f *Formatter) printTable(title string, rows []statRow) {
	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintf(f.out, "║ %-61s ║\n", title)
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(f.out, tableTop)
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.paint.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, rowSeparator)
		}
	}
	fmt.Fprintln(f.out, tableBottom)
}

// PrintStats shows the merged Playwright statistics and a tree of failed tests
func (f *Formatter) PrintStats(results *domain.ParsedTestResults, reportFiles int, elapsed time.Duration) {
	stats := results.Statistics
	f.printTable("Playwright Results", []statRow{
		{"Report Files", fmt.Sprint(reportFiles), white},
		{"Total Tests", fmt.Sprint(stats.Total), white},
		{"Passed", fmt.Sprint(stats.Passed), green},
		{"Failed", fmt.Sprint(stats.Failed), red},
		{"Skipped", fmt.Sprint(stats.Skipped), yellow},
		{"Flaky", fmt.Sprint(stats.Flaky), yellow},
		{"Test Duration", fmt.Sprintf("%.2fs", stats.Duration/1000), white},
		{"Parse Time", elapsed.Round(time.Millisecond).String(), white},
	})

	fmt.Fprintln(f.out)
	if len(results.Failures) == 0 {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}

	red.Fprintf(f.out, "✗ %d test(s) failed\n", len(results.Failures))
	fmt.Fprintln(f.out)
	f.printFailedTestsTree(results.Failures)
}

// PrintCoverage shows total coverage and the outcome of the threshold check
func (f *Formatter) PrintCoverage(data *domain.ParsedCoverageData, violations []string) {
	total := data.Total
	pct := func(p domain.Percent) string { return fmt.Sprintf("%.2f%%", float64(p)) }
	f.printTable("Vitest Coverage", []statRow{
		{"Files", fmt.Sprint(len(data.Files)), white},
		{"Statements", pct(total.Statements.Pct), coverageColor(total.Statements.Pct)},
		{"Branches", pct(total.Branches.Pct), coverageColor(total.Branches.Pct)},
		{"Functions", pct(total.Functions.Pct), coverageColor(total.Functions.Pct)},
		{"Lines", pct(total.Lines.Pct), coverageColor(total.Lines.Pct)},
	})

	fmt.Fprintln(f.out)
	if len(violations) == 0 {
		green.Fprintln(f.out, "✓ Coverage thresholds met")
		return
	}
	for _, v := range violations {
		red.Fprintf(f.out, "✗ %s\n", v)
	}
}

func coverageColor(p domain.Percent) *color.Color {
	switch {
	case p >= 90:
		return green
	case p >= 75:
		return yellow
	default:
		return red
	}
}

// PrintHistory lists stored runs, newest first
func (f *Formatter) PrintHistory(records []domain.RunRecord) {
	if len(records) == 0 {
		yellow.Fprintln(f.out, "No recorded runs")
		return
	}

	green.Fprintf(f.out, "Found %d recorded run(s):\n\n", len(records))
	for i, r := range records {
		connector := "├──"
		if i == len(records)-1 {
			connector = "└──"
		}
		stamp := r.Timestamp.Local().Format("2006-01-02 15:04:05")

		switch r.Kind {
		case domain.RunKindVitest:
			cyan.Fprintf(f.out, "%s %s [%s] %s ", connector, stamp, r.Kind, r.Title)
			fmt.Fprintf(f.out, "lines %.2f%% | statements %.2f%% | functions %.2f%% | branches %.2f%%\n",
				r.LinesPct, r.StatementsPct, r.FunctionsPct, r.BranchesPct)
		default:
			cyan.Fprintf(f.out, "%s %s [%s] %s ", connector, stamp, r.Kind, r.Title)
			green.Fprintf(f.out, "passed %d", r.Passed)
			fmt.Fprint(f.out, " | ")
			paint := green
			if r.Failed > 0 {
				paint = red
			}
			paint.Fprintf(f.out, "failed %d", r.Failed)
			fmt.Fprintf(f.out, " | skipped %d | flaky %d | total %d\n", r.Skipped, r.Flaky, r.Total)
		}
	}
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.TestCase
	IsFile   bool
}

// BuildTree groups failures by the path of their spec file
func BuildTree(failures []domain.TestCase) *TreeNode {
	root := &TreeNode{Children: make(map[string]*TreeNode)}

	for _, failure := range failures {
		file := failure.File
		if file == "" {
			file = "unknown"
		}
		parts := strings.Split(strings.TrimPrefix(strings.ReplaceAll(file, `\`, "/"), "./"), "/")
		current := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			child := current.Children[part]
			if child == nil {
				child = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
				current.Children[part] = child
			}
			current = child
		}
		current.Failures = append(current.Failures, failure)
	}
	return root
}

func (f *Formatter) printFailedTestsTree(failures []domain.TestCase) {
	f.printTreeNode(BuildTree(failures), "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		last := i == len(keys)-1

		connector, childPrefix := "├── ", "│   "
		if last {
			connector, childPrefix = "└── ", "    "
		}

		if child.IsFile {
			yellow.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
		} else {
			cyan.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
		}

		for j, failure := range child.Failures {
			caseConnector := "├── "
			if j == len(child.Failures)-1 && len(child.Children) == 0 {
				caseConnector = "└── "
			}
			red.Fprintf(f.out, "%s%s%s\n", prefix+childPrefix, caseConnector, failure.Title)
		}

		f.printTreeNode(child, prefix+childPrefix)
	}
}

// PrintReportList prints discovered report files relative to the workspace
func (f *Formatter) PrintReportList(reports []string) {
	green.Fprintf(f.out, "Found %d report file(s):\n\n", len(reports))

	root := f.config.WorkspaceRoot
	for i, report := range reports {
		relPath, err := filepath.Rel(root, report)
		if err != nil {
			relPath = report
		}
		connector := "├──"
		if i == len(reports)-1 {
			connector = "└──"
		}
		cyan.Fprintf(f.out, "%s %s\n", connector, relPath)
	}
}
