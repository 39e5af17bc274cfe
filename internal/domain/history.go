package domain

import "time"

// RunKind identifies which pipeline produced a history record
type RunKind string

const (
	RunKindPlaywright RunKind = "playwright"
	RunKindVitest     RunKind = "vitest"
)

// RunRecord is one stored report summary
type RunRecord struct {
	Kind           RunKind   `json:"kind"`
	Timestamp      time.Time `json:"timestamp"`
	Title          string    `json:"title"`
	Total          int       `json:"total"`
	Passed         int       `json:"passed"`
	Failed         int       `json:"failed"`
	Skipped        int       `json:"skipped"`
	Flaky          int       `json:"flaky"`
	DurationMS     float64   `json:"duration_ms"`
	LinesPct       float64   `json:"lines_pct"`
	StatementsPct  float64   `json:"statements_pct"`
	FunctionsPct   float64   `json:"functions_pct"`
	BranchesPct    float64   `json:"branches_pct"`
	WorkflowRunURL string    `json:"workflow_run_url,omitempty"`
}

// NewPlaywrightRecord builds a record from parsed test results
func NewPlaywrightRecord(title string, results *ParsedTestResults, workflowRunURL string, now time.Time) RunRecord {
	stats := results.Statistics
	return RunRecord{
		Kind:           RunKindPlaywright,
		Timestamp:      now,
		Title:          title,
		Total:          stats.Total,
		Passed:         stats.Passed,
		Failed:         stats.Failed,
		Skipped:        stats.Skipped,
		Flaky:          stats.Flaky,
		DurationMS:     stats.Duration,
		WorkflowRunURL: workflowRunURL,
	}
}

// NewVitestRecord builds a record from parsed coverage data
func NewVitestRecord(title string, data *ParsedCoverageData, workflowRunURL string, now time.Time) RunRecord {
	return RunRecord{
		Kind:           RunKindVitest,
		Timestamp:      now,
		Title:          title,
		LinesPct:       float64(data.Total.Lines.Pct),
		StatementsPct:  float64(data.Total.Statements.Pct),
		FunctionsPct:   float64(data.Total.Functions.Pct),
		BranchesPct:    float64(data.Total.Branches.Pct),
		WorkflowRunURL: workflowRunURL,
	}
}
