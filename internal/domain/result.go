package domain

// TestStatistics contains aggregate counts for a test run
type TestStatistics struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	Flaky    int     `json:"flaky"`
	Duration float64 `json:"duration"` // Milliseconds
}

// Add accumulates other into s
func (s *TestStatistics) Add(other TestStatistics) {
	s.Total += other.Total
	s.Passed += other.Passed
	s.Failed += other.Failed
	s.Skipped += other.Skipped
	s.Flaky += other.Flaky
	s.Duration += other.Duration
}

// ParsedTestResults is the normalized form of a Playwright JSON report
type ParsedTestResults struct {
	Tests      []TestCase        `json:"tests"`
	Failures   []TestCase        `json:"failures"`
	Flaky      []TestCase        `json:"flaky"`
	Statistics TestStatistics    `json:"statistics"`
	Categories FailureCategories `json:"categories"`
}
