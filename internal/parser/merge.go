package parser

import "trp/internal/domain"

// MergeResults combines the results of sharded runs into one.
// Lists are concatenated in argument order and statistics are summed.
func MergeResults(results ...*domain.ParsedTestResults) *domain.ParsedTestResults {
	merged := &domain.ParsedTestResults{
		Tests:    make([]domain.TestCase, 0),
		Failures: make([]domain.TestCase, 0),
		Flaky:    make([]domain.TestCase, 0),
	}

	for _, r := range results {
		if r == nil {
			continue
		}
		merged.Tests = append(merged.Tests, r.Tests...)
		merged.Failures = append(merged.Failures, r.Failures...)
		merged.Flaky = append(merged.Flaky, r.Flaky...)
		merged.Statistics.Add(r.Statistics)
	}

	merged.Categories = CategorizeFailures(merged.Failures)
	return merged
}
