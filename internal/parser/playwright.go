package parser

import (
	"context"
	"fmt"
	"math"
	"strings"

	"trp/internal/domain"
	"trp/internal/errors"
	"trp/internal/storage"
)

const (
	untitledTest   = "Untitled Test"
	unknownFile    = "unknown"
	unknownError   = "Unknown error"
	titleSeparator = " › "
)

// playwrightReport is the raw Playwright JSON reporter structure.
// Every field is optional; missing values are defaulted during flattening.
type playwrightReport struct {
	Stats  *playwrightStats  `json:"stats"`
	Suites []playwrightSuite `json:"suites"`
}

type playwrightStats struct {
	Expected   int     `json:"expected"`
	Unexpected int     `json:"unexpected"`
	Flaky      int     `json:"flaky"`
	Skipped    int     `json:"skipped"`
	Duration   float64 `json:"duration"`
}

type playwrightSuite struct {
	Title  string            `json:"title"`
	File   string            `json:"file"`
	Specs  []playwrightSpec  `json:"specs"`
	Suites []playwrightSuite `json:"suites"`
}

type playwrightSpec struct {
	Title string           `json:"title"`
	Tests []playwrightTest `json:"tests"`
}

type playwrightTest struct {
	Status  string             `json:"status"`
	Results []playwrightResult `json:"results"`
}

type playwrightResult struct {
	Status   string           `json:"status"`
	Duration float64          `json:"duration"`
	Error    *playwrightError `json:"error"`
	Retry    int              `json:"retry"`
}

type playwrightError struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// ParseResults reads the Playwright JSON report at path and normalizes it.
// Returns a NotFoundError without reading when the file does not exist.
func ParseResults(ctx context.Context, path string, reader storage.FileReader) (*domain.ParsedTestResults, error) {
	exists, err := reader.Exists(ctx, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NotFound("Playwright results file", path)
	}

	var raw playwrightReport
	if err := reader.ReadJSON(ctx, path, &raw); err != nil {
		return nil, err
	}

	return normalizeReport(raw), nil
}

func normalizeReport(raw playwrightReport) *domain.ParsedTestResults {
	tests := flattenSuites(raw.Suites, "")

	failures := make([]domain.TestCase, 0)
	flaky := make([]domain.TestCase, 0)
	for _, tc := range tests {
		if tc.Status.IsFailure() {
			failures = append(failures, tc)
		}
		if tc.Status == domain.StatusFlaky {
			flaky = append(flaky, tc)
		}
	}

	var stats domain.TestStatistics
	if raw.Stats != nil {
		// The reporter's own summary wins over our count
		stats = domain.TestStatistics{
			Passed:   raw.Stats.Expected,
			Failed:   raw.Stats.Unexpected,
			Flaky:    raw.Stats.Flaky,
			Skipped:  raw.Stats.Skipped,
			Total:    raw.Stats.Expected + raw.Stats.Unexpected + raw.Stats.Flaky + raw.Stats.Skipped,
			Duration: raw.Stats.Duration,
		}
	} else {
		stats = deriveStatistics(tests)
	}

	return &domain.ParsedTestResults{
		Tests:      tests,
		Failures:   failures,
		Flaky:      flaky,
		Statistics: stats,
		Categories: CategorizeFailures(failures),
	}
}

// flattenSuites walks suites → specs → tests depth-first.
// Nested suites without a file inherit parentFile.
func flattenSuites(suites []playwrightSuite, parentFile string) []domain.TestCase {
	tests := make([]domain.TestCase, 0)
	for _, suite := range suites {
		file := suite.File
		if file == "" {
			file = parentFile
		}

		for _, spec := range suite.Specs {
			for _, test := range spec.Tests {
				if tc, ok := flattenTest(suite.Title, file, spec, test); ok {
					tests = append(tests, tc)
				}
			}
		}

		tests = append(tests, flattenSuites(suite.Suites, file)...)
	}
	return tests
}

// flattenTest builds a TestCase from the attempts of one test.
// Returns false for tests that never ran.
func flattenTest(suiteTitle, file string, spec playwrightSpec, test playwrightTest) (domain.TestCase, bool) {
	results := test.Results
	if len(results) == 0 {
		return domain.TestCase{}, false
	}

	last := results[len(results)-1]
	retries := len(results) - 1
	lastStatus := normalizeStatus(last.Status)

	hadFailures := false
	for _, r := range results[:len(results)-1] {
		if normalizeStatus(r.Status).IsFailure() {
			hadFailures = true
			break
		}
	}

	status := lastStatus
	if retries > 0 && hadFailures && lastStatus == domain.StatusPassed {
		status = domain.StatusFlaky
	}

	title := spec.Title
	if title == "" {
		title = untitledTest
	}
	fullTitle := title
	if suiteTitle != "" {
		fullTitle = fmt.Sprintf("%s%s%s", suiteTitle, titleSeparator, title)
	}
	if file == "" {
		file = unknownFile
	}

	tc := domain.TestCase{
		Title:     title,
		FullTitle: fullTitle,
		File:      file,
		Status:    status,
		Duration:  int64(math.Round(last.Duration)),
		Retries:   retries,
	}
	if last.Error != nil {
		message := last.Error.Message
		if message == "" {
			message = unknownError
		}
		tc.Error = &domain.TestError{Message: message, Stack: last.Error.Stack}
	}
	return tc, true
}

// normalizeStatus matches s case-insensitively against the known statuses.
// Empty means skipped; anything unrecognized is a failure.
func normalizeStatus(s string) domain.TestStatus {
	if s == "" {
		return domain.StatusSkipped
	}
	for _, known := range domain.KnownStatuses {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return domain.StatusFailed
}

// deriveStatistics counts statuses when the report has no stats block.
// Timed out tests count as failed, interrupted tests only toward the total.
func deriveStatistics(tests []domain.TestCase) domain.TestStatistics {
	stats := domain.TestStatistics{Total: len(tests)}
	for _, tc := range tests {
		switch {
		case tc.Status == domain.StatusPassed:
			stats.Passed++
		case tc.Status.IsFailure():
			stats.Failed++
		case tc.Status == domain.StatusSkipped:
			stats.Skipped++
		case tc.Status == domain.StatusFlaky:
			stats.Flaky++
		}
		stats.Duration += float64(tc.Duration)
	}
	return stats
}
