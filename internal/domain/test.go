package domain

// TestStatus is the outcome of a single executed test
type TestStatus string

const (
	StatusPassed      TestStatus = "passed"
	StatusFailed      TestStatus = "failed"
	StatusSkipped     TestStatus = "skipped"
	StatusFlaky       TestStatus = "flaky"
	StatusTimedOut    TestStatus = "timedOut"
	StatusInterrupted TestStatus = "interrupted"
)

// KnownStatuses lists every status a report may carry, flaky included
var KnownStatuses = []TestStatus{
	StatusPassed,
	StatusFailed,
	StatusSkipped,
	StatusFlaky,
	StatusTimedOut,
	StatusInterrupted,
}

// IsFailure reports whether the status counts as a failure in reports.
// Interrupted tests are not failures.
func (s TestStatus) IsFailure() bool {
	return s == StatusFailed || s == StatusTimedOut
}

// TestError is the error produced by the last attempt of a test
type TestError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// TestCase represents one executed test, flattened out of its suite
type TestCase struct {
	Title     string     `json:"title"`
	FullTitle string     `json:"full_title"` // "suite › title" or bare title
	File      string     `json:"file"`
	Status    TestStatus `json:"status"`
	Duration  int64      `json:"duration"` // Milliseconds, last attempt
	Error     *TestError `json:"error,omitempty"`
	Retries   int        `json:"retries,omitempty"` // Attempts beyond the first, 0 when none
}
