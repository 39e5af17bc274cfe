package execution

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"trp/internal/domain"
	"trp/internal/parser"
)

// Result is the outcome of parsing a single report file
type Result struct {
	Path     string
	Results  *domain.ParsedTestResults
	Duration time.Duration
	Err      error
}

// Success reports whether the file parsed
func (r Result) Success() bool {
	return r.Err == nil
}

// Runner parses a single Playwright report
type Runner struct {
	parser parser.ResultsParser
	log    *logrus.Entry
}

// NewRunner creates a new Runner
func NewRunner(p parser.ResultsParser, log *logrus.Entry) *Runner {
	return &Runner{parser: p, log: log}
}

// Run parses the report at path
func (r *Runner) Run(ctx context.Context, path string) Result {
	start := time.Now()
	results, err := r.parser.Parse(ctx, path)
	elapsed := time.Since(start)

	entry := r.log.WithField("file", path).WithField("elapsed", elapsed)
	if err != nil {
		entry.WithError(err).Debug("report parse failed")
	} else if len(results.Tests) == 0 && results.Statistics.Total == 0 {
		entry.Debug("report contains no tests; is it a Playwright JSON report?")
	} else {
		entry.WithField("tests", results.Statistics.Total).Debug("report parsed")
	}

	return Result{
		Path:     path,
		Results:  results,
		Duration: elapsed,
		Err:      err,
	}
}
