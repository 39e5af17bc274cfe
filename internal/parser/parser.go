// Package parser normalizes Playwright and Vitest reports into the domain model.
package parser

import (
	"context"

	"trp/internal/domain"
	"trp/internal/storage"
)

// ResultsParser parses a Playwright JSON report
type ResultsParser interface {
	Parse(ctx context.Context, path string) (*domain.ParsedTestResults, error)
}

// CoverageParser parses a Vitest coverage summary
type CoverageParser interface {
	Parse(ctx context.Context, path string) (*domain.ParsedCoverageData, error)
}

// PlaywrightParser parses Playwright reports through a FileReader
type PlaywrightParser struct {
	reader storage.FileReader
}

// NewPlaywrightParser creates a new PlaywrightParser
func NewPlaywrightParser(reader storage.FileReader) *PlaywrightParser {
	return &PlaywrightParser{reader: reader}
}

// Parse implements ResultsParser
func (p *PlaywrightParser) Parse(ctx context.Context, path string) (*domain.ParsedTestResults, error) {
	return ParseResults(ctx, path, p.reader)
}

// VitestParser parses Vitest coverage summaries through a FileReader
type VitestParser struct {
	reader storage.FileReader
}

// NewVitestParser creates a new VitestParser
func NewVitestParser(reader storage.FileReader) *VitestParser {
	return &VitestParser{reader: reader}
}

// Parse implements CoverageParser
func (p *VitestParser) Parse(ctx context.Context, path string) (*domain.ParsedCoverageData, error) {
	return ParseCoverage(ctx, path, p.reader)
}
