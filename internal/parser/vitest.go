package parser

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"trp/internal/domain"
	"trp/internal/errors"
	"trp/internal/storage"
)

// ParseCoverage reads a Vitest json-summary coverage file.
// The total entry is required; files are sorted by path.
func ParseCoverage(ctx context.Context, path string, reader storage.FileReader) (*domain.ParsedCoverageData, error) {
	exists, err := reader.Exists(ctx, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NotFound("Coverage file", path)
	}

	var summary domain.CoverageSummary
	if err := reader.ReadJSON(ctx, path, &summary); err != nil {
		return nil, err
	}
	if summary.Total == nil {
		return nil, errors.MissingField("Coverage data", domain.TotalKey)
	}

	files := make([]domain.FileCoverage, 0, len(summary.Files))
	for filePath, coverage := range summary.Files {
		files = append(files, domain.FileCoverage{FilePath: filePath, Coverage: coverage})
	}
	sortFiles(files)

	return &domain.ParsedCoverageData{
		Total: *summary.Total,
		Files: files,
	}, nil
}

// sortFiles orders files with a locale-aware collator, falling back to
// byte order for paths the collator considers equal
func sortFiles(files []domain.FileCoverage) {
	// Collators are not safe for concurrent use, so one is built per call
	collator := collate.New(language.English)
	slices.SortFunc(files, func(a, b domain.FileCoverage) int {
		if c := collator.CompareString(a.FilePath, b.FilePath); c != 0 {
			return c
		}
		return strings.Compare(a.FilePath, b.FilePath)
	})
}
