package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"trp/internal/config"
	"trp/internal/discovery"
	trperrors "trp/internal/errors"
	"trp/internal/storage"
)

const resultsSubject = "Playwright results file"

// reportLocator resolves which Playwright reports a command should read
type reportLocator struct {
	config *config.Config
	reader storage.FileReader
	filter *discovery.Filter
}

func newReportLocator(cfg *config.Config, reader storage.FileReader, filter *discovery.Filter) *reportLocator {
	return &reportLocator{
		config: cfg,
		reader: reader,
		filter: filter,
	}
}

// Scan lists the reports under dir, narrowed by the name filter
func (l *reportLocator) Scan(dir string) ([]string, error) {
	// Built per call: the ignore list comes from the settings file
	scanner := discovery.NewScanner(l.config.PathsToIgnore)
	reports, err := scanner.Scan(dir)
	if err != nil {
		return nil, err
	}
	return l.filter.FilterByName(reports, l.config.Flags.NameFilter), nil
}

// Locate returns the reports that exist. A missing report yields a
// NotFoundError naming every location that was tried.
func (l *reportLocator) Locate(ctx context.Context) ([]string, error) {
	if dir := l.config.GetResultsDir(); dir != "" {
		reports, err := l.Scan(dir)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, trperrors.NotFound(resultsSubject, dir)
		}
		if err != nil {
			return nil, err
		}
		if len(reports) == 0 {
			return nil, trperrors.NotFound(resultsSubject, dir)
		}
		return reports, nil
	}

	requested := l.config.GetResultsPaths()
	var found, missing []string
	for _, path := range requested {
		exists, err := l.reader.Exists(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", path, err)
		}
		if exists {
			found = append(found, path)
		} else {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return found, trperrors.NotFound(resultsSubject, strings.Join(missing, ", "))
	}
	return found, nil
}
