package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"trp/internal/config"
	"trp/internal/domain"
	trperrors "trp/internal/errors"
	"trp/internal/execution"
	"trp/internal/markdown"
	"trp/internal/parser"
	"trp/internal/storage"
	"trp/internal/ui"
)

// PlaywrightCommand handles the playwright command
type PlaywrightCommand struct {
	config     *config.Config
	log        *logrus.Entry
	locator    *reportLocator
	executor   *execution.WorkerPool
	formatter  *ui.Formatter
	newStorage func(*config.Config) storage.Storage
}

// NewPlaywrightCommand creates a new PlaywrightCommand
func NewPlaywrightCommand(
	cfg *config.Config,
	log *logrus.Entry,
	locator *reportLocator,
	executor *execution.WorkerPool,
	formatter *ui.Formatter,
	newStorage func(*config.Config) storage.Storage,
) *PlaywrightCommand {
	return &PlaywrightCommand{
		config:     cfg,
		log:        log,
		locator:    locator,
		executor:   executor,
		formatter:  formatter,
		newStorage: newStorage,
	}
}

// playwrightRun is the outcome of building the Playwright section
type playwrightRun struct {
	section string
	results *domain.ParsedTestResults // nil for a status-only section
	files   int
	elapsed time.Duration
}

// Execute runs the command
func (pc *PlaywrightCommand) Execute(cmd *cobra.Command, args []string) error {
	pc.formatter.SetOutput(cmd.ErrOrStderr())

	run, err := pc.Render(cmd.Context())
	if err != nil {
		return trperrors.WithStackTrace(err)
	}

	if err := writeSection(cmd, pc.config, run.section); err != nil {
		return err
	}

	if run.results == nil {
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "No Playwright report found, wrote status for job %q\n", pc.config.Flags.JobStatus)
		return nil
	}

	pc.formatter.PrintStats(run.results, run.files, run.elapsed)

	if pc.config.Flags.Record {
		record := domain.NewPlaywrightRecord(pc.options().Title, run.results, pc.config.WorkflowRunURL, time.Now())
		if err := pc.newStorage(pc.config).Save(cmd.Context(), record); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		pc.log.WithField("title", record.Title).Debug("run recorded")
	}

	if failed := run.results.Statistics.Failed; pc.config.Flags.FailOnFailures && failed > 0 {
		return fmt.Errorf("%d Playwright test(s) failed", failed)
	}
	return nil
}

// Render locates and parses the reports and builds the markdown section.
// With no report and a job status, it falls back to the status-only section.
func (pc *PlaywrightCommand) Render(ctx context.Context) (*playwrightRun, error) {
	results, files, elapsed, err := pc.Parse(ctx)
	if err != nil {
		if trperrors.IsNotFound(err) && pc.config.Flags.JobStatus != "" {
			pc.log.WithError(err).Info("falling back to status-only section")
			return &playwrightRun{section: markdown.SimpleSection(pc.config.Flags.JobStatus, pc.config.WorkflowRunURL)}, nil
		}
		return nil, err
	}

	return &playwrightRun{
		section: markdown.PlaywrightSection(results, pc.options()),
		results: results,
		files:   files,
		elapsed: elapsed,
	}, nil
}

// Parse parses every located report in parallel and merges the results
func (pc *PlaywrightCommand) Parse(ctx context.Context) (*domain.ParsedTestResults, int, time.Duration, error) {
	paths, err := pc.locator.Locate(ctx)
	if err != nil {
		if !trperrors.IsNotFound(err) || len(paths) == 0 {
			return nil, 0, 0, err
		}
		pc.log.WithError(err).Warn("skipping missing reports")
	}

	if len(paths) > 1 {
		pc.executor.SetProgress(ui.NewProgressBar(len(paths)))
	} else {
		pc.executor.SetProgress(nil)
	}

	runs, elapsed, err := pc.executor.ExecuteWithOptions(ctx, paths, pc.config.Flags.FailFast)
	if err != nil {
		return nil, 0, elapsed, err
	}

	parsed := make([]*domain.ParsedTestResults, 0, len(runs))
	for _, r := range runs {
		parsed = append(parsed, r.Results)
	}
	merged := parser.MergeResults(parsed...)

	pc.log.WithFields(logrus.Fields{
		"files":  len(runs),
		"total":  merged.Statistics.Total,
		"failed": merged.Statistics.Failed,
	}).Info("parsed Playwright reports")
	return merged, len(runs), elapsed, nil
}

func (pc *PlaywrightCommand) options() markdown.PlaywrightOptions {
	settings := pc.config.Playwright
	opts := markdown.DefaultPlaywrightOptions()
	opts.WorkflowRunURL = pc.config.WorkflowRunURL
	opts.IncludeFailureDetails = settings.IncludeFailureDetails
	opts.MaxFailuresToShow = settings.MaxFailuresToShow
	opts.IncludeFlakyTests = settings.IncludeFlakyTests
	opts.ShowDuration = settings.ShowDuration
	if settings.Title != "" {
		opts.Title = settings.Title
	}
	return opts
}
