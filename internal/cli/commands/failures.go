package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"trp/internal/config"
	"trp/internal/domain"
	trperrors "trp/internal/errors"
	"trp/internal/execution"
	"trp/internal/parser"
	"trp/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config   *config.Config
	log      *logrus.Entry
	locator  *reportLocator
	executor *execution.WorkerPool
	viewer   ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, log *logrus.Entry, locator *reportLocator, executor *execution.WorkerPool, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		config:   cfg,
		log:      log,
		locator:  locator,
		executor: executor,
		viewer:   viewer,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	paths, err := fc.locator.Locate(cmd.Context())
	if err != nil {
		if !trperrors.IsNotFound(err) || len(paths) == 0 {
			return err
		}
		fc.log.WithError(err).Warn("skipping missing reports")
	}

	runs, _, err := fc.executor.Execute(cmd.Context(), paths)
	if err != nil {
		return err
	}

	parsed := make([]*domain.ParsedTestResults, 0, len(runs))
	for _, r := range runs {
		parsed = append(parsed, r.Results)
	}
	return fc.viewer.View(parser.MergeResults(parsed...).Failures)
}
