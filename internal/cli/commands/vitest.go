package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"trp/internal/config"
	"trp/internal/domain"
	trperrors "trp/internal/errors"
	"trp/internal/gate"
	"trp/internal/markdown"
	"trp/internal/parser"
	"trp/internal/storage"
	"trp/internal/ui"
)

// VitestCommand handles the vitest command
type VitestCommand struct {
	config     *config.Config
	log        *logrus.Entry
	parser     parser.CoverageParser
	formatter  *ui.Formatter
	newStorage func(*config.Config) storage.Storage
}

// NewVitestCommand creates a new VitestCommand
func NewVitestCommand(
	cfg *config.Config,
	log *logrus.Entry,
	coverageParser parser.CoverageParser,
	formatter *ui.Formatter,
	newStorage func(*config.Config) storage.Storage,
) *VitestCommand {
	return &VitestCommand{
		config:     cfg,
		log:        log,
		parser:     coverageParser,
		formatter:  formatter,
		newStorage: newStorage,
	}
}

// vitestRun is the outcome of building the coverage section
type vitestRun struct {
	section    string
	data       *domain.ParsedCoverageData
	violations []gate.Violation
}

// Execute runs the command
func (vc *VitestCommand) Execute(cmd *cobra.Command, args []string) error {
	vc.formatter.SetOutput(cmd.ErrOrStderr())

	run, err := vc.Render(cmd.Context())
	if err != nil {
		return trperrors.WithStackTrace(err)
	}

	if err := writeSection(cmd, vc.config, run.section); err != nil {
		return err
	}

	messages := gate.Messages(run.violations)
	vc.formatter.PrintCoverage(run.data, messages)

	if vc.config.Flags.Record {
		record := domain.NewVitestRecord(vc.options().Title, run.data, vc.config.WorkflowRunURL, time.Now())
		if err := vc.newStorage(vc.config).Save(cmd.Context(), record); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		vc.log.WithField("title", record.Title).Debug("run recorded")
	}

	if !gate.CheckThresholds(run.data, vc.config.Vitest.Thresholds) {
		return &trperrors.ThresholdError{Violations: messages}
	}
	return nil
}

// Render parses the coverage summary, builds the section and evaluates thresholds
func (vc *VitestCommand) Render(ctx context.Context) (*vitestRun, error) {
	path := vc.config.GetCoveragePath()
	data, err := vc.parser.Parse(ctx, path)
	if err != nil {
		return nil, err
	}

	violations := gate.Violations(data, vc.config.Vitest.Thresholds)
	vc.log.WithFields(logrus.Fields{
		"file":       path,
		"files":      len(data.Files),
		"lines":      float64(data.Total.Lines.Pct),
		"violations": len(violations),
	}).Info("parsed coverage summary")

	return &vitestRun{
		section:    markdown.CoverageSection(data, vc.options()),
		data:       data,
		violations: violations,
	}, nil
}

func (vc *VitestCommand) options() markdown.CoverageOptions {
	settings := vc.config.Vitest
	opts := markdown.DefaultCoverageOptions()
	opts.IncludeFileBreakdown = settings.IncludeFileBreakdown
	opts.MaxFiles = settings.MaxFiles
	opts.UseEmoji = settings.UseEmoji
	if settings.Title != "" {
		opts.Title = settings.Title
	}
	// Coverage summaries key files by absolute path
	if root, err := filepath.Abs(vc.config.WorkspaceRoot); err == nil {
		opts.WorkspaceRoot = root
	} else {
		opts.WorkspaceRoot = vc.config.WorkspaceRoot
	}
	return opts
}
