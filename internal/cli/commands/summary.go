package commands

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"trp/internal/config"
	trperrors "trp/internal/errors"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	config     *config.Config
	log        *logrus.Entry
	playwright *PlaywrightCommand
	vitest     *VitestCommand
}

// NewSummaryCommand creates a new SummaryCommand
func NewSummaryCommand(cfg *config.Config, log *logrus.Entry, playwright *PlaywrightCommand, vitest *VitestCommand) *SummaryCommand {
	return &SummaryCommand{
		config:     cfg,
		log:        log,
		playwright: playwright,
		vitest:     vitest,
	}
}

// Execute builds both sections concurrently and writes them Playwright first.
// A pipeline whose input is missing is skipped; both missing is an error.
func (sc *SummaryCommand) Execute(cmd *cobra.Command, args []string) error {
	var pwSection, vtSection string
	var pwMissing, vtMissing error

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		run, err := sc.playwright.Render(ctx)
		if trperrors.IsNotFound(err) {
			pwMissing = err
			return nil
		}
		if err != nil {
			return err
		}
		pwSection = run.section
		return nil
	})
	g.Go(func() error {
		run, err := sc.vitest.Render(ctx)
		if trperrors.IsNotFound(err) {
			vtMissing = err
			return nil
		}
		if err != nil {
			return err
		}
		vtSection = run.section
		return nil
	})
	if err := g.Wait(); err != nil {
		return trperrors.WithStackTrace(err)
	}

	if pwMissing != nil && vtMissing != nil {
		return trperrors.WithStackTraceAndPrefix(vtMissing, "no reports to summarize: %s", pwMissing.Error())
	}
	for _, missing := range []error{pwMissing, vtMissing} {
		if missing != nil {
			sc.log.WithError(missing).Warn("section skipped")
		}
	}

	var b strings.Builder
	b.WriteString(pwSection)
	b.WriteString(vtSection)
	return writeSection(cmd, sc.config, b.String())
}
