package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"trp/internal/config"
	"trp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	locator   *reportLocator
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, locator *reportLocator, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		locator:   locator,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	dir := lc.config.GetResultsDir()
	if dir == "" {
		dir = lc.config.WorkspaceRoot
	}

	reports, err := lc.locator.Scan(dir)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No reports found")
		return nil
	}

	lc.formatter.SetOutput(cmd.OutOrStdout())
	lc.formatter.PrintReportList(reports)
	return nil
}
