package commands

import (
	"github.com/spf13/cobra"

	"trp/internal/config"
	"trp/internal/storage"
	"trp/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config     *config.Config
	formatter  *ui.Formatter
	newStorage func(*config.Config) storage.Storage
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, formatter *ui.Formatter, newStorage func(*config.Config) storage.Storage) *HistoryCommand {
	return &HistoryCommand{
		config:     cfg,
		formatter:  formatter,
		newStorage: newStorage,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	records, err := hc.newStorage(hc.config).List(cmd.Context(), hc.config.Flags.Limit)
	if err != nil {
		return err
	}

	hc.formatter.SetOutput(cmd.OutOrStdout())
	hc.formatter.PrintHistory(records)
	return nil
}
