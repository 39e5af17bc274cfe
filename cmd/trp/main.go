package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"trp/internal/cli"
	"trp/internal/cli/commands"
	"trp/internal/config"
	trperrors "trp/internal/errors"
	"trp/internal/logging"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "trp",
		Short:         "Test report processor",
		Long:          `Turns Playwright JSON reports and Vitest coverage summaries into markdown job summaries, with coverage gates and run history.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults; the settings file is loaded once flags are parsed
	cfg := config.New()
	log := logging.New(config.DefaultLogLevel, os.Stderr)

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, log)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
			fmt.Fprintln(os.Stderr, trperrors.PrintErrorWithStackTrace(err))
		}
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
