package commands

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"trp/internal/cli"
	"trp/internal/config"
	"trp/internal/discovery"
	"trp/internal/execution"
	"trp/internal/logging"
	"trp/internal/parser"
	"trp/internal/storage"
	"trp/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Playwright *PlaywrightCommand
	Vitest     *VitestCommand
	Summary    *SummaryCommand
	Failures   *FailuresCommand
	History    *HistoryCommand
	List       *ListCommand

	log *logrus.Entry
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, log *logrus.Entry) *Commands {
	// Initialize dependencies
	reader := storage.NewOSFileReader()
	filter := discovery.NewFilter()
	resultsParser := parser.NewPlaywrightParser(reader)
	coverageParser := parser.NewVitestParser(reader)
	runner := execution.NewRunner(resultsParser, log)
	executor := execution.NewWorkerPool(cfg, runner)
	formatter := ui.NewFormatter(cfg, nil)
	errorViewer := ui.NewErrorViewer()
	locator := newReportLocator(cfg, reader, filter)

	playwright := NewPlaywrightCommand(cfg, log, locator, executor, formatter, storage.New)
	vitest := NewVitestCommand(cfg, log, coverageParser, formatter, storage.New)

	return &Commands{
		Playwright: playwright,
		Vitest:     vitest,
		Summary:    NewSummaryCommand(cfg, log, playwright, vitest),
		Failures:   NewFailuresCommand(cfg, log, locator, executor, errorViewer),
		History:    NewHistoryCommand(cfg, formatter, storage.New),
		List:       NewListCommand(cfg, locator, formatter),
		log:        log,
	}
}

// Register registers the root flags and all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Path to the YAML settings file (default: <workspace>/"+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVarP(&flags.Workspace, "workspace", "w", "", "Workspace root used to resolve relative paths")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&flags.OutputPath, "output", "o", "", "Append markdown to this file instead of $GITHUB_STEP_SUMMARY or stdout")
	rootCmd.PersistentFlags().StringVar(&flags.WorkflowRunURL, "workflow-run-url", "", "Workflow run URL used for the report link")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.loadConfig(flags, cfg)
	}

	// Playwright command
	playwrightCmd := &cobra.Command{
		Use:   "playwright",
		Short: "Render a Playwright JSON report as markdown",
		Long:  "Parse one or more Playwright JSON reports, merge them and append a markdown summary",
		Args:  cobra.NoArgs,
		RunE:  c.Playwright.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, flags, cfg)
			return nil
		},
	}
	addResultsFlags(playwrightCmd, flags)
	playwrightCmd.Flags().StringVar(&flags.JobStatus, "job-status", "", "Job status used for a status-only section when no report exists (success, failure, ...)")
	playwrightCmd.Flags().IntVar(&flags.MaxFailuresToShow, "max-failures", config.DefaultMaxFailuresToShow, "Maximum number of failures to detail")
	playwrightCmd.Flags().BoolVar(&flags.FailOnFailures, "fail-on-failures", false, "Exit with an error when any test failed")
	playwrightCmd.Flags().BoolVar(&flags.Record, "record", false, "Record the run in the history store")
	rootCmd.AddCommand(playwrightCmd)

	// Vitest command
	vitestCmd := &cobra.Command{
		Use:   "vitest",
		Short: "Render a Vitest coverage summary as markdown",
		Long:  "Parse a coverage-summary.json file, append a markdown summary and enforce coverage thresholds",
		Args:  cobra.NoArgs,
		RunE:  c.Vitest.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, flags, cfg)
			return nil
		},
	}
	addCoverageFlags(vitestCmd, flags)
	vitestCmd.Flags().BoolVar(&flags.Record, "record", false, "Record the run in the history store")
	rootCmd.AddCommand(vitestCmd)

	// Summary command
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Render Playwright and Vitest sections together",
		Long:  "Build the Playwright and Vitest sections concurrently and append them in a fixed order",
		Args:  cobra.NoArgs,
		RunE:  c.Summary.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, flags, cfg)
			return nil
		},
	}
	addResultsFlags(summaryCmd, flags)
	addCoverageFlags(summaryCmd, flags)
	summaryCmd.Flags().StringVar(&flags.JobStatus, "job-status", "", "Job status used for a status-only section when no report exists")
	summaryCmd.Flags().IntVar(&flags.MaxFailuresToShow, "max-failures", config.DefaultMaxFailuresToShow, "Maximum number of failures to detail")
	rootCmd.AddCommand(summaryCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display the failures of Playwright reports in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, flags, cfg)
			return nil
		},
	}
	addResultsFlags(failuresCmd, flags)
	rootCmd.AddCommand(failuresCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Long:  "List runs recorded with --record, newest first",
		Args:  cobra.NoArgs,
		RunE:  c.History.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, flags, cfg)
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered report files",
		Long:  "Scan a directory for Playwright JSON reports without parsing them",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, flags, cfg)
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.ResultsDir, "results-dir", "d", "", "Directory to scan (default: workspace root)")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter reports by name pattern (supports wildcards, e.g. 'results-*.json')")
	rootCmd.AddCommand(listCmd)
}

func addResultsFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringSliceVarP(&flags.ResultsPaths, "results", "r", nil, "Playwright JSON report (repeatable; default: "+config.DefaultResultsPath+")")
	cmd.Flags().StringVarP(&flags.ResultsDir, "results-dir", "d", "", "Directory to scan for Playwright JSON reports")
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter scanned reports by name pattern (supports wildcards)")
	cmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of reports parsed in parallel")
	cmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop parsing after the first unreadable report")
}

func addCoverageFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.CoveragePath, "coverage", "c", "", "Vitest coverage summary (default: "+config.DefaultCoveragePath+")")
	cmd.Flags().Float64Var(&flags.Lines, "lines", 0, "Minimum line coverage percentage")
	cmd.Flags().Float64Var(&flags.Statements, "statements", 0, "Minimum statement coverage percentage")
	cmd.Flags().Float64Var(&flags.Functions, "functions", 0, "Minimum function coverage percentage")
	cmd.Flags().Float64Var(&flags.Branches, "branches", 0, "Minimum branch coverage percentage")
	cmd.Flags().BoolVar(&flags.FileBreakdown, "file-breakdown", false, "Include the per-file coverage table")
	cmd.Flags().BoolVar(&flags.UseEmoji, "emoji", false, "Prefix totals with a traffic-light emoji")
	cmd.Flags().IntVar(&flags.MaxFiles, "max-files", config.DefaultMaxFiles, "Maximum number of per-file rows")
}

// loadConfig overlays the settings file and environment onto cfg.
// Runs before any command so every command sees the same settings.
func (c *Commands) loadConfig(flags *cli.Flags, cfg *config.Config) error {
	workspace := flags.Workspace
	if workspace == "" {
		workspace = config.DefaultWorkspaceRoot
	}

	path := flags.ConfigPath
	if path == "" {
		path = filepath.Join(workspace, config.DefaultConfigFile)
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	*cfg = *loaded
	if flags.Workspace != "" || cfg.WorkspaceRoot == "" {
		cfg.WorkspaceRoot = workspace
	}
	cfg.LoadEnv(cfg.WorkspaceRoot)

	level := cfg.LogLevel
	if flags.LogLevel != "" {
		level = flags.LogLevel
	}
	if err := logging.SetLevel(c.log, level); err != nil {
		return err
	}
	c.log.WithField("workspace", cfg.WorkspaceRoot).WithField("config", path).Debug("configuration loaded")
	return nil
}

// applyFlags copies the flags a command defines onto cfg. Only flags the
// user set override values from the settings file.
func applyFlags(cmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	cfg.ApplyFlags(flags.ToConfigFlags())
	changed := cmd.Flags().Changed

	if changed("processors") && flags.Processors > 0 {
		cfg.Processors = flags.Processors
	}
	if changed("max-failures") {
		cfg.Playwright.MaxFailuresToShow = flags.MaxFailuresToShow
	}
	if changed("max-files") {
		cfg.Vitest.MaxFiles = flags.MaxFiles
	}
	if changed("file-breakdown") {
		cfg.Vitest.IncludeFileBreakdown = flags.FileBreakdown
	}
	if changed("emoji") {
		cfg.Vitest.UseEmoji = flags.UseEmoji
	}

	thresholds := &cfg.Vitest.Thresholds
	for name, target := range map[string]struct {
		value float64
		dst   **float64
	}{
		"lines":      {flags.Lines, &thresholds.Lines},
		"statements": {flags.Statements, &thresholds.Statements},
		"functions":  {flags.Functions, &thresholds.Functions},
		"branches":   {flags.Branches, &thresholds.Branches},
	} {
		if changed(name) {
			v := target.value
			*target.dst = &v
		}
	}
}
