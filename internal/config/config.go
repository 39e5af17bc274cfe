package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"trp/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	// Workspace settings
	WorkspaceRoot string `yaml:"workspace_root"`
	ResultsPath   string `yaml:"results_path"`
	CoveragePath  string `yaml:"coverage_path"`

	// Output settings
	OutputDir       string `yaml:"output_dir"`
	HistoryFile     string `yaml:"history_file"`
	HistoryTable    string `yaml:"history_table"`
	HistoryDSN      string `yaml:"history_dsn"`
	StepSummaryPath string `yaml:"-"`

	// CI settings
	WorkflowRunURL string `yaml:"workflow_run_url"`

	// Execution settings
	Processors int    `yaml:"processors"`
	LogLevel   string `yaml:"log_level"`

	// Paths to ignore when scanning
	PathsToIgnore []string `yaml:"paths_to_ignore"`

	Playwright PlaywrightSettings `yaml:"playwright"`
	Vitest     VitestSettings     `yaml:"vitest"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// PlaywrightSettings configures the Playwright markdown section
type PlaywrightSettings struct {
	Title                 string `yaml:"title"`
	IncludeFailureDetails bool   `yaml:"include_failure_details"`
	MaxFailuresToShow     int    `yaml:"max_failures_to_show"`
	IncludeFlakyTests     bool   `yaml:"include_flaky_tests"`
	ShowDuration          bool   `yaml:"show_duration"`
}

// VitestSettings configures the Vitest markdown section and coverage gate
type VitestSettings struct {
	Title                string            `yaml:"title"`
	IncludeFileBreakdown bool              `yaml:"include_file_breakdown"`
	MaxFiles             int               `yaml:"max_files"`
	UseEmoji             bool              `yaml:"use_emoji"`
	Thresholds           domain.Thresholds `yaml:"thresholds"`
}

// Flags holds command-line flags
type Flags struct {
	ResultsPaths   []string
	ResultsDir     string
	NameFilter     string
	CoveragePath   string
	JobStatus      string
	WorkflowRunURL string
	OutputPath     string
	Record         bool
	FailOnFailures bool
	FailFast       bool
	Limit          int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		WorkspaceRoot: DefaultWorkspaceRoot,
		ResultsPath:   DefaultResultsPath,
		CoveragePath:  DefaultCoveragePath,
		OutputDir:     DefaultOutputDir,
		HistoryFile:   DefaultHistoryFile,
		HistoryTable:  DefaultHistoryTable,
		Processors:    DefaultProcessors,
		LogLevel:      DefaultLogLevel,
		Playwright: PlaywrightSettings{
			Title:                 DefaultPlaywrightTitle,
			IncludeFailureDetails: true,
			MaxFailuresToShow:     DefaultMaxFailuresToShow,
			IncludeFlakyTests:     true,
			ShowDuration:          true,
		},
		Vitest: VitestSettings{
			Title:    DefaultVitestTitle,
			MaxFiles: DefaultMaxFiles,
		},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config with defaults and overlays the YAML file at path.
// A missing file is not an error; keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads a .env file from dir (if present) and applies CI environment variables
func (c *Config) LoadEnv(dir string) {
	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	if url := workflowRunURLFromEnv(); url != "" {
		c.WorkflowRunURL = url
	}
	if path := os.Getenv("GITHUB_STEP_SUMMARY"); path != "" {
		c.StepSummaryPath = path
	}
	if dsn := os.Getenv("TRP_HISTORY_DSN"); dsn != "" {
		c.HistoryDSN = dsn
	}
}

// workflowRunURLFromEnv prefers an explicit URL, then builds one from the GitHub Actions variables
func workflowRunURLFromEnv() string {
	if url := os.Getenv("TRP_WORKFLOW_RUN_URL"); url != "" {
		return url
	}
	server := os.Getenv("GITHUB_SERVER_URL")
	repo := os.Getenv("GITHUB_REPOSITORY")
	runID := os.Getenv("GITHUB_RUN_ID")
	if server == "" || repo == "" || runID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/actions/runs/%s", strings.TrimSuffix(server, "/"), repo, runID)
}

// ApplyFlags copies flag values that override file and environment settings
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.WorkflowRunURL != "" {
		c.WorkflowRunURL = flags.WorkflowRunURL
	}
	if flags.CoveragePath != "" {
		c.CoveragePath = flags.CoveragePath
	}
}

// GetResultsPaths returns the Playwright result files named by flags, or the default
func (c *Config) GetResultsPaths() []string {
	if len(c.Flags.ResultsPaths) == 0 {
		return []string{c.resolve(c.ResultsPath)}
	}
	paths := make([]string, 0, len(c.Flags.ResultsPaths))
	for _, p := range c.Flags.ResultsPaths {
		paths = append(paths, c.resolve(p))
	}
	return paths
}

// GetResultsDir returns the directory to scan for result files, or "" when not set
func (c *Config) GetResultsDir() string {
	if c.Flags.ResultsDir == "" {
		return ""
	}
	return c.resolve(c.Flags.ResultsDir)
}

// GetCoveragePath returns the coverage summary path
func (c *Config) GetCoveragePath() string {
	return c.resolve(c.CoveragePath)
}

// GetHistoryPath returns the full path to the history JSON file.
// Resolves to an absolute path so every command reads/writes the same file regardless of cwd.
func (c *Config) GetHistoryPath() string {
	p := filepath.Join(c.WorkspaceRoot, c.OutputDir, c.HistoryFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetOutputPath returns where markdown is appended: the flag, then the step summary, else "" for stdout
func (c *Config) GetOutputPath() string {
	if c.Flags.OutputPath != "" {
		return c.Flags.OutputPath
	}
	return c.StepSummaryPath
}

// resolve makes relative paths relative to the workspace root
func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.WorkspaceRoot, path)
}
