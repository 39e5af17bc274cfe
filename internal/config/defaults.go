package config

const (
	// DefaultWorkspaceRoot is the default workspace root used for relative paths
	DefaultWorkspaceRoot = "."
	// DefaultConfigFile is the optional YAML settings file looked up in the workspace root
	DefaultConfigFile = ".trp.yaml"
	// DefaultResultsPath is the default Playwright JSON reporter output
	DefaultResultsPath = "test-results/results.json"
	// DefaultCoveragePath is the default Vitest json-summary output
	DefaultCoveragePath = "coverage/coverage-summary.json"
	// DefaultOutputDir is the default directory for local state
	DefaultOutputDir = ".trp"
	// DefaultHistoryFile is the default history file name
	DefaultHistoryFile = "history.json"
	// DefaultHistoryTable is the default MySQL history table
	DefaultHistoryTable = "trp_runs"
	// DefaultProcessors is the default number of parse workers
	DefaultProcessors = 4
	// DefaultLogLevel is the default logrus level
	DefaultLogLevel = "info"

	// DefaultPlaywrightTitle is the default Playwright section title
	DefaultPlaywrightTitle = "🎭 Playwright Tests"
	// DefaultMaxFailuresToShow is the default number of failures rendered
	DefaultMaxFailuresToShow = 10
	// DefaultVitestTitle is the default Vitest section title
	DefaultVitestTitle = "🧪 Vitest Unit Tests"
	// DefaultMaxFiles is the default number of per-file coverage rows
	DefaultMaxFiles = 20
)

// DefaultPathsToIgnore are the directories skipped when scanning for result files
var DefaultPathsToIgnore = []string{
	"node_modules",
	"playwright-report",
	"blob-report",
	"trace",
}
