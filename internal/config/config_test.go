package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultWorkspaceRoot, cfg.WorkspaceRoot)
	assert.Equal(t, DefaultProcessors, cfg.Processors)
	assert.Len(t, cfg.PathsToIgnore, len(DefaultPathsToIgnore))
	assert.Equal(t, DefaultPlaywrightTitle, cfg.Playwright.Title)
	assert.True(t, cfg.Playwright.IncludeFailureDetails)
	assert.True(t, cfg.Playwright.IncludeFlakyTests)
	assert.True(t, cfg.Playwright.ShowDuration)
	assert.Equal(t, DefaultMaxFailuresToShow, cfg.Playwright.MaxFailuresToShow)
	assert.Equal(t, DefaultVitestTitle, cfg.Vitest.Title)
	assert.Equal(t, DefaultMaxFiles, cfg.Vitest.MaxFiles)
	assert.False(t, cfg.Vitest.UseEmoji)
	assert.True(t, cfg.Vitest.Thresholds.IsZero())

	// The default slice must not be shared
	cfg.PathsToIgnore[0] = "changed"
	assert.NotEqual(t, "changed", DefaultPathsToIgnore[0])
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, New(), cfg)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultProcessors, cfg.Processors)
	})

	t.Run("file overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".trp.yaml")
		content := `processors: 8
playwright:
  title: "E2E"
  max_failures_to_show: 3
vitest:
  use_emoji: true
  thresholds:
    lines: 80
    branches: 70.5
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 8, cfg.Processors)
		assert.Equal(t, "E2E", cfg.Playwright.Title)
		assert.Equal(t, 3, cfg.Playwright.MaxFailuresToShow)
		assert.True(t, cfg.Playwright.ShowDuration, "unset keys keep defaults")
		assert.True(t, cfg.Vitest.UseEmoji)
		require.NotNil(t, cfg.Vitest.Thresholds.Lines)
		assert.Equal(t, 80.0, *cfg.Vitest.Thresholds.Lines)
		require.NotNil(t, cfg.Vitest.Thresholds.Branches)
		assert.Equal(t, 70.5, *cfg.Vitest.Thresholds.Branches)
		assert.Nil(t, cfg.Vitest.Thresholds.Functions)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".trp.yaml")
		require.NoError(t, os.WriteFile(path, []byte("processors: [1, 2"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestConfig_LoadEnv(t *testing.T) {
	t.Run("builds workflow run url from github variables", func(t *testing.T) {
		t.Setenv("TRP_WORKFLOW_RUN_URL", "")
		t.Setenv("GITHUB_SERVER_URL", "https://github.com/")
		t.Setenv("GITHUB_REPOSITORY", "arolariu/arolariu.ro")
		t.Setenv("GITHUB_RUN_ID", "42")
		t.Setenv("GITHUB_STEP_SUMMARY", "/tmp/summary.md")
		t.Setenv("TRP_HISTORY_DSN", "")

		cfg := New()
		cfg.LoadEnv(t.TempDir())

		assert.Equal(t, "https://github.com/arolariu/arolariu.ro/actions/runs/42", cfg.WorkflowRunURL)
		assert.Equal(t, "/tmp/summary.md", cfg.StepSummaryPath)
		assert.Empty(t, cfg.HistoryDSN)
	})

	t.Run("explicit url wins", func(t *testing.T) {
		t.Setenv("TRP_WORKFLOW_RUN_URL", "https://ci.example/run/7")
		t.Setenv("GITHUB_SERVER_URL", "https://github.com")
		t.Setenv("GITHUB_REPOSITORY", "o/r")
		t.Setenv("GITHUB_RUN_ID", "1")

		cfg := New()
		cfg.LoadEnv(t.TempDir())

		assert.Equal(t, "https://ci.example/run/7", cfg.WorkflowRunURL)
	})

	t.Run("reads dotenv file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("TRP_HISTORY_DSN", "")
		// godotenv does not override variables that are already set
		os.Unsetenv("TRP_HISTORY_DSN")
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRP_HISTORY_DSN=root@tcp(127.0.0.1:3306)/ci\n"), 0644))

		cfg := New()
		cfg.LoadEnv(dir)

		assert.Equal(t, "root@tcp(127.0.0.1:3306)/ci", cfg.HistoryDSN)
	})
}

func TestConfig_Paths(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected []string
	}{
		{
			name:     "default results path",
			config:   &Config{WorkspaceRoot: "/project", ResultsPath: DefaultResultsPath},
			expected: []string{"/project/test-results/results.json"},
		},
		{
			name: "flag paths relative to workspace",
			config: &Config{
				WorkspaceRoot: "/project",
				ResultsPath:   DefaultResultsPath,
				Flags:         Flags{ResultsPaths: []string{"shard-1.json", "/abs/shard-2.json"}},
			},
			expected: []string{"/project/shard-1.json", "/abs/shard-2.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.GetResultsPaths())
		})
	}

	t.Run("coverage path", func(t *testing.T) {
		cfg := New()
		cfg.WorkspaceRoot = "/project"
		cfg.ApplyFlags(Flags{CoveragePath: "sites/web/coverage/coverage-summary.json"})
		assert.Equal(t, "/project/sites/web/coverage/coverage-summary.json", cfg.GetCoveragePath())
	})

	t.Run("output path prefers flag over step summary", func(t *testing.T) {
		cfg := New()
		cfg.StepSummaryPath = "/summary.md"
		assert.Equal(t, "/summary.md", cfg.GetOutputPath())

		cfg.ApplyFlags(Flags{OutputPath: "out.md"})
		assert.Equal(t, "out.md", cfg.GetOutputPath())
	})

	t.Run("results dir unset", func(t *testing.T) {
		assert.Equal(t, "", New().GetResultsDir())
	})

	t.Run("history path is absolute", func(t *testing.T) {
		assert.True(t, filepath.IsAbs(New().GetHistoryPath()))
	})
}
