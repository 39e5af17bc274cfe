package cli

import "trp/internal/config"

// Flags holds command-line flags
type Flags struct {
	// Root flags
	ConfigPath string
	Workspace  string
	LogLevel   string

	// Playwright input
	ResultsPaths []string
	ResultsDir   string
	NameFilter   string
	Processors   int
	FailFast     bool
	JobStatus    string

	// Vitest input and gate
	CoveragePath  string
	Lines         float64
	Statements    float64
	Functions     float64
	Branches      float64
	FileBreakdown bool
	UseEmoji      bool

	// Output
	WorkflowRunURL    string
	OutputPath        string
	MaxFailuresToShow int
	MaxFiles          int
	Record            bool
	FailOnFailures    bool
	Limit             int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ResultsPaths:   f.ResultsPaths,
		ResultsDir:     f.ResultsDir,
		NameFilter:     f.NameFilter,
		CoveragePath:   f.CoveragePath,
		JobStatus:      f.JobStatus,
		WorkflowRunURL: f.WorkflowRunURL,
		OutputPath:     f.OutputPath,
		Record:         f.Record,
		FailOnFailures: f.FailOnFailures,
		FailFast:       f.FailFast,
		Limit:          f.Limit,
	}
}
