package execution

import (
	"context"
	"time"
)

// Executor parses a batch of report files
type Executor interface {
	Execute(ctx context.Context, paths []string) ([]Result, time.Duration, error)
}

// Progress receives batch progress updates
type Progress interface {
	Update(parsed, failed int)
	Finish()
}
