package execution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trp/internal/config"
	"trp/internal/domain"
	"trp/internal/logging"
)

type fakeParser struct {
	mu     sync.Mutex
	calls  []string
	failOn map[string]error
	empty  map[string]bool
}

func (p *fakeParser) Parse(_ context.Context, path string) (*domain.ParsedTestResults, error) {
	p.mu.Lock()
	p.calls = append(p.calls, path)
	p.mu.Unlock()

	if err, ok := p.failOn[path]; ok {
		return nil, err
	}
	if p.empty[path] {
		return &domain.ParsedTestResults{}, nil
	}
	return &domain.ParsedTestResults{
		Tests:      []domain.TestCase{{Title: path, Status: domain.StatusPassed}},
		Statistics: domain.TestStatistics{Total: 1, Passed: 1},
	}, nil
}

type recordingProgress struct {
	mu       sync.Mutex
	updates  int
	parsed   int
	failed   int
	finished bool
}

func (p *recordingProgress) Update(parsed, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates++
	p.parsed, p.failed = parsed, failed
}

func (p *recordingProgress) Finish() {
	p.finished = true
}

func newPool(processors int, p *fakeParser) *WorkerPool {
	cfg := config.New()
	cfg.Processors = processors
	return NewWorkerPool(cfg, NewRunner(p, logging.Discard()))
}

func paths(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("shard-%02d.json", i)
	}
	return out
}

func TestRunner_Run(t *testing.T) {
	boom := errors.New("boom")
	runner := NewRunner(&fakeParser{failOn: map[string]error{"bad.json": boom}}, logging.Discard())

	ok := runner.Run(context.Background(), "good.json")
	assert.True(t, ok.Success())
	assert.Equal(t, "good.json", ok.Path)
	require.NotNil(t, ok.Results)
	assert.Equal(t, 1, ok.Results.Statistics.Total)

	bad := runner.Run(context.Background(), "bad.json")
	assert.False(t, bad.Success())
	assert.ErrorIs(t, bad.Err, boom)
	assert.Nil(t, bad.Results)
}

func TestRunner_RunLogsEmptyReport(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	runner := NewRunner(&fakeParser{empty: map[string]bool{"coverage-summary.json": true}}, logrus.NewEntry(logger))

	empty := runner.Run(context.Background(), "coverage-summary.json")
	require.True(t, empty.Success())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "no tests")
	assert.Equal(t, "coverage-summary.json", hook.LastEntry().Data["file"])

	hook.Reset()
	runner.Run(context.Background(), "results.json")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "report parsed", hook.LastEntry().Message)
}

func TestWorkerPool_Execute(t *testing.T) {
	tests := []struct {
		name       string
		processors int
		files      int
	}{
		{"single worker", 1, 5},
		{"more workers than files", 8, 3},
		{"zero processors falls back to one", 0, 4},
		{"many files", 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeParser{}
			pool := newPool(tt.processors, p)
			progress := &recordingProgress{}
			pool.SetProgress(progress)
			input := paths(tt.files)

			results, _, err := pool.Execute(context.Background(), input)
			require.NoError(t, err)

			require.Len(t, results, tt.files)
			for i, r := range results {
				assert.Equal(t, input[i], r.Path, "results keep input order")
			}
			assert.Len(t, p.calls, tt.files)
			assert.Equal(t, tt.files, progress.updates)
			assert.Equal(t, tt.files, progress.parsed)
			assert.True(t, progress.finished)
		})
	}
}

func TestWorkerPool_Empty(t *testing.T) {
	results, elapsed, err := newPool(2, &fakeParser{}).Execute(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, results)
	assert.Zero(t, elapsed)
}

func TestWorkerPool_CollectsErrors(t *testing.T) {
	input := paths(6)
	p := &fakeParser{failOn: map[string]error{
		input[1]: errors.New("bad json"),
		input[4]: errors.New("missing"),
	}}

	results, _, err := newPool(3, p).Execute(context.Background(), input)

	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), input[1]+": bad json")
	assert.Contains(t, err.Error(), input[4]+": missing")

	require.Len(t, results, 6)
	assert.False(t, results[1].Success())
	assert.True(t, results[2].Success())
}

func TestWorkerPool_FailFast(t *testing.T) {
	input := paths(5)
	p := &fakeParser{failOn: map[string]error{input[0]: errors.New("bad json")}}

	results, _, err := newPool(1, p).ExecuteWithOptions(context.Background(), input, true)

	require.Error(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, input[0], results[0].Path)
	assert.Equal(t, []string{input[0]}, p.calls)
}

func TestWorkerPool_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, _, err := newPool(2, &fakeParser{}).Execute(ctx, paths(3))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
