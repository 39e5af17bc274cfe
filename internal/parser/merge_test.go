package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trp/internal/domain"
)

func TestMergeResults(t *testing.T) {
	shard1 := parseReport(t, `{"suites": [{"title": "A", "specs": [
		{"title": "ok", "tests": [{"results": [{"status": "passed", "duration": 10}]}]},
		{"title": "bad", "tests": [{"results": [{"status": "failed", "duration": 5, "error": {"message": "expect"}}]}]}
	]}]}`)
	shard2 := parseReport(t, `{"stats": {"expected": 3, "unexpected": 1, "flaky": 1, "duration": 100},
		"suites": [{"title": "B", "specs": [
		{"title": "slow", "tests": [{"results": [{"status": "timedOut"}]}]},
		{"title": "wobbly", "tests": [{"results": [{"status": "failed"}, {"status": "passed"}]}]}
	]}]}`)

	merged := MergeResults(shard1, nil, shard2)

	require.Len(t, merged.Tests, 4)
	assert.Equal(t, "A › ok", merged.Tests[0].FullTitle)
	assert.Equal(t, "B › wobbly", merged.Tests[3].FullTitle)
	require.Len(t, merged.Failures, 2)
	assert.Equal(t, "A › bad", merged.Failures[0].FullTitle)
	assert.Equal(t, "B › slow", merged.Failures[1].FullTitle)
	require.Len(t, merged.Flaky, 1)
	assert.Len(t, merged.Categories.Assertions, 1)
	assert.Len(t, merged.Categories.Timeouts, 1)

	assert.Equal(t, domain.TestStatistics{
		Total:    2 + 5,
		Passed:   1 + 3,
		Failed:   1 + 1,
		Flaky:    0 + 1,
		Duration: 15 + 100,
	}, merged.Statistics)
}

func TestMergeResults_Single(t *testing.T) {
	single := parseReport(t, `{"suites": [{"title": "A", "specs": [
		{"title": "ok", "tests": [{"results": [{"status": "passed", "duration": 10}]}]}
	]}]}`)

	assert.Equal(t, single, MergeResults(single))
}

func TestMergeResults_None(t *testing.T) {
	merged := MergeResults()

	assert.Empty(t, merged.Tests)
	assert.Equal(t, domain.TestStatistics{}, merged.Statistics)
	assert.Equal(t, 0, merged.Categories.Len())
}
