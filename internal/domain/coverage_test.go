package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Percent
	}{
		{"number", `87.5`, 87.5},
		{"integer", `100`, 100},
		{"numeric string", `"42.25"`, 42.25},
		{"unknown string", `"Unknown"`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Percent(-1)
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))
			assert.Equal(t, tt.expected, p)
		})
	}

	var p Percent
	assert.Error(t, json.Unmarshal([]byte(`{}`), &p))
}

func TestCoverageSummary_UnmarshalJSON(t *testing.T) {
	input := `{
		"total": {"lines": {"total": 10, "covered": 8, "skipped": 0, "pct": 80}},
		"/src/a.ts": {"lines": {"pct": "Unknown"}, "branches": {"pct": 50}}
	}`

	var s CoverageSummary
	require.NoError(t, json.Unmarshal([]byte(input), &s))

	require.NotNil(t, s.Total)
	assert.Equal(t, Percent(80), s.Total.Lines.Pct)
	assert.Equal(t, 8, s.Total.Lines.Covered)
	require.Len(t, s.Files, 1)
	assert.NotContains(t, s.Files, TotalKey)
	assert.Equal(t, Percent(0), s.Files["/src/a.ts"].Lines.Pct)
	assert.Equal(t, Percent(50), s.Files["/src/a.ts"].Branches.Pct)
}

func TestCoverageSummary_NoTotal(t *testing.T) {
	var s CoverageSummary
	require.NoError(t, json.Unmarshal([]byte(`{"/src/a.ts": {}}`), &s))
	assert.Nil(t, s.Total)
	assert.Len(t, s.Files, 1)
}

func TestCoverageSummary_BadEntry(t *testing.T) {
	var s CoverageSummary
	err := json.Unmarshal([]byte(`{"/src/a.ts": []}`), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"/src/a.ts"`)

	var typeErr *json.UnmarshalTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestThresholds_IsZero(t *testing.T) {
	assert.True(t, Thresholds{}.IsZero())
	v := 80.0
	assert.False(t, Thresholds{Branches: &v}.IsZero())
}
