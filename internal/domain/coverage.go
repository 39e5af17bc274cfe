package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// TotalKey is the reserved key holding aggregate coverage in a summary file
const TotalKey = "total"

// Percent is a coverage percentage. Istanbul writes "Unknown" for files
// without any instrumented code, which decodes to 0.
type Percent float64

// UnmarshalJSON accepts numbers, numeric strings and non-numeric strings
func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*p = 0
			return nil
		}
		*p = Percent(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Percent(v)
	return nil
}

// CoverageStats holds one coverage metric
type CoverageStats struct {
	Total   int     `json:"total"`
	Covered int     `json:"covered"`
	Skipped int     `json:"skipped"`
	Pct     Percent `json:"pct"`
}

// CoverageFileSummary holds the four coverage metrics of a file (or of the total)
type CoverageFileSummary struct {
	Lines      CoverageStats `json:"lines"`
	Statements CoverageStats `json:"statements"`
	Functions  CoverageStats `json:"functions"`
	Branches   CoverageStats `json:"branches"`
}

// CoverageSummary is the raw content of a coverage-summary.json file.
// The reserved "total" key is lifted into Total; every other key is a file.
type CoverageSummary struct {
	Total *CoverageFileSummary
	Files map[string]CoverageFileSummary
}

// UnmarshalJSON splits the flat summary object into total and per-file entries
func (s *CoverageSummary) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Total = nil
	s.Files = make(map[string]CoverageFileSummary, len(raw))
	for key, value := range raw {
		var summary CoverageFileSummary
		if err := json.Unmarshal(value, &summary); err != nil {
			return fmt.Errorf("decode coverage entry %q: %w", key, err)
		}
		if key == TotalKey {
			total := summary
			s.Total = &total
			continue
		}
		s.Files[key] = summary
	}
	return nil
}

// FileCoverage is the coverage of a single source file
type FileCoverage struct {
	FilePath string              `json:"file_path"`
	Coverage CoverageFileSummary `json:"coverage"`
}

// ParsedCoverageData is the normalized coverage summary.
// Files never contains the total entry and is sorted by FilePath.
type ParsedCoverageData struct {
	Total CoverageFileSummary `json:"total"`
	Files []FileCoverage      `json:"files"`
}

// Thresholds are minimum coverage percentages; nil fields are not checked
type Thresholds struct {
	Lines      *float64 `yaml:"lines" json:"lines,omitempty"`
	Statements *float64 `yaml:"statements" json:"statements,omitempty"`
	Functions  *float64 `yaml:"functions" json:"functions,omitempty"`
	Branches   *float64 `yaml:"branches" json:"branches,omitempty"`
}

// IsZero reports whether no threshold is set
func (t Thresholds) IsZero() bool {
	return t.Lines == nil && t.Statements == nil && t.Functions == nil && t.Branches == nil
}
