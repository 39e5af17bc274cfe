package discovery

import (
	"path/filepath"
	"strings"
)

// Filter narrows report files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the reports whose base name matches pattern.
// Supports globs like "results-*.json", loose wildcards like "*shard*"
// and plain substrings. An empty pattern keeps everything.
func (f *Filter) FilterByName(reports []string, pattern string) []string {
	if pattern == "" {
		return reports
	}

	var filtered []string
	for _, report := range reports {
		if matchName(filepath.Base(report), pattern) {
			filtered = append(filtered, report)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	// Fall back to checking that every literal fragment appears in order
	rest := name
	matchedAny := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		matchedAny = true
	}
	return matchedAny
}
