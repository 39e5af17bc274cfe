package gate

import (
	"fmt"

	"trp/internal/domain"
)

// Violation is a coverage metric that fell below its threshold
type Violation struct {
	Metric    string
	Actual    float64
	Threshold float64
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %.2f%% < %.2f%%", v.Metric, v.Actual, v.Threshold)
}

type metric struct {
	name      string
	actual    domain.Percent
	threshold *float64
}

// metrics are checked in this order: lines, statements, functions, branches
func metrics(data *domain.ParsedCoverageData, t domain.Thresholds) []metric {
	total := data.Total
	return []metric{
		{"lines", total.Lines.Pct, t.Lines},
		{"statements", total.Statements.Pct, t.Statements},
		{"functions", total.Functions.Pct, t.Functions},
		{"branches", total.Branches.Pct, t.Branches},
	}
}

// CheckThresholds returns false as soon as a configured metric is strictly
// below its threshold. Unset thresholds are ignored.
func CheckThresholds(data *domain.ParsedCoverageData, t domain.Thresholds) bool {
	for _, m := range metrics(data, t) {
		if m.threshold != nil && float64(m.actual) < *m.threshold {
			return false
		}
	}
	return true
}

// Violations lists every metric below its threshold
func Violations(data *domain.ParsedCoverageData, t domain.Thresholds) []Violation {
	var out []Violation
	for _, m := range metrics(data, t) {
		if m.threshold != nil && float64(m.actual) < *m.threshold {
			out = append(out, Violation{Metric: m.name, Actual: float64(m.actual), Threshold: *m.threshold})
		}
	}
	return out
}

// Messages renders violations for error reporting
func Messages(violations []Violation) []string {
	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, v.String())
	}
	return messages
}
