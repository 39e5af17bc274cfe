package domain

// FailureCategories partitions failing tests by cause.
// Every failing test appears in exactly one list.
type FailureCategories struct {
	Assertions []TestCase `json:"assertions"`
	Timeouts   []TestCase `json:"timeouts"`
	Other      []TestCase `json:"other"`
}

// Len returns the number of categorized failures
func (c FailureCategories) Len() int {
	return len(c.Assertions) + len(c.Timeouts) + len(c.Other)
}
