package parser

import (
	"strings"

	"trp/internal/domain"
)

// CategorizeFailures partitions failures into timeouts, assertion failures
// and everything else. Order within each category follows the input.
func CategorizeFailures(failures []domain.TestCase) domain.FailureCategories {
	categories := domain.FailureCategories{
		Assertions: make([]domain.TestCase, 0),
		Timeouts:   make([]domain.TestCase, 0),
		Other:      make([]domain.TestCase, 0),
	}

	for _, failure := range failures {
		switch {
		case failure.Status == domain.StatusTimedOut:
			categories.Timeouts = append(categories.Timeouts, failure)
		case failure.Error != nil && strings.Contains(strings.ToLower(failure.Error.Message), "expect"):
			categories.Assertions = append(categories.Assertions, failure)
		default:
			categories.Other = append(categories.Other, failure)
		}
	}

	return categories
}
