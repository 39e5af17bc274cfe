package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"trp/internal/domain"
)

func failure(title string, status domain.TestStatus, message string) domain.TestCase {
	tc := domain.TestCase{Title: title, FullTitle: title, File: "a.spec.ts", Status: status}
	if message != "" {
		tc.Error = &domain.TestError{Message: message}
	}
	return tc
}

func TestCategorizeFailures(t *testing.T) {
	tests := []struct {
		name     string
		failure  domain.TestCase
		category string
	}{
		{
			name:     "timed out wins over assertion message",
			failure:  failure("t1", domain.StatusTimedOut, "expect(locator).toBeVisible()"),
			category: "timeouts",
		},
		{
			name:     "expect in message",
			failure:  failure("t2", domain.StatusFailed, "Error: expect(received).toBe(expected)"),
			category: "assertions",
		},
		{
			name:     "match is case insensitive",
			failure:  failure("t3", domain.StatusFailed, "EXPECTED 3 ITEMS"),
			category: "assertions",
		},
		{
			name:     "no error",
			failure:  failure("t4", domain.StatusFailed, ""),
			category: "other",
		},
		{
			name:     "unrelated message",
			failure:  failure("t5", domain.StatusFailed, "net::ERR_CONNECTION_REFUSED"),
			category: "other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := CategorizeFailures([]domain.TestCase{tt.failure})

			got := map[string]int{
				"assertions": len(categories.Assertions),
				"timeouts":   len(categories.Timeouts),
				"other":      len(categories.Other),
			}
			for category, count := range got {
				if category == tt.category {
					assert.Equal(t, 1, count, category)
				} else {
					assert.Equal(t, 0, count, category)
				}
			}
		})
	}
}

func TestCategorizeFailures_Partition(t *testing.T) {
	var failures []domain.TestCase
	for i := 0; i < 30; i++ {
		switch i % 3 {
		case 0:
			failures = append(failures, failure(fmt.Sprintf("t%d", i), domain.StatusTimedOut, ""))
		case 1:
			failures = append(failures, failure(fmt.Sprintf("t%d", i), domain.StatusFailed, "expect failed"))
		default:
			failures = append(failures, failure(fmt.Sprintf("t%d", i), domain.StatusFailed, "boom"))
		}
	}

	categories := CategorizeFailures(failures)

	assert.Equal(t, len(failures), categories.Len())

	seen := make(map[string]int)
	for _, list := range [][]domain.TestCase{categories.Assertions, categories.Timeouts, categories.Other} {
		for _, tc := range list {
			seen[tc.Title]++
		}
	}
	assert.Len(t, seen, len(failures))
	for title, count := range seen {
		assert.Equal(t, 1, count, title)
	}

	// Order within a category follows the input
	assert.Equal(t, "t0", categories.Timeouts[0].Title)
	assert.Equal(t, "t3", categories.Timeouts[1].Title)
	assert.Equal(t, "t1", categories.Assertions[0].Title)
	assert.Equal(t, "t2", categories.Other[0].Title)
}

func TestCategorizeFailures_Empty(t *testing.T) {
	categories := CategorizeFailures(nil)

	assert.NotNil(t, categories.Assertions)
	assert.NotNil(t, categories.Timeouts)
	assert.NotNil(t, categories.Other)
	assert.Equal(t, 0, categories.Len())
}
