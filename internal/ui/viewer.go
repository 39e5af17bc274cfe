package ui

import "trp/internal/domain"

// Viewer displays test failures in an interactive TUI
type Viewer interface {
	View(failures []domain.TestCase) error
}
