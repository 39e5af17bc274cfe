// Package errors provides the error types surfaced by report parsing and
// the helpers used to attach stack traces at command boundaries.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
)

// NotFoundError is returned when a report file does not exist
type NotFoundError struct {
	Subject string // e.g. "Playwright results file"
	Path    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Subject, e.Path)
}

// MissingFieldError is returned when a decoded report lacks a required field
type MissingFieldError struct {
	Subject string // e.g. "Coverage data"
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s missing '%s' property", e.Subject, e.Field)
}

// ThresholdError is returned when coverage falls below configured minimums
type ThresholdError struct {
	Violations []string
}

func (e *ThresholdError) Error() string {
	return "coverage below threshold: " + strings.Join(e.Violations, ", ")
}

// NotFound creates a NotFoundError
func NotFound(subject, path string) *NotFoundError {
	return &NotFoundError{Subject: subject, Path: path}
}

// MissingField creates a MissingFieldError
func MissingField(subject, field string) *MissingFieldError {
	return &MissingFieldError{Subject: subject, Field: field}
}

// IsNotFound reports whether err (or anything it wraps) is a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

// IsMissingField reports whether err (or anything it wraps) is a MissingFieldError
func IsMissingField(err error) bool {
	var target *MissingFieldError
	return stderrors.As(err, &target)
}

// IsThreshold reports whether err (or anything it wraps) is a ThresholdError
func IsThreshold(err error) bool {
	var target *ThresholdError
	return stderrors.As(err, &target)
}

// WithStackTrace wraps err with the caller's stack trace. If err already
// carries one it is kept. Returns nil for a nil error.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix is WithStackTrace with a formatted message prepended
func WithStackTraceAndPrefix(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// PrintErrorWithStackTrace renders err including its stack trace if it has one
func PrintErrorWithStackTrace(err error) string {
	if err == nil {
		return ""
	}
	var goErr *goerrors.Error
	if stderrors.As(err, &goErr) {
		return goErr.ErrorStack()
	}
	return err.Error()
}
