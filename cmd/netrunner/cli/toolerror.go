// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies command failures so scripts can decide
// whether to fix input, log in, or retry.
type ErrorCategory string

const (
	// CategoryValidation: missing or malformed arguments.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: a referenced ticket or user does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden: no stored session for the role the command
	// needs, or the server refused the credentials.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict: the request conflicts with existing state.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient: the API was unreachable or answered with a
	// failure. Retrying may succeed.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal: local I/O or a bug.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. Use the
// category constructors rather than building one directly.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is an optional next step printed after the error.
	Hint string
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint attaches a suggested next step.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// ExitCode maps the category to the process exit status.
func (e *ToolError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryForbidden:
		return 3
	case CategoryNotFound:
		return 4
	case CategoryTransient:
		return 5
	default:
		return 1
	}
}

// CategoryOf returns the category of the first ToolError in err's
// chain, or CategoryInternal.
func CategoryOf(err error) ErrorCategory {
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return toolError.Category
	}
	return CategoryInternal
}

func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
