package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by layout loading. Typed errors below match them with
// errors.Is.
var (
	// ErrParse indicates the layout text is not well-formed.
	ErrParse = errors.New("layout parse failed")

	// ErrValidation indicates the layout parsed but breaks a rule.
	ErrValidation = errors.New("layout validation failed")

	// ErrIO indicates the layout file could not be read.
	ErrIO = errors.New("layout read failed")

	// ErrWatch indicates the layout file could not be watched for changes.
	ErrWatch = errors.New("layout watch failed")
)

// ParseError reports malformed layout syntax.
type ParseError struct {
	// Path is the file that failed to parse; empty for in-memory input.
	Path string
	// Line is the 1-based line of the error, 0 when unknown.
	Line int
	// Column is the 1-based column of the error, 0 when unknown.
	Column int
	// Message describes the problem.
	Message string
	// Err is the decoder's error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode uint8

const (
	// ErrCodeRequiredMissing indicates a required field is empty.
	ErrCodeRequiredMissing ValidationErrorCode = iota
	// ErrCodeDuplicate indicates a widget name is used twice.
	ErrCodeDuplicate
	// ErrCodeInvalidEnum indicates the value is not in the allowed set.
	ErrCodeInvalidEnum
	// ErrCodeOutOfRange indicates a numeric value is out of range.
	ErrCodeOutOfRange
	// ErrCodeShape indicates a value has the wrong structure.
	ErrCodeShape
	// ErrCodeOrder indicates thresholds are not strictly ascending.
	ErrCodeOrder
)

// String returns a human-readable name for the error code.
func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeRequiredMissing:
		return "required_missing"
	case ErrCodeDuplicate:
		return "duplicate"
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	case ErrCodeOutOfRange:
		return "out_of_range"
	case ErrCodeShape:
		return "invalid_shape"
	case ErrCodeOrder:
		return "out_of_order"
	default:
		return "unknown"
	}
}

// ValidationError describes one broken rule. Widget is empty for
// layout-level fields.
type ValidationError struct {
	// Widget is the offending widget's name, or widgets[i] when it has none.
	Widget string
	// Field is the offending field path, e.g. "size.percentage".
	Field string
	// Message describes the problem.
	Message string
	// Value is the rejected value.
	Value any
	// Code categorizes the error.
	Code ValidationErrorCode
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	where := e.Field
	if e.Widget != "" {
		where = fmt.Sprintf("widget %q: %s", e.Widget, e.Field)
	}
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (value: %v)", where, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationErrors collects every rule a layout breaks.
type ValidationErrors struct {
	Path   string
	Errors []*ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "invalid layout %s: ", e.Path)
	} else {
		b.WriteString("invalid layout: ")
	}
	for i, ve := range e.Errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ve.Error())
	}
	return b.String()
}

// Unwrap exposes the individual errors.
func (e *ValidationErrors) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, ve := range e.Errors {
		out[i] = ve
	}
	return out
}

// Is matches ErrValidation.
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationErrors) add(ve *ValidationError) {
	e.Errors = append(e.Errors, ve)
}

// IOError reports a layout file that could not be read.
type IOError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("read layout %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is matches ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// Kind classifies err for logging: "parse", "validation", "io", or "other".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrWatch):
		return "watch"
	default:
		return "other"
	}
}
