// Package apperr defines the error taxonomy raised by the generation
// pipeline. No stage recovers its own errors; every error bubbles to the
// pipeline driver (internal/pipeline), which decides whether to roll back
// to the last valid stage prefix or surface the failure to the caller.
package apperr

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
)

// Kind identifies the category of a pipeline error.
type Kind string

const (
	// KindInvalidConfig means a GenerationConfig field failed validation
	// before any stage ran; nothing was mutated.
	KindInvalidConfig Kind = "INVALID_CONFIG"
	// KindTemplateParse means the terrain command template failed to
	// parse; surfaced before execution, no partial command list is ever
	// handed to the interpreter.
	KindTemplateParse Kind = "TEMPLATE_PARSE"
	// KindMissingPrerequisite means a stage ran without its required
	// predecessor stage having populated its fields.
	KindMissingPrerequisite Kind = "MISSING_PREREQUISITE"
	// KindCanceled means the caller's cancellation token fired at a
	// suspension point.
	KindCanceled Kind = "CANCELED"
	// KindInvariantViolated means an internal consistency check failed
	// (disconnected plate, malformed Delaunay, non-mutual neighbor set).
	// Fatal; cannot be locally recovered.
	KindInvariantViolated Kind = "INVARIANT_VIOLATED"
)

// ExitCode maps a Kind to the CLI exit code defined by the external
// interface contract: 0 success, 2 invalid input, 3 canceled, 4 internal
// invariant violation.
func (k Kind) ExitCode() int {
	switch k {
	case KindInvalidConfig, KindTemplateParse:
		return 2
	case KindCanceled:
		return 3
	case KindInvariantViolated, KindMissingPrerequisite:
		return 4
	default:
		return 1
	}
}

// Error is a structured diagnostic carrying kind, stage, and a
// human-readable message. Pipeline state before the failing stage remains
// observable and correct; Error never implies partial writes by the
// failing stage survived.
type Error struct {
	Kind    Kind   `json:"kind"`
	Stage   string `json:"stage,omitempty"`
	Field   string `json:"field,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap supports errors.Is/errors.As error-chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidConfig reports a validation failure on a single config field.
func InvalidConfig(field, reason string) *Error {
	return &Error{Kind: KindInvalidConfig, Field: field, Message: reason}
}

// TemplateParse reports a 1-based line number and human-readable reason
// for a malformed terrain command template.
func TemplateParse(line int, reason string) *Error {
	return &Error{Kind: KindTemplateParse, Line: line, Message: reason}
}

// MissingPrerequisite reports that stage was asked to run before its
// required predecessor populated its fields.
func MissingPrerequisite(stage string) *Error {
	return &Error{Kind: KindMissingPrerequisite, Stage: stage, Message: "required prerequisite stage has not run"}
}

// Canceled reports a cooperative cancellation at a suspension point
// within stage.
func Canceled(stage string) *Error {
	return &Error{Kind: KindCanceled, Stage: stage, Message: "canceled at suspension point"}
}

// InvariantViolated reports a fatal internal consistency failure at
// location where.
func InvariantViolated(where, reason string) *Error {
	return &Error{Kind: KindInvariantViolated, Stage: where, Message: reason}
}

// Wrap attaches an underlying error to a copy of base, preserving kind,
// stage, and field.
func Wrap(base *Error, err error) *Error {
	cp := *base
	cp.Err = err
	return &cp
}

// Is reports whether err is an *Error of the given kind, unwrapping
// through the chain.
func Is(err error, kind Kind) bool {
	var e *Error
	if !stdErrors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Diagnostic is the JSON-serializable form of Error returned across the
// CLI/HTTP boundary.
type Diagnostic struct {
	Kind    Kind   `json:"kind"`
	Stage   string `json:"stage,omitempty"`
	Field   string `json:"field,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// ToDiagnostic converts err into its wire diagnostic form, if it is (or
// wraps) an *Error. Returns ok=false for unrecognized errors.
func ToDiagnostic(err error) (Diagnostic, bool) {
	var e *Error
	if !stdErrors.As(err, &e) {
		return Diagnostic{}, false
	}
	return Diagnostic{Kind: e.Kind, Stage: e.Stage, Field: e.Field, Line: e.Line, Message: e.Message}, true
}

// MarshalJSON allows an *Error to be embedded directly in API responses.
func (e *Error) MarshalJSON() ([]byte, error) {
	d, _ := ToDiagnostic(e)
	return json.Marshal(d)
}
