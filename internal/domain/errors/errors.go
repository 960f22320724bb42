// Package errors defines the orchestrator core's error taxonomy: seven
// kinds of failure a run can surface, each wrapped in a single
// RunError type with a machine-checkable Kind alongside a
// human-readable message.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is one of the seven error kinds spec.md §7 names.
type Kind string

const (
	// CredentialsMissing means no backend API key is configured. A
	// stage routes this to its stub fallback unless allow_stubs is
	// false, in which case it becomes StubsDisabled.
	CredentialsMissing Kind = "credentials_missing"
	// BackendUnavailable means the model client exhausted its
	// retries or received a non-retryable HTTP error.
	BackendUnavailable Kind = "backend_unavailable"
	// JSONExtractionFailed means the JSON extractor could not
	// recover any JSON document from a model reply.
	JSONExtractionFailed Kind = "json_extraction_failed"
	// SchemaInvalid means extracted JSON did not validate against
	// the stage's schema.
	SchemaInvalid Kind = "schema_invalid"
	// PromptNotFound means the requested prompt file is missing.
	// Always fatal; never routed to stub fallback.
	PromptNotFound Kind = "prompt_not_found"
	// StubsDisabled means allow_stubs is false and a stage would
	// otherwise need to fall back to stub output.
	StubsDisabled Kind = "stubs_disabled"
	// RunNotFound means a registry lookup failed to find a run by
	// id.
	RunNotFound Kind = "run_not_found"
)

// RunError is the orchestrator core's single error type. Every
// failure a stage or the model client can surface is one of these,
// tagged by Kind.
type RunError struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *RunError) Unwrap() error {
	return e.Cause
}

// New creates a RunError of the given kind.
func New(kind Kind, message string) *RunError {
	return &RunError{Kind: kind, Message: message}
}

// Wrap creates a RunError of the given kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *RunError {
	return &RunError{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the Kind of err if it is (or wraps) a *RunError, and
// false otherwise.
func KindOf(err error) (Kind, bool) {
	var re *RunError
	if !stderrors.As(err, &re) {
		return "", false
	}
	return re.Kind, true
}

// Is reports whether err is a *RunError of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
