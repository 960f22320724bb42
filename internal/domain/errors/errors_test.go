package errors

import (
	"errors"
	"testing"
)

func TestNewAndErrorMessage(t *testing.T) {
	err := New(SchemaInvalid, "field \"name\": required")
	want := `schema_invalid: field "name": required`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestWrapIncludesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(BackendUnavailable, "chat completion request failed", cause)
	if err.Unwrap() != cause {
		t.Error("expected Unwrap to return the wrapped cause")
	}
	if err.Error() != "backend_unavailable: chat completion request failed: boom" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestKindOfAndIs(t *testing.T) {
	err := New(StubsDisabled, "no backend available")
	kind, ok := KindOf(err)
	if !ok || kind != StubsDisabled {
		t.Errorf("expected KindOf to return StubsDisabled, got %v, %v", kind, ok)
	}
	if !Is(err, StubsDisabled) {
		t.Error("expected Is to match StubsDisabled")
	}
	if Is(err, RunNotFound) {
		t.Error("expected Is to not match a different kind")
	}
}

func TestKindOfFalseForPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	if ok {
		t.Error("expected KindOf to return false for a non-RunError")
	}
}
