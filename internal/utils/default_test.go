package utils

import "testing"

func TestDefaultValueReturnsDefaultForZero(t *testing.T) {
	if got := DefaultValue("", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
	if got := DefaultValue(0, 5); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}

func TestDefaultValueReturnsValueWhenNonZero(t *testing.T) {
	if got := DefaultValue("set", "fallback"); got != "set" {
		t.Errorf("got %q, want set", got)
	}
}
