package jsonextract

import (
	"testing"

	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
)

func TestExtractWholeTextParse(t *testing.T) {
	v, err := Extract(`{"name": "Emma"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok || m["name"] != "Emma" {
		t.Errorf("unexpected result: %+v", v)
	}
}

func TestExtractWidestObjectSubstring(t *testing.T) {
	text := "Sure, here's the JSON you asked for:\n```json\n{\"name\": \"Emma\", \"lane\": \"literary\"}\n```\nLet me know if you need anything else."
	v, err := Extract(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok || m["name"] != "Emma" {
		t.Errorf("unexpected result: %+v", v)
	}
}

func TestExtractWidestArraySubstring(t *testing.T) {
	text := "Here you go: [{\"name\": \"Emma\"}, {\"name\": \"Iris\"}] -- hope that helps"
	v, err := Extract(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		t.Errorf("unexpected result: %+v", v)
	}
}

func TestExtractFailsOnNoJSON(t *testing.T) {
	_, err := Extract("no JSON here at all, sorry")
	if !domainerrors.Is(err, domainerrors.JSONExtractionFailed) {
		t.Errorf("expected JSONExtractionFailed, got %v", err)
	}
}

func TestExtractEmptyTextReturnsEmptyObject(t *testing.T) {
	v, err := Extract("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok || len(m) != 0 {
		t.Errorf("expected empty map, got %+v", v)
	}
}
