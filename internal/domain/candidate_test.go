package domain

import "testing"

func TestCandidateFromMapPopulatesFields(t *testing.T) {
	c := CandidateFromMap(map[string]any{
		"name":        "Iris",
		"lane":        "nature",
		"rationale":   "short and botanical",
		"theme_links": []any{"botany", "light"},
	})

	if c.Name != "Iris" || c.Lane != "nature" || c.Rationale != "short and botanical" {
		t.Errorf("unexpected candidate: %+v", c)
	}
	if len(c.ThemeLinks) != 2 || c.ThemeLinks[0] != "botany" {
		t.Errorf("unexpected theme links: %+v", c.ThemeLinks)
	}
}

func TestCandidateFromMapDefaultsMissingFields(t *testing.T) {
	c := CandidateFromMap(map[string]any{"name": "Wren"})

	if c.Name != "Wren" {
		t.Errorf("expected name Wren, got %q", c.Name)
	}
	if c.ThemeLinks == nil || len(c.ThemeLinks) != 0 {
		t.Errorf("expected an empty, non-nil theme links slice, got %+v", c.ThemeLinks)
	}
}

func TestCandidateFromMapIgnoresMistypedFields(t *testing.T) {
	c := CandidateFromMap(map[string]any{
		"name":        123,
		"theme_links": "not-an-array",
	})

	if c.Name != "" {
		t.Errorf("expected mistyped name to be ignored, got %q", c.Name)
	}
	if len(c.ThemeLinks) != 0 {
		t.Errorf("expected mistyped theme_links to fall back to empty, got %+v", c.ThemeLinks)
	}
}
