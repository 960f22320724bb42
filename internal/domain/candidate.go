package domain

// Candidate is a proposed name before research, produced by the
// generator stage.
type Candidate struct {
	Name        string   `json:"name"`
	Lane        string   `json:"lane"`
	Rationale   string   `json:"rationale"`
	ThemeLinks  []string `json:"theme_links"`
}

// CandidateFromMap builds a Candidate from a loosely-typed map (as
// produced by extracting JSON from a model reply), defaulting any
// missing or mistyped field the way spec §4.9 requires for the
// generator stage.
func CandidateFromMap(m map[string]any) Candidate {
	c := Candidate{
		ThemeLinks: []string{},
	}
	if v, ok := m["name"].(string); ok {
		c.Name = v
	}
	if v, ok := m["lane"].(string); ok {
		c.Lane = v
	}
	if v, ok := m["rationale"].(string); ok {
		c.Rationale = v
	}
	if raw, ok := m["theme_links"].([]any); ok {
		links := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				links = append(links, s)
			}
		}
		c.ThemeLinks = links
	}
	return c
}
