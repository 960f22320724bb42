package stages

import "github.com/smilemakc/namazing/internal/phonetics"

// researchTools is the best-effort "tools" payload spec.md §4.9's
// researcher stage assembles before calling the model. Popularity and
// association scanning are external collaborators spec.md places out
// of scope (web search, a popularity-CSV lookup); this module supplies
// only the in-scope phonetic heuristics and leaves the rest as
// documented absence, which the model prompt is told to tolerate.
type researchTools struct {
	Heuristics struct {
		IPASeed   string `json:"ipaSeed"`
		Syllables int    `json:"syllables"`
	} `json:"heuristics"`
	Popularity struct {
		Timeseries []any  `json:"timeseries"`
		Notes      string `json:"notes"`
	} `json:"popularity"`
	Associations struct {
		Items []any  `json:"items"`
		Notes string `json:"notes"`
	} `json:"associations"`
	CelebrityAssociations *struct {
		Items []any  `json:"items"`
		Notes string `json:"notes"`
	} `json:"celebrity_associations,omitempty"`
}

// gatherResearchTools assembles the tools payload for one candidate
// name. It never fails; every field is best-effort.
func gatherResearchTools(name, surname string) researchTools {
	var out researchTools
	out.Heuristics.IPASeed = phonetics.RoughIPA(name)
	out.Heuristics.Syllables = phonetics.CountSyllables(name)
	out.Popularity.Notes = "popularity lookup unavailable; not wired in this deployment"
	out.Associations.Notes = "association scan unavailable; not wired in this deployment"
	if surname != "" {
		out.CelebrityAssociations = &struct {
			Items []any  `json:"items"`
			Notes string `json:"notes"`
		}{Notes: "celebrity association scan unavailable; not wired in this deployment"}
	}
	return out
}
