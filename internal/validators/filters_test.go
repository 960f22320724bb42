package validators

import (
	"testing"

	"github.com/smilemakc/namazing/internal/domain"
)

func TestVetoFilterRejectsHardVeto(t *testing.T) {
	profile := &domain.SessionProfile{Vetoes: &domain.Vetoes{Hard: []string{"Karen"}}}
	filter := VetoFilter(profile)
	if filter("Karen") {
		t.Error("expected hard-vetoed name to be rejected")
	}
	if filter("  KAREN ") {
		t.Error("expected veto match to be case/whitespace insensitive")
	}
	if !filter("Margot") {
		t.Error("expected unrelated name to pass")
	}
}

func TestPrefixFilterFromVetoSuffix(t *testing.T) {
	profile := &domain.SessionProfile{Vetoes: &domain.Vetoes{Hard: []string{"Jo-"}}}
	filter := PrefixFilter(profile)
	if filter("Joanna") {
		t.Error("expected Jo- veto to reject names starting with jo")
	}
	if !filter("Amanda") {
		t.Error("expected unrelated name to pass prefix filter")
	}
}

func TestPrefixFilterFromBrief(t *testing.T) {
	profile := &domain.SessionProfile{RawBrief: "Please avoid anything starting with 'Mc'"}
	filter := PrefixFilter(profile)
	if filter("McKenna") {
		t.Error("expected brief-derived prefix veto to reject McKenna")
	}
}

func TestSiblingFilterRejectsSimilarNames(t *testing.T) {
	profile := &domain.SessionProfile{Family: &domain.Family{Siblings: []string{"Emma"}}}
	filter := SiblingFilter(profile, 2)
	if filter("Ema") {
		t.Error("expected near-duplicate sibling name to be rejected")
	}
	if !filter("Willow") {
		t.Error("expected dissimilar name to pass")
	}
}

func TestDeityFilterOnlyActivatesWhenRequested(t *testing.T) {
	plain := &domain.SessionProfile{}
	if !DeityFilter(plain)("Zeus") {
		t.Error("expected deity filter to pass through when not activated")
	}

	religious := &domain.SessionProfile{Vetoes: &domain.Vetoes{Hard: []string{"avoid religious names"}}}
	if DeityFilter(religious)("Zeus") {
		t.Error("expected deity filter to reject Zeus once religious names are vetoed")
	}
	if !DeityFilter(religious)("Margot") {
		t.Error("expected non-deity name to still pass")
	}
}

func TestFilterCandidatesCombinesAllFilters(t *testing.T) {
	profile := &domain.SessionProfile{
		Vetoes: &domain.Vetoes{Hard: []string{"Karen"}},
		Family: &domain.Family{Siblings: []string{"Emma"}},
	}
	candidates := []domain.Candidate{
		{Name: "Karen"},
		{Name: "Ema"},
		{Name: "Willow"},
	}

	var rejections []string
	out := FilterCandidates(candidates, profile, func(msg string) { rejections = append(rejections, msg) })

	if len(out) != 1 || out[0].Name != "Willow" {
		t.Fatalf("expected only Willow to survive filtering, got %+v", out)
	}
	if len(rejections) != 2 {
		t.Errorf("expected 2 rejection log messages, got %d: %v", len(rejections), rejections)
	}
}

func TestPhoneticConstraintFilterRejectsFailingNames(t *testing.T) {
	profile := &domain.SessionProfile{
		Preferences: &domain.Preferences{PhoneticConstraints: []string{"length <= 4"}},
	}
	lane := func(string) string { return "" }
	filter := PhoneticConstraintFilter(profile, lane)

	if !filter("Iris") {
		t.Error("expected a 4-letter name to satisfy length <= 4")
	}
	if filter("Sebastian") {
		t.Error("expected a 9-letter name to fail length <= 4")
	}
}

func TestPhoneticConstraintFilterPassesThroughWithNoConstraints(t *testing.T) {
	filter := PhoneticConstraintFilter(&domain.SessionProfile{}, func(string) string { return "" })
	if !filter("AnyName") {
		t.Error("expected an unconstrained profile to pass every name")
	}
}

func TestFilterCandidatesEnforcesPhoneticConstraints(t *testing.T) {
	profile := &domain.SessionProfile{
		Preferences: &domain.Preferences{PhoneticConstraints: []string{`lane == "nature"`}},
	}
	candidates := []domain.Candidate{
		{Name: "Wren", Lane: "nature"},
		{Name: "James", Lane: "classic masculine"},
	}

	out := FilterCandidates(candidates, profile, nil)
	if len(out) != 1 || out[0].Name != "Wren" {
		t.Fatalf("expected only the nature-lane candidate to survive, got %+v", out)
	}
}

func TestFilterNearMissesNoLogging(t *testing.T) {
	profile := &domain.SessionProfile{Vetoes: &domain.Vetoes{Hard: []string{"Karen"}}}
	misses := []domain.NearMiss{{Name: "Karen"}, {Name: "Willow"}}

	out := FilterNearMisses(misses, profile)
	if len(out) != 1 || out[0].Name != "Willow" {
		t.Fatalf("expected only Willow to survive, got %+v", out)
	}
}
