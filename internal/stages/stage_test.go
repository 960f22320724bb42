package stages

import (
	"context"
	"testing"

	"github.com/smilemakc/namazing/internal/domain"
	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
	"github.com/smilemakc/namazing/internal/eventbus"
	"github.com/smilemakc/namazing/internal/llmclient"
	"github.com/smilemakc/namazing/internal/promptstore"
)

func testDeps(allowStubs bool) Deps {
	return Deps{
		RunID:       "run-1",
		Bus:         eventbus.New(),
		Client:      llmclient.NewClient("", "", "", false),
		Store:       promptstore.New(),
		AllowStubs:  allowStubs,
		Concurrency: 2,
	}
}

func TestBriefParserFallsBackToStubWithoutBackend(t *testing.T) {
	d := testDeps(true)
	profile, err := BriefParser(context.Background(), d, "expecting a girl, surname: Rivera")
	if err != nil {
		t.Fatalf("expected stub fallback to succeed, got %v", err)
	}
	if profile.RawBrief == "" {
		t.Error("expected a populated profile from the stub path")
	}
}

func TestBriefParserFailsWithStubsDisabledAndNoBackend(t *testing.T) {
	d := testDeps(false)
	_, err := BriefParser(context.Background(), d, "expecting a girl")
	if !domainerrors.Is(err, domainerrors.StubsDisabled) {
		t.Errorf("expected StubsDisabled, got %v", err)
	}
}

func TestGeneratorRespectsLimitAndFiltersCandidates(t *testing.T) {
	d := testDeps(true)
	profile := stubProfile("expecting a boy, surname: Rivera")
	profile.Vetoes = &domain.Vetoes{Hard: []string{"William"}}

	candidates, err := Generator(context.Background(), d, profile, 3)
	if err != nil {
		t.Fatalf("expected stub generator to succeed, got %v", err)
	}
	if len(candidates) > 3 {
		t.Errorf("expected at most 3 candidates honoring the limit, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.Name == "William" {
			t.Errorf("expected hard-vetoed William to be filtered out, got %+v", candidates)
		}
	}
}

func TestResearcherProducesOneCardPerCandidate(t *testing.T) {
	d := testDeps(true)
	profile := stubProfile("expecting a girl, surname: Rivera")
	candidates := []domain.Candidate{
		{Name: "Iris", Lane: "nature"},
		{Name: "Wren", Lane: "nature"},
	}

	cards, err := Researcher(context.Background(), d, profile, candidates, 2)
	if err != nil {
		t.Fatalf("expected stub researcher to succeed, got %v", err)
	}
	if len(cards) != len(candidates) {
		t.Fatalf("expected one card per candidate, got %d cards for %d candidates", len(cards), len(candidates))
	}
}

func TestSelectorSplitsFinalistsAndNearMisses(t *testing.T) {
	d := testDeps(true)
	profile := stubProfile("expecting a girl, surname: Rivera")

	var cards []domain.NameCard
	for i := 0; i < 10; i++ {
		cards = append(cards, stubCard(string(rune('A'+i))+"name", "nature", profile))
	}

	selection, err := Selector(context.Background(), d, profile, cards)
	if err != nil {
		t.Fatalf("expected stub selector to succeed, got %v", err)
	}
	if len(selection.Finalists) == 0 {
		t.Error("expected at least one finalist")
	}
	if len(selection.NearMisses) != 2 {
		t.Errorf("expected the 2 cards after the first 8 to become near-misses, got %d", len(selection.NearMisses))
	}
}

func TestSanityCheckerNeverFailsRun(t *testing.T) {
	d := testDeps(true)
	selection := domain.ExpertSelection{
		Finalists: []domain.Finalist{{Name: "Iris"}},
	}

	result := SanityChecker(context.Background(), d, "expecting a girl", selection)
	if len(result.Finalists) == 0 {
		t.Error("expected sanity checker to return a non-empty selection in stub mode")
	}
}

func TestComposerBuildsReportFromSelection(t *testing.T) {
	d := testDeps(true)
	profile := stubProfile("expecting a girl, surname: Rivera")
	combo := domain.Combo{First: "Iris", Middle: "Elise"}
	selection := domain.ExpertSelection{
		Finalists: []domain.Finalist{{Name: "Iris", Combo: &combo}},
	}

	report, err := Composer(context.Background(), d, profile, nil, selection)
	if err != nil {
		t.Fatalf("expected stub composer to succeed, got %v", err)
	}
	if report.Summary == "" {
		t.Error("expected a non-empty stub report summary")
	}
	if len(report.Combos) != 1 {
		t.Errorf("expected composer to surface the finalist's combo, got %+v", report.Combos)
	}
}
