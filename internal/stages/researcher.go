package stages

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smilemakc/namazing/internal/concurrency"
	"github.com/smilemakc/namazing/internal/domain"
	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
	"github.com/smilemakc/namazing/internal/llmclient"
)

const agentResearcher = "researcher"

// Researcher is stage 3: research every candidate, fanning out with
// bounded concurrency, spec.md §4.9 and §5. width is 1 in serial
// mode, Deps.Concurrency (or DefaultConcurrency) in parallel mode.
func Researcher(ctx context.Context, d Deps, profile domain.SessionProfile, candidates []domain.Candidate, width int) ([]domain.NameCard, error) {
	var surname string
	if profile.Family != nil {
		surname = profile.Family.Surname
	}

	handler := func(ctx context.Context, candidate domain.Candidate, index int) (domain.NameCard, error) {
		return d.researchOne(ctx, profile, candidate, surname)
	}

	return concurrency.MapWithConcurrency(ctx, candidates, width, handler)
}

func (d Deps) researchOne(ctx context.Context, profile domain.SessionProfile, candidate domain.Candidate, surname string) (domain.NameCard, error) {
	d.emitStart(agentResearcher, candidate.Name)

	if err := d.checkStubsAllowed(); err != nil {
		return domain.NameCard{}, err
	}

	if !d.Client.BackendAvailable() {
		sleepStub(ctx, stubDelayResearcher)
		card := stubCard(candidate.Name, candidate.Lane, profile)
		d.emitPartial(agentResearcher, candidate.Name, "card", card)
		d.emitDone(agentResearcher, candidate.Name)
		return card, nil
	}

	card, err := d.callResearcher(ctx, profile, candidate, surname)
	if err == nil {
		d.emitPartial(agentResearcher, candidate.Name, "card", card)
		d.emitDone(agentResearcher, candidate.Name)
		return card, nil
	}

	if !d.AllowStubs {
		return domain.NameCard{}, err
	}

	kind, _ := domainerrors.KindOf(err)
	d.emitLog(agentResearcher, candidate.Name, fmt.Sprintf("Researcher fell back to stub data: %s: %v", kind, err))
	card = stubCard(candidate.Name, candidate.Lane, profile)
	d.emitPartial(agentResearcher, candidate.Name, "card", card)
	d.emitDone(agentResearcher, candidate.Name)
	return card, nil
}

func (d Deps) callResearcher(ctx context.Context, profile domain.SessionProfile, candidate domain.Candidate, surname string) (domain.NameCard, error) {
	tools := gatherResearchTools(candidate.Name, surname)

	payload := map[string]any{
		"sessionProfile": profile,
		"candidate":      candidate,
		"tools":          tools,
		"guidance": map[string]any{
			"note": "Use the provided tool outputs (popularity, associations) and your own knowledge to fill the card. Do not attempt to use external tools.",
		},
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return domain.NameCard{}, domainerrors.Wrap(domainerrors.SchemaInvalid, "encoding researcher payload", err)
	}

	parsed, err := d.Client.RunJSONAgent(ctx, d.Store, llmclient.JSONAgentRequest{
		PromptSlug:  agentResearcher,
		UserInput:   string(payloadJSON),
		Temperature: 0.4,
	})
	if err != nil {
		return domain.NameCard{}, err
	}

	var card domain.NameCard
	if err := decodeInto(parsed, &card); err != nil {
		return domain.NameCard{}, err
	}
	return card, nil
}
