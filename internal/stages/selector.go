package stages

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smilemakc/namazing/internal/domain"
	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
	"github.com/smilemakc/namazing/internal/llmclient"
	"github.com/smilemakc/namazing/internal/validators"
)

const agentSelector = "expert-selector"

// Selector is stage 4: curate finalists and near-misses from the
// researched cards, spec.md §4.9.
func Selector(ctx context.Context, d Deps, profile domain.SessionProfile, cards []domain.NameCard) (domain.ExpertSelection, error) {
	d.emitActivity(agentSelector, "curating finalists")

	if err := d.checkStubsAllowed(); err != nil {
		return domain.ExpertSelection{}, err
	}

	if !d.Client.BackendAvailable() {
		sleepStub(ctx, stubDelaySelector)
		selection := stubSelection(cards)
		d.emitResult(agentSelector, selection)
		return selection, nil
	}

	selection, err := d.callSelector(ctx, profile, cards)
	if err == nil {
		d.postProcessSelection(&selection, profile)
		d.emitResult(agentSelector, selection)
		return selection, nil
	}

	if !d.AllowStubs {
		return domain.ExpertSelection{}, err
	}

	d.emitLog(agentSelector, "", fmt.Sprintf("Falling back to stubbed shortlist due to error: %v", err))
	selection = stubSelection(cards)
	d.emitResult(agentSelector, selection)
	return selection, nil
}

func (d Deps) callSelector(ctx context.Context, profile domain.SessionProfile, cards []domain.NameCard) (domain.ExpertSelection, error) {
	payload := map[string]any{
		"sessionProfile": profile,
		"cards":          cards,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return domain.ExpertSelection{}, domainerrors.Wrap(domainerrors.SchemaInvalid, "encoding selector payload", err)
	}

	parsed, err := d.Client.RunJSONAgent(ctx, d.Store, llmclient.JSONAgentRequest{
		PromptSlug:  agentSelector,
		UserInput:   string(payloadJSON),
		Temperature: 0.3,
	})
	if err != nil {
		return domain.ExpertSelection{}, err
	}

	var selection domain.ExpertSelection
	if err := decodeInto(parsed, &selection); err != nil {
		return domain.ExpertSelection{}, err
	}
	return selection, nil
}

// postProcessSelection implements spec.md §4.9's three selector
// post-processing steps: dedupe near-misses, run the deterministic
// filters over both lists, and enforce finalist/near-miss
// disjointness.
func (d Deps) postProcessSelection(selection *domain.ExpertSelection, profile domain.SessionProfile) {
	selection.DedupeNearMisses()

	originalFinalists := len(selection.Finalists)
	selection.Finalists = validators.FilterFinalists(selection.Finalists, &profile, d.logRejections(agentSelector))

	originalMisses := len(selection.NearMisses)
	selection.NearMisses = validators.FilterNearMisses(selection.NearMisses, &profile)

	filteredFinalists := originalFinalists - len(selection.Finalists)
	filteredMisses := originalMisses - len(selection.NearMisses)
	if filteredFinalists > 0 || filteredMisses > 0 {
		d.emitLog(agentSelector, "", fmt.Sprintf("Filtered %d finalists and %d near-misses due to constraint violations", filteredFinalists, filteredMisses))
	}

	selection.EnforceDisjointness()
}
