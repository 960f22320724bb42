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

const agentGenerator = "generator"

// Generator is stage 2: produce the candidate slate, spec.md §4.9.
// limit is MaxSerialNames in serial mode, MaxParallelNames otherwise.
//
// Deviation from the Python original, per spec.md's authority over it
// where the two conflict (spec.md §3 Invariant and the stub-mode veto
// scenario in §8 both require filtered stub output): the deterministic
// filters run over BOTH the live and the stub candidate list, not only
// the live path.
func Generator(ctx context.Context, d Deps, profile domain.SessionProfile, limit int) ([]domain.Candidate, error) {
	d.emitActivity(agentGenerator, "creating name lanes")

	if err := d.checkStubsAllowed(); err != nil {
		return nil, err
	}

	var candidates []domain.Candidate

	if !d.Client.BackendAvailable() {
		sleepStub(ctx, stubDelayGenerator)
		candidates = stubCandidates(profile)
	} else {
		live, err := d.callGenerator(ctx, profile)
		switch {
		case err == nil:
			candidates = live
		case !d.AllowStubs:
			return nil, err
		default:
			d.emitLog(agentGenerator, "", fmt.Sprintf("Falling back to stubbed candidate list due to error: %v", err))
			candidates = stubCandidates(profile)
		}
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	original := len(candidates)
	filtered := validators.FilterCandidates(candidates, &profile, d.logRejections(agentGenerator))
	if len(filtered) < original {
		d.emitLog(agentGenerator, "", fmt.Sprintf("Filtered %d candidates due to veto/sibling constraints", original-len(filtered)))
	}

	d.emitPartial(agentGenerator, "", "candidates", filtered)
	d.emitResult(agentGenerator, filtered)
	return filtered, nil
}

func (d Deps) callGenerator(ctx context.Context, profile domain.SessionProfile) ([]domain.Candidate, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.SchemaInvalid, "encoding profile for generator prompt", err)
	}
	userInput := fmt.Sprintf("SessionProfile JSON:\n%s", profileJSON)

	parsed, err := d.Client.RunJSONAgent(ctx, d.Store, llmclient.JSONAgentRequest{
		PromptSlug:  agentGenerator,
		UserInput:   userInput,
		Temperature: 0.6,
	})
	if err != nil {
		return nil, err
	}

	items, err := candidateItems(parsed)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		candidates = append(candidates, domain.CandidateFromMap(m))
	}
	return candidates, nil
}

// candidateItems accepts either a bare JSON array or an object
// {"candidates": [...]}, spec.md §4.9's open question: the bare-array
// form is accepted unconditionally regardless of any future envelope
// key.
func candidateItems(parsed any) ([]any, error) {
	if arr, ok := parsed.([]any); ok {
		return arr, nil
	}
	if obj, ok := parsed.(map[string]any); ok {
		if arr, ok := obj["candidates"].([]any); ok {
			return arr, nil
		}
	}
	return nil, domainerrors.New(domainerrors.SchemaInvalid, "expected an array of candidates or {\"candidates\": [...]}")
}
