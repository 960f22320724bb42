package stages

import (
	"context"
	"fmt"

	"github.com/smilemakc/namazing/internal/domain"
	"github.com/smilemakc/namazing/internal/llmclient"
)

const agentBriefParser = "brief-parser"

// BriefParser is stage 1: turn the free-form brief into a
// SessionProfile, spec.md §4.9.
func BriefParser(ctx context.Context, d Deps, brief string) (domain.SessionProfile, error) {
	d.emitActivity(agentBriefParser, "parsing brief")

	if err := d.checkStubsAllowed(); err != nil {
		return domain.SessionProfile{}, err
	}

	if !d.Client.BackendAvailable() {
		sleepStub(ctx, stubDelayBriefParser)
		profile := stubProfile(brief)
		d.emitResult(agentBriefParser, profile)
		return profile, nil
	}

	profile, err := d.callBriefParser(ctx, brief)
	if err == nil {
		d.emitResult(agentBriefParser, profile)
		return profile, nil
	}

	if !d.AllowStubs {
		return domain.SessionProfile{}, err
	}

	d.emitLog(agentBriefParser, "", fmt.Sprintf("Falling back to stubbed profile due to error: %v", err))
	profile = stubProfile(brief)
	d.emitResult(agentBriefParser, profile)
	return profile, nil
}

func (d Deps) callBriefParser(ctx context.Context, brief string) (domain.SessionProfile, error) {
	userInput := fmt.Sprintf("Client Brief:\n%s\n\nRespond with JSON following SessionProfile schema.", brief)

	parsed, err := d.Client.RunJSONAgent(ctx, d.Store, llmclient.JSONAgentRequest{
		PromptSlug:  agentBriefParser,
		UserInput:   userInput,
		Temperature: 0.3,
	})
	if err != nil {
		return domain.SessionProfile{}, err
	}

	// The brief is authoritative for raw_brief regardless of what the
	// model echoed back, spec.md §4.9.
	if m, ok := parsed.(map[string]any); ok {
		m["raw_brief"] = brief
		parsed = m
	}

	var profile domain.SessionProfile
	if err := decodeInto(parsed, &profile); err != nil {
		return domain.SessionProfile{}, err
	}
	return profile, nil
}
