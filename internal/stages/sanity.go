package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smilemakc/namazing/internal/domain"
	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
	"github.com/smilemakc/namazing/internal/llmclient"
	"github.com/smilemakc/namazing/internal/validators"
)

const agentSanityChecker = "sanity-checker"

// SanityChecker is stage 4.5: a holistic last look at the finalists
// against the original brief, spec.md §4.9. Unlike every other stage,
// an error here is logged and swallowed — it never fails the run —
// and stub mode is a pure no-op, returning the selection unchanged.
func SanityChecker(ctx context.Context, d Deps, brief string, selection domain.ExpertSelection) domain.ExpertSelection {
	d.emitActivity(agentSanityChecker, "validating finalists against brief")

	if err := d.checkStubsAllowed(); err != nil {
		d.emitLog(agentSanityChecker, "", fmt.Sprintf("Sanity check skipped due to error: %v", err))
		return selection
	}

	if !d.Client.BackendAvailable() {
		sleepStub(ctx, stubDelaySanityChecker)
		return selection
	}

	result, err := d.callSanityChecker(ctx, brief, selection)
	if err != nil {
		d.emitLog(agentSanityChecker, "", fmt.Sprintf("Sanity check skipped due to error: %v", err))
		return selection
	}

	for _, flagged := range result.FlaggedNames {
		d.emitLog(agentSanityChecker, "", fmt.Sprintf("Flagged '%s' (%s): %s", flagged.Name, flagged.Severity, flagged.Violation))
	}

	toRemove := result.NamesToRemove()
	if len(toRemove) > 0 {
		originalCount := len(selection.Finalists)
		selection.Finalists = filterOutNames(selection.Finalists, toRemove, finalistName)
		removed := originalCount - len(selection.Finalists)
		if removed > 0 {
			d.emitLog(agentSanityChecker, "", fmt.Sprintf("Removed %d finalists due to constraint violations", removed))
		}
		selection.NearMisses = filterOutNames(selection.NearMisses, toRemove, nearMissName)
	}

	if result.Notes != "" {
		d.emitLog(agentSanityChecker, "", fmt.Sprintf("Validation notes: %s", result.Notes))
	}

	d.emitResult(agentSanityChecker, map[string]any{
		"overall_pass":   result.OverallPass,
		"flagged_count":  len(result.FlaggedNames),
		"approved_count": len(result.ApprovedNames),
	})

	return selection
}

func finalistName(f domain.Finalist) string { return f.Name }
func nearMissName(m domain.NearMiss) string  { return m.Name }

func filterOutNames[T any](items []T, remove map[string]struct{}, nameOf func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, drop := remove[validators.Normalize(nameOf(item))]; drop {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (d Deps) callSanityChecker(ctx context.Context, brief string, selection domain.ExpertSelection) (domain.SanityCheckResult, error) {
	names := make([]string, len(selection.Finalists))
	for i, f := range selection.Finalists {
		names[i] = f.Name
	}
	namesJSON, err := json.Marshal(names)
	if err != nil {
		return domain.SanityCheckResult{}, domainerrors.Wrap(domainerrors.SchemaInvalid, "encoding finalist names", err)
	}

	userInput := strings.Join([]string{
		"<original-brief>",
		brief,
		"</original-brief>",
		"",
		"<finalist-names>",
		string(namesJSON),
		"</finalist-names>",
		"",
		"Perform a holistic sanity check. Flag any names that obviously violate the client's stated requirements.",
	}, "\n")

	parsed, err := d.Client.RunJSONAgent(ctx, d.Store, llmclient.JSONAgentRequest{
		PromptSlug:  agentSanityChecker,
		UserInput:   userInput,
		Temperature: 0.2,
	})
	if err != nil {
		return domain.SanityCheckResult{}, err
	}

	var result domain.SanityCheckResult
	if err := decodeInto(parsed, &result); err != nil {
		return domain.SanityCheckResult{}, err
	}
	return result, nil
}
