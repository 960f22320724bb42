package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/smilemakc/namazing/internal/domain"
	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
	"github.com/smilemakc/namazing/internal/llmclient"
)

const agentComposer = "report-composer"

// AgentReportComposer names the report-composer agent for callers
// outside this package that need to emit events under it, such as the
// orchestrator's terminal result/done sequence.
const AgentReportComposer = agentComposer

// Composer is stage 5: write the closing consultation report, spec.md
// §4.9. It returns the Report only; the orchestrator (not this stage)
// emits the terminal result/done events, matching the Python
// original's _execute, which emits report-composer's result and done
// events itself rather than inside the stage function.
func Composer(ctx context.Context, d Deps, profile domain.SessionProfile, cards []domain.NameCard, selection domain.ExpertSelection) (domain.Report, error) {
	d.emitActivity(agentComposer, "writing consultation")

	if err := d.checkStubsAllowed(); err != nil {
		return domain.Report{}, err
	}

	if !d.Client.BackendAvailable() {
		sleepStub(ctx, stubDelayReportComposer)
		return stubReport(selection), nil
	}

	report, err := d.callComposer(ctx, profile, cards, selection)
	if err == nil {
		return report, nil
	}

	if !d.AllowStubs {
		return domain.Report{}, err
	}

	d.emitLog(agentComposer, "", fmt.Sprintf("Falling back to stubbed report due to error: %v", err))
	return stubReport(selection), nil
}

func (d Deps) callComposer(ctx context.Context, profile domain.SessionProfile, cards []domain.NameCard, selection domain.ExpertSelection) (domain.Report, error) {
	payload := map[string]any{
		"sessionProfile": profile,
		"selection":      selection,
		"candidates":     cards,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return domain.Report{}, domainerrors.Wrap(domainerrors.SchemaInvalid, "encoding composer payload", err)
	}

	segments, err := d.Store.Load(agentComposer)
	if err != nil {
		return domain.Report{}, err
	}

	content := segments.Instruction + "\n\n" + string(payloadJSON)
	raw, err := d.Client.Call(ctx, llmclient.Request{
		System:      segments.System,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: content}},
		JSONMode:    false,
		Temperature: 0.4,
	})
	if err != nil {
		return domain.Report{}, err
	}

	return composeReport(raw, selection), nil
}

// composeReport implements spec.md §4.9's report-composer
// post-processing: quote unwrapping, literal-\n repair, and the
// leading-paragraph summary extraction.
func composeReport(raw string, selection domain.ExpertSelection) domain.Report {
	text := strings.TrimSpace(raw)

	if len(text) >= 2 {
		if (text[0] == '"' && text[len(text)-1] == '"') || (text[0] == '\'' && text[len(text)-1] == '\'') {
			text = text[1 : len(text)-1]
		}
	}

	if strings.Contains(text, `\n`) && !strings.Contains(text, "\n") {
		text = strings.ReplaceAll(text, `\n`, "\n")
	}

	summary := extractSummary(text)

	var combos []domain.Combo
	for _, f := range selection.Finalists {
		if f.Combo != nil {
			combos = append(combos, *f.Combo)
		}
	}

	return domain.Report{
		Summary:      summary,
		Markdown:     text,
		LovedNames:   []string{},
		Finalists:    selection.Finalists,
		Combos:       combos,
		Tradeoffs:    []string{"Review the report for tradeoffs."},
		TieBreakTips: []string{"Read the report for tie-break tips."},
	}
}

func extractSummary(text string) string {
	rawParagraphs := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(rawParagraphs))
	for _, p := range rawParagraphs {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var parts []string
	length := 0
	for _, p := range paragraphs {
		if strings.HasPrefix(p, "#") {
			if len(parts) > 0 {
				break
			}
			continue
		}
		parts = append(parts, p)
		length += len(p)
		if len(parts) >= 2 || length >= 400 {
			break
		}
	}

	if len(parts) > 0 {
		return strings.Join(parts, "\n\n")
	}
	if len(paragraphs) > 0 {
		return paragraphs[0]
	}
	return ""
}
