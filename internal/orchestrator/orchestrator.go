// Package orchestrator sequences the six pipeline stages for one run
// and drives a RunRecord through its lifecycle, spec.md §4.9's
// _execute control flow.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smilemakc/namazing/internal/domain"
	"github.com/smilemakc/namazing/internal/eventbus"
	"github.com/smilemakc/namazing/internal/infrastructure/tracing"
	"github.com/smilemakc/namazing/internal/llmclient"
	"github.com/smilemakc/namazing/internal/promptstore"
	"github.com/smilemakc/namazing/internal/registry"
	"github.com/smilemakc/namazing/internal/stages"
)

const agentOrchestrator = "orchestrator"

// Orchestrator owns the shared model client, prompt store, and logger
// every run's stage Deps is built from.
type Orchestrator struct {
	Client      *llmclient.Client
	Store       *promptstore.Store
	Log         zerolog.Logger
	Concurrency int
}

// New builds an Orchestrator. concurrency is the researcher stage's
// fan-out width in parallel mode (AGENT_CONCURRENCY); DefaultConcurrency
// is used when it is zero or negative.
func New(client *llmclient.Client, store *promptstore.Store, log zerolog.Logger, concurrency int) *Orchestrator {
	if concurrency <= 0 {
		concurrency = stages.DefaultConcurrency
	}
	return &Orchestrator{Client: client, Store: store, Log: log, Concurrency: concurrency}
}

// Run drives run through the full pipeline synchronously, marking it
// running on entry and completed/failed on exit. Callers that want
// events streamed live should invoke Run from its own goroutine after
// subscribing to run.Bus.
func (o *Orchestrator) Run(ctx context.Context, run *registry.RunRecord) {
	runCtx, runSpan := tracing.StartStage(ctx, run.ID, agentOrchestrator)
	defer runSpan.End()
	ctx = runCtx

	run.MarkRunning()

	d := stages.Deps{
		RunID:       run.ID,
		Bus:         run.Bus,
		Client:      o.Client,
		Store:       o.Store,
		Log:         o.Log,
		AllowStubs:  run.AllowStubs,
		Concurrency: o.Concurrency,
	}

	limit := stages.MaxSerialNames
	width := 1
	if run.Mode == registry.ModeParallel {
		limit = stages.MaxParallelNames
		width = o.Concurrency
	}

	stageCtx, briefSpan := tracing.StartStage(ctx, run.ID, "brief-parser")
	profile, err := stages.BriefParser(stageCtx, d, run.Brief)
	tracing.End(briefSpan, err)
	if err != nil {
		o.fail(run, d, err)
		return
	}

	stageCtx, genSpan := tracing.StartStage(ctx, run.ID, "generator")
	candidates, err := stages.Generator(stageCtx, d, profile, limit)
	tracing.End(genSpan, err)
	if err != nil {
		o.fail(run, d, err)
		return
	}

	stageCtx, researchSpan := tracing.StartStage(ctx, run.ID, "researcher")
	cards, err := stages.Researcher(stageCtx, d, profile, candidates, width)
	tracing.End(researchSpan, err)
	if err != nil {
		o.fail(run, d, err)
		return
	}

	stageCtx, selectSpan := tracing.StartStage(ctx, run.ID, "expert-selector")
	selection, err := stages.Selector(stageCtx, d, profile, cards)
	tracing.End(selectSpan, err)
	if err != nil {
		o.fail(run, d, err)
		return
	}

	// The sanity checker never fails a run, spec.md §4.9: errors are
	// logged inside the stage and the selection is returned unchanged.
	stageCtx, sanitySpan := tracing.StartStage(ctx, run.ID, "sanity-checker")
	selection = stages.SanityChecker(stageCtx, d, run.Brief, selection)
	sanitySpan.End()

	stageCtx, composerSpan := tracing.StartStage(ctx, run.ID, stages.AgentReportComposer)
	report, err := stages.Composer(stageCtx, d, profile, cards, selection)
	tracing.End(composerSpan, err)
	if err != nil {
		o.fail(run, d, err)
		return
	}

	result := domain.RunResult{
		Profile:    profile,
		Candidates: cards,
		Selection:  selection,
		Report:     report,
	}

	d.Bus.Emit(eventbus.Result(run.ID, stages.AgentReportComposer, result))
	d.Bus.Emit(eventbus.Done(run.ID, stages.AgentReportComposer, ""))

	run.MarkCompleted(result)
}

func (o *Orchestrator) fail(run *registry.RunRecord, d stages.Deps, err error) {
	d.Bus.Emit(eventbus.Err(run.ID, agentOrchestrator, fmt.Sprintf("run failed: %v", err)))
	run.MarkFailed(err)
}
