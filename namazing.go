// Package namazing is the public entry point for embedding the baby
// naming pipeline: start a run, subscribe to its event stream, and
// read back its result. Internal packages hold the implementation;
// this file only re-exports the types and constructors a caller needs.
package namazing

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/smilemakc/namazing/internal/domain"
	"github.com/smilemakc/namazing/internal/eventbus"
	"github.com/smilemakc/namazing/internal/infrastructure/config"
	"github.com/smilemakc/namazing/internal/infrastructure/logger"
	"github.com/smilemakc/namazing/internal/llmclient"
	"github.com/smilemakc/namazing/internal/orchestrator"
	"github.com/smilemakc/namazing/internal/promptstore"
	"github.com/smilemakc/namazing/internal/registry"
)

// SessionProfile is the parsed brief, spec.md §3.
type SessionProfile = domain.SessionProfile

// Candidate is one generated name idea, spec.md §3.
type Candidate = domain.Candidate

// NameCard is a researched candidate, spec.md §3.
type NameCard = domain.NameCard

// ExpertSelection is the curated finalist/near-miss shortlist, spec.md §3.
type ExpertSelection = domain.ExpertSelection

// Report is the closing consultation document, spec.md §3.
type Report = domain.Report

// RunResult is a completed run's full output.
type RunResult = domain.RunResult

// Event is one entry in a run's event stream, spec.md §3.
type Event = eventbus.Event

// Status is a run's lifecycle state.
type Status = registry.Status

// Mode selects the run's fan-out width: serial or parallel.
type Mode = registry.Mode

const (
	ModeSerial   = registry.ModeSerial
	ModeParallel = registry.ModeParallel
)

const (
	StatusPending   = registry.StatusPending
	StatusRunning   = registry.StatusRunning
	StatusCompleted = registry.StatusCompleted
	StatusFailed    = registry.StatusFailed
)

// Config is the process-wide environment configuration, spec.md §6.
type Config = config.Config

// LoadConfig reads Config from the environment.
func LoadConfig() *Config {
	return config.Load()
}

// RunRecord tracks one run's lifecycle and event bus.
type RunRecord = registry.RunRecord

// Engine wires a Registry to the orchestrator that drives runs, the
// shape a server or CLI process builds once at startup and reuses for
// every run.
type Engine struct {
	registry     *registry.Registry
	orchestrator *orchestrator.Orchestrator
}

// NewEngine builds an Engine from a Config, constructing its model
// client, prompt store, and logger. pretty selects console-formatted
// logging (for local/TTY use) over structured JSON.
func NewEngine(cfg *Config, pretty bool) *Engine {
	log := logger.Setup(cfg.LogLevel, pretty)
	client := llmclient.NewClient(cfg.OpenRouterAPIKey, cfg.Model, cfg.Provider, cfg.DebugLLM)
	store := promptstore.New()

	return &Engine{
		registry:     registry.New(),
		orchestrator: orchestrator.New(client, store, log, cfg.Concurrency),
	}
}

// Logger returns the engine's configured logger.
func (e *Engine) Logger() zerolog.Logger {
	return e.orchestrator.Log
}

// StartRun allocates a new run and launches its pipeline in a
// background goroutine. Subscribe before the goroutine's first emit to
// avoid missing early events, or rely on the bus's retained event log
// (eventbus.Bus.Events) to catch up after the fact.
func (e *Engine) StartRun(ctx context.Context, brief string, mode Mode, allowStubs bool) *RunRecord {
	run := e.registry.StartRun(brief, mode, allowStubs)
	go e.orchestrator.Run(ctx, run)
	return run
}

// GetRun looks up a run by ID.
func (e *Engine) GetRun(id string) (*RunRecord, bool) {
	return e.registry.GetRun(id)
}

// Subscribe attaches listener to a run's event stream.
func (e *Engine) Subscribe(id string, listener eventbus.Listener) (func(), error) {
	return e.registry.Subscribe(id, listener)
}
