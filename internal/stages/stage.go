// Package stages implements the six pipeline stage drivers spec.md
// §4.9 names — brief-parser, generator, researcher, expert-selector,
// sanity-checker, and report-composer — plus the deterministic stub
// generators they fall back to and the shared stage-wrapper protocol
// (activity emission, stub-vs-live branching, error-to-stub
// conversion) common to all of them.
package stages

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
	"github.com/smilemakc/namazing/internal/eventbus"
	"github.com/smilemakc/namazing/internal/llmclient"
	"github.com/smilemakc/namazing/internal/promptstore"
	"github.com/smilemakc/namazing/internal/validators"
)

// MaxSerialNames is spec.md §4.9's MAX_SERIAL_NAMES: the candidate cap
// in serial mode.
const MaxSerialNames = 24

// MaxParallelNames is the candidate cap in parallel mode.
const MaxParallelNames = 80

// DefaultConcurrency is the researcher stage's fan-out width in
// parallel mode when no override is configured.
const DefaultConcurrency = 4

const defaultRegion = "US"

// stub-mode artificial delays, preserved per spec.md §5 to keep event
// ordering observable across concurrent fan-out.
const (
	stubDelayBriefParser    = 150 * time.Millisecond
	stubDelayGenerator      = 150 * time.Millisecond
	stubDelayResearcher     = 120 * time.Millisecond
	stubDelaySelector       = 150 * time.Millisecond
	stubDelaySanityChecker  = 50 * time.Millisecond
	stubDelayReportComposer = 150 * time.Millisecond
)

// Deps bundles everything a stage driver needs: where to emit events,
// how to reach the model backend, and whether it may fall back to
// stub output.
type Deps struct {
	RunID       string
	Bus         *eventbus.Bus
	Client      *llmclient.Client
	Store       *promptstore.Store
	Log         zerolog.Logger
	AllowStubs  bool
	Concurrency int
}

func (d Deps) emitActivity(agent, msg string) {
	d.Bus.Emit(eventbus.Activity(d.RunID, agent, msg))
}

func (d Deps) emitLog(agent, name, msg string) {
	d.Bus.Emit(eventbus.Log(d.RunID, agent, name, msg))
}

func (d Deps) emitStart(agent, name string) {
	d.Bus.Emit(eventbus.Start(d.RunID, agent, name))
}

func (d Deps) emitDone(agent, name string) {
	d.Bus.Emit(eventbus.Done(d.RunID, agent, name))
}

func (d Deps) emitPartial(agent, name, field string, value any) {
	d.Bus.Emit(eventbus.Partial(d.RunID, agent, name, field, value))
}

func (d Deps) emitResult(agent string, payload any) {
	d.Bus.Emit(eventbus.Result(d.RunID, agent, payload))
}

// checkStubsAllowed implements spec.md §4.9 step 2: a stage fails
// immediately with StubsDisabled when stubs are forbidden and the
// backend is unavailable.
func (d Deps) checkStubsAllowed() error {
	if !d.AllowStubs && !d.Client.BackendAvailable() {
		return domainerrors.New(domainerrors.StubsDisabled, "stubs disabled (--no-stubs) but no model backend credential is configured")
	}
	return nil
}

// sleepStub blocks for the stub's artificial delay, honoring context
// cancellation.
func sleepStub(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// validatable is any domain type with a schema-validation method,
// spec.md §9's "reject malformed payloads with precise field paths".
type validatable interface {
	Validate() error
}

// decodeInto re-encodes a loosely-typed value (as produced by
// jsonextract.Extract) and decodes it into target, then validates it.
// A failure at either step is a SchemaInvalid RunError.
func decodeInto[T validatable](raw any, target *T) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return domainerrors.Wrap(domainerrors.SchemaInvalid, "re-encoding extracted JSON", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return domainerrors.Wrap(domainerrors.SchemaInvalid, "decoding JSON into schema", err)
	}
	return (*target).Validate()
}

// logRejections returns a validators.LogFunc that emits one log event
// per rejected name under agent.
func (d Deps) logRejections(agent string) validators.LogFunc {
	return func(msg string) {
		d.emitLog(agent, "", msg)
	}
}
