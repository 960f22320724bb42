// Package registry owns the in-memory run lifecycle: creating runs,
// tracking their pending/running/completed/failed state, and letting
// callers subscribe to a run's event stream. Nothing here survives a
// process restart (spec.md's Non-goals exclude persisted storage).
package registry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/smilemakc/namazing/internal/domain"
	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
	"github.com/smilemakc/namazing/internal/eventbus"
)

// Status is a run's lifecycle state, spec.md §3's run state machine:
// pending -> running -> {completed, failed}.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Mode is a run's fan-out width, spec.md §3: "serial" caps the
// generator at MAX_SERIAL (24) candidates and researches them one at a
// time; "parallel" allows up to 80 and fans the researcher stage out
// across AGENT_CONCURRENCY workers.
type Mode string

const (
	ModeSerial   Mode = "serial"
	ModeParallel Mode = "parallel"
)

// RunRecord tracks one run's lifecycle, event log, and outcome. Its
// exported mutating methods are safe for concurrent use; a single
// RunRecord is shared between the orchestrator goroutine driving it
// and any goroutine reading its status or subscribing to its bus.
type RunRecord struct {
	ID    string
	Brief string
	Mode  Mode
	// AllowStubs, independent of Mode, governs whether a stage may
	// fall back to deterministic stub output when the model backend
	// is unavailable or a stage errors (spec.md §4.9, §7
	// StubsDisabled). It corresponds to the CLI's --no-stubs flag
	// being absent.
	AllowStubs bool
	Bus        *eventbus.Bus

	mu     sync.Mutex
	status Status
	result *domain.RunResult
	err    error
}

func newRunRecord(id, brief string, mode Mode, allowStubs bool) *RunRecord {
	return &RunRecord{
		ID:         id,
		Brief:      brief,
		Mode:       mode,
		AllowStubs: allowStubs,
		Bus:        eventbus.New(),
		status:     StatusPending,
	}
}

// Status returns the run's current lifecycle state.
func (r *RunRecord) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// MarkRunning transitions a pending run to running.
func (r *RunRecord) MarkRunning() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = StatusRunning
}

// MarkCompleted transitions a run to completed with a non-nil result.
// Per spec.md's invariant, a completed run's result is always set and
// its error is always nil.
func (r *RunRecord) MarkCompleted(result domain.RunResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = StatusCompleted
	r.result = &result
	r.err = nil
}

// MarkFailed transitions a run to failed with a non-nil error. Per
// spec.md's invariant, a failed run's error is always set and its
// result is always nil.
func (r *RunRecord) MarkFailed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = StatusFailed
	r.result = nil
	r.err = err
}

// Result returns the run's result and error under the same lock used
// by the status transitions, so callers never observe a torn state.
func (r *RunRecord) Result() (*domain.RunResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.err
}

// Registry creates and looks up runs by ID.
type Registry struct {
	mu   sync.Mutex
	runs map[string]*RunRecord
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{runs: make(map[string]*RunRecord)}
}

// StartRun creates a new pending RunRecord and registers it. Starting
// the pipeline itself is the orchestrator's job; StartRun only
// allocates bookkeeping so the caller can subscribe before execution
// begins.
func (reg *Registry) StartRun(brief string, mode Mode, allowStubs bool) *RunRecord {
	run := newRunRecord(uuid.NewString(), brief, mode, allowStubs)
	reg.mu.Lock()
	reg.runs[run.ID] = run
	reg.mu.Unlock()
	return run
}

// GetRun looks up a run by ID.
func (reg *Registry) GetRun(id string) (*RunRecord, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	run, ok := reg.runs[id]
	return run, ok
}

// Subscribe attaches listener to the run's event bus, returning an
// unsubscribe func, or a RunNotFound error if id is unknown.
func (reg *Registry) Subscribe(id string, listener eventbus.Listener) (func(), error) {
	run, ok := reg.GetRun(id)
	if !ok {
		return nil, domainerrors.New(domainerrors.RunNotFound, "run not found: "+id)
	}
	return run.Bus.Subscribe(listener), nil
}
