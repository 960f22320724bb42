// Package eventbus implements the orchestrator core's per-run event
// log: ordered append, synchronous fan-out to subscribers with
// listener-error isolation, and bounded-memory retention via rotation.
package eventbus

// Type is the event discriminator, spec.md §3's Event "t" field.
type Type string

const (
	TypeActivity Type = "activity"
	TypeStart    Type = "start"
	TypeLog      Type = "log"
	TypePartial  Type = "partial"
	TypeDone     Type = "done"
	TypeResult   Type = "result"
	TypeError    Type = "error"
)

// Event is the tagged union spec.md describes, encoded as a single
// struct with a "t" discriminator so it serializes wire-compatibly
// with a json-stream consumer (spec.md §9).
type Event struct {
	Type  Type   `json:"t"`
	RunID string `json:"runId"`
	Agent string `json:"agent"`

	Name *string `json:"name,omitempty"`
	Msg  string  `json:"msg,omitempty"`

	Field string `json:"field,omitempty"`
	Value any    `json:"value,omitempty"`

	Payload any `json:"payload,omitempty"`
}

// critical event types are never dropped by rotation.
var critical = map[Type]struct{}{
	TypeResult:   {},
	TypeError:    {},
	TypeDone:     {},
	TypeStart:    {},
	TypeActivity: {},
}

func isCritical(t Type) bool {
	_, ok := critical[t]
	return ok
}

func strPtr(s string) *string { return &s }

// Activity builds an activity event.
func Activity(runID, agent, msg string) Event {
	return Event{Type: TypeActivity, RunID: runID, Agent: agent, Msg: msg}
}

// Start builds a start event, optionally naming the item it concerns.
func Start(runID, agent, name string) Event {
	e := Event{Type: TypeStart, RunID: runID, Agent: agent}
	if name != "" {
		e.Name = strPtr(name)
	}
	return e
}

// Log builds a log event. name is optional; pass "" to omit it.
func Log(runID, agent, name, msg string) Event {
	e := Event{Type: TypeLog, RunID: runID, Agent: agent, Msg: msg}
	if name != "" {
		e.Name = strPtr(name)
	}
	return e
}

// Partial builds a partial-result event. name is optional; pass "" to
// omit it.
func Partial(runID, agent, name, field string, value any) Event {
	e := Event{Type: TypePartial, RunID: runID, Agent: agent, Field: field, Value: value}
	if name != "" {
		e.Name = strPtr(name)
	}
	return e
}

// Done builds a done event, optionally naming the item it concerns.
func Done(runID, agent, name string) Event {
	e := Event{Type: TypeDone, RunID: runID, Agent: agent}
	if name != "" {
		e.Name = strPtr(name)
	}
	return e
}

// Result builds a result event.
func Result(runID, agent string, payload any) Event {
	return Event{Type: TypeResult, RunID: runID, Agent: agent, Payload: payload}
}

// Err builds an error event.
func Err(runID, agent, msg string) Event {
	return Event{Type: TypeError, RunID: runID, Agent: agent, Msg: msg}
}
