package handlers

import (
	"fmt"
	"time"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
	"github.com/laundroverse/simcore/internal/idgen"
)

func commandPayload[T any](cmd commands.Command) (T, error) {
	p, ok := cmd.Payload.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("handlers: command %s: payload has wrong type %T", cmd.Kind, cmd.Payload)
	}
	return p, nil
}

// newEvent stamps a freshly produced event with the current state's clock
// and the acting agent's identity. Handlers call this for every event they
// emit so timestamps and agent attribution never drift from state.
func newEvent(state *domain.AgentState, cmd commands.Command, kind events.Kind, payload any) events.Envelope {
	return events.Envelope{
		EventID:   idgen.NewEventID(),
		Kind:      kind,
		AgentID:   state.AgentID,
		Week:      state.CurrentWeek,
		Day:       state.CurrentDay,
		Timestamp: nowFunc(),
		Payload:   payload,
	}
}

// NewMirrorEvent is newEvent with an explicit AgentID override and a
// correlation ID, used by the engine layer to synthesize the counterpart
// side of an inter-agent event. Handlers in this package never call it
// directly; it's exported for package engine.
func NewMirrorEvent(agentID string, week, day int, kind events.Kind, payload any, correlationID string) events.Envelope {
	return events.Envelope{
		EventID:       idgen.NewEventID(),
		Kind:          kind,
		AgentID:       agentID,
		Week:          week,
		Day:           day,
		Timestamp:     nowFunc(),
		Payload:       payload,
		CorrelationID: correlationID,
	}
}

// nowFunc is a package-level indirection so tests could substitute a fixed
// clock; production code always uses wall time.
var nowFunc = time.Now
