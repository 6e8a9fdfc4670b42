// Package dispatch holds the two open/closed registries the engine drives:
// command kind to handler, and event kind to reducer. Registering a new
// kind never requires touching an existing handler or reducer.
package dispatch

import (
	"fmt"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

// UnknownCommandError is returned to the caller when no handler is
// registered for a command's kind. It is caller-visible: a bad command
// kind is a client mistake, not an engine invariant violation.
type UnknownCommandError struct {
	Kind commands.Kind
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("dispatch: unknown command kind %q", e.Kind)
}

// UnknownEventError is returned by ProjectionDispatcher.Apply when asked to
// fold an event kind with no registered reducer. Unlike an unknown command,
// this can only happen if the log contains an event the running binary
// does not know how to interpret, which is a fatal condition: the fold
// result would silently omit the event's effect.
type UnknownEventError struct {
	Kind events.Kind
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("dispatch: no reducer registered for event kind %q", e.Kind)
}

// Handler validates one command kind against the current state and returns
// the events it produces, or a domain/internal error if rejected.
type Handler func(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error)

// Reducer applies one event kind to state and returns the resulting state.
// Reducers never mutate their input; they clone-then-mutate.
type Reducer func(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error)

// CommandDispatcher is the kind->handler registry.
type CommandDispatcher struct {
	handlers map[commands.Kind]Handler
}

// NewCommandDispatcher returns an empty dispatcher ready for Register calls.
func NewCommandDispatcher() *CommandDispatcher {
	return &CommandDispatcher{handlers: make(map[commands.Kind]Handler)}
}

// Register binds a handler to a command kind. Registering the same kind
// twice is a programmer error and panics immediately at startup rather than
// silently shadowing the first registration.
func (d *CommandDispatcher) Register(kind commands.Kind, h Handler) {
	if _, exists := d.handlers[kind]; exists {
		panic(fmt.Sprintf("dispatch: command kind %q registered twice", kind))
	}
	d.handlers[kind] = h
}

// Dispatch runs the handler registered for cmd.Kind, or returns
// *UnknownCommandError if none is registered.
func (d *CommandDispatcher) Dispatch(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	h, ok := d.handlers[cmd.Kind]
	if !ok {
		return nil, &UnknownCommandError{Kind: cmd.Kind}
	}
	return h(state, cmd)
}

// ProjectionDispatcher is the kind->reducer registry driving the fold.
type ProjectionDispatcher struct {
	reducers map[events.Kind]Reducer
}

// NewProjectionDispatcher returns an empty dispatcher ready for Register calls.
func NewProjectionDispatcher() *ProjectionDispatcher {
	return &ProjectionDispatcher{reducers: make(map[events.Kind]Reducer)}
}

// Register binds a reducer to an event kind. Like CommandDispatcher.Register,
// a duplicate registration panics at startup.
func (d *ProjectionDispatcher) Register(kind events.Kind, r Reducer) {
	if _, exists := d.reducers[kind]; exists {
		panic(fmt.Sprintf("dispatch: event kind %q registered twice", kind))
	}
	d.reducers[kind] = r
}

// Apply folds one event into state using its registered reducer. An
// unregistered kind is fatal: it means the running binary's catalog is
// stale relative to the log it is reading.
func (d *ProjectionDispatcher) Apply(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	r, ok := d.reducers[env.Kind]
	if !ok {
		return nil, &UnknownEventError{Kind: env.Kind}
	}
	return r(state, env)
}
