// Package engine is the orchestration layer every caller goes through:
// ExecuteCommand validates and applies one agent's command, AdvanceTime
// pushes simulated time forward for an agent (ticker cascades plus
// game-master and regulator adjudication), and GetCurrentState/GetHistory
// expose read access. Nothing outside this package appends to the event
// log directly.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/eventlog"
	"github.com/laundroverse/simcore/internal/events"
	"github.com/laundroverse/simcore/internal/gamemaster"
	"github.com/laundroverse/simcore/internal/handlers"
	"github.com/laundroverse/simcore/internal/idgen"
	"github.com/laundroverse/simcore/internal/reducers"
	"github.com/laundroverse/simcore/internal/regulator"
	"github.com/laundroverse/simcore/internal/state"
	"github.com/laundroverse/simcore/internal/ticker"
)

// Engine is the sole entry point for mutating and reading agent state. It
// is safe for concurrent use: per-agent state mutation is serialized by mu,
// and the underlying Log is required to serialize concurrent appends to
// the same agent's stream on its own.
type Engine struct {
	log      eventlog.Log
	commands *dispatch.CommandDispatcher
	builder  *state.Builder

	mu                   sync.Mutex
	cache                map[string]*domain.AgentState
	adjudicationCounters map[string]int
}

// New constructs an Engine with the full default handler and reducer
// catalog registered.
func New(log eventlog.Log) *Engine {
	cmdDispatch := dispatch.NewCommandDispatcher()
	handlers.RegisterAll(cmdDispatch)

	projDispatch := dispatch.NewProjectionDispatcher()
	reducers.RegisterAll(projDispatch)

	return &Engine{
		log:                  log,
		commands:             cmdDispatch,
		builder:              state.NewBuilder(projDispatch),
		cache:                make(map[string]*domain.AgentState),
		adjudicationCounters: make(map[string]int),
	}
}

// currentState returns the cached snapshot for agentID, rebuilding it from
// the log on first access. Callers must hold mu.
func (e *Engine) currentState(ctx context.Context, agentID string) (*domain.AgentState, error) {
	if st, ok := e.cache[agentID]; ok {
		return st, nil
	}
	stream, err := e.log.LoadAll(ctx, agentID)
	if err != nil {
		slog.Error("engine: load stream failed", "agent", agentID, "error", err)
		return nil, &domain.StorageError{Err: err}
	}
	st, err := e.builder.Fold(agentID, stream)
	if err != nil {
		slog.Error("engine: rebuild from stream failed", "agent", agentID, "error", err)
		return nil, fmt.Errorf("engine: rebuild %s: %w", agentID, err)
	}
	e.cache[agentID] = st
	return st, nil
}

// applyEvents appends evs to agentID's log stream and folds them into the
// cached snapshot. Callers must hold mu.
func (e *Engine) applyEvents(ctx context.Context, agentID string, evs []events.Envelope) (*domain.AgentState, error) {
	if len(evs) == 0 {
		return e.currentState(ctx, agentID)
	}
	base, err := e.currentState(ctx, agentID)
	if err != nil {
		return nil, err
	}
	for _, env := range evs {
		if _, err := e.log.Append(ctx, agentID, env); err != nil {
			slog.Error("engine: append to log failed", "agent", agentID, "kind", env.Kind, "error", err)
			return nil, &domain.StorageError{Err: err}
		}
	}
	next, err := e.builder.FoldFrom(base, evs)
	if err != nil {
		slog.Error("engine: fold new events failed", "agent", agentID, "error", err)
		return nil, fmt.Errorf("engine: fold new events for %s: %w", agentID, err)
	}
	e.cache[agentID] = next
	return next, nil
}

// adjudicate runs the game master then the regulator over st and folds
// whatever each decides to emit, in that order, returning the resulting
// snapshot. Callers must hold mu. This is the single place both
// ExecuteCommand (the "post-command" hook) and AdvanceTime (the
// "post-tick" hook) invoke adjudication, so a regulator consequence for a
// triggering event always lands before the next command for that agent is
// accepted, never just at the next tick boundary.
func (e *Engine) adjudicate(ctx context.Context, agentID string, st *domain.AgentState) (*domain.AgentState, error) {
	counter := e.adjudicationCounters[agentID]
	e.adjudicationCounters[agentID] = counter + 1

	gmEvents, err := gamemaster.Observe(st, st.CurrentWeek, st.CurrentDay, counter)
	if err != nil {
		return nil, fmt.Errorf("engine: gamemaster: %w", err)
	}
	st, err = e.applyEvents(ctx, agentID, gmEvents)
	if err != nil {
		return nil, err
	}

	regEvents, err := regulator.Inspect(st, st.CurrentWeek, st.CurrentDay)
	if err != nil {
		return nil, fmt.Errorf("engine: regulator: %w", err)
	}
	for _, env := range regEvents {
		slog.Info("engine: regulator finding", "agent", agentID, "week", st.CurrentWeek, "kind", env.Kind)
	}
	st, err = e.applyEvents(ctx, agentID, regEvents)
	if err != nil {
		return nil, err
	}

	return st, nil
}

// CreateAgent seeds a brand new agent stream with its AgentCreated event.
func (e *Engine) CreateAgent(ctx context.Context, agentID string, initialCash float64) (*domain.AgentState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	env := events.Envelope{
		EventID: idgen.NewEventID(), Kind: events.KindAgentCreated, AgentID: agentID,
		Payload: events.AgentCreatedPayload{InitialCash: initialCash},
	}
	return e.applyEvents(ctx, agentID, []events.Envelope{env})
}

// ExecuteCommand validates cmd against the acting agent's current state,
// applies the resulting events to that agent's own stream, and — for
// commands with an inter-agent counterpart — synthesizes and applies the
// mirror event on the counterpart's stream too. Both sides are applied
// atomically with respect to other callers of this Engine, though not
// with respect to a concurrent direct writer of the underlying Log.
func (e *Engine) ExecuteCommand(ctx context.Context, cmd commands.Command) ([]events.Envelope, *domain.AgentState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slog.Info("engine: dispatching command", "agent", cmd.AgentID, "kind", cmd.Kind)

	actingState, err := e.currentState(ctx, cmd.AgentID)
	if err != nil {
		return nil, nil, err
	}

	produced, err := e.commands.Dispatch(actingState, cmd)
	if err != nil {
		slog.Debug("engine: command rejected", "agent", cmd.AgentID, "kind", cmd.Kind, "error", err)
		return nil, nil, err
	}

	next, err := e.applyEvents(ctx, cmd.AgentID, produced)
	if err != nil {
		return nil, nil, err
	}

	if err := e.mirrorInterAgentEvents(ctx, cmd, produced, actingState); err != nil {
		return nil, nil, err
	}

	next, err = e.adjudicate(ctx, cmd.AgentID, next)
	if err != nil {
		return nil, nil, err
	}

	return produced, next, nil
}

// mirrorInterAgentEvents synthesizes the counterpart-side half of any
// event in produced that names another agent as its target. This is the
// one place cross-stream effects are created; no handler ever writes to a
// stream other than its own.
func (e *Engine) mirrorInterAgentEvents(ctx context.Context, cmd commands.Command, produced []events.Envelope, actingState *domain.AgentState) error {
	for _, env := range produced {
		mirror, targetAgentID, ok := mirrorFor(env, cmd)
		if !ok {
			continue
		}
		mirror.CorrelationID = env.EventID
		if _, err := e.applyEvents(ctx, targetAgentID, []events.Envelope{mirror}); err != nil {
			return err
		}
	}
	return nil
}

// mirrorFor returns the counterpart-side event for one inter-agent event,
// or ok=false if env has no mirror (most events don't).
func mirrorFor(env events.Envelope, cmd commands.Command) (mirror events.Envelope, targetAgentID string, ok bool) {
	switch env.Kind {
	case events.KindCommunicationSent:
		p := env.Payload.(events.CommunicationSentPayload)
		return handlers.NewMirrorEvent(p.TargetAgentID, env.Week, env.Day, events.KindCommunicationReceived,
			events.CommunicationReceivedPayload{SenderAgentID: env.AgentID, Message: p.Message, Channel: p.Channel}, env.EventID),
			p.TargetAgentID, true

	case events.KindAllianceFormed:
		p := env.Payload.(events.AllianceFormedPayload)
		if p.PartnerAgentID == "" {
			return events.Envelope{}, "", false
		}
		mirrored := p
		mirrored.PartnerAgentID = env.AgentID
		return handlers.NewMirrorEvent(p.PartnerAgentID, env.Week, env.Day, events.KindAllianceFormed, mirrored, env.EventID),
			p.PartnerAgentID, true

	case events.KindAllianceBreached:
		// No mirror: the breach, its penalty and the social-score hit all
		// land on the breaching agent's own stream; nothing is written to
		// the partner's stream, whose alliance record is left as it is.
		return events.Envelope{}, "", false

	case events.KindAgentAcquired:
		p := env.Payload.(events.AgentAcquiredPayload)
		return handlers.NewMirrorEvent(p.AcquirerAgentID, env.Week, env.Day, events.KindFundsTransferred,
			events.FundsTransferredPayload{Amount: p.OfferAmount, TransactionKind: events.TxExpense, Description: "buyout payout to " + env.AgentID},
			env.EventID), p.AcquirerAgentID, true

	default:
		return events.Envelope{}, "", false
	}
}

// AdvanceTime pushes agentID's simulated clock forward by days. Each day
// runs ticker, then game master, then regulator in turn, each folding its
// output into state before the next runs, so later days see that day's
// narrative and consequence events, not just its ticker events.
func (e *Engine) AdvanceTime(ctx context.Context, agentID string, days int) (*domain.AgentState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.currentState(ctx, agentID)
	if err != nil {
		return nil, err
	}

	for i := 0; i < days; i++ {
		tickEvents := ticker.Advance(st, 1)
		st, err = e.applyEvents(ctx, agentID, tickEvents)
		if err != nil {
			return nil, err
		}
		slog.Info("engine: tick boundary", "agent", agentID, "week", st.CurrentWeek, "day", st.CurrentDay)

		st, err = e.adjudicate(ctx, agentID, st)
		if err != nil {
			return nil, err
		}
	}

	return st, nil
}

// GetCurrentState returns the current snapshot for agentID.
func (e *Engine) GetCurrentState(ctx context.Context, agentID string) (*domain.AgentState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentState(ctx, agentID)
}

// GetHistory returns agentID's full event stream in append order.
func (e *Engine) GetHistory(ctx context.Context, agentID string) ([]events.Envelope, error) {
	stream, err := e.log.LoadAll(ctx, agentID)
	if err != nil {
		slog.Error("engine: load history failed", "agent", agentID, "error", err)
		return nil, &domain.StorageError{Err: err}
	}
	return stream, nil
}
