// Package reducers implements the pure (state, event) -> state functions
// the projection dispatcher folds over an agent's stream. Every reducer
// clones its input via domain's Clone helpers before mutating, so a
// snapshot already handed to a caller is never retroactively changed.
package reducers

import (
	"fmt"

	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func payload[T any](env events.Envelope) (T, error) {
	p, ok := env.Payload.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("reducers: event %s: payload has wrong type %T", env.Kind, env.Payload)
	}
	return p, nil
}

func agentCreated(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.AgentCreatedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance = p.InitialCash
	return next, nil
}

func agentRetired(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	// Retirement is a terminal marker; no field on AgentState currently
	// tracks it, so this reducer is intentionally a no-op clone, kept as
	// a registered kind so retired agents still fold cleanly.
	return state.Clone(), nil
}

func timeAdvanced(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.TimeAdvancedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CurrentWeek = p.NewWeek
	next.CurrentDay = p.NewDay
	return next, nil
}

func auditSnapshotRecorded(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.AuditSnapshotRecordedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.AuditEntriesCount = p.EntriesCount
	next.LastAuditEventKind = p.LastEventKind
	return next, nil
}

func endOfTurnNotesSaved(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.EndOfTurnNotesSavedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.PrivateNotes = append(next.PrivateNotes, p.Notes)
	return next, nil
}

func communicationSent(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.CommunicationSentPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.RecentMessages = appendBounded(next.RecentMessages, "sent to "+p.TargetAgentID+": "+p.Message, domain.MaxRecentMessages)

	log := next.CommunicationLog[p.TargetAgentID]
	log = append(log, domain.CommunicationRecord{Week: next.CurrentWeek, Length: len(p.Message)})
	if len(log) > maxCommunicationRecordsPerTarget {
		log = log[len(log)-maxCommunicationRecordsPerTarget:]
	}
	next.CommunicationLog[p.TargetAgentID] = log

	return next, nil
}

// maxCommunicationRecordsPerTarget bounds how many of the most recent
// messages to one counterparty the regulator's collusion check considers.
const maxCommunicationRecordsPerTarget = 20

func communicationReceived(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.CommunicationReceivedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.RecentMessages = appendBounded(next.RecentMessages, "from "+p.SenderAgentID+": "+p.Message, domain.MaxRecentMessages)
	return next, nil
}

func complianceReportFiled(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	if _, err := payload[events.ComplianceReportFiledPayload](env); err != nil {
		return nil, err
	}
	next := state.Clone()
	next.ComplianceReportsFiled++
	return next, nil
}

func appendBounded(s []string, v string, max int) []string {
	s = append(s, v)
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}

// RegisterCore binds the lifecycle, time, and communication reducers.
func RegisterCore(d *dispatch.ProjectionDispatcher) {
	d.Register(events.KindAgentCreated, agentCreated)
	d.Register(events.KindAgentRetired, agentRetired)
	d.Register(events.KindTimeAdvanced, timeAdvanced)
	d.Register(events.KindAuditSnapshotRecorded, auditSnapshotRecorded)
	d.Register(events.KindEndOfTurnNotesSaved, endOfTurnNotesSaved)
	d.Register(events.KindCommunicationSent, communicationSent)
	d.Register(events.KindCommunicationReceived, communicationReceived)
	d.Register(events.KindComplianceReportFiled, complianceReportFiled)
}
