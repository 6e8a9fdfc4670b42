package handlers

import (
	"fmt"
	"strings"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

// AllianceProposalID derives a deterministic identifier both sides of an
// alliance proposal can reference without a shared store: the proposer and
// partner agree on it from the tuple that started the proposal.
func AllianceProposalID(proposerAgentID, partnerAgentID string, week int) string {
	return fmt.Sprintf("alliance-%s-%s-w%d", proposerAgentID, partnerAgentID, week)
}

func proposeAlliance(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.ProposeAlliancePayload](cmd)
	if err != nil {
		return nil, err
	}
	if p.PartnerAgentID == "" || p.PartnerAgentID == state.AgentID {
		return nil, &domain.InvalidStateError{Reason: "alliance partner must be a different agent"}
	}
	if p.DurationWeeks <= 0 {
		return nil, &domain.InvalidStateError{Reason: "duration must be positive"}
	}
	allianceID := AllianceProposalID(state.AgentID, p.PartnerAgentID, state.CurrentWeek)
	return []events.Envelope{
		newEvent(state, cmd, events.KindCommunicationSent, events.CommunicationSentPayload{
			TargetAgentID: p.PartnerAgentID,
			Message:       fmt.Sprintf("alliance proposal %s: type=%s duration=%dw", allianceID, p.AllianceType, p.DurationWeeks),
			Channel:       "ALLIANCE_PROPOSAL",
		}),
	}, nil
}

func acceptAlliance(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.AcceptAlliancePayload](cmd)
	if err != nil {
		return nil, err
	}
	for _, a := range state.ActiveAlliances {
		if a.ID == p.AllianceID {
			return nil, &domain.InvalidStateError{Reason: "alliance already active"}
		}
	}
	// The proposer is recovered from the AllianceProposalID, so the engine
	// can mirror the formation onto the proposer's stream.
	partnerAgentID := ""
	if rest, ok := strings.CutPrefix(p.AllianceID, "alliance-"); ok {
		if i := strings.LastIndex(rest, "-"+state.AgentID+"-w"); i > 0 {
			partnerAgentID = rest[:i]
		}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindAllianceFormed, events.AllianceFormedPayload{
			AllianceID: p.AllianceID, PartnerAgentID: partnerAgentID, AllianceType: string(domain.AllianceInformal),
			DurationWeeks: 52, PenaltyOnBreach: 1000,
		}),
	}, nil
}

func breachAlliance(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.BreachAlliancePayload](cmd)
	if err != nil {
		return nil, err
	}
	var alliance *domain.Alliance
	for _, a := range state.ActiveAlliances {
		if a.ID == p.AllianceID {
			alliance = a
			break
		}
	}
	if alliance == nil {
		return nil, &domain.InvalidStateError{Reason: "unknown alliance id " + p.AllianceID}
	}
	if alliance.PenaltyOnBreach > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: alliance.PenaltyOnBreach, Available: state.CashBalance}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindAllianceBreached, events.AllianceBreachedPayload{
			AllianceID: p.AllianceID, Penalty: alliance.PenaltyOnBreach,
		}),
	}, nil
}

func proposeBuyout(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.ProposeBuyoutPayload](cmd)
	if err != nil {
		return nil, err
	}
	if p.TargetAgentID == "" || p.TargetAgentID == state.AgentID {
		return nil, &domain.InvalidStateError{Reason: "buyout target must be a different agent"}
	}
	if p.OfferAmount <= 0 {
		return nil, &domain.InvalidStateError{Reason: "offer amount must be positive"}
	}
	if p.OfferAmount > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: p.OfferAmount, Available: state.CashBalance}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindCommunicationSent, events.CommunicationSentPayload{
			TargetAgentID: p.TargetAgentID,
			Message:       fmt.Sprintf("buyout offer from %s: %.2f", state.AgentID, p.OfferAmount),
			Channel:       "BUYOUT_OFFER",
		}),
	}, nil
}

func acceptBuyoutOffer(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.AcceptBuyoutOfferPayload](cmd)
	if err != nil {
		return nil, err
	}
	if p.AcquirerAgentID == "" || p.AcquirerAgentID == state.AgentID {
		return nil, &domain.InvalidStateError{Reason: "acquirer must be a different agent"}
	}
	if p.OfferAmount <= 0 {
		return nil, &domain.InvalidStateError{Reason: "offer amount must be positive"}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindAgentAcquired, events.AgentAcquiredPayload{
			AcquirerAgentID: p.AcquirerAgentID, OfferAmount: p.OfferAmount,
		}),
		newEvent(state, cmd, events.KindAgentRetired, events.AgentRetiredPayload{
			Reason: "acquired by " + p.AcquirerAgentID,
		}),
	}, nil
}

// RegisterCompetition binds the alliance and buyout handlers. The
// cross-stream half of each inter-agent flow (the mirror event on the
// counterpart's own stream) is synthesized by package engine, not here:
// a handler only ever sees and returns events for the acting agent.
func RegisterCompetition(d *dispatch.CommandDispatcher) {
	d.Register(commands.KindProposeAlliance, proposeAlliance)
	d.Register(commands.KindAcceptAlliance, acceptAlliance)
	d.Register(commands.KindBreachAlliance, breachAlliance)
	d.Register(commands.KindProposeBuyout, proposeBuyout)
	d.Register(commands.KindAcceptBuyoutOffer, acceptBuyoutOffer)
}
