package reducers

import (
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func allianceFormed(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.AllianceFormedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.ActiveAlliances = append(next.ActiveAlliances, &domain.Alliance{
		ID:              p.AllianceID,
		PartnerAgentID:  p.PartnerAgentID,
		Kind:            domain.AllianceKind(p.AllianceType),
		StartWeek:       next.CurrentWeek,
		DurationWeeks:   p.DurationWeeks,
		PenaltyOnBreach: p.PenaltyOnBreach,
	})
	return next, nil
}

func allianceBreached(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.AllianceBreachedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance -= p.Penalty
	kept := make([]*domain.Alliance, 0, len(next.ActiveAlliances))
	for _, a := range next.ActiveAlliances {
		if a.ID != p.AllianceID {
			kept = append(kept, a)
		}
	}
	next.ActiveAlliances = kept
	next.SocialScore = domain.ClampPercent(next.SocialScore - 5)
	return next, nil
}

func agentAcquired(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.AgentAcquiredPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance += p.OfferAmount
	return next, nil
}

func competitorPriceChanged(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.CompetitorPriceChangedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	for _, loc := range next.Locations {
		loc.ObservedCompetitorPrices[p.ServiceName] = p.NewPrice
	}
	return next, nil
}

func competitorExitedMarket(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	return state.Clone(), nil
}

func communicationIntercepted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	return state.Clone(), nil
}

// RegisterCompetition binds the alliance, buyout, and market-observation reducers.
func RegisterCompetition(d *dispatch.ProjectionDispatcher) {
	d.Register(events.KindAllianceFormed, allianceFormed)
	d.Register(events.KindAllianceBreached, allianceBreached)
	d.Register(events.KindAgentAcquired, agentAcquired)
	d.Register(events.KindCompetitorPriceChanged, competitorPriceChanged)
	d.Register(events.KindCompetitorExitedMarket, competitorExitedMarket)
	d.Register(events.KindCommunicationIntercepted, communicationIntercepted)
}
