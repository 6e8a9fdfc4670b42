package reducers

import (
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func socialScoreAdjusted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.SocialScoreAdjustedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.SocialScore = domain.ClampPercent(next.SocialScore + p.Adjustment)
	return next, nil
}

func regulatoryStatusUpdated(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.RegulatoryStatusUpdatedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.RegulatoryStatus = domain.RegulatoryStatus(p.NewStatus)
	return next, nil
}

func scandalStarted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.ScandalStartedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.ActiveScandals = append(next.ActiveScandals, &domain.ScandalMarker{
		ID:            p.ScandalID,
		Description:   p.Description,
		Severity:      domain.ClampUnit(p.Severity),
		StartWeek:     next.CurrentWeek,
		DurationWeeks: p.DurationWeeks,
		DecayRate:     p.Severity / float64(maxInt(p.DurationWeeks, 1)),
	})
	return next, nil
}

func scandalMarkerDecayed(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.ScandalMarkerDecayedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	kept := make([]*domain.ScandalMarker, 0, len(next.ActiveScandals))
	for _, sc := range next.ActiveScandals {
		if sc.ID != p.ScandalID {
			kept = append(kept, sc)
			continue
		}
		sc.Severity = domain.ClampUnit(sc.Severity - sc.DecayRate)
		sc.DurationWeeks = p.RemainingWeeks
		if sc.DurationWeeks > 0 && sc.Severity > 0 {
			kept = append(kept, sc)
		}
	}
	next.ActiveScandals = kept
	return next, nil
}

func regulatoryFinding(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.RegulatoryFindingPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.PendingFines = append(next.PendingFines, &domain.Fine{
		ID:          p.FineID,
		Description: p.Description,
		Amount:      p.FineAmount,
		IssuedWeek:  next.CurrentWeek,
		DueWeek:     p.DueWeek,
		Status:      domain.FineOpen,
	})
	return next, nil
}

func finePaid(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.FinePaidPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	kept := make([]*domain.Fine, 0, len(next.PendingFines))
	for _, f := range next.PendingFines {
		if f.ID == p.FineID {
			next.CashBalance -= f.Amount
			continue
		}
		kept = append(kept, f)
	}
	next.PendingFines = kept
	return next, nil
}

func fineAppealed(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.FineAppealedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	for _, f := range next.PendingFines {
		if f.ID == p.FineID {
			f.Status = domain.FineAppealed
		}
	}
	return next, nil
}

func dilemmaTriggered(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.DilemmaTriggeredPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.ActiveDilemmas[p.DilemmaID] = &domain.Dilemma{
		Description:   p.Description,
		Options:       append([]string(nil), p.Options...),
		TriggeredWeek: next.CurrentWeek,
	}
	return next, nil
}

func dilemmaResolved(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.DilemmaResolvedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	delete(next.ActiveDilemmas, p.DilemmaID)
	return next, nil
}

func loyaltyMemberRegistered(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.LoyaltyMemberRegisteredPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CustomerLoyaltyMembers = p.MemberCount
	return next, nil
}

func customerReviewSubmitted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.CustomerReviewSubmittedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	// Ratings center on 3; above/below nudges social score proportionally.
	next.SocialScore = domain.ClampPercent(next.SocialScore + (p.Rating-3)*0.5)
	return next, nil
}

func investigationStarted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.InvestigationStartedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.ActiveInvestigations[p.InvestigationID] = &domain.Investigation{
		Reason:       p.Reason,
		Severity:     p.Severity,
		CurrentStage: "OPENED",
		StartedWeek:  next.CurrentWeek,
	}
	return next, nil
}

func investigationStageAdvanced(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.InvestigationStageAdvancedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if inv, ok := next.ActiveInvestigations[p.InvestigationID]; ok {
		inv.CurrentStage = p.CurrentStage
		if p.CurrentStage == "CLOSED" {
			delete(next.ActiveInvestigations, p.InvestigationID)
		}
	}
	return next, nil
}

// RegisterSocial binds the reputation, regulatory, dilemma, and loyalty reducers.
func RegisterSocial(d *dispatch.ProjectionDispatcher) {
	d.Register(events.KindSocialScoreAdjusted, socialScoreAdjusted)
	d.Register(events.KindRegulatoryStatusUpdated, regulatoryStatusUpdated)
	d.Register(events.KindScandalStarted, scandalStarted)
	d.Register(events.KindScandalMarkerDecayed, scandalMarkerDecayed)
	d.Register(events.KindRegulatoryFinding, regulatoryFinding)
	d.Register(events.KindFinePaid, finePaid)
	d.Register(events.KindFineAppealed, fineAppealed)
	d.Register(events.KindDilemmaTriggered, dilemmaTriggered)
	d.Register(events.KindDilemmaResolved, dilemmaResolved)
	d.Register(events.KindLoyaltyMemberRegistered, loyaltyMemberRegistered)
	d.Register(events.KindCustomerReviewSubmitted, customerReviewSubmitted)
	d.Register(events.KindInvestigationStarted, investigationStarted)
	d.Register(events.KindInvestigationStageAdvanced, investigationStageAdvanced)
}
