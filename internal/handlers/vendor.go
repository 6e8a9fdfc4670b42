package handlers

import (
	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

// tierDiscountCeiling is the largest discount each vendor tier will grant
// outright; a request under the ceiling is accepted, a request up to
// double the ceiling draws a counter-offer at the ceiling, anything larger
// is rejected outright. Higher tiers (built from a longer on-time payment
// history) earn a higher ceiling.
var tierDiscountCeiling = map[domain.VendorTier]float64{
	domain.VendorTier1: 0.03,
	domain.VendorTier2: 0.07,
	domain.VendorTier3: 0.12,
	domain.VendorTier4: 0.18,
}

func negotiateOutcome(tier domain.VendorTier, requested float64) (outcome string, granted float64, succeeded bool) {
	ceiling := tierDiscountCeiling[tier]
	switch {
	case requested <= ceiling:
		return "ACCEPT", requested, true
	case requested <= ceiling*2:
		return "COUNTER", ceiling, true
	default:
		return "REJECT", 0, false
	}
}

func negotiateVendorDeal(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.NegotiateVendorDealPayload](cmd)
	if err != nil {
		return nil, err
	}
	loc, ok := state.Locations[p.LocationID]
	if !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	v, ok := loc.VendorRelationships[p.VendorID]
	if !ok {
		return nil, &domain.VendorNotFoundError{LocationID: p.LocationID, VendorID: p.VendorID}
	}
	if p.ProposedDiscount <= 0 || p.ProposedDiscount >= 1 {
		return nil, &domain.InvalidStateError{Reason: "proposed discount must be in (0, 1)"}
	}

	outcome, granted, succeeded := negotiateOutcome(v.Tier, p.ProposedDiscount)
	return []events.Envelope{
		newEvent(state, cmd, events.KindVendorNegotiationInitiated, events.VendorNegotiationInitiatedPayload{
			LocationID: p.LocationID, VendorID: p.VendorID, Proposal: outcome,
		}),
		newEvent(state, cmd, events.KindVendorNegotiationResult, events.VendorNegotiationResultPayload{
			LocationID: p.LocationID, VendorID: p.VendorID, NegotiationSucceeded: succeeded,
			ProposedDiscount: granted, Outcome: outcome,
		}),
	}, nil
}

func signExclusiveContract(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.SignExclusiveContractPayload](cmd)
	if err != nil {
		return nil, err
	}
	loc, ok := state.Locations[p.LocationID]
	if !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	v, ok := loc.VendorRelationships[p.VendorID]
	if !ok {
		return nil, &domain.VendorNotFoundError{LocationID: p.LocationID, VendorID: p.VendorID}
	}
	if v.IsExclusiveContract {
		return nil, &domain.ContractViolationError{Reason: "vendor already under exclusive contract"}
	}
	if p.DurationWeeks <= 0 {
		return nil, &domain.InvalidStateError{Reason: "duration must be positive"}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindExclusiveContractSigned, events.ExclusiveContractSignedPayload{
			LocationID: p.LocationID, VendorID: p.VendorID,
			ContractTerms: "exclusive supply", DurationWeeks: p.DurationWeeks,
		}),
	}, nil
}

func cancelVendorContract(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.CancelVendorContractPayload](cmd)
	if err != nil {
		return nil, err
	}
	loc, ok := state.Locations[p.LocationID]
	if !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	v, ok := loc.VendorRelationships[p.VendorID]
	if !ok {
		return nil, &domain.VendorNotFoundError{LocationID: p.LocationID, VendorID: p.VendorID}
	}
	var penalty float64
	if v.IsExclusiveContract && v.ExclusiveContractEndWeek != nil {
		weeksRemaining := *v.ExclusiveContractEndWeek - state.CurrentWeek
		if weeksRemaining > 0 {
			penalty = float64(weeksRemaining) * 100
		}
	}
	if penalty > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: penalty, Available: state.CashBalance}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindCancelVendorContract, events.CancelVendorContractPayload{
			LocationID: p.LocationID, VendorID: p.VendorID, Reason: p.Reason, EarlyTerminationPenalty: penalty,
		}),
	}, nil
}

// RegisterVendor binds the negotiation and contract handlers.
func RegisterVendor(d *dispatch.CommandDispatcher) {
	d.Register(commands.KindNegotiateVendorDeal, negotiateVendorDeal)
	d.Register(commands.KindSignExclusiveContract, signExclusiveContract)
	d.Register(commands.KindCancelVendorContract, cancelVendorContract)
}
