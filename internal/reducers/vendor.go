package reducers

import (
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func ensureVendor(loc *domain.LocationState, vendorID string) *domain.VendorRelationship {
	v, ok := loc.VendorRelationships[vendorID]
	if !ok {
		v = &domain.VendorRelationship{VendorID: vendorID, Tier: domain.VendorTier1}
		loc.VendorRelationships[vendorID] = v
	}
	return v
}

func vendorNegotiationInitiated(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	return state.Clone(), nil
}

func vendorNegotiationResult(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.VendorNegotiationResultPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		v := ensureVendor(loc, p.VendorID)
		if p.NegotiationSucceeded {
			v.CurrentUnitPrice *= 1 - p.ProposedDiscount
		}
	}
	return next, nil
}

func exclusiveContractSigned(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.ExclusiveContractSignedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		v := ensureVendor(loc, p.VendorID)
		v.IsExclusiveContract = true
		end := next.CurrentWeek + p.DurationWeeks
		v.ExclusiveContractEndWeek = &end
	}
	return next, nil
}

func vendorTermsUpdated(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	return state.Clone(), nil
}

func cancelVendorContract(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.CancelVendorContractPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance -= p.EarlyTerminationPenalty
	if loc, ok := next.Locations[p.LocationID]; ok {
		if v, ok := loc.VendorRelationships[p.VendorID]; ok {
			v.IsExclusiveContract = false
			v.ExclusiveContractEndWeek = nil
			v.PaymentHistory = appendHistoryBounded(v.PaymentHistory, domain.PaymentDefault)
		}
	}
	return next, nil
}

func vendorTierPromoted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.VendorTierPromotedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	for _, loc := range next.Locations {
		if v, ok := loc.VendorRelationships[p.VendorID]; ok {
			v.Tier = domain.VendorTier(p.NewTier)
			v.WeeksAtTier = 0
		}
	}
	return next, nil
}

func vendorTierDemoted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.VendorTierDemotedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	for _, loc := range next.Locations {
		if v, ok := loc.VendorRelationships[p.VendorID]; ok {
			v.Tier = domain.VendorTier(p.NewTier)
			v.WeeksAtTier = 0
		}
	}
	return next, nil
}

func vendorPriceFluctuated(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.VendorPriceFluctuatedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	for _, loc := range next.Locations {
		if v, ok := loc.VendorRelationships[p.VendorID]; ok {
			v.CurrentUnitPrice = p.NewPricePerUnit
		}
	}
	return next, nil
}

func deliveryDisruptionStarted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.DeliveryDisruptionStartedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	for _, loc := range next.Locations {
		if v, ok := loc.VendorRelationships[p.VendorID]; ok {
			v.Disrupted = true
		}
	}
	return next, nil
}

func deliveryDisruptionEnded(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.DeliveryDisruptionEndedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	for _, loc := range next.Locations {
		if v, ok := loc.VendorRelationships[p.VendorID]; ok {
			v.Disrupted = false
		}
	}
	return next, nil
}

func appendHistoryBounded(h []domain.PaymentHistoryEntry, v domain.PaymentHistoryEntry) []domain.PaymentHistoryEntry {
	h = append(h, v)
	if len(h) > domain.MaxPaymentHistory {
		h = h[len(h)-domain.MaxPaymentHistory:]
	}
	return h
}

// RegisterVendor binds the vendor negotiation, contract, and tier reducers.
func RegisterVendor(d *dispatch.ProjectionDispatcher) {
	d.Register(events.KindVendorNegotiationInitiated, vendorNegotiationInitiated)
	d.Register(events.KindVendorNegotiationResult, vendorNegotiationResult)
	d.Register(events.KindExclusiveContractSigned, exclusiveContractSigned)
	d.Register(events.KindVendorTermsUpdated, vendorTermsUpdated)
	d.Register(events.KindCancelVendorContract, cancelVendorContract)
	d.Register(events.KindVendorTierPromoted, vendorTierPromoted)
	d.Register(events.KindVendorTierDemoted, vendorTierDemoted)
	d.Register(events.KindVendorPriceFluctuated, vendorPriceFluctuated)
	d.Register(events.KindDeliveryDisruptionStarted, deliveryDisruptionStarted)
	d.Register(events.KindDeliveryDisruptionEnded, deliveryDisruptionEnded)
}
