package reducers

import (
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func staffHired(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.StaffHiredPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		loc.Staff[p.StaffID] = &domain.StaffMember{
			ID:         p.StaffID,
			Name:       p.StaffName,
			Role:       domain.StaffRole(p.Role),
			HourlyRate: p.HourlyRate,
			Morale:     70,
			HiredWeek:  next.CurrentWeek,
		}
	}
	return next, nil
}

func staffFired(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.StaffFiredPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance -= p.SeveranceCost
	if loc, ok := next.Locations[p.LocationID]; ok {
		delete(loc.Staff, p.StaffID)
	}
	return next, nil
}

func staffQuit(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.StaffQuitPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		delete(loc.Staff, p.StaffID)
	}
	return next, nil
}

func wageAdjusted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.WageAdjustedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		if s, ok := loc.Staff[p.StaffID]; ok {
			s.HourlyRate = p.NewRate
			if p.NewRate > p.OldRate {
				s.Morale = domain.ClampPercent(s.Morale + 5)
			} else if p.NewRate < p.OldRate {
				s.Morale = domain.ClampPercent(s.Morale - 10)
			}
		}
	}
	return next, nil
}

func benefitImplemented(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.BenefitImplementedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance -= p.AnnualCostPerEmployee * float64(p.EmployeeCount)
	if loc, ok := next.Locations[p.LocationID]; ok {
		for _, s := range loc.Staff {
			s.Morale = domain.ClampPercent(s.Morale + 8)
		}
	}
	return next, nil
}

// RegisterStaffing binds the hiring, firing, wage, and benefit reducers.
func RegisterStaffing(d *dispatch.ProjectionDispatcher) {
	d.Register(events.KindStaffHired, staffHired)
	d.Register(events.KindStaffFired, staffFired)
	d.Register(events.KindStaffQuit, staffQuit)
	d.Register(events.KindWageAdjusted, wageAdjusted)
	d.Register(events.KindBenefitImplemented, benefitImplemented)
}
