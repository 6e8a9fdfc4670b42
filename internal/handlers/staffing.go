package handlers

import (
	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
	"github.com/laundroverse/simcore/internal/idgen"
)

const minHourlyRate = 7.25

func hireStaff(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.HireStaffPayload](cmd)
	if err != nil {
		return nil, err
	}
	if _, ok := state.Locations[p.LocationID]; !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	if p.HourlyRate < minHourlyRate {
		return nil, &domain.InvalidStateError{Reason: "hourly rate below wage floor"}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindStaffHired, events.StaffHiredPayload{
			LocationID: p.LocationID, StaffID: idgen.NewEventID(), StaffName: p.StaffName,
			Role: p.Role, HourlyRate: p.HourlyRate,
		}),
	}, nil
}

func fireStaff(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.FireStaffPayload](cmd)
	if err != nil {
		return nil, err
	}
	loc, ok := state.Locations[p.LocationID]
	if !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	s, ok := loc.Staff[p.StaffID]
	if !ok {
		return nil, &domain.StaffNotFoundError{LocationID: p.LocationID, StaffID: p.StaffID}
	}
	severance := s.HourlyRate * 40 * float64(s.TenureWeeks) * 0.02
	if severance > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: severance, Available: state.CashBalance}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindStaffFired, events.StaffFiredPayload{
			LocationID: p.LocationID, StaffID: p.StaffID, SeveranceCost: severance,
		}),
	}, nil
}

func adjustWage(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.AdjustWagePayload](cmd)
	if err != nil {
		return nil, err
	}
	loc, ok := state.Locations[p.LocationID]
	if !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	s, ok := loc.Staff[p.StaffID]
	if !ok {
		return nil, &domain.StaffNotFoundError{LocationID: p.LocationID, StaffID: p.StaffID}
	}
	if p.NewRate < minHourlyRate {
		return nil, &domain.InvalidStateError{Reason: "hourly rate below wage floor"}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindWageAdjusted, events.WageAdjustedPayload{
			LocationID: p.LocationID, StaffID: p.StaffID, OldRate: s.HourlyRate, NewRate: p.NewRate,
		}),
	}, nil
}

func provideBenefits(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.ProvideBenefitsPayload](cmd)
	if err != nil {
		return nil, err
	}
	loc, ok := state.Locations[p.LocationID]
	if !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	if p.Cost <= 0 {
		return nil, &domain.InvalidStateError{Reason: "benefit cost must be positive"}
	}
	employeeCount := len(loc.Staff)
	totalCost := p.Cost * float64(employeeCount)
	if totalCost > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: totalCost, Available: state.CashBalance}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindBenefitImplemented, events.BenefitImplementedPayload{
			LocationID: p.LocationID, BenefitType: p.BenefitType,
			AnnualCostPerEmployee: p.Cost, EmployeeCount: employeeCount,
		}),
	}, nil
}

// RegisterStaffing binds the hiring, firing, wage, and benefit handlers.
func RegisterStaffing(d *dispatch.CommandDispatcher) {
	d.Register(commands.KindHireStaff, hireStaff)
	d.Register(commands.KindFireStaff, fireStaff)
	d.Register(commands.KindAdjustWage, adjustWage)
	d.Register(commands.KindProvideBenefits, provideBenefits)
}
