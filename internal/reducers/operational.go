package reducers

import (
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func priceSet(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.PriceSetPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		loc.ActivePricing[p.ServiceName] = p.NewPrice
	}
	return next, nil
}

func equipmentPurchased(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.EquipmentPurchasedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		loc.Equipment[p.MachineID] = &domain.MachineState{
			ID:                  p.MachineID,
			Kind:                domain.MachineKind(p.MachineKind),
			Status:              domain.MachineOperational,
			Condition:           100,
			LastMaintenanceWeek: next.CurrentWeek,
		}
	}
	return next, nil
}

func equipmentSold(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.EquipmentSoldPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance += p.SalePrice
	if loc, ok := next.Locations[p.LocationID]; ok {
		delete(loc.Equipment, p.MachineID)
	}
	return next, nil
}

func equipmentRepaired(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.EquipmentRepairedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance -= p.MaintenanceCost
	if loc, ok := next.Locations[p.LocationID]; ok {
		if m, ok := loc.Equipment[p.MachineID]; ok {
			m.Condition = domain.ClampPercent(p.NewCondition)
			m.LastMaintenanceWeek = next.CurrentWeek
			m.LoadsProcessedSinceService = 0
			m.Status = domain.MachineOperational
		}
	}
	return next, nil
}

func suppliesAcquired(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.SuppliesAcquiredPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance -= p.Cost
	if loc, ok := next.Locations[p.LocationID]; ok {
		switch p.SupplyType {
		case "DETERGENT":
			loc.InventoryDetergent += p.Quantity
		case "SOFTENER":
			loc.InventorySoftener += p.Quantity
		}
	}
	return next, nil
}

func newLocationOpened(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.NewLocationOpenedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance -= p.InitialInvestment
	next.Locations[p.LocationID] = domain.NewLocationState(p.LocationID, p.Zone, p.MonthlyRent)
	return next, nil
}

func locationClosed(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.LocationClosedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	delete(next.Locations, p.LocationID)
	return next, nil
}

func locationListingRemoved(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.LocationListingRemovedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	delete(next.AvailableListings, p.ListingID)
	return next, nil
}

func machineStatusChanged(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.MachineStatusChangedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		if m, ok := loc.Equipment[p.MachineID]; ok {
			m.Status = domain.MachineStatus(p.NewStatus)
		}
	}
	return next, nil
}

func machineBrokenDown(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.MachineBrokenDownPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		if m, ok := loc.Equipment[p.MachineID]; ok {
			m.Status = domain.MachineBroken
		}
	}
	return next, nil
}

func machineWearUpdated(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.MachineWearUpdatedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		if m, ok := loc.Equipment[p.MachineID]; ok {
			m.Condition = domain.ClampPercent(p.NewCondition)
			m.LoadsProcessedSinceService = p.LoadsProcessedSinceService
		}
	}
	return next, nil
}

func dailyRevenueProcessed(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.DailyRevenueProcessedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		loc.AccumulatedRevenueWeek += p.RevenueGenerated
		loc.AccumulatedCOGSWeek += p.UtilityCost + p.SuppliesCost
		for _, m := range loc.Equipment {
			if m.Status == domain.MachineOperational {
				m.LoadsProcessedSinceService += p.LoadsProcessed / maxInt(len(loc.Equipment), 1)
			}
		}
		// Mechanical inventory consumption: detergent one unit per load,
		// softener one unit per two loads. Never goes negative.
		loc.InventoryDetergent -= p.LoadsProcessed
		if loc.InventoryDetergent < 0 {
			loc.InventoryDetergent = 0
		}
		loc.InventorySoftener -= p.LoadsProcessed / 2
		if loc.InventorySoftener < 0 {
			loc.InventorySoftener = 0
		}
	}
	next.MarketShareLoads += float64(p.LoadsProcessed)
	return next, nil
}

func weeklyFixedCostsBilled(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.WeeklyFixedCostsBilledPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		loc.AccumulatedRevenueWeek = 0
		loc.AccumulatedCOGSWeek = 0
	}
	return next, nil
}

func weeklyWagesBilled(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.WeeklyWagesBilledPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loc, ok := next.Locations[p.LocationID]; ok {
		for _, s := range loc.Staff {
			s.TenureWeeks++
		}
	}
	return next, nil
}

func stockoutStarted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	return state.Clone(), nil
}

func stockoutEnded(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	return state.Clone(), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// RegisterOperational binds the equipment, supplies, and location reducers.
func RegisterOperational(d *dispatch.ProjectionDispatcher) {
	d.Register(events.KindPriceSet, priceSet)
	d.Register(events.KindEquipmentPurchased, equipmentPurchased)
	d.Register(events.KindEquipmentSold, equipmentSold)
	d.Register(events.KindEquipmentRepaired, equipmentRepaired)
	d.Register(events.KindSuppliesAcquired, suppliesAcquired)
	d.Register(events.KindNewLocationOpened, newLocationOpened)
	d.Register(events.KindLocationClosed, locationClosed)
	d.Register(events.KindLocationListingRemoved, locationListingRemoved)
	d.Register(events.KindMachineStatusChanged, machineStatusChanged)
	d.Register(events.KindMachineBrokenDown, machineBrokenDown)
	d.Register(events.KindMachineWearUpdated, machineWearUpdated)
	d.Register(events.KindDailyRevenueProcessed, dailyRevenueProcessed)
	d.Register(events.KindWeeklyFixedCostsBilled, weeklyFixedCostsBilled)
	d.Register(events.KindWeeklyWagesBilled, weeklyWagesBilled)
	d.Register(events.KindStockoutStarted, stockoutStarted)
	d.Register(events.KindStockoutEnded, stockoutEnded)
}
