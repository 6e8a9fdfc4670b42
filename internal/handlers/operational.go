package handlers

import (
	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
	"github.com/laundroverse/simcore/internal/idgen"
)

// machinePrices is the one-time purchase cost for each machine kind.
var machinePrices = map[string]float64{
	string(domain.MachineStandardWasher):   2000,
	string(domain.MachineIndustrialWasher): 6000,
	string(domain.MachineDeluxeWasher):     4000,
	string(domain.MachineDryer):            1800,
	string(domain.MachineVending):          800,
}

// maintenanceTable is the explicit cost and condition-restore delta per
// maintenance type: routine is a cheap top-up, deep is a bigger restore,
// overhaul fully resets the machine to like-new condition.
var maintenanceTable = map[string]struct {
	Cost          float64
	ConditionGain float64 // applied additively; OVERHAUL ignores this and sets 100
}{
	"ROUTINE":  {Cost: 50, ConditionGain: 15},
	"DEEP":     {Cost: 150, ConditionGain: 35},
	"OVERHAUL": {Cost: 400, ConditionGain: 100},
}

// fixMachineCost is the flat emergency-repair fee for bringing a broken
// machine back to OPERATIONAL, distinct from performMaintenance's
// condition-service tiers: a fix restores availability, not condition.
const fixMachineCost = 75.0

var supplyUnitCost = map[string]float64{
	"DETERGENT": 0.08,
	"SOFTENER":  0.05,
}

func purchaseEquipment(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.PurchaseEquipmentPayload](cmd)
	if err != nil {
		return nil, err
	}
	if _, ok := state.Locations[p.LocationID]; !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	unitPrice, ok := machinePrices[p.MachineKind]
	if !ok {
		return nil, &domain.InvalidStateError{Reason: "unknown machine kind " + p.MachineKind}
	}
	quantity := p.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	total := unitPrice * float64(quantity)
	if total > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: total, Available: state.CashBalance}
	}

	evs := make([]events.Envelope, 0, quantity+1)
	for i := 0; i < quantity; i++ {
		evs = append(evs, newEvent(state, cmd, events.KindEquipmentPurchased, events.EquipmentPurchasedPayload{
			LocationID: p.LocationID, MachineID: idgen.NewEventID(), MachineKind: p.MachineKind, PurchasePrice: unitPrice,
		}))
	}
	evs = append(evs, newEvent(state, cmd, events.KindFundsTransferred, events.FundsTransferredPayload{
		Amount: total, TransactionKind: events.TxExpense, Description: "equipment purchase from " + p.VendorID,
	}))
	return evs, nil
}

func sellEquipment(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.SellEquipmentPayload](cmd)
	if err != nil {
		return nil, err
	}
	loc, ok := state.Locations[p.LocationID]
	if !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	m, ok := loc.Equipment[p.MachineID]
	if !ok {
		return nil, &domain.MachineNotFoundError{LocationID: p.LocationID, MachineID: p.MachineID}
	}
	basePrice := machinePrices[string(m.Kind)]
	salePrice := basePrice * (m.Condition / 100) * 0.5
	return []events.Envelope{
		newEvent(state, cmd, events.KindEquipmentSold, events.EquipmentSoldPayload{
			LocationID: p.LocationID, MachineID: p.MachineID, SalePrice: salePrice,
		}),
	}, nil
}

func performMaintenance(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.PerformMaintenancePayload](cmd)
	if err != nil {
		return nil, err
	}
	loc, ok := state.Locations[p.LocationID]
	if !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	m, ok := loc.Equipment[p.MachineID]
	if !ok {
		return nil, &domain.MachineNotFoundError{LocationID: p.LocationID, MachineID: p.MachineID}
	}
	spec, ok := maintenanceTable[p.MaintenanceType]
	if !ok {
		return nil, &domain.InvalidStateError{Reason: "unknown maintenance type " + p.MaintenanceType}
	}
	if spec.Cost > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: spec.Cost, Available: state.CashBalance}
	}

	newCondition := m.Condition + spec.ConditionGain
	if p.MaintenanceType == "OVERHAUL" {
		newCondition = 100
	}
	if newCondition > 100 {
		newCondition = 100
	}

	return []events.Envelope{
		newEvent(state, cmd, events.KindEquipmentRepaired, events.EquipmentRepairedPayload{
			LocationID: p.LocationID, MachineID: p.MachineID, MaintenanceType: p.MaintenanceType,
			MaintenanceCost: spec.Cost, NewCondition: newCondition,
		}),
	}, nil
}

func fixMachine(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.FixMachinePayload](cmd)
	if err != nil {
		return nil, err
	}
	loc, ok := state.Locations[p.LocationID]
	if !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	m, ok := loc.Equipment[p.MachineID]
	if !ok {
		return nil, &domain.MachineNotFoundError{LocationID: p.LocationID, MachineID: p.MachineID}
	}
	if m.Status != domain.MachineBroken {
		return nil, &domain.InvalidStateError{Reason: "machine is not broken down"}
	}
	if fixMachineCost > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: fixMachineCost, Available: state.CashBalance}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindMachineStatusChanged, events.MachineStatusChangedPayload{
			LocationID: p.LocationID, MachineID: p.MachineID, NewStatus: string(domain.MachineOperational), Reason: "emergency repair",
		}),
		newEvent(state, cmd, events.KindFundsTransferred, events.FundsTransferredPayload{
			Amount: fixMachineCost, TransactionKind: events.TxExpense, Description: "fix machine " + p.MachineID,
		}),
	}, nil
}

func acquireSupplies(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.AcquireSuppliesPayload](cmd)
	if err != nil {
		return nil, err
	}
	loc, ok := state.Locations[p.LocationID]
	if !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	unit, ok := supplyUnitCost[p.SupplyType]
	if !ok {
		return nil, &domain.InvalidStateError{Reason: "unknown supply type " + p.SupplyType}
	}
	if p.Quantity <= 0 {
		return nil, &domain.InvalidStateError{Reason: "quantity must be positive"}
	}
	cost := unit * float64(p.Quantity)
	if cost > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: cost, Available: state.CashBalance}
	}
	evs := []events.Envelope{
		newEvent(state, cmd, events.KindSuppliesAcquired, events.SuppliesAcquiredPayload{
			LocationID: p.LocationID, SupplyType: p.SupplyType, Quantity: p.Quantity, Cost: cost,
		}),
	}
	wasOut := (p.SupplyType == "DETERGENT" && loc.InventoryDetergent <= 0) ||
		(p.SupplyType == "SOFTENER" && loc.InventorySoftener <= 0)
	if wasOut {
		evs = append(evs, newEvent(state, cmd, events.KindStockoutEnded, events.StockoutEndedPayload{
			LocationID: p.LocationID, SupplyType: p.SupplyType,
		}))
	}
	return evs, nil
}

func openNewLocation(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.OpenNewLocationPayload](cmd)
	if err != nil {
		return nil, err
	}
	if p.InitialInvestment <= 0 {
		return nil, &domain.InvalidStateError{Reason: "initial investment must be positive"}
	}
	if p.InitialInvestment > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: p.InitialInvestment, Available: state.CashBalance}
	}
	locationID := idgen.NewEventID()
	monthlyRent := p.InitialInvestment * 0.02
	return []events.Envelope{
		newEvent(state, cmd, events.KindNewLocationOpened, events.NewLocationOpenedPayload{
			LocationID: locationID, Zone: p.Zone, MonthlyRent: monthlyRent, InitialInvestment: p.InitialInvestment,
		}),
	}, nil
}

func closeLocation(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.CloseLocationPayload](cmd)
	if err != nil {
		return nil, err
	}
	if _, ok := state.Locations[p.LocationID]; !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindLocationClosed, events.LocationClosedPayload{
			LocationID: p.LocationID, Reason: p.Reason,
		}),
	}, nil
}

// RegisterOperational binds the equipment, supplies, and location handlers.
func RegisterOperational(d *dispatch.CommandDispatcher) {
	d.Register(commands.KindPurchaseEquipment, purchaseEquipment)
	d.Register(commands.KindSellEquipment, sellEquipment)
	d.Register(commands.KindPerformMaintenance, performMaintenance)
	d.Register(commands.KindFixMachine, fixMachine)
	d.Register(commands.KindAcquireSupplies, acquireSupplies)
	d.Register(commands.KindOpenNewLocation, openNewLocation)
	d.Register(commands.KindCloseLocation, closeLocation)
}
