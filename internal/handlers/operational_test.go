package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func newTestState() *domain.AgentState {
	st := domain.NewAgentState("A")
	st.CashBalance = 10000
	st.Locations["loc1"] = domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	return st
}

func TestPurchaseEquipment_EmitsOneEventPerUnitPlusOneTransfer(t *testing.T) {
	st := newTestState()

	evs, err := purchaseEquipment(st, cmd(commands.KindPurchaseEquipment, "A", commands.PurchaseEquipmentPayload{
		LocationID: "loc1", MachineKind: string(domain.MachineStandardWasher), VendorID: "DEFAULT_VENDOR", Quantity: 3,
	}))
	require.NoError(t, err)
	require.Len(t, evs, 4)
	for i := 0; i < 3; i++ {
		require.Equal(t, events.KindEquipmentPurchased, evs[i].Kind)
	}
	transfer := evs[3].Payload.(events.FundsTransferredPayload)
	require.Equal(t, events.TxExpense, transfer.TransactionKind)
	require.Equal(t, 6000.0, transfer.Amount) // 3 * 2000 per StandardWasher
}

func TestPurchaseEquipment_DefaultsQuantityToOne(t *testing.T) {
	st := newTestState()

	evs, err := purchaseEquipment(st, cmd(commands.KindPurchaseEquipment, "A", commands.PurchaseEquipmentPayload{
		LocationID: "loc1", MachineKind: string(domain.MachineStandardWasher),
	}))
	require.NoError(t, err)
	require.Len(t, evs, 2)
}

func TestPurchaseEquipment_RejectsWhenTotalExceedsCash(t *testing.T) {
	st := newTestState()
	st.CashBalance = 1000

	_, err := purchaseEquipment(st, cmd(commands.KindPurchaseEquipment, "A", commands.PurchaseEquipmentPayload{
		LocationID: "loc1", MachineKind: string(domain.MachineStandardWasher), Quantity: 1,
	}))
	require.Error(t, err)
	require.IsType(t, &domain.InsufficientFundsError{}, err)
}

func TestPurchaseEquipment_RejectsUnknownMachineKind(t *testing.T) {
	st := newTestState()

	_, err := purchaseEquipment(st, cmd(commands.KindPurchaseEquipment, "A", commands.PurchaseEquipmentPayload{
		LocationID: "loc1", MachineKind: "FlyingCarpetWasher",
	}))
	require.Error(t, err)
}

func TestFixMachine_OnlyFixesABrokenMachine(t *testing.T) {
	st := newTestState()
	st.Locations["loc1"].Equipment["m1"] = &domain.MachineState{ID: "m1", Status: domain.MachineOperational, Condition: 80}

	_, err := fixMachine(st, cmd(commands.KindFixMachine, "A", commands.FixMachinePayload{LocationID: "loc1", MachineID: "m1"}))
	require.Error(t, err)
}

func TestFixMachine_EmitsStatusChangeAndFlatFeeTransfer(t *testing.T) {
	st := newTestState()
	st.Locations["loc1"].Equipment["m1"] = &domain.MachineState{ID: "m1", Status: domain.MachineBroken, Condition: 0}

	evs, err := fixMachine(st, cmd(commands.KindFixMachine, "A", commands.FixMachinePayload{LocationID: "loc1", MachineID: "m1"}))
	require.NoError(t, err)
	require.Len(t, evs, 2)
	require.Equal(t, events.KindMachineStatusChanged, evs[0].Kind)

	transfer := evs[1].Payload.(events.FundsTransferredPayload)
	require.Equal(t, fixMachineCost, transfer.Amount)
	require.Equal(t, events.TxExpense, transfer.TransactionKind)
}

func TestOpenNewLocation_DerivesRentFromInvestment(t *testing.T) {
	st := newTestState()

	evs, err := openNewLocation(st, cmd(commands.KindOpenNewLocation, "A", commands.OpenNewLocationPayload{
		Zone: "UPTOWN", InitialInvestment: 1000,
	}))
	require.NoError(t, err)
	require.Len(t, evs, 1)

	p := evs[0].Payload.(events.NewLocationOpenedPayload)
	require.Equal(t, 20.0, p.MonthlyRent)
}

func TestAcquireSupplies_EmitsStockoutEndedOnlyWhenInventoryWasDepleted(t *testing.T) {
	st := newTestState()
	st.Locations["loc1"].InventoryDetergent = 0

	evs, err := acquireSupplies(st, cmd(commands.KindAcquireSupplies, "A", commands.AcquireSuppliesPayload{
		LocationID: "loc1", SupplyType: "DETERGENT", Quantity: 50,
	}))
	require.NoError(t, err)
	require.Len(t, evs, 2)
	require.Equal(t, events.KindSuppliesAcquired, evs[0].Kind)
	require.Equal(t, events.KindStockoutEnded, evs[1].Kind)
	p := evs[1].Payload.(events.StockoutEndedPayload)
	require.Equal(t, "DETERGENT", p.SupplyType)
}

func TestAcquireSupplies_NoStockoutEndedWhenInventoryWasNeverDepleted(t *testing.T) {
	st := newTestState()
	st.Locations["loc1"].InventoryDetergent = 40

	evs, err := acquireSupplies(st, cmd(commands.KindAcquireSupplies, "A", commands.AcquireSuppliesPayload{
		LocationID: "loc1", SupplyType: "DETERGENT", Quantity: 10,
	}))
	require.NoError(t, err)
	require.Len(t, evs, 1)
}

func TestPerformMaintenance_OverhaulAlwaysSetsConditionToFull(t *testing.T) {
	st := newTestState()
	st.Locations["loc1"].Equipment["m1"] = &domain.MachineState{ID: "m1", Status: domain.MachineOperational, Condition: 10}

	evs, err := performMaintenance(st, cmd(commands.KindPerformMaintenance, "A", commands.PerformMaintenancePayload{
		LocationID: "loc1", MachineID: "m1", MaintenanceType: "OVERHAUL",
	}))
	require.NoError(t, err)
	p := evs[0].Payload.(events.EquipmentRepairedPayload)
	require.Equal(t, 100.0, p.NewCondition)
}
