package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/eventlog"
	"github.com/laundroverse/simcore/internal/events"
	"github.com/laundroverse/simcore/internal/idgen"
)

func countKind(evs []events.Envelope, kind events.Kind) int {
	n := 0
	for _, e := range evs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func openLocation(t *testing.T, ctx context.Context, eng *Engine, agentID string, investment float64) string {
	t.Helper()
	produced, _, err := eng.ExecuteCommand(ctx, commands.Command{
		CommandID: idgen.NewCommandID(), Kind: commands.KindOpenNewLocation, AgentID: agentID,
		Payload: commands.OpenNewLocationPayload{Zone: "DOWNTOWN", InitialInvestment: investment},
	})
	require.NoError(t, err)
	require.Len(t, produced, 1)
	p := produced[0].Payload.(events.NewLocationOpenedPayload)
	return p.LocationID
}

// TestSeedScenarios walks the six literal end-to-end scenarios in order,
// each building on the state the previous one left behind, finishing with
// a full-log refold check against the live snapshot.
func TestSeedScenarios(t *testing.T) {
	ctx := context.Background()
	log := eventlog.NewMemoryLog()
	eng := New(log)
	const agentID = "A"

	_, err := eng.CreateAgent(ctx, agentID, 10000)
	require.NoError(t, err)

	locID := openLocation(t, ctx, eng, agentID, 500)
	st, err := eng.GetCurrentState(ctx, agentID)
	require.NoError(t, err)
	require.Equal(t, 9500.0, st.CashBalance) // 10000 initial cash - 500 opening investment

	t.Run("1_set_price", func(t *testing.T) {
		produced, next, err := eng.ExecuteCommand(ctx, commands.Command{
			CommandID: idgen.NewCommandID(), Kind: commands.KindSetPrice, AgentID: agentID,
			Payload: commands.SetPricePayload{LocationID: locID, ServiceName: "StandardWash", NewPrice: 3.75},
		})
		require.NoError(t, err)
		require.Len(t, produced, 1)
		require.Equal(t, events.KindPriceSet, produced[0].Kind)
		require.Equal(t, 3.75, next.Locations[locID].ActivePricing["StandardWash"])
	})

	t.Run("2_take_loan", func(t *testing.T) {
		before, err := eng.GetCurrentState(ctx, agentID)
		require.NoError(t, err)
		cashBefore := before.CashBalance
		debtBefore := before.TotalDebtOwed

		produced, next, err := eng.ExecuteCommand(ctx, commands.Command{
			CommandID: idgen.NewCommandID(), Kind: commands.KindTakeLoan, AgentID: agentID,
			Payload: commands.TakeLoanPayload{LoanKind: "LINE_OF_CREDIT", Amount: 3000},
		})
		require.NoError(t, err)
		require.Len(t, produced, 2)
		require.Equal(t, events.KindLoanTaken, produced[0].Kind)
		require.Equal(t, events.KindFundsTransferred, produced[1].Kind)
		require.Equal(t, events.TxLoan, produced[1].Payload.(events.FundsTransferredPayload).TransactionKind)

		require.Equal(t, cashBefore+3000, next.CashBalance)
		require.Equal(t, debtBefore+3000, next.TotalDebtOwed)
	})

	t.Run("3_advance_time_seven_days", func(t *testing.T) {
		_, _, err := eng.ExecuteCommand(ctx, commands.Command{
			CommandID: idgen.NewCommandID(), Kind: commands.KindPurchaseEquipment, AgentID: agentID,
			Payload: commands.PurchaseEquipmentPayload{LocationID: locID, MachineKind: string(domain.MachineStandardWasher), Quantity: 1},
		})
		require.NoError(t, err)

		beforeLen := len(mustHistory(t, ctx, eng, agentID))
		st, err := eng.AdvanceTime(ctx, agentID, 7)
		require.NoError(t, err)
		require.Equal(t, 1, st.CurrentWeek)
		require.Equal(t, 0, st.CurrentDay)

		window := mustHistory(t, ctx, eng, agentID)[beforeLen:]
		require.Equal(t, 7, countKind(window, events.KindTimeAdvanced))
		require.Equal(t, 7, countKind(window, events.KindDailyRevenueProcessed))
		require.Equal(t, 7, countKind(window, events.KindMachineWearUpdated))
		require.Equal(t, 1, countKind(window, events.KindWeeklyFixedCostsBilled))

		revenueTransfers := 0
		expenseTransfers := 0
		for _, e := range window {
			if e.Kind != events.KindFundsTransferred {
				continue
			}
			switch e.Payload.(events.FundsTransferredPayload).TransactionKind {
			case events.TxRevenue:
				revenueTransfers++
			case events.TxExpense:
				expenseTransfers++
			}
		}
		require.Equal(t, 7, revenueTransfers)
		require.Equal(t, 1, expenseTransfers) // weekly fixed costs; no staff hired, so no wages transfer
	})

	t.Run("4_buy_equipment", func(t *testing.T) {
		before, err := eng.GetCurrentState(ctx, agentID)
		require.NoError(t, err)
		cashBefore := before.CashBalance

		produced, next, err := eng.ExecuteCommand(ctx, commands.Command{
			CommandID: idgen.NewCommandID(), Kind: commands.KindPurchaseEquipment, AgentID: agentID,
			Payload: commands.PurchaseEquipmentPayload{
				LocationID: locID, MachineKind: string(domain.MachineStandardWasher),
				VendorID: "DEFAULT_VENDOR", Quantity: 2,
			},
		})
		require.NoError(t, err)
		require.Len(t, produced, 3)
		require.Equal(t, 2, countKind(produced, events.KindEquipmentPurchased))
		require.Equal(t, 1, countKind(produced, events.KindFundsTransferred))
		transfer := produced[2].Payload.(events.FundsTransferredPayload)
		require.Equal(t, events.TxExpense, transfer.TransactionKind)
		require.Equal(t, 4000.0, transfer.Amount)
		require.Equal(t, cashBefore-4000, next.CashBalance)

		newMachines := 0
		for _, m := range next.Locations[locID].Equipment {
			if m.Condition == 100 {
				newMachines++
			}
		}
		require.GreaterOrEqual(t, newMachines, 2)
	})

	t.Run("5_predatory_pricing_triggers_regulator", func(t *testing.T) {
		_, _, err := eng.ExecuteCommand(ctx, commands.Command{
			CommandID: idgen.NewCommandID(), Kind: commands.KindSetPrice, AgentID: agentID,
			Payload: commands.SetPricePayload{LocationID: locID, ServiceName: "StandardWash", NewPrice: 3.00},
		})
		require.NoError(t, err)

		beforeLen := len(mustHistory(t, ctx, eng, agentID))
		_, next, err := eng.ExecuteCommand(ctx, commands.Command{
			CommandID: idgen.NewCommandID(), Kind: commands.KindSetPrice, AgentID: agentID,
			Payload: commands.SetPricePayload{LocationID: locID, ServiceName: "StandardWash", NewPrice: 0.10},
		})
		require.NoError(t, err)

		// The regulator must react to the triggering PriceSet before the next
		// command is accepted, not only at the next tick boundary: no
		// AdvanceTime call here.
		window := mustHistory(t, ctx, eng, agentID)[beforeLen:]
		require.Equal(t, 1, countKind(window, events.KindRegulatoryFinding))
		require.Equal(t, 1, countKind(window, events.KindRegulatoryStatusUpdated))
		require.Len(t, next.PendingFines, 1)
		require.Equal(t, domain.RegulatoryWarning, next.RegulatoryStatus)
	})

	t.Run("6_full_refold_matches_live_state", func(t *testing.T) {
		live, err := eng.GetCurrentState(ctx, agentID)
		require.NoError(t, err)

		stream, err := log.LoadAll(ctx, agentID)
		require.NoError(t, err)

		refolded, err := eng.builder.Fold(agentID, stream)
		require.NoError(t, err)

		require.Equal(t, live, refolded)
	})
}

func mustHistory(t *testing.T, ctx context.Context, eng *Engine, agentID string) []events.Envelope {
	t.Helper()
	h, err := eng.GetHistory(ctx, agentID)
	require.NoError(t, err)
	return h
}
