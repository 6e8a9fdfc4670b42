package ticker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func newLocation(id string) *domain.LocationState {
	return &domain.LocationState{
		ID:          id,
		Zone:        "DOWNTOWN",
		Cleanliness: 100,
		MonthlyRent: 2000,
		ActivePricing: map[string]float64{
			"StandardWash": 4.00,
		},
		Equipment: map[string]*domain.MachineState{
			"m1": {ID: "m1", Kind: domain.MachineStandardWasher, Status: domain.MachineOperational, Condition: 100},
			"m2": {ID: "m2", Kind: domain.MachineStandardWasher, Status: domain.MachineOperational, Condition: 100},
		},
		VendorRelationships: map[string]*domain.VendorRelationship{},
		ObservedCompetitorPrices: map[string]float64{},
		Staff:                    map[string]*domain.StaffMember{},
	}
}

func TestAdvance_DailyEventsIncludeFundsTransferred(t *testing.T) {
	st := domain.NewAgentState("A")
	st.Locations["loc1"] = newLocation("loc1")

	out := Advance(st, 1)

	require.NotEmpty(t, out)
	var sawRevenue, sawDaily, sawTimeAdvanced bool
	for _, e := range out {
		switch e.Kind {
		case events.KindDailyRevenueProcessed:
			sawDaily = true
		case events.KindFundsTransferred:
			p := e.Payload.(events.FundsTransferredPayload)
			if p.TransactionKind == events.TxRevenue {
				sawRevenue = true
			}
		case events.KindTimeAdvanced:
			sawTimeAdvanced = true
			p := e.Payload.(events.TimeAdvancedPayload)
			require.Equal(t, 0, p.NewWeek)
			require.Equal(t, 1, p.NewDay)
		}
	}
	require.True(t, sawDaily, "expected a DailyRevenueProcessed event")
	require.True(t, sawRevenue, "expected a revenue FundsTransferred event")
	require.True(t, sawTimeAdvanced, "expected a TimeAdvanced event")
}

func TestAdvance_SevenDaysRollsWeekAndBillsFixedCosts(t *testing.T) {
	st := domain.NewAgentState("A")
	st.Locations["loc1"] = newLocation("loc1")

	out := Advance(st, 7)

	timeAdvanced := 0
	weeklyBilled := 0
	var lastWeek, lastDay int
	for _, e := range out {
		switch e.Kind {
		case events.KindTimeAdvanced:
			timeAdvanced++
			p := e.Payload.(events.TimeAdvancedPayload)
			lastWeek, lastDay = p.NewWeek, p.NewDay
		case events.KindWeeklyFixedCostsBilled:
			weeklyBilled++
		}
	}
	require.Equal(t, 7, timeAdvanced)
	require.Equal(t, 1, weeklyBilled)
	require.Equal(t, 1, lastWeek)
	require.Equal(t, 0, lastDay)
}

func TestAdvance_NoOperationalMachinesProducesNoRevenue(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := newLocation("loc1")
	for _, m := range loc.Equipment {
		m.Status = domain.MachineBroken
	}
	st.Locations["loc1"] = loc

	out := Advance(st, 1)

	for _, e := range out {
		require.NotEqual(t, events.KindDailyRevenueProcessed, e.Kind)
	}
}

func TestAdvance_WeeklyWagesOnlyBilledWhenStaffed(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := newLocation("loc1")
	loc.Staff["s1"] = &domain.StaffMember{ID: "s1", HourlyRate: 15, TenureWeeks: 0}
	st.Locations["loc1"] = loc

	out := Advance(st, 7)

	wagesBilled := 0
	var wagesTransfer float64
	for _, e := range out {
		if e.Kind == events.KindWeeklyWagesBilled {
			wagesBilled++
			p := e.Payload.(events.WeeklyWagesBilledPayload)
			require.Equal(t, 15.0*40, p.TotalWages)
		}
		if e.Kind == events.KindFundsTransferred {
			p := e.Payload.(events.FundsTransferredPayload)
			if p.Description == "weekly wages loc1" {
				wagesTransfer = p.Amount
			}
		}
	}
	require.Equal(t, 1, wagesBilled)
	require.Equal(t, 600.0, wagesTransfer)
}

func TestAdvance_InterestAndTaxOnlyFireOnMonthBoundaryWeeks(t *testing.T) {
	st := domain.NewAgentState("A")
	st.Locations["loc1"] = newLocation("loc1")
	st.Loans["l1"] = &domain.LoanRecord{ID: "l1", Outstanding: 1000, InterestRate: 0.1}

	out := Advance(st, daysPerWeek*3)

	for _, e := range out {
		require.NotEqual(t, events.KindInterestAccrued, e.Kind, "week 1-3 are not month boundaries")
		require.NotEqual(t, events.KindTaxLiabilityCalculated, e.Kind, "week 1-3 are not month boundaries")
	}
}

func TestAdvance_InterestAndTaxFireOnTheFourthWeekBoundary(t *testing.T) {
	st := domain.NewAgentState("A")
	st.Locations["loc1"] = newLocation("loc1")
	st.Loans["l1"] = &domain.LoanRecord{ID: "l1", Outstanding: 1000, InterestRate: 0.1}

	out := Advance(st, daysPerWeek*weeksPerMonth)

	var sawInterest, sawTax int
	for _, e := range out {
		switch e.Kind {
		case events.KindInterestAccrued:
			sawInterest++
			p := e.Payload.(events.InterestAccruedPayload)
			require.Equal(t, "l1", p.LoanID)
			require.InDelta(t, 1000.0*0.1/52, p.InterestAmount, 1e-9)
		case events.KindTaxLiabilityCalculated:
			sawTax++
		}
	}
	require.Equal(t, 1, sawInterest, "interest should accrue exactly once, at the week-4 boundary")
	require.Equal(t, 1, sawTax, "tax should be calculated exactly once, at the week-4 boundary")
}

func TestMonthlyTaxLiability_IgnoresLocationsRunningAtALoss(t *testing.T) {
	st := domain.NewAgentState("A")
	profitable := newLocation("loc1")
	profitable.AccumulatedRevenueWeek = 1000
	profitable.AccumulatedCOGSWeek = 400
	losing := newLocation("loc2")
	losing.AccumulatedRevenueWeek = 100
	losing.AccumulatedCOGSWeek = 500
	st.Locations["loc1"] = profitable
	st.Locations["loc2"] = losing

	got := monthlyTaxLiability(st)
	require.InDelta(t, 600.0*taxRate, got, 1e-9)
}
