// Package ticker advances simulated time. Advance is a pure function from
// a snapshot and a day count to the events that day's passage produces; it
// never mutates the snapshot it's given and never touches storage itself —
// the caller appends the returned events and re-folds.
package ticker

import (
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
	"github.com/laundroverse/simcore/internal/idgen"
)

const daysPerWeek = 7

// weeksPerMonth is the fixed calendar convention month-boundary billing
// (interest accrual, tax liability) is gated on: every 4th week.
const weeksPerMonth = 4

// taxRate is the flat rate applied, at each month boundary, to the net
// operating income held in the locations' weekly accumulators (revenue
// minus COGS since the last weekly reset, summed across locations) to
// produce the TaxLiabilityCalculated amount. Income from the month's
// earlier weeks is not included.
const taxRate = 0.21

// baseLoadsPerMachine is the daily load capacity of one fully operational,
// fully clean machine at price parity with the market; every multiplier in
// Advance's revenue formula scales away from this baseline.
const baseLoadsPerMachine = 18.0

const revenuePerLoad = 4.25
const utilityCostPerLoad = domain.UtilityCostPerLoad
const suppliesCostPerLoad = domain.SuppliesCostPerLoad

// Advance computes every event one agent's state should emit for the next
// `days` days of simulated time, starting from state.CurrentDay/CurrentWeek.
// Day runs 0-6 within a week; the 7th advance past a week boundary bills
// fixed costs, wages, and scandal decay (plus interest and tax when the
// next week starts a month), then rolls day back to 0 and increments week.
func Advance(state *domain.AgentState, days int) []events.Envelope {
	var out []events.Envelope
	week := state.CurrentWeek
	day := state.CurrentDay

	for i := 0; i < days; i++ {
		day++

		out = append(out, dailyEvents(state, week, day)...)

		if day == daysPerWeek {
			out = append(out, weeklyEvents(state, week)...)
			day = 0
			week++
		}

		out = append(out, events.Envelope{
			EventID: idgen.NewEventID(), Kind: events.KindTimeAdvanced, AgentID: state.AgentID,
			Week: week, Day: day, Payload: events.TimeAdvancedPayload{NewWeek: week, NewDay: day},
		})
	}
	return out
}

func dailyEvents(state *domain.AgentState, week, day int) []events.Envelope {
	var out []events.Envelope
	for locID, loc := range state.Locations {
		operational := 0
		for _, m := range loc.Equipment {
			if m.Status == domain.MachineOperational {
				operational++
			}
		}
		if operational == 0 {
			continue
		}

		cleanlinessFactor := loc.Cleanliness / 100
		loyaltyMultiplier := 1 + float64(state.CustomerLoyaltyMembers)/1000
		scandalDrag := 1 - 0.5*totalScandalSeverity(state)
		priceCompetitiveness := priceCompetitivenessFactor(loc)

		baseLoads := float64(operational) * baseLoadsPerMachine * cleanlinessFactor
		loads := baseLoads * loyaltyMultiplier * scandalDrag * priceCompetitiveness
		if loads < 0 {
			loads = 0
		}
		loadsInt := int(loads)

		revenue := float64(loadsInt) * revenuePerLoad
		utility := float64(loadsInt) * utilityCostPerLoad
		supplies := float64(loadsInt) * suppliesCostPerLoad

		out = append(out, events.Envelope{
			EventID: idgen.NewEventID(), Kind: events.KindDailyRevenueProcessed, AgentID: state.AgentID,
			Week: week, Day: day, Payload: events.DailyRevenueProcessedPayload{
				LocationID: locID, LoadsProcessed: loadsInt, RevenueGenerated: revenue,
				UtilityCost: utility, SuppliesCost: supplies,
			},
		})

		if loc.InventoryDetergent > 0 && loc.InventoryDetergent-loadsInt <= 0 {
			out = append(out, events.Envelope{
				EventID: idgen.NewEventID(), Kind: events.KindStockoutStarted, AgentID: state.AgentID,
				Week: week, Day: day, Payload: events.StockoutStartedPayload{LocationID: locID, SupplyType: "DETERGENT"},
			})
		}
		if loc.InventorySoftener > 0 && loc.InventorySoftener-loadsInt/2 <= 0 {
			out = append(out, events.Envelope{
				EventID: idgen.NewEventID(), Kind: events.KindStockoutStarted, AgentID: state.AgentID,
				Week: week, Day: day, Payload: events.StockoutStartedPayload{LocationID: locID, SupplyType: "SOFTENER"},
			})
		}
		out = append(out, events.Envelope{
			EventID: idgen.NewEventID(), Kind: events.KindFundsTransferred, AgentID: state.AgentID,
			Week: week, Day: day, Payload: events.FundsTransferredPayload{
				Amount: revenue - utility - supplies, TransactionKind: events.TxRevenue,
				Description: "daily revenue " + locID,
			},
		})

		for _, m := range loc.Equipment {
			if m.Status != domain.MachineOperational {
				continue
			}
			wear := 0.3 + float64(loadsInt)/float64(maxInt(operational, 1))*0.02
			newCondition := m.Condition - wear
			if newCondition < 0 {
				newCondition = 0
			}
			out = append(out, events.Envelope{
				EventID: idgen.NewEventID(), Kind: events.KindMachineWearUpdated, AgentID: state.AgentID,
				Week: week, Day: day, Payload: events.MachineWearUpdatedPayload{
					LocationID: locID, MachineID: m.ID, NewCondition: newCondition,
					LoadsProcessedSinceService: m.LoadsProcessedSinceService + loadsInt/maxInt(operational, 1),
				},
			})
			if newCondition <= 0 {
				out = append(out, events.Envelope{
					EventID: idgen.NewEventID(), Kind: events.KindMachineBrokenDown, AgentID: state.AgentID,
					Week: week, Day: day, Payload: events.MachineBrokenDownPayload{LocationID: locID, MachineID: m.ID},
				})
			}
		}
	}
	return out
}

func weeklyEvents(state *domain.AgentState, week int) []events.Envelope {
	var out []events.Envelope

	for locID, loc := range state.Locations {
		insurance := loc.MonthlyRent * 0.05
		other := loc.MonthlyRent * 0.02
		rent := loc.MonthlyRent / 4
		out = append(out, events.Envelope{
			EventID: idgen.NewEventID(), Kind: events.KindWeeklyFixedCostsBilled, AgentID: state.AgentID,
			Week: week, Payload: events.WeeklyFixedCostsBilledPayload{
				LocationID: locID, RentCost: rent, InsuranceCost: insurance, OtherFixedCosts: other,
			},
		})
		out = append(out, events.Envelope{
			EventID: idgen.NewEventID(), Kind: events.KindFundsTransferred, AgentID: state.AgentID,
			Week: week, Payload: events.FundsTransferredPayload{
				Amount: rent + insurance + other, TransactionKind: events.TxExpense,
				Description: "weekly fixed costs " + locID,
			},
		})

		var totalWages float64
		for _, s := range loc.Staff {
			totalWages += s.HourlyRate * 40
		}
		if totalWages > 0 {
			out = append(out, events.Envelope{
				EventID: idgen.NewEventID(), Kind: events.KindWeeklyWagesBilled, AgentID: state.AgentID,
				Week: week, Payload: events.WeeklyWagesBilledPayload{
					LocationID: locID, TotalWages: totalWages, StaffCount: len(loc.Staff),
				},
			})
			out = append(out, events.Envelope{
				EventID: idgen.NewEventID(), Kind: events.KindFundsTransferred, AgentID: state.AgentID,
				Week: week, Payload: events.FundsTransferredPayload{
					Amount: totalWages, TransactionKind: events.TxExpense,
					Description: "weekly wages " + locID,
				},
			})
		}
	}

	// week is the week just closed; a month boundary is crossed when the
	// week about to start is a multiple of weeksPerMonth.
	if (week+1)%weeksPerMonth == 0 {
		for loanID, loan := range state.Loans {
			interest := loan.Outstanding * loan.InterestRate / 52
			if interest <= 0 {
				continue
			}
			out = append(out, events.Envelope{
				EventID: idgen.NewEventID(), Kind: events.KindInterestAccrued, AgentID: state.AgentID,
				Week: week, Payload: events.InterestAccruedPayload{LoanID: loanID, InterestAmount: interest},
			})
		}

		out = append(out, events.Envelope{
			EventID: idgen.NewEventID(), Kind: events.KindTaxLiabilityCalculated, AgentID: state.AgentID,
			Week: week, Payload: events.TaxLiabilityCalculatedPayload{TaxAmount: monthlyTaxLiability(state)},
		})
	}

	for _, sc := range state.ActiveScandals {
		remaining := sc.DurationWeeks - 1
		out = append(out, events.Envelope{
			EventID: idgen.NewEventID(), Kind: events.KindScandalMarkerDecayed, AgentID: state.AgentID,
			Week: week, Payload: events.ScandalMarkerDecayedPayload{ScandalID: sc.ID, RemainingWeeks: maxInt(remaining, 0)},
		})
	}

	for _, v := range state.ActiveAlliances {
		_ = v // alliance duration decay is tracked via StartWeek+DurationWeeks comparisons by callers, not mutated here.
	}

	return out
}

// monthlyTaxLiability taxes net operating income (revenue minus COGS)
// accumulated since the last weekly reset, across all locations; a
// location running at a loss contributes nothing.
func monthlyTaxLiability(state *domain.AgentState) float64 {
	var netIncome float64
	for _, loc := range state.Locations {
		if net := loc.AccumulatedRevenueWeek - loc.AccumulatedCOGSWeek; net > 0 {
			netIncome += net
		}
	}
	return netIncome * taxRate
}

func totalScandalSeverity(state *domain.AgentState) float64 {
	var total float64
	for _, sc := range state.ActiveScandals {
		total += sc.Severity
	}
	return domain.ClampUnit(total)
}

// priceCompetitivenessFactor compares the location's average active price
// against its observed competitor prices for the same service; pricing
// above the market dampens demand, pricing below boosts it, symmetric
// around 1.0.
func priceCompetitivenessFactor(loc *domain.LocationState) float64 {
	if len(loc.ObservedCompetitorPrices) == 0 {
		return 1.0
	}
	var ratioSum float64
	var n int
	for service, competitorPrice := range loc.ObservedCompetitorPrices {
		ownPrice, ok := loc.ActivePricing[service]
		if !ok || competitorPrice <= 0 {
			continue
		}
		ratioSum += competitorPrice / ownPrice
		n++
	}
	if n == 0 {
		return 1.0
	}
	factor := ratioSum / float64(n)
	if factor < 0.5 {
		factor = 0.5
	}
	if factor > 1.5 {
		factor = 1.5
	}
	return factor
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
