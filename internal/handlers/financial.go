// Package handlers implements the command handlers registered with the
// engine's CommandDispatcher: pure (state, command) -> events | error
// functions. A handler never mutates state directly; it only validates
// against the snapshot it's given and returns the events a reducer will
// later fold.
package handlers

import (
	"fmt"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
	"github.com/laundroverse/simcore/internal/idgen"
)

// LoanTerms is the fixed interest rate, term length, and minimum credit
// rating for one loan kind.
type LoanTerms struct {
	AnnualRate float64
	TermWeeks  int // 0 means revolving, no fixed term
	MinRating  int
}

// loanTermsTable carries the explicit per-kind numbers a laundromat lender
// quotes: line-of-credit is revolving, with no fixed term; equipment loans
// carry the lowest rate; emergency loans charge the highest rate for the shortest
// term and accept the weakest credit because they exist precisely for
// agents already in trouble; expansion loans ask for the strongest credit
// because they're the largest, longest-lived exposure.
var loanTermsTable = map[string]LoanTerms{
	"LINE_OF_CREDIT": {AnnualRate: 0.08, TermWeeks: 0, MinRating: 20},
	"EQUIPMENT":      {AnnualRate: 0.06, TermWeeks: 24, MinRating: 40},
	"EXPANSION":      {AnnualRate: 0.07, TermWeeks: 52, MinRating: 60},
	"EMERGENCY":      {AnnualRate: 0.12, TermWeeks: 8, MinRating: 10},
}

func takeLoan(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.TakeLoanPayload](cmd)
	if err != nil {
		return nil, err
	}
	terms, ok := loanTermsTable[p.LoanKind]
	if !ok {
		return nil, &domain.InvalidStateError{Reason: fmt.Sprintf("unknown loan kind %q", p.LoanKind)}
	}
	if p.Amount <= 0 {
		return nil, &domain.InvalidStateError{Reason: "loan amount must be positive"}
	}
	if state.CreditRating < terms.MinRating {
		return nil, &domain.CreditError{Reason: fmt.Sprintf("credit rating %d below floor %d for %s", state.CreditRating, terms.MinRating, p.LoanKind)}
	}
	if p.LoanKind == "LINE_OF_CREDIT" && state.LineOfCreditBalance+p.Amount > state.LineOfCreditLimit {
		return nil, &domain.CreditError{Reason: "requested draw exceeds line of credit limit"}
	}

	loanID := idgen.NewEventID()
	return []events.Envelope{
		newEvent(state, cmd, events.KindLoanTaken, events.LoanTakenPayload{
			LoanID: loanID, LoanKind: p.LoanKind, Principal: p.Amount,
			InterestRate: terms.AnnualRate, TermWeeks: terms.TermWeeks,
		}),
		newEvent(state, cmd, events.KindFundsTransferred, events.FundsTransferredPayload{
			Amount: p.Amount, TransactionKind: events.TxLoan, Description: "loan disbursement " + loanID,
		}),
	}, nil
}

func makeDebtPayment(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.MakeDebtPaymentPayload](cmd)
	if err != nil {
		return nil, err
	}
	loan, ok := state.Loans[p.LoanID]
	if !ok {
		return nil, &domain.InvalidStateError{Reason: "unknown loan id " + p.LoanID}
	}
	if p.Amount <= 0 {
		return nil, &domain.InvalidStateError{Reason: "payment amount must be positive"}
	}
	if p.Amount > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: p.Amount, Available: state.CashBalance}
	}

	weeklyRate := loan.InterestRate / 52
	interestDue := loan.Outstanding * weeklyRate
	interestPaid := interestDue
	if interestPaid > p.Amount {
		interestPaid = p.Amount
	}
	principalReduction := p.Amount - interestPaid
	remaining := loan.Outstanding - principalReduction
	if remaining < 0 {
		principalReduction = loan.Outstanding
		remaining = 0
	}

	return []events.Envelope{
		newEvent(state, cmd, events.KindDebtPaymentProcessed, events.DebtPaymentProcessedPayload{
			LoanID: p.LoanID, AmountPaid: p.Amount, PrincipalReduction: principalReduction,
			InterestPaid: interestPaid, RemainingBalance: remaining,
		}),
	}, nil
}

// marketingBoost is the deterministic (budget -> boost) map for each
// campaign type: a flat base attraction boost plus a term linear in the
// whole budget, and a fixed duration in weeks per campaign type.
func marketingBoost(campaignType string, budget float64) (boost float64, weeks int) {
	switch campaignType {
	case "FLYER":
		return 0.02 + budget/5000, 1
	case "DIGITAL_AD":
		return 0.05 + budget/3000, 2
	case "LOYALTY_PUSH":
		return 0.08 + budget/2000, 4
	default:
		return 0.01 + budget/10000, 1
	}
}

func runMarketingCampaign(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.RunMarketingCampaignPayload](cmd)
	if err != nil {
		return nil, err
	}
	if _, ok := state.Locations[p.LocationID]; !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	if p.Budget <= 0 {
		return nil, &domain.InvalidStateError{Reason: "campaign budget must be positive"}
	}
	if p.Budget > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: p.Budget, Available: state.CashBalance}
	}

	boost, weeks := marketingBoost(p.CampaignType, p.Budget)
	return []events.Envelope{
		newEvent(state, cmd, events.KindMarketingBoostApplied, events.MarketingBoostAppliedPayload{
			LocationID: p.LocationID, CampaignType: p.CampaignType, MarketingCost: p.Budget,
			CustomerAttractionBoost: boost, DurationWeeks: weeks,
		}),
	}, nil
}

func setPrice(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.SetPricePayload](cmd)
	if err != nil {
		return nil, err
	}
	if _, ok := state.Locations[p.LocationID]; !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	if p.NewPrice <= 0 {
		return nil, &domain.InvalidStateError{Reason: "price must be positive"}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindPriceSet, events.PriceSetPayload{
			LocationID: p.LocationID, ServiceName: p.ServiceName, NewPrice: p.NewPrice,
		}),
	}, nil
}

// RegisterFinancial binds the loan, payment, pricing, and marketing handlers.
func RegisterFinancial(d *dispatch.CommandDispatcher) {
	d.Register(commands.KindTakeLoan, takeLoan)
	d.Register(commands.KindMakeDebtPayment, makeDebtPayment)
	d.Register(commands.KindRunMarketingCampaign, runMarketingCampaign)
	d.Register(commands.KindSetPrice, setPrice)
}
