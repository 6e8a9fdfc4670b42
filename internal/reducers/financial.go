package reducers

import (
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

// creditsCash reports whether a transaction kind increases cash on hand;
// the remaining kinds decrease it. This is the one mechanical sign rule
// every FundsTransferred event obeys regardless of why it was issued.
func creditsCash(k events.TransactionKind) bool {
	switch k {
	case events.TxRevenue, events.TxLoan, events.TxRefund:
		return true
	default:
		return false
	}
}

func fundsTransferred(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.FundsTransferredPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if creditsCash(p.TransactionKind) {
		next.CashBalance += p.Amount
	} else {
		next.CashBalance -= p.Amount
	}
	return next, nil
}

func loanTaken(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.LoanTakenPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.Loans[p.LoanID] = &domain.LoanRecord{
		ID:           p.LoanID,
		Kind:         p.LoanKind,
		Principal:    p.Principal,
		Outstanding:  p.Principal,
		InterestRate: p.InterestRate,
		TermWeeks:    p.TermWeeks,
		TakenWeek:    state.CurrentWeek,
	}
	next.TotalDebtOwed += p.Principal
	if p.LoanKind == "LINE_OF_CREDIT" {
		next.LineOfCreditBalance += p.Principal
	}
	return next, nil
}

func debtPaymentProcessed(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.DebtPaymentProcessedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance -= p.AmountPaid
	next.TotalDebtOwed -= p.PrincipalReduction
	if loan, ok := next.Loans[p.LoanID]; ok {
		loan.Outstanding = p.RemainingBalance
		if loan.Kind == "LINE_OF_CREDIT" {
			next.LineOfCreditBalance = p.RemainingBalance
		}
		if p.RemainingBalance <= 0 {
			delete(next.Loans, p.LoanID)
		}
	}
	return next, nil
}

func marketingBoostApplied(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.MarketingBoostAppliedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CashBalance -= p.MarketingCost
	return next, nil
}

func interestAccrued(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.InterestAccruedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loan, ok := next.Loans[p.LoanID]; ok {
		loan.Outstanding += p.InterestAmount
		if loan.Kind == "LINE_OF_CREDIT" {
			next.LineOfCreditBalance = loan.Outstanding
		}
	}
	next.TotalDebtOwed += p.InterestAmount
	return next, nil
}

func taxLiabilityCalculated(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.TaxLiabilityCalculatedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.CurrentTaxLiability = p.TaxAmount
	return next, nil
}

func taxBracketAdjusted(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	// Bracket itself is not tracked on AgentState today; this reducer is a
	// clone-only placeholder kept registered for forward folds.
	return state.Clone(), nil
}

func defaultRecorded(state *domain.AgentState, env events.Envelope) (*domain.AgentState, error) {
	p, err := payload[events.DefaultRecordedPayload](env)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if loan, ok := next.Loans[p.LoanID]; ok {
		next.TotalDebtOwed -= loan.Outstanding
		if loan.Kind == "LINE_OF_CREDIT" {
			next.LineOfCreditBalance = 0
		}
		delete(next.Loans, p.LoanID)
	}
	next.TotalDebtOwed += p.AmountOwed + p.PenaltyAmount
	next.CreditRating -= 20
	if next.CreditRating < 0 {
		next.CreditRating = 0
	}
	next.CashBalance -= p.PenaltyAmount
	return next, nil
}

// RegisterFinancial binds the debt, cash-flow, and tax reducers.
func RegisterFinancial(d *dispatch.ProjectionDispatcher) {
	d.Register(events.KindFundsTransferred, fundsTransferred)
	d.Register(events.KindLoanTaken, loanTaken)
	d.Register(events.KindDebtPaymentProcessed, debtPaymentProcessed)
	d.Register(events.KindMarketingBoostApplied, marketingBoostApplied)
	d.Register(events.KindInterestAccrued, interestAccrued)
	d.Register(events.KindTaxLiabilityCalculated, taxLiabilityCalculated)
	d.Register(events.KindTaxBracketAdjusted, taxBracketAdjusted)
	d.Register(events.KindDefaultRecorded, defaultRecorded)
}
