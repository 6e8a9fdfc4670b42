package reducers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func envelope(kind events.Kind, payload any) events.Envelope {
	return events.Envelope{EventID: "e1", Kind: kind, AgentID: "A", Payload: payload}
}

func TestFundsTransferred_CreditsAndDebitsBySign(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CashBalance = 1000

	next, err := fundsTransferred(st, envelope(events.KindFundsTransferred, events.FundsTransferredPayload{
		Amount: 200, TransactionKind: events.TxRevenue,
	}))
	require.NoError(t, err)
	require.Equal(t, 1200.0, next.CashBalance)

	next2, err := fundsTransferred(next, envelope(events.KindFundsTransferred, events.FundsTransferredPayload{
		Amount: 300, TransactionKind: events.TxExpense,
	}))
	require.NoError(t, err)
	require.Equal(t, 900.0, next2.CashBalance)

	require.Equal(t, 1000.0, st.CashBalance, "reducer must not mutate the state it was given")
}

func TestCreditsCash_ClassifiesEveryKnownTransactionKind(t *testing.T) {
	require.True(t, creditsCash(events.TxRevenue))
	require.True(t, creditsCash(events.TxLoan))
	require.True(t, creditsCash(events.TxRefund))
	require.False(t, creditsCash(events.TxExpense))
}

func TestLoanTaken_RecordsDebtAndLineOfCredit(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CurrentWeek = 3

	next, err := loanTaken(st, envelope(events.KindLoanTaken, events.LoanTakenPayload{
		LoanID: "L1", LoanKind: "LINE_OF_CREDIT", Principal: 3000, InterestRate: 0.12, TermWeeks: 0,
	}))
	require.NoError(t, err)

	require.Equal(t, 3000.0, next.TotalDebtOwed)
	require.Equal(t, 3000.0, next.LineOfCreditBalance)
	require.Contains(t, next.Loans, "L1")
	require.Equal(t, 3, next.Loans["L1"].TakenWeek)
	require.Equal(t, 3000.0, next.Loans["L1"].Outstanding)
}

func TestDebtPaymentProcessed_ClearsLoanWhenPaidOff(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CashBalance = 5000
	st.TotalDebtOwed = 1000
	st.Loans["L1"] = &domain.LoanRecord{ID: "L1", Kind: "LINE_OF_CREDIT", Outstanding: 1000}
	st.LineOfCreditBalance = 1000

	next, err := debtPaymentProcessed(st, envelope(events.KindDebtPaymentProcessed, events.DebtPaymentProcessedPayload{
		LoanID: "L1", AmountPaid: 1000, PrincipalReduction: 1000, RemainingBalance: 0,
	}))
	require.NoError(t, err)

	require.Equal(t, 4000.0, next.CashBalance)
	require.Equal(t, 0.0, next.TotalDebtOwed)
	require.NotContains(t, next.Loans, "L1")
	require.Equal(t, 0.0, next.LineOfCreditBalance)
}

func TestInterestAccrued_CompoundsOutstandingBalance(t *testing.T) {
	st := domain.NewAgentState("A")
	st.TotalDebtOwed = 1000
	st.Loans["L1"] = &domain.LoanRecord{ID: "L1", Kind: "TERM_LOAN", Outstanding: 1000}

	next, err := interestAccrued(st, envelope(events.KindInterestAccrued, events.InterestAccruedPayload{
		LoanID: "L1", InterestAmount: 25,
	}))
	require.NoError(t, err)

	require.Equal(t, 1025.0, next.Loans["L1"].Outstanding)
	require.Equal(t, 1025.0, next.TotalDebtOwed)
}

func TestDefaultRecorded_PenalizesCashAndCreditRating(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CashBalance = 1000
	st.CreditRating = 10

	next, err := defaultRecorded(st, envelope(events.KindDefaultRecorded, events.DefaultRecordedPayload{
		LoanID: "L1", AmountOwed: 500, PenaltyAmount: 50,
	}))
	require.NoError(t, err)

	require.Equal(t, 950.0, next.CashBalance)
	require.Equal(t, 0, next.CreditRating, "credit rating floors at 0")
	require.Equal(t, 550.0, next.TotalDebtOwed, "amount owed plus penalty must fold onto outstanding debt")
}

func TestDefaultRecorded_WritesOffTheLoanAndFoldsAmountOwedPlusPenaltyOntoDebt(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CashBalance = 1000
	st.TotalDebtOwed = 800
	st.Loans["L1"] = &domain.LoanRecord{ID: "L1", Kind: "LINE_OF_CREDIT", Outstanding: 800}
	st.LineOfCreditBalance = 800

	next, err := defaultRecorded(st, envelope(events.KindDefaultRecorded, events.DefaultRecordedPayload{
		LoanID: "L1", AmountOwed: 800, PenaltyAmount: 100,
	}))
	require.NoError(t, err)

	require.NotContains(t, next.Loans, "L1", "the defaulted loan must be written off, not carried forward")
	require.Equal(t, 0.0, next.LineOfCreditBalance)
	require.Equal(t, 900.0, next.TotalDebtOwed, "the prior outstanding balance is replaced by amount_owed+penalty, not doubled")
}
