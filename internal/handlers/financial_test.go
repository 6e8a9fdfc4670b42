package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func cmd(kind commands.Kind, agentID string, payload any) commands.Command {
	return commands.Command{CommandID: "c1", Kind: kind, AgentID: agentID, Payload: payload}
}

func TestTakeLoan_EmitsLoanTakenAndPairedFundsTransferred(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CreditRating = 50
	st.LineOfCreditLimit = 5000

	evs, err := takeLoan(st, cmd(commands.KindTakeLoan, "A", commands.TakeLoanPayload{LoanKind: "LINE_OF_CREDIT", Amount: 3000}))
	require.NoError(t, err)
	require.Len(t, evs, 2)
	require.Equal(t, events.KindLoanTaken, evs[0].Kind)
	require.Equal(t, events.KindFundsTransferred, evs[1].Kind)

	transfer := evs[1].Payload.(events.FundsTransferredPayload)
	require.Equal(t, events.TxLoan, transfer.TransactionKind)
	require.Equal(t, 3000.0, transfer.Amount)
}

func TestTakeLoan_RejectsBelowCreditFloor(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CreditRating = 5

	_, err := takeLoan(st, cmd(commands.KindTakeLoan, "A", commands.TakeLoanPayload{LoanKind: "EXPANSION", Amount: 1000}))
	require.Error(t, err)
	require.IsType(t, &domain.CreditError{}, err)
}

func TestTakeLoan_RejectsDrawPastLineOfCreditLimit(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CreditRating = 50
	st.LineOfCreditLimit = 1000
	st.LineOfCreditBalance = 800

	_, err := takeLoan(st, cmd(commands.KindTakeLoan, "A", commands.TakeLoanPayload{LoanKind: "LINE_OF_CREDIT", Amount: 500}))
	require.Error(t, err)
}

func TestMakeDebtPayment_SplitsInterestAndPrincipal(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CashBalance = 1000
	st.Loans["L1"] = &domain.LoanRecord{ID: "L1", InterestRate: 0.52, Outstanding: 1000} // weekly rate 0.01

	evs, err := makeDebtPayment(st, cmd(commands.KindMakeDebtPayment, "A", commands.MakeDebtPaymentPayload{LoanID: "L1", Amount: 100}))
	require.NoError(t, err)
	require.Len(t, evs, 1)

	p := evs[0].Payload.(events.DebtPaymentProcessedPayload)
	require.Equal(t, 10.0, p.InterestPaid) // 1000 * 0.01
	require.Equal(t, 90.0, p.PrincipalReduction)
	require.Equal(t, 910.0, p.RemainingBalance)
}

func TestMakeDebtPayment_RejectsPaymentAboveCashOnHand(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CashBalance = 50
	st.Loans["L1"] = &domain.LoanRecord{ID: "L1", Outstanding: 1000}

	_, err := makeDebtPayment(st, cmd(commands.KindMakeDebtPayment, "A", commands.MakeDebtPaymentPayload{LoanID: "L1", Amount: 100}))
	require.Error(t, err)
	require.IsType(t, &domain.InsufficientFundsError{}, err)
}

func TestSetPrice_RejectsNonPositivePrice(t *testing.T) {
	st := domain.NewAgentState("A")
	st.Locations["loc1"] = domain.NewLocationState("loc1", "DOWNTOWN", 2000)

	_, err := setPrice(st, cmd(commands.KindSetPrice, "A", commands.SetPricePayload{LocationID: "loc1", ServiceName: "StandardWash", NewPrice: 0}))
	require.Error(t, err)
}

func TestSetPrice_RejectsUnknownLocation(t *testing.T) {
	st := domain.NewAgentState("A")

	_, err := setPrice(st, cmd(commands.KindSetPrice, "A", commands.SetPricePayload{LocationID: "missing", ServiceName: "StandardWash", NewPrice: 4}))
	require.Error(t, err)
	require.IsType(t, &domain.LocationNotFoundError{}, err)
}

func TestRunMarketingCampaign_ScalesBoostWithBudget(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CashBalance = 10000
	st.Locations["loc1"] = domain.NewLocationState("loc1", "DOWNTOWN", 2000)

	evs, err := runMarketingCampaign(st, cmd(commands.KindRunMarketingCampaign, "A", commands.RunMarketingCampaignPayload{
		LocationID: "loc1", CampaignType: "DIGITAL_AD", Budget: 3000,
	}))
	require.NoError(t, err)
	require.Len(t, evs, 1)

	p := evs[0].Payload.(events.MarketingBoostAppliedPayload)
	require.Equal(t, 0.05+3000.0/3000, p.CustomerAttractionBoost)
	require.Equal(t, 2, p.DurationWeeks)
}
