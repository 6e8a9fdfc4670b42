package api

import (
	"reflect"

	"github.com/laundroverse/simcore/internal/commands"
)

// payloadTypes maps each command kind to its concrete payload type, so the
// HTTP layer can decode a JSON body into the same struct a Go caller would
// have constructed directly. Kept next to the dispatcher's own registration
// in spirit, but deliberately separate: this package must not need to know
// how a kind is handled, only how it is shaped on the wire.
var payloadTypes = map[commands.Kind]reflect.Type{
	commands.KindTakeLoan:              reflect.TypeOf(commands.TakeLoanPayload{}),
	commands.KindMakeDebtPayment:        reflect.TypeOf(commands.MakeDebtPaymentPayload{}),
	commands.KindRunMarketingCampaign:   reflect.TypeOf(commands.RunMarketingCampaignPayload{}),
	commands.KindSetPrice:               reflect.TypeOf(commands.SetPricePayload{}),
	commands.KindPurchaseEquipment:      reflect.TypeOf(commands.PurchaseEquipmentPayload{}),
	commands.KindSellEquipment:          reflect.TypeOf(commands.SellEquipmentPayload{}),
	commands.KindPerformMaintenance:     reflect.TypeOf(commands.PerformMaintenancePayload{}),
	commands.KindFixMachine:             reflect.TypeOf(commands.FixMachinePayload{}),
	commands.KindAcquireSupplies:        reflect.TypeOf(commands.AcquireSuppliesPayload{}),
	commands.KindOpenNewLocation:        reflect.TypeOf(commands.OpenNewLocationPayload{}),
	commands.KindCloseLocation:          reflect.TypeOf(commands.CloseLocationPayload{}),
	commands.KindHireStaff:              reflect.TypeOf(commands.HireStaffPayload{}),
	commands.KindFireStaff:              reflect.TypeOf(commands.FireStaffPayload{}),
	commands.KindAdjustWage:             reflect.TypeOf(commands.AdjustWagePayload{}),
	commands.KindProvideBenefits:        reflect.TypeOf(commands.ProvideBenefitsPayload{}),
	commands.KindFileAppeal:             reflect.TypeOf(commands.FileAppealPayload{}),
	commands.KindPayFine:                reflect.TypeOf(commands.PayFinePayload{}),
	commands.KindResolveScandal:         reflect.TypeOf(commands.ResolveScandalPayload{}),
	commands.KindRespondToDilemma:       reflect.TypeOf(commands.RespondToDilemmaPayload{}),
	commands.KindInitiateCharity:        reflect.TypeOf(commands.InitiateCharityPayload{}),
	commands.KindMakeEthicalChoice:      reflect.TypeOf(commands.MakeEthicalChoicePayload{}),
	commands.KindFileRegulatoryReport:   reflect.TypeOf(commands.FileRegulatoryReportPayload{}),
	commands.KindSubscribeLoyaltyProgram: reflect.TypeOf(commands.SubscribeLoyaltyProgramPayload{}),
	commands.KindNegotiateVendorDeal:    reflect.TypeOf(commands.NegotiateVendorDealPayload{}),
	commands.KindSignExclusiveContract:  reflect.TypeOf(commands.SignExclusiveContractPayload{}),
	commands.KindCancelVendorContract:   reflect.TypeOf(commands.CancelVendorContractPayload{}),
	commands.KindProposeAlliance:        reflect.TypeOf(commands.ProposeAlliancePayload{}),
	commands.KindAcceptAlliance:         reflect.TypeOf(commands.AcceptAlliancePayload{}),
	commands.KindBreachAlliance:         reflect.TypeOf(commands.BreachAlliancePayload{}),
	commands.KindProposeBuyout:          reflect.TypeOf(commands.ProposeBuyoutPayload{}),
	commands.KindAcceptBuyoutOffer:      reflect.TypeOf(commands.AcceptBuyoutOfferPayload{}),
	commands.KindSendMessage:            reflect.TypeOf(commands.SendMessagePayload{}),
	commands.KindRecordNote:             reflect.TypeOf(commands.RecordNotePayload{}),
}

// newPayload allocates a zero value of kind's payload type, returned as a
// pointer so json.Unmarshal can populate it.
func newPayload(kind commands.Kind) (any, bool) {
	t, ok := payloadTypes[kind]
	if !ok {
		return nil, false
	}
	return reflect.New(t).Interface(), true
}
