package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/commands"
)

// allCommandKinds mirrors every Kind constant declared in package commands;
// kept here rather than derived by reflection so a newly added kind that
// forgets to register a wire payload fails this test loudly.
var allCommandKinds = []commands.Kind{
	commands.KindTakeLoan, commands.KindMakeDebtPayment, commands.KindRunMarketingCampaign, commands.KindSetPrice,
	commands.KindPurchaseEquipment, commands.KindSellEquipment, commands.KindPerformMaintenance, commands.KindFixMachine,
	commands.KindAcquireSupplies, commands.KindOpenNewLocation, commands.KindCloseLocation,
	commands.KindHireStaff, commands.KindFireStaff, commands.KindAdjustWage, commands.KindProvideBenefits,
	commands.KindFileAppeal, commands.KindPayFine, commands.KindResolveScandal, commands.KindRespondToDilemma,
	commands.KindInitiateCharity, commands.KindMakeEthicalChoice, commands.KindFileRegulatoryReport, commands.KindSubscribeLoyaltyProgram,
	commands.KindNegotiateVendorDeal, commands.KindSignExclusiveContract, commands.KindCancelVendorContract,
	commands.KindProposeAlliance, commands.KindAcceptAlliance, commands.KindBreachAlliance, commands.KindProposeBuyout,
	commands.KindAcceptBuyoutOffer,
	commands.KindSendMessage, commands.KindRecordNote,
}

func TestNewPayload_EveryCommandKindHasAWireShape(t *testing.T) {
	for _, kind := range allCommandKinds {
		p, ok := newPayload(kind)
		require.True(t, ok, "command kind %q has no registered payload type", kind)
		require.NotNil(t, p)
	}
}

func TestNewPayload_UnknownKindIsRejected(t *testing.T) {
	_, ok := newPayload(commands.Kind("NOT_A_REAL_COMMAND"))
	require.False(t, ok)
}

func TestNewPayload_DecodesJSONIntoTheRightConcreteType(t *testing.T) {
	p, ok := newPayload(commands.KindSetPrice)
	require.True(t, ok)

	require.NoError(t, json.Unmarshal([]byte(`{"location_id":"loc1","service_name":"StandardWash","new_price":4.25}`), p))

	decoded, ok := p.(*commands.SetPricePayload)
	require.True(t, ok)
	require.Equal(t, "loc1", decoded.LocationID)
	require.Equal(t, 4.25, decoded.NewPrice)
}
