package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func TestRespondToDilemma_DeferRepairAlsoStartsAScandal(t *testing.T) {
	st := newTestState()
	st.ActiveDilemmas["d1"] = &domain.Dilemma{Description: "a damaged machine", Options: []string{"REPAIR_IMMEDIATELY", "DEFER_REPAIR"}}

	evs, err := respondToDilemma(st, cmd(commands.KindRespondToDilemma, "A", commands.RespondToDilemmaPayload{
		DilemmaID: "d1", ChosenOption: "DEFER_REPAIR",
	}))
	require.NoError(t, err)
	require.Len(t, evs, 2)
	require.Equal(t, events.KindDilemmaResolved, evs[0].Kind)
	require.Equal(t, events.KindScandalStarted, evs[1].Kind)
	p := evs[1].Payload.(events.ScandalStartedPayload)
	require.Greater(t, p.Severity, 0.0)
}

func TestRespondToDilemma_RepairImmediatelyDoesNotStartAScandal(t *testing.T) {
	st := newTestState()
	st.ActiveDilemmas["d1"] = &domain.Dilemma{Options: []string{"REPAIR_IMMEDIATELY", "DEFER_REPAIR"}}

	evs, err := respondToDilemma(st, cmd(commands.KindRespondToDilemma, "A", commands.RespondToDilemmaPayload{
		DilemmaID: "d1", ChosenOption: "REPAIR_IMMEDIATELY",
	}))
	require.NoError(t, err)
	require.Len(t, evs, 1)
}

func TestMakeEthicalChoice_CuttingCornersAlsoStartsAScandal(t *testing.T) {
	st := newTestState()

	evs, err := makeEthicalChoice(st, cmd(commands.KindMakeEthicalChoice, "A", commands.MakeEthicalChoicePayload{
		ChoiceType: "CUT_CORNERS",
	}))
	require.NoError(t, err)
	require.Len(t, evs, 2)
	require.Equal(t, events.KindSocialScoreAdjusted, evs[0].Kind)
	require.Equal(t, events.KindScandalStarted, evs[1].Kind)
}

func TestMakeEthicalChoice_FairTradeSourcingDoesNotStartAScandal(t *testing.T) {
	st := newTestState()

	evs, err := makeEthicalChoice(st, cmd(commands.KindMakeEthicalChoice, "A", commands.MakeEthicalChoicePayload{
		ChoiceType: "FAIR_TRADE_SOURCING",
	}))
	require.NoError(t, err)
	require.Len(t, evs, 1)
}

func TestMakeEthicalChoice_RejectsUnknownChoiceType(t *testing.T) {
	st := newTestState()

	_, err := makeEthicalChoice(st, cmd(commands.KindMakeEthicalChoice, "A", commands.MakeEthicalChoicePayload{
		ChoiceType: "WING_IT",
	}))
	require.Error(t, err)
}
