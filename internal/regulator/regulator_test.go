package regulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func TestInspect_PredatoryPricingIssuesFindingAndWarning(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.ActivePricing["StandardWash"] = 0.10 // well under costPerLoad * 0.4
	st.Locations["loc1"] = loc

	out, err := Inspect(st, 1, 0)
	require.NoError(t, err)

	var findings, statusUpdates int
	for _, e := range out {
		switch e.Kind {
		case events.KindRegulatoryFinding:
			findings++
		case events.KindRegulatoryStatusUpdated:
			statusUpdates++
			p := e.Payload.(events.RegulatoryStatusUpdatedPayload)
			require.Equal(t, string(domain.RegulatoryWarning), p.NewStatus)
		}
	}
	require.Equal(t, 1, findings)
	require.Equal(t, 1, statusUpdates)
}

func TestInspect_PriceAtOrAboveFloorTriggersNothing(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.ActivePricing["StandardWash"] = 3.50
	st.Locations["loc1"] = loc

	out, err := Inspect(st, 1, 0)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestInspect_SecondViolationAfterWarningEscalatesToInvestigation(t *testing.T) {
	st := domain.NewAgentState("A")
	st.RegulatoryStatus = domain.RegulatoryWarning
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.ActivePricing["StandardWash"] = 0.10
	st.Locations["loc1"] = loc

	out, err := Inspect(st, 2, 0)
	require.NoError(t, err)

	var sawInvestigation, sawStatusUpdate bool
	for _, e := range out {
		if e.Kind == events.KindInvestigationStarted {
			sawInvestigation = true
		}
		if e.Kind == events.KindRegulatoryStatusUpdated {
			sawStatusUpdate = true
		}
	}
	require.True(t, sawInvestigation)
	require.False(t, sawStatusUpdate, "already warned, so no second status-update event")
}

func TestInspect_ReplayOfSameViolationNeverDuplicatesTheFine(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.ActivePricing["StandardWash"] = 0.10
	st.Locations["loc1"] = loc
	st.PendingFines = append(st.PendingFines, &domain.Fine{ID: "predatory-loc1-StandardWash-w1"})

	out, err := Inspect(st, 1, 0)
	require.NoError(t, err)

	for _, e := range out {
		require.NotEqual(t, events.KindRegulatoryFinding, e.Kind)
	}
}

func TestInspect_WageBelowStatutoryFloorIssuesFinding(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.Staff["s1"] = &domain.StaffMember{ID: "s1", HourlyRate: 5.00}
	st.Locations["loc1"] = loc

	out, err := Inspect(st, 1, 0)
	require.NoError(t, err)

	found := false
	for _, e := range out {
		if e.Kind == events.KindRegulatoryFinding {
			found = true
		}
	}
	require.True(t, found)
}

func TestInspect_ReplayOfSameWageViolationNeverDuplicatesTheFine(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.Staff["s1"] = &domain.StaffMember{ID: "s1", HourlyRate: 5.00}
	st.Locations["loc1"] = loc
	st.PendingFines = append(st.PendingFines, &domain.Fine{ID: "wage-loc1-s1-w1"})

	out, err := Inspect(st, 1, 0)
	require.NoError(t, err)

	for _, e := range out {
		require.NotEqual(t, events.KindRegulatoryFinding, e.Kind)
	}
}

func TestInspect_FrequentCommunicationWithPriceAlignmentStartsInvestigation(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.ActivePricing["StandardWash"] = 4.00
	loc.ObservedCompetitorPrices["StandardWash"] = 4.02
	st.Locations["loc1"] = loc
	st.CommunicationLog["B"] = []domain.CommunicationRecord{
		{Week: 1, Length: 20},
		{Week: 1, Length: 20},
		{Week: 2, Length: 20},
	}

	out, err := Inspect(st, 2, 0)
	require.NoError(t, err)

	var found bool
	for _, e := range out {
		if e.Kind != events.KindInvestigationStarted {
			continue
		}
		p := e.Payload.(events.InvestigationStartedPayload)
		require.Contains(t, p.Reason, "B")
		found = true
	}
	require.True(t, found)
}

func TestInspect_InfrequentCommunicationWithoutPriceAlignmentTriggersNothing(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.ActivePricing["StandardWash"] = 4.00
	st.Locations["loc1"] = loc
	st.CommunicationLog["B"] = []domain.CommunicationRecord{{Week: 2, Length: 20}}

	out, err := Inspect(st, 2, 0)
	require.NoError(t, err)
	for _, e := range out {
		require.NotEqual(t, events.KindInvestigationStarted, e.Kind)
	}
}

func TestInspect_ActiveCollusionInvestigationIsNotReopened(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.ActivePricing["StandardWash"] = 4.00
	loc.ObservedCompetitorPrices["StandardWash"] = 4.01
	st.Locations["loc1"] = loc
	st.CommunicationLog["B"] = []domain.CommunicationRecord{
		{Week: 2, Length: 250},
	}
	investigationID := "collusion-A-B-w2"
	st.ActiveInvestigations[investigationID] = &domain.Investigation{CurrentStage: "OPENED"}

	out, err := Inspect(st, 2, 0)
	require.NoError(t, err)
	for _, e := range out {
		if e.Kind != events.KindInvestigationStarted {
			continue
		}
		p := e.Payload.(events.InvestigationStartedPayload)
		require.NotEqual(t, investigationID, p.InvestigationID)
	}
}

func TestInspect_CumulativeScandalSeverityEscalatesToUnderInvestigation(t *testing.T) {
	st := domain.NewAgentState("A")
	st.ActiveScandals = []*domain.ScandalMarker{
		{ID: "s1", Severity: 0.6},
		{ID: "s2", Severity: 0.6},
	}

	out, err := Inspect(st, 1, 0)
	require.NoError(t, err)

	var found bool
	for _, e := range out {
		if e.Kind != events.KindRegulatoryStatusUpdated {
			continue
		}
		p := e.Payload.(events.RegulatoryStatusUpdatedPayload)
		if p.NewStatus == string(domain.RegulatoryUnderInvestigation) {
			found = true
		}
	}
	require.True(t, found)
}

func TestInspect_ScandalSeverityBelowThresholdDoesNotEscalate(t *testing.T) {
	st := domain.NewAgentState("A")
	st.ActiveScandals = []*domain.ScandalMarker{{ID: "s1", Severity: 0.3}}

	out, err := Inspect(st, 1, 0)
	require.NoError(t, err)
	for _, e := range out {
		require.NotEqual(t, events.KindRegulatoryStatusUpdated, e.Kind)
	}
}

func TestInspect_LoanPastGraceWindowRecordsDefault(t *testing.T) {
	st := domain.NewAgentState("A")
	st.CurrentWeek = 10
	st.Loans["L1"] = &domain.LoanRecord{ID: "L1", Outstanding: 1000, TermWeeks: 4, TakenWeek: 0}

	out, err := Inspect(st, 10, 0)
	require.NoError(t, err)

	found := false
	for _, e := range out {
		if e.Kind == events.KindDefaultRecorded {
			found = true
			p := e.Payload.(events.DefaultRecordedPayload)
			require.Equal(t, "L1", p.LoanID)
		}
	}
	require.True(t, found)
}
