package gamemaster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func TestObserve_OnlyEmitsAllowedKinds(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.VendorRelationships["v1"] = &domain.VendorRelationship{VendorID: "v1", CurrentUnitPrice: 1.0}
	st.Locations["loc1"] = loc

	for week := 0; week < 20; week++ {
		out, err := Observe(st, week, 0, 0)
		require.NoError(t, err)
		for _, e := range out {
			require.True(t, AllowedKinds[e.Kind], "unexpected kind %q", e.Kind)
			require.Equal(t, "A", e.AgentID)
		}
	}
}

func TestObserve_IsDeterministicForTheSameTuple(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.VendorRelationships["v1"] = &domain.VendorRelationship{VendorID: "v1", CurrentUnitPrice: 1.0}
	st.Locations["loc1"] = loc

	first, err := Observe(st, 4, 2, 0)
	require.NoError(t, err)
	second, err := Observe(st, 4, 2, 0)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].Kind, second[i].Kind)
		require.Equal(t, first[i].Payload, second[i].Payload)
	}
}

func TestObserve_DifferentCountersCanDiverge(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.VendorRelationships["v1"] = &domain.VendorRelationship{VendorID: "v1", CurrentUnitPrice: 1.0}
	st.Locations["loc1"] = loc

	seen := map[int]bool{}
	for counter := 0; counter < 50; counter++ {
		out, err := Observe(st, 1, 1, counter)
		require.NoError(t, err)
		seen[len(out)] = true
	}
	require.Greater(t, len(seen), 1, "varying the counter should eventually vary the number of emitted events")
}

func TestObserve_CompetitorPriceDriftStaysPositiveAndTargetsPricedServices(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.ActivePricing = map[string]float64{"WASH": 0.02}
	st.Locations["loc1"] = loc

	for week := 0; week < 40; week++ {
		out, err := Observe(st, week, 0, 0)
		require.NoError(t, err)
		for _, e := range out {
			if e.Kind != events.KindCompetitorPriceChanged {
				continue
			}
			p := e.Payload.(events.CompetitorPriceChangedPayload)
			require.Equal(t, "WASH", p.ServiceName)
			require.Greater(t, p.NewPrice, 0.0)
		}
	}
}

func TestObserve_VendorPriceFluctuationStaysPositive(t *testing.T) {
	st := domain.NewAgentState("A")
	loc := domain.NewLocationState("loc1", "DOWNTOWN", 2000)
	loc.VendorRelationships["v1"] = &domain.VendorRelationship{VendorID: "v1", CurrentUnitPrice: 0.01}
	st.Locations["loc1"] = loc

	for week := 0; week < 30; week++ {
		out, err := Observe(st, week, 0, 0)
		require.NoError(t, err)
		for _, e := range out {
			if e.Kind != events.KindVendorPriceFluctuated {
				continue
			}
			p := e.Payload.(events.VendorPriceFluctuatedPayload)
			require.Greater(t, p.NewPricePerUnit, 0.0)
		}
	}
}
