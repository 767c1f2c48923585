package mcraptor_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/journey"
	"github.com/transitraptor/raptor/mcraptor"
	"github.com/transitraptor/raptor/model"
	"github.com/transitraptor/raptor/testutil"
)

// A cheap, slow, single-boarding trip and an expensive, fast, two-boarding
// route both reach the destination -- neither dominates the other on
// (arrival, fare, boardings), so both should survive in the Pareto bag.
func TestRun_ParetoTradeoff(t *testing.T) {
	b := testutil.NewBuilder()
	b.Trip("cheap-direct", []testutil.StopTime{
		{Stop: "A1", Arrival: 0, Departure: 0, Fare: 100},
		{Stop: "B1", Arrival: 1800, Departure: 1800, Fare: 0},
	})

	b.Station("Hub")
	b.Stop("Hub-1", "Hub")
	b.Stop("Hub-2", "Hub")
	b.Trip("fast-leg-1", []testutil.StopTime{
		{Stop: "A1", Arrival: 0, Departure: 0, Fare: 300},
		{Stop: "Hub-1", Arrival: 300, Departure: 300, Fare: 0},
	})
	b.Trip("fast-leg-2", []testutil.StopTime{
		{Stop: "Hub-2", Arrival: 420, Departure: 420, Fare: 300},
		{Stop: "B1", Arrival: 600, Departure: 600, Fare: 0},
	})
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(4), config.WithCriteria(config.CriterionFare|config.CriterionBoardings))
	result, err := mcraptor.Run(tt, []model.StopID{b.StopID("A1")}, 0, cfg, config.NewCancelToken(), zerolog.Nop())
	require.NoError(t, err)

	journeys, err := journey.FromMcRaptor(tt, result, b.StopID("B1"))
	require.NoError(t, err)
	require.Len(t, journeys, 2)

	var cheapSeen, fastSeen bool
	for _, j := range journeys {
		switch {
		case j.Fare() == 100:
			cheapSeen = true
			assert.EqualValues(t, 1800, j.ArrivalTime(model.InfiniteArrival))
			assert.Equal(t, 1, j.Boardings())
		case j.Fare() == 600:
			fastSeen = true
			assert.EqualValues(t, 600, j.ArrivalTime(model.InfiniteArrival))
			assert.Equal(t, 2, j.Boardings())
		}
	}
	assert.True(t, cheapSeen, "expected the cheap direct journey to survive")
	assert.True(t, fastSeen, "expected the fast two-leg journey to survive")
}

// DominanceSoundness: no bag should ever contain a label dominating another.
func TestMerge_DominanceSoundness(t *testing.T) {
	criteria := config.CriterionFare | config.CriterionBoardings
	better := mcraptor.Label{Arrival: 100, Fare: 50, NTrips: 1}
	worse := mcraptor.Label{Arrival: 200, Fare: 100, NTrips: 2}

	merged, changed := mcraptor.Merge(nil, mcraptor.Bag{better, worse}, criteria, false)
	assert.True(t, changed)
	require.Len(t, merged, 1)
	assert.Equal(t, better, merged[0])
}

func TestMerge_KeepsIncomparableLabels(t *testing.T) {
	criteria := config.CriterionFare | config.CriterionBoardings
	cheap := mcraptor.Label{Arrival: 1800, Fare: 100, NTrips: 1}
	fast := mcraptor.Label{Arrival: 600, Fare: 600, NTrips: 2}

	merged, changed := mcraptor.Merge(nil, mcraptor.Bag{cheap, fast}, criteria, false)
	assert.True(t, changed)
	assert.Len(t, merged, 2)
}
