package journey_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/journey"
	"github.com/transitraptor/raptor/mcraptor"
	"github.com/transitraptor/raptor/model"
	"github.com/transitraptor/raptor/raptor"
	"github.com/transitraptor/raptor/testutil"
)

// Back-pointer validity (spec §8): a reconstructed journey's leg arrival
// times must be non-decreasing, each leg must depart no later than it
// arrives, and the journey must end at the last trip's arrival at B1.
func TestFromRaptor_BackPointerValidity(t *testing.T) {
	b := testutil.NewBuilder()
	b.Station("Hub")
	b.Stop("Hub-1", "Hub")
	b.Stop("Hub-2", "Hub")
	b.Trip("leg1", []testutil.StopTime{
		{Stop: "A1", Arrival: 0, Departure: 0},
		{Stop: "Hub-1", Arrival: 500, Departure: 500},
	})
	b.Trip("leg2", []testutil.StopTime{
		{Stop: "Hub-2", Arrival: 620, Departure: 620},
		{Stop: "B1", Arrival: 900, Departure: 900},
	})
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(4))
	result, err := raptor.Run(tt, []model.StopID{b.StopID("A1")}, 0, cfg, config.NewCancelToken(), nil, zerolog.Nop())
	require.NoError(t, err)

	j, found, err := journey.FromRaptor(tt, result, b.StopID("B1"))
	require.NoError(t, err)
	require.True(t, found)
	require.GreaterOrEqual(t, len(j.Legs), 2)

	last := int32(-1)
	for _, leg := range j.Legs {
		assert.GreaterOrEqual(t, leg.Arrival, last)
		assert.LessOrEqual(t, leg.Departure, leg.Arrival)
		last = leg.Arrival
	}
	assert.EqualValues(t, 900, j.ArrivalTime(model.InfiniteArrival))
}

func TestFromMcRaptor_EmptyBagIsUnreachable(t *testing.T) {
	b := testutil.NewBuilder()
	b.Trip("T1", []testutil.StopTime{
		{Stop: "A1", Arrival: 0, Departure: 0},
		{Stop: "B1", Arrival: 600, Departure: 600},
	})
	b.Stop("Island", "Island")
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(4))
	result, err := mcraptor.Run(tt, []model.StopID{b.StopID("A1")}, 0, cfg, config.NewCancelToken(), zerolog.Nop())
	require.NoError(t, err)

	journeys, err := journey.FromMcRaptor(tt, result, b.StopID("Island"))
	require.NoError(t, err)
	assert.Empty(t, journeys)
}
