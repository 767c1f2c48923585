package raptor_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/journey"
	"github.com/transitraptor/raptor/model"
	"github.com/transitraptor/raptor/raptor"
	"github.com/transitraptor/raptor/testutil"
)

func TestRun_DirectConnection(t *testing.T) {
	b := testutil.NewBuilder()
	b.Trip("T1", []testutil.StopTime{
		{Stop: "A1", Arrival: 0, Departure: 0, Fare: 100},
		{Stop: "B1", Arrival: 600, Departure: 600, Fare: 0},
	})
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(4))
	result, err := raptor.Run(tt, []model.StopID{b.StopID("A1")}, 0, cfg, config.NewCancelToken(), nil, zerolog.Nop())
	require.NoError(t, err)

	j, found, err := journey.FromRaptor(tt, result, b.StopID("B1"))
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, j.Legs, 1)
	assert.EqualValues(t, 600, j.ArrivalTime(model.InfiniteArrival))
	assert.EqualValues(t, 100, j.Fare())
	assert.Equal(t, 1, j.Boardings())
}

func TestRun_TransferLayoverEnforced(t *testing.T) {
	b := testutil.NewBuilder()
	b.Station("Hub")
	b.Stop("Hub-1", "Hub")
	b.Stop("Hub-2", "Hub")
	b.Trip("T1", []testutil.StopTime{
		{Stop: "A1", Arrival: 0, Departure: 0},
		{Stop: "Hub-1", Arrival: 600, Departure: 600},
	})
	// Departs before the 120s layover clears (600+120=720): must not be caught.
	b.Trip("T2-too-soon", []testutil.StopTime{
		{Stop: "Hub-2", Arrival: 700, Departure: 700},
		{Stop: "C1", Arrival: 900, Departure: 900},
	})
	// Departs exactly at the layover boundary: must be caught.
	b.Trip("T2-on-time", []testutil.StopTime{
		{Stop: "Hub-2", Arrival: 720, Departure: 720},
		{Stop: "C1", Arrival: 1000, Departure: 1000},
	})
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(4))
	result, err := raptor.Run(tt, []model.StopID{b.StopID("A1")}, 0, cfg, config.NewCancelToken(), nil, zerolog.Nop())
	require.NoError(t, err)

	j, found, err := journey.FromRaptor(tt, result, b.StopID("C1"))
	require.NoError(t, err)
	require.True(t, found)
	assert.EqualValues(t, 1000, j.ArrivalTime(model.InfiniteArrival))
	assert.Equal(t, 2, j.Boardings())
}

func TestRun_UnreachableDestination(t *testing.T) {
	b := testutil.NewBuilder()
	b.Trip("T1", []testutil.StopTime{
		{Stop: "A1", Arrival: 0, Departure: 0},
		{Stop: "B1", Arrival: 600, Departure: 600},
	})
	b.Stop("Island", "Island")
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(4))
	result, err := raptor.Run(tt, []model.StopID{b.StopID("A1")}, 0, cfg, config.NewCancelToken(), nil, zerolog.Nop())
	require.NoError(t, err)

	_, found, err := journey.FromRaptor(tt, result, b.StopID("Island"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRun_DestinationEqualsOrigin(t *testing.T) {
	b := testutil.NewBuilder()
	b.Stop("A1", "A")
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(4))
	result, err := raptor.Run(tt, []model.StopID{b.StopID("A1")}, 1000, cfg, config.NewCancelToken(), nil, zerolog.Nop())
	require.NoError(t, err)

	j, found, err := journey.FromRaptor(tt, result, b.StopID("A1"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, j.Legs)
}

func TestRun_MonotonicAcrossRounds(t *testing.T) {
	b := testutil.NewBuilder()
	b.Trip("T1", []testutil.StopTime{
		{Stop: "A1", Arrival: 0, Departure: 0},
		{Stop: "B1", Arrival: 300, Departure: 300},
		{Stop: "C1", Arrival: 900, Departure: 900},
	})
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(3))
	result, err := raptor.Run(tt, []model.StopID{b.StopID("A1")}, 0, cfg, config.NewCancelToken(), nil, zerolog.Nop())
	require.NoError(t, err)

	c1 := b.StopID("C1")
	for k := 1; k < len(result.Labels); k++ {
		assert.LessOrEqual(t, result.Labels[k][c1].Arrival, result.Labels[k-1][c1].Arrival)
	}
}

func TestRun_RejectsInvalidRounds(t *testing.T) {
	b := testutil.NewBuilder()
	b.Stop("A1", "A")
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(0))
	_, err := raptor.Run(tt, []model.StopID{b.StopID("A1")}, 0, cfg, config.NewCancelToken(), nil, zerolog.Nop())
	assert.Error(t, err)
}
