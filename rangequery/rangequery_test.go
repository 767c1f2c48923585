package rangequery_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/model"
	"github.com/transitraptor/raptor/rangequery"
	"github.com/transitraptor/raptor/testutil"
)

// Range-query subsumption (spec §8): a single-departure result within the
// window must appear in the range-query output for its destination unless
// dominated by another journey in that output.
func TestRun_SingleDepartureSurvives(t *testing.T) {
	b := testutil.NewBuilder()
	b.Trip("only-trip", []testutil.StopTime{
		{Stop: "A1", Arrival: 0, Departure: 0, Fare: 150},
		{Stop: "B1", Arrival: 600, Departure: 600},
	})
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(4))
	results, err := rangequery.Run(tt, rangequery.Query{
		Origins: []model.StopID{b.StopID("A1")},
		TauLo:   0,
		TauHi:   0,
		Cfg:     cfg,
	}, config.NewCancelToken(), zerolog.Nop())
	require.NoError(t, err)

	bStation := tt.Stop(b.StopID("B1")).ParentStation
	journeys, ok := results[bStation]
	require.True(t, ok)
	require.Len(t, journeys, 1)
	assert.EqualValues(t, 600, journeys[0].ArrivalTime(model.InfiniteArrival))
	assert.EqualValues(t, 150, journeys[0].Fare())
}

// A later departure that both arrives earlier and costs less must dominate
// and exclude an earlier, strictly-worse departure from the final set. The
// slow trip calls at an intermediate stop so the two trips form separate
// routes (the same stop pattern would be rejected as overtaking).
func TestRun_LaterDepartureDominatesEarlier(t *testing.T) {
	b := testutil.NewBuilder()
	b.Trip("slow-early", []testutil.StopTime{
		{Stop: "A1", Arrival: 0, Departure: 0, Fare: 200},
		{Stop: "Mid1", Arrival: 900, Departure: 900},
		{Stop: "B1", Arrival: 1800, Departure: 1800},
	})
	b.Trip("fast-late", []testutil.StopTime{
		{Stop: "A1", Arrival: 600, Departure: 600, Fare: 100},
		{Stop: "B1", Arrival: 900, Departure: 900},
	})
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(4))
	results, err := rangequery.Run(tt, rangequery.Query{
		Origins: []model.StopID{b.StopID("A1")},
		TauLo:   0,
		TauHi:   600,
		Cfg:     cfg,
	}, config.NewCancelToken(), zerolog.Nop())
	require.NoError(t, err)

	bStation := tt.Stop(b.StopID("B1")).ParentStation
	journeys := results[bStation]
	require.Len(t, journeys, 1)
	assert.EqualValues(t, 900, journeys[0].ArrivalTime(model.InfiniteArrival))
	assert.EqualValues(t, 100, journeys[0].Fare())
}

func TestRun_RejectsEmptyWindow(t *testing.T) {
	b := testutil.NewBuilder()
	b.Stop("A1", "A")
	tt := b.Build(t, 120)

	cfg := config.New(config.WithMaxRounds(4))
	_, err := rangequery.Run(tt, rangequery.Query{
		Origins: []model.StopID{b.StopID("A1")},
		TauLo:   600,
		TauHi:   0,
		Cfg:     cfg,
	}, config.NewCancelToken(), zerolog.Nop())
	assert.Error(t, err)
}
