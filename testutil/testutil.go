// Package testutil gives every test package in this module a one-line way
// to build a minimal Timetable fixture, named by string instead of dense id
// (mirroring tidbyt-gtfs/testutil's role of abstracting feed construction
// away from test bodies).
package testutil

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/transitraptor/raptor/model"
)

// StopTime is a named-stop shorthand for model.TripStopTime, resolved to a
// dense StopID by Builder.Trip.
type StopTime struct {
	Stop      string
	Arrival   int32
	Departure int32
	Fare      int32
}

// Builder accumulates named stations/stops/trips and produces a Timetable.
type Builder struct {
	stations   []model.RawStation
	stops      []model.RawStop
	trips      []model.RawTrip
	stationIdx map[string]model.StationID
	stopIdx    map[string]model.StopID
}

// NewBuilder returns an empty fixture builder.
func NewBuilder() *Builder {
	return &Builder{
		stationIdx: map[string]model.StationID{},
		stopIdx:    map[string]model.StopID{},
	}
}

// Station registers a station by name, returning its dense id. Calling it
// twice with the same name returns the same id.
func (b *Builder) Station(name string) model.StationID {
	if id, ok := b.stationIdx[name]; ok {
		return id
	}
	id := model.StationID(len(b.stations))
	b.stationIdx[name] = id
	b.stations = append(b.stations, model.RawStation{ID: id, Name: name})
	return id
}

// Stop registers a stop by name under the given station name (registering
// the station if needed), returning the stop's dense id.
func (b *Builder) Stop(name, station string) model.StopID {
	if id, ok := b.stopIdx[name]; ok {
		return id
	}
	stationID := b.Station(station)
	id := model.StopID(len(b.stops))
	b.stopIdx[name] = id
	b.stops = append(b.stops, model.RawStop{ID: id, Name: name, ParentStation: stationID})
	return id
}

// StopID returns the dense id a previously-registered stop name resolves to.
// The stop must already have been registered via Stop or Trip.
func (b *Builder) StopID(name string) model.StopID {
	return b.stopIdx[name]
}

// resolveStop returns the dense id for name, registering it (and a
// same-named station) on first reference.
func (b *Builder) resolveStop(name string) model.StopID {
	if id, ok := b.stopIdx[name]; ok {
		return id
	}
	return b.Stop(name, name)
}

// Trip registers a trip visiting stopTimes in order, resolving each Stop
// name to a dense id (registering it under a same-named station if it
// hasn't been seen). Returns the trip's dense id.
func (b *Builder) Trip(shortHint string, stopTimes []StopTime) model.TripID {
	id := model.TripID(len(b.trips))
	sts := make([]model.TripStopTime, len(stopTimes))
	for i, st := range stopTimes {
		stop := b.resolveStop(st.Stop)
		sts[i] = model.TripStopTime{
			Trip:      id,
			Position:  uint16(i),
			Stop:      stop,
			Arrival:   st.Arrival,
			Departure: st.Departure,
			Fare:      st.Fare,
		}
	}
	b.trips = append(b.trips, model.RawTrip{ID: id, ShortHint: shortHint, StopTimes: sts})
	return id
}

// Build constructs the Timetable, failing the test immediately on any build
// error (non-monotone trips, overtaking, orphaned stops, etc).
func (b *Builder) Build(t testing.TB, defaultTransferSeconds int32) *model.Timetable {
	tt, err := model.Build(b.stations, b.stops, b.trips, model.BuildOptions{
		DefaultTransferSeconds: defaultTransferSeconds,
		Logger:                 zerolog.Nop(),
	})
	require.NoError(t, err)
	return tt
}
