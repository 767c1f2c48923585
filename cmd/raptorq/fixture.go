package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/transitraptor/raptor/model"
)

// fixtureFile is the on-disk shape of a demo timetable: plain names instead
// of dense ids, resolved to model.Raw* entities at load time. This loader is
// a CLI convenience only; the core's build contract (model.Build) takes
// already-resolved raw entities, not this JSON shape.
type fixtureFile struct {
	DefaultTransferSeconds int32            `json:"default_transfer_seconds"`
	Stations               []fixtureStation `json:"stations"`
	Stops                  []fixtureStop    `json:"stops"`
	Trips                  []fixtureTrip    `json:"trips"`
}

type fixtureStation struct {
	Name string `json:"name"`
}

type fixtureStop struct {
	Name         string `json:"name"`
	Station      string `json:"station"`
	PlatformCode string `json:"platform_code"`
}

type fixtureTrip struct {
	ShortHint string                `json:"short_hint"`
	LongName  string                `json:"long_name"`
	StopTimes []fixtureTripStopTime `json:"stop_times"`
}

type fixtureTripStopTime struct {
	Stop      string `json:"stop"`
	Arrival   int32  `json:"arrival"`
	Departure int32  `json:"departure"`
	Fare      int32  `json:"fare"`
}

// loadFixture reads a JSON timetable fixture and builds a Timetable, also
// returning a stop-name lookup so CLI arguments can name stops directly.
func loadFixture(path string) (*model.Timetable, map[string]model.StopID, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading fixture %q", path)
	}

	var f fixtureFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, nil, errors.Wrapf(err, "parsing fixture %q", path)
	}

	stationsByName := make(map[string]model.StationID, len(f.Stations))
	rawStations := make([]model.RawStation, 0, len(f.Stations))
	for i, s := range f.Stations {
		id := model.StationID(i)
		stationsByName[s.Name] = id
		rawStations = append(rawStations, model.RawStation{ID: id, Name: s.Name})
	}

	stopsByName := make(map[string]model.StopID, len(f.Stops))
	rawStops := make([]model.RawStop, 0, len(f.Stops))
	for i, s := range f.Stops {
		id := model.StopID(i)
		station, ok := stationsByName[s.Station]
		if !ok {
			return nil, nil, errors.Errorf("stop %q references unknown station %q", s.Name, s.Station)
		}
		stopsByName[s.Name] = id
		rawStops = append(rawStops, model.RawStop{
			ID:            id,
			Name:          s.Name,
			PlatformCode:  s.PlatformCode,
			ParentStation: station,
		})
	}

	rawTrips := make([]model.RawTrip, 0, len(f.Trips))
	for i, t := range f.Trips {
		stopTimes := make([]model.TripStopTime, 0, len(t.StopTimes))
		for pos, st := range t.StopTimes {
			stop, ok := stopsByName[st.Stop]
			if !ok {
				return nil, nil, errors.Errorf("trip %q references unknown stop %q", t.ShortHint, st.Stop)
			}
			stopTimes = append(stopTimes, model.TripStopTime{
				Trip:      model.TripID(i),
				Position:  uint16(pos),
				Stop:      stop,
				Arrival:   st.Arrival,
				Departure: st.Departure,
				Fare:      st.Fare,
			})
		}
		rawTrips = append(rawTrips, model.RawTrip{
			ID:        model.TripID(i),
			ShortHint: t.ShortHint,
			LongName:  t.LongName,
			StopTimes: stopTimes,
		})
	}

	defaultTransfer := f.DefaultTransferSeconds
	if defaultTransfer == 0 {
		defaultTransfer = 120
	}

	tt, err := model.Build(rawStations, rawStops, rawTrips, model.BuildOptions{
		DefaultTransferSeconds: defaultTransfer,
		Logger:                 rootLogger,
	})
	if err != nil {
		return nil, nil, err
	}
	return tt, stopsByName, nil
}
