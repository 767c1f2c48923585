package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/transitraptor/raptor/errs"
)

// BuildOptions configures the index builder (spec §4.2, §9).
type BuildOptions struct {
	// DefaultTransferSeconds is the layover materialized between every pair
	// of distinct stops sharing a station (spec §4.2 step 4).
	DefaultTransferSeconds int32
	// Logger receives build diagnostics (entity, route and transfer counts).
	// The zero value logs nothing.
	Logger zerolog.Logger
}

// Build constructs an immutable Timetable from raw, already-parsed feed
// entities. It groups trips into Routes by identical stop-sequence key,
// asserts the FIFO property within each route, and materializes the three
// derived indices plus intra-station transfers (spec §4.2).
//
// Build is the core's one external-facing construction entrypoint (spec §6):
// callers are expected to have already normalized a raw feed into
// RawStation/RawStop/RawTrip.
func Build(rawStations []RawStation, rawStops []RawStop, rawTrips []RawTrip, opts BuildOptions) (*Timetable, error) {
	log := opts.Logger

	stations, stationByName, err := buildStations(rawStations, rawStops)
	if err != nil {
		return nil, err
	}
	stops, err := buildStops(rawStops, len(stations))
	if err != nil {
		return nil, err
	}

	trips, routes, err := buildRoutes(rawTrips, log)
	if err != nil {
		return nil, err
	}

	routesByStop := make([][]RouteID, len(stops))
	stopIndexWithinRoute := make([]map[RouteID]uint16, len(stops))
	for i := range stopIndexWithinRoute {
		stopIndexWithinRoute[i] = map[RouteID]uint16{}
	}
	for _, r := range routes {
		for pos, s := range r.Stops {
			routesByStop[s] = append(routesByStop[s], r.ID)
			stopIndexWithinRoute[s][r.ID] = uint16(pos)
		}
	}

	transferByPair, transfersFrom := materializeTransfers(stations, stops, opts.DefaultTransferSeconds)

	log.Info().
		Int("stations", len(stations)).
		Int("stops", len(stops)).
		Int("trips", len(trips)).
		Int("routes", len(routes)).
		Int("transfers", len(transferByPair)).
		Msg("timetable built")

	return &Timetable{
		stations:              stations,
		stops:                 stops,
		trips:                 trips,
		routes:                routes,
		stationByName:         stationByName,
		routesByStop:          routesByStop,
		stopIndexWithinRoute:  stopIndexWithinRoute,
		transferByPair:        transferByPair,
		transfersFrom:         transfersFrom,
		defaultTransferSecond: opts.DefaultTransferSeconds,
	}, nil
}

func buildStations(raw []RawStation, rawStops []RawStop) ([]Station, map[string]StationID, error) {
	stations := make([]Station, len(raw))
	byName := make(map[string]StationID, len(raw))
	for i, s := range raw {
		stations[i] = Station{ID: s.ID, Name: s.Name}
		byName[s.Name] = s.ID
	}
	for _, s := range rawStops {
		if int(s.ParentStation) >= len(stations) {
			return nil, nil, errs.NewBuildError(errs.KindUnknownParentStation,
				fmt.Sprintf("stop %d references unknown station %d", s.ID, s.ParentStation), nil)
		}
		stations[s.ParentStation].Stops = append(stations[s.ParentStation].Stops, s.ID)
	}
	return stations, byName, nil
}

func buildStops(raw []RawStop, numStations int) ([]Stop, error) {
	stops := make([]Stop, len(raw))
	for i, s := range raw {
		if int(s.ParentStation) >= numStations {
			return nil, errs.NewBuildError(errs.KindOrphanedStop,
				fmt.Sprintf("stop %d (%s) has no valid parent station", s.ID, s.Name), nil)
		}
		stops[i] = Stop{
			ID:            s.ID,
			Name:          s.Name,
			PlatformCode:  s.PlatformCode,
			ParentStation: s.ParentStation,
		}
	}
	return stops, nil
}

// routeKey is the canonical identity of a Route: the ordered tuple of stop
// identifiers shared by every trip in the group (spec §3).
func routeKey(stopTimes []TripStopTime) string {
	var b strings.Builder
	for _, st := range stopTimes {
		fmt.Fprintf(&b, "%d|", st.Stop)
	}
	return b.String()
}

func buildRoutes(raw []RawTrip, log zerolog.Logger) ([]Trip, []Route, error) {
	groups := map[string][]RawTrip{}
	order := []string{}
	for _, t := range raw {
		if len(t.StopTimes) < 2 {
			return nil, nil, errs.NewBuildError(errs.KindZeroLengthTrip,
				fmt.Sprintf("trip %d has fewer than 2 stop-times", t.ID), nil)
		}
		if err := assertMonotone(t); err != nil {
			return nil, nil, err
		}
		key := routeKey(t.StopTimes)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	var trips []Trip
	var routes []Route
	var nextRoute RouteID

	for _, key := range order {
		group := groups[key]
		sort.Slice(group, func(i, j int) bool {
			return group[i].StopTimes[0].Departure < group[j].StopTimes[0].Departure
		})

		stopSeq := make([]StopID, len(group[0].StopTimes))
		for i, st := range group[0].StopTimes {
			stopSeq[i] = st.Stop
		}

		if err := assertFIFO(nextRoute, group); err != nil {
			return nil, nil, err
		}

		routeTripIDs := make([]TripID, len(group))
		for i, rt := range group {
			tripStopTimes := make([]TripStopTime, len(rt.StopTimes))
			for j, st := range rt.StopTimes {
				st.Trip = rt.ID
				st.Position = uint16(j)
				tripStopTimes[j] = st
			}
			trips = append(trips, Trip{
				ID:        rt.ID,
				ShortHint: rt.ShortHint,
				LongName:  rt.LongName,
				Route:     nextRoute,
				StopTimes: tripStopTimes,
			})
			routeTripIDs[i] = rt.ID
		}

		routes = append(routes, Route{ID: nextRoute, Stops: stopSeq, Trips: routeTripIDs})
		nextRoute++
	}

	// Trip identifiers are dense by construction (spec §3); reorder the
	// accumulation-order slice into an arena addressable by TripID.
	dense := make([]Trip, len(trips))
	for _, t := range trips {
		dense[t.ID] = t
	}

	log.Debug().Int("groups", len(order)).Msg("grouped trips into routes")
	return dense, routes, nil
}

func assertMonotone(t RawTrip) error {
	seen := map[StopID]bool{}
	for i, st := range t.StopTimes {
		if seen[st.Stop] {
			return errs.NewBuildError(errs.KindDuplicateStopInTrip,
				fmt.Sprintf("trip %d visits stop %d more than once", t.ID, st.Stop), nil)
		}
		seen[st.Stop] = true
		if st.Arrival > st.Departure {
			return errs.NewBuildError(errs.KindNonMonotoneTripTimes,
				fmt.Sprintf("trip %d: arrival %d after departure %d at position %d", t.ID, st.Arrival, st.Departure, i), nil)
		}
		if i > 0 && t.StopTimes[i-1].Departure > st.Arrival {
			return errs.NewBuildError(errs.KindNonMonotoneTripTimes,
				fmt.Sprintf("trip %d: departure at position %d after arrival at position %d", t.ID, i-1, i), nil)
		}
	}
	return nil
}

// assertFIFO checks that within a route group (already sorted by departure
// at position 0), no trip overtakes another at any later position (spec
// §3, §4.2, §8).
func assertFIFO(route RouteID, group []RawTrip) error {
	for i := 1; i < len(group); i++ {
		prev, cur := group[i-1], group[i]
		for pos := range prev.StopTimes {
			if prev.StopTimes[pos].Departure > cur.StopTimes[pos].Departure {
				return errs.NewBuildError(errs.KindOvertaking,
					fmt.Sprintf("route %d: trip %d overtakes trip %d at position %d", route, cur.ID, prev.ID, pos), nil)
			}
		}
	}
	return nil
}

func materializeTransfers(stations []Station, stops []Stop, defaultSeconds int32) (map[stopPair]Transfer, map[StopID][]Transfer) {
	byPair := map[stopPair]Transfer{}
	from := map[StopID][]Transfer{}
	for _, st := range stations {
		for _, a := range st.Stops {
			for _, b := range st.Stops {
				if a == b {
					continue
				}
				tr := Transfer{From: a, To: b, Seconds: defaultSeconds}
				byPair[stopPair{a, b}] = tr
				from[a] = append(from[a], tr)
			}
		}
	}
	_ = stops
	return byPair, from
}
