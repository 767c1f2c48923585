// Package model holds the in-memory timetable data the round-based search
// algorithms operate on. A Timetable is built once from raw, already-parsed
// feed entities and is read-only for the rest of its lifetime; all of its
// arenas are addressed by dense uint32 indices so per-round traversal in the
// search packages is plain slice indexing rather than pointer chasing.
package model

// StopID, TripID and RouteID are dense indices into the Timetable's arenas.
// They are assigned at build time and are stable for the lifetime of a
// Timetable.
type StopID uint32
type TripID uint32
type RouteID uint32

// StationID indexes the Stations arena the same way.
type StationID uint32

// NoStop / NoTrip / NoRoute / NoStation are the sentinel "absent" values
// used instead of pointers so zero-valued fields never alias a real entity.
const (
	NoStop    StopID    = StopID(^uint32(0))
	NoTrip    TripID    = TripID(^uint32(0))
	NoRoute   RouteID   = RouteID(^uint32(0))
	NoStation StationID = StationID(^uint32(0))
)

// InfiniteArrival encodes "+inf" for arrival/best-known times, per spec §6:
// times are i32 seconds, an unreachable arrival is i32::MAX.
const InfiniteArrival int32 = 1<<31 - 1

// Station is a stable-identifier group of platforms (Stops) that same-station
// transfers move between.
type Station struct {
	ID    StationID
	Name  string
	Stops []StopID
}

// Stop is a single platform. ParentStation is always valid (every Stop
// belongs to exactly one Station).
type Stop struct {
	ID            StopID
	Name          string
	PlatformCode  string
	ParentStation StationID
}

// TripStopTime is one arrival/departure of one Trip at one of its Stops.
// Fare is the non-negative surcharge charged when a passenger BOARDS the
// trip at this stop; it must never be read for an alighting computation.
type TripStopTime struct {
	Trip      TripID
	Position  uint16
	Stop      StopID
	Arrival   int32
	Departure int32
	Fare      int32
}

// Trip is one scheduled vehicle run. StopTimes is strictly non-decreasing:
// for consecutive entries, arrival <= departure at the same stop, and the
// departure at position i is <= the arrival at position i+1.
type Trip struct {
	ID        TripID
	ShortHint string
	LongName  string
	Route     RouteID
	StopTimes []TripStopTime
}

// Route is the equivalence class of Trips sharing an identical ordered stop
// pattern. Trips is sorted by departure at position 0, which (by the FIFO
// invariant the index builder enforces) is equivalent to sorted-by-departure
// at every position.
type Route struct {
	ID    RouteID
	Stops []StopID
	Trips []TripID
}

// Transfer is the minimum layover between two stops, source and destination
// in the base model always sharing a parent Station.
type Transfer struct {
	From    StopID
	To      StopID
	Seconds int32
}

// RawTrip is the input shape the index builder consumes: a trip's identity
// plus its ordered stop-times, before Route grouping exists.
type RawTrip struct {
	ID        TripID
	ShortHint string
	LongName  string
	StopTimes []TripStopTime
}

// RawStop and RawStation are the corresponding pre-build input shapes.
type RawStop struct {
	ID            StopID
	Name          string
	PlatformCode  string
	ParentStation StationID
}

type RawStation struct {
	ID   StationID
	Name string
}

// Timetable owns every entity arena plus the derived indices the search
// packages require. It is immutable after Build returns successfully; all
// query state is allocated per-call by the caller, never stored here.
type Timetable struct {
	stations []Station
	stops    []Stop
	trips    []Trip
	routes   []Route

	stationByName map[string]StationID

	routesByStop          [][]RouteID
	stopIndexWithinRoute  []map[RouteID]uint16
	transferByPair        map[stopPair]Transfer
	transfersFrom         map[StopID][]Transfer
	defaultTransferSecond int32
}

type stopPair struct {
	from StopID
	to   StopID
}

// StationByName returns the station with the given name, or false if none
// exists.
func (t *Timetable) StationByName(name string) (Station, bool) {
	id, ok := t.stationByName[name]
	if !ok {
		return Station{}, false
	}
	return t.stations[id], true
}

// Station returns the station at the given dense id.
func (t *Timetable) Station(id StationID) Station {
	return t.stations[id]
}

// Stop returns the stop at the given dense id.
func (t *Timetable) Stop(id StopID) Stop {
	return t.stops[id]
}

// NumStops reports the size of the dense Stop index space.
func (t *Timetable) NumStops() int {
	return len(t.stops)
}

// StopsOfStation returns the member stops of a station.
func (t *Timetable) StopsOfStation(s StationID) []StopID {
	return t.stations[s].Stops
}

// NumStations reports the size of the dense Station index space, used by the
// range-query driver to enumerate every candidate destination station.
func (t *Timetable) NumStations() int {
	return len(t.stations)
}

// Trip returns the trip at the given dense id.
func (t *Timetable) Trip(id TripID) Trip {
	return t.trips[id]
}

// Route returns the route at the given dense id.
func (t *Timetable) Route(id RouteID) Route {
	return t.routes[id]
}

// NumRoutes reports the size of the dense Route index space.
func (t *Timetable) NumRoutes() int {
	return len(t.routes)
}

// RoutesOfStop returns every route whose stop pattern contains the given
// stop, i.e. routes_by_stop from spec §3.
func (t *Timetable) RoutesOfStop(s StopID) []RouteID {
	return t.routesByStop[s]
}

// PositionInRoute returns the 0-based position of stop s within route r, or
// false if the stop is not on the route.
func (t *Timetable) PositionInRoute(r RouteID, s StopID) (uint16, bool) {
	pos, ok := t.stopIndexWithinRoute[s][r]
	return pos, ok
}

// TripStopTimeAt returns the stop-time of the given trip at the given
// position within its own stop sequence.
func (t *Timetable) TripStopTimeAt(trip TripID, position uint16) TripStopTime {
	return t.trips[trip].StopTimes[position]
}

// Transfer returns the transfer between two stops, or false if none is
// defined (they don't share a station, or one wasn't materialized).
func (t *Timetable) Transfer(from, to StopID) (Transfer, bool) {
	tr, ok := t.transferByPair[stopPair{from, to}]
	return tr, ok
}

// TransfersFrom returns all transfers originating at the given stop.
func (t *Timetable) TransfersFrom(from StopID) []Transfer {
	return t.transfersFrom[from]
}

// EarliestTrip returns the trip of route r whose departure at stop s is >=
// lowerBound and minimal, by binary search over the route's FIFO-ordered
// trip list (spec §4.1). Returns false if no such trip exists.
func (t *Timetable) EarliestTrip(r RouteID, s StopID, lowerBound int32) (TripID, bool) {
	pos, ok := t.PositionInRoute(r, s)
	if !ok {
		return NoTrip, false
	}
	route := t.routes[r]
	trips := route.Trips
	lo, hi := 0, len(trips)
	for lo < hi {
		mid := (lo + hi) / 2
		dep := t.trips[trips[mid]].StopTimes[pos].Departure
		if dep < lowerBound {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(trips) {
		return NoTrip, false
	}
	return trips[lo], true
}

// TripsDeparting returns every (trip, stop-time) pair departing the given
// stop within [tMin, tMax], used only by the range-query driver to enumerate
// candidate departure times (spec §4.1).
func (t *Timetable) TripsDeparting(s StopID, tMin, tMax int32) []TripStopTime {
	var out []TripStopTime
	for _, r := range t.routesByStop[s] {
		pos, ok := t.PositionInRoute(r, s)
		if !ok {
			continue
		}
		for _, tripID := range t.routes[r].Trips {
			st := t.trips[tripID].StopTimes[pos]
			if st.Departure >= tMin && st.Departure <= tMax {
				out = append(out, st)
			}
		}
	}
	return out
}
