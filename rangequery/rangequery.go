// Package rangequery orchestrates repeated McRAPTOR searches across a
// departure window, scanning candidate departures latest-first and
// aggregating a Pareto-optimal set of journeys per destination station (spec
// §4.6).
package rangequery

import (
	"slices"
	"sort"

	"github.com/rs/zerolog"

	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/errs"
	"github.com/transitraptor/raptor/journey"
	"github.com/transitraptor/raptor/mcraptor"
	"github.com/transitraptor/raptor/model"
)

// Query is a range-query request: search every departure in [TauLo, TauHi]
// from Origins, returning Pareto-optimal journeys to every other station.
type Query struct {
	Origins []model.StopID
	TauLo   int32
	TauHi   int32
	Cfg     config.Config
}

// dated is a journey tagged with its departure time: the departure of its
// first leg, or the departure of the search that produced it when the
// journey has no legs (origin == destination, spec §8's edge case).
type dated struct {
	journey journey.Journey
	tau     int32
}

// Run scans Query.Origins' candidate departures within [TauLo, TauHi]
// latest-first, running McRAPTOR once per candidate, and returns the
// Pareto-optimal journeys to every non-origin station under the criteria
// (-departure_time, arrival_time, fare, n_trips) with keep_equal=true (spec
// §4.6 step 3).
func Run(tt *model.Timetable, q Query, cancel config.CancelToken, log zerolog.Logger) (map[model.StationID][]journey.Journey, error) {
	if q.TauHi < q.TauLo {
		return nil, errs.InvalidParameter("departure window end precedes start")
	}
	if len(q.Origins) == 0 {
		return nil, errs.InvalidParameter("at least one origin stop is required")
	}

	originStations := map[model.StationID]bool{}
	for _, s := range q.Origins {
		originStations[tt.Stop(s).ParentStation] = true
	}

	departures := candidateDepartures(tt, q.Origins, q.TauLo, q.TauHi)
	log.Info().Int("candidates", len(departures)).Msg("range query departure candidates")

	collected := map[model.StationID][]dated{}

	for i, tau := range departures {
		if cancel.Cancelled() {
			return nil, errs.ErrCancelled
		}

		result, err := mcraptor.Run(tt, q.Origins, tau, q.Cfg, cancel, log)
		if err != nil {
			return nil, err
		}

		log.Debug().Int("index", i).Int("total", len(departures)).Int32("departure", tau).Msg("range query processing departure")

		for station := 0; station < tt.NumStations(); station++ {
			sid := model.StationID(station)
			if originStations[sid] {
				continue
			}
			for _, stop := range tt.StopsOfStation(sid) {
				bag := result.Bags[result.Rounds][stop]
				for _, label := range bag {
					if label.Kind == mcraptor.BoardNone {
						continue
					}
					j, err := reconstructOneLabel(tt, result, stop, label)
					if err != nil {
						return nil, err
					}
					collected[sid] = append(collected[sid], dated{journey: j, tau: j.DepartureTime(tau)})
				}
			}
		}
	}

	out := make(map[model.StationID][]journey.Journey, len(collected))
	for sid, ds := range collected {
		out[sid] = paretoSet(ds)
	}
	return out, nil
}

// reconstructOneLabel reconstructs a single journey from one bag entry,
// reusing journey.FromMcRaptor's per-label logic via a one-element bag view.
func reconstructOneLabel(tt *model.Timetable, result *mcraptor.Result, d model.StopID, label mcraptor.Label) (journey.Journey, error) {
	journeys, err := journey.FromMcRaptor(tt, &mcraptor.Result{
		Rounds: result.Rounds,
		Bags:   overrideFinalBag(result, d, label),
	}, d)
	if err != nil {
		return journey.Journey{}, err
	}
	if len(journeys) != 1 {
		return journey.Journey{}, errs.NewInternalError("range query: unexpected bag size during single-label reconstruction", nil)
	}
	return journeys[0], nil
}

// overrideFinalBag returns a shallow copy of result's bag slice with the
// final round's bag at d replaced by a singleton containing only label, so
// journey.FromMcRaptor reconstructs exactly the one journey requested.
func overrideFinalBag(result *mcraptor.Result, d model.StopID, label mcraptor.Label) [][]mcraptor.Bag {
	out := make([][]mcraptor.Bag, len(result.Bags))
	copy(out, result.Bags)
	finalRound := make([]mcraptor.Bag, len(result.Bags[result.Rounds]))
	copy(finalRound, result.Bags[result.Rounds])
	finalRound[d] = mcraptor.Bag{label}
	out[result.Rounds] = finalRound
	return out
}

// candidateDepartures collects D: every distinct departure time, within
// [tauLo, tauHi], of a trip-stop-time at any origin stop, sorted descending
// (spec §4.6 step 1; latest-first scanning enables the pruning rationale
// spec §4.6 describes).
func candidateDepartures(tt *model.Timetable, origins []model.StopID, tauLo, tauHi int32) []int32 {
	seen := map[int32]bool{}
	var out []int32
	for _, s := range origins {
		for _, st := range tt.TripsDeparting(s, tauLo, tauHi) {
			if !seen[st.Departure] {
				seen[st.Departure] = true
				out = append(out, st.Departure)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// dominates reports whether a dominates b under (-departure_time,
// arrival_time, fare, n_trips): a departs no earlier, arrives no later,
// costs no more, and boards no more vehicles, with at least one strict
// improvement (spec §4.6 step 3).
func dominates(a, b dated) bool {
	leAll := a.tau >= b.tau &&
		a.journey.ArrivalTime(model.InfiniteArrival) <= b.journey.ArrivalTime(model.InfiniteArrival) &&
		a.journey.Fare() <= b.journey.Fare() &&
		a.journey.Boardings() <= b.journey.Boardings()
	ltAny := a.tau > b.tau ||
		a.journey.ArrivalTime(model.InfiniteArrival) < b.journey.ArrivalTime(model.InfiniteArrival) ||
		a.journey.Fare() < b.journey.Fare() ||
		a.journey.Boardings() < b.journey.Boardings()
	return leAll && ltAny
}

// paretoSet computes the non-dominated subset of ds. keep_equal=true is
// implicit: dominates requires a strict improvement on some criterion, so
// two journeys tying on every criterion but arriving via a different path
// both survive (spec §4.6 step 3, spec §9's keep_equal resolution). The same
// journey found by several departure scans (identical legs) is kept once.
func paretoSet(ds []dated) []journey.Journey {
	front := make([]dated, 0, len(ds))
	for i, cand := range ds {
		dominated := false
		for j, other := range ds {
			if i == j {
				continue
			}
			if dominates(other, cand) {
				dominated = true
				break
			}
		}
		if dominated {
			continue
		}
		duplicate := false
		for _, kept := range front {
			if slices.Equal(kept.journey.Legs, cand.journey.Legs) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			front = append(front, cand)
		}
	}

	out := make([]journey.Journey, len(front))
	for i, d := range front {
		out[i] = d.journey
	}
	return out
}
