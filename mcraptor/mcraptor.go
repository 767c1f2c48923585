package mcraptor

import (
	"github.com/rs/zerolog"

	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/errs"
	"github.com/transitraptor/raptor/model"
)

// Result is the full per-round bag state a McRAPTOR query produced (spec
// §4.4). Bags is indexed [round][stop]; Rounds is the number of rounds
// actually computed.
type Result struct {
	Rounds int
	Bags   [][]Bag
}

// Run executes McRAPTOR from a set of origin stops at departure tau0, for up
// to cfg.MaxRounds rounds, tracking the criteria cfg.Criteria selects in
// addition to arrival time (spec §4.4).
func Run(tt *model.Timetable, origins []model.StopID, tau0 int32, cfg config.Config, cancel config.CancelToken, log zerolog.Logger) (*Result, error) {
	if cfg.MaxRounds <= 0 {
		return nil, errs.InvalidParameter("max_rounds must be >= 1")
	}
	if len(origins) == 0 {
		return nil, errs.InvalidParameter("at least one origin stop is required")
	}

	numStops := tt.NumStops()
	bags := make([][]Bag, cfg.MaxRounds+1)
	bags[0] = make([]Bag, numStops)

	marked := map[model.StopID]bool{}
	for _, s := range origins {
		bags[0][s] = Bag{{Arrival: tau0, Kind: BoardNone}}
		marked[s] = true
	}

	round := 0
	for k := 1; k <= cfg.MaxRounds; k++ {
		if cancel.Cancelled() {
			return nil, errs.ErrCancelled
		}
		round = k
		bags[k] = make([]Bag, numStops)
		copy(bags[k], bags[k-1])

		q := map[model.RouteID]model.StopID{}
		for p := range marked {
			for _, r := range tt.RoutesOfStop(p) {
				existing, ok := q[r]
				if !ok {
					q[r] = p
					continue
				}
				posExisting, _ := tt.PositionInRoute(r, existing)
				posP, _ := tt.PositionInRoute(r, p)
				if posP < posExisting {
					q[r] = p
				}
			}
		}

		nextMarked := map[model.StopID]bool{}
		for r, boardAt := range q {
			traverseRouteBag(tt, r, boardAt, bags[k-1], bags[k], cfg.Criteria, nextMarked)
		}

		if cancel.Cancelled() {
			return nil, errs.ErrCancelled
		}

		relaxTransfers(tt, bags[k], cfg.Criteria, nextMarked)

		log.Debug().Int("round", k).Int("marked", len(nextMarked)).Msg("mcraptor round complete")

		marked = nextMarked
		if len(marked) == 0 {
			break
		}
	}

	return &Result{Rounds: round, Bags: bags[:round+1]}, nil
}

func snapshot(l Label) *Label {
	c := l
	return &c
}

// traverseRouteBag walks route r's stops starting at boardAt maintaining a
// route-bag R of in-flight labels, per spec §4.4 step 3.
func traverseRouteBag(
	tt *model.Timetable,
	r model.RouteID,
	boardAt model.StopID,
	prevRoundBags []Bag,
	curRoundBags []Bag,
	criteria config.McCriteria,
	nextMarked map[model.StopID]bool,
) {
	route := tt.Route(r)
	startPos, ok := tt.PositionInRoute(r, boardAt)
	if !ok {
		return
	}

	var routeBag Bag

	for pos := int(startPos); pos < len(route.Stops); pos++ {
		stop := route.Stops[pos]

		// (a) advance every in-flight label's arrival along its bound trip.
		for i := range routeBag {
			if routeBag[i].Kind != BoardVehicle {
				continue
			}
			st := tt.TripStopTimeAt(routeBag[i].VehicleTrip, uint16(pos))
			routeBag[i].Arrival = st.Arrival
		}

		// (b) merge the advanced route-bag into this stop's bag.
		merged, changed := Merge(curRoundBags[stop], routeBag, criteria, false)
		curRoundBags[stop] = merged
		if changed {
			nextMarked[stop] = true
		}

		// (c) merge the previous round's bag at this stop back into the
		// route-bag, injecting fresh boarding opportunities.
		routeBag, _ = Merge(routeBag, prevRoundBags[stop], criteria, false)

		// (d) try to (re-)board the earliest catchable trip for every
		// label now in the route-bag.
		for i := range routeBag {
			l := routeBag[i]
			candidate, found := tt.EarliestTrip(r, stop, l.Arrival)
			if !found || (l.Kind == BoardVehicle && candidate == l.VehicleTrip) {
				continue
			}
			boardSt := tt.TripStopTimeAt(candidate, uint16(pos))
			routeBag[i] = Label{
				Arrival:     l.Arrival,
				Fare:        l.Fare + boardSt.Fare,
				NTrips:      l.NTrips + 1,
				Kind:        BoardVehicle,
				VehicleTrip: candidate,
				FromStop:    stop,
				Pred:        snapshot(l),
			}
		}
	}
}

// relaxTransfers applies one pass of same-station transfer relaxation over
// every stop whose bag changed this round (spec §4.4 step 4).
func relaxTransfers(tt *model.Timetable, curRoundBags []Bag, criteria config.McCriteria, nextMarked map[model.StopID]bool) {
	marked := make([]model.StopID, 0, len(nextMarked))
	for s := range nextMarked {
		marked = append(marked, s)
	}
	for _, p := range marked {
		for _, l := range curRoundBags[p] {
			pred := snapshot(l)
			for _, tr := range tt.TransfersFrom(p) {
				addition := Bag{{
					Arrival:  l.Arrival + tr.Seconds,
					Fare:     l.Fare,
					NTrips:   l.NTrips,
					Kind:     BoardTransfer,
					FromStop: p,
					Pred:     pred,
				}}
				merged, changed := Merge(curRoundBags[tr.To], addition, criteria, false)
				curRoundBags[tr.To] = merged
				if changed {
					nextMarked[tr.To] = true
				}
			}
		}
	}
}
