// Package raptor implements the single-criterion, round-based
// earliest-arrival search (spec §4.3): the classic RAPTOR relaxation over a
// Timetable's Route/Stop indices.
package raptor

import (
	"github.com/rs/zerolog"

	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/errs"
	"github.com/transitraptor/raptor/model"
)

// Result is the full per-round label state a query produced, plus the
// companion tau-star array used for local pruning (spec §4.3).
//
// Labels is indexed [round][stop]; Rounds is the number of rounds actually
// computed (<= the configured cap, fewer if the marked set emptied early).
type Result struct {
	Rounds  int
	Labels  [][]Label
	TauStar []int32
	Origins []model.StopID
}

// Run executes RAPTOR from a set of origin stops at departure tau0, for up
// to cfg.MaxRounds rounds. targets, if non-empty, enables target pruning
// when cfg.EnableTargetPruning is set (spec §4.3's optional upper bound).
func Run(tt *model.Timetable, origins []model.StopID, tau0 int32, cfg config.Config, cancel config.CancelToken, targets []model.StopID, log zerolog.Logger) (*Result, error) {
	if cfg.MaxRounds <= 0 {
		return nil, errs.InvalidParameter("max_rounds must be >= 1")
	}
	if len(origins) == 0 {
		return nil, errs.InvalidParameter("at least one origin stop is required")
	}

	numStops := tt.NumStops()
	labels := make([][]Label, cfg.MaxRounds+1)
	labels[0] = make([]Label, numStops)
	for i := range labels[0] {
		labels[0][i] = infiniteLabel()
	}

	tauStar := make([]int32, numStops)
	for i := range tauStar {
		tauStar[i] = model.InfiniteArrival
	}

	marked := map[model.StopID]bool{}
	for _, s := range origins {
		labels[0][s] = Label{Arrival: tau0, Kind: BoardNone}
		tauStar[s] = tau0
		marked[s] = true
	}

	targetBound := func() int32 {
		if !cfg.EnableTargetPruning || len(targets) == 0 {
			return model.InfiniteArrival
		}
		best := model.InfiniteArrival
		for _, d := range targets {
			if tauStar[d] < best {
				best = tauStar[d]
			}
		}
		return best
	}

	round := 0
	for k := 1; k <= cfg.MaxRounds; k++ {
		if cancel.Cancelled() {
			return nil, errs.ErrCancelled
		}
		round = k
		labels[k] = make([]Label, numStops)
		copy(labels[k], labels[k-1])

		// Accumulate routes: for every marked stop and every route serving
		// it, keep only the earliest boarding position per route.
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
		bound := targetBound()

		for r, boardAt := range q {
			traverseRoute(tt, r, boardAt, labels[k-1], labels[k], tauStar, bound, cfg.EnableTargetPruning, nextMarked)
		}

		if cancel.Cancelled() {
			return nil, errs.ErrCancelled
		}

		// Transfer relaxation, once per round (spec §9 open question,
		// resolved: once per round, not fixpoint).
		relaxTransfers(tt, labels[k], tauStar, nextMarked)

		log.Debug().Int("round", k).Int("marked", len(nextMarked)).Msg("raptor round complete")

		marked = nextMarked
		if len(marked) == 0 {
			break
		}
	}

	return &Result{Rounds: round, Labels: labels[:round+1], TauStar: tauStar, Origins: origins}, nil
}

// snapshot copies a label onto the heap so a Pred pointer into it stays
// valid even if the slice slot it came from is mutated again later (spec
// §5: update rules are commutative, but a later update at the SAME stop
// within a round must not retroactively corrupt an earlier label's
// back-pointer chain).
func snapshot(l Label) *Label {
	c := l
	return &c
}

// traverseRoute walks route r's stops starting at boardAt, carrying the
// currently-boarded trip forward and updating arrival labels, per spec
// §4.3 step 3.
func traverseRoute(
	tt *model.Timetable,
	r model.RouteID,
	boardAt model.StopID,
	prevRound []Label,
	curRound []Label,
	tauStar []int32,
	bound int32,
	targetPruning bool,
	nextMarked map[model.StopID]bool,
) {
	route := tt.Route(r)
	startPos, ok := tt.PositionInRoute(r, boardAt)
	if !ok {
		return
	}

	currentTrip := model.NoTrip
	boardStop := boardAt
	var boardPred *Label

	for pos := int(startPos); pos < len(route.Stops); pos++ {
		stop := route.Stops[pos]

		if currentTrip != model.NoTrip {
			st := tt.TripStopTimeAt(currentTrip, uint16(pos))
			arr := st.Arrival
			localBound := tauStar[stop]
			if targetPruning && bound < localBound {
				localBound = bound
			}
			if arr < localBound {
				curRound[stop] = Label{
					Arrival:     arr,
					Kind:        BoardVehicle,
					VehicleTrip: currentTrip,
					FromStop:    boardStop,
					Pred:        boardPred,
				}
				tauStar[stop] = arr
				nextMarked[stop] = true
			}
		}

		// Can we catch an earlier (or first) trip of this route at this
		// stop, given the best arrival known before this round started?
		boardingBound := prevRound[stop].Arrival
		if currentTrip == model.NoTrip || boardingBound <= currentDeparture(tt, currentTrip, pos) {
			if candidate, found := tt.EarliestTrip(r, stop, boardingBound); found && candidate != currentTrip {
				currentTrip = candidate
				boardStop = stop
				boardPred = snapshot(prevRound[stop])
			}
		}
	}
}

// currentDeparture returns the departure of trip t at position pos, used to
// decide whether a newly-arrived stop could catch an earlier trip than the
// one currently boarded (spec §4.3 step 3, last bullet).
func currentDeparture(tt *model.Timetable, t model.TripID, pos int) int32 {
	if t == model.NoTrip {
		return model.InfiniteArrival
	}
	return tt.TripStopTimeAt(t, uint16(pos)).Departure
}

// relaxTransfers applies one pass of same-station transfer relaxation over
// every stop marked by route traversal this round (spec §4.3 step 4).
func relaxTransfers(tt *model.Timetable, curRound []Label, tauStar []int32, nextMarked map[model.StopID]bool) {
	marked := make([]model.StopID, 0, len(nextMarked))
	for s := range nextMarked {
		marked = append(marked, s)
	}
	for _, p := range marked {
		pred := snapshot(curRound[p])
		for _, tr := range tt.TransfersFrom(p) {
			candidate := curRound[p].Arrival + tr.Seconds
			if candidate < tauStar[tr.To] {
				curRound[tr.To] = Label{
					Arrival:  candidate,
					Kind:     BoardTransfer,
					FromStop: p,
					Pred:     pred,
				}
				tauStar[tr.To] = candidate
				nextMarked[tr.To] = true
			}
		}
	}
}
