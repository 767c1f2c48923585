package journey

import (
	"github.com/transitraptor/raptor/errs"
	"github.com/transitraptor/raptor/model"
	"github.com/transitraptor/raptor/raptor"
)

// FromRaptor reconstructs the single best journey to destination d from a
// completed RAPTOR Result, per spec §4.5. It returns (Journey{}, false, nil)
// if d was never reached within the search's round cap.
func FromRaptor(tt *model.Timetable, result *raptor.Result, d model.StopID) (Journey, bool, error) {
	finalLabel := result.Labels[result.Rounds][d]
	if finalLabel.Arrival >= model.InfiniteArrival {
		return Journey{}, false, nil
	}
	if finalLabel.Kind == raptor.BoardNone {
		// Destination equal to origin: zero-length journey (spec §8).
		return Journey{}, true, nil
	}

	var legs []Leg
	stop := d
	label := finalLabel
	maxSteps := result.Rounds + 1

	for steps := 0; label.Kind != raptor.BoardNone; steps++ {
		if steps > maxSteps {
			return Journey{}, false, errs.NewInternalError("raptor reconstruction: back-pointer chain exceeds round cap", nil)
		}

		from := label.FromStop
		leg := Leg{
			FromStop: from,
			ToStop:   stop,
			Arrival:  label.Arrival,
		}

		if label.Kind == raptor.BoardVehicle {
			leg.Kind = LegVehicle
			leg.Trip = label.VehicleTrip
			pos, ok := tt.PositionInRoute(tt.Trip(leg.Trip).Route, from)
			if !ok {
				return Journey{}, false, errs.NewInternalError("raptor reconstruction: boarding stop not on trip's route", nil)
			}
			st := tt.TripStopTimeAt(leg.Trip, pos)
			leg.Departure = st.Departure
			leg.Fare = st.Fare
		} else {
			leg.Kind = LegTransfer
			if tr, ok := tt.Transfer(from, stop); ok {
				leg.Departure = label.Arrival - tr.Seconds
			}
		}

		legs = append(legs, leg)

		if label.Pred == nil {
			break
		}
		stop = from
		label = *label.Pred
	}

	reverseLegs(legs)
	legs = elideInternalTransfers(legs)
	assignBoardingCounts(legs)

	return Journey{Legs: legs}, true, nil
}

func reverseLegs(legs []Leg) {
	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}
}

func assignBoardingCounts(legs []Leg) {
	n := 0
	for i := range legs {
		if legs[i].Kind == LegVehicle {
			n++
		}
		legs[i].BoardingsSoFar = n
	}
}
