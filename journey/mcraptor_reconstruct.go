package journey

import (
	"github.com/transitraptor/raptor/errs"
	"github.com/transitraptor/raptor/mcraptor"
	"github.com/transitraptor/raptor/model"
)

// FromMcRaptor reconstructs every Pareto-optimal journey to destination d
// from a completed McRAPTOR Result: one journey per label in the final
// round's bag at d (spec §4.5).
func FromMcRaptor(tt *model.Timetable, result *mcraptor.Result, d model.StopID) ([]Journey, error) {
	bag := result.Bags[result.Rounds][d]
	journeys := make([]Journey, 0, len(bag))
	for _, label := range bag {
		j, err := reconstructOne(tt, result, d, label)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, j)
	}
	return journeys, nil
}

func reconstructOne(tt *model.Timetable, result *mcraptor.Result, d model.StopID, finalLabel mcraptor.Label) (Journey, error) {
	if finalLabel.Kind == mcraptor.BoardNone {
		return Journey{}, nil
	}

	var legs []Leg
	stop := d
	label := finalLabel
	maxSteps := result.Rounds + 1

	for steps := 0; label.Kind != mcraptor.BoardNone; steps++ {
		if steps > maxSteps {
			return Journey{}, errs.NewInternalError("mcraptor reconstruction: back-pointer chain exceeds round cap", nil)
		}

		from := label.FromStop
		leg := Leg{
			FromStop:       from,
			ToStop:         stop,
			Arrival:        label.Arrival,
			BoardingsSoFar: label.NTrips,
		}

		if label.Kind == mcraptor.BoardVehicle {
			leg.Kind = LegVehicle
			leg.Trip = label.VehicleTrip
			pos, ok := tt.PositionInRoute(tt.Trip(leg.Trip).Route, from)
			if !ok {
				return Journey{}, errs.NewInternalError("mcraptor reconstruction: boarding stop not on trip's route", nil)
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
	return Journey{Legs: legs}, nil
}
