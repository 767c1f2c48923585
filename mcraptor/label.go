// Package mcraptor implements the multi-criteria, round-based McRAPTOR
// search (spec §4.4): Pareto bags of labels ordered by (arrival time,
// accumulated fare, number of vehicle boardings).
package mcraptor

import (
	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/model"
)

// BoardKind mirrors raptor.BoardKind: it tags how a label's most recent leg
// was taken (spec §9's tagged-variant back-pointer).
type BoardKind uint8

const (
	BoardNone BoardKind = iota
	BoardTransfer
	BoardVehicle
)

// Label is one point in a Pareto bag: a criteria vector (Arrival, Fare,
// NTrips) plus the exact predecessor label it was derived from. Pred is nil
// at an origin stop. As in the raptor package, labels are never mutated in
// place after being published, so a Pred chain stays valid for the lifetime
// of the Result and reconstruction never has to search a bag for "the"
// predecessor.
type Label struct {
	Arrival     int32
	Fare        int32
	NTrips      int
	Kind        BoardKind
	VehicleTrip model.TripID
	FromStop    model.StopID
	Pred        *Label
}

// Dominates reports whether a dominates b under the active criteria: a <= b
// componentwise with at least one strict inequality (spec §4.4). Criteria
// not enabled in the config are treated as always-equal, i.e. excluded from
// comparison.
func Dominates(a, b Label, criteria config.McCriteria) bool {
	leAll := a.Arrival <= b.Arrival
	ltAny := a.Arrival < b.Arrival
	if criteria.Has(config.CriterionFare) {
		leAll = leAll && a.Fare <= b.Fare
		ltAny = ltAny || a.Fare < b.Fare
	}
	if criteria.Has(config.CriterionBoardings) {
		leAll = leAll && a.NTrips <= b.NTrips
		ltAny = ltAny || a.NTrips < b.NTrips
	}
	return leAll && ltAny
}

// Equal reports whether a and b are identical on every active criterion.
func Equal(a, b Label, criteria config.McCriteria) bool {
	if a.Arrival != b.Arrival {
		return false
	}
	if criteria.Has(config.CriterionFare) && a.Fare != b.Fare {
		return false
	}
	if criteria.Has(config.CriterionBoardings) && a.NTrips != b.NTrips {
		return false
	}
	return true
}
