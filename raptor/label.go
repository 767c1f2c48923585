package raptor

import "github.com/transitraptor/raptor/model"

// BoardKind tags how a label's best-known arrival was reached: absent
// (origin, no leg taken yet), a same-station transfer, or a vehicle leg
// (spec §9: "the trip back-pointer is a tagged variant with three cases").
type BoardKind uint8

const (
	BoardNone BoardKind = iota
	BoardTransfer
	BoardVehicle
)

// Label is the per-(round, stop) earliest-arrival state spec §4.3 defines.
// Pred is the exact predecessor label this one was derived from (nil at an
// origin stop), so journey reconstruction is a direct pointer walk rather
// than a search over historical rounds. Labels are never mutated in place
// after being published into a round's slice, so a Pred chain stays valid
// for the lifetime of the Result.
type Label struct {
	Arrival     int32
	Kind        BoardKind
	VehicleTrip model.TripID
	FromStop    model.StopID
	Pred        *Label
}

// infiniteLabel is the "unreached" sentinel used to initialize round arrays.
func infiniteLabel() Label {
	return Label{Arrival: model.InfiniteArrival, Kind: BoardNone}
}
