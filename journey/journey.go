// Package journey reconstructs ordered Leg sequences from the per-round
// label state the raptor and mcraptor packages produce (spec §4.5).
package journey

import "github.com/transitraptor/raptor/model"

// LegKind distinguishes a vehicle leg from a same-station transfer leg kept
// because it leads to the next vehicle leg or ends the journey (spec
// §4.5's "footpath/platform change" marker exception; see
// elideInternalTransfers).
type LegKind uint8

const (
	LegVehicle LegKind = iota
	LegTransfer
)

// Leg is one ride or one kept transfer within a Journey.
type Leg struct {
	Kind          LegKind
	FromStop      model.StopID
	ToStop        model.StopID
	Trip          model.TripID // valid only when Kind == LegVehicle
	Departure     int32
	Arrival       int32
	Fare          int32
	BoardingsSoFar int
}

// Journey is an ordered, temporally-continuous sequence of legs from origin
// to destination (spec §4.5).
type Journey struct {
	Legs []Leg
}

// DepartureTime returns the departure of the journey's first leg, or the
// journey's single implicit instant if it has no legs (origin == destination).
func (j Journey) DepartureTime(fallback int32) int32 {
	if len(j.Legs) == 0 {
		return fallback
	}
	return j.Legs[0].Departure
}

// ArrivalTime returns the arrival of the journey's last leg, or fallback if
// the journey has no legs.
func (j Journey) ArrivalTime(fallback int32) int32 {
	if len(j.Legs) == 0 {
		return fallback
	}
	return j.Legs[len(j.Legs)-1].Arrival
}

// Fare sums the fare of every leg.
func (j Journey) Fare() int32 {
	var total int32
	for _, l := range j.Legs {
		total += l.Fare
	}
	return total
}

// Boardings counts the vehicle legs in the journey.
func (j Journey) Boardings() int {
	n := 0
	for _, l := range j.Legs {
		if l.Kind == LegVehicle {
			n++
		}
	}
	return n
}

// elideInternalTransfers drops transfer legs whose endpoints share a station
// (intra-station transfers are not user-visible legs per spec §4.5) unless
// the transfer is the sole means to reach the next vehicle leg (it changes
// platform to board) or it is the journey's final leg (it changes platform
// to reach the exact destination stop) -- in both cases it is kept as a
// footpath/platform-change marker.
func elideInternalTransfers(legs []Leg) []Leg {
	out := make([]Leg, 0, len(legs))
	for i, leg := range legs {
		if leg.Kind == LegTransfer {
			followedByVehicle := i+1 < len(legs) && legs[i+1].Kind == LegVehicle
			isLast := i == len(legs)-1
			if !followedByVehicle && !isLast {
				continue
			}
		}
		out = append(out, leg)
	}
	return out
}
