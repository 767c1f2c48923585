package main

import (
	"fmt"

	"github.com/transitraptor/raptor/journey"
	"github.com/transitraptor/raptor/model"
)

func printJourney(tt *model.Timetable, j journey.Journey) {
	if len(j.Legs) == 0 {
		fmt.Println("  (already at destination)")
		return
	}
	for _, leg := range j.Legs {
		from := tt.Stop(leg.FromStop).Name
		to := tt.Stop(leg.ToStop).Name
		switch leg.Kind {
		case journey.LegVehicle:
			trip := tt.Trip(leg.Trip)
			fmt.Printf("  %-20s %6d  --[%s]-->  %-20s %6d  (fare %d)\n", from, leg.Departure, trip.ShortHint, to, leg.Arrival, leg.Fare)
		case journey.LegTransfer:
			fmt.Printf("  %-20s %6d  --[walk]-->  %-20s %6d\n", from, leg.Departure, to, leg.Arrival)
		}
	}
	fmt.Printf("  arrival %d, fare %d, boardings %d\n", j.ArrivalTime(model.InfiniteArrival), j.Fare(), j.Boardings())
}
