package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/journey"
	"github.com/transitraptor/raptor/mcraptor"
	"github.com/transitraptor/raptor/model"
)

var paretoCmd = &cobra.Command{
	Use:   "pareto <origin-stop> <departure-seconds> <destination-stop>",
	Short: "List Pareto-optimal journeys (arrival, fare, boardings) between two stops",
	Args:  cobra.ExactArgs(3),
	RunE:  pareto,
}

func pareto(cmd *cobra.Command, args []string) error {
	if err := requireFixture(); err != nil {
		return err
	}

	tt, stopsByName, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}

	origin, ok := stopsByName[args[0]]
	if !ok {
		return fmt.Errorf("unknown stop %q", args[0])
	}
	destination, ok := stopsByName[args[2]]
	if !ok {
		return fmt.Errorf("unknown stop %q", args[2])
	}
	tau0, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid departure time %q: %w", args[1], err)
	}

	cfg := config.New(config.WithMaxRounds(rounds))
	cancel := config.NewCancelToken()

	result, err := mcraptor.Run(tt, []model.StopID{origin}, int32(tau0), cfg, cancel, rootLogger)
	if err != nil {
		return err
	}

	journeys, err := journey.FromMcRaptor(tt, result, destination)
	if err != nil {
		return err
	}
	if len(journeys) == 0 {
		fmt.Println("destination unreachable")
		return nil
	}

	for i, j := range journeys {
		fmt.Printf("journey %d:\n", i+1)
		printJourney(tt, j)
	}
	return nil
}
