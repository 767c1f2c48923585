package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/journey"
	"github.com/transitraptor/raptor/model"
	"github.com/transitraptor/raptor/raptor"
)

var earliestCmd = &cobra.Command{
	Use:   "earliest <origin-stop> <departure-seconds> <destination-stop>",
	Short: "Find the earliest-arrival journey between two stops",
	Args:  cobra.ExactArgs(3),
	RunE:  earliest,
}

func earliest(cmd *cobra.Command, args []string) error {
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

	result, err := raptor.Run(tt, []model.StopID{origin}, int32(tau0), cfg, cancel, []model.StopID{destination}, rootLogger)
	if err != nil {
		return err
	}

	j, found, err := journey.FromRaptor(tt, result, destination)
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("destination unreachable")
		return nil
	}

	printJourney(tt, j)
	return nil
}
