package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/transitraptor/raptor/config"
	"github.com/transitraptor/raptor/model"
	"github.com/transitraptor/raptor/rangequery"
)

var windowCmd = &cobra.Command{
	Use:   "window <origin-stop> <tau-lo> <tau-hi>",
	Short: "Run a range query over a departure window, reporting journeys to every other station",
	Args:  cobra.ExactArgs(3),
	RunE:  window,
}

func window(cmd *cobra.Command, args []string) error {
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
	tauLo, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid window start %q: %w", args[1], err)
	}
	tauHi, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid window end %q: %w", args[2], err)
	}

	cfg := config.New(config.WithMaxRounds(rounds))
	cancel := config.NewCancelToken()

	results, err := rangequery.Run(tt, rangequery.Query{
		Origins: []model.StopID{origin},
		TauLo:   int32(tauLo),
		TauHi:   int32(tauHi),
		Cfg:     cfg,
	}, cancel, rootLogger)
	if err != nil {
		return err
	}

	for station := 0; station < tt.NumStations(); station++ {
		sid := model.StationID(station)
		journeys, ok := results[sid]
		if !ok || len(journeys) == 0 {
			continue
		}
		fmt.Printf("-- %s --\n", tt.Station(sid).Name)
		for i, j := range journeys {
			fmt.Printf("journey %d:\n", i+1)
			printJourney(tt, j)
		}
	}
	return nil
}
