// Command raptorq is a thin demo CLI over the raptor/mcraptor/rangequery
// packages: it loads a JSON timetable fixture and issues a single query
// against it. It is not a general GTFS ingestion or export tool -- feed
// parsing and persistence remain the concern of external collaborators.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "raptorq",
	Short:        "Query a RAPTOR/McRAPTOR timetable fixture",
	SilenceUsage: true,
}

var (
	fixturePath string
	rounds      int
	verbose     bool
)

var rootLogger zerolog.Logger

func init() {
	rootCmd.PersistentFlags().StringVarP(&fixturePath, "fixture", "f", "", "Path to a JSON timetable fixture (required)")
	rootCmd.PersistentFlags().IntVarP(&rounds, "rounds", "r", 4, "Maximum number of RAPTOR rounds")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cobra.OnInitialize(func() {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		rootLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	})

	rootCmd.AddCommand(earliestCmd, paretoCmd, windowCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requireFixture() error {
	if fixturePath == "" {
		return fmt.Errorf("--fixture is required")
	}
	return nil
}
