package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/gitrdm/gokanwitness/internal/circuitdata"
	"github.com/gitrdm/gokanwitness/pkg/witness"
	"github.com/spf13/cobra"
)

var traceFlag bool

var generateCmd = &cobra.Command{
	Use:   "generate <fixture.json>",
	Short: "Run witness generation against a JSON circuit fixture",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&traceFlag, "stats", false, "print runtime statistics after generation")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	fixture, err := circuitdata.LoadFixture(raw)
	if err != nil {
		return err
	}

	data, inputs, err := fixture.Build()
	if err != nil {
		return err
	}

	w, stats, err := witness.Generate(inputs, data)
	if err != nil {
		var stalled *witness.GeneratorsStalledError
		if errors.As(err, &stalled) {
			cmd.Printf("generators stalled: %d unfinished: %v\n", len(stalled.UnfinishedIDs), stalled.UnfinishedIDs)
			return err
		}
		return err
	}

	cmd.Printf("witness generation complete: %d wires x %d rows\n", w.NumWires(), w.Degree())
	if traceFlag {
		s := stats.Snapshot()
		cmd.Printf("rounds=%d generator_runs=%d retired=%d writes=%d reps_populated=%d\n",
			s.Rounds, s.GeneratorRuns, s.GeneratorsRetired, s.WritesApplied, s.RepresentativesPopulated)
	}
	return nil
}
