package cmd

import (
	"math/big"

	"github.com/gitrdm/gokanwitness/pkg/memory"
	"github.com/spf13/cobra"
)

const (
	numSegments      = 2
	codeSegmentIndex = 0
	numGPChannels    = 1
	numChannels      = 1 + numGPChannels
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Run a write-then-read memory-trace demo and print the resulting op stream",
	RunE:  runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)
}

// runTrace demonstrates the memory bus on an empty State: write 42 at
// clock 0 on the Code channel, then read it back at clock 1 on GP(0).
// The read observes 42 and the two ops carry timestamps 0 and
// numChannels+1.
func runTrace(cmd *cobra.Command, args []string) error {
	state := memory.NewState(nil, numSegments, codeSegmentIndex)
	addr := memory.Address{Context: 0, Segment: codeSegmentIndex, Virt: 5}

	write := memory.NewOp(memory.CodeChannel, 0, numChannels, addr, memory.OpWrite, big.NewInt(42))
	state.ApplyOps([]memory.Op{write})

	gp0 := memory.GPChannel(0, numGPChannels)
	read := memory.NewOp(gp0, 1, numChannels, addr, memory.OpRead, state.Get(addr))

	cmd.Printf("write: %s\n", write)
	cmd.Printf("read:  %s\n", read)
	cmd.Printf("expected read value=42, timestamps 0 and %d\n", numChannels+1)
	return nil
}
