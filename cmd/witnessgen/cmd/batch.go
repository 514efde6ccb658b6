package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gitrdm/gokanwitness/internal/circuitdata"
	"github.com/gitrdm/gokanwitness/internal/parallel"
	"github.com/gitrdm/gokanwitness/pkg/witness"
	"github.com/spf13/cobra"
)

var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <fixture.json> [fixture.json...]",
	Short: "Run witness generation for many fixtures concurrently over a worker pool",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "max concurrent workers (default: number of CPUs)")
	rootCmd.AddCommand(batchCmd)
}

// runBatch runs one witness.Generate call per fixture path, spread
// across a bounded parallel.WorkerPool. Fixtures are fully independent of
// each other, so they can share a pool; each fixture's Runtime.Generate
// still runs single-threaded.
func runBatch(cmd *cobra.Command, paths []string) error {
	pool := parallel.NewDynamicWorkerPool(batchWorkers, 1)
	defer pool.Shutdown()

	dd := pool.GetDeadlockDetector()
	ctx := context.Background()

	results := make([]string, len(paths))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		i, path := i, path
		task := func() {
			defer wg.Done()
			dd.RegisterTask(path, "witness generation for "+path)
			defer dd.UnregisterTask(path)

			summary := runOneFixture(path)
			mu.Lock()
			results[i] = summary
			mu.Unlock()
		}
		if err := pool.Submit(ctx, task); err != nil {
			return fmt.Errorf("submit %s: %w", path, err)
		}
	}

	wg.Wait()
	pool.Shutdown() // finalizes the pool's ExecutionStats

	for _, line := range results {
		cmd.Println(line)
	}

	stats := pool.GetStats().GetStats()
	cmd.Printf("batch complete: %d fixtures in %v (%.1f/s)\n",
		len(paths), stats.TotalExecutionTime.Round(time.Millisecond), stats.TasksPerSecond)
	return nil
}

func runOneFixture(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("%s: read error: %v", path, err)
	}

	fixture, err := circuitdata.LoadFixture(raw)
	if err != nil {
		return fmt.Sprintf("%s: %v", path, err)
	}

	data, inputs, err := fixture.Build()
	if err != nil {
		return fmt.Sprintf("%s: %v", path, err)
	}

	w, _, err := witness.Generate(inputs, data)
	if err != nil {
		return fmt.Sprintf("%s: FAILED: %v", path, err)
	}

	return fmt.Sprintf("%s: OK (%d wires x %d rows)", path, w.NumWires(), w.Degree())
}
