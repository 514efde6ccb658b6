package witness

import (
	"sort"
	"sync/atomic"

	"github.com/gitrdm/gokanwitness/pkg/field"
)

// Stats holds atomic counters describing one Generate run, reported back
// to callers for diagnostics. The runtime itself never logs; these
// counters are its only observability surface.
type Stats struct {
	Rounds                   int64
	GeneratorRuns            int64
	GeneratorsRetired        int64
	WritesApplied            int64
	RepresentativesPopulated int64
}

// Snapshot returns a copy of s suitable for inspection after Generate
// returns. Safe to call concurrently with an in-flight run, though
// Generate itself is single-threaded.
func (s *Stats) Snapshot() Stats {
	return Stats{
		Rounds:                   atomic.LoadInt64(&s.Rounds),
		GeneratorRuns:            atomic.LoadInt64(&s.GeneratorRuns),
		GeneratorsRetired:        atomic.LoadInt64(&s.GeneratorsRetired),
		WritesApplied:            atomic.LoadInt64(&s.WritesApplied),
		RepresentativesPopulated: atomic.LoadInt64(&s.RepresentativesPopulated),
	}
}

// WatchIndex maps a watched representative to the indices of generators
// that should be re-queued when that representative is populated. Built
// once, up front, from every generator's watch list reduced through the
// representative map. Watch-list entries must be reduced through rep
// before insertion; indexing a raw target silently stalls any generator
// whose watched target is aliased to another name by a copy constraint.
type WatchIndex map[Target][]int

// BuildWatchIndex constructs a WatchIndex from generators, reducing every
// watched target through rep.
func BuildWatchIndex(generators []Generator, rep RepresentativeMap) WatchIndex {
	idx := make(WatchIndex)
	for i, g := range generators {
		for _, t := range g.WatchList() {
			r := rep.Rep(t)
			idx[r] = append(idx[r], i)
		}
	}
	return idx
}

// Runtime owns the generator vector and all bookkeeping for a single
// witness-generation run. Nothing about this state is shared across calls
// to Generate.
type Runtime struct {
	Generators []Generator
	Rep        RepresentativeMap
	WatchIndex WatchIndex
	NumWires   int
	Degree     int
}

// NewRuntime constructs a Runtime, building the watch index from
// generators and rep.
func NewRuntime(generators []Generator, rep RepresentativeMap, numWires, degree int) *Runtime {
	return &Runtime{
		Generators: generators,
		Rep:        rep,
		WatchIndex: BuildWatchIndex(generators, rep),
		NumWires:   numWires,
		Degree:     degree,
	}
}

// Generate runs the fixed-point scheduler: every input is written first,
// then generators run in rounds until the pending queue is empty. Returns
// the populated PartitionWitness, or *InconsistentError /
// *GeneratorsStalledError on failure.
func (rt *Runtime) Generate(inputs map[Target]field.Element) (*PartitionWitness, *Stats, error) {
	w := New(rt.NumWires, rt.Degree, rt.Rep)
	stats := &Stats{}

	for t, v := range inputs {
		if err := w.Set(t, v); err != nil {
			return nil, stats, err
		}
	}

	n := len(rt.Generators)
	pending := make([]int, n)
	for i := range pending {
		pending[i] = i
	}
	expired := make([]bool, n)
	remaining := n

	buf := NewGeneratedValues(8)

	for len(pending) > 0 {
		atomic.AddInt64(&stats.Rounds, 1)
		var next []int

		for _, idx := range pending {
			if expired[idx] {
				continue
			}
			atomic.AddInt64(&stats.GeneratorRuns, 1)
			finished := rt.Generators[idx].Run(w, buf)
			if finished {
				expired[idx] = true
				remaining--
				atomic.AddInt64(&stats.GeneratorsRetired, 1)
			}

			for _, tv := range buf.drain() {
				atomic.AddInt64(&stats.WritesApplied, 1)
				rep, populated, err := w.SetReturningRep(tv.target, tv.value)
				if err != nil {
					return nil, stats, err
				}
				if !populated {
					continue
				}
				atomic.AddInt64(&stats.RepresentativesPopulated, 1)
				for _, watcher := range rt.WatchIndex[rep] {
					if !expired[watcher] {
						next = append(next, watcher)
					}
				}
			}
		}

		pending = next
	}

	if remaining != 0 {
		var unfinished []string
		watched := make(map[string][]Target)
		for i, g := range rt.Generators {
			if expired[i] {
				continue
			}
			id := g.ID()
			unfinished = append(unfinished, id)
			reps := make([]Target, 0, len(g.WatchList()))
			for _, t := range g.WatchList() {
				reps = append(reps, rt.Rep.Rep(t))
			}
			watched[id] = append(watched[id], reps...)
		}
		sort.Strings(unfinished)
		return nil, stats, &GeneratorsStalledError{
			UnfinishedIDs: unfinished,
			WatchedReps:   watched,
		}
	}

	return w, stats, nil
}
