package witness

import (
	"errors"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/gitrdm/gokanwitness/pkg/field"
)

var runtimeModulus = big.NewInt(2305843009213693951)

// A single CopyGenerator copies an input to a wire target.
func TestSingleCopy(t *testing.T) {
	src := VirtualTarget(0)
	dst := WireTarget(0, 0)
	gens := []Generator{Adapt(CopyGenerator{Src: src, Dst: dst})}

	rt := NewRuntime(gens, IdentityRepMap, 1, 1)
	w, _, err := rt.Generate(map[Target]field.Element{
		src: field.NewUint64(runtimeModulus, 7),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, err := w.Get(dst)
	if err != nil {
		t.Fatalf("Get(dst): %v", err)
	}
	if !got.Equal(field.NewUint64(runtimeModulus, 7)) {
		t.Errorf("dst = %s, want 7", got)
	}
}

// A transitive three-hop copy chain a -> b -> c -> d.
func TestTransitiveCopyChain(t *testing.T) {
	a := VirtualTarget(0)
	b := VirtualTarget(1)
	c := VirtualTarget(2)
	d := VirtualTarget(3)

	// Deliberately registered out of dependency order, so the fixed-point
	// scheduler, not registration order, must drive completion.
	gens := []Generator{
		Adapt(CopyGenerator{Src: c, Dst: d}),
		Adapt(CopyGenerator{Src: a, Dst: b}),
		Adapt(CopyGenerator{Src: b, Dst: c}),
	}

	rt := NewRuntime(gens, IdentityRepMap, 0, 0)
	w, stats, err := rt.Generate(map[Target]field.Element{
		a: field.NewUint64(runtimeModulus, 99),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, target := range []Target{b, c, d} {
		got, err := w.Get(target)
		if err != nil {
			t.Fatalf("Get(%s): %v", target, err)
		}
		if !got.Equal(field.NewUint64(runtimeModulus, 99)) {
			t.Errorf("%s = %s, want 99", target, got)
		}
	}
	snap := stats.Snapshot()
	if snap.GeneratorsRetired != 3 {
		t.Errorf("GeneratorsRetired = %d, want 3", snap.GeneratorsRetired)
	}
}

// NonzeroTestGenerator on a zero input writes dummy = 1.
func TestNonzeroTestZeroBranch(t *testing.T) {
	toTest := VirtualTarget(0)
	dummy := VirtualTarget(1)
	gens := []Generator{Adapt(NonzeroTestGenerator{ToTest: toTest, Dummy: dummy})}

	rt := NewRuntime(gens, IdentityRepMap, 0, 0)
	w, _, err := rt.Generate(map[Target]field.Element{
		toTest: field.Zero(runtimeModulus),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, err := w.Get(dummy)
	if err != nil {
		t.Fatalf("Get(dummy): %v", err)
	}
	if !got.Equal(field.One(runtimeModulus)) {
		t.Errorf("dummy = %s, want 1", got)
	}
}

// NonzeroTestGenerator on a nonzero input writes its inverse.
func TestNonzeroTestNonzeroBranch(t *testing.T) {
	toTest := VirtualTarget(0)
	dummy := VirtualTarget(1)
	gens := []Generator{Adapt(NonzeroTestGenerator{ToTest: toTest, Dummy: dummy})}

	rt := NewRuntime(gens, IdentityRepMap, 0, 0)
	five := field.NewUint64(runtimeModulus, 5)
	w, _, err := rt.Generate(map[Target]field.Element{toTest: five})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, err := w.Get(dummy)
	if err != nil {
		t.Fatalf("Get(dummy): %v", err)
	}
	if !got.Mul(five).Equal(field.One(runtimeModulus)) {
		t.Errorf("dummy * 5 = %s, want 1", got.Mul(five))
	}
}

// A CopyGenerator whose Src never gets populated must stall, reported as
// a *GeneratorsStalledError naming it by id.
func TestStall(t *testing.T) {
	src := VirtualTarget(0)
	dst := VirtualTarget(1)
	gens := []Generator{Adapt(CopyGenerator{Src: src, Dst: dst})}

	rt := NewRuntime(gens, IdentityRepMap, 0, 0)
	_, _, err := rt.Generate(nil)
	if err == nil {
		t.Fatal("expected a stall error, got nil")
	}
	var stalled *GeneratorsStalledError
	if !errors.As(err, &stalled) {
		t.Fatalf("expected *GeneratorsStalledError, got %T: %v", err, err)
	}
	if len(stalled.UnfinishedIDs) != 1 || stalled.UnfinishedIDs[0] != "CopyGenerator" {
		t.Errorf("UnfinishedIDs = %v, want [CopyGenerator]", stalled.UnfinishedIDs)
	}
}

// Copy-constraint merging: a and b are unioned into the same equivalence
// class; a CopyGenerator watching b (not a) must still wake up when a is
// populated directly, because BuildWatchIndex reduces every watch-list
// entry through rep before indexing.
func TestCopyConstraintMerging(t *testing.T) {
	a := VirtualTarget(0)
	b := VirtualTarget(1)
	dst := VirtualTarget(2)

	rep := unionRep{pairs: [][2]Target{{a, b}}}
	gens := []Generator{Adapt(CopyGenerator{Src: b, Dst: dst})}

	rt := NewRuntime(gens, rep, 0, 0)
	w, _, err := rt.Generate(map[Target]field.Element{
		a: field.NewUint64(runtimeModulus, 13),
	})
	if err != nil {
		t.Fatalf("Generate: %v (copy-constraint merge should not stall)", err)
	}
	got, err := w.Get(dst)
	if err != nil {
		t.Fatalf("Get(dst): %v", err)
	}
	if !got.Equal(field.NewUint64(runtimeModulus, 13)) {
		t.Errorf("dst = %s, want 13", got)
	}
}

// unionRep is a minimal RepresentativeMap that merges exactly the given
// pairs into a single class, represented by the lexicographically smaller
// target per Target.Less, without pulling in the circuitdata package (which
// would make this an import cycle: circuitdata already imports witness).
type unionRep struct {
	pairs [][2]Target
}

func (u unionRep) Rep(t Target) Target {
	best := t
	changed := true
	for changed {
		changed = false
		for _, p := range u.pairs {
			if p[0] == best && p[1].Less(best) {
				best = p[1]
				changed = true
			}
			if p[1] == best && p[0].Less(best) {
				best = p[0]
				changed = true
			}
		}
	}
	return best
}

// Inconsistent writes to the same representative must fail, while an equal
// rewrite is a harmless no-op.
func TestInconsistentAndEqualRewrites(t *testing.T) {
	target := VirtualTarget(0)
	w := New(1, 1, IdentityRepMap)

	if err := w.Set(target, field.NewUint64(runtimeModulus, 1)); err != nil {
		t.Fatalf("first Set: %v", err)
	}
	if err := w.Set(target, field.NewUint64(runtimeModulus, 1)); err != nil {
		t.Errorf("equal rewrite should be a no-op, got error: %v", err)
	}
	err := w.Set(target, field.NewUint64(runtimeModulus, 2))
	var inconsistent *InconsistentError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("expected *InconsistentError, got %T: %v", err, err)
	}
}

// A generator that retires having written nothing, with no watchers left
// pending on it, does not cause a stall.
func TestGeneratorRetiresWithoutWriting(t *testing.T) {
	gens := []Generator{Adapt(noopGenerator{})}
	rt := NewRuntime(gens, IdentityRepMap, 0, 0)
	if _, _, err := rt.Generate(nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

type noopGenerator struct{}

func (noopGenerator) ID() string                                        { return "noopGenerator" }
func (noopGenerator) Dependencies() []Target                            { return nil }
func (noopGenerator) RunOnce(w *PartitionWitness, buf *GeneratedValues) {}
func (noopGenerator) Serialize(dst *Buffer) error                       { return nil }

// seededSource is a deterministic field.RandSource for reproducing runs.
type seededSource struct {
	rng *mrand.Rand
}

func (s seededSource) Int(m *big.Int) (*big.Int, error) {
	return new(big.Int).Rand(s.rng, m), nil
}

// Two runs with identical inputs, generators, rep map, and RNG seed must
// produce identical witnesses, including through a RandomValueGenerator.
func TestDeterministicAcrossRuns(t *testing.T) {
	randTarget := VirtualTarget(0)
	copyDst := VirtualTarget(1)
	constWire := WireTarget(0, 0)

	run := func() (*PartitionWitness, error) {
		gens := []Generator{
			Adapt(RandomValueGenerator{
				Target:  randTarget,
				Modulus: runtimeModulus,
				Source:  seededSource{rng: mrand.New(mrand.NewSource(7))},
			}),
			Adapt(CopyGenerator{Src: randTarget, Dst: copyDst}),
			Adapt(ConstantGenerator{
				Row:       0,
				WireIndex: 0,
				Constant:  field.NewUint64(runtimeModulus, 21),
			}),
		}
		rt := NewRuntime(gens, IdentityRepMap, 1, 1)
		w, _, err := rt.Generate(nil)
		return w, err
	}

	w1, err := run()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	w2, err := run()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	for _, target := range []Target{randTarget, copyDst, constWire} {
		a, err := w1.Get(target)
		if err != nil {
			t.Fatalf("first run Get(%s): %v", target, err)
		}
		b, err := w2.Get(target)
		if err != nil {
			t.Fatalf("second run Get(%s): %v", target, err)
		}
		if !a.Equal(b) {
			t.Errorf("%s differs between runs: %s vs %s", target, a, b)
		}
	}
}
