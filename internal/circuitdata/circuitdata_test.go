package circuitdata

import (
	"testing"

	"github.com/gitrdm/gokanwitness/pkg/witness"
)

func TestUnionFindMergesTransitively(t *testing.T) {
	uf := NewUnionFind()
	a := witness.VirtualTarget(0)
	b := witness.VirtualTarget(1)
	c := witness.VirtualTarget(2)

	uf.Union(a, b)
	uf.Union(b, c)

	if uf.Rep(a) != uf.Rep(c) {
		t.Errorf("Rep(a) = %s, Rep(c) = %s, want equal after transitive union", uf.Rep(a), uf.Rep(c))
	}
}

// Union's winner choice must be deterministic regardless of argument
// order, since the same set of equivalence pairs must always produce the
// same RepresentativeMap.
func TestUnionFindDeterministicRepChoice(t *testing.T) {
	a := witness.VirtualTarget(5)
	b := witness.VirtualTarget(1)

	uf1 := NewUnionFind()
	uf1.Union(a, b)

	uf2 := NewUnionFind()
	uf2.Union(b, a)

	if uf1.Rep(a) != uf2.Rep(a) {
		t.Errorf("Union(a,b) and Union(b,a) produced different representatives: %s vs %s", uf1.Rep(a), uf2.Rep(a))
	}
	// The smaller target (VirtualTarget(1)) must win, per Target.Less.
	if uf1.Rep(a) != b {
		t.Errorf("Rep(a) = %s, want %s (the Less-smaller target)", uf1.Rep(a), b)
	}
}

func TestUnionFindUnrelatedTargetsStayDistinct(t *testing.T) {
	uf := NewUnionFind()
	a := witness.VirtualTarget(0)
	b := witness.VirtualTarget(1)
	if uf.Rep(a) == uf.Rep(b) {
		t.Error("unrelated targets should not share a representative")
	}
}

func TestLoadFixtureAndBuildDrivesGeneration(t *testing.T) {
	raw := []byte(`{
		"modulus": "2305843009213693951",
		"num_wires": 1,
		"degree": 1,
		"equivalences": [],
		"inputs": [
			{"target": {"kind": "virtual", "id": 0}, "value": "11"}
		],
		"generators": [
			{"kind": "copy", "src": {"kind": "virtual", "id": 0}, "dst": {"kind": "wire", "row": 0, "col": 0}}
		]
	}`)

	fixture, err := LoadFixture(raw)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	data, inputs, err := fixture.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	w, _, err := witness.Generate(inputs, data)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, err := w.Get(witness.WireTarget(0, 0))
	if err != nil {
		t.Fatalf("Get(wire 0,0): %v", err)
	}
	if got.String() != "11" {
		t.Errorf("wire(0,0) = %s, want 11", got)
	}
}

func TestLoadFixtureRejectsUnknownGeneratorKind(t *testing.T) {
	raw := []byte(`{
		"modulus": "2305843009213693951",
		"num_wires": 0,
		"degree": 0,
		"generators": [{"kind": "bogus"}]
	}`)
	fixture, err := LoadFixture(raw)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if _, _, err := fixture.Build(); err == nil {
		t.Error("expected Build to reject an unknown generator kind")
	}
}
