// Package circuitdata provides minimal stand-ins for the data a circuit
// builder supplies to witness generation: num_wires, degree, the
// generator vector, and the representative map. It exists only so
// witness.Generate can be exercised from tests and the CLI without a real
// constraint-system compiler.
package circuitdata

import "github.com/gitrdm/gokanwitness/pkg/witness"

// UnionFind builds a RepresentativeMap from a set of copy-constraint
// equivalence pairs, with path compression on lookup.
type UnionFind struct {
	parent map[witness.Target]witness.Target
}

// NewUnionFind returns an empty UnionFind; every target is its own
// representative until Union is called.
func NewUnionFind() *UnionFind {
	return &UnionFind{
		parent: make(map[witness.Target]witness.Target),
	}
}

func (u *UnionFind) find(t witness.Target) witness.Target {
	parent, ok := u.parent[t]
	if !ok {
		return t
	}
	root := u.find(parent)
	u.parent[t] = root // path compression
	return root
}

// Union merges the equivalence classes of a and b. The resulting
// representative is deterministic (the Less-smaller of the two roots),
// so the same sequence of Union calls always produces the same
// RepresentativeMap regardless of map iteration order elsewhere.
func (u *UnionFind) Union(a, b witness.Target) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	var winner, loser witness.Target
	if ra.Less(rb) {
		winner, loser = ra, rb
	} else {
		winner, loser = rb, ra
	}
	u.parent[loser] = winner
}

// Rep implements witness.RepresentativeMap.
func (u *UnionFind) Rep(t witness.Target) witness.Target {
	return u.find(t)
}

// Data is a concrete witness.CircuitData.
type Data struct {
	Wires int
	Rows  int
	Gens  []witness.Generator
	Rep   witness.RepresentativeMap
}

// NumWires implements witness.CircuitData.
func (d *Data) NumWires() int { return d.Wires }

// Degree implements witness.CircuitData.
func (d *Data) Degree() int { return d.Rows }

// Generators implements witness.CircuitData.
func (d *Data) Generators() []witness.Generator { return d.Gens }

// RepresentativeMap implements witness.CircuitData.
func (d *Data) RepresentativeMap() witness.RepresentativeMap { return d.Rep }
