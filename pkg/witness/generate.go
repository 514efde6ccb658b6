package witness

import "github.com/gitrdm/gokanwitness/pkg/field"

// CircuitData is the subset of the circuit builder's output that witness
// generation needs: wire/row dimensions, the generator vector, and the
// representative map. The constraint evaluator, proof construction, and
// serialization framing are separate collaborators, not modeled here.
type CircuitData interface {
	NumWires() int
	Degree() int
	Generators() []Generator
	RepresentativeMap() RepresentativeMap
}

// Generate is the top-level entry point: it builds a Runtime from the
// supplied CircuitData and runs it to completion over the given inputs.
func Generate(inputs map[Target]field.Element, data CircuitData) (*PartitionWitness, *Stats, error) {
	rt := NewRuntime(data.Generators(), data.RepresentativeMap(), data.NumWires(), data.Degree())
	return rt.Generate(inputs)
}
