// Package witness implements the witness-generation engine: the
// fixed-point generator runtime that fills in a PartitionWitness from a
// partial assignment and a library of generators.
package witness

import "fmt"

// TargetKind distinguishes the two concrete forms a Target can take.
type TargetKind uint8

const (
	// TargetVirtual identifies a target by an abstract id, used before it
	// has been placed on a wire.
	TargetVirtual TargetKind = iota
	// TargetWire identifies a target by its (row, column) coordinate in
	// the execution trace.
	TargetWire
)

// Target is a tagged identifier for a witness cell: either a virtual id
// or a concrete wire coordinate. Target is a small, comparable value type
// so it can be used directly as a map key.
type Target struct {
	kind    TargetKind
	virtual int
	wire    Wire
}

// VirtualTarget constructs a Target identified by an abstract id.
func VirtualTarget(id int) Target {
	return Target{kind: TargetVirtual, virtual: id}
}

// WireTarget constructs a Target identified by a wire coordinate.
func WireTarget(row, column int) Target {
	return Target{kind: TargetWire, wire: Wire{Row: row, Column: column}}
}

// FromWire constructs a Target from an existing Wire.
func FromWire(w Wire) Target {
	return Target{kind: TargetWire, wire: w}
}

// Kind reports which concrete form this Target takes.
func (t Target) Kind() TargetKind {
	return t.kind
}

// IsVirtual reports whether t is a VirtualTarget.
func (t Target) IsVirtual() bool {
	return t.kind == TargetVirtual
}

// IsWire reports whether t is a WireTarget.
func (t Target) IsWire() bool {
	return t.kind == TargetWire
}

// VirtualID returns the virtual id. Behavior is undefined if !t.IsVirtual().
func (t Target) VirtualID() int {
	return t.virtual
}

// WireValue returns the wire coordinate. Behavior is undefined if !t.IsWire().
func (t Target) WireValue() Wire {
	return t.wire
}

// Less gives Target a total order: virtual targets sort before wire
// targets, then by id / (row, column). Used wherever iteration order must
// be deterministic (e.g. UnionFind's choice of representative).
func (t Target) Less(other Target) bool {
	if t.kind != other.kind {
		return t.kind < other.kind
	}
	if t.kind == TargetVirtual {
		return t.virtual < other.virtual
	}
	return t.wire.Less(other.wire)
}

// String renders t for debug printing and error messages.
func (t Target) String() string {
	switch t.kind {
	case TargetVirtual:
		return fmt.Sprintf("VirtualTarget(%d)", t.virtual)
	case TargetWire:
		return fmt.Sprintf("Wire(row=%d, col=%d)", t.wire.Row, t.wire.Column)
	default:
		return "Target(?)"
	}
}

// ExtensionTarget bundles D Targets representing the base-field
// coordinates of one degree-D extension-field value.
type ExtensionTarget struct {
	Components []Target
}

// NewExtensionTarget builds an ExtensionTarget from its component Targets.
func NewExtensionTarget(components []Target) ExtensionTarget {
	out := make([]Target, len(components))
	copy(out, components)
	return ExtensionTarget{Components: out}
}

// Degree returns the number of base-field components.
func (et ExtensionTarget) Degree() int {
	return len(et.Components)
}
