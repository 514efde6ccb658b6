package witness

import (
	"fmt"

	"github.com/gitrdm/gokanwitness/pkg/field"
)

// PartitionWitness is the witness store: a partial function from target to
// field element, keyed by representative under the copy-constraint
// equivalence relation. Reads and writes by any target resolve through
// RepresentativeMap first.
//
// The wire-form representatives of the partition are stored in a dense
// (num_wires x degree) grid, sized up front. Non-wire representatives
// (virtual targets that head their own equivalence class) live in a
// sparse map, since their id space is unbounded.
type PartitionWitness struct {
	numWires int
	degree   int
	rep      RepresentativeMap

	// grid[row][column] holds the value for WireTarget(row, column), when
	// that wire is itself a representative. present[row][column] tracks
	// whether the cell has been written, since field.Element has no
	// natural "absent" value.
	grid    [][]field.Element
	present [][]bool

	// sparse holds values for non-wire representatives (virtual targets
	// that are themselves representatives of their equivalence class).
	sparse map[Target]field.Element
}

// New allocates a PartitionWitness sized for numWires columns and degree
// rows, with every cell absent. rep must satisfy Rep(Rep(t)) == Rep(t) for
// every Target used during generation.
func New(numWires, degree int, rep RepresentativeMap) *PartitionWitness {
	grid := make([][]field.Element, degree)
	present := make([][]bool, degree)
	for r := 0; r < degree; r++ {
		grid[r] = make([]field.Element, numWires)
		present[r] = make([]bool, numWires)
	}
	return &PartitionWitness{
		numWires: numWires,
		degree:   degree,
		rep:      rep,
		grid:     grid,
		present:  present,
		sparse:   make(map[Target]field.Element),
	}
}

// NumWires returns the number of wire columns this witness was allocated
// for.
func (w *PartitionWitness) NumWires() int {
	return w.numWires
}

// Degree returns the number of rows (trace length) this witness was
// allocated for.
func (w *PartitionWitness) Degree() int {
	return w.degree
}

func (w *PartitionWitness) tryGetRep(rep Target) (field.Element, bool) {
	if rep.IsWire() {
		wv := rep.WireValue()
		if wv.Row < 0 || wv.Row >= w.degree || wv.Column < 0 || wv.Column >= w.numWires {
			return field.Element{}, false
		}
		if !w.present[wv.Row][wv.Column] {
			return field.Element{}, false
		}
		return w.grid[wv.Row][wv.Column], true
	}
	v, ok := w.sparse[rep]
	return v, ok
}

func (w *PartitionWitness) setRep(rep Target, v field.Element) {
	if rep.IsWire() {
		wv := rep.WireValue()
		w.grid[wv.Row][wv.Column] = v
		w.present[wv.Row][wv.Column] = true
		return
	}
	w.sparse[rep] = v
}

// TryGet returns the value stored at rep(t), or false if absent. Never
// fails; this is the "not yet ready" check generators should use before
// deciding whether to return false from Run.
func (w *PartitionWitness) TryGet(t Target) (field.Element, bool) {
	return w.tryGetRep(w.rep.Rep(t))
}

// Get returns the value stored at rep(t), failing with a *NotPopulatedError
// if absent.
func (w *PartitionWitness) Get(t Target) (field.Element, error) {
	v, ok := w.TryGet(t)
	if !ok {
		return field.Element{}, &NotPopulatedError{Target: t}
	}
	return v, nil
}

// Contains reports whether rep(t) currently has a stored value.
func (w *PartitionWitness) Contains(t Target) bool {
	_, ok := w.TryGet(t)
	return ok
}

// ContainsAll reports whether every target in ts currently has a stored
// value.
func (w *PartitionWitness) ContainsAll(ts []Target) bool {
	for _, t := range ts {
		if !w.Contains(t) {
			return false
		}
	}
	return true
}

// Set writes v at rep(t). A first write stores the value; a rewrite with
// an equal value is a no-op; a rewrite with an unequal value fails with
// *InconsistentError.
func (w *PartitionWitness) Set(t Target, v field.Element) error {
	_, _, err := w.setReturningRep(t, v)
	return err
}

// SetReturningRep is the write primitive the runtime uses to decide which
// watchers to wake: it behaves like Set, but additionally returns
// rep(t) together with a flag reporting whether this write transitioned
// the cell from absent to present. Equal rewrites report populated=false
// so the runtime does not re-wake watchers for old news; a round in which
// no new representative is populated must terminate the loop.
func (w *PartitionWitness) SetReturningRep(t Target, v field.Element) (rep Target, populated bool, err error) {
	return w.setReturningRep(t, v)
}

func (w *PartitionWitness) setReturningRep(t Target, v field.Element) (Target, bool, error) {
	rep := w.rep.Rep(t)
	existing, ok := w.tryGetRep(rep)
	if !ok {
		w.setRep(rep, v)
		return rep, true, nil
	}
	if existing.Equal(v) {
		return rep, false, nil
	}
	return rep, false, &InconsistentError{
		Target:    t,
		Existing:  existing.String(),
		Attempted: v.String(),
	}
}

// SetExtensionTarget decomposes a degree-D extension value into D
// base-field writes, one per component Target. Returns an error if the
// component count doesn't match the value's degree, or if any component
// write is inconsistent.
func (w *PartitionWitness) SetExtensionTarget(et ExtensionTarget, v field.Extension) error {
	if et.Degree() != v.Degree() {
		return fmt.Errorf("witness: extension degree mismatch: target has %d components, value has %d", et.Degree(), v.Degree())
	}
	for i, comp := range et.Components {
		if err := w.Set(comp, v.Coefficient(i)); err != nil {
			return err
		}
	}
	return nil
}
