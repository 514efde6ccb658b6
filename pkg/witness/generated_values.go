package witness

import "github.com/gitrdm/gokanwitness/pkg/field"

// targetValue is one pending write emitted by a generator invocation.
type targetValue struct {
	target Target
	value  field.Element
}

// GeneratedValues is the scratch buffer a single generator invocation
// writes into. The runtime owns exactly one GeneratedValues per run,
// passing it to every generator and draining it immediately after each
// call, so generators never need to allocate their own buffer.
type GeneratedValues struct {
	values []targetValue
}

// NewGeneratedValues returns an empty buffer with room for capacity
// writes.
func NewGeneratedValues(capacity int) *GeneratedValues {
	return &GeneratedValues{values: make([]targetValue, 0, capacity)}
}

// Set appends a (target, value) pair to the buffer.
func (g *GeneratedValues) Set(t Target, v field.Element) {
	g.values = append(g.values, targetValue{target: t, value: v})
}

// SetExtension appends one write per base-field component of an
// extension-field value.
func (g *GeneratedValues) SetExtension(et ExtensionTarget, v field.Extension) {
	for i, comp := range et.Components {
		g.Set(comp, v.Coefficient(i))
	}
}

// Len reports how many pending writes are buffered.
func (g *GeneratedValues) Len() int {
	return len(g.values)
}

// drain returns the buffered writes and empties the buffer in place, so
// the same backing array is reused on the next invocation without a fresh
// allocation.
func (g *GeneratedValues) drain() []targetValue {
	out := g.values
	g.values = g.values[:0]
	return out
}
