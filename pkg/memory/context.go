package memory

// Context is a fixed-size array of segments, one slot per segment kind.
// The segment-kind space (how many segments, and which index is Code) is
// supplied by the host at construction time, since it is specific to the
// simulated VM's ISA.
type Context struct {
	segments []*Segment
}

// NewContext allocates a Context with numSegments empty segments.
func NewContext(numSegments int) *Context {
	segs := make([]*Segment, numSegments)
	for i := range segs {
		segs[i] = NewSegment()
	}
	return &Context{segments: segs}
}

// Segment returns the segment at the given index. Every segment is
// allocated up front by NewContext; an out-of-range index panics.
func (c *Context) Segment(index int) *Segment {
	return c.segments[index]
}

// NumSegments reports how many segment slots this context has.
func (c *Context) NumSegments() int {
	return len(c.segments)
}
