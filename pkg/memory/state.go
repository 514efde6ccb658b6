package memory

import "math/big"

// State is a growable sequence of contexts, seeded with context 0 whose
// Code segment is pre-populated with the kernel bytecode. The segment
// layout (how many segment kinds, which slot is Code) describes the
// simulated VM and is supplied by the host.
type State struct {
	contexts    []*Context
	numSegments int
}

// NewState seeds a State with one context (context 0) whose Code segment
// holds kernelCode, one byte per word. numSegments is the total number of
// segment kinds the simulated VM defines; codeSegmentIndex identifies
// which of those slots is Code.
func NewState(kernelCode []byte, numSegments, codeSegmentIndex int) *State {
	s := &State{numSegments: numSegments}
	ctx0 := NewContext(numSegments)
	code := ctx0.Segment(codeSegmentIndex)
	for i, b := range kernelCode {
		code.Set(i, big.NewInt(int64(b)))
	}
	s.contexts = []*Context{ctx0}
	return s
}

// ensureContext grows the context list so that index ctx is valid.
func (s *State) ensureContext(ctx int) *Context {
	for len(s.contexts) <= ctx {
		s.contexts = append(s.contexts, NewContext(s.numSegments))
	}
	return s.contexts[ctx]
}

// Get returns the word stored at addr, or zero if it was never written.
func (s *State) Get(addr Address) *big.Int {
	if addr.Context < 0 || addr.Context >= len(s.contexts) {
		return new(big.Int)
	}
	return s.contexts[addr.Context].Segment(addr.Segment).Get(addr.Virt)
}

// Set writes value at addr, growing the context/segment space as needed.
func (s *State) Set(addr Address, value *big.Int) {
	s.ensureContext(addr.Context).Segment(addr.Segment).Set(addr.Virt, value)
}

// ApplyOps replays ops against s: write-kind ops update state, read-kind
// ops are no-ops. Replay is filter-agnostic; a padding row is always
// constructed as a Read and therefore never mutates state.
func (s *State) ApplyOps(ops []Op) {
	for _, op := range ops {
		if op.Kind == OpWrite {
			s.Set(op.Address, op.Value)
		}
	}
}

// NumContexts reports how many contexts have been allocated so far.
func (s *State) NumContexts() int {
	return len(s.contexts)
}
