package memory

import (
	"fmt"
	"math/big"

	"github.com/gitrdm/gokanwitness/pkg/field"
	"github.com/gitrdm/gokanwitness/pkg/witness"
)

// Bus couples a simulated State with the shared clock/channel bookkeeping
// the generator family needs to keep its op stream strictly ordered. One
// Bus is shared across every memory generator in a single
// witness-generation run; it belongs to the VM-simulation context, not to
// the witness.
type Bus struct {
	State       *State
	NumChannels int
	clock       int
	trace       []Op
}

// NewBus constructs a Bus over state with the given channel count
// (1 + NumGPChannels).
func NewBus(state *State, numChannels int) *Bus {
	return &Bus{State: state, NumChannels: numChannels}
}

// Trace returns the full op stream recorded so far, in emission order.
func (b *Bus) Trace() []Op {
	return b.trace
}

// Tick advances the bus's clock and returns the value it had before
// advancing, so callers can tag a batch of ops issued "at the same
// instant" with one clock value before moving on.
func (b *Bus) Tick() int {
	c := b.clock
	b.clock++
	return c
}

// emit issues op against State (applying writes immediately, per
// apply_ops semantics) and appends it to the trace.
func (b *Bus) emit(channel Channel, clock int, addr Address, kind OpKind, value *big.Int) Op {
	op := NewOp(channel, clock, b.NumChannels, addr, kind, value)
	b.State.ApplyOps([]Op{op})
	b.trace = append(b.trace, op)
	return op
}

// ReadGenerator issues a timestamped Read against the Bus's memory state
// and writes the resulting value (as a field element) to a circuit
// target representing the memory-bus wire. Dependencies are empty: the
// address components are fixed at construction time rather than read from
// the witness, so the address is known before the generator runs.
type ReadGenerator struct {
	Bus     *Bus
	Channel Channel
	Clock   int
	Address Address
	Out     witness.Target
	Modulus *big.Int
}

// ID implements witness.SimpleGenerator.
func (g ReadGenerator) ID() string { return "MemoryReadGenerator" }

// Dependencies implements witness.SimpleGenerator.
func (g ReadGenerator) Dependencies() []witness.Target { return nil }

// RunOnce implements witness.SimpleGenerator.
func (g ReadGenerator) RunOnce(w *witness.PartitionWitness, buf *witness.GeneratedValues) {
	op := g.Bus.emit(g.Channel, g.Clock, g.Address, OpRead, g.Bus.State.Get(g.Address))
	buf.Set(g.Out, field.New(g.Modulus, op.Value))
}

// Serialize implements witness.SimpleGenerator. Bus is runtime state, not
// serialized generator payload, matching how the primitive generators in
// pkg/witness exclude injected runtime collaborators from their wire form.
func (g ReadGenerator) Serialize(dst *witness.Buffer) error {
	dst.WriteInt(g.Channel.Index())
	dst.WriteInt(g.Clock)
	dst.WriteInt(g.Address.Context)
	dst.WriteInt(g.Address.Segment)
	dst.WriteInt(g.Address.Virt)
	dst.WriteTarget(g.Out)
	dst.WriteBytes(g.Modulus.Bytes())
	return nil
}

// WriteGenerator issues a timestamped Write of a known value against the
// Bus's memory state and echoes that value to a circuit target
// representing the memory-bus wire. The write's value comes from a prior
// witness computation, so Src is a dependency.
type WriteGenerator struct {
	Bus     *Bus
	Channel Channel
	Clock   int
	Address Address
	Src     witness.Target
	Out     witness.Target
	Modulus *big.Int
}

// ID implements witness.SimpleGenerator.
func (g WriteGenerator) ID() string { return "MemoryWriteGenerator" }

// Dependencies implements witness.SimpleGenerator.
func (g WriteGenerator) Dependencies() []witness.Target { return []witness.Target{g.Src} }

// RunOnce implements witness.SimpleGenerator.
func (g WriteGenerator) RunOnce(w *witness.PartitionWitness, buf *witness.GeneratedValues) {
	v, err := w.Get(g.Src)
	if err != nil {
		panic(err)
	}
	value := new(big.Int).SetBytes(v.Bytes())
	op := g.Bus.emit(g.Channel, g.Clock, g.Address, OpWrite, value)
	buf.Set(g.Out, field.New(g.Modulus, op.Value))
}

// Serialize implements witness.SimpleGenerator.
func (g WriteGenerator) Serialize(dst *witness.Buffer) error {
	dst.WriteInt(g.Channel.Index())
	dst.WriteInt(g.Clock)
	dst.WriteInt(g.Address.Context)
	dst.WriteInt(g.Address.Segment)
	dst.WriteInt(g.Address.Virt)
	dst.WriteTarget(g.Src)
	dst.WriteTarget(g.Out)
	dst.WriteBytes(g.Modulus.Bytes())
	return nil
}

// channelFromIndex is the inverse of Channel.Index: 0 is Code, k+1 is
// GeneralPurpose(k). Unlike GPChannel it reports an out-of-range index as
// an error rather than panicking, since here the index comes from a
// serialized payload, not from caller code.
func channelFromIndex(index, numGPChannels int) (Channel, error) {
	if index == 0 {
		return CodeChannel, nil
	}
	k := index - 1
	if k < 0 || k >= numGPChannels {
		return Channel{}, fmt.Errorf("channel index %d out of range [0, %d]", index, numGPChannels)
	}
	return Channel{isCode: false, gp: k}, nil
}

// DeserializeReadGenerator reconstructs a ReadGenerator bound to bus. The
// Bus is runtime state, injected at registration time the same way
// RandomValueGenerator defaults its RandSource; only the wire-format
// fields travel in the payload.
func DeserializeReadGenerator(bus *Bus) witness.Deserializer {
	return func(src *witness.Buffer) (witness.Generator, error) {
		g := ReadGenerator{Bus: bus}
		chIdx, err := src.ReadInt()
		if err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryReadGenerator", Reason: err.Error()}
		}
		g.Channel, err = channelFromIndex(chIdx, bus.NumChannels-1)
		if err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryReadGenerator", Reason: err.Error()}
		}
		if g.Clock, err = src.ReadInt(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryReadGenerator", Reason: err.Error()}
		}
		if g.Address.Context, err = src.ReadInt(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryReadGenerator", Reason: err.Error()}
		}
		if g.Address.Segment, err = src.ReadInt(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryReadGenerator", Reason: err.Error()}
		}
		if g.Address.Virt, err = src.ReadInt(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryReadGenerator", Reason: err.Error()}
		}
		if g.Out, err = src.ReadTarget(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryReadGenerator", Reason: err.Error()}
		}
		modBytes, err := src.ReadBytes()
		if err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryReadGenerator", Reason: err.Error()}
		}
		g.Modulus = new(big.Int).SetBytes(modBytes)
		return witness.Adapt(g), nil
	}
}

// DeserializeWriteGenerator reconstructs a WriteGenerator bound to bus.
func DeserializeWriteGenerator(bus *Bus) witness.Deserializer {
	return func(src *witness.Buffer) (witness.Generator, error) {
		g := WriteGenerator{Bus: bus}
		chIdx, err := src.ReadInt()
		if err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryWriteGenerator", Reason: err.Error()}
		}
		g.Channel, err = channelFromIndex(chIdx, bus.NumChannels-1)
		if err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryWriteGenerator", Reason: err.Error()}
		}
		if g.Clock, err = src.ReadInt(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryWriteGenerator", Reason: err.Error()}
		}
		if g.Address.Context, err = src.ReadInt(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryWriteGenerator", Reason: err.Error()}
		}
		if g.Address.Segment, err = src.ReadInt(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryWriteGenerator", Reason: err.Error()}
		}
		if g.Address.Virt, err = src.ReadInt(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryWriteGenerator", Reason: err.Error()}
		}
		if g.Src, err = src.ReadTarget(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryWriteGenerator", Reason: err.Error()}
		}
		if g.Out, err = src.ReadTarget(); err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryWriteGenerator", Reason: err.Error()}
		}
		modBytes, err := src.ReadBytes()
		if err != nil {
			return nil, &witness.MalformedPayloadError{ID: "MemoryWriteGenerator", Reason: err.Error()}
		}
		g.Modulus = new(big.Int).SetBytes(modBytes)
		return witness.Adapt(g), nil
	}
}

// RegisterGenerators installs deserializers for the memory-trace generator
// family into r, binding every reconstructed generator to bus.
func RegisterGenerators(r *witness.Registry, bus *Bus) {
	r.Register("MemoryReadGenerator", DeserializeReadGenerator(bus))
	r.Register("MemoryWriteGenerator", DeserializeWriteGenerator(bus))
}

// PadTrace appends padding rows (Filter == false) to b's trace until it
// reaches length, repeating the last real op's address and value. Does
// nothing if the trace is already at least that long.
func (b *Bus) PadTrace(length int) {
	if len(b.trace) == 0 {
		return
	}
	last := b.trace[len(b.trace)-1]
	for len(b.trace) < length {
		ts := last.Timestamp + 1
		b.trace = append(b.trace, PaddingOp(ts, last.Address, last.Value))
		last = b.trace[len(b.trace)-1]
	}
}
