package witness

import (
	"math/big"

	"github.com/gitrdm/gokanwitness/pkg/field"
)

// CopyGenerator copies the value at Src to Dst once Src is populated.
type CopyGenerator struct {
	Src Target
	Dst Target
}

// ID implements SimpleGenerator.
func (g CopyGenerator) ID() string { return "CopyGenerator" }

// Dependencies implements SimpleGenerator.
func (g CopyGenerator) Dependencies() []Target { return []Target{g.Src} }

// RunOnce implements SimpleGenerator.
func (g CopyGenerator) RunOnce(w *PartitionWitness, buf *GeneratedValues) {
	v, err := w.Get(g.Src)
	if err != nil {
		// Dependencies() already guaranteed Src is present; a failure here
		// would mean the adapter's contains-all check and this read
		// disagree, which is a runtime bug, not a recoverable condition.
		panic(err)
	}
	buf.Set(g.Dst, v)
}

// Serialize implements SimpleGenerator.
func (g CopyGenerator) Serialize(dst *Buffer) error {
	dst.WriteTarget(g.Src)
	dst.WriteTarget(g.Dst)
	return nil
}

// DeserializeCopyGenerator reconstructs a CopyGenerator from its payload.
func DeserializeCopyGenerator(src *Buffer) (Generator, error) {
	s, err := src.ReadTarget()
	if err != nil {
		return nil, &MalformedPayloadError{ID: "CopyGenerator", Reason: err.Error()}
	}
	d, err := src.ReadTarget()
	if err != nil {
		return nil, &MalformedPayloadError{ID: "CopyGenerator", Reason: err.Error()}
	}
	return Adapt(CopyGenerator{Src: s, Dst: d}), nil
}

// RandomValueGenerator writes a freshly sampled field element to Target.
// Has no dependencies, so it always runs in round 1 and retires
// immediately. The resulting witness is non-unique for circuits containing
// this generator.
type RandomValueGenerator struct {
	Target  Target
	Modulus *big.Int
	Source  field.RandSource // nil defaults to crypto/rand, per field.Rand
}

// ID implements SimpleGenerator.
func (g RandomValueGenerator) ID() string { return "RandomValueGenerator" }

// Dependencies implements SimpleGenerator.
func (g RandomValueGenerator) Dependencies() []Target { return nil }

// RunOnce implements SimpleGenerator.
func (g RandomValueGenerator) RunOnce(w *PartitionWitness, buf *GeneratedValues) {
	v, err := field.Rand(g.Modulus, g.Source)
	if err != nil {
		panic(err)
	}
	buf.Set(g.Target, v)
}

// Serialize implements SimpleGenerator. The injected RandSource is not
// part of the serialized form; it is a runtime concern, not state.
func (g RandomValueGenerator) Serialize(dst *Buffer) error {
	dst.WriteTarget(g.Target)
	dst.WriteBytes(g.Modulus.Bytes())
	return nil
}

// DeserializeRandomValueGenerator reconstructs a RandomValueGenerator,
// defaulting to the cryptographically seeded source.
func DeserializeRandomValueGenerator(src *Buffer) (Generator, error) {
	t, err := src.ReadTarget()
	if err != nil {
		return nil, &MalformedPayloadError{ID: "RandomValueGenerator", Reason: err.Error()}
	}
	modBytes, err := src.ReadBytes()
	if err != nil {
		return nil, &MalformedPayloadError{ID: "RandomValueGenerator", Reason: err.Error()}
	}
	return Adapt(RandomValueGenerator{Target: t, Modulus: new(big.Int).SetBytes(modBytes)}), nil
}

// NonzeroTestGenerator writes Dummy such that downstream constraints can
// enforce ToTest * Dummy == 1 whenever ToTest != 0, allowing circuits to
// branch on zero-ness without a division gate.
type NonzeroTestGenerator struct {
	ToTest Target
	Dummy  Target
}

// ID implements SimpleGenerator.
func (g NonzeroTestGenerator) ID() string { return "NonzeroTestGenerator" }

// Dependencies implements SimpleGenerator.
func (g NonzeroTestGenerator) Dependencies() []Target { return []Target{g.ToTest} }

// RunOnce implements SimpleGenerator.
func (g NonzeroTestGenerator) RunOnce(w *PartitionWitness, buf *GeneratedValues) {
	v, err := w.Get(g.ToTest)
	if err != nil {
		panic(err)
	}
	var dummy field.Element
	if v.IsZero() {
		dummy = field.One(v.Modulus())
	} else {
		dummy = v.Inverse()
	}
	buf.Set(g.Dummy, dummy)
}

// Serialize implements SimpleGenerator.
func (g NonzeroTestGenerator) Serialize(dst *Buffer) error {
	dst.WriteTarget(g.ToTest)
	dst.WriteTarget(g.Dummy)
	return nil
}

// DeserializeNonzeroTestGenerator reconstructs a NonzeroTestGenerator.
func DeserializeNonzeroTestGenerator(src *Buffer) (Generator, error) {
	toTest, err := src.ReadTarget()
	if err != nil {
		return nil, &MalformedPayloadError{ID: "NonzeroTestGenerator", Reason: err.Error()}
	}
	dummy, err := src.ReadTarget()
	if err != nil {
		return nil, &MalformedPayloadError{ID: "NonzeroTestGenerator", Reason: err.Error()}
	}
	return Adapt(NonzeroTestGenerator{ToTest: toTest, Dummy: dummy}), nil
}

// ConstantGenerator fills a single wire with a compile-time constant. No
// dependencies; retires on first run. ConstantIndex correlates this write
// with the constraint system's constants polynomial and is carried
// through serialization but not otherwise used by the runtime.
type ConstantGenerator struct {
	Row           int
	ConstantIndex int
	WireIndex     int
	Constant      field.Element
}

// ID implements SimpleGenerator.
func (g ConstantGenerator) ID() string { return "ConstantGenerator" }

// Dependencies implements SimpleGenerator.
func (g ConstantGenerator) Dependencies() []Target { return nil }

// RunOnce implements SimpleGenerator.
func (g ConstantGenerator) RunOnce(w *PartitionWitness, buf *GeneratedValues) {
	buf.Set(WireTarget(g.Row, g.WireIndex), g.Constant)
}

// Serialize implements SimpleGenerator.
func (g ConstantGenerator) Serialize(dst *Buffer) error {
	dst.WriteInt(g.Row)
	dst.WriteInt(g.ConstantIndex)
	dst.WriteInt(g.WireIndex)
	dst.WriteField(g.Constant)
	return nil
}

// DeserializeConstantGenerator reconstructs a ConstantGenerator under the
// given field modulus. The payload does not self-describe its modulus; the
// field is fixed per circuit, so the host supplies it.
func DeserializeConstantGenerator(modulus *big.Int) Deserializer {
	return func(src *Buffer) (Generator, error) {
		row, err := src.ReadInt()
		if err != nil {
			return nil, &MalformedPayloadError{ID: "ConstantGenerator", Reason: err.Error()}
		}
		constIdx, err := src.ReadInt()
		if err != nil {
			return nil, &MalformedPayloadError{ID: "ConstantGenerator", Reason: err.Error()}
		}
		wireIdx, err := src.ReadInt()
		if err != nil {
			return nil, &MalformedPayloadError{ID: "ConstantGenerator", Reason: err.Error()}
		}
		c, err := src.ReadField(modulus)
		if err != nil {
			return nil, &MalformedPayloadError{ID: "ConstantGenerator", Reason: err.Error()}
		}
		return Adapt(ConstantGenerator{Row: row, ConstantIndex: constIdx, WireIndex: wireIdx, Constant: c}), nil
	}
}

// RegisterPrimitives installs deserializers for all four primitive
// generators into r, under the given field modulus (needed only by
// ConstantGenerator, whose payload carries a bare field element).
func RegisterPrimitives(r *Registry, modulus *big.Int) {
	r.Register("CopyGenerator", DeserializeCopyGenerator)
	r.Register("RandomValueGenerator", DeserializeRandomValueGenerator)
	r.Register("NonzeroTestGenerator", DeserializeNonzeroTestGenerator)
	r.Register("ConstantGenerator", DeserializeConstantGenerator(modulus))
}
