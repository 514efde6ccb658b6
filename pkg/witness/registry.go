package witness

import (
	"fmt"
)

// Registry maps a generator's stable id string to the Deserializer that
// reconstructs it. The host installs a Registry before calling Generate on
// any serialized circuit data. Dispatch routes by the stable id string,
// never by object identity.
type Registry struct {
	deserializers map[string]Deserializer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{deserializers: make(map[string]Deserializer)}
}

// Register installs the deserializer for the given generator id. Calling
// Register twice for the same id replaces the previous registration.
func (r *Registry) Register(id string, d Deserializer) {
	r.deserializers[id] = d
}

// Deserialize reconstructs a Generator from its serialized form: an id
// string followed by the id-specific payload. Returns
// *UnknownGeneratorIDError if no deserializer is registered for the id, or
// whatever error the deserializer itself reports (normally a
// *MalformedPayloadError).
func (r *Registry) Deserialize(src *Buffer) (Generator, error) {
	id, err := src.ReadString()
	if err != nil {
		return nil, &MalformedPayloadError{ID: "<unknown>", Reason: err.Error()}
	}
	d, ok := r.deserializers[id]
	if !ok {
		return nil, &UnknownGeneratorIDError{ID: id}
	}
	g, err := d(src)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Serialize writes a generator's id followed by its payload, in the form
// Deserialize expects.
func Serialize(g Generator, dst *Buffer) error {
	dst.WriteString(g.ID())
	return g.Serialize(dst)
}

// GeneratorRef wraps a Generator so that equality and debug printing are
// derived from its serialized bytes rather than from object identity or
// field-by-field comparison: two generators compare equal iff their
// serialized forms are equal.
type GeneratorRef struct {
	Generator Generator
}

// NewGeneratorRef wraps g.
func NewGeneratorRef(g Generator) GeneratorRef {
	return GeneratorRef{Generator: g}
}

func (r GeneratorRef) serializedBytes() []byte {
	buf := NewWriteBuffer()
	if err := Serialize(r.Generator, buf); err != nil {
		// Serialize is expected to be infallible for well-formed
		// generators; a failure here indicates a generator bug, which we
		// surface as a panic rather than silently treating two generators
		// as unequal.
		panic(fmt.Sprintf("witness: GeneratorRef: serialize failed: %v", err))
	}
	return buf.Bytes()
}

// Equal reports whether r and other serialize to identical bytes.
func (r GeneratorRef) Equal(other GeneratorRef) bool {
	a, b := r.serializedBytes(), other.serializedBytes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders r as its serialized bytes, for debug printing.
func (r GeneratorRef) String() string {
	return fmt.Sprintf("%x", r.serializedBytes())
}
