package witness

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/gitrdm/gokanwitness/pkg/field"
)

// Buffer is the byte-stable read/write cursor generators serialize into
// and deserialize from. Field ordering within one generator's payload is
// fixed per generator id, so two instances of the same generator kind with
// the same field values always serialize to identical bytes. That
// byte-stability is what lets GeneratorRef derive structural equality from
// Serialize alone.
type Buffer struct {
	data []byte
	pos  int
}

// NewBuffer wraps an existing byte slice for reading.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// NewWriteBuffer returns an empty Buffer ready for writing.
func NewWriteBuffer() *Buffer {
	return &Buffer{}
}

// Bytes returns the buffer's full contents, valid after writes.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Remaining reports how many unread bytes are left.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.pos
}

func (b *Buffer) need(n int) error {
	if b.Remaining() < n {
		return fmt.Errorf("buffer: need %d bytes, have %d", n, b.Remaining())
	}
	return nil
}

// WriteUint64 appends a fixed-width big-endian uint64.
func (b *Buffer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// ReadUint64 reads a fixed-width big-endian uint64.
func (b *Buffer) ReadUint64() (uint64, error) {
	if err := b.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(b.data[b.pos : b.pos+8])
	b.pos += 8
	return v, nil
}

// WriteInt writes v as a uint64 (ints in this module are always
// non-negative indices: rows, columns, virtual ids).
func (b *Buffer) WriteInt(v int) {
	b.WriteUint64(uint64(v))
}

// ReadInt is the inverse of WriteInt.
func (b *Buffer) ReadInt() (int, error) {
	v, err := b.ReadUint64()
	return int(v), err
}

// WriteBytes writes a length-prefixed byte slice.
func (b *Buffer) WriteBytes(p []byte) {
	b.WriteUint64(uint64(len(p)))
	b.data = append(b.data, p...)
}

// ReadBytes reads a length-prefixed byte slice.
func (b *Buffer) ReadBytes() ([]byte, error) {
	n, err := b.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := b.need(int(n)); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.data[b.pos:b.pos+int(n)])
	b.pos += int(n)
	return out, nil
}

// WriteTarget writes a Target in a self-describing form: a kind tag
// followed by the kind-specific fields.
func (b *Buffer) WriteTarget(t Target) {
	b.data = append(b.data, byte(t.kind))
	switch t.kind {
	case TargetVirtual:
		b.WriteInt(t.virtual)
	case TargetWire:
		b.WriteInt(t.wire.Row)
		b.WriteInt(t.wire.Column)
	}
}

// ReadTarget is the inverse of WriteTarget.
func (b *Buffer) ReadTarget() (Target, error) {
	if err := b.need(1); err != nil {
		return Target{}, err
	}
	kind := TargetKind(b.data[b.pos])
	b.pos++
	switch kind {
	case TargetVirtual:
		id, err := b.ReadInt()
		if err != nil {
			return Target{}, err
		}
		return VirtualTarget(id), nil
	case TargetWire:
		row, err := b.ReadInt()
		if err != nil {
			return Target{}, err
		}
		col, err := b.ReadInt()
		if err != nil {
			return Target{}, err
		}
		return WireTarget(row, col), nil
	default:
		return Target{}, fmt.Errorf("buffer: unknown target kind %d", kind)
	}
}

// WriteField writes a field element's fixed-width byte encoding. The
// modulus is not written; ReadField takes it from the caller.
func (b *Buffer) WriteField(v field.Element) {
	b.WriteBytes(v.Bytes())
}

// ReadField reads a field element under the given modulus.
func (b *Buffer) ReadField(modulus *big.Int) (field.Element, error) {
	raw, err := b.ReadBytes()
	if err != nil {
		return field.Element{}, err
	}
	return field.FromBytes(modulus, raw), nil
}

// WriteString writes a length-prefixed UTF-8 string.
func (b *Buffer) WriteString(s string) {
	b.WriteBytes([]byte(s))
}

// ReadString is the inverse of WriteString.
func (b *Buffer) ReadString() (string, error) {
	raw, err := b.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
