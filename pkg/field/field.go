// Package field provides the finite-field element type consumed by the
// witness-generation engine. The engine itself is field-agnostic; this
// package is the default concrete implementation used by the rest of the
// module and its tests.
package field

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Element is an element of a prime field. Elements are immutable; every
// operation returns a new Element. The zero value is not a valid Element;
// use Zero(modulus) or a constructor.
type Element struct {
	modulus *big.Int
	value   *big.Int
}

// New reduces v modulo m and returns the resulting Element.
func New(m *big.Int, v *big.Int) Element {
	val := new(big.Int).Mod(v, m)
	return Element{modulus: m, value: val}
}

// NewUint64 is a convenience constructor for small constants.
func NewUint64(m *big.Int, v uint64) Element {
	return New(m, new(big.Int).SetUint64(v))
}

// Zero returns the additive identity of the field with modulus m.
func Zero(m *big.Int) Element {
	return Element{modulus: m, value: big.NewInt(0)}
}

// One returns the multiplicative identity of the field with modulus m.
func One(m *big.Int) Element {
	return Element{modulus: m, value: big.NewInt(1)}
}

// Rand samples a uniformly random element using the supplied entropy
// source. A nil src defaults to crypto/rand, so sampling is
// cryptographically seeded unless the caller injects a deterministic
// source for reproducible runs.
func Rand(m *big.Int, src RandSource) (Element, error) {
	if src == nil {
		src = cryptoSource{}
	}
	v, err := src.Int(m)
	if err != nil {
		return Element{}, fmt.Errorf("field: sample random element: %w", err)
	}
	return Element{modulus: m, value: v}, nil
}

// RandSource abstracts the entropy source used by Rand, letting callers
// (notably RandomValueGenerator) substitute a deterministic generator in
// tests without sacrificing a cryptographically secure default.
type RandSource interface {
	// Int returns a uniformly distributed value in [0, m).
	Int(m *big.Int) (*big.Int, error)
}

type cryptoSource struct{}

func (cryptoSource) Int(m *big.Int) (*big.Int, error) {
	return rand.Int(rand.Reader, m)
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.value.Sign() == 0
}

// Add returns e + other.
func (e Element) Add(other Element) Element {
	return New(e.modulus, new(big.Int).Add(e.value, other.value))
}

// Sub returns e - other.
func (e Element) Sub(other Element) Element {
	return New(e.modulus, new(big.Int).Sub(e.value, other.value))
}

// Mul returns e * other.
func (e Element) Mul(other Element) Element {
	return New(e.modulus, new(big.Int).Mul(e.value, other.value))
}

// Inverse returns the multiplicative inverse of e. Panics if e is zero;
// callers must special-case zero before calling Inverse.
func (e Element) Inverse() Element {
	if e.IsZero() {
		panic("field: Inverse of zero element")
	}
	inv := new(big.Int).ModInverse(e.value, e.modulus)
	return Element{modulus: e.modulus, value: inv}
}

// Equal reports whether e and other represent the same value in the same
// field.
func (e Element) Equal(other Element) bool {
	if e.modulus == nil || other.modulus == nil {
		return e.value == nil && other.value == nil
	}
	return e.modulus.Cmp(other.modulus) == 0 && e.value.Cmp(other.value) == 0
}

// Modulus returns the field's modulus.
func (e Element) Modulus() *big.Int {
	return e.modulus
}

// Bytes returns the big-endian byte encoding of e's value, padded to the
// byte length of the modulus so serialized generators are byte-stable
// regardless of the element's numeric magnitude.
func (e Element) Bytes() []byte {
	width := (e.modulus.BitLen() + 7) / 8
	if width == 0 {
		width = 1
	}
	b := e.value.Bytes()
	if len(b) >= width {
		return b
	}
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out
}

// FromBytes decodes an Element previously produced by Bytes, under the
// given modulus.
func FromBytes(m *big.Int, b []byte) Element {
	return Element{modulus: m, value: new(big.Int).SetBytes(b)}
}

// String renders e in decimal, for debug printing.
func (e Element) String() string {
	if e.value == nil {
		return "<nil>"
	}
	return e.value.String()
}
