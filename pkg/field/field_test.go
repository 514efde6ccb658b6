package field

import (
	"math/big"
	"math/rand"
	"testing"
)

var testModulus = big.NewInt(2305843009213693951) // 2^61 - 1, a Mersenne prime

func TestElementArithmetic(t *testing.T) {
	t.Run("Add wraps modulo m", func(t *testing.T) {
		a := New(testModulus, new(big.Int).Sub(testModulus, big.NewInt(2)))
		b := NewUint64(testModulus, 7)
		got := a.Add(b)
		want := NewUint64(testModulus, 5)
		if !got.Equal(want) {
			t.Errorf("Add: got %s, want %s", got, want)
		}
	})

	t.Run("Sub handles negative results", func(t *testing.T) {
		a := NewUint64(testModulus, 3)
		b := NewUint64(testModulus, 5)
		got := a.Sub(b)
		want := New(testModulus, big.NewInt(-2))
		if !got.Equal(want) {
			t.Errorf("Sub: got %s, want %s", got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		a := NewUint64(testModulus, 6)
		b := NewUint64(testModulus, 7)
		got := a.Mul(b)
		want := NewUint64(testModulus, 42)
		if !got.Equal(want) {
			t.Errorf("Mul: got %s, want %s", got, want)
		}
	})

	t.Run("Inverse satisfies x * x^-1 == 1", func(t *testing.T) {
		x := NewUint64(testModulus, 5)
		inv := x.Inverse()
		got := x.Mul(inv)
		if !got.Equal(One(testModulus)) {
			t.Errorf("x * inverse(x) = %s, want 1", got)
		}
	})

	t.Run("Inverse of zero panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic on Inverse of zero")
			}
		}()
		Zero(testModulus).Inverse()
	})

	t.Run("IsZero", func(t *testing.T) {
		if !Zero(testModulus).IsZero() {
			t.Error("Zero() should report IsZero() == true")
		}
		if One(testModulus).IsZero() {
			t.Error("One() should report IsZero() == false")
		}
	})
}

func TestBytesRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, 42, 123456789}
	for _, v := range vals {
		e := NewUint64(testModulus, v)
		got := FromBytes(testModulus, e.Bytes())
		if !got.Equal(e) {
			t.Errorf("round trip %d: got %s, want %s", v, got, e)
		}
	}
}

func TestBytesFixedWidth(t *testing.T) {
	width := (testModulus.BitLen() + 7) / 8
	for _, v := range []uint64{0, 1, 1 << 40} {
		b := NewUint64(testModulus, v).Bytes()
		if len(b) != width {
			t.Errorf("Bytes(%d): got width %d, want %d", v, len(b), width)
		}
	}
}

// deterministicSource lets tests sample reproducible "random" field
// elements without reaching into crypto/rand.
type deterministicSource struct {
	rng *rand.Rand
}

func (d deterministicSource) Int(m *big.Int) (*big.Int, error) {
	return new(big.Int).Rand(d.rng, m), nil
}

func TestRandDeterministicWithInjectedSource(t *testing.T) {
	src := deterministicSource{rng: rand.New(rand.NewSource(42))}
	a, err := Rand(testModulus, src)
	if err != nil {
		t.Fatalf("Rand: %v", err)
	}
	src2 := deterministicSource{rng: rand.New(rand.NewSource(42))}
	b, err := Rand(testModulus, src2)
	if err != nil {
		t.Fatalf("Rand: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("same seed should produce same sample: got %s and %s", a, b)
	}
}

func TestRandDefaultsToCryptoRand(t *testing.T) {
	e, err := Rand(testModulus, nil)
	if err != nil {
		t.Fatalf("Rand with nil source: %v", err)
	}
	if e.Modulus().Cmp(testModulus) != 0 {
		t.Errorf("Rand: modulus mismatch")
	}
}
