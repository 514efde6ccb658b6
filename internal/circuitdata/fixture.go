package circuitdata

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/gitrdm/gokanwitness/pkg/field"
	"github.com/gitrdm/gokanwitness/pkg/witness"
)

// targetJSON is the wire-format JSON shape of a witness.Target, used only
// by the fixture loader; real circuit builders would never round-trip
// targets through JSON.
type targetJSON struct {
	Kind string `json:"kind"` // "virtual" | "wire"
	ID   int    `json:"id,omitempty"`
	Row  int    `json:"row,omitempty"`
	Col  int    `json:"col,omitempty"`
}

func (t targetJSON) toTarget() (witness.Target, error) {
	switch t.Kind {
	case "virtual":
		return witness.VirtualTarget(t.ID), nil
	case "wire":
		return witness.WireTarget(t.Row, t.Col), nil
	default:
		return witness.Target{}, fmt.Errorf("circuitdata: unknown target kind %q", t.Kind)
	}
}

type inputJSON struct {
	Target targetJSON `json:"target"`
	Value  string     `json:"value"`
}

type generatorJSON struct {
	Kind          string     `json:"kind"`
	Src           targetJSON `json:"src,omitempty"`
	Dst           targetJSON `json:"dst,omitempty"`
	Target        targetJSON `json:"target,omitempty"`
	ToTest        targetJSON `json:"to_test,omitempty"`
	Dummy         targetJSON `json:"dummy,omitempty"`
	Row           int        `json:"row,omitempty"`
	ConstantIndex int        `json:"constant_index,omitempty"`
	WireIndex     int        `json:"wire_index,omitempty"`
	Constant      string     `json:"constant,omitempty"`
}

// Fixture is the JSON document describing a circuit small enough to drive
// witness generation end to end without a real circuit builder.
type Fixture struct {
	Modulus      string          `json:"modulus"`
	NumWires     int             `json:"num_wires"`
	Degree       int             `json:"degree"`
	Equivalences [][2]targetJSON `json:"equivalences"`
	Inputs       []inputJSON     `json:"inputs"`
	Generators   []generatorJSON `json:"generators"`
}

// LoadFixture parses raw JSON into a Fixture.
func LoadFixture(raw []byte) (*Fixture, error) {
	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("circuitdata: parse fixture: %w", err)
	}
	return &f, nil
}

// Build turns a Fixture into a Data plus its input assignment, ready for
// witness.Generate.
func (f *Fixture) Build() (*Data, map[witness.Target]field.Element, error) {
	modulus, ok := new(big.Int).SetString(f.Modulus, 10)
	if !ok {
		return nil, nil, fmt.Errorf("circuitdata: invalid modulus %q", f.Modulus)
	}

	uf := NewUnionFind()
	for _, pair := range f.Equivalences {
		a, err := pair[0].toTarget()
		if err != nil {
			return nil, nil, err
		}
		b, err := pair[1].toTarget()
		if err != nil {
			return nil, nil, err
		}
		uf.Union(a, b)
	}

	inputs := make(map[witness.Target]field.Element, len(f.Inputs))
	for _, in := range f.Inputs {
		t, err := in.Target.toTarget()
		if err != nil {
			return nil, nil, err
		}
		v, ok := new(big.Int).SetString(in.Value, 10)
		if !ok {
			return nil, nil, fmt.Errorf("circuitdata: invalid input value %q", in.Value)
		}
		inputs[t] = field.New(modulus, v)
	}

	gens := make([]witness.Generator, 0, len(f.Generators))
	for _, gj := range f.Generators {
		g, err := buildGenerator(gj, modulus)
		if err != nil {
			return nil, nil, err
		}
		gens = append(gens, g)
	}

	return &Data{Wires: f.NumWires, Rows: f.Degree, Gens: gens, Rep: uf}, inputs, nil
}

func buildGenerator(gj generatorJSON, modulus *big.Int) (witness.Generator, error) {
	switch gj.Kind {
	case "copy":
		src, err := gj.Src.toTarget()
		if err != nil {
			return nil, err
		}
		dst, err := gj.Dst.toTarget()
		if err != nil {
			return nil, err
		}
		return witness.Adapt(witness.CopyGenerator{Src: src, Dst: dst}), nil
	case "random":
		t, err := gj.Target.toTarget()
		if err != nil {
			return nil, err
		}
		return witness.Adapt(witness.RandomValueGenerator{Target: t, Modulus: modulus}), nil
	case "nonzero_test":
		toTest, err := gj.ToTest.toTarget()
		if err != nil {
			return nil, err
		}
		dummy, err := gj.Dummy.toTarget()
		if err != nil {
			return nil, err
		}
		return witness.Adapt(witness.NonzeroTestGenerator{ToTest: toTest, Dummy: dummy}), nil
	case "constant":
		c, ok := new(big.Int).SetString(gj.Constant, 10)
		if !ok {
			return nil, fmt.Errorf("circuitdata: invalid constant %q", gj.Constant)
		}
		return witness.Adapt(witness.ConstantGenerator{
			Row:           gj.Row,
			ConstantIndex: gj.ConstantIndex,
			WireIndex:     gj.WireIndex,
			Constant:      field.New(modulus, c),
		}), nil
	default:
		return nil, fmt.Errorf("circuitdata: unknown generator kind %q", gj.Kind)
	}
}
