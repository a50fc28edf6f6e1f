//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package garble

import (
	"crypto/rand"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/circuit"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/label"
)

func evalGarbled(t *testing.T, c *circuit.Circuit, aliceBits, bobBits []int) []int {
	t.Helper()
	gc, wires, err := Garble(rand.Reader, c)
	if err != nil {
		t.Fatalf("Garble: %v", err)
	}

	aliceLabels := make(map[circuit.WireID]label.Label, len(c.AliceInputs))
	for i, w := range c.AliceInputs {
		aliceLabels[w] = wires[w].ForBit(aliceBits[i])
	}
	bobLabels := make(map[circuit.WireID]label.Label, len(c.BobInputs))
	for i, w := range c.BobInputs {
		bobLabels[w] = wires[w].ForBit(bobBits[i])
	}

	outLabels, err := Evaluate(gc, aliceLabels, bobLabels)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	bits, err := Decode(gc, outLabels)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return bits
}

func TestGarbleEvaluateSingleGates(t *testing.T) {
	cases := []struct {
		name string
		op   circuit.Op
	}{
		{"AND", circuit.AND},
		{"OR", circuit.OR},
		{"XOR", circuit.XOR},
		{"XNOR", circuit.XNOR},
		{"NAND", circuit.NAND},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &circuit.Circuit{
				Name:        tc.name,
				NumWires:    3,
				AliceInputs: []circuit.WireID{0},
				BobInputs:   []circuit.WireID{1},
				Outputs:     []circuit.WireID{2},
				Gates:       []circuit.Gate{{Output: 2, Op: tc.op, Inputs: []circuit.WireID{0, 1}}},
			}
			for a := 0; a <= 1; a++ {
				for b := 0; b <= 1; b++ {
					want, err := tc.op.Eval(a, b)
					if err != nil {
						t.Fatal(err)
					}
					got := evalGarbled(t, c, []int{a}, []int{b})
					if got[0] != want {
						t.Errorf("%s(%d,%d) = %d, want %d", tc.name, a, b, got[0], want)
					}
				}
			}
		})
	}
}

func TestGarbleEvaluateNot(t *testing.T) {
	c := &circuit.Circuit{
		Name:        "NOT",
		NumWires:    2,
		AliceInputs: []circuit.WireID{0},
		BobInputs:   nil,
		Outputs:     []circuit.WireID{1},
		Gates:       []circuit.Gate{{Output: 1, Op: circuit.NOT, Inputs: []circuit.WireID{0}}},
	}
	for a := 0; a <= 1; a++ {
		got := evalGarbled(t, c, []int{a}, nil)
		if got[0] != 1-a {
			t.Errorf("NOT(%d) = %d, want %d", a, got[0], 1-a)
		}
	}
}

func TestGarbleEvaluateComparatorExhaustive(t *testing.T) {
	for bits := 1; bits <= 3; bits++ {
		c := circuit.Comparator(bits)
		lo := -(int64(1) << uint(bits-1))
		hi := (int64(1) << uint(bits-1)) - 1
		for a := lo; a <= hi; a++ {
			for b := lo; b <= hi; b++ {
				clear, err := c.EvalClear(bitsOfForTest(a, bits), bitsOfForTest(b, bits))
				if err != nil {
					t.Fatal(err)
				}
				got := evalGarbled(t, c, bitsOfForTest(a, bits), bitsOfForTest(b, bits))
				if got[0] != clear[0] || got[1] != clear[1] {
					t.Errorf("bits=%d a=%d b=%d: garbled (%d,%d), clear (%d,%d)",
						bits, a, b, got[0], got[1], clear[0], clear[1])
				}
			}
		}
	}
}

func bitsOfForTest(v int64, bits int) []int {
	u := uint64(v) & (uint64(1)<<uint(bits) - 1)
	out := make([]int, bits)
	for i := 0; i < bits; i++ {
		out[i] = int((u >> uint(i)) & 1)
	}
	return out
}

func TestEvaluateTamperedRowFailsClosed(t *testing.T) {
	c := &circuit.Circuit{
		Name:        "AND",
		NumWires:    3,
		AliceInputs: []circuit.WireID{0},
		BobInputs:   []circuit.WireID{1},
		Outputs:     []circuit.WireID{2},
		Gates:       []circuit.Gate{{Output: 2, Op: circuit.AND, Inputs: []circuit.WireID{0, 1}}},
	}
	gc, wires, err := Garble(rand.Reader, c)
	if err != nil {
		t.Fatal(err)
	}

	table := gc.Tables[0]
	for i := range table {
		if table[i] != nil {
			table[i][0] ^= 0xff
		}
	}

	aliceLabels := map[circuit.WireID]label.Label{0: wires[0].ForBit(1)}
	bobLabels := map[circuit.WireID]label.Label{1: wires[1].ForBit(1)}
	_, err = Evaluate(gc, aliceLabels, bobLabels)
	if err == nil || !errors.Is(err, ErrCrypto) {
		t.Fatalf("expected ErrCrypto on tampered row, got %v", err)
	}
}

func TestZeroWireLabels(t *testing.T) {
	c := &circuit.Circuit{
		Name:        "AND",
		NumWires:    3,
		AliceInputs: []circuit.WireID{0},
		BobInputs:   []circuit.WireID{1},
		Outputs:     []circuit.WireID{2},
		Gates:       []circuit.Gate{{Output: 2, Op: circuit.AND, Inputs: []circuit.WireID{0, 1}}},
	}
	_, wires, err := Garble(rand.Reader, c)
	if err != nil {
		t.Fatal(err)
	}
	ZeroWireLabels(wires)
	if len(wires) != 0 {
		t.Fatalf("expected empty map after zeroing, got %d entries", len(wires))
	}
}
