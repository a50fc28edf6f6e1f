//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package circuit

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestOpEval(t *testing.T) {
	cases := []struct {
		op   Op
		in   []int
		want int
	}{
		{NOT, []int{0}, 1},
		{NOT, []int{1}, 0},
		{AND, []int{0, 0}, 0},
		{AND, []int{1, 1}, 1},
		{AND, []int{1, 0}, 0},
		{OR, []int{0, 0}, 0},
		{OR, []int{1, 0}, 1},
		{XOR, []int{1, 1}, 0},
		{XOR, []int{1, 0}, 1},
		{XNOR, []int{1, 1}, 1},
		{XNOR, []int{1, 0}, 0},
		{NAND, []int{1, 1}, 0},
		{NAND, []int{1, 0}, 1},
	}
	for _, c := range cases {
		got, err := c.op.Eval(c.in...)
		if err != nil {
			t.Fatalf("%s%v: %v", c.op, c.in, err)
		}
		if got != c.want {
			t.Errorf("%s%v = %d, want %d", c.op, c.in, got, c.want)
		}
	}
}

func TestOpEvalArityMismatch(t *testing.T) {
	if _, err := NOT.Eval(0, 1); err == nil {
		t.Fatal("expected error for wrong NOT arity")
	}
	if _, err := AND.Eval(1); err == nil {
		t.Fatal("expected error for wrong AND arity")
	}
}

func simpleAndCircuit() *Circuit {
	// out = a0 AND b0
	return &Circuit{
		Name:        "and",
		NumWires:    3,
		AliceInputs: []WireID{0},
		BobInputs:   []WireID{1},
		Outputs:     []WireID{2},
		Gates: []Gate{
			{Output: 2, Op: AND, Inputs: []WireID{0, 1}},
		},
	}
}

func TestValidateOK(t *testing.T) {
	c := simpleAndCircuit()
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDanglingInput(t *testing.T) {
	c := simpleAndCircuit()
	c.Gates[0].Inputs = []WireID{0, 99}
	err := c.Validate()
	if err == nil || !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestValidateDuplicateWire(t *testing.T) {
	c := simpleAndCircuit()
	c.BobInputs = []WireID{0}
	err := c.Validate()
	if err == nil || !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestValidateOutputNotGate(t *testing.T) {
	c := simpleAndCircuit()
	c.Outputs = []WireID{0}
	err := c.Validate()
	if err == nil || !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestValidateNumWiresTooSmall(t *testing.T) {
	c := simpleAndCircuit()
	c.NumWires = 2
	err := c.Validate()
	if err == nil || !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestEvalClearAnd(t *testing.T) {
	c := simpleAndCircuit()
	for a := 0; a <= 1; a++ {
		for b := 0; b <= 1; b++ {
			out, err := c.EvalClear([]int{a}, []int{b})
			if err != nil {
				t.Fatal(err)
			}
			want := a & b
			if out[0] != want {
				t.Errorf("AND(%d,%d) = %d, want %d", a, b, out[0], want)
			}
		}
	}
}

func TestEvalClearWrongInputLength(t *testing.T) {
	c := simpleAndCircuit()
	if _, err := c.EvalClear([]int{0, 0}, []int{0}); err == nil {
		t.Fatal("expected error for wrong alice input length")
	}
	if _, err := c.EvalClear([]int{0}, []int{0, 0}); err == nil {
		t.Fatal("expected error for wrong bob input length")
	}
}
