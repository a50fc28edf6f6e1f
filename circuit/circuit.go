//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

// Package circuit implements the immutable boolean-circuit representation
// shared by the garbling engine and its evaluator: input wires partitioned
// by owner, an ordered list of gates, and output wires.
package circuit

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrMalformed marks a circuit invariant violation: a cycle, a dangling
// wire reference, or an unknown gate operation. Fatal before any label
// generation, per the protocol's error taxonomy.
var ErrMalformed = errors.New("circuit: malformed")

// WireID is an opaque identifier for a circuit wire, unique within a
// circuit.
type WireID uint32

func (w WireID) String() string {
	return fmt.Sprintf("w%d", w)
}

// Op identifies a gate's boolean function.
type Op byte

// Supported gate operations. NOT is the only unary operation; the rest
// take exactly two inputs.
const (
	NOT Op = iota
	AND
	OR
	XOR
	XNOR
	NAND
)

func (op Op) String() string {
	switch op {
	case NOT:
		return "NOT"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	case NAND:
		return "NAND"
	default:
		return fmt.Sprintf("Op(%d)", byte(op))
	}
}

// IsUnary reports whether the operation takes a single input wire.
func (op Op) IsUnary() bool {
	return op == NOT
}

// Eval evaluates the gate's truth table on the given input bits (one bit
// for NOT, two otherwise).
func (op Op) Eval(in ...int) (int, error) {
	switch op {
	case NOT:
		if len(in) != 1 {
			return 0, errors.Newf("circuit: NOT wants 1 input, got %d", len(in))
		}
		return in[0] ^ 1, nil
	case AND, OR, XOR, XNOR, NAND:
		if len(in) != 2 {
			return 0, errors.Newf("circuit: %s wants 2 inputs, got %d", op, len(in))
		}
		a, b := in[0], in[1]
		switch op {
		case AND:
			return a & b, nil
		case OR:
			return a | b, nil
		case XOR:
			return a ^ b, nil
		case XNOR:
			return (a ^ b) ^ 1, nil
		case NAND:
			return (a & b) ^ 1, nil
		}
	}
	return 0, errors.Mark(errors.Newf("circuit: unknown gate operation %v", op), ErrMalformed)
}

// Gate is a single boolean gate. Its output wire ID is Output; the wires
// listed in Inputs must all be either circuit input wires or the output of
// an earlier gate.
type Gate struct {
	Output WireID
	Op     Op
	Inputs []WireID
}

func (g Gate) String() string {
	return fmt.Sprintf("%s = %s(%v)", g.Output, g.Op, g.Inputs)
}

// Circuit is an immutable boolean-circuit description: input wires
// partitioned by owner, an ordered list of gates in topological order, and
// output wires (which must be exactly the set of gate outputs referenced by
// Outputs).
type Circuit struct {
	Name         string
	NumWires     int
	AliceInputs  []WireID
	BobInputs    []WireID
	Outputs      []WireID
	Gates        []Gate
}

// NumBits returns the bit width of each party's input, assuming both
// parties present equally sized signed integers (true for the comparator
// family this module implements).
func (c *Circuit) NumBits() int {
	return len(c.AliceInputs)
}

func (c *Circuit) String() string {
	return fmt.Sprintf("circuit %q: alice=%d bob=%d gates=%d outputs=%d wires=%d",
		c.Name, len(c.AliceInputs), len(c.BobInputs), len(c.Gates),
		len(c.Outputs), c.NumWires)
}

// Validate checks the circuit's structural invariants: every gate input is
// either an input wire or an earlier gate's output, gates are topologically
// ordered, output wires are exactly gate outputs, and no wire ID is
// produced twice.
func (c *Circuit) Validate() error {
	defined := make(map[WireID]bool, c.NumWires)
	for _, w := range c.AliceInputs {
		if defined[w] {
			return errors.Mark(errors.Newf("circuit: duplicate wire id %s", w), ErrMalformed)
		}
		defined[w] = true
	}
	for _, w := range c.BobInputs {
		if defined[w] {
			return errors.Mark(errors.Newf("circuit: duplicate wire id %s", w), ErrMalformed)
		}
		defined[w] = true
	}

	gateOutputs := make(map[WireID]bool, len(c.Gates))
	for i, g := range c.Gates {
		if g.Op.IsUnary() {
			if len(g.Inputs) != 1 {
				return errors.Mark(
					errors.Newf("circuit: gate %d (%s) wants 1 input, has %d", i, g.Op, len(g.Inputs)),
					ErrMalformed)
			}
		} else {
			switch g.Op {
			case AND, OR, XOR, XNOR, NAND:
				if len(g.Inputs) != 2 {
					return errors.Mark(
						errors.Newf("circuit: gate %d (%s) wants 2 inputs, has %d", i, g.Op, len(g.Inputs)),
						ErrMalformed)
				}
			default:
				return errors.Mark(errors.Newf("circuit: gate %d: unknown op %v", i, g.Op), ErrMalformed)
			}
		}
		for _, in := range g.Inputs {
			if !defined[in] {
				return errors.Mark(
					errors.Newf("circuit: gate %d (%s) references undefined wire %s", i, g.Op, in),
					ErrMalformed)
			}
		}
		if defined[g.Output] {
			return errors.Mark(errors.Newf("circuit: duplicate wire id %s", g.Output), ErrMalformed)
		}
		defined[g.Output] = true
		gateOutputs[g.Output] = true
	}

	if len(c.Outputs) == 0 {
		return errors.Mark(errors.New("circuit: no output wires"), ErrMalformed)
	}
	for _, o := range c.Outputs {
		if !gateOutputs[o] {
			return errors.Mark(errors.Newf("circuit: output wire %s is not a gate output", o), ErrMalformed)
		}
	}

	maxWire := WireID(0)
	for w := range defined {
		if w > maxWire {
			maxWire = w
		}
	}
	if c.NumWires <= int(maxWire) {
		return errors.Mark(errors.Newf(
			"circuit: NumWires=%d too small for max wire id %s", c.NumWires, maxWire), ErrMalformed)
	}

	return nil
}

// EvalClear evaluates the circuit in the clear given the two owners'
// bit arrays (index 0 is the least significant bit of each input, matching
// the wire ordering used by Comparator). It is used by the property tests
// and by the CLI's --verify mode, never by the cryptographic core.
func (c *Circuit) EvalClear(aliceBits, bobBits []int) ([]int, error) {
	if len(aliceBits) != len(c.AliceInputs) {
		return nil, errors.Newf("circuit: expected %d alice bits, got %d",
			len(c.AliceInputs), len(aliceBits))
	}
	if len(bobBits) != len(c.BobInputs) {
		return nil, errors.Newf("circuit: expected %d bob bits, got %d",
			len(c.BobInputs), len(bobBits))
	}

	values := make(map[WireID]int, c.NumWires)
	for i, w := range c.AliceInputs {
		values[w] = aliceBits[i]
	}
	for i, w := range c.BobInputs {
		values[w] = bobBits[i]
	}

	for _, g := range c.Gates {
		in := make([]int, len(g.Inputs))
		for i, w := range g.Inputs {
			v, ok := values[w]
			if !ok {
				return nil, errors.Mark(errors.Newf("circuit: wire %s not yet defined", w), ErrMalformed)
			}
			in[i] = v
		}
		out, err := g.Op.Eval(in...)
		if err != nil {
			return nil, err
		}
		values[g.Output] = out
	}

	result := make([]int, len(c.Outputs))
	for i, w := range c.Outputs {
		result[i] = values[w]
	}
	return result, nil
}
