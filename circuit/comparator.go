//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package circuit

// Comparator builds an N-bit signed (two's complement) greater-than /
// not-equal circuit: on inputs a (Alice) and b (Bob), each bits wide, it
// computes two output bits (gt, ne) where gt = 1 iff b > a and ne = 1 iff
// a != b. Bit 0 of each input is the least significant bit; bit bits-1 is
// the sign bit.
//
// The construction follows spec.md §4.1: a sign-aware most-significant-bit
// compare seeds a running "greater so far" bit that ripples down through
// the magnitude bits guarded by a running equal-prefix bit, and a separate
// XOR-chain tracks bitwise inequality for the ne output. The gate sequence
// mirrors original_source/src/circuits/generate_cmp_signed_circuit.py,
// restated with the simplified closed-form sign-bit condition
// gt_msb = a_msb AND NOT b_msb (equivalent to the spec's MSB mux, since at
// the sign bit "a negative, b non-negative" is exactly "b greater").
func Comparator(bits int) *Circuit {
	if bits < 1 {
		panic("circuit: Comparator requires at least 1 bit")
	}

	aliceInputs := make([]WireID, bits)
	bobInputs := make([]WireID, bits)
	var next WireID
	for i := 0; i < bits; i++ {
		aliceInputs[i] = next
		next++
	}
	for i := 0; i < bits; i++ {
		bobInputs[i] = next
		next++
	}

	var gates []Gate
	alloc := func() WireID {
		w := next
		next++
		return w
	}
	gate := func(op Op, out WireID, in ...WireID) {
		gates = append(gates, Gate{Output: out, Op: op, Inputs: in})
	}
	unary := func(op Op, in WireID) WireID {
		out := alloc()
		gate(op, out, in)
		return out
	}
	binary := func(op Op, a, b WireID) WireID {
		out := alloc()
		gate(op, out, a, b)
		return out
	}

	msb := bits - 1
	aMSB, bMSB := aliceInputs[msb], bobInputs[msb]

	notBMSB := unary(NOT, bMSB)
	gt := binary(AND, aMSB, notBMSB)
	eq := binary(XNOR, aMSB, bMSB)

	for i := bits - 2; i >= 0; i-- {
		ai, bi := aliceInputs[i], bobInputs[i]

		notAi := unary(NOT, ai)
		biggerHere := binary(AND, notAi, bi)
		contrib := binary(AND, eq, biggerHere)
		gt = binary(OR, gt, contrib)

		if i > 0 {
			xnorI := binary(XNOR, ai, bi)
			eq = binary(AND, eq, xnorI)
		}
	}

	ne := binary(XOR, aliceInputs[0], bobInputs[0])
	for i := 1; i < bits; i++ {
		xorI := binary(XOR, aliceInputs[i], bobInputs[i])
		ne = binary(OR, ne, xorI)
	}

	return &Circuit{
		Name:        "cmp-signed",
		NumWires:    int(next),
		AliceInputs: aliceInputs,
		BobInputs:   bobInputs,
		Outputs:     []WireID{gt, ne},
		Gates:       gates,
	}
}
