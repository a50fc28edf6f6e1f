//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

// Package protocol implements the garbler and evaluator roles of the
// two-party comparison protocol, generalizing the teacher's
// circuit.Garbler/circuit.Evaluator pair (circuit/garbler.go,
// circuit/evaluator.go) into two symmetric functions that share one FSM
// definition (fsm.go), per SPEC_FULL.md's design note on single-FSM
// coupling.
package protocol

import (
	"crypto/rand"

	"github.com/cockroachdb/errors"

	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/circuit"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/garble"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/input"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/label"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/ot"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/session"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/transport"
)

// Verdict is the two-bit result of spec.md §1: Bits[0] is gt (1 iff B's
// maximum is greater), Bits[1] is ne (1 iff the maxima differ).
type Verdict struct {
	Bits [2]int
}

func verdictFromBits(gt, ne int) Verdict {
	return Verdict{Bits: [2]int{gt, ne}}
}

// AWins reports whether A's set contains the unique global maximum.
func (v Verdict) AWins() bool { return v.Bits[1] == 1 && v.Bits[0] == 0 }

// BWins reports whether B's set contains the unique global maximum.
func (v Verdict) BWins() bool { return v.Bits[1] == 1 && v.Bits[0] == 1 }

// Equal reports whether both sets' maxima are equal.
func (v Verdict) Equal() bool { return v.Bits[1] == 0 }

// Code renders the verdict as the two-character encoding from spec.md §1:
// "00" equal, "01" A wins, "11" B wins.
func (v Verdict) Code() string {
	switch {
	case v.Equal():
		return "00"
	case v.BWins():
		return "11"
	default:
		return "01"
	}
}

func mark(t *Timing, label string) {
	if t != nil {
		t.Mark(label)
	}
}

// RunGarbler implements spec.md §4.4: A computes its local maximum,
// builds and ships the garbled circuit, sends its own input labels
// directly, transfers B's labels via oblivious transfer, and finally
// receives B's decoded output bits. timing may be nil; when non-nil it
// records a Mark after each protocol phase for the CLI's -v report.
func RunGarbler(conn *transport.Conn, sess session.Session, inputs []int64, timing *Timing) (Verdict, error) {
	f := newFSM()

	mA := input.LocalMaximum(inputs)
	aliceBits, err := input.EncodeTwosComplement(mA, sess.Bits)
	if err != nil {
		f.abort()
		return Verdict{}, err
	}

	c := circuit.Comparator(sess.Bits)
	gc, wires, err := garble.Garble(rand.Reader, c)
	if err != nil {
		f.abort()
		return Verdict{}, err
	}
	defer garble.ZeroWireLabels(wires)

	if err := conn.SendHandshake(transport.Handshake{
		SessionID: sess.ID,
		Bits:      sess.Bits,
		Scale:     sess.Scale,
		Garbled:   gc,
	}); err != nil {
		f.abort()
		return Verdict{}, errors.Mark(err, ErrTransport)
	}
	f.advance(Handshake)
	mark(timing, "Handshake")

	aliceLabels := make(map[circuit.WireID]label.Label, len(c.AliceInputs))
	for i, w := range c.AliceInputs {
		aliceLabels[w] = wires[w].ForBit(aliceBits[i])
	}
	if err := conn.SendInputLabels(aliceLabels); err != nil {
		f.abort()
		return Verdict{}, errors.Mark(err, ErrTransport)
	}

	bobWires := make([]label.Wire, len(c.BobInputs))
	for i, w := range c.BobInputs {
		bobWires[i] = wires[w]
	}
	sender := ot.NewSender(&transport.OTChannel{Conn: conn})
	if err := sender.Send(bobWires); err != nil {
		f.abort()
		return Verdict{}, err
	}
	f.advance(InputsExchanged)
	f.advance(Evaluating)
	mark(timing, "OT")

	outBits, err := conn.ReceiveOutputBits()
	if err != nil {
		f.abort()
		return Verdict{}, errors.Mark(err, ErrTransport)
	}
	f.advance(OutputsExchanged)
	mark(timing, "Eval")

	if len(c.Outputs) != 2 {
		f.abort()
		return Verdict{}, errors.Mark(errors.New("protocol: expected 2 output wires"), ErrMalformedCircuit)
	}
	gt, ok := outBits[c.Outputs[0]]
	if !ok {
		f.abort()
		return Verdict{}, errors.Mark(errors.New("protocol: missing gt output bit"), ErrTransport)
	}
	ne, ok := outBits[c.Outputs[1]]
	if !ok {
		f.abort()
		return Verdict{}, errors.Mark(errors.New("protocol: missing ne output bit"), ErrTransport)
	}
	f.advance(Done)

	return verdictFromBits(gt, ne), nil
}

// RunEvaluator implements spec.md §4.5: B receives the garbled circuit
// and A's input labels, fetches its own input labels via oblivious
// transfer, evaluates the circuit gate by gate, decodes the output bits,
// and reports them back to A.
func RunEvaluator(conn *transport.Conn, inputs []int64, timing *Timing) (Verdict, error) {
	f := newFSM()

	hs, err := conn.ReceiveHandshake()
	if err != nil {
		f.abort()
		return Verdict{}, errors.Mark(err, ErrTransport)
	}
	f.advance(Handshake)
	mark(timing, "Handshake")

	mB := input.LocalMaximum(inputs)
	bobBits, err := input.EncodeTwosComplement(mB, hs.Bits)
	if err != nil {
		f.abort()
		return Verdict{}, err
	}

	aliceLabels, err := conn.ReceiveInputLabels()
	if err != nil {
		f.abort()
		return Verdict{}, errors.Mark(err, ErrTransport)
	}

	c := hs.Garbled.Circuit
	choices := make([]bool, len(bobBits))
	for i, b := range bobBits {
		choices[i] = b == 1
	}
	receiver := ot.NewReceiver(&transport.OTChannel{Conn: conn})
	bobLabelSlice, err := receiver.Receive(choices)
	if err != nil {
		f.abort()
		return Verdict{}, err
	}
	bobLabels := make(map[circuit.WireID]label.Label, len(c.BobInputs))
	for i, w := range c.BobInputs {
		bobLabels[w] = bobLabelSlice[i]
	}
	f.advance(InputsExchanged)
	f.advance(Evaluating)
	mark(timing, "OT")

	outLabels, err := garble.Evaluate(hs.Garbled, aliceLabels, bobLabels)
	if err != nil {
		f.abort()
		return Verdict{}, err
	}
	bits, err := garble.Decode(hs.Garbled, outLabels)
	if err != nil {
		f.abort()
		return Verdict{}, err
	}
	mark(timing, "Eval")

	if len(c.Outputs) != 2 {
		f.abort()
		return Verdict{}, errors.Mark(errors.New("protocol: expected 2 output wires"), ErrMalformedCircuit)
	}
	outBits := make(map[circuit.WireID]int, len(c.Outputs))
	for i, w := range c.Outputs {
		outBits[w] = bits[i]
	}

	if err := conn.SendOutputBits(outBits); err != nil {
		f.abort()
		return Verdict{}, errors.Mark(err, ErrTransport)
	}
	f.advance(OutputsExchanged)
	f.advance(Done)
	mark(timing, "Reply")

	return verdictFromBits(bits[0], bits[1]), nil
}

// VerifyInClear computes the verdict without any cryptography, for the
// CLI's --verify testing mode (spec.md §6).
func VerifyInClear(aliceInputs, bobInputs []int64, bits int) (Verdict, error) {
	mA := input.LocalMaximum(aliceInputs)
	mB := input.LocalMaximum(bobInputs)

	aBits, err := input.EncodeTwosComplement(mA, bits)
	if err != nil {
		return Verdict{}, err
	}
	bBits, err := input.EncodeTwosComplement(mB, bits)
	if err != nil {
		return Verdict{}, err
	}

	c := circuit.Comparator(bits)
	out, err := c.EvalClear(aBits, bBits)
	if err != nil {
		return Verdict{}, err
	}
	return verdictFromBits(out[0], out[1]), nil
}
