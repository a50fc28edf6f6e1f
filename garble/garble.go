//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

// Package garble implements the garbling engine: it turns a plaintext
// circuit.Circuit into a GarbledCircuit whose gates reveal nothing beyond
// what the final output decoding discloses, and it evaluates a garbled
// circuit given one label per input wire.
//
// The construction is free-XOR (Kolesnikov-Schneider): every wire pair
// differs by a single global offset R, so XOR, XNOR and NOT gates cost no
// garbled table at all and are computed by the evaluator with plain label
// arithmetic. AND, OR and NAND gates are not linear in the offset and are
// garbled as a point-and-permute table of four rows, each row an AEAD
// ciphertext of the corresponding output label keyed by a hash of the two
// input labels that select it. This generalizes the teacher's unauthenticated,
// table-only garble.go/garble_stream.go pair: the free-gate shortcuts are
// grounded on garble_stream.go, and the authenticated row encryption answers
// spec.md §4.2's explicit requirement that a corrupted table row must be
// detected rather than silently decrypted to garbage.
package garble

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/circuit"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/label"
)

// ErrUnsupportedOp marks a gate operation the garbling engine does not know
// how to garble.
var ErrUnsupportedOp = errors.New("garble: unsupported gate operation")

// ErrCrypto marks a cryptographic failure during evaluation: a garbled
// table row failed to authenticate, or a final output label matched
// neither half of its decoding table.
var ErrCrypto = errors.New("garble: cryptographic failure")

// Table holds the point-and-permute garbled rows for one non-linear gate.
// Its length is 2 for NOT-shaped gates (never used, NOT is free) or 4 for
// binary AND/OR/NAND gates; it is nil for a free (XOR/XNOR/NOT) gate.
type Table [][]byte

// OutputLabelHashes lets the evaluator recover the clear bit encoded by
// whichever label it ends up holding on an output wire, without revealing
// which label corresponds to which bit to anyone who has not evaluated.
type OutputLabelHashes struct {
	H0 [32]byte
	H1 [32]byte
}

// GarbledCircuit is the transmittable, circuit-shaped garbling output: one
// Table per gate (nil for free gates, in circuit.Gates order) and one
// OutputLabelHashes per output wire. It carries no label material that
// would let a holder learn any wire's logical value without evaluating.
type GarbledCircuit struct {
	Circuit *circuit.Circuit
	Tables  []Table
	Outputs []OutputLabelHashes
}

// WireLabels is the garbler's private map from wire ID to its full label
// pair. It must never cross the wire; only single, selected labels
// (garbler's own direct picks, and evaluator's via oblivious transfer) are
// ever sent. Zero it with ZeroWireLabels once the protocol run using it is
// over.
type WireLabels map[circuit.WireID]label.Wire

// ZeroWireLabels scrubs every label pair from wires and empties the map.
func ZeroWireLabels(wires WireLabels) {
	for id, w := range wires {
		w.Zero()
		delete(wires, id)
	}
}

// Garble produces a GarbledCircuit for c along with the garbler's private
// WireLabels table, drawing randomness from rnd. c must already satisfy
// circuit.Validate.
func Garble(rnd io.Reader, c *circuit.Circuit) (*GarbledCircuit, WireLabels, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	offset, err := label.RandomOffset(rnd)
	if err != nil {
		return nil, nil, errors.Wrap(err, "garble: draw free-xor offset")
	}

	wires := make(WireLabels, c.NumWires)
	for _, w := range c.AliceInputs {
		wire, err := label.NewWireFreeXOR(rnd, offset)
		if err != nil {
			return nil, nil, errors.Wrap(err, "garble: draw alice input wire")
		}
		wires[w] = wire
	}
	for _, w := range c.BobInputs {
		wire, err := label.NewWireFreeXOR(rnd, offset)
		if err != nil {
			return nil, nil, errors.Wrap(err, "garble: draw bob input wire")
		}
		wires[w] = wire
	}

	tables := make([]Table, len(c.Gates))
	for i, g := range c.Gates {
		switch g.Op {
		case circuit.XOR:
			a, b := wires[g.Inputs[0]], wires[g.Inputs[1]]
			l0 := label.Xored(a.L0, b.L0)
			wires[g.Output] = label.Wire{L0: l0, L1: label.Xored(l0, offset)}

		case circuit.XNOR:
			a, b := wires[g.Inputs[0]], wires[g.Inputs[1]]
			x0 := label.Xored(a.L0, b.L0)
			wires[g.Output] = label.Wire{L0: label.Xored(x0, offset), L1: x0}

		case circuit.NOT:
			in := wires[g.Inputs[0]]
			wires[g.Output] = label.Wire{L0: in.L1, L1: in.L0}

		case circuit.AND, circuit.OR, circuit.NAND:
			a, b := wires[g.Inputs[0]], wires[g.Inputs[1]]
			out, err := label.NewWireFreeXOR(rnd, offset)
			if err != nil {
				return nil, nil, errors.Wrap(err, "garble: draw gate output wire")
			}

			table := make(Table, 4)
			for bitA := 0; bitA <= 1; bitA++ {
				la := a.ForBit(bitA)
				for bitB := 0; bitB <= 1; bitB++ {
					lb := b.ForBit(bitB)
					val, err := g.Op.Eval(bitA, bitB)
					if err != nil {
						return nil, nil, err
					}
					outLabel := out.ForBit(val)
					row := rowIndex(la.S(), lb.S())
					table[row] = sealRow(uint32(i), row, la, lb, outLabel.Bytes())
				}
			}
			tables[i] = table
			wires[g.Output] = out

		default:
			return nil, nil, errors.Mark(
				errors.Newf("garble: gate %d has unsupported op %v", i, g.Op), ErrUnsupportedOp)
		}
	}

	outputs := make([]OutputLabelHashes, len(c.Outputs))
	for i, w := range c.Outputs {
		ow := wires[w]
		outputs[i] = OutputLabelHashes{H0: hashLabel(ow.L0), H1: hashLabel(ow.L1)}
	}

	return &GarbledCircuit{Circuit: c, Tables: tables, Outputs: outputs}, wires, nil
}

// Evaluate walks gc's gates in order given one label per input wire
// (aliceLabels ∪ bobLabels must cover every input wire of gc.Circuit) and
// returns one label per output wire. It never learns a clear bit value;
// Decode does that using gc.Outputs.
func Evaluate(gc *GarbledCircuit, aliceLabels, bobLabels map[circuit.WireID]label.Label) ([]label.Label, error) {
	c := gc.Circuit
	values := make(map[circuit.WireID]label.Label, c.NumWires)
	for _, w := range c.AliceInputs {
		l, ok := aliceLabels[w]
		if !ok {
			return nil, errors.Mark(errors.Newf("garble: missing alice label for wire %s", w), ErrCrypto)
		}
		values[w] = l
	}
	for _, w := range c.BobInputs {
		l, ok := bobLabels[w]
		if !ok {
			return nil, errors.Mark(errors.Newf("garble: missing bob label for wire %s", w), ErrCrypto)
		}
		values[w] = l
	}

	for i, g := range c.Gates {
		switch g.Op {
		case circuit.XOR, circuit.XNOR:
			la, lb := values[g.Inputs[0]], values[g.Inputs[1]]
			values[g.Output] = label.Xored(la, lb)

		case circuit.NOT:
			values[g.Output] = values[g.Inputs[0]]

		case circuit.AND, circuit.OR, circuit.NAND:
			la, lb := values[g.Inputs[0]], values[g.Inputs[1]]
			row := rowIndex(la.S(), lb.S())
			table := gc.Tables[i]
			if table == nil || row >= len(table) || table[row] == nil {
				return nil, errors.Mark(errors.Newf("garble: gate %d missing table row %d", i, row), ErrCrypto)
			}
			plaintext, err := openRow(uint32(i), row, la, lb, table[row])
			if err != nil {
				return nil, errors.Mark(errors.Wrapf(err, "garble: gate %d row %d", i, row), ErrCrypto)
			}
			out, err := label.FromBytes(plaintext)
			if err != nil {
				return nil, errors.Mark(errors.Wrapf(err, "garble: gate %d decoded label", i), ErrCrypto)
			}
			values[g.Output] = out

		default:
			return nil, errors.Mark(errors.Newf("garble: gate %d has unsupported op %v", i, g.Op), ErrUnsupportedOp)
		}
	}

	result := make([]label.Label, len(c.Outputs))
	for i, w := range c.Outputs {
		result[i] = values[w]
	}
	return result, nil
}

// Decode turns the evaluator's output labels into clear bits using gc's
// output decoding table. It returns ErrCrypto if a label matches neither
// half of its wire's table, which indicates a corrupted or malicious run.
func Decode(gc *GarbledCircuit, outputLabels []label.Label) ([]int, error) {
	if len(outputLabels) != len(gc.Outputs) {
		return nil, errors.Newf("garble: expected %d output labels, got %d", len(gc.Outputs), len(outputLabels))
	}
	bits := make([]int, len(outputLabels))
	for i, l := range outputLabels {
		h := hashLabel(l)
		switch {
		case h == gc.Outputs[i].H0:
			bits[i] = 0
		case h == gc.Outputs[i].H1:
			bits[i] = 1
		default:
			return nil, errors.Mark(errors.Newf("garble: output %d label matches neither decoding entry", i), ErrCrypto)
		}
	}
	return bits, nil
}

func rowIndex(sa, sb bool) int {
	idx := 0
	if sa {
		idx |= 2
	}
	if sb {
		idx |= 1
	}
	return idx
}

// rowKey derives the per-row AEAD key and nonce from the gate index, row
// number and the two input labels that select that row. Binding the key to
// the actual input labels (rather than just the gate index) is what makes
// each of the four rows decryptable only by the party holding the matching
// label pair; the row number is folded in purely to keep the four keys of
// a single gate apart even in the (cryptographically negligible) case two
// rows would otherwise hash to the same key.
func rowKey(gateID uint32, row int, la, lb label.Label) (key [chacha20poly1305.KeySize]byte, nonce [chacha20poly1305.NonceSize]byte) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], gateID)
	binary.BigEndian.PutUint32(hdr[4:8], uint32(row))

	h, _ := blake2b.New512(nil)
	h.Write(hdr[:])
	h.Write(la.Bytes())
	h.Write(lb.Bytes())
	sum := h.Sum(nil)
	copy(key[:], sum[:chacha20poly1305.KeySize])
	copy(nonce[:], sum[chacha20poly1305.KeySize:chacha20poly1305.KeySize+chacha20poly1305.NonceSize])
	return
}

func sealRow(gateID uint32, row int, la, lb label.Label, plaintext []byte) []byte {
	key, nonce := rowKey(gateID, row, la, lb)
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		panic(err)
	}
	return aead.Seal(nil, nonce[:], plaintext, nil)
}

func openRow(gateID uint32, row int, la, lb label.Label, ciphertext []byte) ([]byte, error) {
	key, nonce := rowKey(gateID, row, la, lb)
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce[:], ciphertext, nil)
}

func hashLabel(l label.Label) [32]byte {
	return blake2b.Sum256(l.Bytes())
}
