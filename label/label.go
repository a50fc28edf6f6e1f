//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

// Package label implements the fixed-width wire labels used by the
// garbling engine.
package label

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Size is the label width in bytes (128 bits).
const Size = 16

// Label is a 128 bit wire label. The high bit of D0 is the select bit
// (point-and-permute bit): it is exposed to whoever holds the label and by
// itself reveals nothing about the logical value the label encodes.
type Label struct {
	D0 uint64
	D1 uint64
}

// Data is a label serialized to a byte array.
type Data [Size]byte

func (l Label) String() string {
	return fmt.Sprintf("%016x%016x", l.D0, l.D1)
}

// Equal reports whether the two labels are identical.
func (l Label) Equal(o Label) bool {
	return l.D0 == o.D0 && l.D1 == o.D1
}

// Random draws a new label from rnd.
func Random(rnd io.Reader) (Label, error) {
	var buf Data
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return Label{}, err
	}
	var l Label
	l.SetData(&buf)
	return l, nil
}

// Tweak builds a label from a per-gate tweak value, placed in D1 with D0
// zero. The garble package does not use it: its row keys take the gate
// index directly.
func Tweak(t uint32) Label {
	return Label{D1: uint64(t)}
}

// S returns the label's select bit.
func (l Label) S() bool {
	return l.D0&0x8000000000000000 != 0
}

// SetS sets the label's select bit.
func (l *Label) SetS(set bool) {
	if set {
		l.D0 |= 0x8000000000000000
	} else {
		l.D0 &^= 0x8000000000000000
	}
}

// Xor xors the label in place with o.
func (l *Label) Xor(o Label) {
	l.D0 ^= o.D0
	l.D1 ^= o.D1
}

// Xored returns the xor of l and o without mutating either.
func Xored(l, o Label) Label {
	r := l
	r.Xor(o)
	return r
}

// GetData serializes the label into buf.
func (l Label) GetData(buf *Data) {
	binary.BigEndian.PutUint64(buf[0:8], l.D0)
	binary.BigEndian.PutUint64(buf[8:16], l.D1)
}

// SetData populates the label from buf.
func (l *Label) SetData(buf *Data) {
	l.D0 = binary.BigEndian.Uint64(buf[0:8])
	l.D1 = binary.BigEndian.Uint64(buf[8:16])
}

// Bytes returns the label serialized as a byte slice.
func (l Label) Bytes() []byte {
	var buf Data
	l.GetData(&buf)
	return buf[:]
}

// FromBytes parses a label from a byte slice of length Size.
func FromBytes(data []byte) (Label, error) {
	if len(data) != Size {
		return Label{}, fmt.Errorf("label: invalid length %d, expected %d",
			len(data), Size)
	}
	var buf Data
	copy(buf[:], data)
	var l Label
	l.SetData(&buf)
	return l, nil
}

// Zero clears the label in place. Used to scrub label material from
// session arenas on teardown or abort.
func (l *Label) Zero() {
	l.D0 = 0
	l.D1 = 0
}

// Wire holds the pair of labels assigned to a single circuit wire, encoding
// logical 0 and logical 1 respectively.
type Wire struct {
	L0 Label
	L1 Label
}

func (w Wire) String() string {
	return fmt.Sprintf("%s/%s", w.L0, w.L1)
}

// ForBit returns the label encoding the given logical bit.
func (w Wire) ForBit(bit int) Label {
	if bit == 0 {
		return w.L0
	}
	return w.L1
}

// Zero clears both labels of the wire.
func (w *Wire) Zero() {
	w.L0.Zero()
	w.L1.Zero()
}

// NewWire draws a fresh pair of complementary-select-bit labels for one
// wire, with the correspondence between select bit and logical value chosen
// uniformly at random.
func NewWire(rnd io.Reader) (Wire, error) {
	l0, err := Random(rnd)
	if err != nil {
		return Wire{}, err
	}
	l1, err := Random(rnd)
	if err != nil {
		return Wire{}, err
	}

	var sbuf [1]byte
	if _, err := io.ReadFull(rnd, sbuf[:]); err != nil {
		return Wire{}, err
	}
	s := sbuf[0]&0x80 != 0
	l0.SetS(s)
	l1.SetS(!s)

	return Wire{L0: l0, L1: l1}, nil
}

// NewWireFreeXOR draws a wire pair whose labels differ by exactly the
// global free-XOR offset r: L1 = L0 XOR r. r's select bit must be 1, which
// guarantees L0.S() != L1.S() for every wire built this way. Which logical
// value (0 or 1) ends up under which select bit is randomized per wire,
// matching NewWire's convention, so that observing a label's select bit
// never reveals the logical value it encodes.
func NewWireFreeXOR(rnd io.Reader, r Label) (Wire, error) {
	l0, err := Random(rnd)
	if err != nil {
		return Wire{}, err
	}

	var sbuf [1]byte
	if _, err := io.ReadFull(rnd, sbuf[:]); err != nil {
		return Wire{}, err
	}
	l0.SetS(sbuf[0]&0x80 != 0)

	l1 := Xored(l0, r)
	return Wire{L0: l0, L1: l1}, nil
}

// RandomOffset draws a fresh global free-XOR offset with its select bit
// forced to 1, as required by the free-XOR construction.
func RandomOffset(rnd io.Reader) (Label, error) {
	r, err := Random(rnd)
	if err != nil {
		return Label{}, err
	}
	r.SetS(true)
	return r, nil
}
