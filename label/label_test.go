//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package label

import (
	"crypto/rand"
	"testing"
)

func TestSelectBit(t *testing.T) {
	l := Label{D0: 0xffffffffffffffff, D1: 0xffffffffffffffff}

	l.SetS(true)
	if l.D0 != 0xffffffffffffffff {
		t.Fatalf("SetS(true) mutated D0: %x", l.D0)
	}
	if !l.S() {
		t.Fatal("expected S bit set")
	}

	l.SetS(false)
	if l.D0 != 0x7fffffffffffffff {
		t.Fatalf("SetS(false): got %x", l.D0)
	}
	if l.S() {
		t.Fatal("expected S bit clear")
	}
}

func TestRandomWireComplementarySelectBits(t *testing.T) {
	for i := 0; i < 64; i++ {
		w, err := NewWire(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		if w.L0.S() == w.L1.S() {
			t.Fatalf("wire %d: select bits not complementary", i)
		}
	}
}

func TestFreeXOROffsetInvariant(t *testing.T) {
	r, err := RandomOffset(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if !r.S() {
		t.Fatal("free-XOR offset must have S bit set")
	}

	w, err := NewWireFreeXOR(rand.Reader, r)
	if err != nil {
		t.Fatal(err)
	}
	if w.L0.S() == w.L1.S() {
		t.Fatal("free-XOR wire must have complementary select bits")
	}
	if !Xored(w.L0, w.L1).Equal(r) {
		t.Fatal("L0 xor L1 must equal the offset")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	l, err := Random(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	got, err := FromBytes(l.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(l) {
		t.Fatal("round trip mismatch")
	}
}

func TestZero(t *testing.T) {
	l, _ := Random(rand.Reader)
	l.Zero()
	if l.D0 != 0 || l.D1 != 0 {
		t.Fatal("Zero did not clear label")
	}
}
