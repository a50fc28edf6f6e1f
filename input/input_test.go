//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package input

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		tok  string
		want int64
	}{
		{"0", 0},
		{"5", 50},
		{"-11", -110},
		{"-9.7", -97},
		{"10.1", 101},
		{"857.4", 8574},
		{"+3", 30},
		{"5.5", 55},
		{"5.4", 54},
	}
	for _, c := range cases {
		got, err := ParseNumber(c.tok, 10)
		if err != nil {
			t.Fatalf("%q: %v", c.tok, err)
		}
		if got != c.want {
			t.Errorf("%q = %d, want %d", c.tok, got, c.want)
		}
	}
}

func TestParseNumberMalformed(t *testing.T) {
	for _, tok := range []string{"", "-", "1.23", "abc", "1."} {
		if _, err := ParseNumber(tok, 10); err == nil || !errors.Is(err, ErrMalformed) {
			t.Errorf("%q: expected ErrMalformed, got %v", tok, err)
		}
	}
}

func TestParseNumbersList(t *testing.T) {
	got, err := ParseNumbers("-11, -9.7, 5, 10.1, 857.4", 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{-110, -97, 50, 101, 8574}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLocalMaximum(t *testing.T) {
	if m := LocalMaximum([]int64{-110, -97, 50, 101, 8574}); m != 8574 {
		t.Errorf("got %d, want 8574", m)
	}
}

func TestEncodeTwosComplementRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 127, -128, 2147483647, -2147483648} {
		bits, err := EncodeTwosComplement(v, 32)
		if err != nil {
			t.Fatalf("%d: %v", v, err)
		}
		var u uint64
		for i := 31; i >= 0; i-- {
			u = u<<1 | uint64(bits[i])
		}
		got := int64(int32(u))
		if got != v {
			t.Errorf("round trip: v=%d got=%d", v, got)
		}
	}
}

func TestEncodeTwosComplementOutOfRange(t *testing.T) {
	if _, err := EncodeTwosComplement(1<<31, 32); err == nil || !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := EncodeTwosComplement(-(1<<31)-1, 32); err == nil || !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}
