//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

// Package input implements the text-file loader spec.md §6 treats as an
// external collaborator: a comma-separated list of decimal numbers,
// optionally signed, with at most one fractional digit, scaled to a
// fixed-point integer and reduced to the caller's local maximum. The
// scaling and two's-complement encoding follow
// original_source/src/protocol_manager.py's init_protocol_data, which
// scales by ten and adds 2^bits to negative scaled values before bit
// extraction; EncodeTwosComplement reaches the same bit pattern via
// unsigned masking, which is the idiomatic Go equivalent of that
// addition.
package input

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrMalformed marks an input file or token that does not match the
// expected "optional sign, at most one fractional digit" grammar.
var ErrMalformed = errors.New("input: malformed number")

// ErrOutOfRange marks a value that does not fit the circuit's signed bit
// width once scaled. This is spec.md §7's InputOutOfRange error kind.
var ErrOutOfRange = errors.New("input: value out of representable range")

// ParseNumber parses one decimal token, scaling it by scale. scale is
// expected to be a multiple of 10 so that a single fractional digit maps
// onto an integer number of scale units; DefaultScale (10) is the
// spec's one-decimal-digit case.
func ParseNumber(tok string, scale int) (int64, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, errors.Mark(errors.New("input: empty token"), ErrMalformed)
	}

	neg := false
	switch tok[0] {
	case '-':
		neg = true
		tok = tok[1:]
	case '+':
		tok = tok[1:]
	}
	if tok == "" {
		return 0, errors.Mark(errors.New("input: sign with no digits"), ErrMalformed)
	}
	if tok[0] == '-' || tok[0] == '+' {
		return 0, errors.Mark(errors.New("input: more than one sign"), ErrMalformed)
	}

	intPart, fracPart, hasFrac := strings.Cut(tok, ".")
	if intPart == "" {
		intPart = "0"
	}
	ip, err := strconv.ParseInt(intPart, 10, 62)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "input: integer part %q", intPart), ErrMalformed)
	}

	fracDigit := int64(0)
	if hasFrac {
		if len(fracPart) != 1 || fracPart[0] < '0' || fracPart[0] > '9' {
			return 0, errors.Mark(errors.Newf("input: fractional part %q must be exactly one digit", fracPart), ErrMalformed)
		}
		fracDigit = int64(fracPart[0] - '0')
	}

	scaled := ip*int64(scale) + fracDigit*int64(scale)/10
	if neg {
		scaled = -scaled
	}
	return scaled, nil
}

// ParseNumbers parses a full comma-separated list.
func ParseNumbers(text string, scale int) ([]int64, error) {
	tokens := strings.Split(text, ",")
	values := make([]int64, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		v, err := ParseNumber(tok, scale)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, errors.Mark(errors.New("input: no values found"), ErrMalformed)
	}
	return values, nil
}

// LocalMaximum returns the largest of values.
func LocalMaximum(values []int64) int64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// EncodeTwosComplement encodes v as a bits-wide two's-complement bit
// array, least significant bit first, matching the wire ordering
// circuit.Comparator uses for its inputs. It returns ErrOutOfRange if v is
// not representable in bits.
func EncodeTwosComplement(v int64, bits int) ([]int, error) {
	lo := -(int64(1) << uint(bits-1))
	hi := (int64(1) << uint(bits-1)) - 1
	if v < lo || v > hi {
		return nil, errors.Mark(errors.Newf("input: %d does not fit in %d-bit signed range [%d, %d]", v, bits, lo, hi), ErrOutOfRange)
	}
	u := uint64(v) & (uint64(1)<<uint(bits) - 1)
	bit := make([]int, bits)
	for i := 0; i < bits; i++ {
		bit[i] = int((u >> uint(i)) & 1)
	}
	return bit, nil
}
