//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

// Package session defines the negotiated per-run parameters shared by
// both roles of a protocol run: a session identifier for log correlation
// and the two parameters that used to be baked-in constants (circuit bit
// width and fixed-point scale), now exchanged once in the handshake per
// SPEC_FULL.md's resolution of spec.md §9's open question.
package session

import "github.com/google/uuid"

// DefaultBits is the comparator circuit's default bit width per spec.md
// §4.1.
const DefaultBits = 32

// DefaultScale is the fixed-point scale factor (one fractional decimal
// digit) that original_source/src/protocol_manager.py applied as a
// hardcoded constant; SPEC_FULL.md promotes it to a session parameter.
const DefaultScale = 10

// Session carries the parameters negotiated for one protocol run.
type Session struct {
	ID    uuid.UUID
	Bits  int
	Scale int
}

// New creates a fresh session with a random ID and the given parameters.
func New(bits, scale int) Session {
	return Session{ID: uuid.New(), Bits: bits, Scale: scale}
}
