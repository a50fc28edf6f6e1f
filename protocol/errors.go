//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package protocol

import (
	"github.com/cockroachdb/errors"

	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/circuit"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/garble"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/input"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/ot"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/transport"
)

// Error kinds per spec.md §7, aliased from the packages that actually
// detect each condition so that a single errors.Is(err, protocol.ErrX)
// works regardless of which layer raised it.
var (
	// ErrInputOutOfRange: user input not representable in the circuit's
	// signed bit width. Exit code 2.
	ErrInputOutOfRange = input.ErrOutOfRange

	// ErrMalformedCircuit: circuit topology fails its invariants.
	ErrMalformedCircuit = circuit.ErrMalformed

	// ErrCrypto: authenticated decryption failed at either endpoint.
	// Exit code 3.
	ErrCrypto = garble.ErrCrypto

	// ErrOtGroup: an OT peer sent a group element outside the expected
	// subgroup. Same policy as ErrCrypto.
	ErrOtGroup = ot.ErrGroup

	// ErrTimeout: a per-message read deadline was exceeded. There is no
	// overall session deadline.
	ErrTimeout = transport.ErrTimeout

	// ErrTransport: connection closed, framing violation, or decode
	// error. Exit code 4.
	ErrTransport = transport.ErrTransport
)

// ExitCode maps an error returned by RunGarbler/RunEvaluator to the exit
// code spec.md §6 assigns it. It returns 1 for errors not recognized as
// one of the named kinds (defensive default; every error this package
// returns is expected to match one of the kinds above).
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case isMarked(err, ErrInputOutOfRange):
		return 2
	case isMarked(err, ErrMalformedCircuit), isMarked(err, ErrCrypto), isMarked(err, ErrOtGroup), isMarked(err, ErrTimeout):
		return 3
	case isMarked(err, ErrTransport):
		return 4
	default:
		return 1
	}
}

func isMarked(err, kind error) bool {
	return errors.Is(err, kind)
}
