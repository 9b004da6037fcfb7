//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package circuit

import "errors"

// Sentinel errors identifying the error taxonomy used throughout this
// module. Call sites wrap these with fmt.Errorf("%w: ...") so callers
// can test the kind with errors.Is while still getting a human-readable
// message.
var (
	// ErrStructural reports a circuit whose wire ids, topology, or
	// arity violate the data model (non-contiguous ids, an output id
	// outside the id range, a gate input that is not strictly smaller
	// than the gate's own id, or an arity outside {1, 2}).
	ErrStructural = errors.New("structural error")

	// ErrShapeMismatch reports a length disagreement between a caller
	// and the circuit (input bit count, output id count, and so on).
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDomain reports a value outside its expected domain: a logic
	// value not in {0, 1}, a label not of the expected width, a
	// ciphertext not of the expected width, or a truth table whose
	// length is not a power of two matching the gate's arity.
	ErrDomain = errors.New("domain error")

	// ErrTypeMismatch would report a LogicGate passed where a
	// GarbledGate was expected, or vice versa. Circuit[V, G] makes this
	// a compile-time type error instead of a runtime one, so nothing
	// currently returns it; it is kept for API stability against a
	// future non-generic entry point (e.g. reflection-based dispatch
	// from the inspect subcommand).
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDecryptionFailed reports that no row of a garbled gate
	// produced a plaintext ending in PadZeros.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrUnknownLabel reports that a label being decoded equals
	// neither of its wire's two labels.
	ErrUnknownLabel = errors.New("unknown label")
)
