package aswap

import (
	"github.com/hashlock-one/weft/errors"
)

// Error codes 120 ~ 129 are reserved for the aswap extension.
var (
	// ErrAlreadyExist is returned when creating a swap that collides
	// with an open one on (target, preimage hash).
	ErrAlreadyExist = errors.Register(120, "swap already exists")

	// ErrInvalidProof is returned when no open swap matches the
	// revealed preimage for the claiming target.
	ErrInvalidProof = errors.Register(121, "no swap matching the preimage")

	// ErrProofTooLarge is returned when the revealed preimage exceeds
	// the configured size limit.
	ErrProofTooLarge = errors.Register(122, "preimage exceeds size limit")

	// ErrSourceMismatch is returned when an account other than the
	// swap source tries to cancel.
	ErrSourceMismatch = errors.Register(123, "not the swap source")

	// ErrNotExist is returned when cancelling a swap that is not
	// stored.
	ErrNotExist = errors.Register(124, "swap does not exist")

	// ErrActionMismatch is returned when the claimed action differs
	// from the one agreed on swap creation.
	ErrActionMismatch = errors.Register(125, "claim action mismatch")

	// ErrDurationNotPassed is returned when cancelling before the swap
	// end block.
	ErrDurationNotPassed = errors.Register(126, "swap duration not passed")
)
