package aswap

import (
	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/errors"
)

const (
	pathCreateSwap = "aswap/create"
	pathClaimSwap  = "aswap/claim"
	pathCancelSwap = "aswap/cancel"

	// preimage hash size in bytes
	preimageHashSize int = 32

	maxMemoSize int = 128
)

var _ weft.Msg = (*CreateSwapMsg)(nil)
var _ weft.Msg = (*ClaimSwapMsg)(nil)
var _ weft.Msg = (*CancelSwapMsg)(nil)

// ROUTING, Path method fulfills weft.Msg interface to allow routing

func (CreateSwapMsg) Path() string {
	return pathCreateSwap
}

func (ClaimSwapMsg) Path() string {
	return pathClaimSwap
}

func (CancelSwapMsg) Path() string {
	return pathCancelSwap
}

// VALIDATION, Validate method makes sure basic rules are enforced upon
// input data and fulfills the weft.Msg interface

func (m *CreateSwapMsg) Validate() error {
	if err := m.Target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	if err := validatePreimageHash(m.PreimageHash); err != nil {
		return err
	}
	if err := m.Action.Validate(); err != nil {
		return errors.Wrap(err, "action")
	}
	if m.Duration <= 0 {
		// A swap that can be cancelled in the same block gives the
		// target no time to claim it.
		return errors.Wrap(errors.ErrInvalidInput, "duration must be at least one block")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInvalidInput, "memo is longer than %d characters", maxMemoSize)
	}
	return nil
}

func (m *ClaimSwapMsg) Validate() error {
	if len(m.Preimage) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "preimage is required")
	}
	// The upper size limit is runtime configuration, checked by the
	// handler.
	if err := m.Action.Validate(); err != nil {
		return errors.Wrap(err, "action")
	}
	return nil
}

func (m *CancelSwapMsg) Validate() error {
	if err := m.Target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	return validatePreimageHash(m.PreimageHash)
}

func validatePreimageHash(preimageHash []byte) error {
	if len(preimageHash) != preimageHashSize {
		return errors.Wrapf(errors.ErrInvalidInput,
			"preimage hash is blake2b-256 and therefore must be exactly %d bytes", preimageHashSize)
	}
	return nil
}
