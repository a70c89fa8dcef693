package aswap

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/blake2b"

	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/errors"
	"github.com/hashlock-one/weft/x"
	"github.com/hashlock-one/weft/x/cash"
	common "github.com/tendermint/tendermint/libs/common"
)

const (
	// pay swap cost up-front
	createSwapCost int64 = 300
	cancelSwapCost int64 = 100
	claimSwapCost  int64 = 100
	// the claim pays for hashing the revealed preimage
	claimSwapCostPerByte int64 = 1

	// DefaultProofLimit is the preimage size limit used when the
	// configuration leaves it empty.
	DefaultProofLimit = 1024
)

// Config holds the runtime limits of this extension
type Config struct {
	// ProofLimit is the maximum preimage size in bytes accepted on
	// claim. Bounds the hashing work a single transaction can demand.
	ProofLimit int
}

func (c Config) proofLimit() int {
	if c.ProofLimit <= 0 {
		return DefaultProofLimit
	}
	return c.ProofLimit
}

// RegisterRoutes will instantiate and register all handlers in this
// package
func RegisterRoutes(r weft.Registry, auth x.Authenticator, ctrl cash.ReservableController, conf Config) {
	bucket := NewSwapBucket()
	executor := NewExecutor(ctrl)

	r.Handle(pathCreateSwap, CreateSwapHandler{auth, bucket, executor})
	r.Handle(pathClaimSwap, ClaimSwapHandler{auth, bucket, executor, conf.proofLimit()})
	r.Handle(pathCancelSwap, CancelSwapHandler{auth, bucket, executor})
}

// HashProof returns the blake2b-256 digest the swap store is keyed
// with
func HashProof(preimage []byte) []byte {
	hash := blake2b.Sum256(preimage)
	return hash[:]
}

//---- create

// CreateSwapHandler opens a swap, locking funds of the source
type CreateSwapHandler struct {
	auth     x.Authenticator
	bucket   SwapBucket
	executor Executor
}

var _ weft.Handler = CreateSwapHandler{}

// Check does the validation and sets the cost of the transaction
func (h CreateSwapHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return weft.NewCheck(createSwapCost+h.executor.Cost(msg.Action), ""), nil
}

// Deliver reserves the action funds on the source account and stores
// the swap under (target, preimage hash).
func (h CreateSwapHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	msg, source, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if h.bucket.Has(db, msg.Target, msg.PreimageHash) {
		return nil, errors.Wrapf(ErrAlreadyExist, "swap for %s", msg.Target)
	}

	if err := h.executor.Reserve(db, msg.Action, source); err != nil {
		return nil, errors.Wrap(err, "cannot reserve")
	}

	height, _ := weft.GetHeight(ctx)
	swap := &PendingSwap{
		Source:   source,
		Action:   msg.Action,
		EndBlock: height + msg.Duration,
		Memo:     msg.Memo,
	}
	if err := h.bucket.Save(db, msg.Target, msg.PreimageHash, swap); err != nil {
		return nil, err
	}

	// Consumers of the create fact do not read the store, so the tags
	// carry the whole record, not just its key.
	raw, err := swap.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize swap")
	}
	tags := swapTags("create", msg.Target, msg.PreimageHash)
	tags = append(tags, weft.Pair([]byte("aswap:swap"), raw))

	res := &weft.DeliverResult{
		Data: msg.PreimageHash,
		Tags: tags,
	}
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
// It returns the message along with the address of the swap source.
func (h CreateSwapHandler) validate(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*CreateSwapMsg, weft.Address, error) {
	var msg CreateSwapMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	source := x.MainSigner(ctx, h.auth)
	if source == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}

	return &msg, source.Address(), nil
}

//---- claim

// ClaimSwapHandler executes the swap action after the target reveals
// the preimage.
type ClaimSwapHandler struct {
	auth       x.Authenticator
	bucket     SwapBucket
	executor   Executor
	proofLimit int
}

var _ weft.Handler = ClaimSwapHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it
func (h ClaimSwapHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	msg, _, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	gas := claimSwapCost + claimSwapCostPerByte*int64(len(msg.Preimage)) + h.executor.Cost(msg.Action)
	return weft.NewCheck(gas, ""), nil
}

// Deliver executes the action and removes the swap. The swap is
// settled even when the transfer fails, so a claim cannot be retried
// with the preimage already public. The outcome is reported in the
// result tags.
func (h ClaimSwapHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	msg, target, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	preimageHash := HashProof(msg.Preimage)
	succeeded := true
	if err := h.executor.Claim(db, swap.Action, swap.Source, target); err != nil {
		succeeded = false
	}

	h.bucket.Delete(db, target, preimageHash)

	tags := swapTags("claim", target, preimageHash)
	tags = append(tags, weft.Pair([]byte("aswap:success"), []byte(strconv.FormatBool(succeeded))))
	res := &weft.DeliverResult{
		Data: preimageHash,
		Tags: tags,
	}
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h ClaimSwapHandler) validate(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*ClaimSwapMsg, weft.Address, *PendingSwap, error) {
	var msg ClaimSwapMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}

	if len(msg.Preimage) > h.proofLimit {
		return nil, nil, nil, errors.Wrapf(ErrProofTooLarge, "%d bytes with a limit of %d", len(msg.Preimage), h.proofLimit)
	}

	target := x.MainSigner(ctx, h.auth)
	if target == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	targetAddr := target.Address()

	swap, err := h.bucket.Get(db, targetAddr, HashProof(msg.Preimage))
	if err != nil {
		return nil, nil, nil, err
	}
	if swap == nil {
		return nil, nil, nil, ErrInvalidProof
	}

	if !swap.Action.Equals(msg.Action) {
		return nil, nil, nil, ErrActionMismatch
	}

	return &msg, targetAddr, swap, nil
}

//---- cancel

// CancelSwapHandler returns reserved funds to the source once the swap
// duration passed without a claim.
type CancelSwapHandler struct {
	auth     x.Authenticator
	bucket   SwapBucket
	executor Executor
}

var _ weft.Handler = CancelSwapHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it
func (h CancelSwapHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return weft.NewCheck(cancelSwapCost, ""), nil
}

// Deliver releases the reserved funds and removes the swap
func (h CancelSwapHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	msg, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Cancel fails only on storage faults, in which case nothing may
	// be removed.
	if err := h.executor.Cancel(db, swap.Action, swap.Source); err != nil {
		return nil, errors.Wrap(err, "cannot release")
	}

	h.bucket.Delete(db, msg.Target, msg.PreimageHash)

	res := &weft.DeliverResult{
		Tags: swapTags("cancel", msg.Target, msg.PreimageHash),
	}
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CancelSwapHandler) validate(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*CancelSwapMsg, *PendingSwap, error) {
	var msg CancelSwapMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	swap, err := h.bucket.Get(db, msg.Target, msg.PreimageHash)
	if err != nil {
		return nil, nil, err
	}
	if swap == nil {
		return nil, nil, ErrNotExist
	}

	source := x.MainSigner(ctx, h.auth)
	if source == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if !swap.Source.Equals(source.Address()) {
		return nil, nil, ErrSourceMismatch
	}

	height, _ := weft.GetHeight(ctx)
	if height < swap.EndBlock {
		return nil, nil, errors.Wrapf(ErrDurationNotPassed, "swap open until block %d", swap.EndBlock)
	}

	return &msg, swap, nil
}

// swapTags report the swap a delivered message settled, to make the
// result searchable.
func swapTags(action string, target weft.Address, preimageHash []byte) []common.KVPair {
	return []common.KVPair{
		weft.Pair([]byte("aswap:action"), []byte(action)),
		weft.Pair([]byte("aswap:target"), []byte(target.String())),
		weft.Pair([]byte("aswap:preimage-hash"), []byte(hex.EncodeToString(preimageHash))),
	}
}
