package aswap

import (
	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/coin"
	"github.com/hashlock-one/weft/errors"
	"github.com/hashlock-one/weft/x/cash"
)

// balanceActionCost is the gas charged on top of the base message cost
// for executing a balance transfer action.
const balanceActionCost int64 = 100

// Validate ensures exactly one action variant is set and that it is
// well formed.
func (a *SwapAction) Validate() error {
	if a == nil {
		return errors.Wrap(errors.ErrEmpty, "action is required")
	}
	if a.Balance == nil {
		return errors.Wrap(errors.ErrInvalidInput, "action variant is required")
	}
	amount := coin.Coins(a.Balance.Amount)
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	return nil
}

// Equals returns true when both actions carry the same variant with
// the same content. Claiming requires the action to match what was
// agreed on creation, so that the counterparty cannot change the terms.
func (a *SwapAction) Equals(o *SwapAction) bool {
	if a == nil || o == nil {
		return a == nil && o == nil
	}
	if (a.Balance == nil) != (o.Balance == nil) {
		return false
	}
	if a.Balance != nil {
		if !coin.Coins(a.Balance.Amount).Equals(coin.Coins(o.Balance.Amount)) {
			return false
		}
	}
	return true
}

// Executor applies swap actions against accounts. It binds the
// declarative SwapAction to the cash controller that can move the
// funds.
type Executor struct {
	ctrl cash.ReservableController
}

// NewExecutor returns an Executor moving funds through the given
// controller
func NewExecutor(ctrl cash.ReservableController) Executor {
	return Executor{ctrl: ctrl}
}

// Reserve locks the funds the action needs on the source account. It
// is called when a swap is created and fails when the source cannot
// cover the action.
func (e Executor) Reserve(db weft.KVStore, action *SwapAction, source weft.Address) error {
	return e.ctrl.Reserve(db, source, coin.Coins(action.Balance.Amount))
}

// Claim executes the action, moving the reserved funds from the source
// to the target.
func (e Executor) Claim(db weft.KVStore, action *SwapAction, source weft.Address, target weft.Address) error {
	return e.ctrl.Repatriate(db, source, target, coin.Coins(action.Balance.Amount))
}

// Cancel returns the reserved funds to the free balance of the source
func (e Executor) Cancel(db weft.KVStore, action *SwapAction, source weft.Address) error {
	return e.ctrl.Unreserve(db, source, coin.Coins(action.Balance.Amount))
}

// Cost returns the gas weight of executing this action. Each variant
// carries its own weight, so adding a variant means declaring one here.
func (e Executor) Cost(action *SwapAction) int64 {
	if action == nil {
		return 0
	}
	if action.Balance != nil {
		return balanceActionCost
	}
	return 0
}
