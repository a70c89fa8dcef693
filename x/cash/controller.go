package cash

import (
	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/coin"
	"github.com/hashlock-one/weft/errors"
)

// CoinMover moves funds between accounts and mints them on genesis
// initialization.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account. It fails on insufficient funds.
	MoveCoins(store weft.KVStore, src weft.Address, dest weft.Address, amount coin.Coins) error

	// IssueCoins increases the balance of the destination account by
	// the given amount, without a source.
	IssueCoins(store weft.KVStore, dest weft.Address, amount coin.Coins) error
}

// Balancer provides read access to an account balance
type Balancer interface {
	Balance(store weft.KVStore, addr weft.Address) (coin.Coins, error)
}

// Controller is the full interface to move and inspect funds
type Controller interface {
	CoinMover
	Balancer
}

// ReservableController extends Controller with a lock on funds. A
// reservation moves funds out of the spendable balance without leaving
// the account. Reserved funds can be released back, or repatriated to
// another account.
type ReservableController interface {
	Controller

	// Reserve locks the given amount of the account's free balance.
	// Fails if the free balance is insufficient.
	Reserve(store weft.KVStore, addr weft.Address, amount coin.Coins) error

	// Unreserve releases previously reserved funds back to the free
	// balance of the same account.
	Unreserve(store weft.KVStore, addr weft.Address, amount coin.Coins) error

	// Repatriate moves reserved funds of the source account into the
	// free balance of the destination account.
	Repatriate(store weft.KVStore, src weft.Address, dest weft.Address, amount coin.Coins) error
}

// CashController implements ReservableController on top of a
// WalletBucket
type CashController struct {
	bucket WalletBucket
}

var _ ReservableController = CashController{}

// NewController returns a CashController using the given bucket
func NewController(bucket WalletBucket) CashController {
	return CashController{bucket: bucket}
}

// Balance returns the free coins of the account. A missing wallet is
// an empty balance, not an error.
func (c CashController) Balance(store weft.KVStore, addr weft.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(store, addr)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	return coin.Coins(w.Coins), nil
}

// MoveCoins removes funds from the free balance of src and adds them
// to the free balance of dest.
func (c CashController) MoveCoins(store weft.KVStore, src weft.Address, dest weft.Address, amount coin.Coins) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "must move positive amount")
	}
	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "account %s", src)
	}
	remainder, err := coin.Coins(sender.Coins).Deduct(amount)
	if err != nil {
		return err
	}
	sender.Coins = remainder

	if src.Equals(dest) {
		// a self transfer only proves the funds exist
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	joint, err := coin.Coins(recipient.Coins).Combine(amount)
	if err != nil {
		return err
	}
	recipient.Coins = joint

	if err := c.bucket.Save(store, src, sender); err != nil {
		return err
	}
	return c.bucket.Save(store, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to the
// destination account, minting them from nowhere. Used to distribute
// genesis funds.
func (c CashController) IssueCoins(store weft.KVStore, dest weft.Address, amount coin.Coins) error {
	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	joint, err := coin.Coins(recipient.Coins).Combine(amount)
	if err != nil {
		return err
	}
	recipient.Coins = joint
	return c.bucket.Save(store, dest, recipient)
}

// Reserve locks the given amount of the account's free balance
func (c CashController) Reserve(store weft.KVStore, addr weft.Address, amount coin.Coins) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "must reserve positive amount")
	}
	w, err := c.bucket.Get(store, addr)
	if err != nil {
		return err
	}
	if w == nil {
		return errors.Wrapf(errors.ErrEmpty, "account %s", addr)
	}
	free, err := coin.Coins(w.Coins).Deduct(amount)
	if err != nil {
		return err
	}
	locked, err := coin.Coins(w.Reserved).Combine(amount)
	if err != nil {
		return err
	}
	w.Coins = free
	w.Reserved = locked
	return c.bucket.Save(store, addr, w)
}

// Unreserve releases previously reserved funds back to the free
// balance
func (c CashController) Unreserve(store weft.KVStore, addr weft.Address, amount coin.Coins) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "must release positive amount")
	}
	w, err := c.bucket.Get(store, addr)
	if err != nil {
		return err
	}
	if w == nil {
		return errors.Wrapf(errors.ErrEmpty, "account %s", addr)
	}
	locked, err := coin.Coins(w.Reserved).Deduct(amount)
	if err != nil {
		return err
	}
	free, err := coin.Coins(w.Coins).Combine(amount)
	if err != nil {
		return err
	}
	w.Reserved = locked
	w.Coins = free
	return c.bucket.Save(store, addr, w)
}

// Repatriate moves reserved funds of src into the free balance of dest
func (c CashController) Repatriate(store weft.KVStore, src weft.Address, dest weft.Address, amount coin.Coins) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "must repatriate positive amount")
	}
	if src.Equals(dest) {
		return c.Unreserve(store, src, amount)
	}
	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "account %s", src)
	}
	locked, err := coin.Coins(sender.Reserved).Deduct(amount)
	if err != nil {
		return err
	}
	sender.Reserved = locked

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	free, err := coin.Coins(recipient.Coins).Combine(amount)
	if err != nil {
		return err
	}
	recipient.Coins = free

	if err := c.bucket.Save(store, src, sender); err != nil {
		return err
	}
	return c.bucket.Save(store, dest, recipient)
}
