package cash

import (
	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/coin"
	"github.com/hashlock-one/weft/errors"
)

// BucketName is where we store the wallets
const BucketName = "cash"

// Validate requires that all coin sets are normalized and that nothing
// is negative. Reserved funds were taken from the free balance, so both
// sets follow the same rules.
func (w *Wallet) Validate() error {
	if err := coin.Coins(w.Coins).Validate(); err != nil {
		return errors.Wrap(err, "coins")
	}
	if !coin.Coins(w.Coins).IsNonNegative() {
		return errors.Wrap(errors.ErrInvalidAmount, "negative coins")
	}
	if err := coin.Coins(w.Reserved).Validate(); err != nil {
		return errors.Wrap(err, "reserved")
	}
	if !coin.Coins(w.Reserved).IsNonNegative() {
		return errors.Wrap(errors.ErrInvalidAmount, "negative reserved")
	}
	return nil
}

// Copy makes a deep copy of the wallet
func (w *Wallet) Copy() *Wallet {
	return &Wallet{
		Coins:    coin.Coins(w.Coins).Clone(),
		Reserved: coin.Coins(w.Reserved).Clone(),
	}
}

// IsEmpty is true when the wallet holds nothing, neither free nor
// reserved. Empty wallets are not persisted.
func (w *Wallet) IsEmpty() bool {
	return w == nil ||
		(coin.Coins(w.Coins).IsEmpty() && coin.Coins(w.Reserved).IsEmpty())
}

// WalletBucket reads and writes wallets, keyed by the owner address.
type WalletBucket struct {
	prefix []byte
}

// NewWalletBucket initializes a WalletBucket with the default name
func NewWalletBucket() WalletBucket {
	return WalletBucket{
		prefix: []byte(BucketName + ":"),
	}
}

// DBKey returns the database key a wallet is stored under
func (b WalletBucket) DBKey(addr weft.Address) []byte {
	return append(append([]byte{}, b.prefix...), addr...)
}

// Get loads the wallet for this address, or returns nil if none is
// stored.
func (b WalletBucket) Get(db weft.KVStore, addr weft.Address) (*Wallet, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	raw := db.Get(b.DBKey(addr))
	if raw == nil {
		return nil, nil
	}
	var w Wallet
	if err := w.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "cannot parse wallet")
	}
	return &w, nil
}

// GetOrCreate loads the wallet for this address, initializing an empty
// one if none is stored yet.
func (b WalletBucket) GetOrCreate(db weft.KVStore, addr weft.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = new(Wallet)
	}
	return w, nil
}

// Save persists the wallet under this address. An empty wallet is
// removed from the database instead.
func (b WalletBucket) Save(db weft.KVStore, addr weft.Address, w *Wallet) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	if w.IsEmpty() {
		db.Delete(b.DBKey(addr))
		return nil
	}
	if err := w.Validate(); err != nil {
		return err
	}
	raw, err := w.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize wallet")
	}
	db.Set(b.DBKey(addr), raw)
	return nil
}
