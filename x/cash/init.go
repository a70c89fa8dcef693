package cash

import (
	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/coin"
	"github.com/hashlock-one/weft/errors"
)

// Initializer fulfils the weft.Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weft.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account balances from the genesis and
// issue them.
func (Initializer) FromGenesis(opts weft.Options, kv weft.KVStore) error {
	var accounts []struct {
		Address weft.Address `json:"address"`
		Coins   coin.Coins   `json:"coins"`
	}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(err, "cannot parse cash genesis")
	}

	ctrl := NewController(NewWalletBucket())
	for _, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrap(err, "address")
		}
		if err := ctrl.IssueCoins(kv, acc.Address, acc.Coins); err != nil {
			return errors.Wrapf(err, "cannot issue to %s", acc.Address)
		}
	}
	return nil
}
