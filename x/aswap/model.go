package aswap

import (
	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/errors"
)

// BucketName is where we store the open swaps
const BucketName = "aswap"

// Validate ensures the PendingSwap is valid
func (s *PendingSwap) Validate() error {
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Action.Validate(); err != nil {
		return errors.Wrap(err, "action")
	}
	if s.EndBlock <= 0 {
		return errors.Wrap(errors.ErrInvalidModel, "end block is required")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInvalidModel, "memo is longer than %d characters", maxMemoSize)
	}
	return nil
}

// Copy makes a deep copy of the swap
func (s *PendingSwap) Copy() *PendingSwap {
	var action *SwapAction
	if s.Action != nil {
		raw, err := s.Action.Marshal()
		if err != nil {
			panic(err)
		}
		action = new(SwapAction)
		if err := action.Unmarshal(raw); err != nil {
			panic(err)
		}
	}
	return &PendingSwap{
		Source:   s.Source.Clone(),
		Action:   action,
		EndBlock: s.EndBlock,
		Memo:     s.Memo,
	}
}

// OpenSwap pairs a pending swap with the preimage hash it is stored
// under. Returned when listing the swaps of a recipient.
type OpenSwap struct {
	PreimageHash []byte
	Swap         *PendingSwap
}

// SwapBucket reads and writes pending swaps. A swap is keyed by the
// recipient address followed by the preimage hash, so one recipient
// can have many open swaps, but only one per secret.
type SwapBucket struct {
	prefix []byte
}

// NewSwapBucket initializes a SwapBucket with the default name
func NewSwapBucket() SwapBucket {
	return SwapBucket{
		prefix: []byte(BucketName + ":"),
	}
}

// DBKey returns the database key of a swap
func (b SwapBucket) DBKey(target weft.Address, preimageHash []byte) []byte {
	key := make([]byte, 0, len(b.prefix)+len(target)+len(preimageHash))
	key = append(key, b.prefix...)
	key = append(key, target...)
	return append(key, preimageHash...)
}

// Has returns true if a swap is stored under (target, preimageHash)
func (b SwapBucket) Has(db weft.KVStore, target weft.Address, preimageHash []byte) bool {
	return db.Has(b.DBKey(target, preimageHash))
}

// Get loads the swap stored under (target, preimageHash), or returns
// nil if none is open.
func (b SwapBucket) Get(db weft.KVStore, target weft.Address, preimageHash []byte) (*PendingSwap, error) {
	raw := db.Get(b.DBKey(target, preimageHash))
	if raw == nil {
		return nil, nil
	}
	var swap PendingSwap
	if err := swap.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "cannot parse swap")
	}
	return &swap, nil
}

// Save persists the swap under (target, preimageHash)
func (b SwapBucket) Save(db weft.KVStore, target weft.Address, preimageHash []byte, swap *PendingSwap) error {
	if err := target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	if err := validatePreimageHash(preimageHash); err != nil {
		return err
	}
	if err := swap.Validate(); err != nil {
		return err
	}
	raw, err := swap.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize swap")
	}
	db.Set(b.DBKey(target, preimageHash), raw)
	return nil
}

// Delete removes the swap stored under (target, preimageHash). It is
// not an error if no swap is stored there.
func (b SwapBucket) Delete(db weft.KVStore, target weft.Address, preimageHash []byte) {
	db.Delete(b.DBKey(target, preimageHash))
}

// ByTarget returns all open swaps one recipient can claim, ordered by
// preimage hash.
func (b SwapBucket) ByTarget(db weft.KVStore, target weft.Address) ([]OpenSwap, error) {
	if err := target.Validate(); err != nil {
		return nil, errors.Wrap(err, "target")
	}
	start := b.DBKey(target, nil)
	iter := db.Iterator(start, prefixEnd(start))
	defer iter.Close()

	var res []OpenSwap
	for ; iter.Valid(); iter.Next() {
		var swap PendingSwap
		if err := swap.Unmarshal(iter.Value()); err != nil {
			return nil, errors.Wrap(err, "cannot parse swap")
		}
		hash := append([]byte{}, iter.Key()[len(start):]...)
		res = append(res, OpenSwap{PreimageHash: hash, Swap: &swap})
	}
	return res, nil
}

// prefixEnd returns the lowest key that is above all keys starting
// with the prefix
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	// all 0xff, open ended range
	return nil
}
