package aswap_test

import (
	"context"
	"testing"

	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/app"
	"github.com/hashlock-one/weft/coin"
	"github.com/hashlock-one/weft/errors"
	"github.com/hashlock-one/weft/store"
	"github.com/hashlock-one/weft/wefttest"
	"github.com/hashlock-one/weft/wefttest/assert"
	"github.com/hashlock-one/weft/x"
	"github.com/hashlock-one/weft/x/aswap"
	"github.com/hashlock-one/weft/x/cash"
)

var (
	swapCoin     = coin.NewCoin(0, 1, "TEST")
	initialCoins = coin.Coins{coin.NewCoinp(1, 1, "TEST")}
)

func swapAction() *aswap.SwapAction {
	c := swapCoin
	return &aswap.SwapAction{
		Balance: &aswap.BalanceSwapAction{
			Amount: []*coin.Coin{&c},
		},
	}
}

func TestCreateHandler(t *testing.T) {
	alice := wefttest.NewCondition()
	bob := wefttest.NewCondition()

	bank := cash.NewWalletBucket()
	ctrl := cash.NewController(bank)
	bucket := aswap.NewSwapBucket()

	r := app.NewRouter()
	authenticator := &wefttest.CtxAuth{Key: "auth"}
	auth := x.ChainAuth(authenticator)
	aswap.RegisterRoutes(r, auth, ctrl, aswap.Config{})

	preimageHash := aswap.HashProof([]byte("secret"))

	cases := map[string]struct {
		setup          func(ctx weft.Context, db weft.KVStore) weft.Context
		mutator        func(msg *aswap.CreateSwapMsg)
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		check          func(t *testing.T, db weft.KVStore, res *weft.DeliverResult)
	}{
		"happy path": {
			setup: func(ctx weft.Context, db weft.KVStore) weft.Context {
				assert.Nil(t, ctrl.IssueCoins(db, alice.Address(), initialCoins))
				return authenticator.SetConditions(ctx, alice)
			},
			check: func(t *testing.T, db weft.KVStore, res *weft.DeliverResult) {
				swap, err := bucket.Get(db, bob.Address(), preimageHash)
				assert.Nil(t, err)
				if swap == nil {
					t.Fatal("swap not stored")
				}
				assert.Equal(t, alice.Address(), swap.Source)
				assert.Equal(t, int64(500+10), swap.EndBlock)

				w, err := bank.Get(db, alice.Address())
				assert.Nil(t, err)
				assert.Equal(t, true, coin.Coins(w.Reserved).Contains(swapCoin))

				// the emitted fact carries the whole record, so a
				// consumer does not need store access
				var raw []byte
				for _, tag := range res.Tags {
					if string(tag.Key) == "aswap:swap" {
						raw = tag.Value
					}
				}
				if raw == nil {
					t.Fatal("create fact carries no swap record")
				}
				var emitted aswap.PendingSwap
				assert.Nil(t, emitted.Unmarshal(raw))
				assert.Equal(t, alice.Address(), emitted.Source)
				assert.Equal(t, int64(500+10), emitted.EndBlock)
				assert.Equal(t, true, emitted.Action.Equals(swapAction()))
			},
		},
		"invalid message": {
			mutator: func(msg *aswap.CreateSwapMsg) {
				msg.PreimageHash = nil
			},
			wantCheckErr:   errors.ErrInvalidInput,
			wantDeliverErr: errors.ErrInvalidInput,
		},
		"invalid duration": {
			setup: func(ctx weft.Context, db weft.KVStore) weft.Context {
				return authenticator.SetConditions(ctx, alice)
			},
			mutator: func(msg *aswap.CreateSwapMsg) {
				msg.Duration = 0
			},
			wantCheckErr:   errors.ErrInvalidInput,
			wantDeliverErr: errors.ErrInvalidInput,
		},
		"no signer": {
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"empty account": {
			setup: func(ctx weft.Context, db weft.KVStore) weft.Context {
				return authenticator.SetConditions(ctx, alice)
			},
			wantDeliverErr: errors.ErrEmpty,
		},
		"duplicate swap": {
			setup: func(ctx weft.Context, db weft.KVStore) weft.Context {
				assert.Nil(t, ctrl.IssueCoins(db, alice.Address(), initialCoins))
				ctx = authenticator.SetConditions(ctx, alice)
				tx := &wefttest.Tx{Msg: &aswap.CreateSwapMsg{
					Target:       bob.Address(),
					PreimageHash: preimageHash,
					Action:       swapAction(),
					Duration:     10,
				}}
				if _, err := r.Deliver(ctx, db, tx); err != nil {
					t.Fatalf("cannot create first swap: %+v", err)
				}
				return ctx
			},
			wantDeliverErr: aswap.ErrAlreadyExist,
		},
	}

	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			ctx := weft.WithHeight(context.Background(), 500)
			if spec.setup != nil {
				ctx = spec.setup(ctx, db)
			}

			msg := &aswap.CreateSwapMsg{
				Target:       bob.Address(),
				PreimageHash: preimageHash,
				Action:       swapAction(),
				Duration:     10,
			}
			if spec.mutator != nil {
				spec.mutator(msg)
			}
			tx := &wefttest.Tx{Msg: msg}

			cache := db.CacheWrap()
			if _, err := r.Check(ctx, cache, tx); !spec.wantCheckErr.Is(err) {
				t.Fatalf("check expected %+v but got %+v", spec.wantCheckErr, err)
			}
			cache.Discard()

			res, err := r.Deliver(ctx, db, tx)
			if !spec.wantDeliverErr.Is(err) {
				t.Fatalf("deliver expected %+v but got %+v", spec.wantDeliverErr, err)
			}
			if spec.check != nil {
				spec.check(t, db, res)
			}
		})
	}
}

func TestClaimHandler(t *testing.T) {
	alice := wefttest.NewCondition()
	bob := wefttest.NewCondition()
	pete := wefttest.NewCondition()

	bank := cash.NewWalletBucket()
	ctrl := cash.NewController(bank)
	bucket := aswap.NewSwapBucket()

	r := app.NewRouter()
	authenticator := &wefttest.CtxAuth{Key: "auth"}
	auth := x.ChainAuth(authenticator)
	aswap.RegisterRoutes(r, auth, ctrl, aswap.Config{})

	preimage := []byte("the atomic swap secret")
	preimageHash := aswap.HashProof(preimage)

	// createSwap opens the default swap from alice to bob
	createSwap := func(t *testing.T, db weft.KVStore) {
		t.Helper()
		assert.Nil(t, ctrl.IssueCoins(db, alice.Address(), initialCoins))
		ctx := weft.WithHeight(context.Background(), 500)
		ctx = authenticator.SetConditions(ctx, alice)
		tx := &wefttest.Tx{Msg: &aswap.CreateSwapMsg{
			Target:       bob.Address(),
			PreimageHash: preimageHash,
			Action:       swapAction(),
			Duration:     10,
		}}
		if _, err := r.Deliver(ctx, db, tx); err != nil {
			t.Fatalf("cannot create swap: %+v", err)
		}
	}

	cases := map[string]struct {
		signer         weft.Condition
		mutator        func(msg *aswap.ClaimSwapMsg)
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		check          func(t *testing.T, db weft.KVStore)
	}{
		"happy path": {
			signer: bob,
			check: func(t *testing.T, db weft.KVStore) {
				swap, err := bucket.Get(db, bob.Address(), preimageHash)
				assert.Nil(t, err)
				if swap != nil {
					t.Fatal("swap not removed")
				}

				got, err := ctrl.Balance(db, bob.Address())
				assert.Nil(t, err)
				assert.Equal(t, true, got.Contains(swapCoin))

				w, err := bank.Get(db, alice.Address())
				assert.Nil(t, err)
				assert.Equal(t, true, coin.Coins(w.Reserved).IsEmpty())
			},
		},
		"wrong preimage": {
			signer: bob,
			mutator: func(msg *aswap.ClaimSwapMsg) {
				msg.Preimage = []byte("a different secret")
			},
			wantCheckErr:   aswap.ErrInvalidProof,
			wantDeliverErr: aswap.ErrInvalidProof,
		},
		"oversized preimage": {
			signer: bob,
			mutator: func(msg *aswap.ClaimSwapMsg) {
				msg.Preimage = make([]byte, aswap.DefaultProofLimit+1)
			},
			wantCheckErr:   aswap.ErrProofTooLarge,
			wantDeliverErr: aswap.ErrProofTooLarge,
		},
		"action mismatch": {
			signer: bob,
			mutator: func(msg *aswap.ClaimSwapMsg) {
				msg.Action.Balance.Amount = []*coin.Coin{coin.NewCoinp(5, 0, "TEST")}
			},
			wantCheckErr:   aswap.ErrActionMismatch,
			wantDeliverErr: aswap.ErrActionMismatch,
		},
		"not the target": {
			signer:         pete,
			wantCheckErr:   aswap.ErrInvalidProof,
			wantDeliverErr: aswap.ErrInvalidProof,
		},
	}

	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			createSwap(t, db)

			ctx := weft.WithHeight(context.Background(), 501)
			if spec.signer != nil {
				ctx = authenticator.SetConditions(ctx, spec.signer)
			}

			msg := &aswap.ClaimSwapMsg{
				Preimage: preimage,
				Action:   swapAction(),
			}
			if spec.mutator != nil {
				spec.mutator(msg)
			}
			tx := &wefttest.Tx{Msg: msg}

			cache := db.CacheWrap()
			if _, err := r.Check(ctx, cache, tx); !spec.wantCheckErr.Is(err) {
				t.Fatalf("check expected %+v but got %+v", spec.wantCheckErr, err)
			}
			cache.Discard()

			if _, err := r.Deliver(ctx, db, tx); !spec.wantDeliverErr.Is(err) {
				t.Fatalf("deliver expected %+v but got %+v", spec.wantDeliverErr, err)
			}
			if spec.check != nil {
				spec.check(t, db)
			}
		})
	}
}

func TestClaimSettlesEvenWhenTransferFails(t *testing.T) {
	// Corrupting the reserved funds after swap creation makes the
	// transfer fail. The claim must still remove the swap, because the
	// preimage is public once the claim transaction was broadcast.
	alice := wefttest.NewCondition()
	bob := wefttest.NewCondition()

	bank := cash.NewWalletBucket()
	ctrl := cash.NewController(bank)
	bucket := aswap.NewSwapBucket()

	r := app.NewRouter()
	authenticator := &wefttest.CtxAuth{Key: "auth"}
	auth := x.ChainAuth(authenticator)
	aswap.RegisterRoutes(r, auth, ctrl, aswap.Config{})

	preimage := []byte("the atomic swap secret")
	preimageHash := aswap.HashProof(preimage)

	db := store.MemStore()
	assert.Nil(t, ctrl.IssueCoins(db, alice.Address(), initialCoins))
	ctx := weft.WithHeight(context.Background(), 500)
	createCtx := authenticator.SetConditions(ctx, alice)
	createTx := &wefttest.Tx{Msg: &aswap.CreateSwapMsg{
		Target:       bob.Address(),
		PreimageHash: preimageHash,
		Action:       swapAction(),
		Duration:     10,
	}}
	if _, err := r.Deliver(createCtx, db, createTx); err != nil {
		t.Fatalf("cannot create swap: %+v", err)
	}

	// drop the reservation behind the extension's back
	w, err := bank.Get(db, alice.Address())
	assert.Nil(t, err)
	w.Reserved = nil
	assert.Nil(t, bank.Save(db, alice.Address(), w))

	claimCtx := authenticator.SetConditions(ctx, bob)
	claimTx := &wefttest.Tx{Msg: &aswap.ClaimSwapMsg{
		Preimage: preimage,
		Action:   swapAction(),
	}}
	res, err := r.Deliver(claimCtx, db, claimTx)
	assert.Nil(t, err)

	swap, err := bucket.Get(db, bob.Address(), preimageHash)
	assert.Nil(t, err)
	if swap != nil {
		t.Fatal("swap not removed")
	}

	var success string
	for _, tag := range res.Tags {
		if string(tag.Key) == "aswap:success" {
			success = string(tag.Value)
		}
	}
	assert.Equal(t, "false", success)

	// bob received nothing
	got, err := ctrl.Balance(db, bob.Address())
	assert.Nil(t, err)
	assert.Equal(t, true, got.IsEmpty())
}

func TestCancelHandler(t *testing.T) {
	alice := wefttest.NewCondition()
	bob := wefttest.NewCondition()
	pete := wefttest.NewCondition()

	bank := cash.NewWalletBucket()
	ctrl := cash.NewController(bank)
	bucket := aswap.NewSwapBucket()

	r := app.NewRouter()
	authenticator := &wefttest.CtxAuth{Key: "auth"}
	auth := x.ChainAuth(authenticator)
	aswap.RegisterRoutes(r, auth, ctrl, aswap.Config{})

	preimageHash := aswap.HashProof([]byte("secret"))

	createSwap := func(t *testing.T, db weft.KVStore) {
		t.Helper()
		assert.Nil(t, ctrl.IssueCoins(db, alice.Address(), initialCoins))
		ctx := weft.WithHeight(context.Background(), 500)
		ctx = authenticator.SetConditions(ctx, alice)
		tx := &wefttest.Tx{Msg: &aswap.CreateSwapMsg{
			Target:       bob.Address(),
			PreimageHash: preimageHash,
			Action:       swapAction(),
			Duration:     10,
		}}
		if _, err := r.Deliver(ctx, db, tx); err != nil {
			t.Fatalf("cannot create swap: %+v", err)
		}
	}

	cases := map[string]struct {
		signer         weft.Condition
		height         int64
		mutator        func(msg *aswap.CancelSwapMsg)
		wantDeliverErr *errors.Error
		check          func(t *testing.T, db weft.KVStore)
	}{
		"happy path": {
			signer: alice,
			height: 510,
			check: func(t *testing.T, db weft.KVStore) {
				swap, err := bucket.Get(db, bob.Address(), preimageHash)
				assert.Nil(t, err)
				if swap != nil {
					t.Fatal("swap not removed")
				}

				got, err := ctrl.Balance(db, alice.Address())
				assert.Nil(t, err)
				assert.Equal(t, true, got.Equals(initialCoins))

				w, err := bank.Get(db, alice.Address())
				assert.Nil(t, err)
				assert.Equal(t, true, coin.Coins(w.Reserved).IsEmpty())
			},
		},
		"unknown swap": {
			signer: alice,
			height: 510,
			mutator: func(msg *aswap.CancelSwapMsg) {
				msg.PreimageHash = aswap.HashProof([]byte("unknown"))
			},
			wantDeliverErr: aswap.ErrNotExist,
		},
		"not the source": {
			signer:         pete,
			height:         510,
			wantDeliverErr: aswap.ErrSourceMismatch,
		},
		"too early": {
			signer:         alice,
			height:         509,
			wantDeliverErr: aswap.ErrDurationNotPassed,
		},
	}

	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			createSwap(t, db)

			ctx := weft.WithHeight(context.Background(), spec.height)
			ctx = authenticator.SetConditions(ctx, spec.signer)

			msg := &aswap.CancelSwapMsg{
				Target:       bob.Address(),
				PreimageHash: preimageHash,
			}
			if spec.mutator != nil {
				spec.mutator(msg)
			}
			tx := &wefttest.Tx{Msg: msg}

			if _, err := r.Deliver(ctx, db, tx); !spec.wantDeliverErr.Is(err) {
				t.Fatalf("deliver expected %+v but got %+v", spec.wantDeliverErr, err)
			}
			if spec.check != nil {
				spec.check(t, db)
			}
		})
	}
}
