package x

import (
	"context"
	"testing"

	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/wefttest"
	"github.com/hashlock-one/weft/wefttest/assert"
)

func TestAuth(t *testing.T) {
	a := wefttest.NewCondition()
	b := wefttest.NewCondition()
	c := wefttest.NewCondition()

	ctx1 := &wefttest.CtxAuth{Key: "foo"}
	ctx2 := &wefttest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          weft.Context
		auth         Authenticator
		mainSigner   weft.Condition
		wantInCtx    weft.Condition
		wantNotInCtx weft.Condition
		wantAll      []weft.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &wefttest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &wefttest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []weft.Condition{a},
		},
		"chained authenticators": {
			ctx: context.Background(),
			auth: ChainAuth(
				&wefttest.Auth{Signer: b},
				&wefttest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []weft.Condition{b, a},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []weft.Condition{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))

			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition address that was expected in context not found")
			}
			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("condition address that was expected not to be in context found")
			}

			all := tc.auth.GetConditions(tc.ctx)
			assert.Equal(t, tc.wantAll, all)

			if !HasAllConditions(tc.ctx, tc.auth, all) {
				t.Fatal("all conditions from the context must be fulfilled")
			}
			if !HasAllAddresses(tc.ctx, tc.auth, GetAddresses(tc.ctx, tc.auth)) {
				t.Fatal("all addresses from the context must be fulfilled")
			}
			if HasAllConditions(tc.ctx, tc.auth, append(all, c)) {
				t.Fatal("foreign condition must not be fulfilled")
			}
		})
	}
}
