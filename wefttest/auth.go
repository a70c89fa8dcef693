package wefttest

import (
	"context"
	"fmt"

	"github.com/hashlock-one/weft"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You
// can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is
	// a convenience attribute when creating an authentication method
	// for a single signer.
	Signer weft.Condition

	// Signers represents an authentication of multiple signers.
	Signers []weft.Condition
}

func (a *Auth) GetConditions(weft.Context) []weft.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx weft.Context, addr weft.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing the x.Authenticator interface.
//
// This implementation is using the context to store and retrieve
// conditions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx weft.Context, conditions ...weft.Condition) weft.Context {
	return context.WithValue(ctx, a.Key, conditions)
}

func (a *CtxAuth) GetConditions(ctx weft.Context) []weft.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]weft.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []weft.Condition got %T", ctx.Value(a.Key)))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx weft.Context, addr weft.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
