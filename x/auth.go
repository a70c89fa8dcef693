package x

import (
	"github.com/hashlock-one/weft"
)

// Authenticator extracts authentication info from the context. It is
// passed into the constructor of handlers, so we can plug in any
// authentication system, rather than hard-coding one for all
// extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want the GetAddresses helper
	GetConditions(weft.Context) []weft.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(weft.Context, weft.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx weft.Context) []weft.Condition {
	var res []weft.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx weft.Context, addr weft.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx weft.Context, auth Authenticator) []weft.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]weft.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil
func MainSigner(ctx weft.Context, auth Authenticator) weft.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx weft.Context, auth Authenticator, required []weft.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasAllConditions returns true if all elements in required are
// also in context.
func HasAllConditions(ctx weft.Context, auth Authenticator, required []weft.Condition) bool {
	perms := auth.GetConditions(ctx)
	for _, r := range required {
		if !hasPerm(perms, r) {
			return false
		}
	}
	return true
}

func hasPerm(perms []weft.Condition, perm weft.Condition) bool {
	for _, p := range perms {
		if p.Equals(perm) {
			return true
		}
	}
	return false
}
