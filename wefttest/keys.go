package wefttest

import (
	"crypto/rand"

	"github.com/hashlock-one/weft"
)

// NewCondition returns a random condition. Each call produces a
// different address.
func NewCondition() weft.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return weft.NewCondition("sigs", "ed25519", data)
}
