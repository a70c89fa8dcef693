package weft_test

import (
	"encoding/json"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/errors"
	"github.com/hashlock-one/weft/wefttest/assert"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexadecimal address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := weft.Address(b)

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
	})

	Convey("test nil address printing", t, func() {
		var addr weft.Address

		So(addr.String(), ShouldEqual, "(nil)")
	})
}

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		addr    weft.Address
		wantErr *errors.Error
	}{
		"valid address": {
			addr: make(weft.Address, weft.AddressLength),
		},
		"nil address": {
			addr:    nil,
			wantErr: errors.ErrEmpty,
		},
		"too short": {
			addr:    make(weft.Address, weft.AddressLength-1),
			wantErr: errors.ErrInvalidInput,
		},
		"too long": {
			addr:    make(weft.Address, weft.AddressLength+1),
			wantErr: errors.ErrInvalidInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if err := tc.addr.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestAddressJSONRoundtrip(t *testing.T) {
	addr := weft.NewCondition("sigs", "ed25519", []byte("some-data")).Address()

	raw, err := json.Marshal(addr)
	assert.Nil(t, err)

	var got weft.Address
	assert.Nil(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	// the wire format is upper-case hex
	var enc string
	assert.Nil(t, json.Unmarshal(raw, &enc))
	assert.Equal(t, addr.String(), enc)
}

func TestConditionParse(t *testing.T) {
	cond := weft.NewCondition("aswap", "pre_hash", []byte("condition-data"))

	ext, typ, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "aswap", ext)
	assert.Equal(t, "pre_hash", typ)
	assert.Equal(t, []byte("condition-data"), data)

	// a raw byte blob is not a parseable condition
	_, _, _, err = weft.Condition("garbage").Parse()
	if !errors.ErrInvalidInput.Is(err) {
		t.Fatalf("want invalid input, got %+v", err)
	}
}

func TestConditionAddress(t *testing.T) {
	a := weft.NewCondition("sigs", "ed25519", []byte("foo"))
	b := weft.NewCondition("sigs", "ed25519", []byte("bar"))

	assert.Nil(t, a.Address().Validate())
	assert.Nil(t, b.Address().Validate())
	if a.Address().Equals(b.Address()) {
		t.Fatal("different conditions must not share an address")
	}
	// address derivation is deterministic
	assert.Equal(t, a.Address(), weft.NewCondition("sigs", "ed25519", []byte("foo")).Address())
}
