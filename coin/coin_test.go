package coin

import (
	"testing"

	"github.com/hashlock-one/weft/errors"
	"github.com/hashlock-one/weft/wefttest/assert"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(20, 1234, "ABC"),
			b:       NewCoin(19, 999999999, "ABC"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(0, -2, "FOO"),
			b:       NewCoin(0, 1, "FOO"),
			wantRes: -1,
		},
		"a greater than b and both negative": {
			a:       NewCoin(-4, -2456, "BAR"),
			b:       NewCoin(-4, -4567, "BAR"),
			wantRes: 1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantRes, tc.a.Compare(tc.b))
		})
	}
}

func TestCoinNegative(t *testing.T) {
	a := NewCoin(456, 985, "ABC")

	n := a.Negative()

	assert.Equal(t, a.Ticker, n.Ticker)
	assert.Equal(t, a.Whole, -n.Whole)
	assert.Equal(t, a.Fractional, -n.Fractional)

	if nn := a.Negative().Negative(); !a.Equals(nn) {
		t.Fatal("double negation malformed the coin")
	}
}

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes Coin
		wantErr *errors.Error
	}{
		"plain addition": {
			a:       NewCoin(1, 2, "FOO"),
			b:       NewCoin(3, 4, "FOO"),
			wantRes: NewCoin(4, 6, "FOO"),
		},
		"fraction overflows into the whole": {
			a:       NewCoin(1, MaxFrac, "FOO"),
			b:       NewCoin(0, 2, "FOO"),
			wantRes: NewCoin(2, 1, "FOO"),
		},
		"negative amounts normalize signs": {
			a:       NewCoin(2, 0, "FOO"),
			b:       NewCoin(0, -1, "FOO"),
			wantRes: NewCoin(1, MaxFrac, "FOO"),
		},
		"zero coin without a ticker is neutral": {
			a:       NewCoin(0, 0, ""),
			b:       NewCoin(1, 0, "BAR"),
			wantRes: NewCoin(1, 0, "BAR"),
		},
		"ticker mismatch": {
			a:       NewCoin(1, 0, "FOO"),
			b:       NewCoin(1, 0, "BAR"),
			wantErr: errors.ErrCurrency,
		},
		"whole overflow": {
			a:       NewCoin(MaxInt, 0, "FOO"),
			b:       NewCoin(1, 0, "FOO"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %v, got %+v", tc.wantErr, err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantRes, res)
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	res, err := NewCoin(3, 0, "FOO").Subtract(NewCoin(1, 1, "FOO"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(1, MaxFrac, "FOO"), res)

	// subtracting more than held produces a negative coin
	res, err = NewCoin(1, 0, "FOO").Subtract(NewCoin(2, 0, "FOO"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(-1, 0, "FOO"), res)
	if res.IsNonNegative() {
		t.Fatal("expected a negative result")
	}
}

func TestCoinPredicates(t *testing.T) {
	cases := map[string]struct {
		c           Coin
		zero        bool
		positive    bool
		nonNegative bool
	}{
		"zero":                {NewCoin(0, 0, "FOO"), true, false, true},
		"positive fractional": {NewCoin(0, 1, "FOO"), false, true, true},
		"positive whole":      {NewCoin(1, 0, "FOO"), false, true, true},
		"negative fractional": {NewCoin(0, -1, "FOO"), false, false, false},
		"negative whole":      {NewCoin(-1, 0, "FOO"), false, false, false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.zero, tc.c.IsZero())
			assert.Equal(t, tc.positive, tc.c.IsPositive())
			assert.Equal(t, tc.nonNegative, tc.c.IsNonNegative())
		})
	}
}

func TestCoinGTE(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantGTE bool
	}{
		"equal":                  {NewCoin(1, 2, "FOO"), NewCoin(1, 2, "FOO"), true},
		"bigger whole":           {NewCoin(2, 0, "FOO"), NewCoin(1, MaxFrac, "FOO"), true},
		"smaller fractional":     {NewCoin(1, 1, "FOO"), NewCoin(1, 2, "FOO"), false},
		"different currency":     {NewCoin(5, 0, "FOO"), NewCoin(1, 0, "BAR"), false},
		"negative versus bigger": {NewCoin(-1, 0, "FOO"), NewCoin(1, 0, "FOO"), false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantGTE, tc.a.IsGTE(tc.b))
		})
	}
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		c       Coin
		wantErr *errors.Error
	}{
		"valid": {
			c: NewCoin(1, 2, "FOO"),
		},
		"valid negative": {
			c: NewCoin(-1, -2, "FOO"),
		},
		"four letter ticker": {
			c: NewCoin(1, 0, "WOOD"),
		},
		"lowercase ticker": {
			c:       NewCoin(1, 0, "foo"),
			wantErr: errors.ErrCurrency,
		},
		"too short ticker": {
			c:       NewCoin(1, 0, "AB"),
			wantErr: errors.ErrCurrency,
		},
		"no ticker": {
			c:       NewCoin(1, 0, ""),
			wantErr: errors.ErrCurrency,
		},
		"whole out of range": {
			c:       NewCoin(MaxInt+1, 0, "FOO"),
			wantErr: errors.ErrOverflow,
		},
		"fractional out of range": {
			c:       NewCoin(0, FracUnit, "FOO"),
			wantErr: errors.ErrOverflow,
		},
		"mismatched signs": {
			c:       NewCoin(1, -1, "FOO"),
			wantErr: errors.ErrInvalidState,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.c.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestCoinClone(t *testing.T) {
	c := NewCoinp(1, 2, "FOO")
	cpy := c.Clone()
	assert.Equal(t, c, cpy)

	cpy.Whole = 9
	assert.Equal(t, int64(1), c.Whole)

	var nilCoin *Coin
	assert.Nil(t, nilCoin.Clone())
}
