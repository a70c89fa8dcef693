package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestRegister(t *testing.T) {
	e := Register(60001, "my custom error")
	if got := e.ABCICode(); got != 60001 {
		t.Fatalf("unexpected code: %d", got)
	}
	if got := e.Error(); got != "my custom error" {
		t.Fatalf("unexpected description: %q", got)
	}

	// codes are unique across the whole application
	assertPanics(t, func() { Register(60001, "conflicting") })
	// code 1 is reserved for unclassified errors
	assertPanics(t, func() { Register(1, "cannot claim the internal code") })
}

func TestIs(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"instance of the same root": {
			kind: ErrNotFound,
			err:  ErrNotFound,
			want: true,
		},
		"wrapped once": {
			kind: ErrNotFound,
			err:  Wrap(ErrNotFound, "gone"),
			want: true,
		},
		"wrapped several times": {
			kind: ErrNotFound,
			err:  Wrap(Wrap(ErrNotFound, "gone"), "sorry"),
			want: true,
		},
		"different root": {
			kind: ErrNotFound,
			err:  Wrap(ErrDuplicate, "gone"),
			want: false,
		},
		"stdlib error": {
			kind: ErrNotFound,
			err:  fmt.Errorf("not found"),
			want: false,
		},
		"nil error is not any kind": {
			kind: ErrNotFound,
			err:  nil,
			want: false,
		},
		"nil kind matches nil error": {
			kind: nil,
			err:  nil,
			want: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.want {
				t.Fatalf("want %v", tc.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	// nil passes through, so callers can wrap unconditionally
	if err := Wrap(nil, "description"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}

	err := Wrap(ErrInvalidInput, "unparseable payload")
	if err.Error() != "unparseable payload: invalid input" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !ErrInvalidInput.Is(err) {
		t.Fatal("wrapping must preserve the error kind")
	}

	err = Wrapf(ErrInvalidInput, "field %q", "memo")
	if err.Error() != `field "memo": invalid input` {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(ErrInvalidState, "one")
	if stackTrace(err) == nil {
		t.Fatal("wrapping must attach a stack trace")
	}
	depth := len(stackTrace(err))

	// wrapping again must not replace the original trace
	outer := Wrap(err, "two")
	if got := len(stackTrace(outer)); got != depth {
		t.Fatalf("stack trace reattached: %d != %d", got, depth)
	}

	// errors born with a pkg/errors trace keep it
	born := errors.New("from the outside")
	if got := stackTrace(Wrap(born, "three")); got == nil {
		t.Fatal("lost the original stack trace")
	}
}

func TestNew(t *testing.T) {
	err := ErrInvalidState.New("latch is closed")
	if !ErrInvalidState.Is(err) {
		t.Fatal("New must preserve the error kind")
	}
	if !strings.Contains(err.Error(), "latch is closed") {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	err = ErrInvalidState.Newf("latch %d is closed", 4)
	if !strings.Contains(err.Error(), "latch 4 is closed") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("badness")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}
	if !strings.Contains(err.Error(), "badness") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func assertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
}
