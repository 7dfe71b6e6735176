package errutil

import (
	"errors"
	"testing"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	if Multi() != nil {
		t.Errorf("Multi() -> non-nil")
	}
	if Multi(nil, nil) != nil {
		t.Errorf("Multi(nil, nil) -> non-nil")
	}
	if Multi(nil, err1) != err1 {
		t.Errorf("Multi(nil, err1) -> not err1")
	}

	err := Multi(Multi(err1, nil), Multi(err2, err3))
	if got, want := err.Error(), "multiple errors: error 1; error 2; error 3"; got != want {
		t.Errorf("got message %q, want %q", got, want)
	}
	for _, e := range []error{err1, err2, err3} {
		if !errors.Is(err, e) {
			t.Errorf("combined error does not wrap %v", e)
		}
	}
}
