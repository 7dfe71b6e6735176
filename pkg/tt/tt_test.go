package tt

import (
	"errors"
	"fmt"
	"testing"
)

// testT implements the T interface and is used to verify the Test function's
// interaction with T.
type testT []string

func (t *testT) Helper() {}

func (t *testT) Errorf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

func addsub(x int, y int) (int, int) {
	return x + y, x - y
}

func failIf(fail bool) error {
	if fail {
		return errors.New("it failed")
	}
	return nil
}

func TestTTPass(t *testing.T) {
	var testT testT
	Test(&testT, addsub,
		Args(1, 10).Rets(11, -9),
		Args(2, 2).Rets(4, Any),
	)
	if len(testT) > 0 {
		t.Errorf("Test errors when test should pass: %v", testT)
	}
}

func TestTTFail(t *testing.T) {
	var testT testT
	Test(&testT, addsub,
		Args(1, 10).Rets(11, -90),
	)
	if len(testT) != 1 {
		t.Fatalf("got %d errors, want 1", len(testT))
	}
	want := "tt.addsub(1, 10) -> (11, -9), want (11, -90)"
	if testT[0] != want {
		t.Errorf("got error %q, want %q", testT[0], want)
	}
}

func TestTTErrorMatching(t *testing.T) {
	var testT testT
	Test(&testT, failIf,
		Args(true).Rets(ErrorMatching("failed")),
		Args(false).Rets(nil),
	)
	if len(testT) > 0 {
		t.Errorf("Test errors when test should pass: %v", testT)
	}
}
