// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.slt.sh/pkg/store/storedefs"
)

var (
	cmds     = []string{"x = 1", "x + 1", "f = fn() {}", "x * 2"}
	starts   = []string{"x", "f"}
	wantPrev = [][]int{{4, 2, 1}, {3}}
	wantNext = [][]int{{1, 2, 4}, {3}}
)

// TestCmd tests the input history functionality of a Store. The Store must
// be empty.
func TestCmd(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want 1, nil", startSeq, err)
	}

	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%q) -> %v, %v, want %v, nil", cmd, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextCmdSeq()
	if wantEnd := startSeq + len(cmds); endSeq != wantEnd || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, nil", endSeq, err, wantEnd)
	}

	for i, want := range cmds {
		seq := i + startSeq
		if got, err := store.Cmd(seq); got != want || err != nil {
			t.Errorf("store.Cmd(%v) -> %q, %v, want %q, nil", seq, got, err, want)
		}
	}

	for i, prefix := range starts {
		for j, seq := range wantPrev[i] {
			upto := endSeq
			if j > 0 {
				upto = wantPrev[i][j-1]
			}
			cmd, err := store.PrevCmd(upto, prefix)
			if cmd.Seq != seq || err != nil {
				t.Errorf("store.PrevCmd(%d, %q) -> %d, %v, want %d, nil", upto, prefix, cmd.Seq, err, seq)
			}
		}
		for j, seq := range wantNext[i] {
			from := startSeq
			if j > 0 {
				from = wantNext[i][j-1] + 1
			}
			cmd, err := store.NextCmd(from, prefix)
			if cmd.Seq != seq || err != nil {
				t.Errorf("store.NextCmd(%d, %q) -> %d, %v, want %d, nil", from, prefix, cmd.Seq, err, seq)
			}
		}
	}
	if _, err := store.PrevCmd(1, "x"); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.PrevCmd before first input -> %v, want ErrNoMatchingCmd", err)
	}
	if _, err := store.NextCmd(endSeq, ""); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.NextCmd after last input -> %v, want ErrNoMatchingCmd", err)
	}

	got, err := store.CmdsWithSeq(2, 4)
	want := []storedefs.Cmd{{Text: "x + 1", Seq: 2}, {Text: "f = fn() {}", Seq: 3}}
	if diff := cmp.Diff(want, got); diff != "" || err != nil {
		t.Errorf("store.CmdsWithSeq(2, 4) error %v, diff (-want +got):\n%s", err, diff)
	}

	got, err = store.LastCmds(2)
	want = []storedefs.Cmd{{Text: "f = fn() {}", Seq: 3}, {Text: "x * 2", Seq: 4}}
	if diff := cmp.Diff(want, got); diff != "" || err != nil {
		t.Errorf("store.LastCmds(2) error %v, diff (-want +got):\n%s", err, diff)
	}

	if err := store.DelCmd(1); err != nil {
		t.Errorf("store.DelCmd(1) -> %v", err)
	}
	if _, err := store.Cmd(1); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(1) after deletion -> %v, want ErrNoMatchingCmd", err)
	}

	if err := store.Trim(1); err != nil {
		t.Errorf("store.Trim(1) -> %v", err)
	}
	got, err = store.LastCmds(10)
	want = []storedefs.Cmd{{Text: "x * 2", Seq: 4}}
	if diff := cmp.Diff(want, got); diff != "" || err != nil {
		t.Errorf("store.LastCmds(10) after Trim(1) error %v, diff (-want +got):\n%s", err, diff)
	}
	if seq, err := store.AddCmd("y"); seq != 5 || err != nil {
		t.Errorf("store.AddCmd after Trim -> %v, %v, want 5, nil", seq, err)
	}
}
