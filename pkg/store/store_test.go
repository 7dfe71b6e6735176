package store

import (
	"path/filepath"
	"testing"

	"src.slt.sh/pkg/store/storetest"
)

func TestCmd(t *testing.T) {
	storetest.TestCmd(t, MustTempStore(t))
}

func TestCmd_MemStore(t *testing.T) {
	storetest.TestCmd(t, NewMemStore())
}

func TestNewStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	st.AddCmd("x = 1")
	st.Close()

	st, err = NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if text, err := st.Cmd(1); text != "x = 1" || err != nil {
		t.Errorf("Cmd(1) after reopening -> %q, %v, want \"x = 1\", nil", text, err)
	}
}

func TestNewStore_BadPath(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "no-such-dir", "history.db"))
	if err == nil {
		t.Errorf("NewStore in a non-existent directory succeeded")
	}
}
