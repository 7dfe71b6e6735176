package store

import (
	"os"
	"path/filepath"
	"testing"
)

// MustTempStore returns a Store backed by a file in a temporary directory.
// The Store is closed when the test finishes.
func MustTempStore(t testing.TB) DBStore {
	t.Helper()
	st, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open temp store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil && !os.IsNotExist(err) {
			t.Errorf("close temp store: %v", err)
		}
	})
	return st
}
