package sys

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsATTY_File(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "file"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsATTY(f.Fd()) {
		t.Errorf("IsATTY(regular file) -> true")
	}
	if w := TermWidth(f); w != DefaultWidth {
		t.Errorf("TermWidth(regular file) -> %d, want %d", w, DefaultWidth)
	}
	if row, col := WinSize(f); row != -1 || col != -1 {
		t.Errorf("WinSize(regular file) -> %d, %d, want -1, -1", row, col)
	}
}
