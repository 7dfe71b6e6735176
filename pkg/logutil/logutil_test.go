package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	logger := GetLogger("[foo] ")
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(io.Discard) })

	logger.Println("hello")
	if !strings.Contains(buf.String(), "[foo] ") ||
		!strings.Contains(buf.String(), "hello") {
		t.Errorf("got log output %q, want prefix and message", buf.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	logger := GetLogger("[bar] ")
	fname := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("to file")
	SetOutputFile("")

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "to file") {
		t.Errorf("got log file content %q, want it to contain message", content)
	}
}
