package rc

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.slt.sh/pkg/must"
	"src.slt.sh/pkg/testutil"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(testutil.Dedent(`
		prompt: "slt> "
		history:
		  size: 10
		panes:
		  structure: false
		prelude:
		  - x = 1
		  - sq = fn(n) { return n * n; }
		`)))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Prompt:  "slt> ",
		Color:   true,
		History: HistoryConfig{Size: 10},
		Panes:   PanesConfig{Variables: true, Structure: false},
		Prelude: []string{"x = 1", "sq = fn(n) { return n * n; }"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse (-want +got):\n%s", diff)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Parse(nil) (-want +got):\n%s", diff)
	}
}

var parseErrorTests = []struct {
	name    string
	data    string
	wantErr string
}{
	{"unknown key", "promt: x\n", "field promt not found"},
	{"wrong type", "color: maybe\n", "cannot unmarshal"},
	{"negative size", "history:\n  size: -1\n", "history.size must be non-negative"},
	{"malformed", "prompt: [\n", "yaml"},
}

func TestParse_Errors(t *testing.T) {
	for _, test := range parseErrorTests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := Parse([]byte(test.data))
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("got error %v, want one containing %q", err, test.wantErr)
			}
			if diff := cmp.Diff(Default(), cfg); diff != "" {
				t.Errorf("config on error is not the default (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil || cfg.Prompt != DefaultPrompt {
		t.Errorf("Load(missing) -> %v, %v, want defaults and no error", cfg, err)
	}

	good := filepath.Join(dir, "good.yaml")
	must.WriteFile(good, "color: false\n")
	cfg, err = Load(good)
	if err != nil || cfg.Color {
		t.Errorf("Load(good) -> %+v, %v, want color disabled", cfg, err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	must.WriteFile(bad, "color: [\n")
	cfg, err = Load(bad)
	if err == nil || !strings.HasPrefix(err.Error(), bad+": ") {
		t.Errorf("Load(bad) -> error %v, want one prefixed with the path", err)
	}
	if !cfg.Color {
		t.Errorf("Load(bad) did not return defaults")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Prelude = []string{"x = 1"}
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, parsed); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}
