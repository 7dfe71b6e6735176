// Package rc loads the configuration of the REPL from an rc.yaml file.
//
// A missing file is not an error; all settings have defaults. Settings
// present in the file override the defaults individually.
package rc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
	"src.slt.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[rc] ")

// Defaults.
const (
	DefaultPrompt      = "> "
	DefaultHistorySize = 1000
)

// Config is the content of rc.yaml.
type Config struct {
	// Prompt is shown before each input line.
	Prompt string `yaml:"prompt"`
	// Color enables styled output on terminals.
	Color   bool          `yaml:"color"`
	History HistoryConfig `yaml:"history"`
	Panes   PanesConfig   `yaml:"panes"`
	// Prelude is a list of inputs submitted before the first prompt.
	Prelude []string `yaml:"prelude"`
}

// HistoryConfig configures the persistent input history.
type HistoryConfig struct {
	// DB is the path of the history database. An empty path means the
	// default location.
	DB string `yaml:"db"`
	// Size is the maximum number of inputs kept. Zero disables the history.
	Size int `yaml:"size"`
}

// PanesConfig toggles the optional panes shown after each input. The result
// pane is always shown.
type PanesConfig struct {
	Variables bool `yaml:"variables"`
	Structure bool `yaml:"structure"`
}

// Default returns the configuration used when there is no rc.yaml.
func Default() *Config {
	return &Config{
		Prompt:  DefaultPrompt,
		Color:   true,
		History: HistoryConfig{Size: DefaultHistorySize},
		Panes:   PanesConfig{Variables: true, Structure: true},
	}
}

// Parse parses the content of an rc.yaml file. Unknown keys are errors. On
// error, the returned Config is the default one.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return Default(), err
	}
	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.History.Size < 0 {
		return fmt.Errorf("history.size must be non-negative, got %d", cfg.History.Size)
	}
	return nil
}

// Load reads and parses the rc.yaml file at the given path. If the file does
// not exist, it returns the default configuration and no error. If the file
// cannot be read or parsed, it returns the default configuration and an error
// that the caller may show as a warning.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Println("no rc file at", path)
		return Default(), nil
	} else if err != nil {
		return Default(), err
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	logger.Println("loaded rc file", path)
	return cfg, nil
}

// Marshal returns the YAML form of the configuration.
func (cfg *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}
