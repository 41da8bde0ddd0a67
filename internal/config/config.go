// Package config loads the optional YAML run configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "minilang.yaml"

const defaultHistoryFile = ".minilang_history"

type Config struct {
	MaxCallDepth int      `yaml:"max_call_depth"`
	NoColor      bool     `yaml:"no_color"`
	Verbose      bool     `yaml:"verbose"`
	HistoryFile  string   `yaml:"history_file"`
	Prelude      []string `yaml:"prelude"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

func Default() *Config {
	return &Config{HistoryFile: defaultHistoryFile}
}

// Load reads the configuration at path. An empty path falls back to
// DefaultFile, and a missing DefaultFile yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Path = path

	// prelude entries are relative to the config file
	dir := filepath.Dir(path)
	for i, p := range cfg.Prelude {
		if !filepath.IsAbs(p) {
			cfg.Prelude[i] = filepath.Join(dir, p)
		}
	}
	return cfg, nil
}

// Decode parses YAML from r on top of the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max_call_depth must not be negative, got %d", c.MaxCallDepth)
	}
	if c.HistoryFile == "" {
		c.HistoryFile = defaultHistoryFile
	}
	return nil
}

// HistoryPath resolves HistoryFile against the home directory.
func (c *Config) HistoryPath() string {
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}
