// Package config loads the aize.toml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// FileName is the project file looked up next to the entry source.
const FileName = "aize.toml"

type Config struct {
	// Entry is the main source file, relative to the project file.
	Entry  string `toml:"entry"`
	Strict bool   `toml:"strict"`
	Log    Log    `toml:"log"`
	Output Output `toml:"output"`

	// Root is the directory holding the project file. It is not part of the
	// file itself.
	Root string `toml:"-"`
}

type Log struct {
	Verbosity int `toml:"verbosity"`
}

// Output lists the optional artifacts written after a successful analysis.
// An empty path disables the artifact.
type Output struct {
	Manifest string `toml:"manifest,omitempty"`
	Linkage  string `toml:"linkage,omitempty"`
}

func Default() *Config {
	return &Config{Entry: "main.aize"}
}

// Load reads and validates the project file at path. A missing entry falls
// back to the default.
func Load(path string) (*Config, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(buff, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Entry == "" {
		cfg.Entry = Default().Entry
	}
	cfg.Root = filepath.Dir(path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Find loads FileName from dir if it exists, and the defaults otherwise.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.Root = dir
		return cfg, nil
	}
	return Load(path)
}

func (c *Config) Validate() error {
	if c.Entry == "" {
		return errors.New("an entry file is required")
	}
	if !strings.HasSuffix(c.Entry, ".aize") {
		return fmt.Errorf("entry file %q must have the .aize extension", c.Entry)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	return nil
}

// Resolve returns path relative to the project root unless it is absolute
// or empty.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// EntryPath is the absolute or root-relative path of the entry file.
func (c *Config) EntryPath() string {
	return c.Resolve(c.Entry)
}
