package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupAppliesProjectAndFlags(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aize.toml"), []byte("strict = true\n[log]\nverbosity = 1\n"), 0o644))
	t.Chdir(dir)

	cfg, err := setup(options{repl: true, verbosity: -1}, "")
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 1, cfg.Log.Verbosity)

	cfg, err = setup(options{repl: true, verbosity: 2}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Log.Verbosity)
}

func TestSetupExplicitEntry(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "app.aize")

	cfg, err := setup(options{strict: true, verbosity: -1}, entry)
	require.NoError(t, err)
	assert.Equal(t, entry, cfg.Entry)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 0, cfg.Log.Verbosity)
}

func TestSetupRejectsBadEntry(t *testing.T) {
	_, err := setup(options{verbosity: -1}, filepath.Join(t.TempDir(), "app.txt"))
	assert.Error(t, err)
}
