package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	data := `ignore:
  - "*.md"
  - dist/
ignore-file: .customignore
remove-whitespace: true
token-budget: 5000
max-file-kb: 512
output: context.md
clipboard: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"*.md", "dist/"}, cfg.Ignore)
	assert.Equal(t, ".customignore", cfg.IgnoreFile)
	assert.True(t, cfg.RemoveWhitespace)
	assert.False(t, cfg.KeepComments)
	assert.Equal(t, 5000, cfg.TokenBudget)
	assert.Equal(t, 512, cfg.MaxFileKB)
	assert.Equal(t, "context.md", cfg.Output)
	assert.True(t, cfg.Clipboard)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("ignore: [unclosed\n"), 0o644))

	_, err := Load(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
