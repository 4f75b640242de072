package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeTestFile creates rel under dir, making parent directories as needed.
func writeTestFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newScanDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, "main.go", "package main\n")
	writeTestFile(t, dir, "src/app.go", "package src\n")
	writeTestFile(t, dir, ".hidden", "x")
	writeTestFile(t, dir, ".git/HEAD", "ref: refs/heads/main")
	writeTestFile(t, dir, "src/.git/config", "[core]")
	return dir
}

func TestDiscoverFiles_WalksAndPrunesGit(t *testing.T) {
	dir := newScanDir(t)

	cands := discoverFiles(dir, []string{"."}, zap.NewNop())

	assert.Equal(t, []candidate{
		{Path: ".hidden", Rel: ".hidden"},
		{Path: "main.go", Rel: "main.go"},
		{Path: "src/app.go", Rel: "src/app.go"},
	}, cands)
}

func TestDiscoverFiles_RelIsInputRelative(t *testing.T) {
	dir := newScanDir(t)

	cands := discoverFiles(dir, []string{"src"}, zap.NewNop())

	require.Len(t, cands, 1)
	assert.Equal(t, candidate{Path: "src/app.go", Rel: "app.go"}, cands[0])
}

func TestDiscoverFiles_DeduplicatesOverlappingInputs(t *testing.T) {
	dir := newScanDir(t)

	cands := discoverFiles(dir, []string{".", "src"}, zap.NewNop())

	require.Len(t, cands, 3)
	for _, c := range cands {
		if c.Path == "src/app.go" {
			// First input wins, so Rel stays relative to ".".
			assert.Equal(t, "src/app.go", c.Rel)
		}
	}
}

func TestDiscoverFiles_FileInput(t *testing.T) {
	dir := newScanDir(t)

	cands := discoverFiles(dir, []string{"main.go"}, zap.NewNop())

	require.Len(t, cands, 1)
	assert.Equal(t, candidate{Path: "main.go", Rel: "main.go"}, cands[0])
}

func TestDiscoverFiles_MissingInputSkipped(t *testing.T) {
	dir := newScanDir(t)

	cands := discoverFiles(dir, []string{"no-such-path", "main.go"}, zap.NewNop())

	require.Len(t, cands, 1)
	assert.Equal(t, "main.go", cands[0].Path)
}

func TestDiscoverFiles_AbsoluteInputs(t *testing.T) {
	wd := t.TempDir()
	outside := t.TempDir()
	writeTestFile(t, outside, "pkg/inner.go", "package inner\n")

	absDir := filepath.Join(outside, "pkg")
	absFile := filepath.Join(absDir, "inner.go")

	// A same-named shadow tree under the working directory must never be
	// scanned in place of the absolute input.
	writeTestFile(t, filepath.Join(wd, absDir), "decoy.go", "package decoy\n")

	cands := discoverFiles(wd, []string{absDir}, zap.NewNop())
	require.Len(t, cands, 1)
	assert.Equal(t, candidate{Path: filepath.ToSlash(absDir) + "/inner.go", Rel: "inner.go"}, cands[0])

	cands = discoverFiles(wd, []string{absFile}, zap.NewNop())
	require.Len(t, cands, 1)
	assert.Equal(t, candidate{Path: filepath.ToSlash(absFile), Rel: filepath.ToSlash(absFile)}, cands[0])
}

func TestDiscoverFiles_SymlinkedDirectoryInput(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "real/inner.txt", "x")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "linkdir")))

	cands := discoverFiles(dir, []string{"linkdir"}, zap.NewNop())

	require.Len(t, cands, 1)
	assert.Equal(t, candidate{Path: "linkdir/inner.txt", Rel: "inner.txt"}, cands[0])
}

func TestHasGitSegment(t *testing.T) {
	assert.True(t, hasGitSegment(".git"))
	assert.True(t, hasGitSegment(".git/config"))
	assert.True(t, hasGitSegment("a/.git/b"))
	assert.False(t, hasGitSegment("a/.gitignore"))
	assert.False(t, hasGitSegment("main.go"))
	assert.False(t, hasGitSegment("repo.git"))
}
