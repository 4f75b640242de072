package bundle

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// discoverFiles expands the input paths into a deduplicated candidate set,
// sorted lexicographically by display path so every later stage sees a
// deterministic order. Directories are walked recursively, dotfiles
// included; git internals are pruned unconditionally before any pattern
// matching. Unreadable inputs warn and are skipped.
func discoverFiles(workingDir string, inputPaths []string, logger *zap.Logger) []candidate {
	seen := make(map[string]candidate)

	for _, input := range inputPaths {
		cleaned := filepath.ToSlash(filepath.Clean(input))
		abs := resolveInput(workingDir, cleaned)

		info, err := os.Stat(abs)
		if err != nil {
			logger.Warn("Skipping unreadable input path",
				zap.String("path", input),
				zap.Error(err))
			continue
		}

		if !info.IsDir() {
			if hasGitSegment(cleaned) {
				continue
			}
			if _, ok := seen[cleaned]; !ok {
				seen[cleaned] = candidate{Path: cleaned, Rel: cleaned}
			}
			continue
		}

		// Stat follows a symlinked directory but WalkDir lstats its root,
		// so the walk needs the resolved path.
		walkRoot := abs
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			walkRoot = resolved
		}

		walkErr := filepath.WalkDir(walkRoot, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn("Error accessing path during traversal",
					zap.String("path", p),
					zap.Error(err))
				return nil
			}
			if d.IsDir() {
				if d.Name() == ".git" {
					return filepath.SkipDir
				}
				return nil
			}

			rel, relErr := filepath.Rel(walkRoot, p)
			if relErr != nil {
				logger.Warn("Unable to determine relative path",
					zap.String("path", p),
					zap.Error(relErr))
				return nil
			}
			rel = filepath.ToSlash(rel)

			display := path.Join(cleaned, rel)
			if hasGitSegment(display) {
				return nil
			}
			if _, ok := seen[display]; !ok {
				seen[display] = candidate{Path: display, Rel: rel}
			}
			return nil
		})
		if walkErr != nil {
			logger.Warn("Failed to traverse directory",
				zap.String("dir", input),
				zap.Error(walkErr))
		}
	}

	out := make([]candidate, 0, len(seen))
	for _, c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// resolveInput turns a slash-separated path into a native one rooted at
// the working directory. Absolute paths pass through unchanged.
func resolveInput(workingDir, p string) string {
	native := filepath.FromSlash(p)
	if filepath.IsAbs(native) {
		return native
	}
	return filepath.Join(workingDir, native)
}

// hasGitSegment reports whether any path segment is the .git directory.
func hasGitSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".git" {
			return true
		}
	}
	return false
}
