package bundle

import (
	"fmt"
	"path/filepath"
	"strings"
)

// fileExt returns the lowercase extension without the leading dot.
func fileExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// formatFileBlock renders a file as a path header plus a fenced code block
// tagged with the file's lowercase extension.
func formatFileBlock(path, content string) string {
	content = strings.TrimSuffix(content, "\n")
	return fmt.Sprintf("# %s\n\n```%s\n%s\n```", path, fileExt(path), content)
}

// formatPlaceholderBlock renders a path header followed directly by a
// placeholder sentence, with no fence.
func formatPlaceholderBlock(path, message string) string {
	return fmt.Sprintf("# %s\n%s", path, message)
}

func defaultMinifyPlaceholder(path string) string {
	return fmt.Sprintf("[Content for %s has been minified and excluded]", path)
}

func defaultBinaryPlaceholder(path string) string {
	return fmt.Sprintf("[Content for %s is binary or SVG and has been excluded]", path)
}

func errorPlaceholder(path string, err error) string {
	return fmt.Sprintf("[Error reading %s: %v]", path, err)
}

// truncationNote is appended to sampled oversized files so readers know the
// block is partial.
func truncationNote(fullKB, sampleKB float64) string {
	return fmt.Sprintf("\n\n[Truncated: showing first %.0f KB of %.0f KB]", sampleKB, fullKB)
}
