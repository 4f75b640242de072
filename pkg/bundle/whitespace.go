package bundle

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Precompiled regular expressions used in whitespace normalization.
var (
	trailingSpacePattern = regexp.MustCompile(`[ \t\r]+\n`)
	newlineRunPattern    = regexp.MustCompile(`\n{3,}`)
)

// whitespaceSensitive lists extensions whose semantics depend on exact
// whitespace. These are never whitespace-normalized and, Python aside,
// never comment-stripped.
var whitespaceSensitive = map[string]bool{
	"py":     true,
	"yaml":   true,
	"yml":    true,
	"haml":   true,
	"pug":    true,
	"sass":   true,
	"styl":   true,
	"hs":     true,
	"fs":     true,
	"coffee": true,
	"mk":     true,
}

// isWhitespaceSensitive reports whether the file must keep its whitespace
// exactly. Makefiles qualify by name rather than extension.
func isWhitespaceSensitive(path string) bool {
	if strings.EqualFold(filepath.Base(path), "Makefile") {
		return true
	}
	return whitespaceSensitive[fileExt(path)]
}

// normalizeWhitespace right-trims every line, collapses runs of three or
// more newlines down to two, and trims the whole content.
func normalizeWhitespace(content string) string {
	content = trailingSpacePattern.ReplaceAllString(content, "\n")
	content = newlineRunPattern.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
