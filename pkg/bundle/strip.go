package bundle

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// commentClass selects the comment grammar used for a file type.
type commentClass int

const (
	classNone    commentClass = iota
	classSlash                // C family: // line, /* */ block
	classHash                 // shell family: # line
	classMarkup               // HTML/XML: <!-- --> only
	classCSS                  // css: /* */ block only
	classCSSLine              // scss/less: /* */ plus //
	classSQL                  // sql: -- line, /* */ block
)

// commentClasses maps lowercase extensions to their comment grammar.
// Whitespace-sensitive extensions are filtered out before this map is
// consulted, Python excepted since it has a dedicated stripper.
var commentClasses = map[string]commentClass{
	// C family and curly-brace friends
	"go": classSlash, "js": classSlash, "jsx": classSlash, "mjs": classSlash,
	"cjs": classSlash, "ts": classSlash, "tsx": classSlash, "java": classSlash,
	"c": classSlash, "h": classSlash, "cpp": classSlash, "cc": classSlash,
	"cxx": classSlash, "hpp": classSlash, "cs": classSlash, "swift": classSlash,
	"kt": classSlash, "kts": classSlash, "scala": classSlash, "rs": classSlash,
	"dart": classSlash, "php": classSlash, "groovy": classSlash, "proto": classSlash,

	// hash-comment languages
	"sh": classHash, "bash": classHash, "zsh": classHash, "fish": classHash,
	"rb": classHash, "pl": classHash, "pm": classHash, "r": classHash,
	"tcl": classHash, "tf": classHash, "toml": classHash, "ini": classHash,
	"conf": classHash, "properties": classHash,

	// markup
	"html": classMarkup, "htm": classMarkup, "xml": classMarkup,
	"xhtml": classMarkup, "vue": classMarkup, "svelte": classMarkup,

	// stylesheets
	"css": classCSS, "scss": classCSSLine, "less": classCSSLine,

	"sql": classSQL,

	// markdown keeps its HTML comments
	"md": classNone, "markdown": classNone,
}

// stripOptions selects which comment syntaxes stripGeneric removes and
// which string literals shield their contents.
type stripOptions struct {
	line     bool // // to end of line
	block    bool // /* ... */
	hash     bool // # to end of line
	dashes   bool // -- to end of line
	html     bool // <!-- ... -->
	quotes   bool // respect ' and " literals
	backtick bool // respect ` literals, which may span lines
}

// commentOptions resolves stripping behavior for a file. ok is false when
// the type is unknown or keeps its comments, meaning content passes through
// untouched.
func commentOptions(path string) (stripOptions, bool) {
	class, known := commentClasses[fileExt(path)]
	if !known && strings.EqualFold(filepath.Base(path), "Dockerfile") {
		class = classHash
	}

	switch class {
	case classSlash:
		return stripOptions{line: true, block: true, html: true, quotes: true, backtick: true}, true
	case classHash:
		return stripOptions{hash: true, quotes: true}, true
	case classMarkup:
		return stripOptions{html: true}, true
	case classCSS:
		return stripOptions{block: true, html: true, quotes: true}, true
	case classCSSLine:
		return stripOptions{line: true, block: true, quotes: true}, true
	case classSQL:
		return stripOptions{dashes: true, block: true, quotes: true}, true
	}
	return stripOptions{}, false
}

// stripComments applies the comment policy for the file type. Python gets
// its dedicated line-oriented stripper; other whitespace-sensitive types
// and unknown extensions pass through unchanged.
func stripComments(content, path string) string {
	if fileExt(path) == "py" {
		return stripPythonComments(content)
	}
	if isWhitespaceSensitive(path) {
		return content
	}
	opt, ok := commentOptions(path)
	if !ok {
		return content
	}
	return stripGeneric(content, opt)
}

// safeStrip shields the pipeline from stripper panics on pathological
// input, falling back to the original content for that file only.
func safeStrip(content, path string, logger *zap.Logger) (out string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Comment stripping failed, keeping original content",
				zap.String("path", path),
				zap.Any("cause", r))
			out = content
		}
	}()
	return stripComments(content, path)
}

// stripGeneric removes comments with a single forward scan. Lines reduced
// to nothing but a comment are dropped; lines that lose an inline comment
// are right-trimmed. Protected comments (/*! ... */ blocks, //! lines) and
// //go: directives survive verbatim.
func stripGeneric(content string, opt stripOptions) string {
	var out strings.Builder
	out.Grow(len(content))

	var line strings.Builder
	hadComment := false

	var inString byte // active quote char, 0 outside literals
	blockClose := ""  // closing token of the active block comment

	flush := func(newline bool) {
		text := line.String()
		line.Reset()
		if hadComment {
			hadComment = false
			if strings.TrimSpace(text) == "" {
				return // comment-only line disappears entirely
			}
			text = strings.TrimRight(text, " \t")
		}
		out.WriteString(text)
		if newline {
			out.WriteByte('\n')
		}
	}

	i := 0
	for i < len(content) {
		// Inside a block or HTML comment: swallow everything, newlines
		// included, until the closing token.
		if blockClose != "" {
			if strings.HasPrefix(content[i:], blockClose) {
				i += len(blockClose)
				blockClose = ""
			} else {
				i++
			}
			continue
		}

		c := content[i]

		if c == '\n' {
			if inString != '`' {
				inString = 0
			}
			flush(true)
			i++
			continue
		}

		if inString != 0 {
			line.WriteByte(c)
			if c == '\\' && inString != '`' && i+1 < len(content) {
				line.WriteByte(content[i+1])
				i += 2
				continue
			}
			if c == inString {
				inString = 0
			}
			i++
			continue
		}

		if (opt.quotes && (c == '"' || c == '\'')) || (opt.backtick && c == '`') {
			inString = c
			line.WriteByte(c)
			i++
			continue
		}

		rest := content[i:]

		if opt.block && strings.HasPrefix(rest, "/*!") {
			// Protected block comment, kept with its delimiters.
			end := strings.Index(rest, "*/")
			if end < 0 {
				line.WriteString(rest)
				i = len(content)
				continue
			}
			line.WriteString(rest[:end+2])
			i += end + 2
			continue
		}
		if opt.block && strings.HasPrefix(rest, "/*") {
			blockClose = "*/"
			hadComment = true
			i += 2
			continue
		}
		if opt.html && strings.HasPrefix(rest, "<!--") {
			blockClose = "-->"
			hadComment = true
			i += 4
			continue
		}
		if opt.line && strings.HasPrefix(rest, "//") {
			if n := protectedLineComment(rest); n > 0 {
				line.WriteString(rest[:n])
				i += n
				continue
			}
			hadComment = true
			i += lineEnd(rest)
			continue
		}
		if opt.hash && c == '#' {
			if i == 0 && strings.HasPrefix(rest, "#!") {
				// Shebang, not a comment.
				n := lineEnd(rest)
				line.WriteString(rest[:n])
				i += n
				continue
			}
			hadComment = true
			i += lineEnd(rest)
			continue
		}
		if opt.dashes && strings.HasPrefix(rest, "--") {
			hadComment = true
			i += lineEnd(rest)
			continue
		}

		line.WriteByte(c)
		i++
	}
	flush(false)

	return out.String()
}

// protectedLineComment returns the length of a line comment that must be
// kept verbatim (//! protected comments and //go: compiler directives), or
// zero when the comment is strippable.
func protectedLineComment(rest string) int {
	if strings.HasPrefix(rest, "//!") {
		return lineEnd(rest)
	}
	const directive = "//go:"
	if strings.HasPrefix(rest, directive) && len(rest) > len(directive) && isDirectiveChar(rest[len(directive)]) {
		return lineEnd(rest)
	}
	return 0
}

func isDirectiveChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// lineEnd returns the offset of the next newline, or the end of the string.
func lineEnd(s string) int {
	if n := strings.IndexByte(s, '\n'); n >= 0 {
		return n
	}
	return len(s)
}

// stripPythonComments removes '#' comments line by line. Triple-quoted
// strings pass through byte-for-byte, indentation is untouched, and lines
// reduced to nothing but a comment are dropped. A leading shebang survives.
func stripPythonComments(content string) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	triple := "" // active triple-quote delimiter, empty outside literals

	for n, ln := range lines {
		if n == 0 && strings.HasPrefix(ln, "#!") {
			kept = append(kept, ln)
			continue
		}
		text, keep, next := scanPythonLine(ln, triple)
		triple = next
		if keep {
			kept = append(kept, text)
		}
	}
	return strings.Join(kept, "\n")
}

// scanPythonLine strips a comment from one line given the surrounding
// triple-quote state. It returns the text to keep, whether the line
// survives at all, and the state after the line.
func scanPythonLine(ln, triple string) (string, bool, string) {
	var quote byte // active single-line string quote
	i := 0
	for i < len(ln) {
		if triple != "" {
			if strings.HasPrefix(ln[i:], triple) {
				triple = ""
				i += 3
				continue
			}
			i++
			continue
		}

		c := ln[i]
		if quote != 0 {
			if c == '\\' {
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
			i++
			continue
		}

		if strings.HasPrefix(ln[i:], `"""`) || strings.HasPrefix(ln[i:], "'''") {
			triple = ln[i : i+3]
			i += 3
			continue
		}
		if c == '"' || c == '\'' {
			quote = c
			i++
			continue
		}
		if c == '#' {
			head := ln[:i]
			if strings.TrimSpace(head) == "" {
				return "", false, triple
			}
			return strings.TrimRight(head, " \t"), true, triple
		}
		i++
	}
	return ln, true, triple
}
