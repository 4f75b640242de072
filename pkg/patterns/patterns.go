// Package patterns provides gitignore-style pattern sets for path
// classification. A Set is immutable once compiled; matching is a pure
// predicate, so precedence tiers can be tested independently.
package patterns

import (
	"fmt"
	"os"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Set is an ordered collection of gitignore-style glob patterns with
// negation support. The zero value matches nothing.
type Set struct {
	lines   []string
	matcher *gitignore.GitIgnore
}

// Compile builds a Set from pattern lines. Comment lines starting with '#'
// and blank lines are dropped; '!' negates, with later lines overriding
// earlier ones.
func Compile(lines ...string) *Set {
	kept := filterLines(lines)
	if len(kept) == 0 {
		return &Set{}
	}
	return &Set{
		lines:   kept,
		matcher: gitignore.CompileIgnoreLines(kept...),
	}
}

// LoadFile reads pattern lines from a control file. A missing file is not
// an error and yields no lines.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read pattern file %s: %w", path, err)
	}
	return filterLines(strings.Split(string(data), "\n")), nil
}

// Matches reports whether the slash-separated path is excluded by the set.
func (s *Set) Matches(path string) bool {
	if s == nil || s.matcher == nil {
		return false
	}
	return s.matcher.MatchesPath(path)
}

// Empty reports whether the set carries no patterns. A comment-only file
// compiles to an empty set, indistinguishable from a missing one.
func (s *Set) Empty() bool {
	return s == nil || len(s.lines) == 0
}

// Len returns the number of compiled pattern lines.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lines)
}

// Lines returns the compiled pattern lines in order.
func (s *Set) Lines() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

func filterLines(lines []string) []string {
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kept = append(kept, trimmed)
	}
	return kept
}
