// Package clipboard wraps system clipboard access for the generated
// document.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Available reports whether a clipboard is usable on this platform.
func Available() bool {
	return !clipboard.Unsupported
}

// Copy places text on the system clipboard.
func Copy(text string) error {
	return clipboard.WriteAll(text)
}
