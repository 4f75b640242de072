// Package report renders the run summary shown after a build.
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Jisevind/src-context/pkg/bundle"
)

// Render formats build statistics as the human-readable block written to
// stderr, keeping stdout free for the generated document.
func Render(stats bundle.BuildStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Files found:       %s\n", humanize.Comma(int64(stats.TotalFilesFound)))
	fmt.Fprintf(&b, "Included:          %s\n", humanize.Comma(int64(stats.FilesToInclude)))
	fmt.Fprintf(&b, "Minified:          %s\n", humanize.Comma(int64(stats.FilesToMinify)))
	fmt.Fprintf(&b, "Ignored:           %s (default %d, custom %d, cli %d)\n",
		humanize.Comma(int64(stats.FilesIgnored)),
		stats.FilesIgnoredByDefault,
		stats.FilesIgnoredByCustom,
		stats.FilesIgnoredByCLI)
	fmt.Fprintf(&b, "Binary or SVG:     %s\n", humanize.Comma(int64(stats.BinaryAndSVGFiles)))
	fmt.Fprintf(&b, "Skipped for size:  %s\n", humanize.Comma(int64(stats.SkippedLargeFiles)))
	fmt.Fprintf(&b, "Total size:        %.1f KB\n", stats.TotalFileSizeKB)
	fmt.Fprintf(&b, "Total tokens:      %s\n", humanize.Comma(int64(stats.TotalTokenCount)))

	if len(stats.TopTokenConsumers) > 0 {
		b.WriteString("\nTop token consumers:\n")
		for _, f := range stats.TopTokenConsumers {
			fmt.Fprintf(&b, "  %10s  %s\n", humanize.Comma(int64(f.TokenCount)), f.Path)
		}
	}

	return b.String()
}
