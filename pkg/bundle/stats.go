package bundle

import "sort"

// BuildStats aggregates counters across one run. It is mutated incrementally
// during discovery, classification, and transformation, then read-only.
//
// Two identities hold on every completed run:
//
//	FilesIgnored == FilesIgnoredByDefault + FilesIgnoredByCustom + FilesIgnoredByCLI
//	TotalFilesFound == FilesToInclude + FilesToMinify + FilesIgnored
//
// Files skipped for size leave the identity's universe entirely: they are
// removed from both TotalFilesFound and FilesToInclude and counted only in
// SkippedLargeFiles.
type BuildStats struct {
	TotalFilesFound       int
	FilesToInclude        int
	FilesToMinify         int
	FilesIgnored          int
	FilesIgnoredByDefault int
	FilesIgnoredByCustom  int
	FilesIgnoredByCLI     int
	BinaryAndSVGFiles     int
	SkippedLargeFiles     int
	TotalTokenCount       int
	TotalFileSizeKB       float64
	TopTokenConsumers     []FileStat
}

// topTokenConsumers returns the three most expensive files, descending.
// The stable sort keeps input (discovery) order for ties.
func topTokenConsumers(files []ProcessedFile) []FileStat {
	ranked := make([]ProcessedFile, len(files))
	copy(ranked, files)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TokenCount > ranked[j].TokenCount
	})

	n := 3
	if len(ranked) < n {
		n = len(ranked)
	}
	top := make([]FileStat, 0, n)
	for _, f := range ranked[:n] {
		top = append(top, FileStat{Path: f.Path, TokenCount: f.TokenCount})
	}
	return top
}

// rescopeStats derives a copy of the statistics restricted to the
// budget-selected subset. Discovery and classification counters stay as
// recorded; file counts, totals, and top consumers are recomputed.
func rescopeStats(stats BuildStats, selected []ProcessedFile) BuildStats {
	out := stats
	out.FilesToInclude = 0
	out.FilesToMinify = 0
	out.TotalTokenCount = 0
	out.TotalFileSizeKB = 0

	for _, f := range selected {
		if f.minified {
			out.FilesToMinify++
		} else {
			out.FilesToInclude++
		}
		out.TotalTokenCount += f.TokenCount
		out.TotalFileSizeKB += f.sizeKB
	}

	out.TopTokenConsumers = topTokenConsumers(selected)
	return out
}
