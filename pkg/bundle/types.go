package bundle

// ProcessedFile is the fully formatted output block for one file: a path
// header plus a fenced code block, or a bracketed placeholder. Created once
// by the transformer and never mutated afterwards.
type ProcessedFile struct {
	Path       string // Working-directory-relative path with forward slashes.
	Content    string // The formatted block, ready for concatenation.
	TokenCount int    // Tokens in Content, exact or extrapolated.

	sizeKB   float64 // On-disk size, zero for minify and unreadable files.
	minified bool
}

// FileStat pairs a path with its token cost.
type FileStat struct {
	Path       string
	TokenCount int
}

// Result is the rendered context document plus the statistics for the run.
type Result struct {
	Content string
	Stats   BuildStats
}

// StatsResult carries per-file token costs plus the aggregate statistics.
type StatsResult struct {
	Files []FileStat
	Stats BuildStats
}

// candidate is one discovered file. Path is the display path relative to
// the working directory; Rel is the path relative to the input that
// produced it, which is what ignore patterns match against.
type candidate struct {
	Path string
	Rel  string
}
