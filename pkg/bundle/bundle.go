// Package bundle turns a set of source files into a single LLM-ready
// context document with token accounting.
package bundle

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GenerateContext runs the full pipeline and renders the context document:
// a directory tree of every file represented in the output, followed by one
// block per file in path order.
func GenerateContext(opts Options, logger *zap.Logger) (*Result, error) {
	files, stats, err := run(opts, logger)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	blocks := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
		blocks[i] = f.Content
	}

	var b strings.Builder
	b.WriteString(renderTree(paths))
	if len(blocks) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(blocks, "\n\n"))
	}
	b.WriteString("\n")

	return &Result{Content: b.String(), Stats: stats}, nil
}

// GetFileStats runs the same pipeline but keeps only the per-file token
// counts, ordered by heaviest consumer first.
func GetFileStats(opts Options, logger *zap.Logger) (*StatsResult, error) {
	files, stats, err := run(opts, logger)
	if err != nil {
		return nil, err
	}

	fileStats := make([]FileStat, len(files))
	for i, f := range files {
		fileStats[i] = FileStat{Path: f.Path, TokenCount: f.TokenCount}
	}
	sort.SliceStable(fileStats, func(i, j int) bool {
		return fileStats[i].TokenCount > fileStats[j].TokenCount
	})

	return &StatsResult{Files: fileStats, Stats: stats}, nil
}

// run executes discovery, classification, transformation, and budgeting,
// returning the final file set sorted by path along with its stats.
func run(opts Options, logger *zap.Logger) ([]ProcessedFile, BuildStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	opts = opts.withDefaults()

	if _, err := os.Stat(opts.WorkingDir); err != nil {
		return nil, BuildStats{}, fmt.Errorf("working directory %s: %w", opts.WorkingDir, err)
	}

	counter := opts.Counter
	if counter == nil {
		counter = NewCounter(logger)
	}

	rules := loadRuleSet(opts, logger)

	candidates := discoverFiles(opts.WorkingDir, opts.InputPaths, logger)

	var stats BuildStats
	stats.TotalFilesFound = len(candidates)

	classified := classifyCandidates(candidates, rules, &stats, logger)

	files := processCandidates(classified.include, opts, counter, &stats, logger)
	files = append(files, minifyPlaceholders(classified.minify, opts, counter, &stats)...)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	stats.TopTokenConsumers = topTokenConsumers(files)

	if opts.TokenBudget > 0 {
		files = applyTokenBudget(files, opts.TokenBudget, rules.priority, logger)
		stats = rescopeStats(stats, files)
	}

	logger.Debug("Context generation complete",
		zap.Int("files", len(files)),
		zap.Int("totalTokens", stats.TotalTokenCount),
		zap.Duration("elapsed", time.Since(start)))

	return files, stats, nil
}
