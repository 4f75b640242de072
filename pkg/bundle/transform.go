package bundle

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"
)

// fileResult carries one processed file plus the flags the collector needs
// to merge statistics sequentially after the parallel phase.
type fileResult struct {
	file         ProcessedFile
	binary       bool
	skippedLarge bool
	failed       bool
}

// transformFile turns one include-classified candidate into its output
// block. Failures never propagate: anything that goes wrong mid-file
// degrades to an error placeholder so a single file can never abort the
// run.
func transformFile(c candidate, opts Options, counter TokenCounter, logger *zap.Logger) (res fileResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Recovered from file processing failure",
				zap.String("path", c.Path),
				zap.Any("cause", r))
			res = errorResult(c.Path, fmt.Errorf("%v", r), 0, counter)
		}
	}()

	abs := resolveInput(opts.WorkingDir, c.Path)

	info, err := os.Stat(abs)
	if err != nil {
		logger.Warn("Failed to stat file", zap.String("path", c.Path), zap.Error(err))
		return errorResult(c.Path, err, 0, counter)
	}

	sizeKB := float64(info.Size()) / 1024.0
	if sizeKB > float64(opts.MaxFileKB) {
		logger.Debug("Skipping file over size limit",
			zap.String("path", c.Path),
			zap.Float64("sizeKB", sizeKB),
			zap.Int("maxFileKB", opts.MaxFileKB))
		return fileResult{skippedLarge: true}
	}

	// SVG is always a placeholder, never sniffed as text.
	if fileExt(c.Path) == "svg" {
		return placeholderResult(c.Path, opts.OnBinaryFile(c.Path), sizeKB, counter)
	}

	if info.Size() > largeFileBytes {
		return transformLargeFile(c.Path, abs, sizeKB, opts, counter, logger)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		logger.Warn("Failed to read file", zap.String("path", c.Path), zap.Error(err))
		return errorResult(c.Path, err, sizeKB, counter)
	}

	// Small files get the more accurate whole-content sniff.
	if isBinaryContent(data) {
		return placeholderResult(c.Path, opts.OnBinaryFile(c.Path), sizeKB, counter)
	}

	content := string(data)
	if !opts.KeepComments {
		content = safeStrip(content, c.Path, logger)
	}
	if opts.RemoveWhitespace && !isWhitespaceSensitive(c.Path) {
		content = normalizeWhitespace(content)
	}

	block := formatFileBlock(c.Path, content)
	return fileResult{file: ProcessedFile{
		Path:       c.Path,
		Content:    block,
		TokenCount: counter.Count(block),
		sizeKB:     sizeKB,
	}}
}

// transformLargeFile samples the first 50 KB of an oversized text file,
// appends a truncation note, and extrapolates the token count from the
// sample by the full-to-sample size ratio.
func transformLargeFile(display, abs string, sizeKB float64, opts Options, counter TokenCounter, logger *zap.Logger) fileResult {
	f, err := os.Open(abs)
	if err != nil {
		logger.Warn("Failed to open file for sampling", zap.String("path", display), zap.Error(err))
		return errorResult(display, err, sizeKB, counter)
	}
	defer f.Close()

	buf := make([]byte, sampleReadBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		logger.Warn("Failed to sample file", zap.String("path", display), zap.Error(err))
		return errorResult(display, err, sizeKB, counter)
	}
	sample := buf[:n]

	if isBinaryContent(sample[:min(len(sample), binarySniffBytes)]) {
		return placeholderResult(display, opts.OnBinaryFile(display), sizeKB, counter)
	}

	sampleKB := float64(len(sample)) / 1024.0
	content := string(sample) + truncationNote(sizeKB, sampleKB)
	block := formatFileBlock(display, content)

	tokens := counter.Count(block)
	if sampleKB > 0 {
		tokens = int(math.Ceil(float64(tokens) * sizeKB / sampleKB))
	}

	logger.Debug("Sampled oversized text file",
		zap.String("path", display),
		zap.Float64("sizeKB", sizeKB),
		zap.Int("estimatedTokens", tokens))

	return fileResult{file: ProcessedFile{
		Path:       display,
		Content:    block,
		TokenCount: tokens,
		sizeKB:     sizeKB,
	}}
}

// minifyPlaceholders renders placeholder blocks for minify-classified
// files. They bypass transformation entirely; only their placeholder
// tokens count toward totals.
func minifyPlaceholders(cands []candidate, opts Options, counter TokenCounter, stats *BuildStats) []ProcessedFile {
	files := make([]ProcessedFile, 0, len(cands))
	for _, c := range cands {
		block := formatPlaceholderBlock(c.Path, opts.OnMinifyFile(c.Path))
		pf := ProcessedFile{
			Path:       c.Path,
			Content:    block,
			TokenCount: counter.Count(block),
			minified:   true,
		}
		stats.TotalTokenCount += pf.TokenCount
		files = append(files, pf)
	}
	return files
}

func placeholderResult(path, message string, sizeKB float64, counter TokenCounter) fileResult {
	block := formatPlaceholderBlock(path, message)
	return fileResult{
		file: ProcessedFile{
			Path:       path,
			Content:    block,
			TokenCount: counter.Count(block),
			sizeKB:     sizeKB,
		},
		binary: true,
	}
}

func errorResult(path string, err error, sizeKB float64, counter TokenCounter) fileResult {
	block := formatPlaceholderBlock(path, errorPlaceholder(path, err))
	return fileResult{
		file: ProcessedFile{
			Path:       path,
			Content:    block,
			TokenCount: counter.Count(block),
			sizeKB:     sizeKB,
		},
		failed: true,
	}
}
