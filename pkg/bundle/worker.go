package bundle

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// processCandidates runs the transformer over the include set with a
// bounded worker pool. Every file is processed independently; statistic
// deltas ride on the results channel and are merged sequentially here, so
// the shared record needs no locking. Results are re-sorted by path to
// keep output deterministic regardless of worker scheduling.
func processCandidates(cands []candidate, opts Options, counter TokenCounter, stats *BuildStats, logger *zap.Logger) []ProcessedFile {
	jobs := make(chan candidate, len(cands))
	results := make(chan fileResult, len(cands))
	var wg sync.WaitGroup

	logger.Debug("Initializing worker pool", zap.Int("workers", opts.MaxWorkers))
	for w := 0; w < opts.MaxWorkers; w++ {
		wg.Add(1)
		workerLogger := logger.With(zap.Int("workerID", w))
		go func() {
			defer wg.Done()
			for c := range jobs {
				results <- transformFile(c, opts, counter, workerLogger)
			}
		}()
	}

	for _, c := range cands {
		jobs <- c
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	files := make([]ProcessedFile, 0, len(cands))
	failedFiles := 0
	for res := range results {
		if res.skippedLarge {
			stats.SkippedLargeFiles++
			stats.FilesToInclude--
			stats.TotalFilesFound--
			continue
		}
		if res.binary {
			stats.BinaryAndSVGFiles++
		}
		if res.failed {
			failedFiles++
		}
		stats.TotalTokenCount += res.file.TokenCount
		stats.TotalFileSizeKB += res.file.sizeKB
		files = append(files, res.file)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	logger.Debug("All files processed",
		zap.Int("processedFiles", len(files)),
		zap.Int("failedFiles", failedFiles))
	return files
}
