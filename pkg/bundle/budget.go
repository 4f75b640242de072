package bundle

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Jisevind/src-context/pkg/patterns"
)

// applyTokenBudget selects the subset of processed files that fits the
// budget. Priority files go first, smallest first, so as many of them fit
// as possible; a priority file that does not fit warns and the scan moves
// on. The remaining files are then packed smallest first, and the first
// miss ends the selection outright; nothing after it is reconsidered.
// Files that do not fit are omitted entirely, with no placeholder.
func applyTokenBudget(files []ProcessedFile, budget int, priority *patterns.Set, logger *zap.Logger) []ProcessedFile {
	var prioritized, remaining []ProcessedFile
	for _, f := range files {
		if priority.Matches(f.Path) {
			prioritized = append(prioritized, f)
		} else {
			remaining = append(remaining, f)
		}
	}

	ascending := func(list []ProcessedFile) func(i, j int) bool {
		return func(i, j int) bool { return list[i].TokenCount < list[j].TokenCount }
	}
	sort.SliceStable(prioritized, ascending(prioritized))
	sort.SliceStable(remaining, ascending(remaining))

	selected := make([]ProcessedFile, 0, len(files))
	used := 0

	for _, f := range prioritized {
		if used+f.TokenCount > budget {
			logger.Warn("Priority file does not fit in the token budget",
				zap.String("path", f.Path),
				zap.Int("tokens", f.TokenCount),
				zap.Int("budgetRemaining", budget-used))
			continue
		}
		selected = append(selected, f)
		used += f.TokenCount
	}

	for _, f := range remaining {
		if used+f.TokenCount > budget {
			logger.Debug("Token budget exhausted",
				zap.String("path", f.Path),
				zap.Int("tokens", f.TokenCount),
				zap.Int("budgetRemaining", budget-used))
			break
		}
		selected = append(selected, f)
		used += f.TokenCount
	}

	logger.Debug("Applied token budget",
		zap.Int("budget", budget),
		zap.Int("usedTokens", used),
		zap.Int("selectedFiles", len(selected)),
		zap.Int("droppedFiles", len(files)-len(selected)))

	sort.Slice(selected, func(i, j int) bool { return selected[i].Path < selected[j].Path })
	return selected
}
