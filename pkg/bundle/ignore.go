package bundle

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Jisevind/src-context/pkg/patterns"
)

// defaultIgnores is the built-in lowest-precedence ignore tier: version
// control internals, dependency and build trees, editor and OS litter,
// generated assets, secrets, and the tool's own control files.
var defaultIgnores = []string{
	".git/",
	"node_modules/",
	"vendor/",
	"bower_components/",
	"dist/",
	"build/",
	"out/",
	"target/",
	"coverage/",
	".idea/",
	".vscode/",
	"__pycache__/",
	".DS_Store",
	"Thumbs.db",
	"*.log",
	"*.min.js",
	"*.min.css",
	"*.map",
	".env",
	".env.*",
	DefaultIgnoreFile,
	DefaultMinifyFile,
	DefaultPriorityFile,
	".src-context.yaml",
}

// ruleSet holds every compiled pattern tier for one run. Tiers stay
// independently queryable for exclusion attribution; combined is the
// matcher that decides inclusion, built default then custom then CLI so
// later tiers' negations override earlier tiers.
type ruleSet struct {
	minify   *patterns.Set
	priority *patterns.Set
	combined *patterns.Set
	defaults *patterns.Set
	custom   *patterns.Set
	cli      *patterns.Set
}

// loadRuleSet reads the control files from the working directory and
// compiles all tiers. Missing control files yield empty tiers; unreadable
// ones warn and behave as missing.
func loadRuleSet(opts Options, logger *zap.Logger) *ruleSet {
	custom := loadPatternFile(filepath.Join(opts.WorkingDir, opts.CustomIgnoreFile), logger)
	minify := loadPatternFile(filepath.Join(opts.WorkingDir, opts.MinifyFile), logger)
	priority := loadPatternFile(filepath.Join(opts.WorkingDir, opts.PriorityFile), logger)

	var defaults []string
	if !opts.NoDefaultIgnores {
		defaults = defaultIgnores
	}

	combined := make([]string, 0, len(defaults)+len(custom)+len(opts.CLIIgnores))
	combined = append(combined, defaults...)
	combined = append(combined, custom...)
	combined = append(combined, opts.CLIIgnores...)

	logger.Debug("Compiled ignore rules",
		zap.Int("defaultPatterns", len(defaults)),
		zap.Int("customPatterns", len(custom)),
		zap.Int("cliPatterns", len(opts.CLIIgnores)),
		zap.Int("minifyPatterns", len(minify)),
		zap.Int("priorityPatterns", len(priority)))

	return &ruleSet{
		minify:   patterns.Compile(minify...),
		priority: patterns.Compile(priority...),
		combined: patterns.Compile(combined...),
		defaults: patterns.Compile(defaults...),
		custom:   patterns.Compile(custom...),
		cli:      patterns.Compile(opts.CLIIgnores...),
	}
}

func loadPatternFile(path string, logger *zap.Logger) []string {
	lines, err := patterns.LoadFile(path)
	if err != nil {
		logger.Warn("Failed to read pattern file", zap.String("file", path), zap.Error(err))
		return nil
	}
	return lines
}

// classification is the resolver's output: files to include fully and
// files to replace with minify placeholders. Ignored files exist only in
// the statistics.
type classification struct {
	include []candidate
	minify  []candidate
}

// classifyCandidates sorts every candidate into include, minify, or
// ignored. Minify is checked first and beats any ignore match. Exclusions
// are attributed to exactly one tier, checked CLI > custom > default; when
// only the combined matcher fires (cross-tier negation), the highest
// precedence non-empty tier takes the blame.
func classifyCandidates(cands []candidate, rules *ruleSet, stats *BuildStats, logger *zap.Logger) classification {
	var cls classification

	for _, c := range cands {
		if rules.minify.Matches(c.Rel) {
			cls.minify = append(cls.minify, c)
			stats.FilesToMinify++
			continue
		}

		if rules.combined.Matches(c.Rel) {
			stats.FilesIgnored++
			switch {
			case rules.cli.Matches(c.Rel):
				stats.FilesIgnoredByCLI++
			case rules.custom.Matches(c.Rel):
				stats.FilesIgnoredByCustom++
			case rules.defaults.Matches(c.Rel):
				stats.FilesIgnoredByDefault++
			case !rules.cli.Empty():
				stats.FilesIgnoredByCLI++
			case !rules.custom.Empty():
				stats.FilesIgnoredByCustom++
			default:
				stats.FilesIgnoredByDefault++
			}
			logger.Debug("Ignoring file", zap.String("path", c.Path))
			continue
		}

		cls.include = append(cls.include, c)
		stats.FilesToInclude++
	}

	return cls
}
