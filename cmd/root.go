package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jisevind/src-context/pkg/bundle"
	"github.com/Jisevind/src-context/pkg/clipboard"
	"github.com/Jisevind/src-context/pkg/config"
	"github.com/Jisevind/src-context/pkg/report"
	"github.com/Jisevind/src-context/pkg/watch"
)

// generateFlags holds every flag of the root command. The pipeline flags
// are persistent so the stats subcommand shares them.
type generateFlags struct {
	dir              string
	ignores          []string
	ignoreFile       string
	minifyFile       string
	priorityFile     string
	removeWhitespace bool
	keepComments     bool
	tokenBudget      int
	maxFileKB        int
	noDefaultIgnores bool
	maxWorkers       int
	verbose          bool

	output       string
	useClipboard bool
	watchMode    bool
	debounce     time.Duration
}

// NewRootCmd builds the root command. Running it without a subcommand
// generates the context document for the given paths.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	cmd, _ := newRootCmd(logger)
	return cmd
}

func newRootCmd(logger *zap.Logger) (*cobra.Command, *generateFlags) {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "src-context [paths...]",
		Short: "src-context bundles source files into one LLM-ready document",
		Long: `src-context walks the given files and directories, filters them through
gitignore-style rules, strips comments and excess whitespace, and renders
everything into a single document with a directory tree and per-file token
counts, sized to fit a model's context window.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, flags, args)
			if err != nil {
				return err
			}
			if flags.watchMode {
				return runWatch(cmd.Context(), opts, flags, logger)
			}
			return runGenerate(opts, flags, logger)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.dir, "dir", "C", ".", "Working directory all paths resolve against")
	pf.StringSliceVarP(&flags.ignores, "ignore", "i", nil, "Extra ignore patterns in gitignore syntax (repeatable)")
	pf.StringVar(&flags.ignoreFile, "ignore-file", "", "Ignore patterns file (default "+bundle.DefaultIgnoreFile+")")
	pf.StringVar(&flags.minifyFile, "minify-file", "", "Minify patterns file (default "+bundle.DefaultMinifyFile+")")
	pf.StringVar(&flags.priorityFile, "priority-file", "", "Priority patterns file (default "+bundle.DefaultPriorityFile+")")
	pf.BoolVar(&flags.removeWhitespace, "remove-whitespace", false, "Collapse blank-line runs and trailing whitespace")
	pf.BoolVar(&flags.keepComments, "keep-comments", false, "Keep comments instead of stripping them")
	pf.IntVarP(&flags.tokenBudget, "token-budget", "b", 0, "Token ceiling for the document (0 disables)")
	pf.IntVar(&flags.maxFileKB, "max-file-kb", 0, "Skip files larger than this many KB (default 1024)")
	pf.BoolVar(&flags.noDefaultIgnores, "no-default-ignores", false, "Disable the built-in ignore patterns")
	pf.IntVar(&flags.maxWorkers, "max-workers", 0, "File-processing goroutines (default number of CPUs)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "Write the document to this file instead of stdout")
	f.BoolVarP(&flags.useClipboard, "clipboard", "c", false, "Copy the document to the system clipboard")
	f.BoolVar(&flags.watchMode, "watch", false, "Rebuild whenever watched files change")
	f.DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce, "Quiet period before a watch rebuild")

	cmd.AddCommand(newStatsCmd(logger, flags))
	cmd.AddCommand(newVersionCmd())

	return cmd, flags
}

// Execute runs the root command with the process logger attached.
func Execute(logger *zap.Logger) error {
	return NewRootCmd(logger).Execute()
}

// buildOptions merges the project configuration file with the parsed
// flags and assembles pipeline options. A flag given explicitly on the
// command line always wins over the configuration file.
func buildOptions(cmd *cobra.Command, flags *generateFlags, args []string) (bundle.Options, error) {
	if err := mergeConfig(cmd, flags); err != nil {
		return bundle.Options{}, err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	ignores := flags.ignores
	if flags.output != "" {
		// The document must never capture itself on a rebuild.
		ignores = append(ignores, filepath.ToSlash(flags.output))
	}

	return bundle.Options{
		WorkingDir:       flags.dir,
		InputPaths:       inputs,
		CLIIgnores:       ignores,
		CustomIgnoreFile: flags.ignoreFile,
		MinifyFile:       flags.minifyFile,
		PriorityFile:     flags.priorityFile,
		NoDefaultIgnores: flags.noDefaultIgnores,
		RemoveWhitespace: flags.removeWhitespace,
		KeepComments:     flags.keepComments,
		MaxFileKB:        flags.maxFileKB,
		TokenBudget:      flags.tokenBudget,
		MaxWorkers:       flags.maxWorkers,
	}, nil
}

// mergeConfig overlays config file values onto flags the user did not set.
// The config file is looked up in the working directory, so --dir itself
// can only come from the command line.
func mergeConfig(cmd *cobra.Command, flags *generateFlags) error {
	cfg, err := config.Load(flags.dir)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	if !fs.Changed("ignore") && len(cfg.Ignore) > 0 {
		flags.ignores = cfg.Ignore
	}
	if !fs.Changed("ignore-file") && cfg.IgnoreFile != "" {
		flags.ignoreFile = cfg.IgnoreFile
	}
	if !fs.Changed("minify-file") && cfg.MinifyFile != "" {
		flags.minifyFile = cfg.MinifyFile
	}
	if !fs.Changed("priority-file") && cfg.PriorityFile != "" {
		flags.priorityFile = cfg.PriorityFile
	}
	if !fs.Changed("remove-whitespace") && cfg.RemoveWhitespace {
		flags.removeWhitespace = true
	}
	if !fs.Changed("keep-comments") && cfg.KeepComments {
		flags.keepComments = true
	}
	if !fs.Changed("token-budget") && cfg.TokenBudget > 0 {
		flags.tokenBudget = cfg.TokenBudget
	}
	if !fs.Changed("max-file-kb") && cfg.MaxFileKB > 0 {
		flags.maxFileKB = cfg.MaxFileKB
	}
	if !fs.Changed("no-default-ignores") && cfg.NoDefaultIgnores {
		flags.noDefaultIgnores = true
	}
	if fs.Lookup("output") != nil {
		if !fs.Changed("output") && cfg.Output != "" {
			flags.output = cfg.Output
		}
		if !fs.Changed("clipboard") && cfg.Clipboard {
			flags.useClipboard = true
		}
	}

	return nil
}

// runGenerate builds the document once and delivers it. The stats report
// always goes to stderr so stdout stays a clean document stream.
func runGenerate(opts bundle.Options, flags *generateFlags, logger *zap.Logger) error {
	result, err := bundle.GenerateContext(opts, logger)
	if err != nil {
		return err
	}

	if err := deliver(result.Content, flags, logger); err != nil {
		return err
	}

	fmt.Fprint(os.Stderr, report.Render(result.Stats))
	return nil
}

// deliver writes the document to the output file and/or the clipboard;
// with neither destination it goes to stdout.
func deliver(content string, flags *generateFlags, logger *zap.Logger) error {
	delivered := false

	if flags.output != "" {
		path := outputPath(flags)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing output file %s: %w", path, err)
		}
		logger.Debug("Wrote output file", zap.String("path", path), zap.Int("bytes", len(content)))
		delivered = true
	}

	if flags.useClipboard {
		if !clipboard.Available() {
			return fmt.Errorf("clipboard is not available on this platform")
		}
		if err := clipboard.Copy(content); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		delivered = true
	}

	if !delivered {
		fmt.Print(content)
	}
	return nil
}

// outputPath resolves the output flag against the working directory.
func outputPath(flags *generateFlags) string {
	if filepath.IsAbs(flags.output) {
		return flags.output
	}
	return filepath.Join(flags.dir, flags.output)
}

// runWatch builds once, then rebuilds after each debounced change burst
// until interrupted. Watch requires a destination other than stdout, where
// successive documents would just interleave.
func runWatch(ctx context.Context, opts bundle.Options, flags *generateFlags, logger *zap.Logger) error {
	if flags.output == "" && !flags.useClipboard {
		return fmt.Errorf("--watch requires --output or --clipboard")
	}

	if err := runGenerate(opts, flags, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var outFile string
	if flags.output != "" {
		// fsnotify reports resolved paths; the initial build above
		// guarantees the file exists to resolve.
		outFile = outputPath(flags)
		if resolved, err := filepath.EvalSymlinks(outFile); err == nil {
			outFile = resolved
		}
	}

	w, err := watch.New(watch.Config{
		Dir:      flags.dir,
		Paths:    opts.InputPaths,
		Debounce: flags.debounce,
		Skip: func(path string) bool {
			return outFile != "" && path == outFile
		},
	}, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes (interrupt to stop)")

	return w.Run(ctx, func() {
		if err := runGenerate(opts, flags, logger); err != nil {
			logger.Error("Rebuild failed", zap.Error(err))
		}
	})
}
