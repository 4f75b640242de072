package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jisevind/src-context/pkg/bundle"
	"github.com/Jisevind/src-context/pkg/report"
)

// newStatsCmd reports per-file token counts without emitting the document.
// It runs the full pipeline, so the numbers match what a real build of the
// same paths would produce.
func newStatsCmd(logger *zap.Logger, flags *generateFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [paths...]",
		Short: "Show per-file token counts without writing the document",
		Long: `Stats runs the same discovery, filtering, and transformation pipeline as a
normal build but prints a token-count table instead of the document.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, flags, args)
			if err != nil {
				return err
			}

			result, err := bundle.GetFileStats(opts, logger)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "TOKENS\tPATH")
			for _, f := range result.Files {
				fmt.Fprintf(w, "%s\t%s\n", humanize.Comma(int64(f.TokenCount)), f.Path)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprint(os.Stderr, report.Render(result.Stats))
			return nil
		},
	}
}
