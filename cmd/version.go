package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jisevind/src-context/pkg/version"
)

// newVersionCmd reports the build metadata embedded at link time. The
// --short flag prints just the version number for scripting.
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of src-context",
		Long:  `Display the current version information of the src-context CLI tool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			if short {
				fmt.Println(v.Version)
			} else {
				fmt.Println(v.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print the version number only")
	return cmd
}
