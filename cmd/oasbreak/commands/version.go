package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/oasbreak"
	"github.com/erraggy/oasbreak/internal/cliutil"
)

func newVersionCmd() *cobra.Command {
	var build bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if build {
				cliutil.Writef(cmd.OutOrStdout(), "%s\n", oasbreak.BuildInfo())
				return
			}
			cliutil.Writef(cmd.OutOrStdout(), "oasbreak version %s\n", oasbreak.Version())
		},
	}
	cmd.Flags().BoolVar(&build, "build", false, "print commit, build time, and Go version")
	return cmd
}
