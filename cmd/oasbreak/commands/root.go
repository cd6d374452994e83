// Package commands provides the cobra command tree for oasbreak.
package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/erraggy/oasbreak/internal/config"
	"github.com/erraggy/oasbreak/parser"
)

// ErrBreakingChanges is returned by check when findings were reported,
// so the process exits non-zero.
var ErrBreakingChanges = errors.New("breaking changes detected")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose    bool
	configPath string
	// lookupEnv reads the environment; tests replace it.
	lookupEnv func(string) (string, bool)
}

// logger returns a text logger on stderr; verbose enables debug output.
func (g *globalFlags) logger(cmd *cobra.Command) parser.Logger {
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return parser.NewSlogAdapter(slog.New(h))
}

// loadConfig reads the config file and environment.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	return config.Load(g.configPath, g.lookupEnv)
}

// NewRootCmd builds the oasbreak command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.LookupEnv)
}

func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	g := &globalFlags{lookupEnv: lookupEnv}

	root := &cobra.Command{
		Use:   "oasbreak",
		Short: "Detect breaking changes between OpenAPI document revisions",
		Long: `oasbreak compares the current revision of an OpenAPI document with the
previous one and reports changes that would break existing clients: removed
paths and methods, new required parameters and request bodies, removed
responses, and incompatible schema changes.

The previous revision is read from a GitHub repository (the pull request's
base branch when run in GitHub Actions) or from a local file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&g.configPath, "config", config.DefaultFileName, "path to a TOML config file")

	root.AddCommand(
		newCheckCmd(g),
		newRulesCmd(),
		newConfigCmd(g),
		newMCPCmd(),
		newVersionCmd(),
	)
	return root
}
