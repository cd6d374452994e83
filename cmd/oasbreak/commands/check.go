package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erraggy/oasbreak/differ"
	"github.com/erraggy/oasbreak/internal/config"
	"github.com/erraggy/oasbreak/internal/report"
	"github.com/erraggy/oasbreak/loader"
	"github.com/erraggy/oasbreak/parser"
)

// checkFlags mirrors the config fields that can be set on the command line.
type checkFlags struct {
	spec         string
	format       string
	token        string
	rules        []string
	repository   string
	baseRef      string
	previous     string
	output       string
	apiURL       string
	annotations  bool
	githubOutput string
}

func newCheckCmd(g *globalFlags) *cobra.Command {
	f := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the current document for breaking changes",
		Long: `Load the previous and current revisions of a document, detect breaking
changes, and report them.

Inputs are read from, in increasing precedence: built-in defaults, the TOML
config file, GitHub Actions environment variables (INPUT_SPECFILENAME,
INPUT_FORMAT, INPUT_ACCESSTOKEN, INPUT_BREAKINGCHANGETYPES, GITHUB_REPOSITORY,
GITHUB_BASE_REF, GITHUB_API_URL), and flags.

Exit Status:
  0    No breaking changes found
  1    Breaking changes found, or the check could not run`,
		Example: `  oasbreak check --spec openapi.yaml --previous openapi.old.yaml
  oasbreak check --spec api/openapi.json --repository acme/api --base-ref main --token "$GITHUB_TOKEN"
  oasbreak check --spec openapi.yaml --previous old.yaml --rules removed-paths,removed-http-methods --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			annotate := f.annotations
			if !cmd.Flags().Changed("annotations") {
				v, _ := g.lookupEnv("GITHUB_ACTIONS")
				annotate = v == "true"
			}
			githubOutput := f.githubOutput
			if !cmd.Flags().Changed("github-output") {
				githubOutput, _ = g.lookupEnv("GITHUB_OUTPUT")
			}
			return runCheck(cmd, g.logger(cmd), cfg, annotate, githubOutput)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.spec, "spec", "s", "", "document path, locally and in the repository")
	fl.StringVar(&f.format, "format", "auto", "document format: json, yaml, or auto")
	fl.StringVar(&f.token, "token", "", "GitHub token used to read the previous revision")
	fl.StringSliceVarP(&f.rules, "rules", "r", nil, "breaking change types to detect (default all; see 'oasbreak rules')")
	fl.StringVar(&f.repository, "repository", "", "GitHub repository holding the previous revision (owner/name)")
	fl.StringVar(&f.baseRef, "base-ref", "", "branch holding the previous revision (default: repository default branch)")
	fl.StringVarP(&f.previous, "previous", "p", "", "read the previous revision from this local file instead of GitHub")
	fl.StringVarP(&f.output, "output", "o", "text", "output format: text, json, or yaml")
	fl.StringVar(&f.apiURL, "api-url", "", "GitHub API URL, for GitHub Enterprise")
	fl.BoolVar(&f.annotations, "annotations", false, "emit GitHub Actions error annotations (default: on when GITHUB_ACTIONS=true)")
	fl.StringVar(&f.githubOutput, "github-output", "", "file receiving the breaking-changes-detected output (default: $GITHUB_OUTPUT)")
	return cmd
}

// apply overlays the flags the user set onto cfg.
func (f *checkFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if fl.Changed(name) {
			*dst = v
		}
	}
	set("spec", &cfg.SpecFilename, f.spec)
	set("format", &cfg.Format, f.format)
	set("token", &cfg.AccessToken, f.token)
	set("repository", &cfg.Repository, f.repository)
	set("base-ref", &cfg.BaseRef, f.baseRef)
	set("previous", &cfg.PreviousFile, f.previous)
	set("output", &cfg.OutputFormat, f.output)
	set("api-url", &cfg.APIURL, f.apiURL)
	if fl.Changed("rules") {
		cfg.Rules = f.rules
	}
}

// previousSource selects where the previous revision is read from.
func previousSource(cfg *config.Config, format parser.Format, logger parser.Logger) (loader.Source, error) {
	if cfg.PreviousFile != "" {
		return loader.NewFileSource(cfg.PreviousFile, format), nil
	}
	opts := []loader.GitHubOption{
		loader.WithRef(cfg.BaseRef),
		loader.WithToken(cfg.AccessToken),
		loader.WithGitHubFormat(format),
		loader.WithGitHubLogger(logger),
	}
	if cfg.APIURL != "" {
		opts = append(opts, loader.WithBaseURL(cfg.APIURL))
	}
	return loader.NewGitHubSource(cfg.Repository, cfg.SpecFilename, opts...)
}

func loadBoth(ctx context.Context, cfg *config.Config, logger parser.Logger) (*parser.Document, *parser.Document, error) {
	format, err := cfg.ParsedFormat()
	if err != nil {
		return nil, nil, err
	}
	prevSrc, err := previousSource(cfg, format, logger)
	if err != nil {
		return nil, nil, err
	}
	previous, err := prevSrc.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to load spec from the base branch: %w", err)
	}
	current, err := loader.NewFileSource(cfg.SpecFilename, format).Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to load spec from current branch: %w", err)
	}
	return previous, current, nil
}

func runCheck(cmd *cobra.Command, logger parser.Logger, cfg *config.Config, annotate bool, githubOutput string) error {
	outFormat, err := report.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}
	previous, current, err := loadBoth(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("documents loaded", "previous", previous.Path, "current", current.Path)

	d := &differ.Detector{Rules: cfg.Rules, Logger: logger}
	res, err := d.Detect(previous, current)
	if err != nil {
		return err
	}

	if err := report.Write(cmd.OutOrStdout(), outFormat, res); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if annotate {
		report.Annotate(cmd.ErrOrStderr(), res.Findings)
	}
	if err := report.SetDetected(githubOutput, res.HasBreakingChanges); err != nil {
		return err
	}
	if res.HasBreakingChanges {
		return fmt.Errorf("%w: %s", ErrBreakingChanges, report.Summary(res))
	}
	return nil
}
