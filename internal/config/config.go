// Package config binds the inputs of a breaking change check from a TOML
// file, GitHub Actions environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/erraggy/oasbreak/internal/report"
	"github.com/erraggy/oasbreak/oaserrors"
	"github.com/erraggy/oasbreak/parser"
)

// DefaultFileName is the config file read from the working directory.
const DefaultFileName = ".oasbreak.toml"

// Environment variables, as set by GitHub Actions for action inputs and
// workflow context.
const (
	EnvSpecFilename        = "INPUT_SPECFILENAME"
	EnvFormat              = "INPUT_FORMAT"
	EnvAccessToken         = "INPUT_ACCESSTOKEN"
	EnvBreakingChangeTypes = "INPUT_BREAKINGCHANGETYPES"
	EnvRepository          = "GITHUB_REPOSITORY"
	EnvBaseRef             = "GITHUB_BASE_REF"
	EnvAPIURL              = "GITHUB_API_URL"
)

// Config holds every input of a check run.
type Config struct {
	// SpecFilename is the document path, both locally and in the repository
	SpecFilename string `toml:"spec_filename"`
	// Format is json, yaml or auto
	Format string `toml:"format"`
	// AccessToken authenticates GitHub API requests
	AccessToken string `toml:"access_token,omitempty"`
	// Rules restricts detection to these rule names; empty means all
	Rules []string `toml:"breaking_change_types"`
	// Repository is owner/name of the repository holding the previous revision
	Repository string `toml:"repository"`
	// BaseRef is the branch the previous revision is read from; empty means the default branch
	BaseRef string `toml:"base_ref"`
	// PreviousFile reads the previous revision from disk instead of GitHub
	PreviousFile string `toml:"previous_file"`
	// OutputFormat is text, json or yaml
	OutputFormat string `toml:"output_format"`
	// APIURL is the GitHub API root, for GitHub Enterprise
	APIURL string `toml:"api_url"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Format:       "auto",
		OutputFormat: string(report.FormatText),
	}
}

// Load builds a Config from defaults, the TOML file at path, then the
// environment read through lookup. A missing file is only an error when
// path is not DefaultFileName.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.MergeFile(path); err != nil {
			if !(path == DefaultFileName && errors.Is(err, fs.ErrNotExist)) {
				return nil, err
			}
		}
	}
	if lookup != nil {
		cfg.ApplyEnv(lookup)
	}
	return cfg, nil
}

// MergeFile overlays the values set in the TOML file at path onto c.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return &oaserrors.ParseError{Path: path, Line: row, Column: col, Message: "invalid config", Cause: err}
		}
		return &oaserrors.ParseError{Path: path, Message: "invalid config", Cause: err}
	}
	return nil
}

// ApplyEnv overlays non-empty environment values onto c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(EnvSpecFilename, &c.SpecFilename)
	set(EnvFormat, &c.Format)
	set(EnvAccessToken, &c.AccessToken)
	set(EnvRepository, &c.Repository)
	set(EnvBaseRef, &c.BaseRef)
	set(EnvAPIURL, &c.APIURL)
	if v, ok := lookup(EnvBreakingChangeTypes); ok {
		if rules := ParseMultiline(v); len(rules) > 0 {
			c.Rules = rules
		}
	}
}

// ParseMultiline splits a multiline input into trimmed, non-empty lines.
func ParseMultiline(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ParsedFormat returns the document format.
func (c *Config) ParsedFormat() (parser.Format, error) {
	return parser.ParseFormat(c.Format)
}

// Validate reports the first problem that would prevent a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SpecFilename) == "" {
		return &oaserrors.ConfigError{Option: "spec-filename", Message: "is required (flag --spec or " + EnvSpecFilename + ")"}
	}
	if _, err := c.ParsedFormat(); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.OutputFormat); err != nil {
		return err
	}
	if c.PreviousFile != "" {
		return nil
	}
	if c.Repository == "" {
		return &oaserrors.ConfigError{Option: "repository", Message: "is required to fetch the previous revision (flag --repository or " + EnvRepository + ")"}
	}
	if c.AccessToken == "" {
		return &oaserrors.ConfigError{Option: "access-token", Message: "is required to fetch the previous revision (flag --token or " + EnvAccessToken + ")"}
	}
	return nil
}

// Encode writes c as TOML, with the access token redacted.
func (c *Config) Encode(w io.Writer) error {
	out := *c
	if out.AccessToken != "" {
		out.AccessToken = "********"
	}
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(out)
}
