// Package report renders detection results for terminals, machines and
// GitHub Actions.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbreak/differ"
	"github.com/erraggy/oasbreak/internal/cliutil"
	"github.com/erraggy/oasbreak/internal/fileutil"
	"github.com/erraggy/oasbreak/internal/severity"
	"github.com/erraggy/oasbreak/oaserrors"
)

// Format selects how a Result is rendered.
type Format string

const (
	// FormatText is the human-readable listing
	FormatText Format = "text"
	// FormatJSON is the Result as indented JSON
	FormatJSON Format = "json"
	// FormatYAML is the Result as YAML
	FormatYAML Format = "yaml"
)

// Messages printed by the text format.
const (
	HeaderFound = "Found breaking changes:"
	NoneFound   = "No breaking changes found"
)

// OutputName is the step output set to "true" or "false".
const OutputName = "breaking-changes-detected"

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", &oaserrors.ConfigError{Option: "output", Value: s, Message: "must be text, json or yaml"}
	}
}

// Write renders res to w in the given format.
func Write(w io.Writer, format Format, res *differ.Result) error {
	if res == nil {
		return fmt.Errorf("report: nil result")
	}
	out := *res
	if out.Findings == nil {
		out.Findings = []differ.Finding{}
	}
	if out.Rules == nil {
		out.Rules = []string{}
	}

	switch format {
	case FormatText, "":
		writeText(w, &out)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(&out)
	case FormatYAML:
		data, err := yaml.Marshal(&out)
		if err != nil {
			return fmt.Errorf("report: failed to marshal yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return &oaserrors.ConfigError{Option: "output", Value: string(format), Message: "unsupported output format"}
	}
}

func writeText(w io.Writer, res *differ.Result) {
	if len(res.Findings) == 0 {
		cliutil.Writef(w, "%s\n", NoneFound)
		return
	}
	cliutil.Writef(w, "%s\n", HeaderFound)
	for _, f := range res.Findings {
		cliutil.Writef(w, "%s: %s\n", f.Kind, f.Message)
	}
}

// Summary returns a one-line count of findings by severity, e.g.
// "3 breaking changes (1 critical, 2 error)".
func Summary(res *differ.Result) string {
	n := len(res.Findings)
	if n == 0 {
		return NoneFound
	}
	var parts []string
	for _, level := range []severity.Severity{severity.SeverityCritical, severity.SeverityError, severity.SeverityWarning, severity.SeverityInfo} {
		if c := res.CountBySeverity(level); c > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c, level))
		}
	}
	noun := "breaking changes"
	if n == 1 {
		noun = "breaking change"
	}
	return fmt.Sprintf("%d %s (%s)", n, noun, strings.Join(parts, ", "))
}

// Annotate writes one GitHub Actions workflow command per finding so the
// run summary shows each breaking change.
func Annotate(w io.Writer, findings []differ.Finding) {
	for _, f := range findings {
		cliutil.Writef(w, "::%s title=%s::%s\n", command(f.Severity), cliutil.EscapeProperty(string(f.Kind)), cliutil.EscapeData(f.Message))
	}
}

func command(s severity.Severity) string {
	switch s {
	case severity.SeverityWarning:
		return "warning"
	case severity.SeverityInfo:
		return "notice"
	default:
		return "error"
	}
}

// SetOutput appends name=value to the step output file at path. An empty
// path is a no-op outside GitHub Actions.
func SetOutput(path, name, value string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileutil.ReadableByAll)
	if err != nil {
		return fmt.Errorf("report: failed to open output file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: failed to write output: %w", err)
	}
	return f.Close()
}

// SetDetected records whether breaking changes were found.
func SetDetected(path string, detected bool) error {
	return SetOutput(path, OutputName, fmt.Sprintf("%t", detected))
}
