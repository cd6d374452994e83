package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbreak/differ"
	"github.com/erraggy/oasbreak/internal/report"
	"github.com/erraggy/oasbreak/parser"
)

type detectInput struct {
	Previous specInput `json:"previous"         jsonschema:"The previously released OpenAPI document"`
	Current  specInput `json:"current"          jsonschema:"The candidate OpenAPI document to check against the previous one"`
	Rules    []string  `json:"rules,omitempty"  jsonschema:"Breaking change types to detect; empty detects all (see list_rules)"`
	Offset   int       `json:"offset,omitempty" jsonschema:"Skip the first N findings"`
	Limit    int       `json:"limit,omitempty"  jsonschema:"Maximum findings to return (default 100)"`
}

type detectFinding struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type detectOutput struct {
	BreakingChangesDetected bool            `json:"breaking_changes_detected"`
	Total                   int             `json:"total"`
	Returned                int             `json:"returned"`
	Rules                   []string        `json:"rules"`
	IgnoredRules            []string        `json:"ignored_rules,omitempty"`
	Findings                []detectFinding `json:"findings,omitempty"`
	Summary                 string          `json:"summary"`
}

func handleDetect(ctx context.Context, _ *mcp.CallToolRequest, input detectInput) (*mcp.CallToolResult, detectOutput, error) {
	previous, err := input.Previous.resolve(ctx)
	if err != nil {
		return errResult(err), detectOutput{}, nil
	}
	current, err := input.Current.resolve(ctx)
	if err != nil {
		return errResult(err), detectOutput{}, nil
	}

	rules := input.Rules
	if len(rules) == 0 {
		rules = cfg.DefaultRules
	}
	result, err := differ.DetectWithOptions(
		differ.WithPreviousParsed(previous),
		differ.WithCurrentParsed(current),
		differ.WithRules(rules...),
		differ.WithLogger(parser.NewSlogAdapter(slog.Default())),
	)
	if err != nil {
		return errResult(err), detectOutput{}, nil
	}

	page := paginate(result.Findings, input.Offset, input.Limit)
	output := detectOutput{
		BreakingChangesDetected: result.HasBreakingChanges,
		Total:                   len(result.Findings),
		Returned:                len(page),
		Rules:                   result.Rules,
		IgnoredRules:            ignoredRules(rules),
		Findings:                makeSlice[detectFinding](len(page)),
		Summary:                 report.Summary(result),
	}
	for _, f := range page {
		output.Findings = append(output.Findings, detectFinding{
			Kind:     string(f.Kind),
			Severity: f.Severity.String(),
			Message:  f.Message,
		})
	}
	return nil, output, nil
}

// ignoredRules returns the requested names that are not in the catalog.
func ignoredRules(names []string) []string {
	var ignored []string
	for _, name := range names {
		if _, ok := differ.LookupDefinition(name); !ok {
			ignored = append(ignored, name)
		}
	}
	return ignored
}
