package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbreak/differ"
)

type listRulesInput struct{}

type ruleInfo struct {
	Name        string `json:"name"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

type listRulesOutput struct {
	Rules []ruleInfo `json:"rules"`
}

func handleListRules(_ context.Context, _ *mcp.CallToolRequest, _ listRulesInput) (*mcp.CallToolResult, listRulesOutput, error) {
	defs := differ.Definitions()
	output := listRulesOutput{Rules: make([]ruleInfo, 0, len(defs))}
	for _, d := range defs {
		output.Rules = append(output.Rules, ruleInfo{
			Name:        string(d.Name),
			Severity:    d.Severity.String(),
			Description: d.Description,
			Message:     d.Message,
		})
	}
	return nil, output, nil
}
