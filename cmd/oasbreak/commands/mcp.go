package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/oasbreak/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server over stdio",
		Long: `Start a Model Context Protocol server that exposes the detect_breaking_changes
and list_rules tools over stdio.

MCP client configuration:
  {
    "mcpServers": {
      "oasbreak": {
        "command": "/path/to/oasbreak",
        "args": ["mcp"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
