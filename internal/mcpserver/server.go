// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes breaking change detection as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbreak"
)

const serverInstructions = `oasbreak MCP server: detects breaking changes between two revisions of an OpenAPI document.

Tools:
- detect_breaking_changes: compare previous and current documents. Each side is given as file, url, content, or github {repository, path, ref}.
- list_rules: list the breaking change types that can be detected or passed in rules.

Configuration: defaults come from OASBREAK_* environment variables set in your MCP client config.
- OASBREAK_RULES: newline-separated default rules when a call passes none
- OASBREAK_GITHUB_TOKEN (or GITHUB_TOKEN): token for github inputs
- OASBREAK_CACHE_ENABLED (default: true), OASBREAK_CACHE_FILE_TTL (15m), OASBREAK_CACHE_REMOTE_TTL (5m)
- OASBREAK_MAX_INLINE_SIZE (default: 10MiB), OASBREAK_ALLOW_PRIVATE_IPS (default: false)

Caching: parsed documents are cached per session. File entries are keyed by path and mtime; url and github entries use a shorter TTL.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return newServer(ctx).Run(ctx, &mcp.StdioTransport{})
}

func newServer(ctx context.Context) *mcp.Server {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasbreak", Version: oasbreak.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_breaking_changes",
		Description: "Detect breaking changes between a previous and a current revision of an OpenAPI document. Reports removed paths and methods, new required parameters and request bodies, removed or retyped parameters, removed responses, and incompatible schema changes. Restrict detection with rules (names from list_rules). Use offset/limit to page through findings.",
	}, handleDetect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_rules",
		Description: "List every breaking change type with its default severity, description, and message template.",
	}, handleListRules)
}

// paginate applies offset/limit pagination to a slice. A non-positive
// limit defaults to 100 and is capped at cfg.MaxLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = 100
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths so MCP clients do not
// learn the server's directory layout.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
