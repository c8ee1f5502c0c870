// Package mcp provides a Model Context Protocol server for driftwood.
// It exposes graph inspection and commit navigation as MCP tools that any
// MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all driftwood tools registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "driftwood",
		Version: version,
	}, nil)
	registerTools(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// navigationAnnotations returns annotations for tools that move HEAD.
// A checkout rewrites no history, so the tools are non-destructive.
func navigationAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all driftwood tools to the server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "smartlog",
		Description: "Show the commit graph: the main branch spine plus draft stacks, " +
			"with HEAD, branch, and obsolete markers. Numbering matches driftwood pick.",
		Annotations: readOnlyAnnotations(),
	}, handleSmartlog())

	mcp.AddTool(server, &mcp.Tool{
		Name: "status",
		Description: "Show repository and event log state: repo name, branch, HEAD, " +
			"main branch, and event counts.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus())

	mcp.AddTool(server, &mcp.Tool{
		Name: "prev",
		Description: "Check out an ancestor of the current commit. " +
			"count selects the nth ancestor (default 1).",
		Annotations: navigationAnnotations(),
	}, handlePrev())

	mcp.AddTool(server, &mcp.Tool{
		Name: "next",
		Description: "Check out a descendant of the current commit, skipping obsolete " +
			"commits. count selects how many steps (default 1); towards resolves " +
			"forks as \"newest\" or \"oldest\" and is required when a fork is ambiguous.",
		Annotations: navigationAnnotations(),
	}, handleNext())
}
