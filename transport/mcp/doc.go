// Package mcp exposes the coordinator's admin surface as MCP tools.
//
// The mcp package implements:
//   - Tool registration for user listing, ticket dealing and inspection,
//     number calling, round control, and win announcements
//   - Plain-text rendering of tickets and called numbers for tool output
//
// The Client is a thin proxy: every tool call is forwarded to the REST API,
// so an MCP-driven admin and a browser admin always observe the same state.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
