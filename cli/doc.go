// Package cli implements the command-line interface for ecdemo.
//
// The cli package provides:
// - The HTTP surface server with graceful shutdown
// - Switching to the MCP tool surface with --mcp or the mcp subcommand
// - A terminal storefront with a client-side cart mirrored to the server
// - Product catalog rendering
package cli
