// Package mcp implements the Model Context Protocol surface of the demo
// backend.
//
// The mcp package provides:
// - The fixed tool catalog over the shared store
// - Name-based dispatch with UnknownOperation for unrecognized tools
// - The stdio MCP server and its cobra command
package mcp
