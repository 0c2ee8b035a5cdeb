// Package store holds the in-memory demo state shared by the HTTP and MCP
// surfaces.
//
// The store package provides:
// - Design tokens with shallow-merge updates
// - The server-side cart snapshot mirrored from clients
// - A bounded event log with FIFO eviction
package store
