package mcp

import (
	"github.com/ka2n/ecdemo/log"
	"github.com/ka2n/ecdemo/store"
	"github.com/ka2n/ecdemo/version"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is the name the MCP server announces on initialize
const ServerName = "figma-ec-demo-server"

// Server represents the MCP server for the demo backend
type Server struct {
	server *server.MCPServer
	tools  *Toolset
}

// NewServer creates a new MCP server instance over st
func NewServer(st *store.Store) *Server {
	s := server.NewMCPServer(ServerName, version.MCPVersion,
		server.WithToolCapabilities(false),
	)

	tools := NewToolset(st)
	s.AddTools(tools.ServerTools()...)

	return &Server{
		server: s,
		tools:  tools,
	}
}

// Run starts the MCP server
func (s *Server) Run() error {
	log.Info("MCP server running on stdio", "name", ServerName, "tools", len(s.tools.Names()))
	return server.ServeStdio(s.server)
}
