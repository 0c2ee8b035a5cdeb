package mcp

import (
	"github.com/ka2n/ecdemo/store"
	"github.com/spf13/cobra"
)

// Command returns the MCP server command
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE:  runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	return Run()
}

// Run serves a fresh store over stdio until stdin closes
func Run() error {
	return NewServer(store.New()).Run()
}
