package cli

import (
	"fmt"

	"github.com/ka2n/ecdemo/config"
	"github.com/ka2n/ecdemo/mcp"
	"github.com/ka2n/ecdemo/version"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	mcpFlag  bool
	openFlag bool
	port     portFlag

	// Root command
	rootCmd = &cobra.Command{
		Use:           "ecdemo",
		Short:         "EC storefront demo backend with Figma MCP integration",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `ecdemo serves the storefront integration API (design tokens, cart sync,
event log) over HTTP, or the same data as MCP tools over stdio.

The two surfaces never run in the same process:
1. HTTP:  ecdemo [--port 3000] [--open]
2. MCP:   ecdemo --mcp   (or: ecdemo mcp)

PORT selects the HTTP port when --port is not given.`,
		Args: cobra.NoArgs,
		RunE: runRoot,
	}

	// Version command
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print detailed version information about ecdemo",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ecdemo version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  mcp:    %s\n", version.MCPVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
		},
	}
)

func init() {
	rootCmd.Flags().BoolVar(&mcpFlag, "mcp", false, "Run the MCP tool surface on stdio instead of the HTTP server")
	rootCmd.Flags().BoolVarP(&openFlag, "open", "o", false, "Open the product catalog in a browser once listening")
	rootCmd.Flags().VarP(&port, "port", "p", "Port for the HTTP server (overrides PORT)")
	rootCmd.MarkFlagsMutuallyExclusive("mcp", "port")
	rootCmd.MarkFlagsMutuallyExclusive("mcp", "open")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcp.Command())
}

// Run executes the main CLI functionality
func Run() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	if mcpFlag {
		return mcp.Run()
	}

	cfg := config.Load()
	if port.IsSet {
		cfg.Port = port.Value
	}
	return runServer(cmd.Context(), cfg, openFlag)
}
