package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodlog/pkg/config"
	"github.com/unowned-ai/moodlog/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run moodlog as an MCP server over stdio",
	Long: `Starts a Model Context Protocol (MCP) server that communicates over STDIN/STDOUT.

AI assistants can use the registered tools to add, list, update, delete, filter and
search journal entries, read statistics and manage the theme preference.

All diagnostic logging is written to STDERR so that STDOUT stays clean for JSON-RPC
messages. Redirect STDERR if you want to keep the logs, e.g.:

  moodlog mcp --backend sqlite 2> server.log`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.Options{File: configFile, Backend: backendFlag, Path: pathFlag})
		if err != nil {
			return err
		}
		kvStore, err := cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open %s store at '%s': %w", cfg.Backend, cfg.Path, err)
		}

		srv := mcp.NewMoodlogMCPServer(kvStore)
		defer srv.Close()
		srv.RegisterAllTools()

		fmt.Fprintf(os.Stderr, "Moodlog MCP server started. Backend: %s, path: %s\n", cfg.Backend, cfg.Path)
		fmt.Fprintf(os.Stderr, "Available tools: %s\n", strings.Join(mcp.ToolNames(), ", "))
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		if err := srv.Start(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
