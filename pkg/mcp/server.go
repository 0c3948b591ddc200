package mcp

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	moodlog "github.com/unowned-ai/moodlog/pkg"
	"github.com/unowned-ai/moodlog/pkg/journal"
	"github.com/unowned-ai/moodlog/pkg/kv"
	"github.com/unowned-ai/moodlog/pkg/storage"
)

// ServerName is what the server reports during MCP initialization.
const ServerName = "Moodlog MCP Server"

type MoodlogMCPServer struct {
	mcpServer *server.MCPServer
	kv        kv.Store
	adapter   *storage.Adapter
	store     *journal.Store
}

// NewMoodlogMCPServer builds an MCP server over an open key-value store. The
// server takes ownership of kvStore and closes it in Close.
func NewMoodlogMCPServer(kvStore kv.Store, opts ...journal.Option) *MoodlogMCPServer {
	s := server.NewMCPServer(
		ServerName,
		moodlog.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	adapter := storage.NewAdapter(kvStore)
	return &MoodlogMCPServer{
		mcpServer: s,
		kv:        kvStore,
		adapter:   adapter,
		store:     journal.NewStore(adapter, opts...),
	}
}

// RegisterAllTools registers every moodlog tool on the server.
func (s *MoodlogMCPServer) RegisterAllTools() {
	RegisterPingTool(s.mcpServer)
	RegisterAddEntryTool(s.mcpServer, s.store)
	RegisterListEntriesTool(s.mcpServer, s.store)
	RegisterGetEntryTool(s.mcpServer, s.store)
	RegisterUpdateEntryTool(s.mcpServer, s.store)
	RegisterDeleteEntryTool(s.mcpServer, s.store)
	RegisterFilterEntriesTool(s.mcpServer, s.store)
	RegisterSearchEntriesTool(s.mcpServer, s.store)
	RegisterGetStatsTool(s.mcpServer, s.store)
	RegisterGetThemeTool(s.mcpServer, s.adapter)
	RegisterSetThemeTool(s.mcpServer, s.adapter)
}

// ToolNames lists the tools RegisterAllTools installs, in registration order.
func ToolNames() []string {
	return []string{
		"ping", "add_entry", "list_entries", "get_entry", "update_entry", "delete_entry",
		"filter_entries", "search_entries", "get_stats", "get_theme", "set_theme",
	}
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *MoodlogMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// Store returns the journal store the tools operate on.
func (s *MoodlogMCPServer) Store() *journal.Store {
	return s.store
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *MoodlogMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *MoodlogMCPServer) Close() error {
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing store failed: %v\n", err)
			return err
		}
	}
	return nil
}
