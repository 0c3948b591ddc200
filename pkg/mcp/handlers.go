package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/moodlog/pkg/journal"
	"github.com/unowned-ai/moodlog/pkg/storage"
	"github.com/unowned-ai/moodlog/pkg/theme"
)

func moodNames() []string {
	moods := journal.Moods()
	names := make([]string, len(moods))
	for i, m := range moods {
		names[i] = string(m)
	}
	return names
}

var moodDescription = "One of: " + strings.Join(moodNames(), ", ") + "."

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Moodlog MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_moodlog"), nil
}

// RegisterAddEntryTool registers the add_entry tool.
func RegisterAddEntryTool(s *server.MCPServer, store *journal.Store) {
	tool := mcp.NewTool("add_entry",
		mcp.WithDescription("Adds a journal entry. Omitted fields get defaults: title 'Untitled Entry', content 'No content', mood 'happy'."),
		mcp.WithString("title", mcp.Description("Entry title.")),
		mcp.WithString("content", mcp.Description("Entry text.")),
		mcp.WithString("mood", mcp.Description(moodDescription), mcp.Enum(moodNames()...)),
	)
	s.AddTool(tool, addEntryHandler(store))
}

func addEntryHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mood, err := optionalMood(request, "mood")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, err := store.Add(ctx, journal.Partial{
			Title:   optionalString(request, "title"),
			Content: optionalString(request, "content"),
			Mood:    mood,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add entry: %v", err)), nil
		}
		return jsonResult(entry)
	}
}

// RegisterListEntriesTool registers the list_entries tool.
func RegisterListEntriesTool(s *server.MCPServer, store *journal.Store) {
	tool := mcp.NewTool("list_entries",
		mcp.WithDescription("Lists all journal entries in the order they were added."),
	)
	s.AddTool(tool, listEntriesHandler(store))
}

func listEntriesHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := store.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}
		return jsonResult(entries)
	}
}

type lookupResult struct {
	Found bool           `json:"found"`
	ID    string         `json:"id"`
	Entry *journal.Entry `json:"entry,omitempty"`
}

// RegisterGetEntryTool registers the get_entry tool.
func RegisterGetEntryTool(s *server.MCPServer, store *journal.Store) {
	tool := mcp.NewTool("get_entry",
		mcp.WithDescription("Retrieves one entry by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry id.")),
	)
	s.AddTool(tool, getEntryHandler(store))
}

func getEntryHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := stringArg(request, "id")
		if !ok || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		entry, found, err := store.Get(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get entry '%s': %v", id, err)), nil
		}
		res := lookupResult{Found: found, ID: id}
		if found {
			res.Entry = &entry
		}
		return jsonResult(res)
	}
}

// RegisterUpdateEntryTool registers the update_entry tool.
func RegisterUpdateEntryTool(s *server.MCPServer, store *journal.Store) {
	tool := mcp.NewTool("update_entry",
		mcp.WithDescription("Updates an entry's title, content or mood. The timestamp is always refreshed. Unknown ids return found=false."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry id.")),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("content", mcp.Description("New content.")),
		mcp.WithString("mood", mcp.Description(moodDescription), mcp.Enum(moodNames()...)),
	)
	s.AddTool(tool, updateEntryHandler(store))
}

func updateEntryHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := stringArg(request, "id")
		if !ok || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		mood, err := optionalMood(request, "mood")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, found, err := store.Update(ctx, id, journal.Partial{
			Title:   optionalString(request, "title"),
			Content: optionalString(request, "content"),
			Mood:    mood,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update entry '%s': %v", id, err)), nil
		}
		res := lookupResult{Found: found, ID: id}
		if found {
			res.Entry = &entry
		}
		return jsonResult(res)
	}
}

// RegisterDeleteEntryTool registers the delete_entry tool.
func RegisterDeleteEntryTool(s *server.MCPServer, store *journal.Store) {
	tool := mcp.NewTool("delete_entry",
		mcp.WithDescription("Deletes an entry by id. Returns deleted=false if no such entry exists."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry id.")),
	)
	s.AddTool(tool, deleteEntryHandler(store))
}

func deleteEntryHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := stringArg(request, "id")
		if !ok || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		deleted, err := store.Delete(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry '%s': %v", id, err)), nil
		}
		return jsonResult(map[string]any{"deleted": deleted, "id": id})
	}
}

// RegisterFilterEntriesTool registers the filter_entries tool.
func RegisterFilterEntriesTool(s *server.MCPServer, store *journal.Store) {
	tool := mcp.NewTool("filter_entries",
		mcp.WithDescription("Lists the entries tagged with one mood, in their stored order."),
		mcp.WithString("mood", mcp.Required(), mcp.Description(moodDescription), mcp.Enum(moodNames()...)),
	)
	s.AddTool(tool, filterEntriesHandler(store))
}

func filterEntriesHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mood, err := optionalMood(request, "mood")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if mood == nil {
			return mcp.NewToolResultError("'mood' parameter is required."), nil
		}

		entries, err := store.FilterByMood(ctx, *mood)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to filter entries: %v", err)), nil
		}
		return jsonResult(entries)
	}
}

type searchResult struct {
	Query   string             `json:"query"`
	Mood    string             `json:"mood,omitempty"`
	Count   int                `json:"count"`
	Summary string             `json:"summary,omitempty"`
	Entries journal.Collection `json:"entries"`
}

// RegisterSearchEntriesTool registers the search_entries tool.
func RegisterSearchEntriesTool(s *server.MCPServer, store *journal.Store) {
	tool := mcp.NewTool("search_entries",
		mcp.WithDescription("Searches entry titles and content for a case-insensitive substring, optionally within one mood."),
		mcp.WithString("query", mcp.Description("Text to look for. Empty returns every entry (of the mood, if given).")),
		mcp.WithString("mood", mcp.Description(moodDescription), mcp.Enum(moodNames()...)),
	)
	s.AddTool(tool, searchEntriesHandler(store))
}

func searchEntriesHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, _ := stringArg(request, "query")
		mood, err := optionalMood(request, "mood")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res, err := store.Search(ctx, journal.Query{Mood: mood, Text: query})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to search entries: %v", err)), nil
		}

		out := searchResult{
			Query:   query,
			Count:   len(res.Entries),
			Summary: res.Summary(),
			Entries: res.Entries,
		}
		if mood != nil {
			out.Mood = string(*mood)
		}
		return jsonResult(out)
	}
}

// RegisterGetStatsTool registers the get_stats tool.
func RegisterGetStatsTool(s *server.MCPServer, store *journal.Store) {
	tool := mcp.NewTool("get_stats",
		mcp.WithDescription("Returns total entries, total words, days journaled, entries this year and per-mood counts."),
		mcp.WithString("mood", mcp.Description("Restrict statistics to one mood. "+moodDescription), mcp.Enum(moodNames()...)),
	)
	s.AddTool(tool, getStatsHandler(store, time.Now))
}

func getStatsHandler(store *journal.Store, now func() time.Time) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mood, err := optionalMood(request, "mood")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var entries journal.Collection
		if mood != nil {
			entries, err = store.FilterByMood(ctx, *mood)
		} else {
			entries, err = store.List(ctx)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to compute stats: %v", err)), nil
		}
		return jsonResult(journal.ComputeStats(entries, now()))
	}
}

// RegisterGetThemeTool registers the get_theme tool.
func RegisterGetThemeTool(s *server.MCPServer, adapter *storage.Adapter) {
	tool := mcp.NewTool("get_theme",
		mcp.WithDescription("Returns the stored theme preference: system, light or dark."),
	)
	s.AddTool(tool, getThemeHandler(adapter))
}

func getThemeHandler(adapter *storage.Adapter) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := adapter.LoadPreference(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load theme: %v", err)), nil
		}
		return jsonResult(map[string]string{"theme": p.String()})
	}
}

// RegisterSetThemeTool registers the set_theme tool.
func RegisterSetThemeTool(s *server.MCPServer, adapter *storage.Adapter) {
	tool := mcp.NewTool("set_theme",
		mcp.WithDescription("Stores the theme preference."),
		mcp.WithString("theme", mcp.Required(), mcp.Description("One of: system, light, dark."), mcp.Enum("system", "light", "dark")),
	)
	s.AddTool(tool, setThemeHandler(adapter))
}

func setThemeHandler(adapter *storage.Adapter) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, ok := stringArg(request, "theme")
		if !ok {
			return mcp.NewToolResultError("'theme' parameter is required."), nil
		}
		p, err := theme.ParsePreference(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := adapter.SavePreference(ctx, p); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save theme: %v", err)), nil
		}
		return jsonResult(map[string]string{"theme": p.String()})
	}
}
