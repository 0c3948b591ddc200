package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/unowned-ai/moodlog/pkg/journal"
)

// stringArg returns the named argument when it is present and a string.
func stringArg(request mcp.CallToolRequest, name string) (string, bool) {
	s, ok := request.Params.Arguments[name].(string)
	return s, ok
}

// optionalString returns nil when the argument is absent or not a string.
func optionalString(request mcp.CallToolRequest, name string) *string {
	if s, ok := stringArg(request, name); ok {
		return &s
	}
	return nil
}

// optionalMood parses the named argument when present. An absent or empty
// argument yields nil.
func optionalMood(request mcp.CallToolRequest, name string) (*journal.Mood, error) {
	s, ok := stringArg(request, name)
	if !ok || s == "" {
		return nil, nil
	}
	m, err := journal.ParseMood(s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// jsonResult serializes v as the tool's text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
