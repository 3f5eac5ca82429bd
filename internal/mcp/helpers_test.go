package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// callTool invokes a handler in-process, bypassing the transport
func callTool(t *testing.T, s *Server, tool string, params map[string]any) *mcp.CallToolResult {
	t.Helper()

	args, err := json.Marshal(params)
	require.NoError(t, err)

	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      tool,
			Arguments: args,
		},
	}

	handlers := map[string]toolHandler{
		"mint":        s.handleMint,
		"validate":    s.handleValidate,
		"check_digit": s.handleCheckDigit,
		"inspect":     s.handleInspect,
		"info":        s.handleInfo,
	}
	h, ok := handlers[tool]
	require.True(t, ok, "unknown tool %s", tool)

	result, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// decodeResult unmarshals the first text content of result into v
func decodeResult(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	require.NoError(t, json.Unmarshal([]byte(text.Text), v), text.Text)
}
