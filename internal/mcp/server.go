// Package mcp exposes the minter as Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/standardbeagle/noid/internal/config"
	noiddebug "github.com/standardbeagle/noid/internal/debug"
	"github.com/standardbeagle/noid/internal/version"
)

// MaxBatch caps the count of a single mint call
const MaxBatch = 10000

// Server serves the noid tools
type Server struct {
	server *mcp.Server
	cfg    *config.Config
	logger zerolog.Logger
}

// NewServer builds a server whose tools default to cfg. A nil cfg means the
// built-in defaults.
func NewServer(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: noiddebug.For(noiddebug.ComponentMCP),
	}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "noid-mcp-server",
		Version: version.Version,
	}, nil)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "info",
		Description: "Describe the noid server and its tools. Pass {\"tool\": \"<name>\"} for one tool.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"tool": {
					Type:        "string",
					Description: "Tool name to describe (mint, validate, check_digit, inspect)",
				},
			},
		},
	}, s.recoverFromPanic("info", s.handleInfo))

	s.server.AddTool(&mcp.Tool{
		Name:        "mint",
		Description: "Mint one or more nice opaque identifiers from a template such as 'zeeddk' or 'bl.reedk'.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"template": {
					Type:        "string",
					Description: "prefix.mask template; defaults to the configured template",
				},
				"index": {
					Type:        "integer",
					Description: "Index to mint; negative or omitted mints at random",
				},
				"scheme": {
					Type:        "string",
					Description: "Scheme prepended to the identifier, e.g. 'ark:/'",
				},
				"naa": {
					Type:        "string",
					Description: "Name assigning authority",
				},
				"count": {
					Type:        "integer",
					Description: fmt.Sprintf("Number of identifiers, consecutive from index (max %d)", MaxBatch),
				},
			},
		},
	}, s.recoverFromPanic("mint", s.handleMint))

	s.server.AddTool(&mcp.Tool{
		Name:        "validate",
		Description: "Check the trailing check digit of an identifier.",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"noid"},
			Properties: map[string]*jsonschema.Schema{
				"noid": {Type: "string", Description: "Identifier to validate"},
			},
		},
	}, s.recoverFromPanic("validate", s.handleValidate))

	s.server.AddTool(&mcp.Tool{
		Name:        "check_digit",
		Description: "Compute the check digit for an identifier without one.",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"noid"},
			Properties: map[string]*jsonschema.Schema{
				"noid": {Type: "string", Description: "Identifier body"},
			},
		},
	}, s.recoverFromPanic("check_digit", s.handleCheckDigit))

	s.server.AddTool(&mcp.Tool{
		Name:        "inspect",
		Description: "Break a template into prefix and mask and report its capacity.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"template": {Type: "string", Description: "prefix.mask template"},
			},
		},
	}, s.recoverFromPanic("inspect", s.handleInspect))
}

type toolHandler = mcp.ToolHandler

// recoverFromPanic turns a panicking handler into an error result
func (s *Server) recoverFromPanic(operation string, handler toolHandler) toolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().
					Str("operation", operation).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				result, err = createErrorResponse(operation, fmt.Errorf("internal error: %v", r))
			}
		}()
		return handler(ctx, req)
	}
}

// Start serves over stdio until ctx is done or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().Msg("starting MCP server with stdio transport")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves a single session over t. Used for in-process clients.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}
