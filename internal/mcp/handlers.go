package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/noid/internal/template"
	"github.com/standardbeagle/noid/internal/version"
	"github.com/standardbeagle/noid/pkg/noid"
)

// MintParams are the arguments of the mint tool
type MintParams struct {
	Template string  `json:"template,omitempty"`
	Index    *int64  `json:"index,omitempty"`
	Scheme   *string `json:"scheme,omitempty"`
	NAA      *string `json:"naa,omitempty"`
	Count    int     `json:"count,omitempty"`
}

// MintResponse lists minted identifiers in index order
type MintResponse struct {
	Template string   `json:"template"`
	Index    int64    `json:"index"`
	Count    int      `json:"count"`
	IDs      []string `json:"ids"`
}

// NoidParams are the arguments of validate and check_digit
type NoidParams struct {
	Noid string `json:"noid"`
}

// ValidateResponse is the result of validate
type ValidateResponse struct {
	Noid  string `json:"noid"`
	Valid bool   `json:"valid"`
}

// CheckDigitResponse is the result of check_digit
type CheckDigitResponse struct {
	Noid       string `json:"noid"`
	CheckDigit string `json:"check_digit"`
	Full       string `json:"full"`
}

// InspectParams are the arguments of inspect
type InspectParams struct {
	Template string `json:"template,omitempty"`
}

// InfoParams are the arguments of info
type InfoParams struct {
	Tool string `json:"tool,omitempty"`
}

// unmarshalParams decodes tool arguments, treating a missing body as {}
func unmarshalParams(req *mcp.CallToolRequest, v any) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

func (s *Server) handleMint(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p MintParams
	if err := unmarshalParams(req, &p); err != nil {
		return createErrorResponse("mint", err)
	}

	tmpl := p.Template
	if tmpl == "" {
		tmpl = s.cfg.Noid.Template
	}
	scheme := s.cfg.Noid.Scheme
	if p.Scheme != nil {
		scheme = *p.Scheme
	}
	naa := s.cfg.Noid.NAA
	if p.NAA != nil {
		naa = *p.NAA
	}
	index := int64(-1)
	if p.Index != nil {
		index = *p.Index
	}
	count := p.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > MaxBatch {
		return createErrorResponse("mint", fmt.Errorf("count must be between 1 and %d, got %d", MaxBatch, count))
	}

	minter, err := noid.NewMinter(tmpl, noid.WithScheme(scheme), noid.WithNAA(naa), noid.WithLogger(s.logger))
	if err != nil {
		return createErrorResponse("mint", err)
	}

	s.logger.Info().
		Str("template", tmpl).
		Int64("n", index).
		Str("scheme", scheme).
		Str("naa", naa).
		Int("count", count).
		Msg("generating noid")

	ids, err := minter.MintRange(ctx, index, count)
	if err != nil {
		return createErrorResponse("mint", err)
	}

	return createJSONResponse(MintResponse{
		Template: tmpl,
		Index:    index,
		Count:    len(ids),
		IDs:      ids,
	})
}

func (s *Server) handleValidate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p NoidParams
	if err := unmarshalParams(req, &p); err != nil {
		return createErrorResponse("validate", err)
	}
	if p.Noid == "" {
		return createErrorResponse("validate", fmt.Errorf("missing noid to validate"))
	}

	s.logger.Info().Msgf("validating '%s'...", p.Noid)
	return createJSONResponse(ValidateResponse{
		Noid:  p.Noid,
		Valid: noid.Validate(p.Noid),
	})
}

func (s *Server) handleCheckDigit(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p NoidParams
	if err := unmarshalParams(req, &p); err != nil {
		return createErrorResponse("check_digit", err)
	}
	if p.Noid == "" {
		return createErrorResponse("check_digit", fmt.Errorf("missing noid to compute a check digit for"))
	}

	s.logger.Info().Msgf("computing check digit for '%s'...", p.Noid)
	cd := noid.CheckDigit(p.Noid)
	return createJSONResponse(CheckDigitResponse{
		Noid:       p.Noid,
		CheckDigit: cd,
		Full:       p.Noid + cd,
	})
}

func (s *Server) handleInspect(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p InspectParams
	if err := unmarshalParams(req, &p); err != nil {
		return createErrorResponse("inspect", err)
	}

	tmpl := p.Template
	if tmpl == "" {
		tmpl = s.cfg.Noid.Template
	}
	t, err := template.Parse(tmpl)
	if err != nil {
		return createErrorResponse("inspect", err)
	}
	return createJSONResponse(t.Describe())
}

var toolHelp = map[string]map[string]any{
	"mint": {
		"description": "Mint identifiers from a template",
		"parameters": map[string]string{
			"template": "prefix.mask, e.g. 'bl.zeeddk' (default from config)",
			"index":    "index to mint; negative or omitted mints at random",
			"scheme":   "scheme, e.g. 'ark:/'",
			"naa":      "name assigning authority",
			"count":    "number of consecutive identifiers",
		},
		"example": map[string]any{"template": "zeeddk", "index": 42, "naa": "13030"},
	},
	"validate": {
		"description": "Check the trailing check digit of an identifier",
		"parameters":  map[string]string{"noid": "identifier to check"},
		"example":     map[string]any{"noid": "ark:/13030/tf5p30086k"},
	},
	"check_digit": {
		"description": "Compute the check digit for an identifier body",
		"parameters":  map[string]string{"noid": "identifier without its check digit"},
		"example":     map[string]any{"noid": "1H"},
	},
	"inspect": {
		"description": "Describe a template: prefix, mask, generator, width and capacity",
		"parameters":  map[string]string{"template": "prefix.mask"},
		"example":     map[string]any{"template": "bl.reedk"},
	},
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p InfoParams
	if err := unmarshalParams(req, &p); err != nil {
		return createErrorResponse("info", err)
	}

	tool := strings.ToLower(strings.TrimSpace(p.Tool))
	if tool == "" || tool == "version" {
		return createJSONResponse(map[string]any{
			"server_name":    "noid-mcp-server",
			"server_version": version.FullInfo(),
			"go_version":     runtime.Version(),
			"platform":       runtime.GOOS + "/" + runtime.GOARCH,
			"defaults": map[string]string{
				"template": s.cfg.Noid.Template,
				"scheme":   s.cfg.Noid.Scheme,
				"naa":      s.cfg.Noid.NAA,
			},
			"tools": []string{"mint", "validate", "check_digit", "inspect", "info"},
		})
	}

	help, ok := toolHelp[tool]
	if !ok {
		return createErrorResponse("info", fmt.Errorf("unknown tool %q", p.Tool))
	}
	out := map[string]any{"name": tool}
	for k, v := range help {
		out[k] = v
	}
	return createJSONResponse(out)
}
