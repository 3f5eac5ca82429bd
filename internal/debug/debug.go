// Package debug owns the process-wide structured logger.
//
// Everything logs through zerolog with a "component" field. By default only
// warnings reach stderr; verbose mode adds info lines and DEBUG=1 (or the
// EnableDebug build flag) adds debug lines. MCP mode silences the console so
// nothing interferes with the stdio protocol.
package debug

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Build flag for debug mode - can be overridden at build time
// go build -ldflags "-X github.com/standardbeagle/noid/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// mcpMode tracks if we're running in MCP mode (set by main)
var mcpMode atomic.Bool

// Component names used across the module
const (
	ComponentCLI    = "cli"
	ComponentMint   = "mint"
	ComponentConfig = "config"
	ComponentMCP    = "mcp"
)

// Config controls the global logger
type Config struct {
	Output  io.Writer // defaults to os.Stderr
	Verbose bool      // info level instead of warn
	JSON    bool      // raw JSON lines instead of console formatting
}

var (
	mu      sync.RWMutex
	current Config
	global  zerolog.Logger
)

func init() {
	Init(Config{})
}

// Init (re)configures the global logger.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
	global = build(cfg)
}

func build(cfg Config) zerolog.Logger {
	if mcpMode.Load() {
		return zerolog.Nop()
	}

	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	if !cfg.JSON {
		w = zerolog.ConsoleWriter{
			Out:          w,
			NoColor:      true,
			PartsExclude: []string{zerolog.TimestampFieldName},
		}
	}

	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.InfoLevel
	}
	if IsDebugEnabled() {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetMCPMode enables MCP mode which suppresses all console logging
func SetMCPMode(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	mcpMode.Store(enabled)
	global = build(current)
}

// InMCPMode reports whether console logging is suppressed for MCP.
func InMCPMode() bool {
	return mcpMode.Load()
}

// IsDebugEnabled returns true if debug mode is enabled and we're not in MCP mode
func IsDebugEnabled() bool {
	if mcpMode.Load() {
		return false
	}

	// Check build flag first
	if EnableDebug == "true" {
		return true
	}

	// Allow runtime override via environment variable
	if os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true" {
		return true
	}

	return false
}

// L returns the global logger.
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// For returns the global logger tagged with a component name.
func For(component string) zerolog.Logger {
	return L().With().Str("component", component).Logger()
}
