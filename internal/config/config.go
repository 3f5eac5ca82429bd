// Package config loads the [noid] defaults for the command line from INI,
// KDL or TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/standardbeagle/noid/internal/debug"
	"github.com/standardbeagle/noid/pkg/noid"
)

// Section is the section, node or table every format reads from.
const Section = "noid"

// Option keys, in the order they are reported
const (
	KeyTemplate = "template"
	KeyScheme   = "scheme"
	KeyNAA      = "naa"
)

// Keys lists every recognised option.
var Keys = []string{KeyTemplate, KeyScheme, KeyNAA}

// Format identifies a config file syntax.
type Format string

const (
	FormatINI  Format = "ini"
	FormatKDL  Format = "kdl"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension. Anything that is not
// .kdl or .toml is read as INI, the format of the classic noid.cfg.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kdl":
		return FormatKDL
	case ".toml":
		return FormatTOML
	default:
		return FormatINI
	}
}

// ParseFormat accepts a format name as typed on the command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatINI, FormatKDL, FormatTOML:
		return f, nil
	case "cfg":
		return FormatINI, nil
	default:
		return "", fmt.Errorf("unknown config format %q (want ini, kdl or toml)", name)
	}
}

// Noid holds the minting options.
type Noid struct {
	Template string `toml:"template"`
	Scheme   string `toml:"scheme"`
	NAA      string `toml:"naa"`
}

// Config is the loaded configuration.
type Config struct {
	Noid Noid

	Source   string // file the values came from, empty for defaults
	Warnings []string

	set map[string]bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Noid: Noid{
			Template: noid.DefaultTemplate,
			Scheme:   noid.DefaultScheme,
		},
		set: map[string]bool{},
	}
}

// IsSet reports whether the loaded file provided key.
func (c *Config) IsSet(key string) bool { return c.set[key] }

// Get returns the value for key.
func (c *Config) Get(key string) string {
	switch key {
	case KeyTemplate:
		return c.Noid.Template
	case KeyScheme:
		return c.Noid.Scheme
	case KeyNAA:
		return c.Noid.NAA
	default:
		return ""
	}
}

func (c *Config) put(key, value string) {
	switch key {
	case KeyTemplate:
		c.Noid.Template = value
	case KeyScheme:
		c.Noid.Scheme = value
	case KeyNAA:
		c.Noid.NAA = value
	default:
		return
	}
	c.set[key] = true
}

func (c *Config) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.Warnings = append(c.Warnings, msg)
	logger := debug.For(debug.ComponentConfig)
	logger.Warn().Str("source", c.Source).Msg(msg)
}

// section is the noid section of a file in any format.
type section struct {
	found  bool
	values map[string]string
	order  []string // keys as they appear in the file
}

func (s *section) add(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, dup := s.values[key]; !dup {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

// Load reads path. An empty path returns the defaults. A readable file that
// lacks the noid section or some options is not an error: the problem is
// recorded in Warnings and the defaults stay in place.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	logger := debug.For(debug.ComponentConfig)
	logger.Info().Str("path", path).Msg("using configs")
	cfg.Source = path
	if err := cfg.parse(data, FormatFor(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads config content in the given format.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	if err := cfg.parse(data, format); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parse(data []byte, format Format) error {
	var (
		sec section
		err error
	)
	switch format {
	case FormatKDL:
		sec, err = parseKDL(data)
	case FormatTOML:
		sec, err = parseTOML(data)
	default:
		sec, err = parseINI(data)
	}
	if err != nil {
		return err
	}

	c.apply(sec)
	return nil
}

func (c *Config) apply(sec section) {
	if !sec.found {
		name := c.Source
		if name == "" {
			name = "<input>"
		}
		c.warn("config file '%s' lacks '%s' section; ignoring config file", name, Section)
		return
	}

	for _, key := range Keys {
		if v, ok := sec.values[key]; ok {
			c.put(key, v)
		} else {
			c.warn("configs missing option '%s'; using default value (%s)", key, c.Get(key))
		}
	}

	for _, key := range sec.order {
		if slices.Contains(Keys, key) {
			continue
		}
		if s := suggestKey(key, Keys); s != "" {
			c.warn("unknown option '%s' in '%s' section; did you mean '%s'?", key, Section, s)
		} else {
			c.warn("unknown option '%s' in '%s' section; ignoring it", key, Section)
		}
	}
}
