package config

import (
	"fmt"
	"io"
)

// Marshal renders cfg in the given format.
func Marshal(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatKDL:
		return writeKDL(cfg), nil
	case FormatTOML:
		return writeTOML(cfg)
	case FormatINI:
		return writeINI(cfg)
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
}

// Write renders cfg to w.
func Write(w io.Writer, cfg *Config, format Format) error {
	out, err := Marshal(cfg, format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
