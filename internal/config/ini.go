package config

import (
	"bytes"
	"fmt"

	"gopkg.in/ini.v1"
)

// parseINI reads the [noid] section of a noid.cfg style file. Section and
// key names are case-insensitive.
func parseINI(data []byte) (section, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, data)
	if err != nil {
		return section{}, fmt.Errorf("failed to parse INI config: %w", err)
	}

	var sec section
	if !f.HasSection(Section) {
		return sec, nil
	}
	sec.found = true
	for _, k := range f.Section(Section).Keys() {
		sec.add(k.Name(), k.String())
	}
	return sec, nil
}

func writeINI(cfg *Config) ([]byte, error) {
	f := ini.Empty()
	s, err := f.NewSection(Section)
	if err != nil {
		return nil, err
	}
	for _, key := range Keys {
		if _, err := s.NewKey(key, cfg.Get(key)); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write INI config: %w", err)
	}
	return buf.Bytes(), nil
}
