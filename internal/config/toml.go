package config

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// parseTOML reads the [noid] table. Non-string values are formatted so that
// naa = 13030 works without quotes.
func parseTOML(data []byte) (section, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return section{}, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	var sec section
	table, ok := doc[Section].(map[string]any)
	if !ok {
		return sec, nil
	}
	sec.found = true

	// map order is random; report unknown keys in a stable order
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := table[k].(type) {
		case string:
			sec.add(k, v)
		default:
			sec.add(k, fmt.Sprint(v))
		}
	}
	return sec, nil
}

func writeTOML(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(struct {
		Noid Noid `toml:"noid"`
	}{cfg.Noid})
	if err != nil {
		return nil, fmt.Errorf("failed to write TOML config: %w", err)
	}
	return out, nil
}
