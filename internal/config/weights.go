package config

import (
	"fmt"
	"strings"

	"skillmatch/internal/domain/matching"

	"github.com/spf13/viper"
)

// LoadWeights reads per-strategy weight vectors from a YAML, JSON or TOML
// file shaped as
//
//	strategies:
//	  rule_based: {coverage: 0.55, experience: 0.2, location: 0.1, salary: 0.15}
//
// Strategies absent from the file keep their built-in weights. An empty path
// returns the built-in table.
func LoadWeights(path string) (matching.WeightTable, error) {
	defaults := matching.DefaultWeights()
	path = strings.TrimSpace(path)
	if path == "" {
		return defaults, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read weights file %s: %w", path, err)
	}

	var raw map[string]map[string]float64
	if err := v.UnmarshalKey("strategies", &raw); err != nil {
		return nil, fmt.Errorf("decode weights file %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("weights file %s: no strategies defined", path)
	}

	over := make(matching.WeightTable, len(raw))
	for name, vec := range raw {
		st, err := matching.ParseStrategy(name)
		if err != nil {
			return nil, fmt.Errorf("weights file %s: %w", path, err)
		}
		w := make(matching.Weights, len(vec))
		for crit, val := range vec {
			c, err := matching.ParseCriterion(crit)
			if err != nil {
				return nil, fmt.Errorf("weights file %s: strategy %s: %w", path, name, err)
			}
			w[c] = val
		}
		over[st] = w
	}

	table, err := defaults.Override(over)
	if err != nil {
		return nil, fmt.Errorf("weights file %s: %w", path, err)
	}
	return table, nil
}
