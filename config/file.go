package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// yamlKeys names the config.yaml keys LoadYAML recognizes, matching
// spec.md §6's option table.
const (
	keyDesiredEndingTileCount = "desired_ending_tile_count"
	keyAdjacencyBufferFeet    = "adjacency_buffer_feet"
	keyInfillK                = "infill_k"
	keyMinSalesForOLS         = "min_sales_for_ols"
	keyOutputDirectory        = "output_directory"
)

// LoadYAML reads a YAML config file at path and returns a Config with
// defaults for any key the file omits. Unknown keys are ignored.
func LoadYAML(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("config: loading %s: %w", path, err)
	}

	opts := []Option{
		WithDesiredEndingTileCount(k.Int(keyDesiredEndingTileCount)),
		WithAdjacencyBufferFeet(k.Float64(keyAdjacencyBufferFeet)),
		WithInfillK(k.Int(keyInfillK)),
		WithOutputDirectory(k.String(keyOutputDirectory)),
	}
	// 0 is a meaningful min_sales_for_ols, so only a key that is
	// actually present may override the default.
	if k.Exists(keyMinSalesForOLS) {
		opts = append(opts, WithMinSalesForOLS(k.Int(keyMinSalesForOLS)))
	}

	return New(opts...), nil
}
