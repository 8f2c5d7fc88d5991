// Package presets provides named bundles of simulation config overrides.
package presets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a partial parameter map applied on top of the config defaults.
type Preset map[string]any

// Catalog maps preset names to their overrides.
type Catalog map[string]Preset

// Builtin returns the compiled-in presets.
func Builtin() Catalog {
	return Catalog{
		"default": {
			"latitude":            35.0,
			"longitude":           120.0,
			"simulation_duration": 4 * 3600.0,
			"controller_type":     "hybrid",
		},
		"cloudy_day": {
			"latitude":            35.0,
			"longitude":           120.0,
			"simulation_duration": 4 * 3600.0,
			"cloud_depth":         0.95,
			"controller_type":     "diff",
		},
	}
}

// Load reads a YAML catalog file and merges it over the built-in presets;
// file entries win on name collisions.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset catalog: %w", err)
	}

	var fromFile Catalog
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("parsing preset catalog: %w", err)
	}

	catalog := Builtin()
	for name, p := range fromFile {
		catalog[name] = p
	}
	return catalog, nil
}
