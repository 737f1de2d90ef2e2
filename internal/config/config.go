// Package config loads the small set of process-wide settings the ambient
// stack reads at startup: worker-pool sizing and debug logging, plus a
// yaml document-defaults file for the CLI's open/apply-transform surface.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults are the settings a graphia-core invocation starts from, before
// any CLI flags override them.
type Defaults struct {
	LayoutThreads int    `yaml:"layout_threads"`
	DebugLayout   bool   `yaml:"debug_layout"`
	DefaultLayout string `yaml:"default_layout"`
}

// Load reads Defaults from a YAML file at path. A missing file is not an
// error: it returns the zero Defaults, letting env vars and flags take
// over entirely.
func Load(path string) (Defaults, error) {
	var d Defaults
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, err
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, err
	}
	return d, nil
}
