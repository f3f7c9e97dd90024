// Package config loads user configuration from a YAML file. A missing file
// is not an error: every field has a usable zero default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable defaults for the session.
type Config struct {
	// DefaultSeed seeds the initial engine when set. 0 means "random".
	DefaultSeed int32 `yaml:"default_seed"`
	// PresetDir points at a Lua preset pack directory.
	PresetDir string `yaml:"preset_dir"`
	// Trace enables per-command consumption reporting.
	Trace bool `yaml:"trace"`
	// Plain disables the TUI and uses line-mode output.
	Plain bool `yaml:"plain"`
	// SaveDir overrides where session files are written.
	SaveDir string `yaml:"save_dir"`
}

// DefaultPath returns the standard config location, ~/.twistrand/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".twistrand", "config.yaml")
}

// Load reads the config at path. A missing file returns a zero Config and
// no error; a malformed file is an error.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
