// Package config provides configuration file parsing for kernelprune.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultKeep is the number of kernel revisions retained per series when
// neither the config file nor the --keep flag says otherwise.
const DefaultKeep = 3

// Config is loaded from {config dir}/config.yaml.
type Config struct {
	// Keep overrides the default retention count. Zero means unset.
	Keep int `yaml:"keep"`

	// Holds lists kernel packages that must never be purged. An entry may
	// be a full package name ("linux-image-3.13.0-57-generic"), a series
	// ("3.13.0") or a series-revision pair ("3.13.0-57").
	Holds []string `yaml:"holds"`
}

// Dir returns the kernelprune config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/kernelprune if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "kernelprune"), nil
}

// Load reads and parses {dir}/config.yaml. A missing file is not an error:
// the defaults are returned. A file that exists but does not parse is an
// error so a typo in a hold entry cannot silently widen a purge.
func Load(dir string) (*Config, error) {
	cfg := &Config{Keep: DefaultKeep}

	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}

	if cfg.Keep == 0 {
		cfg.Keep = DefaultKeep
	}
	if cfg.Keep < 0 {
		return nil, fmt.Errorf("%s: keep must be positive, got %d", path, cfg.Keep)
	}

	return cfg, nil
}

// HoldSet returns the hold entries as a set for O(1) lookup.
func (c *Config) HoldSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Holds))
	for _, h := range c.Holds {
		set[h] = struct{}{}
	}
	return set
}
