// Package config loads site presets for the school-letters CLI.
//
// Schools built on the shared CMS template expose the same board markup
// under different hosts and board IDs, so a single TOML file can hold one
// entry per school: its label, listing URL, and (when the board ID differs
// from the default) the detail-view URL template.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Site is one school listing preset.
type Site struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
	// DetailTemplate overrides the default detail-view URL template for
	// script-triggered links; it must contain one %s verb for the posting ID.
	DetailTemplate string `toml:"detail_template"`
}

// Config is the root of the presets file.
type Config struct {
	// LogFile, when set, directs the diagnostic log to a file instead of stderr.
	LogFile string `toml:"log_file"`
	Sites   []Site `toml:"sites"`
}

// Load reads and decodes the TOML presets file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	for i, site := range cfg.Sites {
		if site.URL == "" {
			return nil, fmt.Errorf("config %s: sites[%d] (%q) has no url", path, i, site.Name)
		}
	}
	return &cfg, nil
}

// FindSite returns the preset whose name matches, if any.
func (c *Config) FindSite(name string) (*Site, bool) {
	for i := range c.Sites {
		if c.Sites[i].Name == name {
			return &c.Sites[i], true
		}
	}
	return nil, false
}
