// Package config loads the demo command's settings file.
package config

import (
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// Config mirrors the demo settings file. Command-line flags take precedence
// over every field.
type Config struct {
	// Host names the render host: "headless", "tui" or "web".
	Host string `yaml:"host"`
	// Addr is the web host's listen address.
	Addr string `yaml:"addr"`
	// Overlay is an overlay file or directory.
	Overlay string `yaml:"overlay"`
	// Labels switches captions to humanized field names.
	Labels bool  `yaml:"labels"`
	Theme  Theme `yaml:"theme"`
}

// Theme declares an inline theme manifest for the web host.
type Theme struct {
	Name     string                       `yaml:"name"`
	Variant  string                       `yaml:"variant"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{Host: "headless"}
}

// Load reads path over the defaults. YAML is a superset of JSON, so both
// formats are accepted.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field combinations a host cannot recover from.
func (c Config) Validate() error {
	if c.Theme.Variant != "" && c.Theme.Name == "" {
		return fmt.Errorf("theme variant %q needs a theme name", c.Theme.Variant)
	}
	if c.Theme.Variant != "" {
		if _, ok := c.Theme.Variants[c.Theme.Variant]; !ok {
			return fmt.Errorf("theme %q has no variant %q", c.Theme.Name, c.Theme.Variant)
		}
	}
	return nil
}

// ThemeSelection builds the selection passed to the web host, or nil when no
// theme is configured.
func (c Config) ThemeSelection() *theme.Selection {
	if c.Theme.Name == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:    c.Theme.Name,
		Version: "0.0.0",
		Tokens:  c.Theme.Tokens,
	}
	if len(c.Theme.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(c.Theme.Variants))
		for name, tokens := range c.Theme.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: tokens}
		}
	}
	return &theme.Selection{
		Theme:    c.Theme.Name,
		Variant:  c.Theme.Variant,
		Manifest: manifest,
	}
}
