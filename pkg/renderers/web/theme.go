package web

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// themeConfig flattens a theme selection into the values the page needs:
// manifest tokens overlaid with the selected variant's tokens, each exposed
// as a "--token" CSS custom property.
func themeConfig(selection *theme.Selection) (*theme.RendererConfig, error) {
	if selection == nil {
		return nil, nil
	}
	if selection.Manifest == nil {
		return nil, fmt.Errorf("web: theme %q has no manifest", selection.Theme)
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if selection.Variant != "" {
		if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				tokens[key] = value
			}
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		cssVars[name] = value
	}

	name := selection.Theme
	if name == "" {
		name = selection.Manifest.Name
	}
	return &theme.RendererConfig{
		Theme:   name,
		Variant: selection.Variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}, nil
}

// cssVarList returns the custom properties sorted by name for the template.
func cssVarList(cfg *theme.RendererConfig) []map[string]string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return nil
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]map[string]string, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]string{"name": name, "value": cfg.CSSVars[name]})
	}
	return out
}
