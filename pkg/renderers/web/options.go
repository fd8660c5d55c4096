package web

import (
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	rendertemplate "github.com/goliatone/go-inspect/pkg/render/template"
)

// DefaultAddr is the listen address used when WithAddr is not supplied.
const DefaultAddr = "127.0.0.1:8080"

// Option configures a Host.
type Option func(*config)

type config struct {
	addr         string
	templateFS   fs.FS
	templates    rendertemplate.TemplateRenderer
	stylesheet   *string
	policy       *bluemonday.Policy
	selection    *theme.Selection
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// WithAddr sets the listen address used by Run.
func WithAddr(addr string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			cfg.addr = trimmed
		}
	}
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// PageTemplate.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithStylesheet replaces the embedded stylesheet. An empty string drops it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// WithSanitizer replaces the policy applied to displayed text.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithTheme styles the page from a resolved theme selection.
func WithTheme(selection *theme.Selection) Option {
	return func(cfg *config) {
		cfg.selection = selection
	}
}

// WithThemeSelector resolves the named theme and variant when the host is
// constructed.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = strings.TrimSpace(name)
		cfg.themeVariant = strings.TrimSpace(variant)
	}
}
