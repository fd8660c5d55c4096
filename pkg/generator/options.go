package generator

import (
	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/widgets"
)

// Option configures a Generator.
type Option func(*config)

type config struct {
	registry      *widgets.Registry
	widgetOptions []widgets.Option
	sums          *model.SumRegistry
	labeler       func(string) string
	overrides     model.Overrides
}

// WithRegistry replaces the adapter registry. Options passed through
// WithWidgetOptions are ignored when a registry is supplied.
func WithRegistry(registry *widgets.Registry) Option {
	return func(c *config) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithWidgetOptions configures the registry the generator builds for itself.
func WithWidgetOptions(options ...widgets.Option) Option {
	return func(c *config) {
		c.widgetOptions = append(c.widgetOptions, options...)
	}
}

// WithKeyedMaps enables the keyed map and set editor.
func WithKeyedMaps() Option {
	return WithWidgetOptions(widgets.WithKeyedMaps())
}

// WithSums selects the sum registry. model.DefaultSums is used otherwise.
func WithSums(registry *model.SumRegistry) Option {
	return func(c *config) {
		if registry != nil {
			c.sums = registry
		}
	}
}

// WithLabeler derives captions of named fields without a label directive.
// The declared name is used as is by default.
func WithLabeler(labeler func(string) string) Option {
	return func(c *config) {
		c.labeler = labeler
	}
}

// WithOverrides layers external directives, such as an overlay file, on top
// of struct tags.
func WithOverrides(overrides model.Overrides) Option {
	return func(c *config) {
		c.overrides = overrides
	}
}
