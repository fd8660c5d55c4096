package model

import (
	"reflect"

	internalmodel "github.com/goliatone/go-inspect/internal/model"
)

// Describer resolves Go types into descriptors.
type Describer interface {
	Describe(t reflect.Type) (*TypeDescriptor, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*internalmodel.Options)

// WithLabeler overrides the caption derivation for named fields.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *internalmodel.Options) {
		opts.Labeler = labeler
	}
}

// WithSums selects the sum registry consulted for interface types.
func WithSums(registry *SumRegistry) BuilderOption {
	return func(opts *internalmodel.Options) {
		opts.Sums = registry
	}
}

// WithOverrides layers external directives on top of struct tags.
func WithOverrides(overrides Overrides) BuilderOption {
	return func(opts *internalmodel.Options) {
		opts.Overrides = overrides
	}
}

// WithTerminal marks types handled by adapters as whole values.
func WithTerminal(terminal func(reflect.Type) bool) BuilderOption {
	return func(opts *internalmodel.Options) {
		opts.Terminal = terminal
	}
}

// NewBuilder returns a Describer backed by the internal implementation. When
// no sum registry is supplied DefaultSums is used.
func NewBuilder(options ...BuilderOption) Describer {
	cfg := internalmodel.Options{Sums: DefaultSums}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return internalmodel.New(cfg)
}
