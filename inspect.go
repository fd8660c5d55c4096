// Package inspect generates present/edit views for Go values from their type
// shape and runs them on a host toolkit. It re-exports the common entry
// points of the generator, overlay and host packages.
package inspect

import (
	"context"
	"errors"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-inspect/pkg/generator"
	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/overlay"
	"github.com/goliatone/go-inspect/pkg/render"
	"github.com/goliatone/go-inspect/pkg/schemaexport"
)

// Option configures the generator built by New.
type Option = generator.Option

// View aliases render.View for callers wiring their own host.
type View = render.View

// Host aliases render.Host.
type Host = render.Host

// Positional marks a tuple-like struct when embedded as a blank field.
type Positional = model.Positional

// Text is a string edited with a multi-line field.
type Text = model.Text

// New exposes the generator constructor from the top-level module.
func New(options ...Option) *generator.Generator {
	return generator.New(options...)
}

// WithSums forwards a sum registry to the generator.
func WithSums(registry *model.SumRegistry) Option {
	return generator.WithSums(registry)
}

// WithOverlay loads overlay documents from path and applies them as
// overrides. It is a convenience for callers that keep overlays on disk.
func WithOverlay(path string) (Option, error) {
	store, err := overlay.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return generator.WithOverrides(store), nil
}

// WithHumanLabels turns field names such as "FirstName" into "First Name".
func WithHumanLabels() Option {
	return generator.WithLabeler(model.DefaultLabeler)
}

// Run generates the editor for *value and drives it on host until the host
// returns or ctx is cancelled.
func Run[T any](ctx context.Context, host Host, title string, value *T, options ...Option) error {
	if host == nil {
		return errors.New("inspect: host is required")
	}
	if value == nil {
		return errors.New("inspect: value is required")
	}
	inspector, err := generator.For[T](generator.New(options...))
	if err != nil {
		return err
	}
	return host.Run(ctx, inspector.View(title, value))
}

// Schema exports the OpenAPI document describing types.
func Schema(ctx context.Context, title string, types []reflect.Type, options ...Option) (*openapi3.T, error) {
	exporter := schemaexport.New(generator.New(options...))
	return exporter.Document(ctx, title, "1.0.0", types...)
}
