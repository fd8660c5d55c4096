package generator

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/render"
	"github.com/goliatone/go-inspect/pkg/widgets"
)

// Generator synthesizes one render.Behavior per Go type and caches it for
// the life of the generator. Behaviors of nested types are shared by
// reference between every parent that uses them.
//
// A Generator is safe for concurrent use. The behaviors it returns are not
// tied to any goroutine, but each value must only be edited by one caller at
// a time.
type Generator struct {
	registry  *widgets.Registry
	describer model.Describer

	mu       sync.Mutex
	cache    map[reflect.Type]*entry
	defaults map[reflect.Type]error
}

type entry struct {
	behavior render.Behavior
	err      error
	building bool
}

// New constructs a generator. Without options it uses the built-in adapters,
// model.DefaultSums and declared field names as captions.
func New(options ...Option) *Generator {
	cfg := config{sums: model.DefaultSums}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = widgets.NewRegistry(cfg.widgetOptions...)
	}

	return &Generator{
		registry: cfg.registry,
		describer: model.NewBuilder(
			model.WithSums(cfg.sums),
			model.WithLabeler(cfg.labeler),
			model.WithOverrides(cfg.overrides),
			model.WithTerminal(cfg.registry.Handles),
		),
		cache:    make(map[reflect.Type]*entry),
		defaults: make(map[reflect.Type]error),
	}
}

// Behavior returns the generated behavior for t. Generation errors are
// cached: asking again for a broken type returns the same error.
func (g *Generator) Behavior(t reflect.Type) (render.Behavior, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrUnsupportedType)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	behavior, err := g.resolve(t)
	if err != nil {
		return nil, fmt.Errorf("generator: %v: %w", t, err)
	}
	return behavior, nil
}

// RequireDefault reports why values of t cannot be default-constructed, or
// nil when they can.
func (g *Generator) RequireDefault(t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrUnsupportedType)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireDefault(t); err != nil {
		return fmt.Errorf("generator: %v: %w", t, err)
	}
	return nil
}

// Describe returns the structural descriptor of t.
func (g *Generator) Describe(t reflect.Type) (*model.TypeDescriptor, error) {
	return g.describer.Describe(t)
}

// resolve must be called with g.mu held.
func (g *Generator) resolve(t reflect.Type) (render.Behavior, error) {
	if cached, ok := g.cache[t]; ok {
		if cached.building {
			return nil, fmt.Errorf("%w: %v refers to itself", ErrRecursiveType, t)
		}
		return cached.behavior, cached.err
	}

	e := &entry{building: true}
	g.cache[t] = e
	e.behavior, e.err = g.build(t)
	e.building = false
	if e.err != nil {
		e.behavior = nil
	}
	return e.behavior, e.err
}

func (g *Generator) build(t reflect.Type) (render.Behavior, error) {
	if _, factory, ok := g.registry.Resolve(t); ok {
		return factory(t, resolver{g: g})
	}

	desc, err := g.describer.Describe(t)
	if err != nil {
		return nil, err
	}
	switch desc.Kind {
	case model.KindProduct:
		return g.buildProduct(desc)
	case model.KindSum:
		return g.buildSum(desc)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
}

// requireDefault must be called with g.mu held.
func (g *Generator) requireDefault(t reflect.Type) error {
	return g.defaultable(t, make(map[reflect.Type]bool))
}

func (g *Generator) defaultable(t reflect.Type, visiting map[reflect.Type]bool) error {
	if err, ok := g.defaults[t]; ok {
		return err
	}
	// Cycles never generate, so the recursion error surfaces elsewhere.
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	err := g.checkDefault(t, visiting)
	g.defaults[t] = err
	return err
}

func (g *Generator) checkDefault(t reflect.Type, visiting map[reflect.Type]bool) error {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		return nil
	case reflect.Array:
		return g.defaultable(t.Elem(), visiting)
	}
	if g.registry.Handles(t) {
		return nil
	}

	desc, err := g.describer.Describe(t)
	if err != nil {
		return err
	}
	switch desc.Kind {
	case model.KindProduct:
		return g.fieldsDefaultable(desc.VisibleFields(), visiting)
	case model.KindSum:
		idx := desc.DefaultVariant()
		if idx < 0 {
			return fmt.Errorf("%w: every variant of %v is skipped", ErrNoDefault, t)
		}
		variant := desc.Variants[idx]
		if err := g.fieldsDefaultable(variant.VisibleFields(), visiting); err != nil {
			return fmt.Errorf("variant %s: %w", variant.Name, err)
		}
	}
	return nil
}

func (g *Generator) fieldsDefaultable(fields []model.FieldDescriptor, visiting map[reflect.Type]bool) error {
	for _, field := range fields {
		if err := g.defaultable(field.Type, visiting); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// resolver hands the generator to adapter factories while g.mu is already
// held by the outer Behavior call.
type resolver struct {
	g *Generator
}

func (r resolver) Resolve(t reflect.Type) (render.Behavior, error) {
	return r.g.resolve(t)
}

func (r resolver) RequireDefault(t reflect.Type) error {
	return r.g.requireDefault(t)
}

var _ widgets.Resolver = resolver{}
