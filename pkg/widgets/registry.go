package widgets

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-inspect/pkg/render"
)

// Built-in adapter identifiers exposed by the registry.
const (
	WidgetCheckbox    = "checkbox"
	WidgetText        = "text"
	WidgetMultiline   = "multiline"
	WidgetStepper     = "stepper"
	WidgetNumericText = "numeric-text"
	WidgetBigInt      = "big-int"
	WidgetBigFloat    = "big-float"
	WidgetBigRat      = "big-rat"
	WidgetDuration    = "duration"
	WidgetTime        = "time"
	WidgetOptional    = "optional"
	WidgetList        = "list"
	WidgetTuple       = "tuple"
	WidgetMap         = "map"
	WidgetSet         = "set"
)

// Matcher decides whether an adapter should handle the supplied type.
type Matcher func(t reflect.Type) bool

// Resolver gives container adapters access to the behaviors of their element
// types. The generator implements it.
type Resolver interface {
	// Resolve returns the shared behavior of t, generating it on first use.
	Resolve(t reflect.Type) (render.Behavior, error)
	// RequireDefault reports why t cannot be default-synthesized, or nil.
	RequireDefault(t reflect.Type) error
}

// Factory builds the behavior for a matched type. It runs once per type at
// generation time.
type Factory func(t reflect.Type, res Resolver) (render.Behavior, error)

// Option configures a Registry.
type Option func(*Registry)

// WithKeyedMaps replaces the map and set stubs with a keyed editor: one row
// per key (editable key text, value editor, remove button) plus an add
// button inserting the zero key.
func WithKeyedMaps() Option {
	return func(r *Registry) {
		r.keyedMaps = true
	}
}

type rule struct {
	name     string
	priority int
	match    Matcher
	build    Factory
	order    int
}

// Registry selects adapters for terminal and container types based on
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves an adapter.
type Registry struct {
	mu        sync.RWMutex
	rules     []rule
	keyedMaps bool
}

// NewRegistry constructs a registry with the built-in adapters registered.
func NewRegistry(options ...Option) *Registry {
	reg := &Registry{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	reg.registerBuiltins()
	return reg
}

// Register adds an adapter with the provided name and priority. Higher
// priority values take precedence. Callers should avoid duplicate names; the
// latest registration wins ties only through priority.
func (r *Registry) Register(name string, priority int, matcher Matcher, factory Factory) {
	if r == nil || matcher == nil || factory == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		build:    factory,
		order:    len(r.rules),
	})
}

// Resolve returns the adapter name and factory handling t.
func (r *Registry) Resolve(t reflect.Type) (string, Factory, bool) {
	if r == nil || t == nil {
		return "", nil, false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", nil, false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(t) {
			return entry.name, entry.build, true
		}
	}
	return "", nil, false
}

// Handles reports whether some adapter claims t.
func (r *Registry) Handles(t reflect.Type) bool {
	_, _, ok := r.Resolve(t)
	return ok
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetBigInt, 100, typeIs(bigIntType), bigIntAdapter)
	r.Register(WidgetBigFloat, 100, typeIs(bigFloatType), bigFloatAdapter)
	r.Register(WidgetBigRat, 100, typeIs(bigRatType), bigRatAdapter)
	r.Register(WidgetDuration, 100, typeIs(durationType), durationAdapter)
	r.Register(WidgetTime, 100, typeIs(timeType), timeAdapter)

	r.Register(WidgetCheckbox, 90, kindIn(reflect.Bool), checkboxAdapter)
	r.Register(WidgetMultiline, 85, typeIs(multilineType), multilineAdapter)
	r.Register(WidgetText, 80, kindIn(reflect.String), textAdapter)
	r.Register(WidgetStepper, 70, kindIn(
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Float32, reflect.Float64,
	), stepperAdapter)
	r.Register(WidgetNumericText, 60, kindIn(
		reflect.Int, reflect.Int64,
		reflect.Uint, reflect.Uint64, reflect.Uintptr,
	), numericTextAdapter)

	r.Register(WidgetOptional, 50, kindIn(reflect.Pointer), optionalAdapter)
	r.Register(WidgetList, 50, kindIn(reflect.Slice), listAdapter)
	r.Register(WidgetTuple, 50, kindIn(reflect.Array), tupleAdapter)

	keyed := r.keyedMaps
	r.Register(WidgetSet, 45, isSet, func(t reflect.Type, res Resolver) (render.Behavior, error) {
		if !keyed {
			return render.Noop, nil
		}
		return keyedAdapter(t, res, true)
	})
	r.Register(WidgetMap, 40, kindIn(reflect.Map), func(t reflect.Type, res Resolver) (render.Behavior, error) {
		if !keyed {
			return render.Noop, nil
		}
		return keyedAdapter(t, res, false)
	})
}

func typeIs(target reflect.Type) Matcher {
	return func(t reflect.Type) bool {
		return t == target
	}
}

func kindIn(kinds ...reflect.Kind) Matcher {
	return func(t reflect.Type) bool {
		for _, kind := range kinds {
			if t.Kind() == kind {
				return true
			}
		}
		return false
	}
}

func isSet(t reflect.Type) bool {
	if t.Kind() != reflect.Map {
		return false
	}
	elem := t.Elem()
	return elem.Kind() == reflect.Struct && elem.NumField() == 0
}
