package generator

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/goliatone/go-inspect/pkg/render"
)

var defaultGenerator = sync.OnceValue(func() *Generator {
	return New()
})

// Default returns the process-wide generator used when For receives nil.
func Default() *Generator {
	return defaultGenerator()
}

// Inspector binds the generated behavior of T to typed values.
type Inspector[T any] struct {
	gen      *Generator
	typ      reflect.Type
	behavior render.Behavior
}

// For generates (or fetches) the behavior of T. A nil generator means
// Default().
func For[T any](g *Generator) (*Inspector[T], error) {
	if g == nil {
		g = Default()
	}
	typ := reflect.TypeFor[T]()
	behavior, err := g.Behavior(typ)
	if err != nil {
		return nil, err
	}
	return &Inspector[T]{gen: g, typ: typ, behavior: behavior}, nil
}

// MustFor is like For but panics on generation errors. It suits
// package-level variables where a broken type declaration should stop the
// program at start-up.
func MustFor[T any](g *Generator) *Inspector[T] {
	inspector, err := For[T](g)
	if err != nil {
		panic(err)
	}
	return inspector
}

// Behavior exposes the untyped behavior.
func (i *Inspector[T]) Behavior() render.Behavior {
	return i.behavior
}

// Present draws value read-only. A nil pointer draws nothing.
func (i *Inspector[T]) Present(ui render.UI, value *T) {
	if value == nil {
		return
	}
	i.behavior.Present(ui, reflect.ValueOf(value).Elem())
}

// Edit draws the editor for *value and applies the frame's input to it.
func (i *Inspector[T]) Edit(ui render.UI, value *T) {
	if value == nil {
		return
	}
	i.behavior.Edit(ui, reflect.ValueOf(value).Elem())
}

// Reset overwrites *value with the default of T.
func (i *Inspector[T]) Reset(value *T) error {
	if value == nil {
		return fmt.Errorf("%w: reset %v", ErrNilValue, i.typ)
	}
	if err := i.gen.RequireDefault(i.typ); err != nil {
		return err
	}
	i.behavior.Reset(reflect.ValueOf(value).Elem())
	return nil
}

// Default returns a fresh default value of T.
func (i *Inspector[T]) Default() (T, error) {
	var out T
	err := i.Reset(&out)
	return out, err
}

// String returns the string conversion of value.
func (i *Inspector[T]) String(value T) string {
	return i.gen.format(reflect.ValueOf(&value).Elem())
}

// View binds value to a host view. Both closures read and write *value, so
// the host must be the only writer while it runs.
func (i *Inspector[T]) View(title string, value *T) render.View {
	return render.View{
		Title: title,
		Present: func(ui render.UI) {
			i.Present(ui, value)
		},
		Edit: func(ui render.UI) {
			i.Edit(ui, value)
		},
	}
}
