package widgets

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-inspect/pkg/render"
)

// Texts drawn by container adapters.
const (
	NoneText       = "None"
	EmptyText      = "Empty"
	AddText        = "Add"
	RemoveLastText = "Remove last"
	RemoveText     = "Remove"
)

func elementBehavior(t reflect.Type, res Resolver, needsDefault bool) (render.Behavior, error) {
	if res == nil {
		return nil, fmt.Errorf("widgets: %v: resolver is required", t)
	}
	inner, err := res.Resolve(t)
	if err != nil {
		return nil, err
	}
	if needsDefault {
		if err := res.RequireDefault(t); err != nil {
			return nil, err
		}
	}
	return inner, nil
}

// optionalAdapter maps *T to a presence toggle. Turning it on synthesizes the
// default of T; turning it off discards the pointee.
func optionalAdapter(t reflect.Type, res Resolver) (render.Behavior, error) {
	inner, err := elementBehavior(t.Elem(), res, true)
	if err != nil {
		return nil, err
	}
	return render.Funcs{
		PresentFunc: func(ui render.UI, v reflect.Value) {
			if v.IsNil() {
				ui.Label(NoneText)
				return
			}
			inner.Present(ui, v.Elem())
		},
		EditFunc: func(ui render.UI, v reflect.Value) {
			ui.Horizontal(func(ui render.UI) {
				present := !v.IsNil()
				checked := ui.Checkbox(present, "")
				switch {
				case checked && !present:
					ptr := reflect.New(t.Elem())
					inner.Reset(ptr.Elem())
					v.Set(ptr)
				case !checked && present:
					v.SetZero()
				}
				if !v.IsNil() {
					inner.Edit(ui, v.Elem())
				}
			})
		},
	}, nil
}

// listAdapter maps []T to an ordered list that grows at the end with default
// elements and shrinks from the end.
func listAdapter(t reflect.Type, res Resolver) (render.Behavior, error) {
	elem, err := elementBehavior(t.Elem(), res, true)
	if err != nil {
		return nil, err
	}
	return render.Funcs{
		PresentFunc: func(ui render.UI, v reflect.Value) {
			ui.Vertical(func(ui render.UI) {
				if v.Len() == 0 {
					ui.Label(EmptyText)
					return
				}
				for i := 0; i < v.Len(); i++ {
					elem.Present(ui, v.Index(i))
				}
			})
		},
		EditFunc: func(ui render.UI, v reflect.Value) {
			ui.Group(func(ui render.UI) {
				ui.Vertical(func(ui render.UI) {
					ui.Horizontal(func(ui render.UI) {
						if ui.Button(AddText, true) {
							AppendDefault(v, elem)
						}
						if ui.Button(RemoveLastText, v.Len() > 0) {
							RemoveLast(v)
						}
					})
					ui.Separator()
					ui.Vertical(func(ui render.UI) {
						for i := 0; i < v.Len(); i++ {
							elem.Edit(ui, v.Index(i))
						}
					})
				})
			})
		},
	}, nil
}

// AppendDefault grows the settable slice v by one default element.
func AppendDefault(v reflect.Value, elem render.Behavior) {
	item := reflect.New(v.Type().Elem()).Elem()
	elem.Reset(item)
	v.Set(reflect.Append(v, item))
}

// RemoveLast shrinks the settable slice v by one element. It is a no-op on an
// empty slice.
func RemoveLast(v reflect.Value) {
	n := v.Len()
	if n == 0 {
		return
	}
	v.Index(n - 1).SetZero()
	v.Set(v.Slice(0, n-1))
}

// tupleAdapter lays the elements of a fixed-size array side by side.
func tupleAdapter(t reflect.Type, res Resolver) (render.Behavior, error) {
	elem, err := elementBehavior(t.Elem(), res, false)
	if err != nil {
		return nil, err
	}
	return render.Funcs{
		PresentFunc: func(ui render.UI, v reflect.Value) {
			if v.Len() == 0 {
				return
			}
			ui.Horizontal(func(ui render.UI) {
				for i := 0; i < v.Len(); i++ {
					elem.Present(ui, v.Index(i))
				}
			})
		},
		EditFunc: func(ui render.UI, v reflect.Value) {
			if v.Len() == 0 {
				return
			}
			ui.Horizontal(func(ui render.UI) {
				for i := 0; i < v.Len(); i++ {
					elem.Edit(ui, v.Index(i))
				}
			})
		},
		ResetFunc: func(v reflect.Value) {
			for i := 0; i < v.Len(); i++ {
				elem.Reset(v.Index(i))
			}
		},
	}, nil
}
