package render

import "reflect"

// Behavior is the generated present/edit pair bound to one Go type. The
// generator produces one Behavior per type and every caller shares it.
//
// Present draws v read-only; v need not be addressable. Edit draws the
// editor for v and writes the user's changes back in place, so v must be
// settable. Reset overwrites a settable v with the type's default value.
// None of the methods retain v after returning.
type Behavior interface {
	Present(ui UI, v reflect.Value)
	Edit(ui UI, v reflect.Value)
	Reset(v reflect.Value)
}

// Funcs adapts plain functions into a Behavior. A nil ResetFunc zeroes the
// value; nil PresentFunc/EditFunc draw nothing.
type Funcs struct {
	PresentFunc func(ui UI, v reflect.Value)
	EditFunc    func(ui UI, v reflect.Value)
	ResetFunc   func(v reflect.Value)
}

// Present calls PresentFunc.
func (f Funcs) Present(ui UI, v reflect.Value) {
	if f.PresentFunc != nil {
		f.PresentFunc(ui, v)
	}
}

// Edit calls EditFunc.
func (f Funcs) Edit(ui UI, v reflect.Value) {
	if f.EditFunc != nil {
		f.EditFunc(ui, v)
	}
}

// Reset calls ResetFunc or zeroes v.
func (f Funcs) Reset(v reflect.Value) {
	if f.ResetFunc != nil {
		f.ResetFunc(v)
		return
	}
	v.SetZero()
}

// Noop draws nothing and only supports Reset. The map and set stubs use it.
var Noop Behavior = noop{}

type noop struct{}

func (noop) Present(UI, reflect.Value) {}

func (noop) Edit(UI, reflect.Value) {}

func (noop) Reset(v reflect.Value) {
	v.SetZero()
}
