package generator

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/render"
)

// boundField pairs a visible field with the behavior of its type. Labels and
// skips are resolved once, at generation time.
type boundField struct {
	label    string
	index    int
	behavior render.Behavior
}

func (g *Generator) bindFields(fields []model.FieldDescriptor) ([]boundField, error) {
	out := make([]boundField, 0, len(fields))
	for _, field := range fields {
		if field.Skip {
			continue
		}
		behavior, err := g.resolve(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		out = append(out, boundField{
			label:    field.Label,
			index:    field.Index,
			behavior: behavior,
		})
	}
	return out, nil
}

type productBehavior struct {
	fields []boundField
}

func (g *Generator) buildProduct(desc *model.TypeDescriptor) (render.Behavior, error) {
	fields, err := g.bindFields(desc.Fields)
	if err != nil {
		return nil, err
	}
	return &productBehavior{fields: fields}, nil
}

func (p *productBehavior) Present(ui render.UI, v reflect.Value) {
	if len(p.fields) == 0 {
		return
	}
	ui.Vertical(func(ui render.UI) {
		presentRows(ui, p.fields, v)
	})
}

func (p *productBehavior) Edit(ui render.UI, v reflect.Value) {
	if len(p.fields) == 0 {
		return
	}
	ui.Group(func(ui render.UI) {
		ui.Vertical(func(ui render.UI) {
			editRows(ui, p.fields, v)
		})
	})
}

// Reset zeroes skipped and unexported fields and resets the rest to their
// own defaults.
func (p *productBehavior) Reset(v reflect.Value) {
	resetFields(p.fields, v)
}

func presentRows(ui render.UI, fields []boundField, v reflect.Value) {
	for _, field := range fields {
		ui.Horizontal(func(ui render.UI) {
			ui.Label(field.label)
			field.behavior.Present(ui, v.Field(field.index))
		})
	}
}

func editRows(ui render.UI, fields []boundField, v reflect.Value) {
	for _, field := range fields {
		ui.Horizontal(func(ui render.UI) {
			ui.Label(field.label)
			field.behavior.Edit(ui, v.Field(field.index))
		})
	}
}

func resetFields(fields []boundField, v reflect.Value) {
	v.SetZero()
	for _, field := range fields {
		field.behavior.Reset(v.Field(field.index))
	}
}
