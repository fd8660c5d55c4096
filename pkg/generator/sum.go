package generator

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/render"
	"github.com/goliatone/go-inspect/pkg/widgets"
)

// sumBehavior edits an interface value holding one of its declared variants.
//
// A value whose dynamic type is a skipped variant stays as it is: no
// selector entry is marked and no body is drawn. A nil value selects
// nothing; picking an entry replaces it.
type sumBehavior struct {
	gen      *Generator
	desc     *model.TypeDescriptor
	variants []boundVariant
}

type boundVariant struct {
	model.VariantDescriptor
	// fields is nil for skipped variants; they are never drawn.
	fields []boundField
}

func (g *Generator) buildSum(desc *model.TypeDescriptor) (render.Behavior, error) {
	sum := &sumBehavior{gen: g, desc: desc}
	for _, variant := range desc.Variants {
		bound := boundVariant{VariantDescriptor: variant}
		if !variant.Skip {
			fields, err := g.bindFields(variant.Fields)
			if err != nil {
				return nil, fmt.Errorf("variant %s: %w", variant.Name, err)
			}
			// Switching to a variant constructs it from field defaults.
			if err := g.fieldsDefaultable(variant.VisibleFields(), make(map[reflect.Type]bool)); err != nil {
				return nil, fmt.Errorf("variant %s: %w", variant.Name, err)
			}
			bound.fields = fields
		}
		sum.variants = append(sum.variants, bound)
	}
	return sum, nil
}

func (s *sumBehavior) Present(ui render.UI, v reflect.Value) {
	ui.Label(s.gen.format(v))
}

func (s *sumBehavior) Edit(ui render.UI, v reflect.Value) {
	ui.Vertical(func(ui render.UI) {
		active := s.desc.VariantOf(v)
		selected := widgets.NoneText
		if active >= 0 {
			selected = s.variants[active].DisplayName
		}

		chosen := -1
		ui.Combo(selected, func(ui render.UI) {
			for idx, variant := range s.variants {
				if variant.Skip {
					continue
				}
				if ui.Selectable(idx == active, variant.DisplayName) && idx != active {
					chosen = idx
				}
			}
		})

		if chosen >= 0 {
			v.Set(s.construct(chosen))
			active = chosen
		}
		if active < 0 || s.variants[active].Skip {
			return
		}
		s.editBody(ui, v, active)
	})
}

func (s *sumBehavior) editBody(ui render.UI, v reflect.Value, idx int) {
	variant := s.variants[idx]
	if len(variant.fields) == 0 {
		return
	}

	held := v.Elem()
	if variant.Pointer {
		if held.IsNil() {
			return
		}
		editRows(ui, variant.fields, held.Elem())
		return
	}

	// Struct variants are stored by value; edit a copy and store it back.
	work := reflect.New(variant.Type).Elem()
	work.Set(held)
	editRows(ui, variant.fields, work)
	v.Set(work)
}

// Reset stores the default variant. Without a selectable variant the value
// becomes nil.
func (s *sumBehavior) Reset(v reflect.Value) {
	idx := s.desc.DefaultVariant()
	if idx < 0 {
		v.SetZero()
		return
	}
	v.Set(s.construct(idx))
}

// construct builds variant idx with every visible field at its default,
// boxed as the sum's interface type.
func (s *sumBehavior) construct(idx int) reflect.Value {
	variant := s.variants[idx]
	ptr := reflect.New(variant.Struct())
	resetFields(variant.fields, ptr.Elem())

	value := ptr
	if !variant.Pointer {
		value = ptr.Elem()
	}
	boxed := reflect.New(s.desc.Type).Elem()
	boxed.Set(value)
	return boxed
}
