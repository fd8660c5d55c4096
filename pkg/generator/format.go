package generator

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/widgets"
)

// Format returns the string conversion used by sum presentations:
//
//	Red
//	Custom(0, 0, 0)
//	Point{X: 1, Y: 2}
//
// Variants are named by their display name and skipped fields are left out.
// Nil optionals and sums read "None".
func (g *Generator) Format(v reflect.Value) string {
	return g.format(v)
}

func (g *Generator) format(v reflect.Value) string {
	if !v.IsValid() {
		return widgets.NoneText
	}
	t := v.Type()

	switch t.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return widgets.NoneText
		}
		if desc, err := g.describer.Describe(t); err == nil && desc.Kind == model.KindSum {
			return g.formatVariant(desc, v)
		}
		return g.format(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			return widgets.NoneText
		}
		return g.format(v.Elem())
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			parts = append(parts, g.format(v.Index(i)))
		}
		if t.Kind() == reflect.Array {
			return "(" + strings.Join(parts, ", ") + ")"
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		parts := make([]string, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			parts = append(parts, g.format(iter.Key())+": "+g.format(iter.Value()))
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}"
	case reflect.String:
		return strconv.Quote(v.String())
	}

	if g.registry.Handles(t) {
		return widgets.FormatValue(v)
	}
	if t.Kind() == reflect.Struct {
		if desc, err := g.describer.Describe(t); err == nil && desc.Kind == model.KindProduct {
			return g.formatFields(desc.Name, desc.Positional, desc.VisibleFields(), v)
		}
	}
	if v.CanInterface() {
		return fmt.Sprint(v.Interface())
	}
	return t.String()
}

func (g *Generator) formatVariant(desc *model.TypeDescriptor, v reflect.Value) string {
	idx := desc.VariantOf(v)
	if idx < 0 {
		return g.format(v.Elem())
	}
	variant := desc.Variants[idx]
	held := v.Elem()
	if variant.Pointer {
		if held.IsNil() {
			return variant.DisplayName
		}
		held = held.Elem()
	}
	return g.formatFields(variant.DisplayName, variant.Kind == model.VariantPositional, variant.VisibleFields(), held)
}

func (g *Generator) formatFields(name string, positional bool, fields []model.FieldDescriptor, v reflect.Value) string {
	if len(fields) == 0 {
		return name
	}
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		value := g.format(v.Field(field.Index))
		if positional {
			parts = append(parts, value)
			continue
		}
		parts = append(parts, field.Name+": "+value)
	}
	if positional {
		return name + "(" + strings.Join(parts, ", ") + ")"
	}
	return name + "{" + strings.Join(parts, ", ") + "}"
}
