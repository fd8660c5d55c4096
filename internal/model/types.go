package model

import "reflect"

// Kind classifies the shape of a described type.
type Kind string

const (
	// KindPrimitive covers terminals and container shapes handled by the
	// adapter registry (optional, list, tuple, map, set).
	KindPrimitive Kind = "primitive"
	// KindProduct is a struct rendered field by field.
	KindProduct Kind = "product"
	// KindSum is a declared interface whose value is one of its variants.
	KindSum Kind = "sum"
)

// VariantKind describes the field layout of a sum variant.
type VariantKind string

const (
	VariantUnit       VariantKind = "unit"
	VariantNamed      VariantKind = "named"
	VariantPositional VariantKind = "positional"
)

// Attributes is the interpreted form of the directives attached to a field or
// variant. Nil pointers mean "not overridden".
type Attributes struct {
	Skip        bool
	Label       *string
	DisplayName *string
}

// FieldDescriptor describes one field of a product or variant.
type FieldDescriptor struct {
	// Name is the declared Go field name.
	Name string
	// Index is the reflect field index inside the owning struct.
	Index int
	// Position is the field's ordinal among non-blank fields; positional
	// captions derive from it.
	Position int
	Type     reflect.Type
	// Label is the row caption: the override, or the (labeled) declared name,
	// or field_N for positional fields.
	Label string
	Skip  bool
	// Exported is false for fields reflection cannot set. Such fields are
	// always skipped.
	Exported bool
}

// VariantDescriptor describes one variant of a sum type.
type VariantDescriptor struct {
	Name        string
	DisplayName string
	Kind        VariantKind
	// Type is the dynamic type stored in the interface (a struct or a pointer
	// to a struct).
	Type reflect.Type
	// Pointer reports whether the variant is stored by pointer.
	Pointer bool
	Fields  []FieldDescriptor
	Skip    bool
}

// Struct returns the struct type carrying the variant fields.
func (v VariantDescriptor) Struct() reflect.Type {
	if v.Pointer {
		return v.Type.Elem()
	}
	return v.Type
}

// VisibleFields returns the fields that generated behaviors visit.
func (v VariantDescriptor) VisibleFields() []FieldDescriptor {
	return visible(v.Fields)
}

// TypeDescriptor is the immutable structural description of one Go type.
type TypeDescriptor struct {
	Type       reflect.Type
	Name       string
	Kind       Kind
	Positional bool
	Fields     []FieldDescriptor
	Variants   []VariantDescriptor
}

// VisibleFields returns the product fields that generated behaviors visit, in
// declaration order.
func (d *TypeDescriptor) VisibleFields() []FieldDescriptor {
	if d == nil {
		return nil
	}
	return visible(d.Fields)
}

// SelectableVariants returns the indices of variants offered in the selector.
func (d *TypeDescriptor) SelectableVariants() []int {
	if d == nil {
		return nil
	}
	var out []int
	for idx, variant := range d.Variants {
		if !variant.Skip {
			out = append(out, idx)
		}
	}
	return out
}

// DefaultVariant returns the index of the variant used for default synthesis:
// the first selectable one, or -1 when every variant is skipped.
func (d *TypeDescriptor) DefaultVariant() int {
	selectable := d.SelectableVariants()
	if len(selectable) == 0 {
		return -1
	}
	return selectable[0]
}

// VariantOf returns the index of the variant matching the dynamic type of the
// supplied interface value, or -1 when the value is nil or undeclared.
func (d *TypeDescriptor) VariantOf(v reflect.Value) int {
	if d == nil || !v.IsValid() {
		return -1
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return -1
		}
		v = v.Elem()
	}
	for idx, variant := range d.Variants {
		if variant.Type == v.Type() {
			return idx
		}
	}
	return -1
}

func visible(fields []FieldDescriptor) []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(fields))
	for _, field := range fields {
		if field.Skip {
			continue
		}
		out = append(out, field)
	}
	return out
}
