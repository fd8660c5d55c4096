package model

import (
	"fmt"
	"reflect"
	"sync"
)

// Builder converts Go types into TypeDescriptors. Each descriptor is computed
// once and cached; descriptors are never mutated after construction.
type Builder struct {
	opts Options

	mu    sync.Mutex
	cache map[reflect.Type]*TypeDescriptor
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.Sums != nil {
		opts.Sums = options.Sums
	}
	if options.Terminal != nil {
		opts.Terminal = options.Terminal
	}
	opts.Overrides = options.Overrides
	return &Builder{
		opts:  opts,
		cache: make(map[reflect.Type]*TypeDescriptor),
	}
}

// Describe returns the descriptor of t. It only inspects t itself; nested
// field types are described when the caller asks for them.
func (b *Builder) Describe(t reflect.Type) (*TypeDescriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrUnsupportedShape)
	}

	b.mu.Lock()
	if desc, ok := b.cache[t]; ok {
		b.mu.Unlock()
		return desc, nil
	}
	b.mu.Unlock()

	desc, err := b.describe(t)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if existing, ok := b.cache[t]; ok {
		return existing, nil
	}
	b.cache[t] = desc
	return desc, nil
}

func (b *Builder) describe(t reflect.Type) (*TypeDescriptor, error) {
	desc := &TypeDescriptor{
		Type: t,
		Name: typeName(t),
		Kind: KindPrimitive,
	}
	if b.opts.Terminal(t) {
		return desc, nil
	}

	switch t.Kind() {
	case reflect.Struct:
		layout, err := b.describeStruct(t)
		if err != nil {
			return nil, err
		}
		if layout.tagged && !b.opts.Sums.IsVariant(t) {
			return nil, fmt.Errorf("%w: %v carries variant directives but is not a declared sum variant", ErrMisplacedDirective, t)
		}
		desc.Kind = KindProduct
		desc.Fields = layout.fields
		desc.Positional = layout.positional
	case reflect.Interface:
		variants, ok := b.opts.Sums.Variants(t)
		if !ok {
			return nil, fmt.Errorf("%w: interface %v is not a declared sum type", ErrUnsupportedShape, t)
		}
		desc.Kind = KindSum
		for _, vt := range variants {
			variant, err := b.describeVariant(vt)
			if err != nil {
				return nil, fmt.Errorf("model: sum %v: %w", t, err)
			}
			desc.Variants = append(desc.Variants, variant)
		}
	}
	return desc, nil
}

func (b *Builder) describeVariant(vt reflect.Type) (VariantDescriptor, error) {
	variant := VariantDescriptor{
		Type:    vt,
		Pointer: vt.Kind() == reflect.Pointer,
	}
	st := variant.Struct()
	if st.Name() == "" {
		return VariantDescriptor{}, fmt.Errorf("%w: variant %v must be a named struct", ErrUnsupportedShape, vt)
	}
	variant.Name = st.Name()

	layout, err := b.describeStruct(st)
	if err != nil {
		return VariantDescriptor{}, err
	}
	attrs := layout.variant
	if b.opts.Overrides != nil {
		if override, ok := b.opts.Overrides.VariantOverride(st); ok {
			attrs = attrs.Apply(override)
		}
	}
	if attrs.Label != nil {
		return VariantDescriptor{}, fmt.Errorf("%w: %v: label applies to fields only", ErrMisplacedDirective, st)
	}

	variant.Fields = layout.fields
	variant.Skip = attrs.Skip
	variant.DisplayName = variant.Name
	if attrs.DisplayName != nil {
		variant.DisplayName = *attrs.DisplayName
	}
	switch {
	case len(layout.fields) == 0:
		variant.Kind = VariantUnit
	case layout.positional:
		variant.Kind = VariantPositional
	default:
		variant.Kind = VariantNamed
	}
	return variant, nil
}

type structLayout struct {
	fields     []FieldDescriptor
	positional bool
	// variant holds directives attached to blank fields; they only matter
	// when the struct is used as a sum variant.
	variant Attributes
	tagged  bool
}

func (b *Builder) describeStruct(t reflect.Type) (structLayout, error) {
	var (
		layout     structLayout
		fieldAttrs []Attributes
	)

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		attrs, err := TagAttributes(sf)
		if err != nil {
			return structLayout{}, fmt.Errorf("model: %v.%s: %w", t, sf.Name, err)
		}

		if sf.Name == "_" {
			if sf.Type == positionalType {
				layout.positional = true
			}
			if sf.Tag.Get(TagKey) == "" {
				continue
			}
			if layout.tagged {
				return structLayout{}, fmt.Errorf("%w: %v declares variant directives twice", ErrInvalidDirective, t)
			}
			layout.variant = attrs
			layout.tagged = true
			continue
		}

		if attrs.DisplayName != nil {
			return structLayout{}, fmt.Errorf("%w: %v.%s: display applies to sum variants only", ErrMisplacedDirective, t, sf.Name)
		}
		if b.opts.Overrides != nil {
			if override, ok := b.opts.Overrides.FieldOverride(t, sf.Name); ok {
				attrs = attrs.Apply(override)
			}
		}

		layout.fields = append(layout.fields, FieldDescriptor{
			Name:     sf.Name,
			Index:    i,
			Position: len(layout.fields),
			Type:     sf.Type,
			Exported: sf.IsExported(),
		})
		fieldAttrs = append(fieldAttrs, attrs)
	}

	if err := b.checkOverrides(t, layout.fields); err != nil {
		return structLayout{}, err
	}

	for idx := range layout.fields {
		field := &layout.fields[idx]
		attrs := fieldAttrs[idx]
		switch {
		case attrs.Label != nil:
			field.Label = *attrs.Label
		case layout.positional:
			field.Label = fmt.Sprintf("field_%d", field.Position)
		default:
			field.Label = b.opts.Labeler(field.Name)
		}
		field.Skip = attrs.Skip || !field.Exported
	}
	return layout, nil
}

func (b *Builder) checkOverrides(t reflect.Type, fields []FieldDescriptor) error {
	if b.opts.Overrides == nil {
		return nil
	}
	names := b.opts.Overrides.Fields(t)
	if len(names) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		known[field.Name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("%w: %v has no field %q", ErrUnknownField, t, name)
		}
	}
	return nil
}

func typeName(t reflect.Type) string {
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
