package schemaexport

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/widgets"
)

// OpenAPIVersion is the version written into exported documents.
const OpenAPIVersion = "3.0.3"

// Extension keys carried by exported schemas.
const (
	// ExtWidget names the editor a terminal maps to when the JSON type alone
	// does not say it ("multiline").
	ExtWidget = "x-inspect-widget"
	// ExtVariant carries the declared variant name on each oneOf entry.
	ExtVariant = "x-inspect-variant"
	// ExtPositional marks products and variants whose fields are positional.
	ExtPositional = "x-inspect-positional"
)

// ErrUnsupportedType reports a type the exporter has no schema for.
var ErrUnsupportedType = errors.New("schemaexport: unsupported type")

// Describer supplies the structural descriptors of products and sums.
// *generator.Generator satisfies it.
type Describer interface {
	Describe(t reflect.Type) (*model.TypeDescriptor, error)
}

var (
	bigIntType    = reflect.TypeOf(big.Int{})
	bigFloatType  = reflect.TypeOf(big.Float{})
	bigRatType    = reflect.TypeOf(big.Rat{})
	durationType  = reflect.TypeOf(time.Duration(0))
	timeType      = reflect.TypeOf(time.Time{})
	multilineType = reflect.TypeOf(model.Text(""))
)

// Exporter converts descriptors into OpenAPI schemas. Named products and sums
// become components referenced by $ref, which also covers recursive types.
// An Exporter accumulates components across calls and is not safe for
// concurrent use.
type Exporter struct {
	describer  Describer
	components openapi3.Schemas
	names      map[reflect.Type]string
}

// New constructs an exporter over describer.
func New(describer Describer) *Exporter {
	return &Exporter{
		describer:  describer,
		components: make(openapi3.Schemas),
		names:      make(map[reflect.Type]string),
	}
}

// Schema returns the schema of t, registering the components it needs.
func (e *Exporter) Schema(t reflect.Type) (*openapi3.SchemaRef, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrUnsupportedType)
	}
	return e.schema(t)
}

// Components returns the components registered so far.
func (e *Exporter) Components() openapi3.Schemas {
	return e.components
}

// Document exports types into a validated OpenAPI document holding only
// component schemas.
func (e *Exporter) Document(ctx context.Context, title, version string, types ...reflect.Type) (*openapi3.T, error) {
	for _, t := range types {
		if _, err := e.Schema(t); err != nil {
			return nil, err
		}
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: e.components,
		},
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("schemaexport: validate: %w", err)
	}
	return doc, nil
}

func (e *Exporter) schema(t reflect.Type) (*openapi3.SchemaRef, error) {
	if terminal := terminalSchema(t); terminal != nil {
		return terminal.NewRef(), nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		inner, err := e.schema(t.Elem())
		if err != nil {
			return nil, err
		}
		return nullable(inner), nil
	case reflect.Slice:
		items, err := e.schema(t.Elem())
		if err != nil {
			return nil, err
		}
		s := openapi3.NewArraySchema()
		s.Items = items
		return s.NewRef(), nil
	case reflect.Array:
		items, err := e.schema(t.Elem())
		if err != nil {
			return nil, err
		}
		s := openapi3.NewArraySchema()
		s.Items = items
		s.WithMinItems(int64(t.Len())).WithMaxItems(int64(t.Len()))
		return s.NewRef(), nil
	case reflect.Map:
		return e.mapSchema(t)
	case reflect.Struct, reflect.Interface:
		return e.component(t)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
}

func terminalSchema(t reflect.Type) *openapi3.Schema {
	switch t {
	case bigIntType:
		return openapi3.NewStringSchema().WithFormat("big-integer")
	case bigFloatType:
		return openapi3.NewStringSchema().WithFormat("big-float")
	case bigRatType:
		return openapi3.NewStringSchema().WithFormat("rational")
	case durationType:
		return openapi3.NewStringSchema().WithFormat("duration")
	case timeType:
		return openapi3.NewDateTimeSchema()
	case multilineType:
		s := openapi3.NewStringSchema()
		s.Extensions = map[string]any{ExtWidget: "multiline"}
		return s
	}

	switch t.Kind() {
	case reflect.Bool:
		return openapi3.NewBoolSchema()
	case reflect.String:
		return openapi3.NewStringSchema()
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16:
		lo, hi := widgets.StepperBounds(t)
		return openapi3.NewInt32Schema().WithMin(lo).WithMax(hi)
	case reflect.Uint32:
		lo, hi := widgets.StepperBounds(t)
		return openapi3.NewInt64Schema().WithMin(lo).WithMax(hi)
	case reflect.Int, reflect.Int64:
		return openapi3.NewInt64Schema()
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return openapi3.NewInt64Schema().WithMin(0)
	case reflect.Float32:
		return openapi3.NewFloat64Schema().WithFormat("float")
	case reflect.Float64:
		return openapi3.NewFloat64Schema()
	}
	return nil
}

func nullable(inner *openapi3.SchemaRef) *openapi3.SchemaRef {
	if inner.Ref == "" {
		inner.Value.Nullable = true
		return inner
	}
	// A $ref cannot carry siblings in 3.0; wrap it.
	s := &openapi3.Schema{
		Nullable: true,
		AllOf:    openapi3.SchemaRefs{inner},
	}
	return s.NewRef()
}

func (e *Exporter) mapSchema(t reflect.Type) (*openapi3.SchemaRef, error) {
	if t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0 {
		items, err := e.schema(t.Key())
		if err != nil {
			return nil, err
		}
		s := openapi3.NewArraySchema()
		s.Items = items
		s.UniqueItems = true
		return s.NewRef(), nil
	}

	values, err := e.schema(t.Elem())
	if err != nil {
		return nil, err
	}
	s := openapi3.NewObjectSchema()
	s.AdditionalProperties = openapi3.AdditionalProperties{Schema: values}
	return s.NewRef(), nil
}

func (e *Exporter) component(t reflect.Type) (*openapi3.SchemaRef, error) {
	if name, ok := e.names[t]; ok {
		return openapi3.NewSchemaRef(componentRef(name), e.components[name].Value), nil
	}

	desc, err := e.describer.Describe(t)
	if err != nil {
		return nil, fmt.Errorf("schemaexport: %v: %w", t, err)
	}
	if desc.Kind == model.KindPrimitive {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
	}

	name := e.componentName(desc)
	s := &openapi3.Schema{}
	e.names[t] = name
	e.components[name] = s.NewRef()

	switch desc.Kind {
	case model.KindProduct:
		err = e.fillObject(s, desc.Name, desc.Positional, desc.VisibleFields())
	case model.KindSum:
		err = e.fillSum(s, desc)
	}
	if err != nil {
		delete(e.names, t)
		delete(e.components, name)
		return nil, err
	}
	return openapi3.NewSchemaRef(componentRef(name), s), nil
}

func (e *Exporter) fillObject(s *openapi3.Schema, title string, positional bool, fields []model.FieldDescriptor) error {
	s.Type = &openapi3.Types{openapi3.TypeObject}
	s.Title = title
	s.Properties = make(openapi3.Schemas, len(fields))
	if positional {
		s.Extensions = map[string]any{ExtPositional: true}
	}
	for _, field := range fields {
		ref, err := e.schema(field.Type)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", title, field.Name, err)
		}
		if field.Label != field.Name {
			ref = described(ref, field.Label)
		}
		s.Properties[field.Name] = ref
		if field.Type.Kind() != reflect.Pointer {
			s.Required = append(s.Required, field.Name)
		}
	}
	return nil
}

// described attaches a caption to a property schema, wrapping $refs.
func described(ref *openapi3.SchemaRef, caption string) *openapi3.SchemaRef {
	if ref.Ref == "" {
		ref.Value.Description = caption
		return ref
	}
	s := &openapi3.Schema{
		Description: caption,
		AllOf:       openapi3.SchemaRefs{ref},
	}
	return s.NewRef()
}

func (e *Exporter) fillSum(s *openapi3.Schema, desc *model.TypeDescriptor) error {
	s.Title = desc.Name
	for _, idx := range desc.SelectableVariants() {
		variant := desc.Variants[idx]
		vs := &openapi3.Schema{}
		if err := e.fillObject(vs, variant.DisplayName, variant.Kind == model.VariantPositional, variant.VisibleFields()); err != nil {
			return fmt.Errorf("%s: %w", desc.Name, err)
		}
		if vs.Extensions == nil {
			vs.Extensions = make(map[string]any, 1)
		}
		vs.Extensions[ExtVariant] = variant.Name
		s.OneOf = append(s.OneOf, vs.NewRef())
	}
	return nil
}

func (e *Exporter) componentName(desc *model.TypeDescriptor) string {
	base := desc.Name
	if base == "" {
		base = "Anonymous"
	}
	name := base
	for n := 2; ; n++ {
		if _, taken := e.components[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s%d", base, n)
	}
}

func componentRef(name string) string {
	return "#/components/schemas/" + name
}
