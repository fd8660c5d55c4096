package model

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type shape interface{ isShape() }

type circle struct {
	Radius float64 `inspect:"label=R"`
}

type disc struct {
	_      struct{} `inspect:"display='Solid disc'"`
	Radius float64
}

type rect struct {
	_    Positional
	W, H float64
}

type retired struct {
	_ struct{} `inspect:"skip"`
}

func (circle) isShape()  {}
func (*disc) isShape()   {}
func (rect) isShape()    {}
func (retired) isShape() {}

type account struct {
	FirstName string
	Secret    string `inspect:"skip"`
	Nick      string `inspect:"label=Alias"`
	internal  int
}

type badDisplay struct {
	Name string `inspect:"display=X"`
}

type badVariant struct {
	_ struct{} `inspect:"label=X"`
}

func (badVariant) isShape() {}

type strayDirective struct {
	_ struct{} `inspect:"skip"`
	N int
}

type stubOverrides struct {
	fields   map[reflect.Type]map[string]Override
	variants map[reflect.Type]Override
}

func (s stubOverrides) FieldOverride(t reflect.Type, field string) (Override, bool) {
	o, ok := s.fields[t][field]
	return o, ok
}

func (s stubOverrides) VariantOverride(t reflect.Type) (Override, bool) {
	o, ok := s.variants[t]
	return o, ok
}

func (s stubOverrides) Fields(t reflect.Type) []string {
	var names []string
	for name := range s.fields[t] {
		names = append(names, name)
	}
	return names
}

func newShapeBuilder(t *testing.T, opts Options) *Builder {
	t.Helper()
	sums := NewSumRegistry()
	err := sums.Declare(reflect.TypeFor[shape](),
		reflect.TypeFor[circle](), reflect.TypeFor[*disc](), reflect.TypeFor[rect](), reflect.TypeFor[retired]())
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	opts.Sums = sums
	return New(opts)
}

func TestBuilder_Product(t *testing.T) {
	b := New(Options{Labeler: DefaultLabeler})
	desc, err := b.Describe(reflect.TypeFor[account]())
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if desc.Kind != KindProduct || desc.Name != "account" || desc.Positional {
		t.Fatalf("desc = %+v", desc)
	}

	type row struct {
		Name, Label string
		Skip        bool
	}
	var got []row
	for _, field := range desc.Fields {
		got = append(got, row{field.Name, field.Label, field.Skip})
	}
	want := []row{
		{"FirstName", "First Name", false},
		{"Secret", "Secret", true},
		{"Nick", "Alias", false},
		{"internal", "Internal", true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if n := len(desc.VisibleFields()); n != 2 {
		t.Fatalf("visible fields = %d", n)
	}

	again, _ := b.Describe(reflect.TypeFor[account]())
	if again != desc {
		t.Fatal("descriptors must be cached")
	}
}

func TestBuilder_Sum(t *testing.T) {
	b := newShapeBuilder(t, Options{})
	desc, err := b.Describe(reflect.TypeFor[shape]())
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if desc.Kind != KindSum {
		t.Fatalf("kind = %s", desc.Kind)
	}

	type row struct {
		Name, Display string
		Kind          VariantKind
		Pointer, Skip bool
		Labels        []string
	}
	var got []row
	for _, v := range desc.Variants {
		r := row{Name: v.Name, Display: v.DisplayName, Kind: v.Kind, Pointer: v.Pointer, Skip: v.Skip}
		for _, f := range v.VisibleFields() {
			r.Labels = append(r.Labels, f.Label)
		}
		got = append(got, r)
	}
	want := []row{
		{Name: "circle", Display: "circle", Kind: VariantNamed, Labels: []string{"R"}},
		{Name: "disc", Display: "Solid disc", Kind: VariantNamed, Pointer: true, Labels: []string{"Radius"}},
		{Name: "rect", Display: "rect", Kind: VariantPositional, Labels: []string{"field_0", "field_1"}},
		{Name: "retired", Display: "retired", Kind: VariantUnit, Skip: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("variants mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{0, 1, 2}, desc.SelectableVariants()); diff != "" {
		t.Fatalf("selectable mismatch (-want +got):\n%s", diff)
	}
	if desc.DefaultVariant() != 0 {
		t.Fatalf("default variant = %d", desc.DefaultVariant())
	}

	var value shape = &disc{}
	if idx := desc.VariantOf(reflect.ValueOf(&value).Elem()); idx != 1 {
		t.Fatalf("VariantOf = %d", idx)
	}
	var empty shape
	if idx := desc.VariantOf(reflect.ValueOf(&empty).Elem()); idx != -1 {
		t.Fatalf("VariantOf(nil) = %d", idx)
	}
}

func TestBuilder_Overrides(t *testing.T) {
	skip := true
	b := newShapeBuilder(t, Options{Overrides: stubOverrides{
		fields: map[reflect.Type]map[string]Override{
			reflect.TypeFor[disc](): {"Radius": {Label: strPtr("Size")}},
		},
		variants: map[reflect.Type]Override{
			reflect.TypeFor[rect](): {Skip: &skip},
		},
	}})
	desc, err := b.Describe(reflect.TypeFor[shape]())
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if got := desc.Variants[1].Fields[0].Label; got != "Size" {
		t.Fatalf("disc radius label = %q", got)
	}
	if !desc.Variants[2].Skip {
		t.Fatal("rect should be skipped by override")
	}
	if desc.DefaultVariant() != 0 {
		t.Fatalf("default variant = %d", desc.DefaultVariant())
	}
}

func TestBuilder_Errors(t *testing.T) {
	sums := NewSumRegistry()
	if err := sums.Declare(reflect.TypeFor[shape](), reflect.TypeFor[badVariant]()); err != nil {
		t.Fatalf("declare: %v", err)
	}
	b := New(Options{Sums: sums})

	cases := []struct {
		name string
		typ  reflect.Type
		want error
	}{
		{"display on field", reflect.TypeFor[badDisplay](), ErrMisplacedDirective},
		{"label on variant", reflect.TypeFor[shape](), ErrMisplacedDirective},
		{"variant directive outside a sum", reflect.TypeFor[strayDirective](), ErrMisplacedDirective},
		{"undeclared interface", reflect.TypeFor[error](), ErrUnsupportedShape},
		{"nil type", nil, ErrUnsupportedShape},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := b.Describe(tc.typ); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	unknown := New(Options{Overrides: stubOverrides{fields: map[reflect.Type]map[string]Override{
		reflect.TypeFor[account](): {"Missing": {}},
	}}})
	if _, err := unknown.Describe(reflect.TypeFor[account]()); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("err = %v, want ErrUnknownField", err)
	}
}

func TestBuilder_Terminal(t *testing.T) {
	b := New(Options{Terminal: func(t reflect.Type) bool { return t == reflect.TypeFor[account]() }})
	desc, err := b.Describe(reflect.TypeFor[account]())
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if desc.Kind != KindPrimitive || len(desc.Fields) != 0 {
		t.Fatalf("desc = %+v", desc)
	}
}
