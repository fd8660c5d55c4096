package generator

import (
	"errors"
	"math"
	"math/big"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/render"
	"github.com/goliatone/go-inspect/pkg/renderers/headless"
)

type Color interface{ isColor() }

type Red struct{}

type Custom struct {
	_       model.Positional
	R, G, B uint8
}

type Retired struct {
	_    struct{} `inspect:"skip"`
	Code string
}

func (Red) isColor()     {}
func (Custom) isColor()  {}
func (Retired) isColor() {}

type Profile struct {
	Name string
	Age  big.Int
	Tag  Color
}

type Shape interface{ isShape() }

type Circle struct {
	Radius float64
}

type Disc struct {
	_      struct{} `inspect:"display='Solid disc'"`
	Radius float64
}

type Rect struct {
	W, H float64
}

func (Circle) isShape() {}
func (*Disc) isShape()  {}
func (Rect) isShape()   {}

type Gone interface{ isGone() }

type OnlyHidden struct {
	_ struct{} `inspect:"skip"`
}

func (OnlyHidden) isGone() {}

func newTestGenerator(t *testing.T, options ...Option) *Generator {
	t.Helper()
	sums := model.NewSumRegistry()
	if err := model.DeclareSumIn[Color](sums, Red{}, Custom{}, Retired{}); err != nil {
		t.Fatalf("declare color: %v", err)
	}
	if err := model.DeclareSumIn[Shape](sums, Circle{}, &Disc{}, Rect{}); err != nil {
		t.Fatalf("declare shape: %v", err)
	}
	if err := model.DeclareSumIn[Gone](sums, OnlyHidden{}); err != nil {
		t.Fatalf("declare gone: %v", err)
	}
	if err := model.DeclareSumIn[Entry](sums, Blank{}, Note{}); err != nil {
		t.Fatalf("declare entry: %v", err)
	}
	return New(append([]Option{WithSums(sums)}, options...)...)
}

func maxInt128(t *testing.T) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	if !ok {
		t.Fatal("parse max int128")
	}
	return n
}

func TestProfileScenario(t *testing.T) {
	gen := newTestGenerator(t)
	inspector, err := For[Profile](gen)
	if err != nil {
		t.Fatalf("for profile: %v", err)
	}

	profile := Profile{Name: "Ann", Tag: Red{}}
	profile.Age.Set(maxInt128(t))

	rec := headless.New()
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &profile) })

	rec.SetText("Age", "abc")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &profile) })
	if profile.Age.Cmp(maxInt128(t)) != 0 {
		t.Fatalf("age changed on unparsable text: %s", profile.Age.String())
	}

	rec.Click("Tag/combo/Custom")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &profile) })
	got, ok := profile.Tag.(Custom)
	if !ok {
		t.Fatalf("tag = %#v, want Custom", profile.Tag)
	}
	if got != (Custom{}) {
		t.Fatalf("tag = %#v, want Custom(0, 0, 0)", got)
	}
	if s := inspector.String(profile); s != `Profile{Name: "Ann", Age: 170141183460469231731687303715884105727, Tag: Custom(0, 0, 0)}` {
		t.Fatalf("string = %s", s)
	}

	// The new variant's body is drawn in the same frame.
	if rec.Find("Tag/field_0") == nil {
		t.Fatalf("custom body missing, ids: %v", rec.IDs())
	}
}

func TestProfileScenarioAcceptsParsableAge(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Profile](gen)

	var profile Profile
	if err := inspector.Reset(&profile); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok := profile.Tag.(Red); !ok {
		t.Fatalf("default tag = %#v, want Red", profile.Tag)
	}

	rec := headless.New()
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &profile) })
	rec.SetText("Age", " 12345678901234567890123 ").SetText("Name", "Bo")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &profile) })

	if profile.Age.String() != "12345678901234567890123" {
		t.Fatalf("age = %s", profile.Age.String())
	}
	if profile.Name != "Bo" {
		t.Fatalf("name = %q", profile.Name)
	}
}

func TestPresentLayout(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Profile](gen)

	profile := Profile{Name: "Ann", Tag: Custom{R: 1, G: 2, B: 3}}
	profile.Age.SetInt64(42)

	rec := headless.New()
	rec.Frame(func(ui render.UI) { inspector.Present(ui, &profile) })

	want := `vertical
  horizontal
    label "Name"
    label "Ann"
  horizontal
    label "Age"
    label "42"
  horizontal
    label "Tag"
    label "Custom(1, 2, 3)"
`
	if diff := cmp.Diff(want, rec.Dump()); diff != "" {
		t.Fatalf("present layout mismatch (-want +got):\n%s", diff)
	}
}

func TestVariantSwitchResetsFields(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Shape](gen)

	cases := []struct {
		name  string
		start Shape
		click string
		want  Shape
	}{
		{name: "circle to rect", start: Circle{Radius: 5}, click: "combo/Rect", want: Rect{}},
		{name: "rect to circle", start: Rect{W: 2, H: 3}, click: "combo/Circle", want: Circle{}},
		{name: "shared field name", start: Circle{Radius: 9}, click: "combo/Solid disc", want: &Disc{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value := tc.start
			rec := headless.New()
			rec.Click(tc.click)
			rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })

			if !reflect.DeepEqual(tc.want, value) {
				t.Fatalf("value = %#v, want %#v", value, tc.want)
			}
		})
	}
}

func TestReselectingActiveVariantKeepsValue(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Shape](gen)

	disc := &Disc{Radius: 4}
	var value Shape = disc
	rec := headless.New()
	rec.Click("combo/Solid disc")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })

	if value != Shape(disc) {
		t.Fatalf("value replaced: %#v", value)
	}
	if disc.Radius != 4 {
		t.Fatalf("radius = %v, want 4", disc.Radius)
	}
}

func TestPointerVariantEditsInPlace(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Shape](gen)

	disc := &Disc{Radius: 1}
	var value Shape = disc
	rec := headless.New()
	rec.SetValue("Radius", 7.5)
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })

	if disc.Radius != 7.5 {
		t.Fatalf("radius = %v, want 7.5", disc.Radius)
	}
}

func TestSkippedVariantIsInert(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Color](gen)

	var value Color = Retired{Code: "x"}
	rec := headless.New()
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })

	combo := rec.Find("combo")
	if combo == nil {
		t.Fatalf("combo missing, ids: %v", rec.IDs())
	}
	var entries []string
	for _, child := range combo.Children {
		entries = append(entries, child.Text)
		if child.Selected {
			t.Fatalf("entry %q selected for skipped variant", child.Text)
		}
	}
	if diff := cmp.Diff([]string{"Red", "Custom"}, entries); diff != "" {
		t.Fatalf("selector entries (-want +got):\n%s", diff)
	}
	if rec.Find("Code") != nil {
		t.Fatal("skipped variant body drawn")
	}
	if value != Color(Retired{Code: "x"}) {
		t.Fatalf("value changed: %#v", value)
	}

	rec.Frame(func(ui render.UI) { inspector.Present(ui, &value) })
	if diff := cmp.Diff([]string{`Retired{Code: "x"}`}, rec.Labels()); diff != "" {
		t.Fatalf("present (-want +got):\n%s", diff)
	}
}

func TestNilSumSelectsNothing(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Color](gen)

	var value Color
	rec := headless.New()
	rec.Frame(func(ui render.UI) { inspector.Present(ui, &value) })
	if diff := cmp.Diff([]string{"None"}, rec.Labels()); diff != "" {
		t.Fatalf("present (-want +got):\n%s", diff)
	}

	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	if combo := rec.Find("combo"); combo == nil || combo.Text != "None" {
		t.Fatalf("combo = %#v", combo)
	}

	rec.Click("combo/Red")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	if _, ok := value.(Red); !ok {
		t.Fatalf("value = %#v, want Red", value)
	}
}

type Settings struct {
	Title  string
	Secret string `inspect:"skip"`
	Volume uint8  `inspect:"label=Loudness"`
	notes  string
	Shade  Color `inspect:"-"`
	Ratio  float32
}

func TestProductOrderLabelsAndSkips(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Settings](gen)

	value := Settings{Title: "t", Secret: "keep", Volume: 3, notes: "n", Shade: Red{}, Ratio: 0.5}
	rec := headless.New()
	rec.Frame(func(ui render.UI) { inspector.Present(ui, &value) })

	want := []string{"Title", "t", "Loudness", "3", "Ratio", "0.5"}
	if diff := cmp.Diff(want, rec.Labels()); diff != "" {
		t.Fatalf("labels (-want +got):\n%s", diff)
	}

	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	rec.SetText("Title", "changed").SetValue("Loudness", 300).SetValue("Ratio", math.NaN())
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })

	if value.Title != "changed" {
		t.Fatalf("title = %q", value.Title)
	}
	if value.Volume != math.MaxUint8 {
		t.Fatalf("volume = %d, want clamp to 255", value.Volume)
	}
	if value.Ratio != 0.5 {
		t.Fatalf("ratio = %v, NaN must be ignored", value.Ratio)
	}
	if value.Secret != "keep" || value.notes != "n" || value.Shade != Color(Red{}) {
		t.Fatalf("skipped fields changed: %#v", value)
	}
	for _, id := range rec.IDs() {
		if id == "Secret" || id == "Shade" || id == "notes" {
			t.Fatalf("skipped field %q drawn", id)
		}
	}
}

type Entry interface{ isEntry() }

type Blank struct{}

type Note struct {
	Body   string
	Hidden string `inspect:"skip"`
	Prio   int8   `inspect:"label=Priority"`
}

func (Blank) isEntry() {}
func (Note) isEntry()  {}

type Journal struct {
	Entry Entry
}

func TestVariantFieldsHonourSkipAndLabels(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Journal](gen)

	value := Journal{Entry: Note{Body: "old", Hidden: "keep", Prio: 1}}
	rec := headless.New()
	rec.SetText("Entry/Body", "new").SetValue("Entry/Priority", 2)
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })

	// Note is stored by value, so the edited copy must be written back.
	want := Note{Body: "new", Hidden: "keep", Prio: 2}
	if got, ok := value.Entry.(Note); !ok || got != want {
		t.Fatalf("entry = %#v, want %#v", value.Entry, want)
	}

	wantLabels := []string{"Entry", "Body", "Priority"}
	if diff := cmp.Diff(wantLabels, rec.Labels()); diff != "" {
		t.Fatalf("labels (-want +got):\n%s", diff)
	}
	wantIDs := []string{"Entry/combo", "Entry/combo/Blank", "Entry/combo/Note", "Entry/Body", "Entry/Priority"}
	if diff := cmp.Diff(wantIDs, rec.IDs()); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	if s := inspector.String(value); s != `Journal{Entry: Note{Body: "new", Prio: 2}}` {
		t.Fatalf("string = %s", s)
	}
}

func TestResetZeroesSkippedFields(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Settings](gen)

	value := Settings{Title: "t", Secret: "s", notes: "n", Shade: Custom{R: 1}}
	if err := inspector.Reset(&value); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if value.Title != "" || value.Secret != "" || value.notes != "" || value.Shade != nil {
		t.Fatalf("reset left values behind: %#v", value)
	}
}

type Bag struct {
	Items []string
	Nick  *string
	Pair  [2]int16
	Tags  map[string]int
}

func TestListAppendAndRemove(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Bag](gen)

	value := Bag{Items: []string{"a", "b"}}
	rec := headless.New()
	rec.Click("Items/Add")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	if diff := cmp.Diff([]string{"a", "b", ""}, value.Items); diff != "" {
		t.Fatalf("append (-want +got):\n%s", diff)
	}

	rec.Click("Items/Remove last")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	rec.Click("Items/Remove last")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	if diff := cmp.Diff([]string{"a"}, value.Items); diff != "" {
		t.Fatalf("remove (-want +got):\n%s", diff)
	}

	value.Items = nil
	rec.Click("Items/Remove last")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	if value.Items != nil {
		t.Fatalf("remove on empty list changed it: %#v", value.Items)
	}
	if btn := rec.Find("Items/Remove last"); btn == nil || btn.Enabled {
		t.Fatalf("remove button should be disabled on empty list: %#v", btn)
	}
}

func TestOptionalToggle(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Bag](gen)

	var value Bag
	rec := headless.New()
	rec.SetCheck("Nick/checkbox", true)
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	if value.Nick == nil || *value.Nick != "" {
		t.Fatalf("toggle on = %v, want empty string", value.Nick)
	}
	if rec.Find("Nick/text") == nil {
		t.Fatalf("inner editor not drawn on toggle, ids: %v", rec.IDs())
	}

	rec.SetText("Nick/text", "neo")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	if *value.Nick != "neo" {
		t.Fatalf("nick = %q", *value.Nick)
	}

	rec.SetCheck("Nick/checkbox", false)
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	if value.Nick != nil {
		t.Fatalf("toggle off kept %q", *value.Nick)
	}

	rec.SetCheck("Nick/checkbox", true)
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	if value.Nick == nil || *value.Nick != "" {
		t.Fatalf("toggle on again = %v, want fresh default", value.Nick)
	}
}

func TestTupleAndMapStub(t *testing.T) {
	gen := newTestGenerator(t)
	inspector := MustFor[Bag](gen)

	value := Bag{Pair: [2]int16{1, 2}, Tags: map[string]int{"a": 1}}
	rec := headless.New()
	rec.Frame(func(ui render.UI) { inspector.Present(ui, &value) })

	want := []string{"Items", "Empty", "Nick", "None", "Pair", "1", "2", "Tags"}
	if diff := cmp.Diff(want, rec.Labels()); diff != "" {
		t.Fatalf("labels (-want +got):\n%s", diff)
	}

	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	rec.SetValue("Pair/drag#2", 9)
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })
	if value.Pair != [2]int16{1, 9} {
		t.Fatalf("pair = %v", value.Pair)
	}
	if diff := cmp.Diff(map[string]int{"a": 1}, value.Tags); diff != "" {
		t.Fatalf("map stub changed the map (-want +got):\n%s", diff)
	}
}

func TestKeyedMapEditor(t *testing.T) {
	gen := newTestGenerator(t, WithKeyedMaps())
	inspector := MustFor[Bag](gen)

	value := Bag{Tags: map[string]int{"a": 1, "b": 2}}
	rec := headless.New()
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })

	// Rows sort by key: "a" first, then "b".
	rec.SetText("Tags/text", "c").Click("Tags/Remove#2").Click("Tags/Add")
	rec.Frame(func(ui render.UI) { inspector.Edit(ui, &value) })

	want := map[string]int{"c": 1, "": 0}
	if diff := cmp.Diff(want, value.Tags); diff != "" {
		t.Fatalf("map edit (-want +got):\n%s", diff)
	}
}

type Node struct {
	Name string
	Next *Node
}

type Holder struct {
	Any  any
	Feed chan int
}

type NeedsDefault struct {
	Items []Gone
}

func TestGenerationErrors(t *testing.T) {
	gen := newTestGenerator(t)

	cases := []struct {
		name string
		typ  reflect.Type
		want error
	}{
		{name: "recursive", typ: reflect.TypeFor[Node](), want: ErrRecursiveType},
		{name: "undeclared interface", typ: reflect.TypeFor[Holder](), want: model.ErrUnsupportedShape},
		{name: "channel", typ: reflect.TypeFor[chan int](), want: ErrUnsupportedType},
		{name: "list of sum without default", typ: reflect.TypeFor[NeedsDefault](), want: ErrNoDefault},
		{name: "optional sum without default", typ: reflect.TypeFor[*Gone](), want: ErrNoDefault},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gen.Behavior(tc.typ)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			// Errors are cached and stable.
			_, again := gen.Behavior(tc.typ)
			if again == nil || again.Error() != err.Error() {
				t.Fatalf("second call err = %v, want %v", again, err)
			}
		})
	}
}

func TestSumWithoutSelectableVariantGeneratesButHasNoDefault(t *testing.T) {
	gen := newTestGenerator(t)
	inspector, err := For[Gone](gen)
	if err != nil {
		t.Fatalf("for gone: %v", err)
	}
	if _, err := inspector.Default(); !errors.Is(err, ErrNoDefault) {
		t.Fatalf("default err = %v, want ErrNoDefault", err)
	}
	if err := inspector.Reset(nil); !errors.Is(err, ErrNilValue) {
		t.Fatalf("reset nil err = %v", err)
	}
}

func TestBehaviorsAreShared(t *testing.T) {
	gen := newTestGenerator(t)
	first, err := gen.Behavior(reflect.TypeFor[Profile]())
	if err != nil {
		t.Fatalf("behavior: %v", err)
	}
	second, err := gen.Behavior(reflect.TypeFor[Profile]())
	if err != nil {
		t.Fatalf("behavior: %v", err)
	}
	if first != second {
		t.Fatal("behavior regenerated for the same type")
	}

	product := first.(*productBehavior)
	color, err := gen.Behavior(reflect.TypeFor[Color]())
	if err != nil {
		t.Fatalf("color behavior: %v", err)
	}
	if product.fields[2].behavior != color {
		t.Fatal("nested sum behavior not shared")
	}
}

func TestFormat(t *testing.T) {
	gen := newTestGenerator(t)

	cases := []struct {
		name  string
		value any
		want  string
	}{
		{name: "unit", value: Red{}, want: "Red"},
		{name: "positional", value: Custom{R: 1, G: 2, B: 3}, want: "Custom(1, 2, 3)"},
		{name: "named with display", value: &Disc{Radius: 2}, want: "Disc{Radius: 2}"},
		{name: "list", value: []string{"a"}, want: `["a"]`},
		{name: "tuple", value: [2]int{1, 2}, want: "(1, 2)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := gen.Format(reflect.ValueOf(tc.value)); got != tc.want {
				t.Fatalf("format = %q, want %q", got, tc.want)
			}
		})
	}

	var shape Shape = &Disc{Radius: 2}
	if got := gen.Format(reflect.ValueOf(&shape).Elem()); got != "Solid disc{Radius: 2}" {
		t.Fatalf("sum format = %q", got)
	}
}
