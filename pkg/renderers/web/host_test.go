package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-inspect/pkg/generator"
	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/render"
)

type color interface{ isColor() }

type red struct{}

type custom struct {
	_       model.Positional
	R, G, B uint8
}

func (red) isColor()    {}
func (custom) isColor() {}

type profile struct {
	Name  string
	Age   int32
	Tag   color
	Bio   model.Text
	Nick  *string
	Items []string
}

func newProfileView(t *testing.T, value *profile) render.View {
	t.Helper()
	sums := model.NewSumRegistry()
	if err := model.DeclareSumIn[color](sums, red{}, custom{}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	inspector, err := generator.For[profile](generator.New(generator.WithSums(sums)))
	if err != nil {
		t.Fatalf("for: %v", err)
	}
	return inspector.View("Profile", value)
}

func newTestServer(t *testing.T, view render.View, opts ...Option) *httptest.Server {
	t.Helper()
	host, err := New(opts...)
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	srv := httptest.NewServer(host.Handler(view))
	t.Cleanup(srv.Close)
	return srv
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	return string(body)
}

func post(t *testing.T, srv *httptest.Server, form url.Values) {
	t.Helper()
	resp, err := noRedirectClient().PostForm(srv.URL+"/", form)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("location = %q", loc)
	}
}

func TestPageRendersPresentAndEditForm(t *testing.T) {
	value := profile{Name: "<b>Ann</b>", Age: 30, Tag: red{}}
	srv := newTestServer(t, newProfileView(t, &value))

	page := get(t, srv.URL+"/")
	for _, want := range []string{
		"<title>Profile</title>",
		`<input type="text" name="Name" value="&lt;b&gt;Ann&lt;/b&gt;">`,
		`<input type="number" step="any" name="Age"`,
		`<select name="Tag/combo"><option value="Tag/combo/red" selected>red</option><option value="Tag/combo/custom">custom</option></select>`,
		`<textarea name="Bio"></textarea>`,
		`<input type="checkbox" name="Nick/checkbox" value="1">`,
		`<button type="submit" name="__click" value="Items/Add">Add</button>`,
		`<button type="submit" name="__click" value="Items/Remove last" disabled>`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}
	if strings.Contains(page, "<b>Ann</b>") {
		t.Fatalf("markup in values must be escaped:\n%s", page)
	}
}

func TestSubmitAppliesInputs(t *testing.T) {
	value := profile{Name: "Ann", Age: 30, Tag: red{}}
	srv := newTestServer(t, newProfileView(t, &value))

	post(t, srv, url.Values{
		"Name":          {"Bo"},
		"Age":           {"31"},
		"Bio":           {"line one\r\nline two"},
		"Nick/checkbox": {"0", "1"},
	})

	if value.Name != "Bo" || value.Age != 31 {
		t.Fatalf("value = %+v", value)
	}
	if value.Bio != "line one\nline two" {
		t.Fatalf("bio = %q", value.Bio)
	}
	if value.Nick == nil || *value.Nick != "" {
		t.Fatalf("nick = %v", value.Nick)
	}
	if _, ok := value.Tag.(red); !ok {
		t.Fatalf("tag changed: %#v", value.Tag)
	}

	// An unchecked checkbox only posts its hidden field.
	post(t, srv, url.Values{"Nick/checkbox": {"0"}})
	if value.Nick != nil {
		t.Fatalf("nick = %v, want nil", *value.Nick)
	}
}

func TestSubmitSwitchesVariantAndIgnoresStaleInputs(t *testing.T) {
	value := profile{Name: "Ann", Tag: red{}}
	srv := newTestServer(t, newProfileView(t, &value))

	post(t, srv, url.Values{
		"Name":      {"Bo"},
		"Tag/combo": {"Tag/combo/custom"},
		"Bio":       {"ignored"},
	})

	if value.Name != "Bo" {
		t.Fatalf("name = %q", value.Name)
	}
	if got, ok := value.Tag.(custom); !ok || got != (custom{}) {
		t.Fatalf("tag = %#v", value.Tag)
	}
	if value.Bio != "" {
		t.Fatalf("inputs after a variant switch must be ignored, bio = %q", value.Bio)
	}

	page := get(t, srv.URL+"/")
	if !strings.Contains(page, `name="Tag/field_0"`) {
		t.Fatalf("variant body missing:\n%s", page)
	}

	// Posting the active variant again is not a switch.
	post(t, srv, url.Values{"Tag/combo": {"Tag/combo/custom"}, "Tag/field_0": {"7"}})
	if got := value.Tag.(custom); got.R != 7 {
		t.Fatalf("tag = %#v", got)
	}
}

func TestSubmitButtons(t *testing.T) {
	value := profile{Tag: red{}}
	srv := newTestServer(t, newProfileView(t, &value))

	post(t, srv, url.Values{ClickField: {"Items/Add"}})
	post(t, srv, url.Values{ClickField: {"Items/Add"}})
	if len(value.Items) != 2 {
		t.Fatalf("items = %q", value.Items)
	}

	post(t, srv, url.Values{ClickField: {"Items/Remove last"}})
	if len(value.Items) != 1 {
		t.Fatalf("items = %q", value.Items)
	}
}

func TestNilSumRendersPlaceholderOption(t *testing.T) {
	value := profile{}
	srv := newTestServer(t, newProfileView(t, &value))

	page := get(t, srv.URL+"/")
	if !strings.Contains(page, `<select name="Tag/combo"><option value="" selected>None</option>`) {
		t.Fatalf("placeholder option missing:\n%s", page)
	}

	post(t, srv, url.Values{"Tag/combo": {""}})
	if value.Tag != nil {
		t.Fatalf("tag = %#v, want nil", value.Tag)
	}
}

func TestTextEndpoint(t *testing.T) {
	value := profile{Name: "Ann", Age: 30, Tag: custom{R: 1, G: 2, B: 3}}
	srv := newTestServer(t, newProfileView(t, &value))

	text := get(t, srv.URL+"/text")
	for _, want := range []string{"Name Ann", "Age 30", "Tag custom(1, 2, 3)"} {
		if !strings.Contains(text, want) {
			t.Fatalf("text missing %q:\n%s", want, text)
		}
	}
}

func TestThemeTokensBecomeCSSVars(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"accent": "#123456",
			"border": "#cccccc",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"accent": "#654321"},
			},
		},
	}
	selection := &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}

	value := profile{Tag: red{}}
	srv := newTestServer(t, newProfileView(t, &value), WithTheme(selection), WithStylesheet(""))

	page := get(t, srv.URL+"/")
	for _, want := range []string{
		"--accent: #654321;\n  --border: #cccccc;",
		`data-theme="acme" data-variant="dark"`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}
}

func TestThemeWithoutManifestFails(t *testing.T) {
	if _, err := New(WithTheme(&theme.Selection{Theme: "ghost"})); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	host, err := New(WithAddr("127.0.0.1:0"))
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := host.Run(ctx, render.View{}); err != nil {
		t.Fatalf("run: %v", err)
	}
}

type tone interface{ isTone() }

type warm struct {
	_ struct{} `inspect:"display='Same'"`
}

type cool struct {
	_     struct{} `inspect:"display='Same'"`
	Level int8
}

func (warm) isTone() {}
func (cool) isTone() {}

type palette struct {
	Tone tone
}

func TestComboEntriesWithSharedCaptionStayDistinct(t *testing.T) {
	sums := model.NewSumRegistry()
	if err := model.DeclareSumIn[tone](sums, warm{}, cool{}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	inspector, err := generator.For[palette](generator.New(generator.WithSums(sums)))
	if err != nil {
		t.Fatalf("for: %v", err)
	}
	value := palette{Tone: warm{}}
	srv := newTestServer(t, inspector.View("Palette", &value))

	page := get(t, srv.URL+"/")
	want := `<option value="Tone/combo/Same" selected>Same</option><option value="Tone/combo/Same#2">Same</option>`
	if !strings.Contains(page, want) {
		t.Fatalf("page missing %q:\n%s", want, page)
	}

	post(t, srv, url.Values{"Tone/combo": {"Tone/combo/Same#2"}})
	if _, ok := value.Tone.(cool); !ok {
		t.Fatalf("tone = %#v, want cool", value.Tone)
	}
}
