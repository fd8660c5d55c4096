package pongo

import (
	"bytes"
	"testing"
	"testing/fstest"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name|trim }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"escape.tmpl":     {Data: []byte("{{ raw }}|{{ raw|safe }}")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var written bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "  Ada "}, &written)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" {
		t.Fatalf("result = %q", result)
	}
	if written.String() != result {
		t.Fatalf("writer got %q", written.String())
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global.tmpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("result = %q", result)
	}
}

func TestEngineAutoescapes(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("escape", map[string]any{"raw": "<b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "&lt;b&gt;|<b>" {
		t.Fatalf("result = %q", result)
	}
}

func TestEngineRenderString(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderString("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "x"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "1-x" {
		t.Fatalf("result = %q", result)
	}
}

func TestEngineErrors(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error without a template source")
	}
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatal("expected error for a missing template")
	}
	if _, err := engine.RenderTemplate("hello", struct{}{}); err == nil {
		t.Fatal("expected error for unsupported data")
	}
}
