// Package testsupport drives generated views through the headless recorder so
// tests can script edits without a toolkit.
package testsupport

import (
	"testing"

	"github.com/goliatone/go-inspect/pkg/render"
	"github.com/goliatone/go-inspect/pkg/renderers/headless"
)

// Input queues one user action on a recorder before the next frame.
type Input func(*headless.Recorder)

// SetText types text into the field with the given id.
func SetText(id, text string) Input {
	return func(r *headless.Recorder) { r.SetText(id, text) }
}

// SetCheck sets the checkbox with the given id.
func SetCheck(id string, checked bool) Input {
	return func(r *headless.Recorder) { r.SetCheck(id, checked) }
}

// SetValue moves the stepper with the given id.
func SetValue(id string, value float64) Input {
	return func(r *headless.Recorder) { r.SetValue(id, value) }
}

// Click presses the button or selectable with the given id.
func Click(id string) Input {
	return func(r *headless.Recorder) { r.Click(id) }
}

// EditFrame queues inputs on rec and draws one edit frame of view.
func EditFrame(rec *headless.Recorder, view render.View, inputs ...Input) *headless.Node {
	for _, in := range inputs {
		if in != nil {
			in(rec)
		}
	}
	return rec.Frame(view.Edit)
}

// Edit runs one edit frame per step on a fresh recorder and returns it
// positioned after the last frame. A nil step draws a frame without input.
func Edit(view render.View, steps ...[]Input) *headless.Recorder {
	rec := headless.New()
	if len(steps) == 0 {
		rec.Frame(view.Edit)
		return rec
	}
	for _, step := range steps {
		EditFrame(rec, view, step...)
	}
	return rec
}

// Steps groups inputs into a single frame step for Edit.
func Steps(inputs ...Input) []Input {
	return inputs
}

// PresentText draws the present side of view and returns its headless text.
func PresentText(view render.View) string {
	rec := headless.New()
	rec.Frame(view.Present)
	return rec.Text()
}

// MustFind returns the widget with id from the last frame of rec.
func MustFind(t testing.TB, rec *headless.Recorder, id string) *headless.Node {
	t.Helper()
	node := rec.Find(id)
	if node == nil {
		t.Fatalf("widget %q not drawn; ids: %v", id, rec.IDs())
	}
	return node
}
