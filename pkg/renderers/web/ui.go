package web

import (
	"bytes"
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-inspect/pkg/render"
)

// ClickField is the form field carrying the id of the pressed button.
const ClickField = "__click"

// formUI renders one frame as HTML form controls named by widget id. When a
// submission is attached, each widget returns its submitted value. After the
// first structural change (a click or a new combo choice) the rest of the
// frame no longer matches what the browser showed, so later widgets keep
// their current values.
type formUI struct {
	scope  *render.Scope
	policy *bluemonday.Policy
	form   url.Values
	click  string
	stale  bool
	combos []comboState
	buf    bytes.Buffer
}

type comboState struct {
	id       string
	posted   string
	hasValue bool
	selected bool
}

var _ render.UI = (*formUI)(nil)

func newFormUI(policy *bluemonday.Policy, form url.Values) *formUI {
	u := &formUI{
		scope:  render.NewScope(),
		policy: policy,
		form:   form,
	}
	if form != nil {
		u.click = form.Get(ClickField)
	}
	return u
}

// HTML returns the markup drawn so far.
func (u *formUI) HTML() string {
	return u.buf.String()
}

func (u *formUI) text(s string) string {
	return u.policy.Sanitize(s)
}

func attr(s string) string {
	return html.EscapeString(s)
}

// submitted returns the last value posted for id. Checkboxes post a hidden
// "0" before the checkbox itself, so the last value wins.
func (u *formUI) submitted(id string) (string, bool) {
	if u.form == nil || u.stale {
		return "", false
	}
	values, ok := u.form[id]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}

func (u *formUI) clicked(id string) bool {
	if u.form == nil || u.stale || u.click != id {
		return false
	}
	u.stale = true
	return true
}

func (u *formUI) Label(text string) {
	u.scope.Caption(text)
	u.buf.WriteString(`<span class="label">` + u.text(text) + `</span>`)
}

func (u *formUI) TextEdit(text string) string {
	id := u.scope.Leaf("", "text")
	if posted, ok := u.submitted(id); ok {
		text = posted
	}
	u.buf.WriteString(`<input type="text" name="` + attr(id) + `" value="` + attr(text) + `">`)
	return text
}

func (u *formUI) TextEditMultiline(text string) string {
	id := u.scope.Leaf("", "multiline")
	if posted, ok := u.submitted(id); ok {
		text = strings.ReplaceAll(posted, "\r\n", "\n")
	}
	u.buf.WriteString(`<textarea name="` + attr(id) + `">` + attr(text) + `</textarea>`)
	return text
}

func (u *formUI) Checkbox(checked bool, text string) bool {
	id := u.scope.Leaf(text, "checkbox")
	if posted, ok := u.submitted(id); ok {
		checked = posted == "1"
	}
	name := attr(id)
	u.buf.WriteString(`<label class="checkbox"><input type="hidden" name="` + name + `" value="0">`)
	u.buf.WriteString(`<input type="checkbox" name="` + name + `" value="1"`)
	if checked {
		u.buf.WriteString(` checked`)
	}
	u.buf.WriteString(`>` + u.text(text) + `</label>`)
	return checked
}

func (u *formUI) DragValue(value, min, max float64) float64 {
	id := u.scope.Leaf("", "drag")
	if posted, ok := u.submitted(id); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(posted), 64); err == nil {
			value = parsed
		}
	}
	u.buf.WriteString(`<input type="number" step="any" name="` + attr(id) + `"`)
	u.buf.WriteString(` min="` + formatFloat(min) + `" max="` + formatFloat(max) + `"`)
	u.buf.WriteString(` value="` + formatFloat(value) + `">`)
	return value
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (u *formUI) Button(text string, enabled bool) bool {
	id := u.scope.Leaf(text, "button")
	u.buf.WriteString(`<button type="submit" name="` + ClickField + `" value="` + attr(id) + `"`)
	if !enabled {
		u.buf.WriteString(` disabled`)
	}
	u.buf.WriteString(`>` + u.text(text) + `</button>`)
	return enabled && u.clicked(id)
}

// Selectable inside a combo box becomes an <option> whose value is its widget
// id, so entries sharing a caption stay distinct; elsewhere it is a submit
// button marked when selected.
func (u *formUI) Selectable(selected bool, text string) bool {
	id := u.scope.Leaf(text, "selectable")
	if n := len(u.combos); n > 0 {
		combo := &u.combos[n-1]
		u.buf.WriteString(`<option value="` + attr(id) + `"`)
		if selected {
			combo.selected = true
			u.buf.WriteString(` selected`)
		}
		u.buf.WriteString(`>` + u.text(text) + `</option>`)
		if !combo.hasValue || combo.posted != id || selected {
			return false
		}
		combo.hasValue = false
		u.stale = true
		return true
	}

	class := "selectable"
	if selected {
		class += " selected"
	}
	u.buf.WriteString(`<button type="submit" class="` + class + `" name="` + ClickField + `" value="` + attr(id) + `">`)
	u.buf.WriteString(u.text(text) + `</button>`)
	return u.clicked(id)
}

func (u *formUI) Separator() {
	u.buf.WriteString(`<hr>`)
}

func (u *formUI) Horizontal(add func(render.UI)) {
	u.container(`<div class="row">`, `</div>`, add)
}

func (u *formUI) Vertical(add func(render.UI)) {
	u.container(`<div class="column">`, `</div>`, add)
}

func (u *formUI) Group(add func(render.UI)) {
	u.container(`<fieldset class="group">`, `</fieldset>`, add)
}

func (u *formUI) Scroll(add func(render.UI)) {
	u.container(`<div class="scroll">`, `</div>`, add)
}

func (u *formUI) container(open, close string, add func(render.UI)) {
	u.scope.Push()
	defer u.scope.Pop()
	u.buf.WriteString(open)
	if add != nil {
		add(u)
	}
	u.buf.WriteString(close)
}

func (u *formUI) Combo(selectedText string, add func(render.UI)) {
	id := u.scope.Leaf("", "combo")
	state := comboState{id: id}
	state.posted, state.hasValue = u.submitted(id)

	u.scope.PushAt(id)
	u.combos = append(u.combos, state)
	defer func() {
		u.combos = u.combos[:len(u.combos)-1]
		u.scope.Pop()
	}()

	u.buf.WriteString(`<select name="` + attr(id) + `">`)
	start := u.buf.Len()
	if add != nil {
		add(u)
	}
	// Without a selected entry the browser would post the first one.
	if !u.combos[len(u.combos)-1].selected {
		entries := string(u.buf.Bytes()[start:])
		u.buf.Truncate(start)
		u.buf.WriteString(`<option value="" selected>` + u.text(selectedText) + `</option>`)
		u.buf.WriteString(entries)
	}
	u.buf.WriteString(`</select>`)
}
