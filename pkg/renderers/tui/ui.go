package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-inspect/pkg/render"
)

// promptUI turns one edit frame into a sequence of prompts. Every input
// widget becomes a prompt named by its widget id; layout calls only shape
// the ids. After the first driver error the remaining widgets keep their
// current values and Err reports the failure.
type promptUI struct {
	ctx    context.Context
	driver PromptDriver
	theme  Theme
	scope  *render.Scope
	err    error
}

var _ render.UI = (*promptUI)(nil)

func newPromptUI(ctx context.Context, driver PromptDriver, theme Theme) *promptUI {
	return &promptUI{
		ctx:    ctx,
		driver: driver,
		theme:  theme,
		scope:  render.NewScope(),
	}
}

// Err returns the first prompt failure of the frame.
func (u *promptUI) Err() error {
	return u.err
}

func (u *promptUI) message(id string) string {
	return u.theme.PromptPrefix + id
}

func (u *promptUI) fail(err error) {
	if u.err == nil && err != nil {
		u.err = err
	}
}

func (u *promptUI) Label(text string) {
	u.scope.Caption(text)
}

func (u *promptUI) TextEdit(text string) string {
	id := u.scope.Leaf("", "text")
	if u.err != nil {
		return text
	}
	out, err := u.driver.Input(u.ctx, InputConfig{Message: u.message(id), Default: text})
	if err != nil {
		u.fail(err)
		return text
	}
	return out
}

func (u *promptUI) TextEditMultiline(text string) string {
	id := u.scope.Leaf("", "multiline")
	if u.err != nil {
		return text
	}
	out, err := u.driver.TextArea(u.ctx, TextAreaConfig{Message: u.message(id), Default: text})
	if err != nil {
		u.fail(err)
		return text
	}
	return out
}

func (u *promptUI) Checkbox(checked bool, text string) bool {
	id := u.scope.Leaf(text, "checkbox")
	if u.err != nil {
		return checked
	}
	out, err := u.driver.Confirm(u.ctx, ConfirmConfig{Message: u.message(id), Default: checked})
	if err != nil {
		u.fail(err)
		return checked
	}
	return out
}

func (u *promptUI) DragValue(value, min, max float64) float64 {
	id := u.scope.Leaf("", "drag")
	if u.err != nil {
		return value
	}
	out, err := u.driver.Input(u.ctx, InputConfig{
		Message:   u.message(id),
		Default:   strconv.FormatFloat(value, 'g', -1, 64),
		Help:      fmt.Sprintf("number between %g and %g", min, max),
		Validator: rangeValidator(min, max),
	})
	if err != nil {
		u.fail(err)
		return value
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return value
	}
	return parsed
}

func (u *promptUI) Button(text string, enabled bool) bool {
	id := u.scope.Leaf(text, "button")
	if u.err != nil || !enabled {
		return false
	}
	out, err := u.driver.Confirm(u.ctx, ConfirmConfig{Message: u.message(id) + "?"})
	if err != nil {
		u.fail(err)
		return false
	}
	return out
}

// Selectable outside a combo box is asked as a yes/no question.
func (u *promptUI) Selectable(selected bool, text string) bool {
	id := u.scope.Leaf(text, "selectable")
	if u.err != nil {
		return false
	}
	out, err := u.driver.Confirm(u.ctx, ConfirmConfig{Message: u.message(id) + "?", Default: selected})
	if err != nil {
		u.fail(err)
		return false
	}
	return out && !selected
}

func (u *promptUI) Separator() {}

func (u *promptUI) Horizontal(add func(render.UI)) { u.container(add) }

func (u *promptUI) Vertical(add func(render.UI)) { u.container(add) }

func (u *promptUI) Group(add func(render.UI)) { u.container(add) }

func (u *promptUI) Scroll(add func(render.UI)) { u.container(add) }

func (u *promptUI) container(add func(render.UI)) {
	u.scope.Push()
	defer u.scope.Pop()
	if add != nil {
		add(u)
	}
}

// Combo runs add twice: once to collect the entries for a select prompt, and
// once to replay the chosen entry as clicked.
func (u *promptUI) Combo(selectedText string, add func(render.UI)) {
	id := u.scope.Leaf("", "combo")
	if add == nil {
		return
	}

	entries := &comboCollector{selected: -1}
	add(entries)
	if u.err != nil || len(entries.options) == 0 {
		return
	}

	// With no entry selected the current value is kept behind a leading
	// placeholder, so accepting the default changes nothing.
	options, offset, defaultIdx := entries.options, 0, entries.selected
	if defaultIdx < 0 {
		placeholder := strings.TrimSpace(selectedText)
		if placeholder == "" {
			placeholder = "None"
		}
		options = append([]string{placeholder}, entries.options...)
		offset, defaultIdx = 1, 0
	}

	idx, err := u.driver.Select(u.ctx, SelectConfig{
		Message:      u.message(id),
		Options:      options,
		DefaultIndex: defaultIdx,
		Help:         "current: " + selectedText,
	})
	if err != nil {
		u.fail(err)
		return
	}
	idx -= offset
	if idx < 0 || idx >= len(entries.options) {
		return
	}
	add(&comboReplay{chosen: idx})
}

// nullUI draws nothing and returns every input unchanged.
type nullUI struct{}

func (nullUI) Label(string) {}
func (nullUI) TextEdit(text string) string { return text }
func (nullUI) TextEditMultiline(text string) string { return text }
func (nullUI) Checkbox(checked bool, _ string) bool { return checked }
func (nullUI) DragValue(value, _, _ float64) float64 { return value }
func (nullUI) Button(string, bool) bool { return false }
func (nullUI) Selectable(bool, string) bool { return false }
func (nullUI) Separator() {}
func (nullUI) Horizontal(func(render.UI)) {}
func (nullUI) Vertical(func(render.UI)) {}
func (nullUI) Group(func(render.UI)) {}
func (nullUI) Scroll(func(render.UI)) {}
func (nullUI) Combo(string, func(render.UI)) {}

// comboCollector records Selectable entries and ignores everything else.
type comboCollector struct {
	nullUI
	options  []string
	selected int
}

func (c *comboCollector) Selectable(selected bool, text string) bool {
	if selected {
		c.selected = len(c.options)
	}
	c.options = append(c.options, text)
	return false
}

func (c *comboCollector) Horizontal(add func(render.UI)) { add(c) }
func (c *comboCollector) Vertical(add func(render.UI)) { add(c) }
func (c *comboCollector) Group(add func(render.UI)) { add(c) }
func (c *comboCollector) Scroll(add func(render.UI)) { add(c) }

// comboReplay reports a click on the chosen entry only.
type comboReplay struct {
	nullUI
	chosen int
	seen   int
}

func (c *comboReplay) Selectable(_ bool, _ string) bool {
	hit := c.seen == c.chosen
	c.seen++
	return hit
}

func (c *comboReplay) Horizontal(add func(render.UI)) { add(c) }
func (c *comboReplay) Vertical(add func(render.UI)) { add(c) }
func (c *comboReplay) Group(add func(render.UI)) { add(c) }
func (c *comboReplay) Scroll(add func(render.UI)) { add(c) }

func rangeValidator(min, max float64) func(string) error {
	return func(raw string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", raw)
		}
		if v < min || v > max {
			return fmt.Errorf("%g is outside [%g, %g]", v, min, max)
		}
		return nil
	}
}
