package headless

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-inspect/pkg/render"
)

// Node kinds recorded by the Recorder.
const (
	KindRoot       = "root"
	KindLabel      = "label"
	KindText       = "text"
	KindMultiline  = "multiline"
	KindCheckbox   = "checkbox"
	KindDrag       = "drag"
	KindButton     = "button"
	KindSelectable = "selectable"
	KindSeparator  = "separator"
	KindHorizontal = "horizontal"
	KindVertical   = "vertical"
	KindGroup      = "group"
	KindScroll     = "scroll"
	KindCombo      = "combo"
)

// Node is one recorded widget. Containers carry their children; leaves carry
// the state they were drawn with.
type Node struct {
	Kind     string
	ID       string
	Text     string
	Checked  bool
	Value    float64
	Min      float64
	Max      float64
	Enabled  bool
	Selected bool
	Children []*Node
}

type input struct {
	text    *string
	checked *bool
	value   *float64
	click   bool
}

// Recorder is an in-memory render.UI. Each Frame records the widget tree and
// feeds it the inputs queued since the previous frame, addressed by widget
// id.
type Recorder struct {
	scope   *render.Scope
	root    *Node
	stack   []*Node
	pending map[string]input
	ids     []string
}

var _ render.UI = (*Recorder)(nil)

// New returns an empty recorder.
func New() *Recorder {
	r := &Recorder{
		scope:   render.NewScope(),
		pending: make(map[string]input),
	}
	r.reset()
	return r
}

// Frame draws one frame. Queued inputs are consumed whether or not a widget
// with a matching id was drawn.
func (r *Recorder) Frame(draw func(render.UI)) *Node {
	r.reset()
	if draw != nil {
		draw(r)
	}
	r.pending = make(map[string]input)
	return r.root
}

// SetText queues text for the text field with the given id.
func (r *Recorder) SetText(id, text string) *Recorder {
	in := r.pending[id]
	in.text = &text
	r.pending[id] = in
	return r
}

// SetCheck queues a checkbox state.
func (r *Recorder) SetCheck(id string, checked bool) *Recorder {
	in := r.pending[id]
	in.checked = &checked
	r.pending[id] = in
	return r
}

// SetValue queues a stepper value.
func (r *Recorder) SetValue(id string, value float64) *Recorder {
	in := r.pending[id]
	in.value = &value
	r.pending[id] = in
	return r
}

// Click queues a click on a button or selectable.
func (r *Recorder) Click(id string) *Recorder {
	in := r.pending[id]
	in.click = true
	r.pending[id] = in
	return r
}

// Root returns the tree of the last frame.
func (r *Recorder) Root() *Node {
	return r.root
}

// IDs lists the widget ids of the last frame in drawing order.
func (r *Recorder) IDs() []string {
	return append([]string(nil), r.ids...)
}

// Find returns the widget with the given id from the last frame.
func (r *Recorder) Find(id string) *Node {
	var found *Node
	walk(r.root, func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Labels returns the text of every label of the last frame in drawing order.
func (r *Recorder) Labels() []string {
	var out []string
	walk(r.root, func(n *Node) bool {
		if n.Kind == KindLabel {
			out = append(out, n.Text)
		}
		return true
	})
	return out
}

// Label draws static text.
func (r *Recorder) Label(text string) {
	r.scope.Caption(text)
	r.add(&Node{Kind: KindLabel, Text: text})
}

// TextEdit draws a text field.
func (r *Recorder) TextEdit(text string) string {
	return r.textField(KindText, text)
}

// TextEditMultiline draws a multi-line text field.
func (r *Recorder) TextEditMultiline(text string) string {
	return r.textField(KindMultiline, text)
}

func (r *Recorder) textField(kind, text string) string {
	id := r.leaf("", kind)
	r.add(&Node{Kind: kind, ID: id, Text: text, Enabled: true})
	if in, ok := r.pending[id]; ok && in.text != nil {
		return *in.text
	}
	return text
}

// Checkbox draws a checkbox.
func (r *Recorder) Checkbox(checked bool, text string) bool {
	id := r.leaf(text, KindCheckbox)
	r.add(&Node{Kind: KindCheckbox, ID: id, Text: text, Checked: checked, Enabled: true})
	if in, ok := r.pending[id]; ok && in.checked != nil {
		return *in.checked
	}
	return checked
}

// DragValue draws a stepper.
func (r *Recorder) DragValue(value, min, max float64) float64 {
	id := r.leaf("", KindDrag)
	r.add(&Node{Kind: KindDrag, ID: id, Value: value, Min: min, Max: max, Enabled: true})
	if in, ok := r.pending[id]; ok && in.value != nil {
		return *in.value
	}
	return value
}

// Button draws a button. Clicks on disabled buttons are dropped.
func (r *Recorder) Button(text string, enabled bool) bool {
	id := r.leaf(text, KindButton)
	r.add(&Node{Kind: KindButton, ID: id, Text: text, Enabled: enabled})
	return enabled && r.pending[id].click
}

// Selectable draws a selectable entry.
func (r *Recorder) Selectable(selected bool, text string) bool {
	id := r.leaf(text, KindSelectable)
	r.add(&Node{Kind: KindSelectable, ID: id, Text: text, Selected: selected, Enabled: true})
	return r.pending[id].click
}

// Separator draws a divider.
func (r *Recorder) Separator() {
	r.add(&Node{Kind: KindSeparator})
}

// Horizontal records a horizontal container.
func (r *Recorder) Horizontal(add func(render.UI)) {
	r.container(KindHorizontal, add)
}

// Vertical records a vertical container.
func (r *Recorder) Vertical(add func(render.UI)) {
	r.container(KindVertical, add)
}

// Group records a framed group.
func (r *Recorder) Group(add func(render.UI)) {
	r.container(KindGroup, add)
}

// Scroll records a scroll area.
func (r *Recorder) Scroll(add func(render.UI)) {
	r.container(KindScroll, add)
}

// Combo records a drop-down; its entries are children of the node.
func (r *Recorder) Combo(selectedText string, add func(render.UI)) {
	id := r.leaf("", KindCombo)
	node := &Node{Kind: KindCombo, ID: id, Text: selectedText, Enabled: true}
	r.add(node)
	r.scope.PushAt(id)
	r.stack = append(r.stack, node)
	defer r.pop()
	if add != nil {
		add(r)
	}
}

func (r *Recorder) container(kind string, add func(render.UI)) {
	r.scope.Push()
	node := &Node{Kind: kind}
	r.add(node)
	r.stack = append(r.stack, node)
	defer r.pop()
	if add != nil {
		add(r)
	}
}

func (r *Recorder) pop() {
	r.scope.Pop()
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

func (r *Recorder) leaf(text, kind string) string {
	id := r.scope.Leaf(text, kind)
	r.ids = append(r.ids, id)
	return id
}

func (r *Recorder) add(n *Node) {
	parent := r.stack[len(r.stack)-1]
	parent.Children = append(parent.Children, n)
}

func (r *Recorder) reset() {
	r.scope.Reset()
	r.root = &Node{Kind: KindRoot}
	r.stack = []*Node{r.root}
	r.ids = nil
}

func walk(n *Node, visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, child := range n.Children {
		if !walk(child, visit) {
			return false
		}
	}
	return true
}

// Dump renders the last frame's tree, one node per line, for tests and
// debugging.
func (r *Recorder) Dump() string {
	var b strings.Builder
	dumpNode(&b, r.root, 0)
	return b.String()
}

func dumpNode(b *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	if n.Kind != KindRoot {
		b.WriteString(strings.Repeat("  ", depth-1))
		b.WriteString(n.Kind)
		if n.ID != "" {
			fmt.Fprintf(b, " [%s]", n.ID)
		}
		switch n.Kind {
		case KindLabel, KindText, KindMultiline, KindCombo:
			fmt.Fprintf(b, " %q", n.Text)
		case KindCheckbox:
			fmt.Fprintf(b, " %t", n.Checked)
		case KindDrag:
			fmt.Fprintf(b, " %s", formatFloat(n.Value))
		case KindButton:
			fmt.Fprintf(b, " %q", n.Text)
			if !n.Enabled {
				b.WriteString(" disabled")
			}
		case KindSelectable:
			fmt.Fprintf(b, " %q", n.Text)
			if n.Selected {
				b.WriteString(" selected")
			}
		}
		b.WriteByte('\n')
	}
	for _, child := range n.Children {
		dumpNode(b, child, depth+1)
	}
}

// Text renders the last frame as plain text: horizontal containers on one
// line, everything else one item per line, groups indented.
func (r *Recorder) Text() string {
	var lines []string
	textLines(r.root, 0, &lines)
	return strings.Join(lines, "\n")
}

func textLines(n *Node, indent int, lines *[]string) {
	pad := strings.Repeat("  ", indent)
	switch n.Kind {
	case KindHorizontal:
		if line := inline(n); line != "" {
			*lines = append(*lines, pad+line)
		}
		return
	case KindGroup:
		for _, child := range n.Children {
			textLines(child, indent+1, lines)
		}
		return
	case KindRoot, KindVertical, KindScroll:
		for _, child := range n.Children {
			textLines(child, indent, lines)
		}
		return
	case KindSeparator:
		*lines = append(*lines, pad+"---")
		return
	}
	if line := inline(n); line != "" {
		*lines = append(*lines, pad+line)
	}
}

// inline flattens a subtree onto one line. Nested vertical content is joined
// with "; ".
func inline(n *Node) string {
	switch n.Kind {
	case KindLabel:
		return n.Text
	case KindText, KindMultiline:
		return strconv.Quote(n.Text)
	case KindCheckbox:
		mark := "[ ]"
		if n.Checked {
			mark = "[x]"
		}
		return strings.TrimSpace(mark + " " + n.Text)
	case KindDrag:
		return formatFloat(n.Value)
	case KindButton:
		return "<" + n.Text + ">"
	case KindSelectable:
		return n.Text
	case KindSeparator:
		return "|"
	case KindCombo:
		return n.Text + " v"
	}
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		if part := inline(child); part != "" {
			parts = append(parts, part)
		}
	}
	sep := " "
	if n.Kind == KindVertical || n.Kind == KindGroup {
		sep = "; "
	}
	return strings.Join(parts, sep)
}

func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Inputs reports the ids with queued input, sorted.
func (r *Recorder) Inputs() []string {
	out := make([]string, 0, len(r.pending))
	for id := range r.pending {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
