package render

import (
	"strconv"
	"strings"
)

// IDSeparator joins the segments of a widget id.
const IDSeparator = "/"

// Scope derives deterministic widget ids for one frame. Hosts that need to
// address widgets across frames (scripted input, HTML forms, prompts) share
// these rules:
//
//   - a container opened in a frame inherits the frame prefix joined with the
//     frame caption, the text of the last Label emitted directly in it;
//   - a leaf is named by its own text when it has one, else by the frame
//     caption, else by its kind;
//   - a combo box is a leaf; its entries live under the combo's id;
//   - repeated ids within one frame get "#2", "#3" suffixes.
type Scope struct {
	frames []scopeFrame
	seen   map[string]int
}

type scopeFrame struct {
	prefix  string
	caption string
}

// NewScope returns a scope positioned at the root of a frame.
func NewScope() *Scope {
	s := &Scope{}
	s.Reset()
	return s
}

// Reset starts a new frame.
func (s *Scope) Reset() {
	s.frames = []scopeFrame{{}}
	s.seen = make(map[string]int)
}

// Caption records a label emitted in the current frame.
func (s *Scope) Caption(text string) {
	s.top().caption = text
}

// Push opens a container and returns its prefix.
func (s *Scope) Push() string {
	top := s.top()
	prefix := JoinID(top.prefix, top.caption)
	s.frames = append(s.frames, scopeFrame{prefix: prefix})
	return prefix
}

// PushAt opens a container under an explicit prefix. Combo boxes use their own
// id so their entries read "<combo id>/<entry text>".
func (s *Scope) PushAt(prefix string) {
	s.frames = append(s.frames, scopeFrame{prefix: prefix})
}

// Pop closes the innermost container. The root frame is never popped.
func (s *Scope) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Leaf allocates the id of a widget drawn in the current frame.
func (s *Scope) Leaf(text, kind string) string {
	top := s.top()
	name := strings.TrimSpace(text)
	if name == "" {
		name = top.caption
	}
	if name == "" {
		name = kind
	}
	id := JoinID(top.prefix, name)
	s.seen[id]++
	if n := s.seen[id]; n > 1 {
		id += "#" + strconv.Itoa(n)
	}
	return id
}

// Depth reports the number of open containers.
func (s *Scope) Depth() int {
	return len(s.frames) - 1
}

func (s *Scope) top() *scopeFrame {
	if len(s.frames) == 0 {
		s.Reset()
	}
	return &s.frames[len(s.frames)-1]
}

// JoinID joins non-empty id segments.
func JoinID(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, IDSeparator)
}
