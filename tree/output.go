package tree

import "strings"

// MemList is a mutable list of text fragments accumulated within one
// output frame. Keeping fragments as separate strings (rather than
// concatenating eagerly) lets Trim/Reset operate cheaply on the tail of
// a frame without rescanning everything that came before it.
type MemList struct {
	parts []string
}

func (m *MemList) Append(s string) {
	if s == "" {
		return
	}
	m.parts = append(m.parts, s)
}

func (m *MemList) String() string {
	return strings.Join(m.parts, "")
}

func (m *MemList) Empty() bool {
	for _, p := range m.parts {
		if p != "" {
			return false
		}
	}
	return true
}

// Output owns a stack of MemList frames. Node.AppendCSS implementations
// write into the top frame; Push/Pop/PopAndAppend let a caller capture a
// sub-tree's CSS in isolation (e.g. to post-process it, or to measure
// whether a ruleset produced any output at all before deciding whether
// to emit its selector).
type Output struct {
	frames []*MemList
}

func NewOutput() *Output {
	return &Output{frames: []*MemList{{}}}
}

func (o *Output) top() *MemList {
	return o.frames[len(o.frames)-1]
}

// Push starts a fresh fragment frame.
func (o *Output) Push() {
	o.frames = append(o.frames, &MemList{})
}

// Pop removes and returns the top frame's text.
func (o *Output) Pop() string {
	n := len(o.frames)
	top := o.frames[n-1]
	o.frames = o.frames[:n-1]
	return top.String()
}

// PopAndAppend merges the popped frame's text into its new parent top.
func (o *Output) PopAndAppend() {
	s := o.Pop()
	o.top().Append(s)
}

// Append accumulates raw text into the current frame.
func (o *Output) Append(s string) {
	o.top().Append(s)
}

// AppendNode appends a node's PreComments, its own CSS, then its
// PostComments, via AppendCSS.
func (o *Output) AppendNode(env *Env, n Node) error {
	if n == nil {
		return nil
	}
	if c, ok := n.(Commented); ok {
		pre, post := c.Comments()
		for _, cm := range pre {
			if cm.shouldEmit() {
				o.Append(cm.Text)
				o.Append(" ")
			}
		}
		if err := n.AppendCSS(env); err != nil {
			return err
		}
		for _, cm := range post {
			if cm.shouldEmit() {
				o.Append(" ")
				o.Append(cm.Text)
			}
		}
		return nil
	}
	return n.AppendCSS(env)
}

// AppendMany appends each item's CSS, inserting separator lazily between
// items (never trailing, never leading).
func (o *Output) AppendMany(env *Env, items []Node, separator string) error {
	first := true
	for _, it := range items {
		if it == nil {
			continue
		}
		if !first {
			o.Append(separator)
		}
		first = false
		if err := o.AppendNode(env, it); err != nil {
			return err
		}
	}
	return nil
}

// Indent prefixes and re-indents every newline in the current frame.
func (o *Output) Indent(n int) {
	prefix := strings.Repeat(" ", n)
	top := o.top()
	for i, p := range top.parts {
		top.parts[i] = strings.ReplaceAll(p, "\n", "\n"+prefix)
	}
}

// TrimRight drops trailing occurrences of ch from the current frame,
// removing now-empty fragments.
func (o *Output) TrimRight(ch byte) {
	top := o.top()
	for len(top.parts) > 0 {
		last := top.parts[len(top.parts)-1]
		trimmed := strings.TrimRight(last, string(ch))
		if trimmed == "" {
			top.parts = top.parts[:len(top.parts)-1]
			continue
		}
		if trimmed != last {
			top.parts[len(top.parts)-1] = trimmed
		}
		break
	}
}

// TrimLeft drops leading occurrences of ch from the current frame.
func (o *Output) TrimLeft(ch byte) {
	top := o.top()
	for len(top.parts) > 0 {
		first := top.parts[0]
		trimmed := strings.TrimLeft(first, string(ch))
		if trimmed == "" {
			top.parts = top.parts[1:]
			continue
		}
		if trimmed != first {
			top.parts[0] = trimmed
		}
		break
	}
}

// Trim applies TrimLeft then TrimRight.
func (o *Output) Trim(ch byte) {
	o.TrimLeft(ch)
	o.TrimRight(ch)
}

// Reset replaces the current frame with a single string, used for
// post-hoc whitespace compression of an already-rendered fragment.
func (o *Output) Reset(s string) {
	o.frames[len(o.frames)-1] = &MemList{parts: []string{s}}
}

// String returns the bottom (root) frame's accumulated text. Call once,
// after evaluation/emission is complete.
func (o *Output) String() string {
	return o.frames[0].String()
}
