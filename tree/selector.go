package tree

import intstrings "github.com/titpetric/lessgo-core/internal/strings"

// Combinator is a normalized selector combinator symbol: one of
// `" "`, `"+"`, `">"`, `"~"`, or `""` (no explicit combinator, i.e. the
// first element of a selector).
type Combinator string

// Normalize trims stray whitespace around an explicit combinator symbol
// while preserving a bare descendant space.
func (c Combinator) Normalize() string {
	s := intstrings.TrimSpace(string(c))
	if s == "" {
		return string(c)
	}
	return s
}

// Element is one step of a Selector: an optional combinator plus the
// element's own text (a compound like ".foo.bar:hover" or "&").
type Element struct {
	Base
	Combinator Combinator
	Value      Node
}

func NewElement(combinator Combinator, value Node) *Element {
	return &Element{Combinator: combinator, Value: value}
}

func (el *Element) Clone() Node {
	n := *el
	n.Base = el.cloneBase()
	if el.Value != nil {
		n.Value = el.Value.Clone()
	}
	return &n
}

func (el *Element) Evaluate(env *Env) (Node, error) {
	if el.Value == nil {
		return el, nil
	}
	v, err := el.Value.Evaluate(env)
	if err != nil {
		return nil, err
	}
	return &Element{Base: el.Base, Combinator: el.Combinator, Value: v}, nil
}

func (el *Element) AppendCSS(env *Env) error {
	comb := el.Combinator.Normalize()
	if comb != "" {
		if env.Compress {
			env.Out.Append(comb)
		} else if comb == " " {
			env.Out.Append(" ")
		} else {
			env.Out.Append(" " + comb + " ")
		}
	}
	return env.Out.AppendNode(env, el.Value)
}

func (el *Element) Accept(v Visitor) Node {
	if el.Value != nil {
		el.Value = el.Value.Accept(v)
	}
	return v(el)
}

// Text returns the element's rendered text, used by extend matching and
// selector-path bookkeeping for mixin calls.
func (el *Element) Text(env *Env) string {
	return stringifyNode(el.Value, env)
}

// Selector is an ordered list of Elements (one comma-separated branch of
// a ruleset's selector list).
type Selector struct {
	Base
	Elements []*Element

	// Extends is copied by Clone and Evaluate but never set by the
	// parser: both `sel:extend(...)` and `&:extend(...)` are parsed into
	// standalone Extend nodes in the ruleset body.
	Extends []*Extend
}

func NewSelector(elements []*Element) *Selector { return &Selector{Elements: elements} }

func (s *Selector) Clone() Node {
	n := *s
	n.Base = s.cloneBase()
	els := make([]*Element, len(s.Elements))
	for i, e := range s.Elements {
		els[i] = e.Clone().(*Element)
	}
	n.Elements = els
	return &n
}

func (s *Selector) Evaluate(env *Env) (Node, error) {
	els := make([]*Element, len(s.Elements))
	for i, e := range s.Elements {
		v, err := e.Evaluate(env)
		if err != nil {
			return nil, err
		}
		els[i] = v.(*Element)
	}
	return &Selector{Base: s.Base, Elements: els, Extends: s.Extends}, nil
}

func (s *Selector) AppendCSS(env *Env) error {
	for i, e := range s.Elements {
		if i > 0 && e.Combinator == "" {
			env.Out.Append(" ")
		}
		if err := env.Out.AppendNode(env, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *Selector) Accept(v Visitor) Node {
	for i, e := range s.Elements {
		s.Elements[i] = e.Accept(v).(*Element)
	}
	return v(s)
}

// CSSText renders the selector's CSS form directly (used by the extend
// resolution visitor, which compares and combines selector text outside
// the normal emission path).
func (s *Selector) CSSText(env *Env) string {
	sub := NewOutput()
	saved := env.Out
	env.Out = sub
	_ = s.AppendCSS(env)
	env.Out = saved
	return sub.String()
}

// Attribute is an attribute selector fragment `[key op value]`.
type Attribute struct {
	Base
	Key   string
	Op    string
	Value string
}

func NewAttribute(key, op, value string) *Attribute { return &Attribute{Key: key, Op: op, Value: value} }

func (a *Attribute) Clone() Node { n := *a; n.Base = a.cloneBase(); return &n }
func (a *Attribute) Evaluate(env *Env) (Node, error) { return a, nil }
func (a *Attribute) AppendCSS(env *Env) error {
	env.Out.Append("[" + a.Key)
	if a.Op != "" {
		env.Out.Append(a.Op + a.Value)
	}
	env.Out.Append("]")
	return nil
}
func (a *Attribute) Accept(v Visitor) Node { return v(a) }
