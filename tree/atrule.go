package tree

import "strings"

// ---- Import ---------------------------------------------------------------

// Import is an `@import` rule: a path (Url or Quoted), optional media
// features, and an option set from {once, multiple, css, less, inline,
// reference, optional} (spec §4.3, §6).
type Import struct {
	Base
	Path     Node
	Features Node
	Options  map[string]bool
}

func NewImport(path Node, features Node, options map[string]bool) *Import {
	return &Import{Path: path, Features: features, Options: options}
}

func (im *Import) Clone() Node {
	n := *im
	n.Base = im.cloneBase()
	if im.Path != nil {
		n.Path = im.Path.Clone()
	}
	if im.Features != nil {
		n.Features = im.Features.Clone()
	}
	if im.Options != nil {
		opts := make(map[string]bool, len(im.Options))
		for k, v := range im.Options {
			opts[k] = v
		}
		n.Options = opts
	}
	return &n
}

var validImportOptions = map[string]bool{
	"once": true, "multiple": true, "css": true, "less": true,
	"inline": true, "reference": true, "optional": true,
}

// illegal import-option combinations, spec §6.
var illegalImportCombos = [][2]string{
	{"css", "less"},
	{"inline", "css"},
	{"inline", "less"},
	{"inline", "reference"},
	{"once", "multiple"},
	{"reference", "css"},
}

func validateImportOptions(opts map[string]bool, index int, file string) error {
	for opt := range opts {
		if !validImportOptions[opt] {
			return errUnrecognizedImportOption(opt, index, file)
		}
	}
	for _, combo := range illegalImportCombos {
		if opts[combo[0]] && opts[combo[1]] {
			return errInvalidImportCombo(index, file)
		}
	}
	return nil
}

// Evaluate resolves the import path via env.Importer, honors once/
// multiple/inline/css/optional semantics, flags the rulesets of a
// reference import (see markReference), and splices the resulting nodes
// into the call site wrapped in a Fragment.
func (im *Import) Evaluate(env *Env) (Node, error) {
	if err := validateImportOptions(im.Options, im.Location, env.file); err != nil {
		return nil, err
	}

	pathVal, err := im.Path.Evaluate(env)
	if err != nil {
		return nil, err
	}
	path := stringifyNode(pathVal, env)

	if env.Importer == nil {
		return nil, NewError("ImporterRequired", im.Location, env.file)
	}

	source, canonical, alreadyImported, err := env.Importer.Import(path, env.file)
	if err != nil {
		if im.Options["optional"] {
			return NewFragment(nil), nil
		}
		return nil, err
	}

	multiple := im.Options["multiple"]
	if !multiple {
		if alreadyImported || env.importedOnce[canonical] {
			return NewFragment(nil), nil
		}
		env.importedOnce[canonical] = true
	}

	if im.Options["inline"] || im.Options["css"] || strings.HasSuffix(strings.ToLower(path), ".css") {
		raw := NewTextNode(source)
		raw.IsReference = im.Options["reference"]
		return NewFragment([]Node{raw}), nil
	}

	if env.Parse == nil {
		return nil, NewError("ParserRequired", im.Location, env.file)
	}
	nodes, err := env.Parse(source, canonical)
	if err != nil {
		return nil, err
	}

	wrapper := &Ruleset{Root: true, Rules: nodes}
	if im.Options["reference"] {
		markReference(wrapper)
	}
	evaluated, err := wrapper.Evaluate(env)
	if err != nil {
		return nil, err
	}
	return NewFragment([]Node{evaluated}), nil
}

// markReference sets IsReference on every Ruleset reached from n.
// Ruleset emission does not check that flag, so the rules of a reference
// import are written to the output like any other rules.
func markReference(n Node) {
	n.Accept(func(child Node) Node {
		if rs, ok := child.(*Ruleset); ok {
			rs.IsReference = true
		}
		return child
	})
}

func (im *Import) AppendCSS(env *Env) error {
	env.Out.Append("@import ")
	if err := env.Out.AppendNode(env, im.Path); err != nil {
		return err
	}
	env.Out.Append(";")
	return nil
}

func (im *Import) Accept(v Visitor) Node {
	if im.Path != nil {
		im.Path = im.Path.Accept(v)
	}
	if im.Features != nil {
		im.Features = im.Features.Accept(v)
	}
	return v(im)
}

// ---- Media ------------------------------------------------------------------

// Media is an `@media` block: a comma-separated feature-group list plus
// the rules it wraps. Features are carried as a single already-assembled
// Expression/Value node (rendered verbatim) rather than being re-parsed
// for semantic meaning, which the evaluator never needs.
type Media struct {
	Base
	Features Node
	Rules    []Node
}

func NewMedia(features Node, rules []Node) *Media { return &Media{Features: features, Rules: rules} }

func (m *Media) Clone() Node {
	n := *m
	n.Base = m.cloneBase()
	if m.Features != nil {
		n.Features = m.Features.Clone()
	}
	n.Rules = cloneList(m.Rules)
	return &n
}

func (m *Media) Evaluate(env *Env) (Node, error) {
	var features Node
	if m.Features != nil {
		f, err := m.Features.Evaluate(env)
		if err != nil {
			return nil, err
		}
		features = f
	}
	wrapper := &Ruleset{Root: true, Rules: m.Rules}
	ev, err := wrapper.Evaluate(env)
	if err != nil {
		return nil, err
	}
	return &Media{Base: m.Base, Features: features, Rules: ev.(*Ruleset).Rules}, nil
}

func (m *Media) AppendCSS(env *Env) error {
	env.Out.Append("@media ")
	if m.Features != nil {
		if err := env.Out.AppendNode(env, m.Features); err != nil {
			return err
		}
	}
	if env.Compress {
		env.Out.Append("{")
	} else {
		env.Out.Append(" {\n")
	}
	inner := &Ruleset{Root: true, Rules: m.Rules}
	if err := inner.AppendCSS(env); err != nil {
		return err
	}
	env.Out.Append("}\n")
	return nil
}

func (m *Media) Accept(v Visitor) Node {
	if m.Features != nil {
		m.Features = m.Features.Accept(v)
	}
	for i, r := range m.Rules {
		if r != nil {
			m.Rules[i] = r.Accept(v)
		}
	}
	return v(m)
}

// ---- Directive --------------------------------------------------------------

// Directive is a generic at-rule: `@font-face { ... }`, `@page :left {
// ... }`, `@charset "utf-8";`, or `@supports (...) { ... }`. Exactly one
// of Rules or Value is set, matching spec §4.3's block-bearing vs
// single-expression split.
type Directive struct {
	Base
	Name       string
	Identifier string
	Rules      []Node
	Value      Node
}

func NewDirective(name, identifier string, rules []Node, value Node) *Directive {
	return &Directive{Name: name, Identifier: identifier, Rules: rules, Value: value}
}

func (d *Directive) Clone() Node {
	n := *d
	n.Base = d.cloneBase()
	n.Rules = cloneList(d.Rules)
	if d.Value != nil {
		n.Value = d.Value.Clone()
	}
	return &n
}

func (d *Directive) Evaluate(env *Env) (Node, error) {
	if d.Value != nil {
		v, err := d.Value.Evaluate(env)
		if err != nil {
			return nil, err
		}
		return &Directive{Base: d.Base, Name: d.Name, Identifier: d.Identifier, Value: v}, nil
	}
	wrapper := &Ruleset{Root: true, Rules: d.Rules}
	ev, err := wrapper.Evaluate(env)
	if err != nil {
		return nil, err
	}
	return &Directive{Base: d.Base, Name: d.Name, Identifier: d.Identifier, Rules: ev.(*Ruleset).Rules}, nil
}

func (d *Directive) AppendCSS(env *Env) error {
	env.Out.Append(d.Name)
	if d.Identifier != "" {
		env.Out.Append(" " + d.Identifier)
	}
	if d.Value != nil {
		env.Out.Append(" ")
		if err := env.Out.AppendNode(env, d.Value); err != nil {
			return err
		}
		env.Out.Append(";\n")
		return nil
	}
	if env.Compress {
		env.Out.Append("{")
	} else {
		env.Out.Append(" {\n")
	}
	inner := &Ruleset{Root: true, Rules: d.Rules}
	if err := inner.AppendCSS(env); err != nil {
		return err
	}
	env.Out.Append("}\n")
	return nil
}

func (d *Directive) Accept(v Visitor) Node {
	if d.Value != nil {
		d.Value = d.Value.Accept(v)
	}
	for i, r := range d.Rules {
		if r != nil {
			d.Rules[i] = r.Accept(v)
		}
	}
	return v(d)
}

// ---- KeyFrame -----------------------------------------------------------

// KeyFrame is one `(from|to|N%), ...` step of an @keyframes block.
type KeyFrame struct {
	Base
	Identifiers []string
	Rules       []Node
}

func NewKeyFrame(identifiers []string, rules []Node) *KeyFrame {
	return &KeyFrame{Identifiers: identifiers, Rules: rules}
}

func (k *KeyFrame) Clone() Node {
	n := *k
	n.Base = k.cloneBase()
	n.Identifiers = append([]string(nil), k.Identifiers...)
	n.Rules = cloneList(k.Rules)
	return &n
}

func (k *KeyFrame) Evaluate(env *Env) (Node, error) {
	wrapper := &Ruleset{Root: true, Rules: k.Rules}
	ev, err := wrapper.Evaluate(env)
	if err != nil {
		return nil, err
	}
	return &KeyFrame{Base: k.Base, Identifiers: k.Identifiers, Rules: ev.(*Ruleset).Rules}, nil
}

func (k *KeyFrame) AppendCSS(env *Env) error {
	sep := ", "
	if env.Compress {
		sep = ","
	}
	env.Out.Append(strings.Join(k.Identifiers, sep))
	if env.Compress {
		env.Out.Append("{")
	} else {
		env.Out.Append(" {\n")
	}
	inner := &Ruleset{Root: true, Rules: k.Rules}
	if err := inner.AppendCSS(env); err != nil {
		return err
	}
	env.Out.Append("}\n")
	return nil
}

func (k *KeyFrame) Accept(v Visitor) Node {
	for i, r := range k.Rules {
		if r != nil {
			k.Rules[i] = r.Accept(v)
		}
	}
	return v(k)
}

// ---- Extend -------------------------------------------------------------

// Extend is an `:extend(selector, ...)` request, either attached inline to
// a selector (`.b:extend(.a)`) or standalone inside a ruleset body
// (`&:extend(.a all)`). Partial is set by the trailing `all` keyword.
type Extend struct {
	Base
	Target  *Selector
	Partial bool
}

func NewExtend(target *Selector, partial bool) *Extend { return &Extend{Target: target, Partial: partial} }

func (ex *Extend) Clone() Node {
	n := *ex
	n.Base = ex.cloneBase()
	if ex.Target != nil {
		n.Target = ex.Target.Clone().(*Selector)
	}
	return &n
}

// extendRequest is recorded against the Env while evaluating the ruleset
// that owns it; the visitor pass in visitor.go consumes the accumulated
// list after the whole tree has been evaluated. It carries the extender's
// own selector text (rather than a pointer into the tree) because every
// Evaluate call returns fresh nodes, so no stable pointer into the final
// tree exists until evaluation is complete.
type extendRequest struct {
	extenderSelectors []string
	target            string
	partial           bool
}

// Evaluate records the extend request against the enclosing ruleset
// (the innermost frame on the selector stack); resolution happens in the
// post-evaluation visitor pass, since the target selector may be defined
// anywhere in the tree, including after this point.
func (ex *Extend) Evaluate(env *Env) (Node, error) {
	target, err := ex.Target.Evaluate(env)
	if err != nil {
		return nil, err
	}
	targetText := target.(*Selector).CSSText(env)
	var extenderSelectors []string
	if len(env.selectorStack) > 0 {
		extenderSelectors = env.selectorStack[len(env.selectorStack)-1]
	}
	env.extendRequests = append(env.extendRequests, extendRequest{
		extenderSelectors: extenderSelectors,
		target:            targetText,
		partial:           ex.Partial,
	})
	return NewFragment(nil), nil
}

func (ex *Extend) AppendCSS(env *Env) error { return nil }

func (ex *Extend) Accept(v Visitor) Node {
	if ex.Target != nil {
		ex.Target = ex.Target.Accept(v).(*Selector)
	}
	return v(ex)
}
