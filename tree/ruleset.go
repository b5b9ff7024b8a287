package tree

import "strings"

// Fragment is a transparent wrapper used when a single Evaluate call
// must splice zero or more nodes into its parent's child list (mixin
// call expansion, @import inlining, a guard that evaluated false). It is
// never itself emitted as a unit; Ruleset.Evaluate flattens it away.
type Fragment struct {
	Base
	Nodes []Node
}

func NewFragment(nodes []Node) *Fragment { return &Fragment{Nodes: nodes} }

func (f *Fragment) Clone() Node { n := *f; n.Nodes = cloneList(f.Nodes); return &n }
func (f *Fragment) Evaluate(env *Env) (Node, error) { return f, nil }
func (f *Fragment) AppendCSS(env *Env) error {
	for _, n := range f.Nodes {
		if err := env.Out.AppendNode(env, n); err != nil {
			return err
		}
	}
	return nil
}
func (f *Fragment) Accept(v Visitor) Node {
	for i, n := range f.Nodes {
		if n != nil {
			f.Nodes[i] = n.Accept(v)
		}
	}
	return v(f)
}

// Ruleset is a selector list plus its body. Root is true only for the
// synthetic top-level stylesheet ruleset, which has no selector and is
// never itself wrapped in braces.
type Ruleset struct {
	Base
	Selectors []*Selector
	Rules     []Node
	Root      bool
}

func NewRuleset(selectors []*Selector, rules []Node) *Ruleset {
	return &Ruleset{Selectors: selectors, Rules: rules}
}

func (r *Ruleset) Clone() Node {
	n := *r
	n.Base = r.cloneBase()
	sels := make([]*Selector, len(r.Selectors))
	for i, s := range r.Selectors {
		sels[i] = s.Clone().(*Selector)
	}
	n.Selectors = sels
	n.Rules = cloneList(r.Rules)
	return &n
}

// Evaluate pushes itself as a scope frame, evaluates selectors and every
// child in order, expanding MixinCall/Fragment results inline, applying
// property-merge accumulation, and returns the reduced Ruleset.
func (r *Ruleset) Evaluate(env *Env) (Node, error) {
	env.PushFrame(r)
	defer env.PopFrame()

	var selectors []*Selector
	for _, s := range r.Selectors {
		v, err := s.Evaluate(env)
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, v.(*Selector))
	}

	selectorTexts := make([]string, len(selectors))
	for i, s := range selectors {
		selectorTexts[i] = s.CSSText(env)
	}
	env.selectorStack = append(env.selectorStack, selectorTexts)
	defer func() { env.selectorStack = env.selectorStack[:len(env.selectorStack)-1] }()

	var newRules []Node
	for _, child := range r.Rules {
		v, err := child.Evaluate(env)
		if err != nil {
			return nil, err
		}
		if frag, ok := v.(*Fragment); ok {
			newRules = append(newRules, frag.Nodes...)
			continue
		}
		newRules = append(newRules, v)
	}

	newRules = combineMerges(newRules)

	return &Ruleset{Base: r.Base, Selectors: selectors, Rules: newRules, Root: r.Root}, nil
}

// combineMerges folds consecutive-or-scattered Rule entries whose name
// carried a `+`/`+_` suffix into a single Rule at the position of the
// first occurrence (spec §4.3, §8 scenario E).
func combineMerges(rules []Node) []Node {
	type acc struct {
		idx  int
		sep  string
		vals []Node
	}
	order := []string{}
	accs := map[string]*acc{}
	out := make([]Node, len(rules))
	copy(out, rules)

	for i, rn := range rules {
		r, ok := rn.(*Rule)
		if !ok || r.Variable {
			continue
		}
		base, sep := mergeSeparatorFor(r.Name)
		if sep == "" {
			continue
		}
		a, exists := accs[base]
		if !exists {
			a = &acc{idx: i, sep: sep}
			accs[base] = a
			order = append(order, base)
		} else {
			out[i] = nil
		}
		if val, ok := r.Value.(*Value); ok {
			a.vals = append(a.vals, val.Expressions...)
		} else {
			a.vals = append(a.vals, r.Value)
		}
	}

	for _, base := range order {
		a := accs[base]
		out[a.idx] = &Rule{Name: base, Value: &Value{Expressions: a.vals, Separator: a.sep}}
	}

	compacted := out[:0]
	for _, n := range out {
		if n != nil {
			compacted = append(compacted, n)
		}
	}
	return compacted
}

// AppendCSS recursively flattens nested rulesets (spec §4.5): each
// nested Ruleset child's selector is combined with the parent's and
// emitted as its own top-level block, after the parent's own
// declarations.
func (r *Ruleset) AppendCSS(env *Env) error {
	return r.emit(env, nil)
}

func (r *Ruleset) emit(env *Env, parents []string) error {
	var combined []string
	if r.Root {
		combined = parents
	} else {
		combined = combineSelectors(env, parents, r.Selectors)
	}

	var decls []Node
	var nested []*Ruleset
	var others []Node
	for _, child := range r.Rules {
		switch t := child.(type) {
		case *Ruleset:
			nested = append(nested, t)
		case *MixinDefinition:
			// never emitted
		case *Extend:
			// consumed by the extend-resolution visitor, not emitted
		case *Rule:
			if !t.Variable {
				decls = append(decls, t)
			}
		default:
			if isDeclaration(child) {
				decls = append(decls, child)
			} else {
				others = append(others, child)
			}
		}
	}

	if !r.Root && (len(decls) > 0 || len(others) == 0) {
		if err := emitBlock(env, combined, decls); err != nil {
			return err
		}
	}
	for _, o := range others {
		if err := env.Out.AppendNode(env, o); err != nil {
			return err
		}
	}
	for _, child := range nested {
		if err := child.emit(env, combined); err != nil {
			return err
		}
	}
	return nil
}

func isDeclaration(n Node) bool {
	switch n.(type) {
	case *Rule, *Comment:
		return true
	}
	return false
}

func emitBlock(env *Env, selectors []string, decls []Node) error {
	sep := ", "
	if env.Compress {
		sep = ","
	}
	env.Out.Append(strings.Join(selectors, sep))
	if env.Compress {
		env.Out.Append("{")
	} else {
		env.Out.Append(" {\n")
	}
	env.Out.Push()
	for i, d := range decls {
		if !env.Compress {
			env.Out.Append("  ")
		}
		if err := env.Out.AppendNode(env, d); err != nil {
			return err
		}
		last := i == len(decls)-1
		if !(env.Compress && last) {
			env.Out.Append(";")
		}
		if !env.Compress {
			env.Out.Append("\n")
		}
	}
	body := env.Out.Pop()
	if env.Compress {
		env.Out.Append(body)
		env.Out.Append("}")
	} else {
		env.Out.Append(body)
		env.Out.Append("}\n")
	}
	return nil
}

// combineSelectors cartesian-joins parent selector texts with this
// ruleset's own selectors, substituting literal "&" for the parent
// selector where present and falling back to descendant combination
// otherwise.
func combineSelectors(env *Env, parents []string, selectors []*Selector) []string {
	var own []string
	for _, s := range selectors {
		own = append(own, s.CSSText(env))
	}
	if len(parents) == 0 {
		return own
	}
	var out []string
	for _, p := range parents {
		for _, s := range own {
			if strings.Contains(s, "&") {
				out = append(out, strings.ReplaceAll(s, "&", p))
			} else {
				out = append(out, p+" "+s)
			}
		}
	}
	return out
}

func (r *Ruleset) Accept(v Visitor) Node {
	for i, s := range r.Selectors {
		r.Selectors[i] = s.Accept(v).(*Selector)
	}
	for i, c := range r.Rules {
		if c != nil {
			r.Rules[i] = c.Accept(v)
		}
	}
	return v(r)
}

// ---- GuardedRuleset -------------------------------------------------------

// GuardedRuleset is a Ruleset gated by a `when (...)` condition.
type GuardedRuleset struct {
	Ruleset
	Guard Node
}

func NewGuardedRuleset(selectors []*Selector, rules []Node, guard Node) *GuardedRuleset {
	return &GuardedRuleset{Ruleset: Ruleset{Selectors: selectors, Rules: rules}, Guard: guard}
}

func (g *GuardedRuleset) Clone() Node {
	n := *g
	n.Ruleset = *g.Ruleset.Clone().(*Ruleset)
	if g.Guard != nil {
		n.Guard = g.Guard.Clone()
	}
	return &n
}

func (g *GuardedRuleset) Evaluate(env *Env) (Node, error) {
	pass, err := evalGuardNode(g.Guard, env, false)
	if err != nil {
		return nil, err
	}
	if !pass {
		return NewFragment(nil), nil
	}
	return g.Ruleset.Evaluate(env)
}

func (g *GuardedRuleset) Accept(v Visitor) Node {
	if g.Guard != nil {
		g.Guard = g.Guard.Accept(v)
	}
	g.Ruleset.Accept(v)
	return v(g)
}
