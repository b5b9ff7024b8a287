package tree

import "strings"

// Param is one formal parameter of a MixinDefinition: a named binding
// with an optional default value, or the variadic rest-param ("@rest..."
// or a bare "...").
type Param struct {
	Name     string
	Default  Node
	Variadic bool
}

// MixinDefinition is a reusable rule block, invoked by MixinCall. Path is
// the dotted selector-style name it is invoked by (e.g. [".mixin"] or
// ["#ns", ".mixin"]).
type MixinDefinition struct {
	Base
	Path   []string
	Params []Param
	Rules  []Node
	Guard  Node // *Condition tree, or a Call("default") leaf, or nil
}

func NewMixinDefinition(path []string, params []Param, guard Node, rules []Node) *MixinDefinition {
	return &MixinDefinition{Path: path, Params: params, Guard: guard, Rules: rules}
}

func (md *MixinDefinition) Clone() Node {
	n := *md
	n.Base = md.cloneBase()
	n.Path = append([]string(nil), md.Path...)
	params := make([]Param, len(md.Params))
	for i, p := range md.Params {
		np := p
		if p.Default != nil {
			np.Default = p.Default.Clone()
		}
		params[i] = np
	}
	n.Params = params
	n.Rules = cloneList(md.Rules)
	if md.Guard != nil {
		n.Guard = md.Guard.Clone()
	}
	return &n
}

// Evaluate is a no-op: a mixin definition only produces output when
// invoked by a MixinCall; it is filtered out of normal emission by
// Ruleset.emit.
func (md *MixinDefinition) Evaluate(env *Env) (Node, error) { return md, nil }
func (md *MixinDefinition) AppendCSS(env *Env) error        { return nil }

func (md *MixinDefinition) Accept(v Visitor) Node {
	for i, p := range md.Params {
		if p.Default != nil {
			md.Params[i].Default = p.Default.Accept(v)
		}
	}
	if md.Guard != nil {
		md.Guard = md.Guard.Accept(v)
	}
	for i, r := range md.Rules {
		if r != nil {
			md.Rules[i] = r.Accept(v)
		}
	}
	return v(md)
}

func (md *MixinDefinition) required() int {
	n := 0
	for _, p := range md.Params {
		if p.Default == nil && !p.Variadic {
			n++
		}
	}
	return n
}

func (md *MixinDefinition) arity() int { return len(md.Params) }

func (md *MixinDefinition) variadic() bool {
	return len(md.Params) > 0 && md.Params[len(md.Params)-1].Variadic
}

// pathString renders a mixin path with its segments joined by single
// spaces, e.g. ".a.b" or "#ns .mixin".
func pathString(path []string) string { return strings.Join(path, " ") }

// ---- MixinCall --------------------------------------------------------------

// CallArg is one argument passed at a mixin call site; Name is empty for
// a positional argument.
type CallArg struct {
	Name  string
	Value Node
}

// MixinCall is a mixin invocation: `.mixin(@a; @b: 2);` or a bare
// ruleset-as-mixin call `.mixin;`.
type MixinCall struct {
	Base
	Path      []string
	Args      []CallArg
	Important bool
}

func NewMixinCall(path []string, args []CallArg, important bool) *MixinCall {
	return &MixinCall{Path: path, Args: args, Important: important}
}

func (mc *MixinCall) Clone() Node {
	n := *mc
	n.Base = mc.cloneBase()
	n.Path = append([]string(nil), mc.Path...)
	args := make([]CallArg, len(mc.Args))
	for i, a := range mc.Args {
		na := a
		if a.Value != nil {
			na.Value = a.Value.Clone()
		}
		args[i] = na
	}
	n.Args = args
	return &n
}

type matchOutcome int

const (
	outcomePass matchOutcome = iota
	outcomeGuardFail
	outcomeArgMismatch
	outcomeDefault
)

// candidate pairs a matching definition with its frame of origin, kept
// for searching purposes only; both MixinDefinition and a plain Ruleset
// (invoked as a zero-arg mixin) are representable as a candidate.
type mixinCandidate struct {
	def *MixinDefinition // nil when rs is a plain Ruleset mixin call
	rs  *Ruleset
}

// findCandidates searches the frame stack, innermost first, for the
// first frame that defines anything matching path; it returns every
// matching entry in THAT frame (spec §4.4: overloaded guarded mixins
// live in the same scope; an inner scope shadows an outer one of the
// same name).
func findCandidates(env *Env, path []string) []mixinCandidate {
	want := pathString(path)
	for i := len(env.Frames) - 1; i >= 0; i-- {
		var found []mixinCandidate
		for _, rn := range env.Frames[i].Rules {
			switch t := rn.(type) {
			case *MixinDefinition:
				if pathString(t.Path) == want {
					found = append(found, mixinCandidate{def: t})
				}
			case *Ruleset:
				if len(t.Selectors) == 1 && selectorPathText(t.Selectors[0]) == want {
					found = append(found, mixinCandidate{rs: t})
				}
			}
		}
		if len(found) > 0 {
			return found
		}
	}
	return nil
}

func selectorPathText(s *Selector) string {
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		if kw, ok := e.Value.(*Keyword); ok {
			parts[i] = kw.Text
		} else if tn, ok := e.Value.(*TextNode); ok {
			parts[i] = tn.Text
		}
	}
	return strings.Join(parts, " ")
}

// matchArguments binds call args against a MixinDefinition's params,
// returning the resolved bindings as variable Rules plus a synthesized
// `@arguments` rule (spec §4.4). Named arguments must not precede a
// positional one; missing, defaultless params fail the match.
func matchArguments(env *Env, def *MixinDefinition, args []CallArg, callLoc int) (matchOutcome, []Node, error) {
	seenNamed := false
	named := map[string]Node{}
	var positional []Node
	for _, a := range args {
		if a.Name != "" {
			seenNamed = true
			named[a.Name] = a.Value
		} else {
			if seenNamed {
				return outcomeArgMismatch, nil, errNamedAfterPositional(callLoc, env.file)
			}
			positional = append(positional, a.Value)
		}
	}

	if !def.variadic() && len(positional) > def.arity() {
		return outcomeArgMismatch, nil, nil
	}

	var bound []Node
	var allPositional []Node
	posIdx := 0
	for _, p := range def.Params {
		if p.Variadic {
			var rest []Node
			for posIdx < len(positional) {
				rest = append(rest, positional[posIdx])
				allPositional = append(allPositional, positional[posIdx])
				posIdx++
			}
			if p.Name != "" {
				bound = append(bound, &Rule{Name: p.Name, Value: &Value{Expressions: rest}, Variable: true})
			}
			continue
		}
		if v, ok := named[p.Name]; ok {
			bound = append(bound, &Rule{Name: p.Name, Value: v, Variable: true})
			continue
		}
		if posIdx < len(positional) {
			bound = append(bound, &Rule{Name: p.Name, Value: positional[posIdx], Variable: true})
			allPositional = append(allPositional, positional[posIdx])
			posIdx++
			continue
		}
		if p.Default != nil {
			bound = append(bound, &Rule{Name: p.Name, Value: p.Default, Variable: true})
			continue
		}
		return outcomeArgMismatch, nil, nil
	}
	if posIdx < len(positional) {
		return outcomeArgMismatch, nil, nil
	}

	bound = append(bound, &Rule{Name: "@arguments", Value: &Value{Expressions: allPositional}, Variable: true})
	return outcomePass, bound, nil
}

// Evaluate searches for matching mixin definitions/rulesets, resolves
// guard precedence (Pass beats Default beats discarded, spec §4.4 and
// §8 test 6), and splices every selected definition's expanded rules
// into the call site.
func (mc *MixinCall) Evaluate(env *Env) (Node, error) {
	evaledArgs := make([]CallArg, len(mc.Args))
	for i, a := range mc.Args {
		v, err := a.Value.Evaluate(env)
		if err != nil {
			return nil, err
		}
		evaledArgs[i] = CallArg{Name: a.Name, Value: v}
	}

	candidates := findCandidates(env, mc.Path)
	if len(candidates) == 0 {
		return nil, errNoMatchingMixin(pathString(mc.Path), mc.Location, env.file)
	}

	type resolved struct {
		cand     mixinCandidate
		bindings []Node
	}
	var passing []resolved
	var defaulting []resolved
	var lastMismatchErr error

	for _, cand := range candidates {
		if cand.rs != nil {
			if len(evaledArgs) != 0 {
				lastMismatchErr = errWrongArgumentCount(mc.Location, env.file)
				continue
			}
			passing = append(passing, resolved{cand: cand})
			continue
		}
		def := cand.def
		outcome, bindings, err := matchArguments(env, def, evaledArgs, mc.Location)
		if err != nil {
			return nil, err
		}
		if outcome == outcomeArgMismatch {
			lastMismatchErr = errWrongArgumentCount(mc.Location, env.file)
			continue
		}
		if def.Guard != nil {
			pass, err := evalGuardNode(def.Guard, env, false)
			if err != nil {
				return nil, err
			}
			if pass {
				passing = append(passing, resolved{cand: cand, bindings: bindings})
			} else if hasDefaultGuard(def.Guard) {
				defaulting = append(defaulting, resolved{cand: cand, bindings: bindings})
			}
			continue
		}
		passing = append(passing, resolved{cand: cand, bindings: bindings})
	}

	selected := passing
	if len(selected) == 0 {
		selected = defaulting
	}
	if len(selected) == 0 {
		if len(candidates) == 1 && lastMismatchErr != nil {
			return nil, lastMismatchErr
		}
		return nil, errNoMatchingMixin(pathString(mc.Path), mc.Location, env.file)
	}

	var expanded []Node
	for _, sel := range selected {
		nodes, err := expandMixin(env, sel.cand, sel.bindings)
		if err != nil {
			return nil, err
		}
		if mc.Important {
			for _, n := range nodes {
				if r, ok := n.(*Rule); ok {
					r.Important = true
				}
			}
		}
		expanded = append(expanded, nodes...)
	}
	return NewFragment(expanded), nil
}

func expandMixin(env *Env, cand mixinCandidate, bindings []Node) ([]Node, error) {
	var rules []Node
	if cand.rs != nil {
		rules = cand.rs.Rules
	} else {
		rules = append(append([]Node{}, bindings...), cand.def.Rules...)
	}
	frame := &Ruleset{Rules: rules}
	ev, err := frame.Evaluate(env)
	if err != nil {
		return nil, err
	}
	result := ev.(*Ruleset).Rules
	var out []Node
	for _, r := range result {
		if rule, ok := r.(*Rule); ok && rule.Variable {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (mc *MixinCall) AppendCSS(env *Env) error { return nil }

func (mc *MixinCall) Accept(v Visitor) Node {
	for i, a := range mc.Args {
		if a.Value != nil {
			mc.Args[i].Value = a.Value.Accept(v)
		}
	}
	return v(mc)
}
