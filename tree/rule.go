package tree

import "strings"

// Rule is `property: value;` or `@variable: value;`. A Rule is a
// variable iff Name begins with '@'; variable rules are never emitted.
type Rule struct {
	Base
	Name             string
	Value            Node
	Variable         bool
	Variadic         bool
	Merge            string // "", ", " or " " - list-accumulation separator
	InterpolatedName bool
	Important        bool
}

func NewRule(name string, value Node) *Rule {
	r := &Rule{Name: name, Value: value}
	r.Variable = strings.HasPrefix(name, "@")
	_, r.Merge = mergeSeparatorFor(name)
	return r
}

func (r *Rule) Clone() Node {
	n := *r
	n.Base = r.cloneBase()
	if r.Value != nil {
		n.Value = r.Value.Clone()
	}
	return &n
}

// Evaluate reduces a property Rule's value immediately; a variable
// Rule's value is left unevaluated (it is reduced lazily, each time a
// Variable reference looks it up — see Variable.Evaluate), which is what
// lets a variable be redefined later in the same scope and still bind
// correctly for references that come after the redefinition.
func (r *Rule) Evaluate(env *Env) (Node, error) {
	name := r.Name
	if r.InterpolatedName {
		resolvedName, err := interpolate(r.Name, env, r.Location)
		if err != nil {
			return nil, err
		}
		name = resolvedName
	}

	if r.Variable {
		return &Rule{Base: r.Base, Name: name, Value: r.Value, Variable: true, Merge: r.Merge}, nil
	}

	prevRule := env.Rule
	env.Rule = r
	defer func() { env.Rule = prevRule }()

	val, err := r.Value.Evaluate(env)
	if err != nil {
		return nil, err
	}
	return &Rule{
		Base: r.Base, Name: name, Value: val,
		Variadic: r.Variadic, Merge: r.Merge, Important: r.Important,
	}, nil
}

func (r *Rule) AppendCSS(env *Env) error {
	env.Out.Append(r.Name)
	if env.Compress {
		env.Out.Append(":")
	} else {
		env.Out.Append(": ")
	}
	if err := env.Out.AppendNode(env, r.Value); err != nil {
		return err
	}
	if r.Important {
		env.Out.Append(" !important")
	}
	return nil
}

func (r *Rule) Accept(v Visitor) Node {
	if r.Value != nil {
		r.Value = r.Value.Accept(v)
	}
	return v(r)
}

// mergeSeparatorFor returns the rule-name suffix's merge separator and
// the base property name with the suffix stripped (spec §4.3 "property
// names may end with + or +_").
func mergeSeparatorFor(name string) (base, sep string) {
	if strings.HasSuffix(name, "+_") {
		return strings.TrimSuffix(name, "+_"), " "
	}
	if strings.HasSuffix(name, "+") {
		return strings.TrimSuffix(name, "+"), ", "
	}
	return name, ""
}
