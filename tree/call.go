package tree

// Call is a function invocation (built-in if registered, otherwise
// passed through verbatim as a CSS function call).
type Call struct {
	Base
	Name string
	Args []Node
}

func NewCall(name string, args []Node) *Call { return &Call{Name: name, Args: args} }

func (c *Call) Clone() Node {
	n := *c
	n.Base = c.cloneBase()
	n.Args = cloneList(c.Args)
	return &n
}

func (c *Call) Evaluate(env *Env) (Node, error) {
	evaled := make([]Node, len(c.Args))
	for i, a := range c.Args {
		v, err := a.Evaluate(env)
		if err != nil {
			return nil, err
		}
		evaled[i] = v
	}

	if env.Functions != nil {
		result, ok, err := env.Functions.Call(c.Name, evaled, env)
		if err != nil {
			return nil, err
		}
		if ok {
			return result, nil
		}
	}

	return &Call{Base: c.Base, Name: c.Name, Args: evaled}, nil
}

func (c *Call) AppendCSS(env *Env) error {
	env.Out.Append(c.Name)
	env.Out.Append("(")
	if err := env.Out.AppendMany(env, c.Args, argSeparator(env)); err != nil {
		return err
	}
	env.Out.Append(")")
	return nil
}

func argSeparator(env *Env) string {
	if env.Compress {
		return ","
	}
	return ", "
}

func (c *Call) Accept(v Visitor) Node {
	for i, a := range c.Args {
		if a != nil {
			c.Args[i] = a.Accept(v)
		}
	}
	return v(c)
}

func cloneList(items []Node) []Node {
	if items == nil {
		return nil
	}
	out := make([]Node, len(items))
	for i, it := range items {
		if it != nil {
			out[i] = it.Clone()
		}
	}
	return out
}

// Assignment models IE-style "key=value" call arguments (e.g.
// filter: progid:DXImageTransform.Microsoft.Alpha(opacity=50)).
type Assignment struct {
	Base
	Key   string
	Value Node
}

func NewAssignment(key string, value Node) *Assignment { return &Assignment{Key: key, Value: value} }

func (a *Assignment) Clone() Node {
	n := *a
	n.Base = a.cloneBase()
	if a.Value != nil {
		n.Value = a.Value.Clone()
	}
	return &n
}

func (a *Assignment) Evaluate(env *Env) (Node, error) {
	v, err := a.Value.Evaluate(env)
	if err != nil {
		return nil, err
	}
	return &Assignment{Base: a.Base, Key: a.Key, Value: v}, nil
}

func (a *Assignment) AppendCSS(env *Env) error {
	env.Out.Append(a.Key)
	env.Out.Append("=")
	return env.Out.AppendNode(env, a.Value)
}

func (a *Assignment) Accept(v Visitor) Node {
	if a.Value != nil {
		a.Value = a.Value.Accept(v)
	}
	return v(a)
}
