package tree

import "strings"

// ---- Operation ------------------------------------------------------------

// Operation is a binary arithmetic expression (+ - * /) over two nodes.
type Operation struct {
	Base
	Op          byte
	Left, Right Node
}

func NewOperation(op byte, left, right Node) *Operation {
	return &Operation{Op: op, Left: left, Right: right}
}

func (op *Operation) Clone() Node {
	n := *op
	n.Base = op.cloneBase()
	if op.Left != nil {
		n.Left = op.Left.Clone()
	}
	if op.Right != nil {
		n.Right = op.Right.Clone()
	}
	return &n
}

// Evaluate reduces both operands, then combines them unless StrictMath
// is in effect and the operation sits outside a Paren (spec §4.3,
// §8 scenario 8): in that case operands are still resolved (for
// variables) but the operator itself is left literal.
func (op *Operation) Evaluate(env *Env) (Node, error) {
	left, err := op.Left.Evaluate(env)
	if err != nil {
		return nil, err
	}
	right, err := op.Right.Evaluate(env)
	if err != nil {
		return nil, err
	}

	if env.StrictMath && env.parenDepth == 0 {
		return &Operation{Base: op.Base, Op: op.Op, Left: left, Right: right}, nil
	}
	return combineOperands(op.Op, left, right, op.Location, env.file)
}

func combineOperands(opCh byte, left, right Node, index int, file string) (Node, error) {
	lc, lIsColor := left.(*Color)
	rc, rIsColor := right.(*Color)
	ln, lIsNum := left.(*Number)
	rn, rIsNum := right.(*Number)

	switch {
	case lIsNum && rIsNum:
		return ln.Operate(opCh, rn, index, file)

	case lIsColor && rIsColor:
		return lc.Operate(opCh, rc), nil

	case lIsColor && rIsNum:
		return lc.OperateNumber(opCh, rn), nil

	case lIsNum && rIsColor:
		// "+" and "*" commute (number + color == color + number); "-"
		// and "/" with the number on the left are not meaningful and
		// the spec requires rejecting them explicitly.
		if opCh == '+' || opCh == '*' {
			return rc.OperateNumber(opCh, ln), nil
		}
		return nil, errColorArithmetic(index, file)

	default:
		return &Operation{Op: opCh, Left: left, Right: right}, nil
	}
}

func (op *Operation) AppendCSS(env *Env) error {
	if err := env.Out.AppendNode(env, op.Left); err != nil {
		return err
	}
	if env.Compress {
		env.Out.Append(string(op.Op))
	} else {
		env.Out.Append(" " + string(op.Op) + " ")
	}
	return env.Out.AppendNode(env, op.Right)
}

func (op *Operation) Accept(v Visitor) Node {
	if op.Left != nil {
		op.Left = op.Left.Accept(v)
	}
	if op.Right != nil {
		op.Right = op.Right.Accept(v)
	}
	return v(op)
}

// ---- Paren ----------------------------------------------------------------

// Paren wraps an inner node to both control precedence and, under strict
// math, opt an Operation back into being reduced.
type Paren struct {
	Base
	Inner Node
}

func NewParen(inner Node) *Paren { return &Paren{Inner: inner} }

func (p *Paren) Clone() Node {
	n := *p
	n.Base = p.cloneBase()
	if p.Inner != nil {
		n.Inner = p.Inner.Clone()
	}
	return &n
}

func (p *Paren) Evaluate(env *Env) (Node, error) {
	env.parenDepth++
	defer func() { env.parenDepth-- }()
	return p.Inner.Evaluate(env)
}

func (p *Paren) AppendCSS(env *Env) error {
	env.Out.Append("(")
	if err := env.Out.AppendNode(env, p.Inner); err != nil {
		return err
	}
	env.Out.Append(")")
	return nil
}
func (p *Paren) Accept(v Visitor) Node {
	if p.Inner != nil {
		p.Inner = p.Inner.Accept(v)
	}
	return v(p)
}

// ---- Condition --------------------------------------------------------------

// Condition is a guard comparison/boolean combinator: `=`, `<`, `>`,
// `<=`, `>=`, `and`, `or`, optionally negated.
type Condition struct {
	Base
	Left, Right Node
	Op          string
	Negate      bool
}

func NewCondition(left Node, op string, right Node, negate bool) *Condition {
	return &Condition{Left: left, Op: op, Right: right, Negate: negate}
}

func (c *Condition) Clone() Node {
	n := *c
	n.Base = c.cloneBase()
	if c.Left != nil {
		n.Left = c.Left.Clone()
	}
	if c.Right != nil {
		n.Right = c.Right.Clone()
	}
	return &n
}

// Evaluate renders a Condition's truth value as a Keyword("true"/"false")
// node; guard evaluation itself goes through evalGuardNode, which
// understands "and"/"or" short-circuiting and the default() sentinel.
func (c *Condition) Evaluate(env *Env) (Node, error) {
	b, err := c.evalBool(env, false)
	if err != nil {
		return nil, err
	}
	return NewKeyword(boolStr(b)), nil
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (c *Condition) evalBool(env *Env, defaultPass bool) (bool, error) {
	var result bool
	switch c.Op {
	case "and":
		l, err := evalGuardNode(c.Left, env, defaultPass)
		if err != nil {
			return false, err
		}
		r, err := evalGuardNode(c.Right, env, defaultPass)
		if err != nil {
			return false, err
		}
		result = l && r
	case "not":
		l, err := evalGuardNode(c.Left, env, defaultPass)
		if err != nil {
			return false, err
		}
		result = !l
	case "or":
		l, err := evalGuardNode(c.Left, env, defaultPass)
		if err != nil {
			return false, err
		}
		if l {
			result = true
		} else {
			r, err := evalGuardNode(c.Right, env, defaultPass)
			if err != nil {
				return false, err
			}
			result = r
		}
	default:
		lv, err := c.Left.Evaluate(env)
		if err != nil {
			return false, err
		}
		rv, err := c.Right.Evaluate(env)
		if err != nil {
			return false, err
		}
		cmp, ok := compareNodes(lv, rv)
		if !ok {
			return false, errIncomparableOperands(c.Location, env.file)
		}
		switch c.Op {
		case "=":
			result = cmp == 0
		case "<":
			result = cmp < 0
		case ">":
			result = cmp > 0
		case "<=":
			result = cmp <= 0
		case ">=":
			result = cmp >= 0
		}
	}
	if c.Negate {
		result = !result
	}
	return result, nil
}

// evalGuardNode evaluates one guard-tree leaf, recognizing the bare
// default() call as the default-guard sentinel (spec §4.4, §8 test 6).
func evalGuardNode(n Node, env *Env, defaultPass bool) (bool, error) {
	switch t := n.(type) {
	case *Condition:
		if t.Op == "and" || t.Op == "or" || t.Op == "not" {
			return evalGuardTree(t, env, defaultPass)
		}
		return t.evalBool(env, defaultPass)
	case *Call:
		if strings.EqualFold(t.Name, "default") {
			return defaultPass, nil
		}
	}
	v, err := n.Evaluate(env)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

func truthy(n Node) bool {
	switch t := n.(type) {
	case *Keyword:
		return t.Text != "false" && t.Text != ""
	case *Number:
		return t.Value != 0
	}
	return true
}

// hasDefaultGuard reports whether a guard tree references default()
// anywhere, which is what makes a MixinDefinition a "default" candidate.
func hasDefaultGuard(n Node) bool {
	switch t := n.(type) {
	case *Condition:
		return hasDefaultGuard(t.Left) || hasDefaultGuard(t.Right)
	case *Call:
		return strings.EqualFold(t.Name, "default")
	}
	return false
}

func compareNodes(a, b Node) (int, bool) {
	if an, ok := a.(*Number); ok {
		if bn, ok := b.(*Number); ok {
			bv := bn.Value
			if an.Unit != "" && bn.Unit != "" && an.Unit != bn.Unit {
				conv, ok := convertUnit(bn.Value, bn.Unit, an.Unit)
				if !ok {
					return 0, false
				}
				bv = conv
			}
			switch {
			case an.Value < bv:
				return -1, true
			case an.Value > bv:
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}
	as, aok := stringValue(a)
	bs, bok := stringValue(b)
	if aok && bok {
		return strings.Compare(as, bs), true
	}
	if ac, ok := a.(*Color); ok {
		if bc, ok := b.(*Color); ok {
			if ac.R == bc.R && ac.G == bc.G && ac.B == bc.B && ac.A == bc.A {
				return 0, true
			}
			return 1, true
		}
	}
	return 0, false
}

func stringValue(n Node) (string, bool) {
	switch t := n.(type) {
	case *Keyword:
		return t.Text, true
	case *Quoted:
		return t.Content, true
	case *TextNode:
		return t.Text, true
	}
	return "", false
}

func (c *Condition) AppendCSS(env *Env) error {
	b, err := c.evalBool(env, false)
	if err != nil {
		return err
	}
	env.Out.Append(boolStr(b))
	return nil
}

func (c *Condition) Accept(v Visitor) Node {
	if c.Left != nil {
		c.Left = c.Left.Accept(v)
	}
	if c.Right != nil {
		c.Right = c.Right.Accept(v)
	}
	return v(c)
}

// ---- Expression -------------------------------------------------------------

// Expression is an ordered, space-separated list of terms.
type Expression struct {
	Base
	Items []Node
}

func NewExpression(items []Node) *Expression { return &Expression{Items: items} }

func (e *Expression) Clone() Node {
	n := *e
	n.Base = e.cloneBase()
	n.Items = cloneList(e.Items)
	return &n
}

func (e *Expression) Evaluate(env *Env) (Node, error) {
	out := make([]Node, len(e.Items))
	for i, it := range e.Items {
		v, err := it.Evaluate(env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return &Expression{Base: e.Base, Items: out}, nil
}

func (e *Expression) AppendCSS(env *Env) error {
	return env.Out.AppendMany(env, e.Items, " ")
}

func (e *Expression) Accept(v Visitor) Node {
	for i, it := range e.Items {
		if it != nil {
			e.Items[i] = it.Accept(v)
		}
	}
	return v(e)
}

// ---- Value --------------------------------------------------------------

// Value is a comma-separated list of Expressions, with an optional
// trailing !important marker.
type Value struct {
	Base
	Expressions []Node
	Important   string

	// Separator overrides the default ", " join, used by merge-accumulated
	// rules (spec §4.3's `+`/`+_` property suffix) to join with " " instead.
	Separator string
}

func NewValue(expressions []Node, important string) *Value {
	return &Value{Expressions: expressions, Important: important}
}

func (val *Value) Clone() Node {
	n := *val
	n.Base = val.cloneBase()
	n.Expressions = cloneList(val.Expressions)
	return &n
}

func (val *Value) Evaluate(env *Env) (Node, error) {
	out := make([]Node, len(val.Expressions))
	for i, e := range val.Expressions {
		v, err := e.Evaluate(env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return &Value{Base: val.Base, Expressions: out, Important: val.Important, Separator: val.Separator}, nil
}

func (val *Value) AppendCSS(env *Env) error {
	sep := ", "
	if env.Compress {
		sep = ","
	}
	if val.Separator != "" {
		sep = val.Separator
	}
	if err := env.Out.AppendMany(env, val.Expressions, sep); err != nil {
		return err
	}
	if val.Important != "" {
		if env.Compress {
			env.Out.Append(" " + val.Important)
		} else {
			env.Out.Append(" " + val.Important)
		}
	}
	return nil
}

func (val *Value) Accept(v Visitor) Node {
	for i, e := range val.Expressions {
		if e != nil {
			val.Expressions[i] = e.Accept(v)
		}
	}
	return v(val)
}
