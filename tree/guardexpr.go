package tree

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// guardProgram caches the expr-lang compilation of a guard's and/or/not
// combinator shape. Leaf comparisons ("@a > 0", "default()", a bare
// truthy expression) still go through evalGuardNode's hand-written
// evaluation, since their truth value depends on the live frame at call
// time; only the boolean combination of already-evaluated leaves is
// delegated to a compiled expr-lang program, evaluated once per mixin
// call against a map[string]any snapshot of those leaf results.
type guardProgram struct {
	program *vm.Program
	leaves  []Node
}

// compileGuard compiles guard's and/or/not shape into a guardProgram,
// caching the result on env so repeated evaluations of the same guard
// tree within one compile reuse it. The cache lives on Env (not a
// package-level map) so concurrent Compile calls never share it.
func compileGuard(guard Node, env *Env) (*guardProgram, error) {
	if gp, ok := env.guardCache[guard]; ok {
		return gp, nil
	}

	var leaves []Node
	var b strings.Builder

	var walk func(n Node)
	walk = func(n Node) {
		c, ok := n.(*Condition)
		if !ok || (c.Op != "and" && c.Op != "or" && c.Op != "not") {
			fmt.Fprintf(&b, "v%d", len(leaves))
			leaves = append(leaves, n)
			return
		}
		if c.Negate {
			b.WriteString("(!")
		}
		switch c.Op {
		case "and":
			b.WriteByte('(')
			walk(c.Left)
			b.WriteString(" && ")
			walk(c.Right)
			b.WriteByte(')')
		case "or":
			b.WriteByte('(')
			walk(c.Left)
			b.WriteString(" || ")
			walk(c.Right)
			b.WriteByte(')')
		case "not":
			b.WriteString("(!")
			walk(c.Left)
			b.WriteByte(')')
		}
		if c.Negate {
			b.WriteByte(')')
		}
	}
	walk(guard)

	snapshot := make(map[string]any, len(leaves))
	for i := range leaves {
		snapshot[fmt.Sprintf("v%d", i)] = false
	}

	program, err := expr.Compile(b.String(), expr.Env(snapshot))
	if err != nil {
		return nil, err
	}
	gp := &guardProgram{program: program, leaves: leaves}
	if env.guardCache == nil {
		env.guardCache = map[Node]*guardProgram{}
	}
	env.guardCache[guard] = gp
	return gp, nil
}

// evalGuardTree evaluates a compound (and/or/not) guard by evaluating
// each leaf through evalGuardNode and combining the results via the
// compiled expr-lang program. Falls back to the hand-written recursive
// evaluator if compilation fails for any reason (an exotic guard shape
// expr-lang's grammar can't represent).
func evalGuardTree(guard Node, env *Env, defaultPass bool) (bool, error) {
	gp, err := compileGuard(guard, env)
	if err != nil {
		c := guard.(*Condition)
		return c.evalBool(env, defaultPass)
	}

	snapshot := make(map[string]any, len(gp.leaves))
	for i, leaf := range gp.leaves {
		v, err := evalGuardNode(leaf, env, defaultPass)
		if err != nil {
			return false, err
		}
		snapshot[fmt.Sprintf("v%d", i)] = v
	}

	result, err := expr.Run(gp.program, snapshot)
	if err != nil {
		return false, err
	}
	b, _ := result.(bool)
	return b, nil
}
