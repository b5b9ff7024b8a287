package functions

import (
	"fmt"

	"github.com/titpetric/lessgo-core/tree"
)

// listItems flattens a comma-list (Value) or space-list (Expression) to
// its member nodes; a bare scalar counts as a one-element list.
func listItems(n tree.Node) []tree.Node {
	switch t := n.(type) {
	case *tree.Value:
		if len(t.Expressions) != 1 {
			return t.Expressions
		}
		if e, ok := t.Expressions[0].(*tree.Expression); ok {
			return e.Items
		}
		return t.Expressions
	case *tree.Expression:
		return t.Items
	default:
		return []tree.Node{n}
	}
}

func lengthFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	items := listItems(argAt(args, 0))
	return tree.NewNumber(float64(len(items)), ""), nil
}

func extractFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	items := listItems(argAt(args, 0))
	idxN, err := asNumber(args, 1)
	if err != nil {
		return nil, err
	}
	i := int(idxN.Value)
	if i < 1 || i > len(items) {
		return nil, fmt.Errorf("extract(): index %d out of range", i)
	}
	return items[i-1], nil
}

// rangeFn implements range(start, end?, step?): when called with one
// argument it ranges 1..start; step defaults to 1.
func rangeFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	start, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	var end *tree.Number
	step := 1.0
	unit := start.Unit
	startVal := start.Value

	if len(args) >= 2 {
		end, err = asNumber(args, 1)
		if err != nil {
			return nil, err
		}
		if unit == "" {
			unit = end.Unit
		}
	} else {
		end = start
		startVal = 1
	}
	if len(args) >= 3 {
		stepN, err := asNumber(args, 2)
		if err != nil {
			return nil, err
		}
		step = stepN.Value
	}
	if step == 0 {
		return nil, fmt.Errorf("range(): step must be non-zero")
	}

	var items []tree.Node
	if step > 0 {
		for v := startVal; v <= end.Value+1e-9; v += step {
			items = append(items, tree.NewNumber(v, unit))
		}
	} else {
		for v := startVal; v >= end.Value-1e-9; v += step {
			items = append(items, tree.NewNumber(v, unit))
		}
	}
	return tree.NewExpression(items), nil
}
