package functions

import (
	"strings"

	"github.com/titpetric/lessgo-core/tree"
)

func boolNode(b bool) tree.Node {
	return tree.NewKeyword(boolText(b))
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func isNumberFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	_, ok := argAt(args, 0).(*tree.Number)
	return boolNode(ok), nil
}

func isStringFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	_, ok := argAt(args, 0).(*tree.Quoted)
	return boolNode(ok), nil
}

func isColorFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	n := argAt(args, 0)
	if _, ok := n.(*tree.Color); ok {
		return boolNode(true), nil
	}
	if kw, ok := n.(*tree.Keyword); ok {
		_, named := LookupNamedColor(kw.Text)
		isHex := strings.HasPrefix(kw.Text, "#")
		return boolNode(named || isHex), nil
	}
	return boolNode(false), nil
}

func isKeywordFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	_, ok := argAt(args, 0).(*tree.Keyword)
	return boolNode(ok), nil
}

func isURLFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	_, ok := argAt(args, 0).(*tree.Url)
	return boolNode(ok), nil
}

func isPixelFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return boolNode(hasUnit(argAt(args, 0), "px")), nil
}

func isEmFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return boolNode(hasUnit(argAt(args, 0), "em")), nil
}

func isPercentageFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return boolNode(hasUnit(argAt(args, 0), "%")), nil
}

func isUnitFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	u, ok := asText(argAt(args, 1))
	if !ok {
		return boolNode(false), nil
	}
	return boolNode(hasUnit(argAt(args, 0), u)), nil
}

func hasUnit(n tree.Node, unit string) bool {
	num, ok := n.(*tree.Number)
	return ok && num.Unit == unit
}

func isRulesetFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	_, ok := argAt(args, 0).(*tree.Ruleset)
	return boolNode(ok), nil
}

func isListFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	switch t := argAt(args, 0).(type) {
	case *tree.Expression:
		return boolNode(len(t.Items) > 1), nil
	case *tree.Value:
		return boolNode(len(t.Expressions) > 1), nil
	}
	return boolNode(false), nil
}

func booleanFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	b, err := conditionTruth(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	return boolNode(b), nil
}

func conditionTruth(n tree.Node) (bool, error) {
	switch t := n.(type) {
	case *tree.Keyword:
		return t.Text == "true", nil
	case *tree.Number:
		return t.Value != 0, nil
	}
	return false, nil
}

// ifFn implements the logical if(condition, trueValue, falseValue).
func ifFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	cond, err := conditionTruth(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	if cond {
		return argAt(args, 1), nil
	}
	return argAt(args, 2), nil
}
