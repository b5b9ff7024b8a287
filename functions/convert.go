package functions

import (
	"fmt"

	"github.com/titpetric/lessgo-core/tree"
)

// asNumber requires args[i] to be a *tree.Number.
func asNumber(args []tree.Node, i int) (*tree.Number, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing argument %d", i)
	}
	n, ok := args[i].(*tree.Number)
	if !ok {
		return nil, fmt.Errorf("argument %d is not a number", i)
	}
	return n, nil
}

// numberOrZero is used by variadic math builtins where a missing
// argument is simply skipped rather than an error.
func numberOrZero(n tree.Node) (*tree.Number, bool) {
	v, ok := n.(*tree.Number)
	return v, ok
}

// asColor coerces a Node to the internal Color engine type: a literal
// *tree.Color, a quoted/bare hex string, or a named CSS color keyword.
func asColor(n tree.Node) (*Color, error) {
	switch t := n.(type) {
	case *tree.Color:
		return &Color{R: t.R, G: t.G, B: t.B, A: t.A}, nil
	case *tree.Quoted:
		return colorFromText(t.Content)
	case *tree.Keyword:
		return colorFromText(t.Text)
	default:
		return nil, fmt.Errorf("argument is not a color")
	}
}

func colorFromText(s string) (*Color, error) {
	if len(s) > 0 && s[0] == '#' {
		return ParseHex(s)
	}
	if c, ok := LookupNamedColor(s); ok {
		return c, nil
	}
	return nil, fmt.Errorf("invalid color: %s", s)
}

// toTreeColor converts the internal engine Color back to a *tree.Color
// result node.
func toTreeColor(c *Color) *tree.Color {
	return tree.NewColor(c.R, c.G, c.B, c.A)
}

// asText extracts the literal text of a Quoted or Keyword node, used by
// string builtins.
func asText(n tree.Node) (string, bool) {
	switch t := n.(type) {
	case *tree.Quoted:
		return t.Content, true
	case *tree.Keyword:
		return t.Text, true
	case *tree.TextNode:
		return t.Text, true
	}
	return "", false
}

// weightArg reads a percentage-or-bare Number argument as a 0-1 weight,
// defaulting to def when args doesn't have index i.
func weightArg(args []tree.Node, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}
	n, ok := args[i].(*tree.Number)
	if !ok {
		return def
	}
	if n.Unit == "%" {
		return clamp(n.Value/100.0, 0, 1)
	}
	return clamp(n.Value, 0, 1)
}
