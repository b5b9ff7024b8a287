package functions

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/titpetric/lessgo-core/tree"
)

func requireBoolKeyword(t *testing.T, n tree.Node, want bool) {
	t.Helper()
	kw, ok := n.(*tree.Keyword)
	require.True(t, ok, "expected *tree.Keyword, got %T", n)
	require.Equal(t, boolText(want), kw.Text)
}

func TestIsNumberIsString(t *testing.T) {
	requireBoolKeyword(t, callFn(t, "isnumber", tree.NewNumber(1, "px")), true)
	requireBoolKeyword(t, callFn(t, "isnumber", tree.NewKeyword("red")), false)
	requireBoolKeyword(t, callFn(t, "isstring", tree.NewQuoted('"', false, "x")), true)
}

func TestIsColor(t *testing.T) {
	requireBoolKeyword(t, callFn(t, "iscolor", tree.NewColor(1, 2, 3, 1)), true)
	requireBoolKeyword(t, callFn(t, "iscolor", tree.NewKeyword("#fff")), true)
	requireBoolKeyword(t, callFn(t, "iscolor", tree.NewKeyword("red")), true)
	requireBoolKeyword(t, callFn(t, "iscolor", tree.NewKeyword("notacolor")), false)
}

func TestUnitPredicates(t *testing.T) {
	requireBoolKeyword(t, callFn(t, "ispixel", tree.NewNumber(1, "px")), true)
	requireBoolKeyword(t, callFn(t, "isem", tree.NewNumber(1, "em")), true)
	requireBoolKeyword(t, callFn(t, "ispercentage", tree.NewNumber(1, "%")), true)
	requireBoolKeyword(t, callFn(t, "isunit", tree.NewNumber(1, "rad"), tree.NewKeyword("rad")), true)
}

func TestIsListFn(t *testing.T) {
	list := tree.NewExpression([]tree.Node{tree.NewNumber(1, ""), tree.NewNumber(2, "")})
	requireBoolKeyword(t, callFn(t, "islist", list), true)
	requireBoolKeyword(t, callFn(t, "islist", tree.NewNumber(1, "")), false)
}

func TestBooleanAndIf(t *testing.T) {
	requireBoolKeyword(t, callFn(t, "boolean", tree.NewKeyword("true")), true)
	requireBoolKeyword(t, callFn(t, "boolean", tree.NewNumber(0, "")), false)

	result := callFn(t, "if", tree.NewKeyword("true"), tree.NewNumber(1, "px"), tree.NewNumber(2, "px"))
	requireNumber(t, result, 1, "px")

	result = callFn(t, "if", tree.NewKeyword("false"), tree.NewNumber(1, "px"), tree.NewNumber(2, "px"))
	requireNumber(t, result, 2, "px")
}

func TestUnitGetUnitConvert(t *testing.T) {
	requireNumber(t, callFn(t, "unit", tree.NewNumber(5, "px"), tree.NewKeyword("em")), 5, "em")

	kw, ok := callFn(t, "get-unit", tree.NewNumber(5, "px")).(*tree.Keyword)
	require.True(t, ok)
	require.Equal(t, "px", kw.Text)

	requireNumber(t, callFn(t, "convert", tree.NewNumber(1, "in"), tree.NewKeyword("px")), 96, "px")

	_, _, err := NewRegistry().Call("convert", []tree.Node{tree.NewNumber(1, "px"), tree.NewKeyword("s")}, nil)
	require.Error(t, err)
}
