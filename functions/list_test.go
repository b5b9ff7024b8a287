package functions

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/titpetric/lessgo-core/tree"
)

func TestLengthFn(t *testing.T) {
	list := tree.NewExpression([]tree.Node{
		tree.NewNumber(1, ""),
		tree.NewNumber(2, ""),
		tree.NewNumber(3, ""),
	})
	requireNumber(t, callFn(t, "length", list), 3, "")
	requireNumber(t, callFn(t, "length", tree.NewNumber(1, "")), 1, "")
}

func TestExtractFn(t *testing.T) {
	list := tree.NewExpression([]tree.Node{
		tree.NewKeyword("a"),
		tree.NewKeyword("b"),
		tree.NewKeyword("c"),
	})
	result := callFn(t, "extract", list, tree.NewNumber(2, ""))
	kw, ok := result.(*tree.Keyword)
	require.True(t, ok)
	require.Equal(t, "b", kw.Text)

	_, _, err := NewRegistry().Call("extract", []tree.Node{list, tree.NewNumber(5, "")}, nil)
	require.Error(t, err)
}

func TestRangeFnSingleArg(t *testing.T) {
	result := callFn(t, "range", tree.NewNumber(3, ""))
	expr, ok := result.(*tree.Expression)
	require.True(t, ok)
	require.Len(t, expr.Items, 3)
	requireNumber(t, expr.Items[0], 1, "")
	requireNumber(t, expr.Items[2], 3, "")
}

func TestRangeFnStartEndStep(t *testing.T) {
	result := callFn(t, "range", tree.NewNumber(2, "px"), tree.NewNumber(6, "px"), tree.NewNumber(2, ""))
	expr, ok := result.(*tree.Expression)
	require.True(t, ok)
	require.Len(t, expr.Items, 3)
	requireNumber(t, expr.Items[0], 2, "px")
	requireNumber(t, expr.Items[1], 4, "px")
	requireNumber(t, expr.Items[2], 6, "px")
}

func TestRangeFnZeroStep(t *testing.T) {
	_, _, err := NewRegistry().Call("range", []tree.Node{tree.NewNumber(1, ""), tree.NewNumber(2, ""), tree.NewNumber(0, "")}, nil)
	require.Error(t, err)
}
