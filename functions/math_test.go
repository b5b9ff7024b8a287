package functions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/titpetric/lessgo-core/tree"
)

func callFn(t *testing.T, name string, args ...tree.Node) tree.Node {
	t.Helper()
	result, ok, err := NewRegistry().Call(name, args, nil)
	require.NoError(t, err)
	require.True(t, ok, "function %s not registered", name)
	return result
}

func requireNumber(t *testing.T, n tree.Node, value float64, unit string) {
	t.Helper()
	num, ok := n.(*tree.Number)
	require.True(t, ok, "expected *tree.Number, got %T", n)
	require.InDelta(t, value, num.Value, 1e-9)
	require.Equal(t, unit, num.Unit)
}

func TestCeilFloorRound(t *testing.T) {
	requireNumber(t, callFn(t, "ceil", tree.NewNumber(4.2, "px")), 5, "px")
	requireNumber(t, callFn(t, "floor", tree.NewNumber(4.8, "px")), 4, "px")
	requireNumber(t, callFn(t, "round", tree.NewNumber(4.456, "")), 4, "")
	requireNumber(t, callFn(t, "round", tree.NewNumber(4.456, ""), tree.NewNumber(2, "")), 4.46, "")
}

func TestAbsSqrtPow(t *testing.T) {
	requireNumber(t, callFn(t, "abs", tree.NewNumber(-3, "px")), 3, "px")
	requireNumber(t, callFn(t, "sqrt", tree.NewNumber(16, "")), 4, "")
	requireNumber(t, callFn(t, "pow", tree.NewNumber(2, "px"), tree.NewNumber(10, "")), 1024, "px")
}

func TestModDivisionByZero(t *testing.T) {
	requireNumber(t, callFn(t, "mod", tree.NewNumber(10, ""), tree.NewNumber(3, "")), 1, "")

	_, _, err := NewRegistry().Call("mod", []tree.Node{tree.NewNumber(10, ""), tree.NewNumber(0, "")}, nil)
	require.Error(t, err)
}

func TestMinMax(t *testing.T) {
	requireNumber(t, callFn(t, "min", tree.NewNumber(3, "px"), tree.NewNumber(1, "px"), tree.NewNumber(2, "px")), 1, "px")
	requireNumber(t, callFn(t, "max", tree.NewNumber(3, "px"), tree.NewNumber(1, "px"), tree.NewNumber(2, "px")), 3, "px")
}

func TestPercentageAndPi(t *testing.T) {
	requireNumber(t, callFn(t, "percentage", tree.NewNumber(0.5, "")), 50, "%")
	requireNumber(t, callFn(t, "pi"), math.Pi, "")
}

func TestTrig(t *testing.T) {
	requireNumber(t, callFn(t, "sin", tree.NewNumber(0, "rad")), 0, "")
	requireNumber(t, callFn(t, "cos", tree.NewNumber(0, "rad")), 1, "")
	requireNumber(t, callFn(t, "atan", tree.NewNumber(1, "")), 45, "deg")
}
