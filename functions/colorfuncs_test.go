package functions

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/titpetric/lessgo-core/tree"
)

func requireColor(t *testing.T, n tree.Node, r, g, b, a float64) {
	t.Helper()
	c, ok := n.(*tree.Color)
	require.True(t, ok, "expected *tree.Color, got %T", n)
	require.InDelta(t, r, c.R, 0.5)
	require.InDelta(t, g, c.G, 0.5)
	require.InDelta(t, b, c.B, 0.5)
	require.InDelta(t, a, c.A, 0.01)
}

func TestRgbRgba(t *testing.T) {
	requireColor(t, callFn(t, "rgb", tree.NewNumber(255, ""), tree.NewNumber(0, ""), tree.NewNumber(0, "")), 255, 0, 0, 1)
	requireColor(t, callFn(t, "rgba", tree.NewNumber(255, ""), tree.NewNumber(0, ""), tree.NewNumber(0, ""), tree.NewNumber(0.5, "")), 255, 0, 0, 0.5)
}

func TestHslHsla(t *testing.T) {
	requireColor(t, callFn(t, "hsl", tree.NewNumber(0, ""), tree.NewNumber(100, "%"), tree.NewNumber(50, "%")), 255, 0, 0, 1)
}

func TestChannelExtraction(t *testing.T) {
	red := tree.NewColor(255, 0, 0, 1)
	requireNumber(t, callFn(t, "red", red), 255, "")
	requireNumber(t, callFn(t, "green", red), 0, "")
	requireNumber(t, callFn(t, "blue", red), 0, "")
	requireNumber(t, callFn(t, "hue", red), 0, "")
	requireNumber(t, callFn(t, "saturation", red), 100, "%")
	requireNumber(t, callFn(t, "lightness", red), 50, "%")
	requireNumber(t, callFn(t, "alpha", red), 1, "")
}

func TestLightenDarken(t *testing.T) {
	grey := tree.NewColor(128, 128, 128, 1)
	lighter := callFn(t, "lighten", grey, tree.NewNumber(10, "%"))
	c, ok := lighter.(*tree.Color)
	require.True(t, ok)
	require.Greater(t, c.R, 128.0)

	darker := callFn(t, "darken", grey, tree.NewNumber(10, "%"))
	c2, ok := darker.(*tree.Color)
	require.True(t, ok)
	require.Less(t, c2.R, 128.0)
}

func TestMixFiftyFifty(t *testing.T) {
	black := tree.NewColor(0, 0, 0, 1)
	white := tree.NewColor(255, 255, 255, 1)
	requireColor(t, callFn(t, "mix", black, white, tree.NewNumber(50, "%")), 127.5, 127.5, 127.5, 1)
}

func TestFadeFamily(t *testing.T) {
	opaque := tree.NewColor(100, 100, 100, 1)
	requireColor(t, callFn(t, "fade", opaque, tree.NewNumber(50, "%")), 100, 100, 100, 0.5)

	half := tree.NewColor(100, 100, 100, 0.5)
	requireColor(t, callFn(t, "fadein", half, tree.NewNumber(20, "%")), 100, 100, 100, 0.7)
	requireColor(t, callFn(t, "fadeout", half, tree.NewNumber(20, "%")), 100, 100, 100, 0.3)
}

func TestGreyscale(t *testing.T) {
	red := tree.NewColor(255, 0, 0, 1)
	result := callFn(t, "greyscale", red)
	c, ok := result.(*tree.Color)
	require.True(t, ok)
	require.InDelta(t, c.R, c.G, 0.5)
	require.InDelta(t, c.G, c.B, 0.5)
}

func TestBlendModes(t *testing.T) {
	white := tree.NewColor(255, 255, 255, 1)
	black := tree.NewColor(0, 0, 0, 1)
	requireColor(t, callFn(t, "multiply", white, black), 0, 0, 0, 1)
	requireColor(t, callFn(t, "screen", black, black), 0, 0, 0, 1)
}

func TestContrastPicksHigherContrast(t *testing.T) {
	dark := tree.NewColor(10, 10, 10, 1)
	result := callFn(t, "contrast", dark)
	c, ok := result.(*tree.Color)
	require.True(t, ok)
	require.InDelta(t, 255, c.R, 0.5)
}

func TestColorFnFromHex(t *testing.T) {
	result := callFn(t, "color", tree.NewQuoted('"', false, "#ff0000"))
	requireColor(t, result, 255, 0, 0, 1)
}
