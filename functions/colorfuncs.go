package functions

import (
	"fmt"
	"math"

	"github.com/titpetric/lessgo-core/tree"
)

// ---- color construction -----------------------------------------------------

func rgbFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	r, g, b, err := rgbChannels(args)
	if err != nil {
		return nil, err
	}
	return toTreeColor(&Color{R: r, G: g, B: b, A: 1}), nil
}

func rgbaFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	r, g, b, err := rgbChannels(args)
	if err != nil {
		return nil, err
	}
	a := 1.0
	if len(args) > 3 {
		an, err := asNumber(args, 3)
		if err != nil {
			return nil, err
		}
		a = an.Value
		if an.Unit == "%" {
			a /= 100
		}
	}
	return toTreeColor(&Color{R: r, G: g, B: b, A: clamp(a, 0, 1)}), nil
}

func rgbChannels(args []tree.Node) (r, g, b float64, err error) {
	if len(args) < 3 {
		return 0, 0, 0, fmt.Errorf("rgb(): expected 3 arguments")
	}
	channel := func(i int) (float64, error) {
		n, err := asNumber(args, i)
		if err != nil {
			return 0, err
		}
		v := n.Value
		if n.Unit == "%" {
			v = v * 255 / 100
		}
		return clamp(v, 0, 255), nil
	}
	if r, err = channel(0); err != nil {
		return
	}
	if g, err = channel(1); err != nil {
		return
	}
	b, err = channel(2)
	return
}

func hslFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	h, s, l, err := hslChannels(args)
	if err != nil {
		return nil, err
	}
	return toTreeColor(HSLToColor(h, s, l, 1)), nil
}

func hslaFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	h, s, l, err := hslChannels(args)
	if err != nil {
		return nil, err
	}
	a := 1.0
	if len(args) > 3 {
		an, err := asNumber(args, 3)
		if err != nil {
			return nil, err
		}
		a = an.Value
		if an.Unit == "%" {
			a /= 100
		}
	}
	return toTreeColor(HSLToColor(h, s, l, clamp(a, 0, 1))), nil
}

func hslChannels(args []tree.Node) (h, s, l float64, err error) {
	if len(args) < 3 {
		return 0, 0, 0, fmt.Errorf("hsl(): expected 3 arguments")
	}
	hn, err := asNumber(args, 0)
	if err != nil {
		return
	}
	sn, err := asNumber(args, 1)
	if err != nil {
		return
	}
	ln, err := asNumber(args, 2)
	if err != nil {
		return
	}
	h = hn.Value
	s = sn.Value
	if sn.Unit == "%" {
		s /= 100
	}
	l = ln.Value
	if ln.Unit == "%" {
		l /= 100
	}
	return
}

// ---- channel extraction -----------------------------------------------------

func hueFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	h, _, _ := c.ToHSL()
	return tree.NewNumber(h, ""), nil
}

func saturationFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	_, s, _ := c.ToHSL()
	return tree.NewNumber(s*100, "%"), nil
}

func lightnessFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	_, _, l := c.ToHSL()
	return tree.NewNumber(l*100, "%"), nil
}

func redFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(math.Round(c.R), ""), nil
}

func greenFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(math.Round(c.G), ""), nil
}

func blueFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(math.Round(c.B), ""), nil
}

func alphaFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(c.A, ""), nil
}

func lumaFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(c.Luma()*100, "%"), nil
}

func luminanceFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return lumaFn(args, env)
}

// ---- manipulation -----------------------------------------------------------

func lightenFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return manipulate(args, func(c *Color, amt float64) *Color { return c.Lighten(amt) })
}
func darkenFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return manipulate(args, func(c *Color, amt float64) *Color { return c.Darken(amt) })
}
func saturateFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return manipulate(args, func(c *Color, amt float64) *Color { return c.Saturate(amt) })
}
func desaturateFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return manipulate(args, func(c *Color, amt float64) *Color { return c.Desaturate(amt) })
}

func manipulate(args []tree.Node, fn func(*Color, float64) *Color) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	amt := weightArg(args, 1, 0)
	return toTreeColor(fn(c, amt)), nil
}

func spinFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	n, err := asNumber(args, 1)
	if err != nil {
		return nil, err
	}
	return toTreeColor(c.Spin(n.Value)), nil
}

func mixFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c1, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	c2, err := asColor(argAt(args, 1))
	if err != nil {
		return nil, err
	}
	w := weightArg(args, 2, 0.5)
	return toTreeColor(c1.Mix(c2, w)), nil
}

func shadeFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	w := weightArg(args, 1, 0)
	return toTreeColor((&Color{R: 0, G: 0, B: 0, A: 1}).Mix(c, 1-w)), nil
}

func tintFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	w := weightArg(args, 1, 0)
	return toTreeColor((&Color{R: 255, G: 255, B: 255, A: 1}).Mix(c, 1-w)), nil
}

func greyscaleFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	return toTreeColor(c.Greyscale()), nil
}

func fadeFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	w := weightArg(args, 1, 1)
	c.A = w
	return toTreeColor(c), nil
}

func fadeinFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	w := weightArg(args, 1, 0)
	c.A = clamp(c.A+w, 0, 1)
	return toTreeColor(c), nil
}

func fadeoutFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	w := weightArg(args, 1, 0)
	c.A = clamp(c.A-w, 0, 1)
	return toTreeColor(c), nil
}

// contrast picks whichever of a dark/light pair (default black/white)
// has the higher contrast against the input color's luma, against a
// threshold (default 43%).
func contrastFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	dark := &Color{R: 0, G: 0, B: 0, A: 1}
	light := &Color{R: 255, G: 255, B: 255, A: 1}
	if d, err := asColor(argAt(args, 1)); err == nil {
		dark = d
	}
	if l, err := asColor(argAt(args, 2)); err == nil {
		light = l
	}
	threshold := 0.43
	if n, ok := numberOrZero(argAt(args, 3)); ok {
		threshold = n.Value
		if n.Unit == "%" {
			threshold /= 100
		}
	}
	luma := c.Luma()
	if luma < threshold {
		return toTreeColor(light), nil
	}
	return toTreeColor(dark), nil
}

// ---- blending modes ----------------------------------------------------------

func blendChannels(c1, c2 *Color, f func(cb, cs float64) float64) *Color {
	norm := func(v float64) float64 { return v / 255 }
	r := f(norm(c1.R), norm(c2.R)) * 255
	g := f(norm(c1.G), norm(c2.G)) * 255
	b := f(norm(c1.B), norm(c2.B)) * 255
	return &Color{R: clamp(r, 0, 255), G: clamp(g, 0, 255), B: clamp(b, 0, 255), A: c1.A}
}

func blendFn(name string) func([]tree.Node, *tree.Env) (tree.Node, error) {
	f := blendFormula(name)
	return func(args []tree.Node, env *tree.Env) (tree.Node, error) {
		c1, err := asColor(argAt(args, 0))
		if err != nil {
			return nil, err
		}
		c2, err := asColor(argAt(args, 1))
		if err != nil {
			return nil, err
		}
		return toTreeColor(blendChannels(c1, c2, f)), nil
	}
}

func blendFormula(name string) func(cb, cs float64) float64 {
	switch name {
	case "multiply":
		return func(cb, cs float64) float64 { return cb * cs }
	case "screen":
		return func(cb, cs float64) float64 { return cb + cs - cb*cs }
	case "overlay":
		return func(cb, cs float64) float64 {
			if cb <= 0.5 {
				return 2 * cb * cs
			}
			return 1 - 2*(1-cb)*(1-cs)
		}
	case "softlight":
		return func(cb, cs float64) float64 {
			if cs <= 0.5 {
				return cb - (1-2*cs)*cb*(1-cb)
			}
			var d float64
			if cb <= 0.25 {
				d = ((16*cb-12)*cb + 4) * cb
			} else {
				d = math.Sqrt(cb)
			}
			return cb + (2*cs-1)*(d-cb)
		}
	case "hardlight":
		return func(cb, cs float64) float64 {
			if cs <= 0.5 {
				return 2 * cb * cs
			}
			return 1 - 2*(1-cb)*(1-cs)
		}
	case "difference":
		return func(cb, cs float64) float64 { return math.Abs(cb - cs) }
	case "exclusion":
		return func(cb, cs float64) float64 { return cb + cs - 2*cb*cs }
	case "average":
		return func(cb, cs float64) float64 { return (cb + cs) / 2 }
	case "negation":
		return func(cb, cs float64) float64 { return 1 - math.Abs(cb+cs-1) }
	}
	return func(cb, cs float64) float64 { return cs }
}

var (
	multiplyFn   = blendFn("multiply")
	screenFn     = blendFn("screen")
	overlayFn    = blendFn("overlay")
	softlightFn  = blendFn("softlight")
	hardlightFn  = blendFn("hardlight")
	differenceFn = blendFn("difference")
	exclusionFn  = blendFn("exclusion")
	averageFn    = blendFn("average")
	negationFn   = blendFn("negation")
)
