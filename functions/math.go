package functions

import (
	"fmt"
	"math"

	"github.com/titpetric/lessgo-core/tree"
)

func ceilFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(math.Ceil(n.Value), n.Unit), nil
}

func floorFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(math.Floor(n.Value), n.Unit), nil
}

func roundFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	precision := 0.0
	if p, ok := numberOrZero(argAt(args, 1)); ok {
		precision = p.Value
	}
	factor := math.Pow(10, precision)
	return tree.NewNumber(math.Round(n.Value*factor)/factor, n.Unit), nil
}

func absFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(math.Abs(n.Value), n.Unit), nil
}

func sqrtFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(math.Sqrt(n.Value), n.Unit), nil
}

func powFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	base, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	exp, err := asNumber(args, 1)
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(math.Pow(base.Value, exp.Value), base.Unit), nil
}

func modFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	a, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	b, err := asNumber(args, 1)
	if err != nil {
		return nil, err
	}
	if b.Value == 0 {
		return nil, fmt.Errorf("mod: division by zero")
	}
	return tree.NewNumber(math.Mod(a.Value, b.Value), a.Unit), nil
}

func minFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return minmax(args, false)
}

func maxFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return minmax(args, true)
}

func minmax(args []tree.Node, wantMax bool) (tree.Node, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected at least one argument")
	}
	best, ok := numberOrZero(args[0])
	if !ok {
		return nil, fmt.Errorf("argument 0 is not a number")
	}
	for _, a := range args[1:] {
		n, ok := numberOrZero(a)
		if !ok {
			continue
		}
		v := n.Value
		if n.Unit != best.Unit && n.Unit != "" && best.Unit != "" {
			if conv, ok := tree.ConvertUnit(v, n.Unit, best.Unit); ok {
				v = conv
			}
		}
		if (wantMax && v > best.Value) || (!wantMax && v < best.Value) {
			best = n
		}
	}
	return tree.NewNumber(best.Value, best.Unit), nil
}

func percentageFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	return tree.NewNumber(n.Value*100, "%"), nil
}

func piFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return tree.NewNumber(math.Pi, ""), nil
}

func sinFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return trig(args, math.Sin)
}
func cosFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return trig(args, math.Cos)
}
func tanFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return trig(args, math.Tan)
}
func asinFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return trigInverse(args, math.Asin)
}
func acosFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return trigInverse(args, math.Acos)
}
func atanFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	return trigInverse(args, math.Atan)
}

// trig applies fn to a Number in radians (converting from deg/grad/rad
// via tree.ConvertUnit if a unit is present), returning a bare number.
func trig(args []tree.Node, fn func(float64) float64) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	rad := n.Value
	if n.Unit != "" && n.Unit != "rad" {
		if conv, ok := tree.ConvertUnit(n.Value, n.Unit, "rad"); ok {
			rad = conv
		}
	}
	return tree.NewNumber(fn(rad), ""), nil
}

// trigInverse applies an inverse trig function, returning the result in
// degrees (the LESS convention for asin/acos/atan).
func trigInverse(args []tree.Node, fn func(float64) float64) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	deg := fn(n.Value) * 180 / math.Pi
	return tree.NewNumber(deg, "deg"), nil
}

func argAt(args []tree.Node, i int) tree.Node {
	if i >= len(args) {
		return nil
	}
	return args[i]
}
