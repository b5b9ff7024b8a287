// Package functions implements the built-in LESS function catalog as a
// tree.FunctionRegistry: each builtin receives its arguments already
// evaluated to typed tree.Node values and returns a typed result, rather
// than the string-in/string-out convention of a text template FuncMap.
package functions

import (
	"fmt"
	"strings"

	"github.com/titpetric/lessgo-core/tree"
)

// builtinFunc is the uniform shape every entry in the registry table
// implements.
type builtinFunc func(args []tree.Node, env *tree.Env) (tree.Node, error)

// Registry is the default tree.FunctionRegistry: a case-insensitive name
// to builtinFunc table covering spec's math, string, list, type-
// predicate, color, and logical function catalog.
type Registry struct {
	table map[string]builtinFunc
}

// NewRegistry builds the default registry. Callers needing to add or
// override functions can call Register before first use.
func NewRegistry() *Registry {
	return &Registry{table: defaultTable()}
}

// Call implements tree.FunctionRegistry.
func (r *Registry) Call(name string, args []tree.Node, env *tree.Env) (tree.Node, bool, error) {
	fn, ok := r.table[strings.ToLower(name)]
	if !ok {
		return nil, false, nil
	}
	result, err := fn(args, env)
	if err != nil {
		return nil, true, fmt.Errorf("%s(): %w", name, err)
	}
	return result, true, nil
}

// Register adds or replaces a single builtin, for embedders extending
// the catalog (spec §5's extension point).
func (r *Registry) Register(name string, fn func(args []tree.Node, env *tree.Env) (tree.Node, error)) {
	r.table[strings.ToLower(name)] = fn
}

func defaultTable() map[string]builtinFunc {
	return map[string]builtinFunc{
		// math
		"ceil":       ceilFn,
		"floor":      floorFn,
		"round":      roundFn,
		"abs":        absFn,
		"sqrt":       sqrtFn,
		"pow":        powFn,
		"mod":        modFn,
		"min":        minFn,
		"max":        maxFn,
		"percentage": percentageFn,
		"pi":         piFn,
		"sin":        sinFn,
		"cos":        cosFn,
		"tan":        tanFn,
		"asin":       asinFn,
		"acos":       acosFn,
		"atan":       atanFn,

		// strings
		"escape":  escapeFn,
		"e":       eFn,
		"replace": replaceFn,
		"format":  formatFn,

		// lists
		"length":  lengthFn,
		"extract": extractFn,
		"range":   rangeFn,

		// type predicates
		"isnumber":     isNumberFn,
		"isstring":     isStringFn,
		"iscolor":      isColorFn,
		"iskeyword":    isKeywordFn,
		"isurl":        isURLFn,
		"ispixel":      isPixelFn,
		"isem":         isEmFn,
		"ispercentage": isPercentageFn,
		"isunit":       isUnitFn,
		"isruleset":    isRulesetFn,
		"islist":       isListFn,
		"boolean":      booleanFn,

		// color construction
		"rgb":  rgbFn,
		"rgba": rgbaFn,
		"hsl":  hslFn,
		"hsla": hslaFn,

		// channel extraction
		"hue":        hueFn,
		"saturation": saturationFn,
		"lightness":  lightnessFn,
		"red":        redFn,
		"green":      greenFn,
		"blue":       blueFn,
		"alpha":      alphaFn,
		"luma":       lumaFn,
		"luminance":  luminanceFn,

		// manipulation
		"lighten":    lightenFn,
		"darken":     darkenFn,
		"saturate":   saturateFn,
		"desaturate": desaturateFn,
		"spin":       spinFn,
		"mix":        mixFn,
		"shade":      shadeFn,
		"tint":       tintFn,
		"greyscale":  greyscaleFn,
		"fade":       fadeFn,
		"fadein":     fadeinFn,
		"fadeout":    fadeoutFn,
		"contrast":   contrastFn,

		// blending
		"multiply":   multiplyFn,
		"screen":     screenFn,
		"overlay":    overlayFn,
		"softlight":  softlightFn,
		"hardlight":  hardlightFn,
		"difference": differenceFn,
		"exclusion":  exclusionFn,
		"average":    averageFn,
		"negation":   negationFn,

		// logical
		"if": ifFn,

		// utility
		"color":    colorFn,
		"unit":     unitFn,
		"get-unit": getUnitFn,
		"convert":  convertFn,
	}
}

// colorFn coerces a hex/quoted/keyword argument to a Color literal.
func colorFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	c, err := asColor(argAt(args, 0))
	if err != nil {
		return nil, err
	}
	return toTreeColor(c), nil
}

// unitFn rewrites a number's unit without converting its value (LESS's
// unit(value, newUnit)).
func unitFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	unit := ""
	if u, ok := asText(argAt(args, 1)); ok {
		unit = u
	}
	return tree.NewNumber(n.Value, unit), nil
}

// getUnitFn returns a number's unit as a bare keyword (empty for none).
func getUnitFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	return tree.NewKeyword(n.Unit), nil
}

// convertFn converts a number between units of the same family (length,
// angle, time, frequency, resolution), raising an error for an
// unsupported pair rather than silently passing the value through.
func convertFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	n, err := asNumber(args, 0)
	if err != nil {
		return nil, err
	}
	to, ok := asText(argAt(args, 1))
	if !ok {
		return nil, fmt.Errorf("convert(): target unit is not a string")
	}
	converted, ok := tree.ConvertUnit(n.Value, n.Unit, to)
	if !ok {
		return nil, fmt.Errorf("cannot convert %s to %s", n.Unit, to)
	}
	return tree.NewNumber(converted, to), nil
}
