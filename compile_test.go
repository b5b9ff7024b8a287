package lessgo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, source string, cfg Config) string {
	t.Helper()
	css, err := Compile(source, "input.less", cfg)
	require.NoError(t, err)
	return css
}

// Scenario A: arithmetic on a px variable plus a px literal.
func TestEndToEndArithmeticOnVariable(t *testing.T) {
	css := mustCompile(t, `@w: 10px; .c{ width: @w + 4px; }`, Config{})
	require.Equal(t, ".c {\n  width: 14px;\n}\n", css)
}

// Scenario B: mixin default parameter vs explicit argument.
func TestEndToEndMixinDefaultArgument(t *testing.T) {
	css := mustCompile(t, `.r(@r: 2px){ border-radius: @r; } .a{ .r; } .b{ .r(6px); }`, Config{})
	require.Equal(t, ".a {\n  border-radius: 2px;\n}\n.b {\n  border-radius: 6px;\n}\n", css)
}

// Scenario C: a guarded ruleset whose guard holds is expanded by a mixin call.
func TestEndToEndGuardSelectsMatchingCandidate(t *testing.T) {
	css := mustCompile(t, `.c when (@x = true){ a: 1; } @x: true; .out{ .c; }`, Config{})
	require.Equal(t, ".out {\n  a: 1;\n}\n", css)
}

// Scenario D: :extend() splices the extender's selector onto the target.
func TestEndToEndExtend(t *testing.T) {
	css := mustCompile(t, `.a{ color: red; } .b:extend(.a){ x: 1; }`, Config{})
	require.Equal(t, ".a, .b {\n  color: red;\n}\n.b {\n  x: 1;\n}\n", css)
}

// Scenario E: the `+`-suffixed merge property accumulates into one list.
func TestEndToEndMergeProperty(t *testing.T) {
	css := mustCompile(t, `.x{ a+: 1; a+: 2; }`, Config{})
	require.Equal(t, ".x {\n  a: 1, 2;\n}\n", css)
}

// Scenario F: compression shortens hex colors, tightens separators, and
// elides the final declaration's semicolon.
func TestEndToEndCompression(t *testing.T) {
	css := mustCompile(t, `.a{ color: #ffffff; margin: 0 0 0 0; }`, Config{Compress: true})
	require.Equal(t, ".a{color:#fff;margin:0 0 0 0}", css)
}

// Invariant 4: a variable redefined inside a ruleset does not leak out.
func TestVariableScopingDoesNotLeak(t *testing.T) {
	css := mustCompile(t, `@a: 1; .x{ @a: 2; b: @a; } .y{ b: @a; }`, Config{})
	require.Equal(t, ".x {\n  b: 2;\n}\n.y {\n  b: 1;\n}\n", css)
}

// Invariant 5: too few arguments to a non-variadic mixin fails.
func TestMixinArityTooFewArguments(t *testing.T) {
	_, err := Compile(`.m(@a, @b){ x: @a @b; } .c{ .m(1); }`, "input.less", Config{})
	require.Error(t, err)
}

// Invariant 7: color-plus-number commutes; number-minus-color is rejected.
func TestColorArithmetic(t *testing.T) {
	css := mustCompile(t, `.a{ x: #808080 + 10; y: 10 + #808080; }`, Config{})
	require.Equal(t, ".a {\n  x: #8a8a8a;\n  y: #8a8a8a;\n}\n", css)

	_, err := Compile(`.a{ x: 10 - #808080; }`, "input.less", Config{})
	require.Error(t, err)
}

// Invariant 8: strict math only reduces operations inside parens.
func TestStrictMath(t *testing.T) {
	css := mustCompile(t, `.a{ width: 5px + 3; }`, Config{StrictMath: true})
	require.Equal(t, ".a {\n  width: 5px + 3;\n}\n", css)

	css = mustCompile(t, `.a{ width: (5px + 3); }`, Config{StrictMath: true})
	require.Equal(t, ".a {\n  width: 8px;\n}\n", css)
}

// Invariant 2: already-valid plain CSS round-trips modulo whitespace.
func TestCSSPassthrough(t *testing.T) {
	css := mustCompile(t, `.a{ color: blue; }`, Config{})
	require.Equal(t, ".a {\n  color: blue;\n}\n", css)
}
