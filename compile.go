// Package lessgo compiles LESS source to CSS: chunk, tokenize, parse to
// a tree.Node list, evaluate against a tree.Env, resolve :extend
// requests, then emit.
package lessgo

import (
	"fmt"

	"github.com/titpetric/lessgo-core/functions"
	"github.com/titpetric/lessgo-core/parser"
	"github.com/titpetric/lessgo-core/tree"
)

// Config configures a single Compile call. The zero value is usable:
// Compress/StrictMath/KeepComments default to false, and Optimization
// defaults to level 0, which skips the chunker pre-pass and parses the
// whole source as one text chunk. A nil Functions uses the built-in
// registry, a nil Importer makes any @import fail with ImporterRequired,
// and a nil Logger drops warnings. KeepComments is copied onto the Env
// but the emitter does not read it: block comments are emitted and line
// comments dropped either way.
type Config struct {
	Compress     bool
	StrictMath   bool
	Optimization int
	KeepComments bool

	Importer  tree.Importer
	Functions tree.FunctionRegistry
	Logger    tree.Logger
}

// Compile turns source (LESS) into CSS. filename is used only for error
// locations and as the base path @import resolves against.
func Compile(source, filename string, cfg Config) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = tree.NewError(fmt.Sprintf("internal error: %v", r), 0, filename)
		}
	}()

	env := tree.NewEnv(filename)
	env.Compress = cfg.Compress
	env.StrictMath = cfg.StrictMath
	env.KeepComments = cfg.KeepComments
	env.Importer = cfg.Importer
	env.Logger = cfg.Logger

	env.Functions = cfg.Functions
	if env.Functions == nil {
		env.Functions = functions.NewRegistry()
	}

	level := cfg.Optimization
	env.Parse = func(src, file string) ([]tree.Node, error) {
		return parser.ParseWithLevel(src, file, level)
	}

	nodes, err := env.Parse(source, filename)
	if err != nil {
		return "", err
	}

	root := &tree.Ruleset{Rules: nodes, Root: true}
	evaluated, err := root.Evaluate(env)
	if err != nil {
		return "", err
	}

	evaluated = tree.ResolveExtends(env, evaluated)

	if err := env.Out.AppendNode(env, evaluated); err != nil {
		return "", err
	}
	return env.Out.String(), nil
}
