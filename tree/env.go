package tree

// FunctionRegistry resolves a built-in function call by (case-insensitive)
// name. ok is false when the name is not registered, in which case
// Call.Evaluate falls back to passthrough CSS (spec §4.4).
type FunctionRegistry interface {
	Call(name string, args []Node, env *Env) (result Node, ok bool, err error)
}

// Importer is the only required external collaborator (spec §6): it
// resolves an @import path relative to the file that referenced it.
type Importer interface {
	Import(path, currentFile string) (source, canonicalPath string, alreadyImported bool, err error)
}

// Logger is the minimal sink the core writes warnings to (spec §7's
// "WarnNotSupportedByLessJS" channel). A nil Logger is legal; Env.warn
// treats it as a no-op.
type Logger interface {
	Warnf(format string, args ...any)
}

type discardLogger struct{}

func (discardLogger) Warnf(string, ...any) {}

// ParseFunc parses LESS source into a root Ruleset-like node list; it is
// injected by the top-level Compile function rather than imported
// directly, because the parser package imports tree and a direct import
// back would cycle. @import evaluation calls this to turn imported text
// into nodes before splicing them into the tree.
type ParseFunc func(source, filename string) ([]Node, error)

// Env is the evaluation context threaded through every Evaluate call.
type Env struct {
	// Frames is the lexical scope chain: a stack of Rulesets, searched
	// top-down for the first matching variable Rule or mixin candidate.
	Frames []*Ruleset

	// Out is the output buffer stack the emitter writes into.
	Out *Output

	Compress     bool
	StrictMath   bool
	KeepComments bool

	Functions FunctionRegistry
	Importer  Importer
	Parse     ParseFunc
	Logger    Logger

	// VariableStack holds the names currently being resolved, used to
	// detect direct self-reference (RecursiveVariable).
	VariableStack []string

	// Rule is a transient, non-owning back-pointer to the Rule node
	// currently being evaluated; cleared on return. No function in the
	// default registry reads it; default() in a guard is recognized by
	// evalGuardNode instead.
	Rule *Rule

	// importedOnce tracks canonical paths already spliced in under the
	// default `once` import semantics.
	importedOnce map[string]bool

	// parenDepth counts nested Paren evaluations, used by StrictMath to
	// decide whether an Operation may be reduced.
	parenDepth int

	// extendRequests accumulates (extender, target, partial) triples
	// recorded while evaluating Extend nodes; the visitor pass in
	// visitor.go consumes them after the whole tree is evaluated.
	extendRequests []extendRequest

	// selectorStack holds the CSS text of the selectors owned by each
	// Ruleset currently being evaluated, innermost last; Extend.Evaluate
	// reads the top entry to know what selector it is extending with.
	selectorStack [][]string

	// guardCache memoizes the expr-lang compilation of a guard's
	// and/or/not combinator shape, keyed by the guard tree's root Node
	// pointer. It lives on Env rather than as a package-level map so
	// that concurrent Compile calls (spec §5: "each owns its own Env")
	// never share mutable state, and so the cache is released with the
	// Env instead of pinning guard-tree Nodes for the process lifetime.
	guardCache map[Node]*guardProgram

	file string
}

// NewEnv constructs an Env ready to evaluate a single compilation unit.
func NewEnv(file string) *Env {
	return &Env{
		Out:          NewOutput(),
		Logger:       discardLogger{},
		importedOnce: map[string]bool{},
		guardCache:   map[Node]*guardProgram{},
		file:         file,
	}
}

func (e *Env) warn(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Warnf(format, args...)
	}
}

// PushFrame enters a new lexical scope.
func (e *Env) PushFrame(r *Ruleset) {
	e.Frames = append(e.Frames, r)
}

// PopFrame exits the innermost lexical scope.
func (e *Env) PopFrame() {
	if len(e.Frames) > 0 {
		e.Frames = e.Frames[:len(e.Frames)-1]
	}
}

// LookupVariable walks frames top-down and returns the first matching
// variable Rule (name including the leading '@').
func (e *Env) LookupVariable(name string) (*Rule, *Ruleset) {
	for i := len(e.Frames) - 1; i >= 0; i-- {
		frame := e.Frames[i]
		for j := len(frame.Rules) - 1; j >= 0; j-- {
			if r, ok := frame.Rules[j].(*Rule); ok && r.Variable && r.Name == name {
				return r, frame
			}
		}
	}
	return nil, nil
}

// pushVariableEval records name as being resolved; returns an error if it
// is already on the stack (direct recursion).
func (e *Env) pushVariableEval(name string, index int) error {
	for _, n := range e.VariableStack {
		if n == name {
			return errRecursiveVariable(name, index, e.file)
		}
	}
	e.VariableStack = append(e.VariableStack, name)
	return nil
}

func (e *Env) popVariableEval() {
	if len(e.VariableStack) > 0 {
		e.VariableStack = e.VariableStack[:len(e.VariableStack)-1]
	}
}
