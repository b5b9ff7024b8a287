// Package tree implements the back half of the compiler: the typed AST
// node variants, the evaluation environment, the evaluator logic attached
// to each node kind, the CSS emitter, and the extend-resolution visitor
// pass. Nodes are values in an ownership tree produced by the parser;
// Evaluate never mutates a node in place, it returns a new (possibly
// identical) Node so the original parse tree survives for error
// reporting.
package tree

import "fmt"

// Node is the uniform interface every AST node variant satisfies.
type Node interface {
	// Clone produces a deep-enough copy: sub-nodes are shared by value,
	// never by back-reference.
	Clone() Node

	// Evaluate reduces the node in the given environment, returning a
	// new node (or itself, for nodes with no further reduction).
	Evaluate(env *Env) (Node, error)

	// AppendCSS renders the node's CSS form into env's current output
	// frame.
	AppendCSS(env *Env) error

	// Accept runs the visitor over this node and its children,
	// returning the (possibly replaced) node.
	Accept(v Visitor) Node
}

// Base carries the attributes common to every node variant: source
// location, comment attachments, and reference-import propagation.
// Node implementations embed Base by value and forward Clone of it.
type Base struct {
	Location int
	File     string

	PreComments  []*Comment
	PostComments []*Comment

	IsReference bool
}

func (b Base) cloneBase() Base {
	nb := b
	if b.PreComments != nil {
		nb.PreComments = append([]*Comment(nil), b.PreComments...)
	}
	if b.PostComments != nil {
		nb.PostComments = append([]*Comment(nil), b.PostComments...)
	}
	return nb
}

// Commented is implemented by nodes that can carry attached comments;
// Output.Append type-asserts to it to emit Pre/Post comments around a
// node's own CSS.
type Commented interface {
	Comments() (pre, post []*Comment)
}

func (b Base) Comments() (pre, post []*Comment) { return b.PreComments, b.PostComments }

// Visitor is a traversal closure applied post-order to every node
// reached by Accept; it returns the replacement node (commonly the same
// node, unmodified).
type Visitor func(Node) Node

// NodeProvider holds the file name of a parse. It has no constructor
// methods, and the parser does not use it: the parser builds nodes with
// the package-level New* functions and stamps Location/File on them
// itself.
type NodeProvider struct {
	File string
}

func NewNodeProvider(file string) *NodeProvider {
	return &NodeProvider{File: file}
}

// ParsingError is the single error type surfaced by both the parser and
// the evaluator (spec §6/§7): a message plus the location it was
// detected at.
type ParsingError struct {
	Message string
	Index   int
	File    string
}

func (e *ParsingError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s in %s at index %d", e.Message, e.File, e.Index)
	}
	return fmt.Sprintf("%s at index %d", e.Message, e.Index)
}

func NewError(message string, index int, file string) *ParsingError {
	return &ParsingError{Message: message, Index: index, File: file}
}

// Error constructors for the named error kinds in spec §7. Keeping them
// as small named constructors (rather than ad-hoc fmt.Errorf calls
// scattered through the evaluator) makes every failure path traceable to
// the section of the spec it implements.
func errUnterminatedComment(index int, file string) error {
	return NewError("UnterminatedComment", index, file)
}
func errUnterminatedString(index int, file string) error {
	return NewError("UnterminatedString", index, file)
}
func errUnbalancedBraces(index int, file string) error {
	return NewError("UnbalancedBraces", index, file)
}
func errUndefinedVariable(name string, index int, file string) error {
	return NewError("UndefinedVariable: "+name, index, file)
}
func errRecursiveVariable(name string, index int, file string) error {
	return NewError("RecursiveVariable: "+name, index, file)
}
func errWrongArgumentCount(index int, file string) error {
	return NewError("WrongArgumentCount", index, file)
}
func errNoMatchingMixin(name string, index int, file string) error {
	return NewError("NoMatchingMixin: "+name, index, file)
}
func errNamedAfterPositional(index int, file string) error {
	return NewError("NamedAfterPositional", index, file)
}
func errIncomparableOperands(index int, file string) error {
	return NewError("IncomparableOperands", index, file)
}
func errDivideByZero(index int, file string) error {
	return NewError("DivideByZero", index, file)
}
func errColorArithmetic(index int, file string) error {
	return NewError("ColorArithmetic", index, file)
}
func errIncompatibleUnits(index int, file string) error {
	return NewError("IncompatibleUnits", index, file)
}
func errInvalidImportCombo(index int, file string) error {
	return NewError("InvalidImportCombo", index, file)
}
func errUnrecognizedImportOption(opt string, index int, file string) error {
	return NewError("UnrecognizedImportOption: "+opt, index, file)
}
