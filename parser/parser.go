// Package parser implements the recursive-descent grammar that turns
// chunked, tokenized source into a tree of typed AST nodes (package
// tree), using the same remember/recall backtracking style the
// tokenizer itself exposes.
package parser

import (
	"strconv"
	"strings"

	"github.com/titpetric/lessgo-core/chunk"
	intstrings "github.com/titpetric/lessgo-core/internal/strings"
	"github.com/titpetric/lessgo-core/token"
	"github.com/titpetric/lessgo-core/tree"
)

type parser struct {
	tok  *token.Tokenizer
	file string
}

// Parse chunks and tokenizes source at optimization level 1, then parses
// it into a flat node list (the top-level stylesheet body). The top-level
// Compile entry point binds tree.Env.Parse to ParseWithLevel with
// Config.Optimization instead, and @import parses imported source
// through that binding without tree importing parser directly (which
// would cycle).
func Parse(source, file string) ([]tree.Node, error) {
	return ParseWithLevel(source, file, 1)
}

// ParseWithLevel is Parse with the chunker's optimization level exposed,
// so Compile can honor Config.Optimization (spec §6: level 0 disables
// pre-chunking, >=1 performs full classification).
func ParseWithLevel(source, file string, level int) ([]tree.Node, error) {
	norm := chunk.Normalize(source)
	chunks, err := chunk.New(level).Scan(norm)
	if err != nil {
		ce := err.(*chunk.Error)
		return nil, tree.NewError(ce.Kind, ce.Index, file)
	}
	tk := token.New(norm, chunks, file)
	p := &parser{tok: tk, file: file}

	nodes, err := p.parseBody(true)
	if err != nil {
		return nil, err
	}
	p.tok.ConsumeWhitespace()
	if !p.tok.EOF() {
		return nil, p.expect("end of input")
	}
	return nodes, nil
}

func (p *parser) expect(what string) error {
	return tree.NewError("Expected: "+what, p.tok.Index(), p.file)
}

// parseBody parses statements until '}' (nested) or EOF (top level).
func (p *parser) parseBody(topLevel bool) ([]tree.Node, error) {
	var nodes []tree.Node
	for {
		p.tok.ConsumeWhitespace()
		if p.tok.EOF() {
			break
		}
		if !topLevel && p.tok.Peek("}") {
			break
		}
		if _, ok := p.tok.MatchChar(';'); ok {
			continue
		}
		n, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// parseStatement implements the `primary` production: comments,
// at-rules, property/variable rules, then the selector-led forms
// (ruleset, guarded ruleset, mixin definition, mixin call, standalone
// extend).
func (p *parser) parseStatement() (tree.Node, error) {
	if text, _, ok := p.tok.GetComment(); ok {
		c := tree.NewComment(text)
		c.Location, c.File = p.tok.GetNodeLocation(), p.file
		return c, nil
	}

	loc := p.tok.GetNodeLocation()

	if n, err := p.tryAtRule(loc); err != nil {
		return nil, err
	} else if n != nil {
		return n, nil
	}

	if n, err := p.tryRule(loc); err != nil {
		return nil, err
	} else if n != nil {
		return n, nil
	}

	save := p.tok.Remember()
	sels, exts, err := p.parseSelectorList()
	if err != nil {
		return nil, err
	}
	if len(sels) == 0 {
		p.tok.Recall(save)
		return nil, p.expect("a rule, ruleset, or mixin call")
	}

	var guard tree.Node
	if p.peekWhen() {
		guard, err = p.parseGuard()
		if err != nil {
			return nil, err
		}
	}

	switch {
	case p.tok.Peek("{"):
		p.tok.MatchChar('{')
		body, err := p.parseBody(false)
		if err != nil {
			return nil, err
		}
		if _, ok := p.tok.MatchChar('}'); !ok {
			return nil, p.expect("}")
		}
		body = prependExtends(exts, body)
		if guard != nil {
			n := tree.NewGuardedRuleset(sels, body, guard)
			n.Location, n.File = loc, p.file
			return n, nil
		}
		n := tree.NewRuleset(sels, body)
		n.Location, n.File = loc, p.file
		return n, nil

	case len(sels) == 1 && guard == nil && p.tok.Peek("("):
		return p.parseMixinParenthesized(sels[0], loc)

	default:
		important := p.tok.MatchExact("!important")
		p.tok.MatchChar(';')
		if len(exts) > 0 && isPureExtendSelector(sels) {
			return tree.NewFragment(toNodes(exts)), nil
		}
		mc := tree.NewMixinCall(selectorPath(sels[0]), nil, important)
		mc.Location, mc.File = loc, p.file
		if len(exts) > 0 {
			return tree.NewFragment(append([]tree.Node{mc}, toNodes(exts)...)), nil
		}
		return mc, nil
	}
}

func (p *parser) peekWhen() bool {
	save := p.tok.Remember()
	kw, ok := p.tok.MatchKeyword(-1, false)
	p.tok.Recall(save)
	return ok && strings.EqualFold(kw, "when")
}

// tryRule attempts `(property | '@var' | '@{interpolation}') ':' value
// ';'?`. It backtracks and returns (nil, nil) when the text up to the
// colon doesn't look like a property name, or when a brace appears
// before the next semicolon (a tag selector like "a:hover{...}" rather
// than a property value).
func (p *parser) tryRule(loc int) (tree.Node, error) {
	save := p.tok.Remember()
	name, interpolated, ok := p.parsePropertyName()
	if !ok {
		p.tok.Recall(save)
		return nil, nil
	}
	if _, ok := p.tok.MatchChar(':'); !ok {
		p.tok.Recall(save)
		return nil, nil
	}
	if p.nextTerminatorIsBrace() {
		p.tok.Recall(save)
		return nil, nil
	}
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	important := p.tok.MatchExact("!important")
	p.tok.MatchChar(';')
	r := tree.NewRule(name, val)
	r.InterpolatedName = interpolated
	r.Important = important
	r.Location, r.File = loc, p.file
	return r, nil
}

// parsePropertyName matches a bare property identifier (optionally
// suffixed with the `+`/`+_` merge marker), a variable name, or an
// `@{interpolated}` name.
func (p *parser) parsePropertyName() (name string, interpolated bool, ok bool) {
	if p.tok.Peek("@{") {
		raw, matched := p.tok.MatchUntil('}', token.MatchUntilOptions{IncludeDelim: true})
		if !matched {
			return "", false, false
		}
		return raw, true, true
	}
	kw, matched := p.tok.MatchKeyword(-1, false)
	if !matched {
		return "", false, false
	}
	if b, ok2 := p.tok.MatchChar('+'); ok2 {
		kw += string(b)
		if b2, ok3 := p.tok.MatchChar('_'); ok3 {
			kw += string(b2)
		}
	}
	return kw, false, true
}

// nextTerminatorIsBrace scans raw source ahead (tracking paren depth) to
// see whether a top-level '{' appears before the next top-level ';' or
// '}'. Used to stop tryRule from mistaking a tag selector's pseudo-class
// colon ("a:hover{...}") for a property colon.
func (p *parser) nextTerminatorIsBrace() bool {
	depth := 0
	for off := 0; ; off++ {
		c := p.tok.PeekChar(off)
		if c == 0 {
			return false
		}
		switch c {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '{':
			if depth == 0 {
				return true
			}
		case ';', '}':
			if depth == 0 {
				return false
			}
		}
	}
}

// ---- value / expression grammar -------------------------------------------

func (p *parser) parseValue() (*tree.Value, error) {
	var exprs []tree.Node
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if _, ok := p.tok.MatchChar(','); ok {
			continue
		}
		break
	}
	return tree.NewValue(exprs, ""), nil
}

func (p *parser) parseExpression() (tree.Node, error) {
	var items []tree.Node
	for {
		t, ok, err := p.tryTerm()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		items = append(items, t)
	}
	if len(items) == 0 {
		return nil, p.expect("an expression")
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return tree.NewExpression(items), nil
}

// tryTerm parses one `operation` (additive level).
func (p *parser) tryTerm() (tree.Node, bool, error) {
	left, ok, err := p.tryMul()
	if err != nil || !ok {
		return nil, ok, err
	}
	for {
		save := p.tok.Remember()
		ch, ok2 := p.tok.MatchChar('+', '-')
		if !ok2 {
			break
		}
		right, ok3, err := p.tryMul()
		if err != nil {
			return nil, false, err
		}
		if !ok3 {
			p.tok.Recall(save)
			break
		}
		left = tree.NewOperation(ch, left, right)
	}
	return left, true, nil
}

// tryMul parses one `multiplication` (multiplicative level).
func (p *parser) tryMul() (tree.Node, bool, error) {
	left, ok, err := p.tryOperand()
	if err != nil || !ok {
		return nil, ok, err
	}
	for {
		save := p.tok.Remember()
		ch, ok2 := p.tok.MatchChar('*', '/')
		if !ok2 {
			break
		}
		right, ok3, err := p.tryOperand()
		if err != nil {
			return nil, false, err
		}
		if !ok3 {
			p.tok.Recall(save)
			break
		}
		left = tree.NewOperation(ch, left, right)
	}
	return left, true, nil
}

func (p *parser) tryOperand() (tree.Node, bool, error) {
	if _, ok := p.tok.MatchChar('('); ok {
		inner, err := p.parseExpression()
		if err != nil {
			return nil, false, err
		}
		if _, ok := p.tok.MatchChar(')'); !ok {
			return nil, false, p.expect(")")
		}
		return tree.NewParen(inner), true, nil
	}

	save := p.tok.Remember()
	if _, ok := p.tok.MatchChar('-'); ok {
		operand, ok2, err := p.tryOperand()
		if err != nil {
			return nil, false, err
		}
		if !ok2 {
			p.tok.Recall(save)
			return p.tryEntity()
		}
		if num, isNum := operand.(*tree.Number); isNum {
			return tree.NewNumber(-num.Value, num.Unit), true, nil
		}
		return tree.NewOperation('-', tree.NewNumber(0, ""), operand), true, nil
	}
	return p.tryEntity()
}

func (p *parser) tryEntity() (tree.Node, bool, error) {
	loc := p.tok.GetNodeLocation()

	if quote, content, ok := p.tok.GetQuotedString(); ok {
		q := tree.NewQuoted(quote, false, content)
		q.Location, q.File = loc, p.file
		return q, true, nil
	}

	if n, ok, err := p.parseURLOrQuoted(); err != nil {
		return nil, false, err
	} else if ok {
		stampLocation(n, loc, p.file)
		return n, true, nil
	}

	if c, ok := p.tryHexColor(loc); ok {
		return c, true, nil
	}

	if numStr, ok := p.tok.MatchNumber(true, false); ok {
		unit := p.tryUnit()
		val, _ := strconv.ParseFloat(numStr, 64)
		n := tree.NewNumber(val, unit)
		n.Location, n.File = loc, p.file
		return n, true, nil
	}

	if p.tok.Peek("@{") {
		raw, ok := p.tok.MatchUntil('}', token.MatchUntilOptions{IncludeDelim: true})
		if ok {
			q := tree.NewQuoted(0, true, raw)
			q.Location, q.File = loc, p.file
			return q, true, nil
		}
	}

	if p.tok.Peek("@") {
		if name, ok := p.tok.MatchKeyword(-1, false); ok && strings.HasPrefix(name, "@") {
			v := tree.NewVariable(name)
			v.Location, v.File = loc, p.file
			return v, true, nil
		}
	}

	if name, ok := p.tok.MatchKeyword(-1, false); ok {
		if p.tok.Peek("(") {
			p.tok.MatchChar('(')
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, false, err
			}
			if _, ok := p.tok.MatchChar(')'); !ok {
				return nil, false, p.expect(")")
			}
			c := tree.NewCall(name, args)
			c.Location, c.File = loc, p.file
			return c, true, nil
		}
		kw := tree.NewKeyword(name)
		kw.Location, kw.File = loc, p.file
		return kw, true, nil
	}

	return nil, false, nil
}

func stampLocation(n tree.Node, loc int, file string) {
	switch t := n.(type) {
	case *tree.Url:
		t.Location, t.File = loc, file
	case *tree.Quoted:
		t.Location, t.File = loc, file
	}
}

// parseURLOrQuoted matches `url(...)`; GetQuotedString alone handles the
// plain-quoted-string entity case, so this only needs to special-case
// the url(...) wrapper (used both by the generic entity grammar and by
// @import's path production).
func (p *parser) parseURLOrQuoted() (tree.Node, bool, error) {
	if !p.tok.MatchExact("url(") {
		return nil, false, nil
	}
	var inner tree.Node
	if quote, content, ok := p.tok.GetQuotedString(); ok {
		inner = tree.NewQuoted(quote, false, content)
	} else {
		raw, ok := p.tok.MatchUntil(')', token.MatchUntilOptions{})
		if !ok {
			return nil, true, p.expect(")")
		}
		inner = tree.NewKeyword(intstrings.TrimSpace(raw))
	}
	if _, ok := p.tok.MatchChar(')'); !ok {
		return nil, true, p.expect(")")
	}
	return tree.NewUrl(inner), true, nil
}

func (p *parser) tryUnit() string {
	if ch, ok := p.tok.MatchChar('%'); ok {
		return string(ch)
	}
	save := p.tok.Remember()
	if name, ok := p.tok.MatchKeyword(-1, false); ok {
		if tree.RecognizedUnits[name] || tree.RecognizedUnits[strings.ToLower(name)] {
			return name
		}
	}
	p.tok.Recall(save)
	return ""
}

func (p *parser) parseCallArgs() ([]tree.Node, error) {
	var args []tree.Node
	if p.tok.Peek(")") {
		return args, nil
	}
	for {
		save := p.tok.Remember()
		if name, ok := p.tok.MatchKeyword(-1, false); ok {
			if _, ok2 := p.tok.MatchChar('='); ok2 {
				val, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, tree.NewAssignment(name, val))
				if _, ok3 := p.tok.MatchChar(','); ok3 {
					continue
				}
				break
			}
		}
		p.tok.Recall(save)
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if _, ok := p.tok.MatchChar(','); ok {
			continue
		}
		break
	}
	return args, nil
}
