package parser

import (
	"strings"

	"github.com/titpetric/lessgo-core/tree"
)

// rawEntry is one comma/semicolon-separated item inside a parenthesized
// mixin header, before it is known whether the header is a definition's
// parameter list or a call's argument list.
type rawEntry struct {
	name     string // bare "@name" with no value, empty otherwise
	variadic bool
	value    tree.Node // the default (definition) or the argument value (call)
	named    bool      // true when value came from "name: expr" / "@name: expr"
}

// parseMixinParenthesized is reached once a single selector is followed
// by "(": it parses a neutral rawEntry list, then decides - based on
// whether "{" or ";"/EOF follows the closing ")" - whether this is a
// MixinDefinition or a MixinCall. Literal pattern-matching parameters
// (e.g. ".mixin(dark, @color)" matching on the literal "dark") are out
// of scope; only named/defaulted/variadic parameters are supported.
func (p *parser) parseMixinParenthesized(sel *tree.Selector, loc int) (tree.Node, error) {
	if _, ok := p.tok.MatchChar('('); !ok {
		return nil, p.expect("(")
	}
	entries, err := p.parseRawEntries()
	if err != nil {
		return nil, err
	}
	if _, ok := p.tok.MatchChar(')'); !ok {
		return nil, p.expect(")")
	}

	var guard tree.Node
	if p.peekWhen() {
		guard, err = p.parseGuard()
		if err != nil {
			return nil, err
		}
	}

	path := selectorPath(sel)

	if p.tok.Peek("{") {
		p.tok.MatchChar('{')
		body, err := p.parseBody(false)
		if err != nil {
			return nil, err
		}
		if _, ok := p.tok.MatchChar('}'); !ok {
			return nil, p.expect("}")
		}
		params := make([]tree.Param, len(entries))
		for i, e := range entries {
			params[i] = tree.Param{Name: e.name, Default: e.value, Variadic: e.variadic}
		}
		md := tree.NewMixinDefinition(path, params, guard, body)
		md.Location, md.File = loc, p.file
		return md, nil
	}

	important := p.tok.MatchExact("!important")
	p.tok.MatchChar(';')
	args := make([]tree.CallArg, 0, len(entries))
	for _, e := range entries {
		if e.named {
			args = append(args, tree.CallArg{Name: e.name, Value: e.value})
			continue
		}
		if e.value != nil {
			args = append(args, tree.CallArg{Value: e.value})
		}
	}
	mc := tree.NewMixinCall(path, args, important)
	mc.Location, mc.File = loc, p.file
	return mc, nil
}

// parseRawEntries parses a comma/semicolon-separated list of header
// entries. Both separators are accepted interchangeably, which loses
// fidelity for the rare case of a semicolon-grouped comma-list argument
// (e.g. "@a: 1, 2; @b: 3") - an accepted simplification.
func (p *parser) parseRawEntries() ([]rawEntry, error) {
	var entries []rawEntry
	if p.tok.Peek(")") {
		return entries, nil
	}
	for {
		e, err := p.parseRawEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
		if _, ok := p.tok.MatchChar(',', ';'); ok {
			if p.tok.Peek(")") {
				break
			}
			continue
		}
		break
	}
	return entries, nil
}

func (p *parser) parseRawEntry() (rawEntry, error) {
	if p.tok.MatchExact("...") {
		return rawEntry{variadic: true}, nil
	}

	save := p.tok.Remember()
	if name, ok := p.tok.MatchKeyword(-1, false); ok && strings.HasPrefix(name, "@") {
		if p.tok.MatchExact("...") {
			return rawEntry{name: name, variadic: true}, nil
		}
		if _, ok := p.tok.MatchChar(':'); ok {
			val, err := p.parseExpression()
			if err != nil {
				return rawEntry{}, err
			}
			return rawEntry{name: name, value: val, named: true}, nil
		}
		if p.tok.Peek(",") || p.tok.Peek(";") || p.tok.Peek(")") {
			return rawEntry{name: name}, nil
		}
		p.tok.Recall(save)
	}

	val, err := p.parseExpression()
	if err != nil {
		return rawEntry{}, err
	}
	return rawEntry{value: val}, nil
}

// ---- guard grammar ----------------------------------------------------------

// parseGuard parses a `when (...)` clause: comma-separated OR groups of
// `and`-joined, optionally `not`-negated atoms.
func (p *parser) parseGuard() (tree.Node, error) {
	if _, ok := p.tok.MatchKeyword(-1, false); !ok {
		return nil, p.expect("when")
	}
	return p.parseConditionOrChain()
}

func (p *parser) parseConditionOrChain() (tree.Node, error) {
	left, err := p.parseAndChain()
	if err != nil {
		return nil, err
	}
	for {
		save := p.tok.Remember()
		if _, ok := p.tok.MatchChar(','); !ok {
			break
		}
		right, err := p.parseAndChain()
		if err != nil {
			p.tok.Recall(save)
			break
		}
		left = tree.NewCondition(left, "or", right, false)
	}
	return left, nil
}

func (p *parser) parseAndChain() (tree.Node, error) {
	left, err := p.parseGuardAtom()
	if err != nil {
		return nil, err
	}
	for {
		save := p.tok.Remember()
		kw, ok := p.tok.MatchKeyword(-1, false)
		if !ok || !strings.EqualFold(kw, "and") {
			p.tok.Recall(save)
			break
		}
		right, err := p.parseGuardAtom()
		if err != nil {
			return nil, err
		}
		left = tree.NewCondition(left, "and", right, false)
	}
	return left, nil
}

func (p *parser) parseGuardAtom() (tree.Node, error) {
	negate := false
	save := p.tok.Remember()
	if kw, ok := p.tok.MatchKeyword(-1, false); ok && strings.EqualFold(kw, "not") {
		negate = true
	} else {
		p.tok.Recall(save)
	}

	if _, ok := p.tok.MatchChar('('); ok {
		inner, err := p.parseGuardInnerParen()
		if err != nil {
			return nil, err
		}
		if _, ok := p.tok.MatchChar(')'); !ok {
			return nil, p.expect(")")
		}
		if negate {
			return tree.NewCondition(inner, "not", nil, false), nil
		}
		return inner, nil
	}

	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if negate {
		return tree.NewCondition(e, "not", nil, false), nil
	}
	return e, nil
}

// parseGuardInnerParen parses the contents of one parenthesized guard
// atom: either a comparison ("@a > 0") or a bare truthy expression
// ("default()").
func (p *parser) parseGuardInnerParen() (tree.Node, error) {
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	for _, op := range []string{"<=", ">=", "=", "<", ">"} {
		save := p.tok.Remember()
		if p.tok.MatchExact(op) {
			right, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return tree.NewCondition(left, op, right, false), nil
		}
		p.tok.Recall(save)
	}
	return left, nil
}
