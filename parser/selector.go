package parser

import (
	"regexp"
	"strings"

	intstrings "github.com/titpetric/lessgo-core/internal/strings"
	"github.com/titpetric/lessgo-core/token"
	"github.com/titpetric/lessgo-core/tree"
)

// compoundRe matches one compound simple-selector run: any sequence of
// "&", "*", "%", ".class"/"#id", "::?pseudo(args)?", "@{interpolation}"
// and bareword segments, with no embedded whitespace ("[attr]" segments
// are parsed separately by parseAttribute). Matching
// the whole run in one call lets the tokenizer's automatic trailing-
// whitespace consumption tell us, for free, whether the next compound
// is adjacent (no combinator) or separated (implicit descendant
// combinator) - Go's RE2 has no lookahead, so a hand-rolled char loop
// would need the same state machine this regex already encodes.
var compoundRe = regexp.MustCompile(
	`^(?:&|\*|%|\.[A-Za-z0-9_-]+|#[A-Za-z0-9_-]+|::?[A-Za-z-]+(?:\([^)]*\))?|@\{[^}]*\}|[A-Za-z][A-Za-z0-9_-]*)+`)

// parseSelectorList parses a comma-separated list of selectors, each
// possibly carrying a trailing ":extend(...)" clause. Extends are
// returned separately from the Selector nodes: Extend.Evaluate reads
// the owning ruleset's current selector stack regardless of which
// selector in the comma-list triggered it, so callers attach them as
// standalone statement nodes rather than via Selector.Extends.
func (p *parser) parseSelectorList() ([]*tree.Selector, []*tree.Extend, error) {
	var sels []*tree.Selector
	var exts []*tree.Extend
	for {
		p.tok.ConsumeWhitespace()
		sel, ex, err := p.parseSelector()
		if err != nil {
			return nil, nil, err
		}
		if sel == nil {
			break
		}
		sels = append(sels, sel)
		exts = append(exts, ex...)
		if _, ok := p.tok.MatchChar(','); !ok {
			break
		}
	}
	return sels, exts, nil
}

// parseSelector parses one selector: a combinator-joined list of
// compound elements, plus attribute selectors, plus any trailing
// :extend() clauses.
func (p *parser) parseSelector() (*tree.Selector, []*tree.Extend, error) {
	var elements []*tree.Element
	var exts []*tree.Extend
	first := true

	for {
		if !first && p.peekWhen() {
			break
		}
		loc := p.tok.GetNodeLocation()
		var comb tree.Combinator
		if ch, ok := p.tok.MatchChar('+', '>', '~'); ok {
			comb = tree.Combinator(ch)
			p.tok.ConsumeWhitespace()
		} else if !first {
			comb = " "
		}

		if p.tok.Peek("[") {
			attr, err := p.parseAttribute()
			if err != nil {
				return nil, nil, err
			}
			el := tree.NewElement(comb, attr)
			el.Location, el.File = loc, p.file
			elements = append(elements, el)
			first = false
			continue
		}

		text, matched := p.parseCompoundText()
		if !matched || text == "" {
			break
		}
		el := tree.NewElement(comb, tree.NewKeyword(text))
		el.Location, el.File = loc, p.file
		elements = append(elements, el)
		first = false

		if p.tok.Peek(":extend(") {
			more, err := p.parseExtendTail()
			if err != nil {
				return nil, nil, err
			}
			exts = append(exts, more...)
		}

		if p.tok.Peek("{") || p.tok.Peek(",") || p.tok.Peek("(") || p.tok.Peek(";") || p.tok.EOF() {
			break
		}
	}

	if len(elements) == 0 {
		return nil, nil, nil
	}
	return tree.NewSelector(elements), exts, nil
}

// parseCompoundText matches one compound run via compoundRe, then
// strips any ":extend(" substring that got swallowed into the match
// (RE2 can't exclude it via negative lookahead): it finds the
// substring's byte offset and recalls the tokenizer to just before it,
// leaving the cursor positioned for parseExtendTail to consume the
// clause for real.
func (p *parser) parseCompoundText() (string, bool) {
	save := p.tok.Remember()
	matches := p.tok.MatchRegex(compoundRe)
	if len(matches) == 0 {
		p.tok.Recall(save)
		return "", false
	}
	text := matches[0]
	if idx := strings.Index(text, ":extend("); idx >= 0 {
		p.tok.Recall(save)
		p.tok.MatchExact(text[:idx])
		return text[:idx], true
	}
	return text, true
}

// parseAttribute parses "[key op value]" via a raw scan to the closing
// bracket, then splits on the first comparison operator. A quoted value
// containing a literal "]" would defeat this raw scan - an accepted
// simplification.
func (p *parser) parseAttribute() (*tree.Attribute, error) {
	if _, ok := p.tok.MatchChar('['); !ok {
		return nil, p.expect("[")
	}
	raw, ok := p.tok.MatchUntil(']', token.MatchUntilOptions{})
	if !ok {
		return nil, p.expect("]")
	}
	if _, ok := p.tok.MatchChar(']'); !ok {
		return nil, p.expect("]")
	}
	raw = intstrings.TrimSpace(raw)
	for _, op := range []string{"~=", "|=", "^=", "$=", "*=", "="} {
		if idx := strings.Index(raw, op); idx >= 0 {
			key := intstrings.TrimSpace(raw[:idx])
			val := intstrings.TrimSpace(raw[idx+len(op):])
			val = strings.Trim(val, `"'`)
			return tree.NewAttribute(key, op, val), nil
		}
	}
	return tree.NewAttribute(raw, "", ""), nil
}

// parseExtendTail parses a trailing ":extend(sel, sel2, ... [all])"
// clause.
func (p *parser) parseExtendTail() ([]*tree.Extend, error) {
	if !p.tok.MatchExact(":extend(") {
		return nil, nil
	}
	var exts []*tree.Extend
	for {
		sel, _, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		if sel == nil {
			return nil, p.expect("a selector in :extend()")
		}
		partial := false
		if n := len(sel.Elements); n > 1 && sel.Elements[n-1].Combinator == " " &&
			strings.EqualFold(elementText(sel.Elements[n-1]), "all") {
			sel.Elements = sel.Elements[:n-1]
			partial = true
		}
		save := p.tok.Remember()
		if kw, ok := p.tok.MatchKeyword(-1, false); ok {
			if strings.EqualFold(kw, "all") {
				partial = true
			} else {
				p.tok.Recall(save)
			}
		}
		exts = append(exts, tree.NewExtend(sel, partial))
		if _, ok := p.tok.MatchChar(','); ok {
			continue
		}
		break
	}
	if _, ok := p.tok.MatchChar(')'); !ok {
		return nil, p.expect(")")
	}
	return exts, nil
}

// ---- helpers shared with parser.go/mixin.go --------------------------------

func elementText(el *tree.Element) string {
	switch v := el.Value.(type) {
	case *tree.Keyword:
		return v.Text
	case *tree.TextNode:
		return v.Text
	default:
		return ""
	}
}

// selectorPath renders a single-selector's elements as a mixin-call
// dotted path, e.g. [".mixin"] or ["#ns", ".mixin"].
func selectorPath(sel *tree.Selector) []string {
	var parts []string
	for _, el := range sel.Elements {
		if t := elementText(el); t != "" {
			parts = append(parts, t)
		}
	}
	return parts
}

// isPureExtendSelector reports whether sels is a bare "&" selector list
// with no further content, meaning a trailing extend clause was the
// entire statement rather than a zero-arg mixin call.
func isPureExtendSelector(sels []*tree.Selector) bool {
	if len(sels) != 1 || len(sels[0].Elements) != 1 {
		return false
	}
	return elementText(sels[0].Elements[0]) == "&"
}

func prependExtends(exts []*tree.Extend, rules []tree.Node) []tree.Node {
	if len(exts) == 0 {
		return rules
	}
	out := make([]tree.Node, 0, len(exts)+len(rules))
	for _, e := range exts {
		out = append(out, e)
	}
	out = append(out, rules...)
	return out
}

func toNodes(exts []*tree.Extend) []tree.Node {
	out := make([]tree.Node, len(exts))
	for i, e := range exts {
		out[i] = e
	}
	return out
}
