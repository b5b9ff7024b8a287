package parser

import (
	"regexp"
	"strings"

	intstrings "github.com/titpetric/lessgo-core/internal/strings"
	"github.com/titpetric/lessgo-core/token"
	"github.com/titpetric/lessgo-core/tree"
)

var hexDigitsRe = regexp.MustCompile(`^[0-9a-fA-F]+`)

// tryAtRule dispatches on an `@`-prefixed keyword. It recalls and
// returns (nil, nil) for any name it doesn't recognize as a directive,
// so the caller can retry the same "@name" as a variable declaration.
func (p *parser) tryAtRule(loc int) (tree.Node, error) {
	if !p.tok.Peek("@") {
		return nil, nil
	}
	save := p.tok.Remember()
	name, ok := p.tok.MatchKeyword(-1, false)
	if !ok {
		return nil, nil
	}

	switch strings.ToLower(name) {
	case "@import":
		return p.parseImport(loc)
	case "@media":
		return p.parseMedia(loc)
	case "@keyframes", "@-webkit-keyframes", "@-moz-keyframes", "@-o-keyframes":
		return p.parseKeyFrames(loc, name)
	case "@charset":
		return p.parseSimpleDirective(loc, name)
	case "@font-face", "@page", "@document", "@supports", "@viewport":
		return p.parseBlockDirective(loc, name)
	default:
		p.tok.Recall(save)
		return nil, nil
	}
}

// parseImport parses `@import (opt, opt2) "path" features;`. Import
// options are a LEADING parenthesized list (not trailing).
func (p *parser) parseImport(loc int) (tree.Node, error) {
	options := map[string]bool{}
	if _, ok := p.tok.MatchChar('('); ok {
		for {
			if name, ok := p.tok.MatchKeyword(-1, false); ok {
				options[strings.ToLower(name)] = true
			}
			if _, ok := p.tok.MatchChar(','); ok {
				continue
			}
			break
		}
		if _, ok := p.tok.MatchChar(')'); !ok {
			return nil, p.expect(")")
		}
	}

	path, err := p.parseImportPath()
	if err != nil {
		return nil, err
	}

	var features tree.Node
	if !p.tok.Peek(";") {
		features, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	p.tok.MatchChar(';')

	im := tree.NewImport(path, features, options)
	im.Location, im.File = loc, p.file
	return im, nil
}

// parseImportPath parses a quoted string or url(...) import target.
func (p *parser) parseImportPath() (tree.Node, error) {
	ploc := p.tok.GetNodeLocation()
	if quote, content, ok := p.tok.GetQuotedString(); ok {
		q := tree.NewQuoted(quote, false, content)
		q.Location, q.File = ploc, p.file
		return q, nil
	}
	if n, ok, err := p.parseURLOrQuoted(); err != nil {
		return nil, err
	} else if ok {
		stampLocation(n, ploc, p.file)
		return n, nil
	}
	return nil, p.expect("an import path")
}

func (p *parser) parseMedia(loc int) (tree.Node, error) {
	var features tree.Node
	if !p.tok.Peek("{") {
		f, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		features = f
	}
	if _, ok := p.tok.MatchChar('{'); !ok {
		return nil, p.expect("{")
	}
	rules, err := p.parseBody(false)
	if err != nil {
		return nil, err
	}
	if _, ok := p.tok.MatchChar('}'); !ok {
		return nil, p.expect("}")
	}
	m := tree.NewMedia(features, rules)
	m.Location, m.File = loc, p.file
	return m, nil
}

// parseKeyFrames parses `@keyframes name { from {...} 50% {...} to {...} }`.
func (p *parser) parseKeyFrames(loc int, name string) (tree.Node, error) {
	identifier := ""
	if !p.tok.Peek("{") {
		if kw, ok := p.tok.MatchKeyword(-1, false); ok {
			identifier = kw
		}
	}
	if _, ok := p.tok.MatchChar('{'); !ok {
		return nil, p.expect("{")
	}

	var steps []tree.Node
	for {
		p.tok.ConsumeWhitespace()
		if p.tok.Peek("}") || p.tok.EOF() {
			break
		}
		kloc := p.tok.GetNodeLocation()
		idents, err := p.parseKeyframeSelectors()
		if err != nil {
			return nil, err
		}
		if _, ok := p.tok.MatchChar('{'); !ok {
			return nil, p.expect("{")
		}
		rules, err := p.parseBody(false)
		if err != nil {
			return nil, err
		}
		if _, ok := p.tok.MatchChar('}'); !ok {
			return nil, p.expect("}")
		}
		kf := tree.NewKeyFrame(idents, rules)
		kf.Location, kf.File = kloc, p.file
		steps = append(steps, kf)
	}
	if _, ok := p.tok.MatchChar('}'); !ok {
		return nil, p.expect("}")
	}

	d := tree.NewDirective(name, identifier, steps, nil)
	d.Location, d.File = loc, p.file
	return d, nil
}

func (p *parser) parseKeyframeSelectors() ([]string, error) {
	var idents []string
	for {
		if numStr, ok := p.tok.MatchNumber(true, false); ok {
			if _, ok := p.tok.MatchChar('%'); ok {
				idents = append(idents, numStr+"%")
			} else {
				idents = append(idents, numStr)
			}
		} else if kw, ok := p.tok.MatchKeyword(-1, false); ok {
			idents = append(idents, kw)
		} else {
			break
		}
		if _, ok := p.tok.MatchChar(','); ok {
			continue
		}
		break
	}
	if len(idents) == 0 {
		return nil, p.expect("a keyframe selector")
	}
	return idents, nil
}

// parseSimpleDirective parses a single-expression directive like
// `@charset "utf-8";`.
func (p *parser) parseSimpleDirective(loc int, name string) (tree.Node, error) {
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.tok.MatchChar(';')
	d := tree.NewDirective(name, "", nil, val)
	d.Location, d.File = loc, p.file
	return d, nil
}

// parseBlockDirective parses a generic `@name identifier? { ... }`
// directive (@font-face, @page, @document, @supports, @viewport).
func (p *parser) parseBlockDirective(loc int, name string) (tree.Node, error) {
	identifier := ""
	if !p.tok.Peek("{") {
		raw, ok := p.tok.MatchUntil('{', token.MatchUntilOptions{})
		if ok {
			identifier = intstrings.TrimSpace(raw)
		}
	}
	if _, ok := p.tok.MatchChar('{'); !ok {
		return nil, p.expect("{")
	}
	rules, err := p.parseBody(false)
	if err != nil {
		return nil, err
	}
	if _, ok := p.tok.MatchChar('}'); !ok {
		return nil, p.expect("}")
	}
	d := tree.NewDirective(name, identifier, rules, nil)
	d.Location, d.File = loc, p.file
	return d, nil
}

// tryHexColor parses "#" followed by 3/4/6/8 hex digits, expanding short
// forms by doubling each nibble.
func (p *parser) tryHexColor(loc int) (*tree.Color, bool) {
	if !p.tok.Peek("#") {
		return nil, false
	}
	save := p.tok.Remember()
	p.tok.MatchChar('#')
	matches := p.tok.MatchRegex(hexDigitsRe)
	if len(matches) == 0 {
		p.tok.Recall(save)
		return nil, false
	}
	hex := matches[0]
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		p.tok.Recall(save)
		return nil, false
	}
	c := parseHexColor(hex)
	c.Location, c.File = loc, p.file
	return c, true
}

func parseHexColor(hex string) *tree.Color {
	expand := func(s string) string {
		if len(s) == 3 || len(s) == 4 {
			out := make([]byte, 0, len(s)*2)
			for i := 0; i < len(s); i++ {
				out = append(out, s[i], s[i])
			}
			return string(out)
		}
		return s
	}
	full := expand(hex)
	hx := func(s string) float64 {
		v := 0
		for _, c := range s {
			v *= 16
			switch {
			case c >= '0' && c <= '9':
				v += int(c - '0')
			case c >= 'a' && c <= 'f':
				v += int(c-'a') + 10
			case c >= 'A' && c <= 'F':
				v += int(c-'A') + 10
			}
		}
		return float64(v)
	}
	r := hx(full[0:2])
	g := hx(full[2:4])
	b := hx(full[4:6])
	a := 1.0
	if len(full) == 8 {
		a = hx(full[6:8]) / 255
	}
	return tree.NewColor(r, g, b, a)
}
