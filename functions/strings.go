package functions

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/titpetric/lessgo-core/tree"
)

// escapeFn URL-encodes reserved characters without touching the rest of
// the string (LESS's escape(), narrower than encodeURIComponent).
func escapeFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	s, ok := asText(argAt(args, 0))
	if !ok {
		return nil, fmt.Errorf("escape(): argument is not a string")
	}
	replacer := strings.NewReplacer(
		"=", "%3D", ":", "%3A", "#", "%23", ";", "%3B", "(", "%28", ")", "%29",
		"%", "%25",
	)
	return tree.NewKeyword(replacer.Replace(s)), nil
}

// eFn strips quotes from a Quoted value, returning the raw escaped text
// as a Keyword (LESS's ~"..." / e() escaping).
func eFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	s, ok := asText(argAt(args, 0))
	if !ok {
		return nil, fmt.Errorf("e(): argument is not a string")
	}
	return tree.NewKeyword(s), nil
}

// replaceFn implements replace(string, pattern, replacement, flags?);
// pattern is treated as a regular expression. Only the first match is
// replaced unless flags contains "g".
func replaceFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	str, ok := asText(argAt(args, 0))
	if !ok {
		return nil, fmt.Errorf("replace(): argument 0 is not a string")
	}
	pattern, ok := asText(argAt(args, 1))
	if !ok {
		return nil, fmt.Errorf("replace(): argument 1 is not a string")
	}
	repl, ok := asText(argAt(args, 2))
	if !ok {
		return nil, fmt.Errorf("replace(): argument 2 is not a string")
	}
	global := false
	if flag, ok := asText(argAt(args, 3)); ok {
		global = strings.Contains(flag, "g")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		if global {
			return requoteLike(args[0], strings.ReplaceAll(str, pattern, repl)), nil
		}
		return requoteLike(args[0], strings.Replace(str, pattern, repl, 1)), nil
	}
	if global {
		return requoteLike(args[0], re.ReplaceAllString(str, repl)), nil
	}
	loc := re.FindStringIndex(str)
	if loc == nil {
		return requoteLike(args[0], str), nil
	}
	return requoteLike(args[0], str[:loc[0]]+repl+str[loc[1]:]), nil
}

// requoteLike wraps result the same way original was carried (Quoted
// stays Quoted with the same delimiter; anything else becomes a Keyword).
func requoteLike(original tree.Node, result string) tree.Node {
	if q, ok := original.(*tree.Quoted); ok {
		return tree.NewQuoted(q.Quote, q.Escaped, result)
	}
	return tree.NewKeyword(result)
}

// formatFn implements format(template, args...), substituting %s/%d/%a
// placeholders in source order.
func formatFn(args []tree.Node, env *tree.Env) (tree.Node, error) {
	tmpl, ok := asText(argAt(args, 0))
	if !ok {
		return nil, fmt.Errorf("format(): argument 0 is not a string")
	}
	rest := args[1:]
	idx := 0
	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '%' && i+1 < len(tmpl) {
			switch tmpl[i+1] {
			case 's', 'd', 'a', 'S', 'D', 'A':
				if idx < len(rest) {
					b.WriteString(stringifyArg(rest[idx]))
					idx++
				}
				i++
				continue
			case '%':
				b.WriteByte('%')
				i++
				continue
			}
		}
		b.WriteByte(tmpl[i])
	}
	return requoteLike(args[0], b.String()), nil
}

func stringifyArg(n tree.Node) string {
	if s, ok := asText(n); ok {
		return s
	}
	if num, ok := n.(*tree.Number); ok {
		return num.String()
	}
	return ""
}
