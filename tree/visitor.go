package tree

import "strings"

// ResolveExtends runs the extend-resolution pass (spec §4.4, §8 scenario
// D) over the fully-evaluated tree: for every extend request recorded
// during evaluation, it finds every Ruleset whose selector text matches
// the request's target and appends the extender's own selector(s) as
// additional, comma-separated alternatives.
//
// An exact request (no trailing `all`) matches a candidate selector only
// on full equality; a partial request matches if the target selector
// text appears anywhere within the candidate's.
func ResolveExtends(env *Env, root Node) Node {
	for _, req := range env.extendRequests {
		if len(req.extenderSelectors) == 0 {
			continue
		}
		root.Accept(func(n Node) Node {
			rs, ok := n.(*Ruleset)
			if !ok {
				return n
			}
			matched := false
			for _, sel := range rs.Selectors {
				if extendMatches(sel.CSSText(env), req.target, req.partial) {
					matched = true
					break
				}
			}
			if !matched {
				return n
			}
			for _, text := range req.extenderSelectors {
				if selectorAlreadyPresent(rs.Selectors, text, env) {
					continue
				}
				rs.Selectors = append(rs.Selectors, textSelector(text))
			}
			return n
		})
	}
	return root
}

func extendMatches(candidate, target string, partial bool) bool {
	if partial {
		return strings.Contains(candidate, target)
	}
	return candidate == target
}

func selectorAlreadyPresent(selectors []*Selector, text string, env *Env) bool {
	for _, s := range selectors {
		if s.CSSText(env) == text {
			return true
		}
	}
	return false
}

func textSelector(text string) *Selector {
	return &Selector{Elements: []*Element{NewElement("", NewTextNode(text))}}
}
