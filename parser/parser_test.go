package parser

import (
	"testing"

	"github.com/titpetric/lessgo-core/tree"
)

func TestParseVariableDeclaration(t *testing.T) {
	nodes, err := Parse(`@a: 10px;`, "input.less")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(nodes))
	}
	r, ok := nodes[0].(*tree.Rule)
	if !ok {
		t.Fatalf("expected *tree.Rule, got %T", nodes[0])
	}
	if !r.Variable || r.Name != "@a" {
		t.Fatalf("expected variable @a, got Variable=%v Name=%q", r.Variable, r.Name)
	}
}

func TestParseSimpleRuleset(t *testing.T) {
	nodes, err := Parse(`.a{ color: red; width: 10px; }`, "input.less")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(nodes))
	}
	rs, ok := nodes[0].(*tree.Ruleset)
	if !ok {
		t.Fatalf("expected *tree.Ruleset, got %T", nodes[0])
	}
	if len(rs.Selectors) != 1 {
		t.Fatalf("expected 1 selector, got %d", len(rs.Selectors))
	}
	if len(rs.Rules) != 2 {
		t.Fatalf("expected 2 rules in the ruleset body, got %d", len(rs.Rules))
	}
}

func TestParseMergeProperty(t *testing.T) {
	nodes, err := Parse(`.a{ prop+: 1; prop+: 2; }`, "input.less")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rs := nodes[0].(*tree.Ruleset)
	for _, n := range rs.Rules {
		r, ok := n.(*tree.Rule)
		if !ok {
			t.Fatalf("expected *tree.Rule, got %T", n)
		}
		if r.Merge != ", " {
			t.Fatalf("expected merge separator \", \", got %q", r.Merge)
		}
	}
}

func TestParseMixinCall(t *testing.T) {
	nodes, err := Parse(`.a{ .mixin; }`, "input.less")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rs := nodes[0].(*tree.Ruleset)
	if len(rs.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rs.Rules))
	}
	if _, ok := rs.Rules[0].(*tree.MixinCall); !ok {
		t.Fatalf("expected *tree.MixinCall, got %T", rs.Rules[0])
	}
}

func TestParseUnbalancedBracesIsAnError(t *testing.T) {
	_, err := Parse(`.a{ color: red; `, "input.less")
	if err == nil {
		t.Fatal("expected an error for unbalanced braces")
	}
}

func TestParseWithLevelZeroStillParses(t *testing.T) {
	nodes, err := ParseWithLevel(`.a{ color: red; }`, "input.less", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(nodes))
	}
}
