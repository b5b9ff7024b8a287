package functions

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/titpetric/lessgo-core/tree"
)

func requireQuoted(t *testing.T, n tree.Node, content string) {
	t.Helper()
	q, ok := n.(*tree.Quoted)
	require.True(t, ok, "expected *tree.Quoted, got %T", n)
	require.Equal(t, content, q.Content)
}

func TestEscapeFn(t *testing.T) {
	result := callFn(t, "escape", tree.NewQuoted('"', false, "a=b;c"))
	kw, ok := result.(*tree.Keyword)
	require.True(t, ok)
	require.Equal(t, "a%3Db%3Bc", kw.Text)
}

func TestEFn(t *testing.T) {
	result := callFn(t, "e", tree.NewQuoted('"', false, "raw\\ntext"))
	kw, ok := result.(*tree.Keyword)
	require.True(t, ok)
	require.Equal(t, "raw\\ntext", kw.Text)
}

func TestReplaceFnFirstMatchOnly(t *testing.T) {
	result := callFn(t, "replace",
		tree.NewQuoted('"', false, "a-a-a"),
		tree.NewQuoted('"', false, "a"),
		tree.NewQuoted('"', false, "b"),
	)
	requireQuoted(t, result, "b-a-a")
}

func TestReplaceFnGlobalFlag(t *testing.T) {
	result := callFn(t, "replace",
		tree.NewQuoted('"', false, "a-a-a"),
		tree.NewQuoted('"', false, "a"),
		tree.NewQuoted('"', false, "b"),
		tree.NewQuoted('"', false, "g"),
	)
	requireQuoted(t, result, "b-b-b")
}

func TestFormatFn(t *testing.T) {
	result := callFn(t, "format",
		tree.NewQuoted('"', false, "%s of %d"),
		tree.NewQuoted('"', false, "width"),
		tree.NewNumber(10, "px"),
	)
	requireQuoted(t, result, "width of 10px")
}
