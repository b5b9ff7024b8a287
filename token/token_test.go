package token

import (
	"regexp"
	"testing"

	"github.com/titpetric/lessgo-core/chunk"
)

func scanAndTokenize(t *testing.T, src string) *Tokenizer {
	t.Helper()
	norm := chunk.Normalize(src)
	chunks, err := chunk.New(1).Scan(norm)
	if err != nil {
		t.Fatalf("unexpected chunk error: %v", err)
	}
	return New(norm, chunks, "input.less")
}

func TestMatchExactConsumesTrailingWhitespace(t *testing.T) {
	tok := scanAndTokenize(t, "width  :  10px")
	if !tok.MatchExact("width") {
		t.Fatal("expected MatchExact(\"width\") to succeed")
	}
	if _, ok := tok.MatchChar(':'); !ok {
		t.Fatal("expected MatchChar(':') to succeed")
	}
	if tok.Index() == 0 {
		t.Fatal("expected cursor to have advanced")
	}
}

func TestMatchRegexAnchoredAtCursor(t *testing.T) {
	tok := scanAndTokenize(t, "123px rest")
	re := regexp.MustCompile(`^[0-9]+`)
	m := tok.MatchRegex(re)
	if len(m) == 0 || m[0] != "123" {
		t.Fatalf("expected match \"123\", got %v", m)
	}
}

func TestGetQuotedStringRequiresExactPosition(t *testing.T) {
	tok := scanAndTokenize(t, `"hello"`)
	quote, content, ok := tok.GetQuotedString()
	if !ok || quote != '"' || content != "hello" {
		t.Fatalf("GetQuotedString() = %q %q %v", quote, content, ok)
	}
	if !tok.EOF() {
		t.Fatal("expected tokenizer to be at EOF after consuming the whole string")
	}

	tok = scanAndTokenize(t, `x "hi"`)
	if _, _, ok := tok.GetQuotedString(); ok {
		t.Fatal("expected GetQuotedString to fail when the cursor is not at the string's start")
	}
}

func TestGetCommentBlockAndLine(t *testing.T) {
	tok := scanAndTokenize(t, "/* a */")
	text, isBlock, ok := tok.GetComment()
	if !ok || !isBlock || text != "/* a */" {
		t.Fatalf("GetComment() = %q %v %v", text, isBlock, ok)
	}

	tok = scanAndTokenize(t, "// b")
	text, isBlock, ok = tok.GetComment()
	if !ok || isBlock || text != "// b" {
		t.Fatalf("GetComment() = %q %v %v", text, isBlock, ok)
	}
}

func TestRememberRecallRoundTrips(t *testing.T) {
	tok := scanAndTokenize(t, "abc def")
	save := tok.Remember()
	tok.MatchExact("abc")
	if tok.Index() == save.Index {
		t.Fatal("expected cursor to have advanced past the saved position")
	}
	tok.Recall(save)
	if tok.Index() != save.Index {
		t.Fatal("expected Recall to restore the saved cursor position")
	}
}

func TestMatchUntilFindsDelimiter(t *testing.T) {
	tok := scanAndTokenize(t, "abc;def")
	result, ok := tok.MatchUntil(';', MatchUntilOptions{})
	if !ok || result != "abc" {
		t.Fatalf("MatchUntil = %q %v, want \"abc\" true", result, ok)
	}
}
