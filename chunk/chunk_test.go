package chunk

import "testing"

func TestNormalizeLineEndings(t *testing.T) {
	cases := map[string]string{
		"a\r\nb":  "a\nb",
		"a\rb":    "a\nb",
		"a\nb":    "a\nb",
		"a\r\n\r\nb": "a\n\nb",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScanLevelZeroReturnsSingleChunk(t *testing.T) {
	src := `.a{ color: "red"; /* c */ }`
	chunks, err := New(0).Scan(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Kind != Text || chunks[0].Start != 0 || chunks[0].End != len(src) {
		t.Fatalf("expected a single whole-source Text chunk, got %v", chunks)
	}
}

func TestScanClassifiesCommentsAndStrings(t *testing.T) {
	src := `.a{ content: "x // y"; /* block */ width: 1px; }`
	chunks, err := New(1).Scan(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawQuoted, sawComment bool
	for _, c := range chunks {
		switch c.Kind {
		case QuotedString:
			sawQuoted = true
			if src[c.Start:c.End] != `"x // y"` {
				t.Errorf("quoted chunk text = %q", src[c.Start:c.End])
			}
		case Comment:
			sawComment = true
			if src[c.Start:c.End] != "/* block */" {
				t.Errorf("comment chunk text = %q", src[c.Start:c.End])
			}
		}
	}
	if !sawQuoted {
		t.Error("expected a QuotedString chunk")
	}
	if !sawComment {
		t.Error("expected a Comment chunk")
	}
}

func TestScanUnterminatedCommentError(t *testing.T) {
	_, err := New(1).Scan(`.a{ /* unterminated `)
	ce, ok := err.(*Error)
	if !ok || ce.Kind != "UnterminatedComment" {
		t.Fatalf("expected UnterminatedComment error, got %v", err)
	}
}

func TestScanUnbalancedBracesError(t *testing.T) {
	_, err := New(1).Scan(`.a{ color: red; `)
	ce, ok := err.(*Error)
	if !ok || ce.Kind != "UnbalancedBraces" {
		t.Fatalf("expected UnbalancedBraces error, got %v", err)
	}
}

func TestScanLineCommentSuppressedInsideParams(t *testing.T) {
	src := `.a{ width: calc(1px // not a comment here in plain CSS
); }`
	chunks, err := New(1).Scan(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range chunks {
		if c.Kind == Comment {
			t.Fatalf("did not expect a Comment chunk inside parens, got %v", c)
		}
	}
}
