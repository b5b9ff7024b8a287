// Package token provides positional scanning primitives over a
// chunk-classified source string. It is the tokenizer layer of the
// compiler front end: the parser drives it to match literals, regexes,
// and hand-rolled numeric/keyword scanners, always anchored at the
// current cursor position.
package token

import (
	"regexp"
	"strings"

	"github.com/titpetric/lessgo-core/chunk"
)

// Position is a saved/restorable cursor location (byte index plus the
// owning chunk index, so Remember/Recall is O(1)).
type Position struct {
	Index    int
	ChunkIdx int
}

// Tokenizer walks a chunked source from left to right. It never scans
// backwards except via Recall, and every successful match consumes
// trailing whitespace so that the grammar above it is effectively
// whitespace-insensitive.
type Tokenizer struct {
	Source string
	Chunks []chunk.Chunk

	i        int // absolute byte index
	chunkIdx int

	File string
}

// New builds a Tokenizer over an already-chunked, newline-normalized
// source.
func New(source string, chunks []chunk.Chunk, file string) *Tokenizer {
	return &Tokenizer{Source: source, Chunks: chunks, File: file}
}

func (t *Tokenizer) syncChunk() {
	for t.chunkIdx < len(t.Chunks)-1 && t.i >= t.Chunks[t.chunkIdx].End {
		t.chunkIdx++
	}
	for t.chunkIdx > 0 && t.i < t.Chunks[t.chunkIdx].Start {
		t.chunkIdx--
	}
}

// CurrentChunk returns the chunk containing the cursor, or a zero-value
// Text chunk spanning the rest of the source if chunks are exhausted.
func (t *Tokenizer) CurrentChunk() chunk.Chunk {
	t.syncChunk()
	if t.chunkIdx < len(t.Chunks) {
		return t.Chunks[t.chunkIdx]
	}
	return chunk.Chunk{Kind: chunk.Text, Start: t.i, End: len(t.Source)}
}

// EOF reports whether the cursor has reached the end of the source.
func (t *Tokenizer) EOF() bool {
	return t.i >= len(t.Source)
}

// Index returns the current absolute byte offset.
func (t *Tokenizer) Index() int { return t.i }

// Remember snapshots the cursor for later backtracking.
func (t *Tokenizer) Remember() Position {
	return Position{Index: t.i, ChunkIdx: t.chunkIdx}
}

// Recall restores a previously remembered cursor.
func (t *Tokenizer) Recall(p Position) {
	t.i = p.Index
	t.chunkIdx = p.ChunkIdx
}

// GetNodeLocation captures the current absolute index for attaching to a
// freshly created AST node.
func (t *Tokenizer) GetNodeLocation() int { return t.i }

// ConsumeWhitespace skips and counts whitespace at the cursor.
func (t *Tokenizer) ConsumeWhitespace() int {
	n := 0
	for t.i < len(t.Source) {
		c := t.Source[t.i]
		if c == ' ' || c == '\t' || c == '\n' {
			t.i++
			n++
			continue
		}
		break
	}
	return n
}

// inTextChunk reports whether the cursor currently sits inside a Text
// chunk (the only chunk kind the tokenizer is allowed to match within).
func (t *Tokenizer) inTextChunk() bool {
	c := t.CurrentChunk()
	return c.Kind == chunk.Text && t.i < c.End
}

// MatchExact succeeds only inside a Text chunk, at the cursor exactly.
// On success it advances past the literal and any trailing whitespace.
func (t *Tokenizer) MatchExact(s string) bool {
	if !t.inTextChunk() {
		return false
	}
	if strings.HasPrefix(t.Source[t.i:], s) {
		t.i += len(s)
		t.ConsumeWhitespace()
		return true
	}
	return false
}

// MatchChar succeeds if the current byte (inside a Text chunk) is one of
// chars.
func (t *Tokenizer) MatchChar(chars ...byte) (byte, bool) {
	if !t.inTextChunk() {
		return 0, false
	}
	c := t.Source[t.i]
	for _, want := range chars {
		if c == want {
			t.i++
			t.ConsumeWhitespace()
			return c, true
		}
	}
	return 0, false
}

// MatchRegex anchors re at the cursor (inside a Text chunk) and, on
// success, advances past the match plus trailing whitespace. It returns
// the submatch slice (same semantics as regexp.FindStringSubmatch).
func (t *Tokenizer) MatchRegex(re *regexp.Regexp) []string {
	if !t.inTextChunk() {
		return nil
	}
	chunkEnd := t.CurrentChunk().End
	loc := re.FindStringSubmatchIndex(t.Source[t.i:chunkEnd])
	if loc == nil || loc[0] != 0 {
		return nil
	}
	matches := make([]string, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			continue
		}
		matches[i/2] = t.Source[t.i+loc[i] : t.i+loc[i+1]]
	}
	t.i += loc[1]
	t.ConsumeWhitespace()
	return matches
}

// PeekChar returns the byte at the cursor plus offset, without advancing.
// It returns 0 if out of range.
func (t *Tokenizer) PeekChar(offset int) byte {
	idx := t.i + offset
	if idx < 0 || idx >= len(t.Source) {
		return 0
	}
	return t.Source[idx]
}

// Peek reports whether the source at the cursor starts with s, without
// advancing.
func (t *Tokenizer) Peek(s string) bool {
	return strings.HasPrefix(t.Source[t.i:], s)
}

// PeekAfterComments reports whether, skipping any comment chunks and
// whitespace starting at the cursor, the next non-trivial byte is ch.
func (t *Tokenizer) PeekAfterComments(ch byte) bool {
	save := t.Remember()
	defer t.Recall(save)

	for {
		t.ConsumeWhitespace()
		c := t.CurrentChunk()
		if c.Kind == chunk.Comment && t.i >= c.Start && t.i < c.End {
			t.i = c.End
			continue
		}
		break
	}
	return t.i < len(t.Source) && t.Source[t.i] == ch
}

// GetComment consumes and returns the current chunk's text when it is a
// Comment chunk positioned exactly at the cursor.
func (t *Tokenizer) GetComment() (string, bool, bool) {
	c := t.CurrentChunk()
	if c.Kind != chunk.Comment || t.i != c.Start {
		return "", false, false
	}
	text := t.Source[c.Start:c.End]
	t.i = c.End
	t.ConsumeWhitespace()
	isBlock := strings.HasPrefix(text, "/*")
	return text, isBlock, true
}

// GetQuotedString consumes and returns the current chunk when it is a
// QuotedString chunk positioned exactly at the cursor. The returned
// quote is the delimiter byte and content excludes the delimiters.
func (t *Tokenizer) GetQuotedString() (quote byte, content string, ok bool) {
	c := t.CurrentChunk()
	if c.Kind != chunk.QuotedString || t.i != c.Start {
		return 0, "", false
	}
	raw := t.Source[c.Start:c.End]
	quote = raw[0]
	content = raw[1 : len(raw)-1]
	t.i = c.End
	t.ConsumeWhitespace()
	return quote, content, true
}

// MatchUntilOptions configures MatchUntil.
type MatchUntilOptions struct {
	IncludeDelim bool
	Last         bool // match the LAST instance of ch rather than the first
	ResetOn      byte // if non-zero, encountering this char resets the scan
	FailOnReset  bool // if true, ResetOn firing is a hard failure
}

// MatchUntil scans from the cursor until delimiter ch (within the
// current Text chunk), returning the scanned span.
func (t *Tokenizer) MatchUntil(ch byte, opts MatchUntilOptions) (string, bool) {
	if !t.inTextChunk() {
		return "", false
	}
	end := t.CurrentChunk().End
	src := t.Source

	idx := -1
	for i := t.i; i < end; i++ {
		c := src[i]
		if opts.ResetOn != 0 && c == opts.ResetOn {
			if opts.FailOnReset {
				return "", false
			}
			idx = -1
			continue
		}
		if c == ch {
			idx = i
			if !opts.Last {
				break
			}
		}
	}
	if idx < 0 {
		return "", false
	}
	stop := idx
	if opts.IncludeDelim {
		stop++
	}
	result := src[t.i:stop]
	t.i = stop
	t.ConsumeWhitespace()
	return result, true
}
