package token

// MatchNumber is a hand-rolled numeric scanner: optional leading sign,
// digits, optional ".digits". It deliberately avoids a regex so large
// files with many numeric literals don't pay backtracking cost (mirrors
// the teacher's readNumber in parser/lexer.go).
func (t *Tokenizer) MatchNumber(allowDecimals, allowOperator bool) (string, bool) {
	if !t.inTextChunk() {
		return "", false
	}
	start := t.i
	src := t.Source
	end := t.CurrentChunk().End
	i := t.i

	if i < end && (src[i] == '-' || (allowOperator && src[i] == '+')) {
		i++
	}

	digitsStart := i
	for i < end && isDigit(src[i]) {
		i++
	}
	sawDigits := i > digitsStart

	if allowDecimals && i < end && src[i] == '.' {
		j := i + 1
		k := j
		for k < end && isDigit(src[k]) {
			k++
		}
		if k > j {
			i = k
			sawDigits = true
		}
	}

	if !sawDigits {
		return "", false
	}

	t.i = i
	t.ConsumeWhitespace()
	return src[start:i], true
}

// MatchKeyword scans `[@@?]?[A-Za-z0-9_-]+`. requireStartingAt, if >= 0,
// requires the first character to sit exactly at that absolute offset.
// allowLeadingDigit permits the first character of the identifier body
// to be a digit. Every parser call passes (-1, false); keyframe
// percentages such as "50%" are read with MatchNumber instead.
func (t *Tokenizer) MatchKeyword(requireStartingAt int, allowLeadingDigit bool) (string, bool) {
	if !t.inTextChunk() {
		return "", false
	}
	if requireStartingAt >= 0 && t.i != requireStartingAt {
		return "", false
	}
	src := t.Source
	end := t.CurrentChunk().End
	i := t.i
	start := i

	if i < end && src[i] == '@' {
		i++
		if i < end && src[i] == '@' {
			i++
		}
	}

	bodyStart := i
	for i < end && isIdentByte(src[i]) {
		i++
	}
	if i == bodyStart {
		return "", false
	}
	if !allowLeadingDigit && isDigit(src[bodyStart]) {
		return "", false
	}

	t.i = i
	t.ConsumeWhitespace()
	return src[start:i], true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentByte(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
