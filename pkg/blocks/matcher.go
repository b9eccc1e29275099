// matcher.go recognizes block delimiter comments at a given offset.
package blocks

import "strings"

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	blockPrefix  = "wp:"
)

// matchResult is the outcome of a single match attempt.
type matchResult int

const (
	matchNone       matchResult = iota // can never become a delimiter
	matchFound                         // a complete delimiter
	matchIncomplete                    // input ends while a delimiter is still possible
)

// delimiterMatch describes a recognized delimiter.
type delimiterMatch struct {
	typ     DelimiterType
	name    BlockName
	closing bool
	attrs   Span
	span    Span
}

// matchDelimiter walks the delimiter grammar at text[at:]:
//
//	<!-- [/]wp:[ns/]name [{json} ][/]-->
//
// Every separator is exactly one space. Running out of input before any
// required piece fails reports matchIncomplete rather than matchNone.
func matchDelimiter(text string, at int) (delimiterMatch, matchResult) {
	var m delimiterMatch
	pos := at

	if r := expectLiteral(text, pos, commentOpen); r != matchFound {
		return m, r
	}
	pos += len(commentOpen)

	if r := expectLiteral(text, pos, " "); r != matchFound {
		return m, r
	}
	pos++

	if pos >= len(text) {
		return m, matchIncomplete
	}
	if text[pos] == '/' {
		m.closing = true
		pos++
	}

	if r := expectLiteral(text, pos, blockPrefix); r != matchFound {
		return m, r
	}
	pos += len(blockPrefix)

	name, pos, r := scanBlockName(text, pos)
	if r != matchFound {
		return m, r
	}
	m.name = name

	if r := expectLiteral(text, pos, " "); r != matchFound {
		return m, r
	}
	pos++

	if pos >= len(text) {
		return m, matchIncomplete
	}

	if text[pos] == '{' {
		if m.closing {
			return m, matchNone
		}
		return matchAttributes(text, at, pos, m)
	}

	void := false
	if text[pos] == '/' {
		void = true
		pos++
	}
	if r := expectLiteral(text, pos, commentClose); r != matchFound {
		return m, r
	}
	pos += len(commentClose)

	m.typ = delimiterTypeFor(void, m.closing)
	m.span = Span{Start: at, Length: pos - at}
	return m, matchFound
}

// matchAttributes finishes a delimiter whose attribute blob starts at pos.
// The blob runs up to the first comment close, which must be preceded by
// "} " or, for void delimiters, "} /".
func matchAttributes(text string, at, pos int, m delimiterMatch) (delimiterMatch, matchResult) {
	end := strings.Index(text[pos:], commentClose)
	if end < 0 {
		return m, matchIncomplete
	}
	body := text[pos : pos+end]

	void := false
	switch {
	case strings.HasSuffix(body, "} /"):
		void = true
		m.attrs = Span{Start: pos, Length: len(body) - 2}
	case strings.HasSuffix(body, "} "):
		m.attrs = Span{Start: pos, Length: len(body) - 1}
	default:
		return m, matchNone
	}

	m.typ = delimiterTypeFor(void, m.closing)
	m.span = Span{Start: at, Length: pos + end + len(commentClose) - at}
	return m, matchFound
}

// delimiterTypeFor resolves the flags; a void marker wins over the closing flag.
func delimiterTypeFor(void, closing bool) DelimiterType {
	switch {
	case void:
		return Void
	case closing:
		return Closer
	default:
		return Opener
	}
}

// scanBlockName reads "name" or "namespace/name" starting at pos.
func scanBlockName(text string, pos int) (BlockName, int, matchResult) {
	first, pos, r := scanNameSegment(text, pos)
	if r != matchFound {
		return BlockName{}, pos, r
	}
	if text[pos] != '/' {
		return BlockName{Namespace: DefaultNamespace, Name: first}, pos, matchFound
	}

	second, pos, r := scanNameSegment(text, pos+1)
	if r != matchFound {
		return BlockName{}, pos, r
	}
	if text[pos] == '/' {
		return BlockName{}, pos, matchNone
	}
	return BlockName{Namespace: first, Name: second}, pos, matchFound
}

// scanNameSegment reads a run of name bytes. A segment touching the end of
// input may still grow, so it is incomplete unless it is already malformed.
func scanNameSegment(text string, pos int) (string, int, matchResult) {
	end := pos
	for end < len(text) && isNameByte(text[end]) {
		end++
	}
	seg := text[pos:end]

	if strings.HasPrefix(seg, "-") || strings.Contains(seg, "--") {
		return "", end, matchNone
	}
	if end == len(text) {
		return "", end, matchIncomplete
	}
	if seg == "" || strings.HasSuffix(seg, "-") {
		return "", end, matchNone
	}
	return seg, end, matchFound
}

// expectLiteral checks for lit at text[pos:]. A remainder shorter than lit
// that agrees with it so far is incomplete.
func expectLiteral(text string, pos int, lit string) matchResult {
	rest := text[pos:]
	if len(rest) < len(lit) {
		if strings.HasPrefix(lit, rest) {
			return matchIncomplete
		}
		return matchNone
	}
	if rest[:len(lit)] != lit {
		return matchNone
	}
	return matchFound
}
