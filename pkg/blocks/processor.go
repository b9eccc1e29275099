// processor.go implements the forward-only delimiter tokenizer.
package blocks

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

type scanState int

const (
	stateScanning scanState = iota
	stateEnded
	stateErrored
)

// Processor scans a document for block delimiters, one token per call.
//
// The document is never modified and the cursor only moves forward.
// Accessors describe the most recently returned token; once scanning has
// ended or failed they return zero values.
//
// A Processor is not safe for concurrent use.
type Processor struct {
	text   string
	at     int
	state  scanState
	err    *ScanError
	crumbs breadcrumbs

	token    Token
	hasToken bool

	attrsParsed bool
	attrs       Attributes
	attrsErr    error
}

// NewProcessor returns a Processor positioned before the first token of text.
func NewProcessor(text string) *Processor {
	return &Processor{text: text}
}

// NextToken scans the next token. It returns io.EOF at the end of the
// document, or a *ScanError matching ErrIncompleteInput when the document
// ends inside a possible delimiter. Both conditions are sticky.
func (p *Processor) NextToken() (Token, error) {
	p.clearToken()

	switch p.state {
	case stateErrored:
		return Token{}, p.err
	case stateEnded:
		return Token{}, io.EOF
	}

	if p.at >= len(p.text) {
		p.state = stateEnded
		return Token{}, io.EOF
	}

	m, r := matchDelimiter(p.text, p.at)
	switch r {
	case matchIncomplete:
		p.state = stateErrored
		p.err = &ScanError{Kind: ErrorIncompleteInput, Offset: p.at}
		return Token{}, p.err

	case matchFound:
		switch m.typ {
		case Opener:
			p.crumbs.push(m.name)
		case Closer:
			p.crumbs.pop()
		}
		p.at = m.span.End()
		p.setToken(Token{
			Type:        m.typ,
			Name:        m.name,
			ClosingFlag: m.closing,
			Span:        m.span,
			Attrs:       m.attrs,
			Depth:       p.crumbs.depth(),
		})
		return p.token, nil
	}

	start := p.at
	p.at = p.freeformEnd(start)
	p.setToken(Token{
		Type:           Void,
		Span:           Span{Start: start, Length: p.at - start},
		WhitespaceOnly: isWhitespace(p.text[start:p.at]),
		Depth:          p.crumbs.depth(),
	})
	return p.token, nil
}

// NextDelimiter advances to the next token accepted by filter:
//
//	""                          any block delimiter
//	"*"                         any token, freeform runs included
//	"freeform", "core/freeform" freeform runs only
//	anything else               delimiters of that block type
func (p *Processor) NextDelimiter(filter string) (Token, error) {
	for {
		tok, err := p.NextToken()
		if err != nil {
			return tok, err
		}
		if acceptToken(tok, filter) {
			return tok, nil
		}
	}
}

func acceptToken(tok Token, filter string) bool {
	switch {
	case filter == "*":
		return true
	case isFreeformQuery(filter):
		return tok.IsHTML()
	case tok.IsHTML():
		return false
	case filter == "":
		return true
	default:
		return tok.Name.Matches(filter)
	}
}

func isFreeformQuery(q string) bool {
	return q == freeformName.Name || q == freeformName.String()
}

// freeformEnd finds where a freeform run starting at from ends: the next
// offset where a delimiter matches or might still match, or the end of text.
func (p *Processor) freeformEnd(from int) int {
	for i := from + 1; i < len(p.text); i++ {
		next := strings.IndexByte(p.text[i:], '<')
		if next < 0 {
			break
		}
		i += next
		if _, r := matchDelimiter(p.text, i); r != matchNone {
			return i
		}
	}
	return len(p.text)
}

func (p *Processor) setToken(tok Token) {
	p.token = tok
	p.hasToken = true
}

func (p *Processor) clearToken() {
	p.token = Token{}
	p.hasToken = false
	p.attrsParsed = false
	p.attrs = nil
	p.attrsErr = nil
}

// Token returns the current token and whether there is one.
func (p *Processor) Token() (Token, bool) {
	return p.token, p.hasToken
}

// DelimiterType returns the type of the current token.
func (p *Processor) DelimiterType() (DelimiterType, bool) {
	return p.token.Type, p.hasToken
}

// BlockType returns the block type of the current delimiter; it is zero for
// freeform runs.
func (p *Processor) BlockType() BlockName {
	return p.token.Name
}

// PrintableBlockType is BlockType with core/freeform standing in for
// freeform runs.
func (p *Processor) PrintableBlockType() BlockName {
	if !p.hasToken {
		return BlockName{}
	}
	return p.token.PrintableName()
}

// HasClosingFlag reports whether the current delimiter was written with a
// leading "/". It can be true for a Void delimiter.
func (p *Processor) HasClosingFlag() bool {
	return p.token.ClosingFlag
}

// Span returns the span of the current token.
func (p *Processor) Span() Span {
	return p.token.Span
}

// IsHTML reports whether the current token is a freeform run.
func (p *Processor) IsHTML() bool {
	return p.hasToken && p.token.IsHTML()
}

// IsNonWhitespaceHTML reports whether the current token is a freeform run
// with something other than whitespace in it.
func (p *Processor) IsNonWhitespaceHTML() bool {
	return p.IsHTML() && !p.token.WhitespaceOnly
}

// HTMLContent returns the text of the current freeform run.
func (p *Processor) HTMLContent() string {
	if !p.IsHTML() {
		return ""
	}
	return p.token.Span.Text(p.text)
}

// Depth returns how many blocks are open as of the current token.
func (p *Processor) Depth() int {
	if !p.hasToken {
		return 0
	}
	return p.token.Depth
}

// Breadcrumbs returns the names of the open blocks as of the current token,
// outermost first.
func (p *Processor) Breadcrumbs() []BlockName {
	if !p.hasToken {
		return nil
	}
	return p.crumbs.snapshot()
}

// IsBlockType reports whether the current token is one of the given block
// types. Names may be bare ("paragraph") or qualified ("core/paragraph");
// freeform runs match "freeform" and "core/freeform".
func (p *Processor) IsBlockType(names ...string) bool {
	if !p.hasToken {
		return false
	}
	for _, name := range names {
		if p.token.IsHTML() {
			if isFreeformQuery(name) {
				return true
			}
			continue
		}
		if p.token.Name.Matches(name) {
			return true
		}
	}
	return false
}

// OpensBlock reports whether the current token starts a block, optionally
// restricted to the given block types. Openers and void delimiters start a
// block; closers never do.
func (p *Processor) OpensBlock(names ...string) bool {
	if !p.hasToken || p.token.Type == Closer {
		return false
	}
	if len(names) == 0 {
		return !p.token.IsHTML()
	}
	return p.IsBlockType(names...)
}

// Attributes decodes the attribute blob of the current delimiter. The result
// is memoized until the next token. Delimiters without a blob yield an empty
// set; freeform runs yield nil. Decode failures are *JSONError values.
func (p *Processor) Attributes() (Attributes, error) {
	if !p.hasToken || p.token.IsHTML() {
		return nil, nil
	}
	if !p.token.HasAttrs() {
		return Attributes{}, nil
	}
	if !p.attrsParsed {
		p.attrs, p.attrsErr = parseAttributesAt(p.text, p.token.Attrs)
		p.attrsParsed = true
	}
	return p.attrs, p.attrsErr
}

// RawAttributes returns the undecoded attribute blob of the current delimiter.
func (p *Processor) RawAttributes() string {
	return p.token.Attrs.Text(p.text)
}

// LastJSONError returns the attribute decode error of the current delimiter.
func (p *Processor) LastJSONError() *JSONError {
	_, err := p.Attributes()
	var jsonErr *JSONError
	if errors.As(err, &jsonErr) {
		return jsonErr
	}
	return nil
}

// LastError returns the terminal scan error, if scanning has failed.
func (p *Processor) LastError() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// LazyAttributes would materialize attributes on demand without decoding
// the whole blob. It is not implemented.
func (p *Processor) LazyAttributes() (Attributes, error) {
	return nil, fmt.Errorf("blocks: lazy attribute parsing: %w", errors.ErrUnsupported)
}

// Attribute would read a single attribute lazily. It is not implemented.
func (p *Processor) Attribute(key string) (any, error) {
	return nil, fmt.Errorf("blocks: lazy attribute %q: %w", key, errors.ErrUnsupported)
}

func isWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f':
		default:
			return false
		}
	}
	return true
}
