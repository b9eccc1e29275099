// stream.go supports documents that arrive in pieces.
package blocks

import (
	"errors"
	"io"
)

// ErrStreamClosed is returned when writing to a closed Stream.
var ErrStreamClosed = errors.New("blocks: write to closed stream")

// Stream collects a document that is still arriving. Tokens re-scans the
// whole buffer from the start on every call; no partial match state is
// carried between scans.
type Stream struct {
	buf    []byte
	closed bool
}

// Write appends p to the document.
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// Close marks the end of the document.
func (s *Stream) Close() error {
	s.closed = true
	return nil
}

// Text returns everything written so far.
func (s *Stream) Text() string {
	return string(s.buf)
}

// Tokens returns the tokens whose spans can no longer change. Until the
// stream is closed, a trailing freeform run is held back because more input
// may extend it, and incomplete input at the tail just ends the list. After
// Close, incomplete input is reported as an error.
func (s *Stream) Tokens() ([]Token, error) {
	p := NewProcessor(string(s.buf))
	var tokens []Token

	for {
		tok, err := p.NextToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if s.closed {
				return tokens, err
			}
			break
		}
		tokens = append(tokens, tok)
	}

	if !s.closed && len(tokens) > 0 && tokens[len(tokens)-1].IsHTML() {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens, nil
}
