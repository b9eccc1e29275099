// lint.go reports structural problems in a document.
package blocks

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Severity ranks a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a problem found at a span of the document.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Span     Span     `json:"span"`
	Message  string   `json:"message"`
}

type openBlock struct {
	name BlockName
	span Span
}

// Diagnose scans text and reports incomplete input, undecodable attributes,
// unbalanced or mismatched closers, unclosed blocks and void delimiters
// that also carry the closing flag.
func Diagnose(text string) []Diagnostic {
	p := NewProcessor(text)
	var (
		diags []Diagnostic
		open  []openBlock
	)

scan:
	for {
		tok, err := p.NextToken()
		switch {
		case errors.Is(err, io.EOF):
			break scan
		case err != nil:
			var scanErr *ScanError
			if errors.As(err, &scanErr) {
				diags = append(diags, Diagnostic{
					Severity: SeverityError,
					Span:     Span{Start: scanErr.Offset, Length: len(text) - scanErr.Offset},
					Message:  "document ends inside a block delimiter",
				})
			}
			break scan
		}

		if tok.IsHTML() {
			continue
		}

		if jsonErr := p.LastJSONError(); jsonErr != nil {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Span:     jsonErr.Span,
				Message:  fmt.Sprintf("invalid attributes for %s: %v", tok.Name, jsonErr.Err),
			})
		}

		switch tok.Type {
		case Opener:
			open = append(open, openBlock{name: tok.Name, span: tok.Span})
		case Closer:
			if len(open) == 0 {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Span:     tok.Span,
					Message:  fmt.Sprintf("closer for %s has no matching opener", tok.Name),
				})
				continue
			}
			top := open[len(open)-1]
			open = open[:len(open)-1]
			if top.name != tok.Name {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Span:     tok.Span,
					Message:  fmt.Sprintf("closer for %s closes %s", tok.Name, top.name),
				})
			}
		case Void:
			if tok.ClosingFlag {
				diags = append(diags, Diagnostic{
					Severity: SeverityInfo,
					Span:     tok.Span,
					Message:  fmt.Sprintf("void delimiter for %s also carries the closing flag", tok.Name),
				})
			}
		}
	}

	for _, b := range open {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Span:     b.span,
			Message:  fmt.Sprintf("%s is never closed", b.name),
		})
	}

	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Span.Start < diags[j].Span.Start
	})
	return diags
}

// Position converts a byte offset of text into a zero-based line and a
// column counted in UTF-16 code units.
func Position(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == '\n' {
			line++
			col = 0
		} else {
			n := utf16.RuneLen(r)
			if n < 0 {
				n = 1
			}
			col += n
		}
		i += size
	}
	return line, col
}
