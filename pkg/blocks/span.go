// span.go defines byte ranges over a scanned document.
package blocks

import "fmt"

// Span locates a run of bytes in the scanned document.
type Span struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// IsZero reports whether the span covers no bytes.
func (s Span) IsZero() bool {
	return s.Length == 0
}

// Text returns the spanned bytes of doc, or "" when the span does not fit.
func (s Span) Text(doc string) string {
	if s.Start < 0 || s.Length <= 0 || s.End() > len(doc) {
		return ""
	}
	return doc[s.Start:s.End()]
}

func (s Span) String() string {
	return fmt.Sprintf("%d+%d", s.Start, s.Length)
}
