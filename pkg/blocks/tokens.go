// tokens.go defines the tokens produced by a Processor.
package blocks

import "fmt"

// DelimiterType is the kind of block delimiter a token represents.
type DelimiterType int

const (
	Void   DelimiterType = iota // <!-- wp:name /--> and freeform runs
	Opener                      // <!-- wp:name -->
	Closer                      // <!-- /wp:name -->
)

func (t DelimiterType) String() string {
	switch t {
	case Void:
		return "void"
	case Opener:
		return "opener"
	case Closer:
		return "closer"
	default:
		return fmt.Sprintf("DelimiterType(%d)", int(t))
	}
}

// Token is one step of a scan: a block delimiter, or a run of freeform
// content represented as a Void token without a block name.
type Token struct {
	Type           DelimiterType
	Name           BlockName // zero for freeform content
	ClosingFlag    bool      // a leading "/" was present
	Span           Span      // the whole delimiter or freeform run
	Attrs          Span      // raw JSON attribute blob, zero when absent
	WhitespaceOnly bool      // freeform runs only
	Depth          int       // open blocks after this token
}

// IsHTML reports whether the token is a freeform run.
func (t Token) IsHTML() bool {
	return t.Type == Void && t.Name.IsZero()
}

// PrintableName returns the block type, substituting core/freeform for
// freeform runs.
func (t Token) PrintableName() BlockName {
	if t.IsHTML() {
		return freeformName
	}
	return t.Name
}

// HasAttrs reports whether the delimiter carried a JSON attribute blob.
func (t Token) HasAttrs() bool {
	return !t.Attrs.IsZero()
}
