// errors.go defines the error taxonomy reported while scanning.
package blocks

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the conditions reported by a Processor.
type ErrorKind int

const (
	ErrorNone            ErrorKind = iota
	ErrorIncompleteInput           // document ends inside a possible delimiter
	ErrorJSON                      // attribute blob is not a valid JSON object
	ErrorUnsupported               // lazy attribute materialization was requested
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorIncompleteInput:
		return "incomplete input"
	case ErrorJSON:
		return "json error"
	case ErrorUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

var (
	// ErrIncompleteInput is matched by scan errors raised when the document
	// ends part way through something that could still become a delimiter.
	ErrIncompleteInput = errors.New("incomplete input")

	// ErrNotExtractable is returned when block extraction is requested while
	// the processor is not positioned on an opener, void or freeform token.
	ErrNotExtractable = errors.New("current token does not start a block")
)

// ScanError is the terminal error of a Processor.
type ScanError struct {
	Kind   ErrorKind
	Offset int // byte offset where scanning stopped
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s at byte %d", e.Kind, e.Offset)
}

func (e *ScanError) Unwrap() error {
	if e.Kind == ErrorIncompleteInput {
		return ErrIncompleteInput
	}
	return nil
}

// JSONError reports an attribute blob that failed to decode. The delimiter
// carrying it still matched.
type JSONError struct {
	Span Span  // the attribute blob
	Err  error // underlying decode error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("invalid block attributes at byte %d: %v", e.Span.Start, e.Err)
}

func (e *JSONError) Unwrap() error {
	return e.Err
}

// KindOf classifies err into an ErrorKind.
func KindOf(err error) ErrorKind {
	var jsonErr *JSONError
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, ErrIncompleteInput):
		return ErrorIncompleteInput
	case errors.As(err, &jsonErr):
		return ErrorJSON
	case errors.Is(err, errors.ErrUnsupported):
		return ErrorUnsupported
	default:
		return ErrorNone
	}
}
