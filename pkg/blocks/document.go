// document.go parses a whole document into top-level blocks.
package blocks

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("blk.blocks")

// Document is the result of parsing a whole buffer.
type Document struct {
	Blocks   []*BlockNode
	Warnings []string
}

// AddWarning logs a warning and stores it in the document.
func (d *Document) AddWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d.Warnings = append(d.Warnings, msg)
	log.Warning(msg)
}

// Parse extracts every top-level block of text. A closer with nothing open
// is kept as freeform content. On incomplete input the blocks read so far
// are returned together with the error.
func Parse(text string) (*Document, error) {
	p := NewProcessor(text)
	doc := &Document{}

	for {
		tok, err := p.NextToken()
		if errors.Is(err, io.EOF) {
			if p.crumbs.depth() > 0 {
				doc.AddWarning("unclosed block: %s", joinNames(p.crumbs.snapshot()))
			}
			return doc, nil
		}
		if err != nil {
			return doc, err
		}

		if tok.Type == Closer {
			doc.AddWarning("closer without opener: %s at byte %d", tok.Name, tok.Span.Start)
			orphan := NewFreeform(tok.Span.Text(text))
			orphan.Span = tok.Span
			doc.Blocks = append(doc.Blocks, orphan)
			continue
		}

		node, err := p.ExtractFullBlockAndAdvance()
		if err != nil {
			return doc, err
		}
		if node.AttrsErr != nil {
			doc.AddWarning("%s: %v", node.Name, node.AttrsErr)
		}
		doc.Blocks = append(doc.Blocks, node)
	}
}

// Walk calls fn for every block in depth-first order, parents first. The
// depth of top-level blocks is 0.
func Walk(nodes []*BlockNode, fn func(n *BlockNode, depth int)) {
	walk(nodes, 0, fn)
}

func walk(nodes []*BlockNode, depth int, fn func(*BlockNode, int)) {
	for _, n := range nodes {
		fn(n, depth)
		walk(n.InnerBlocks, depth+1, fn)
	}
}

func joinNames(names []BlockName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.String()
	}
	return strings.Join(parts, " > ")
}
