// extract.go rebuilds block trees from the token stream.
package blocks

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ContentChunk is one entry of a block's inner content: either a run of
// HTML, or a placeholder standing for the next inner block.
type ContentChunk struct {
	HTML    string
	IsBlock bool
}

// HTMLChunk returns a chunk holding html.
func HTMLChunk(html string) ContentChunk {
	return ContentChunk{HTML: html}
}

// BlockChunk returns a placeholder for the next inner block.
func BlockChunk() ContentChunk {
	return ContentChunk{IsBlock: true}
}

// MarshalJSON writes placeholders as null and HTML runs as strings.
func (c ContentChunk) MarshalJSON() ([]byte, error) {
	if c.IsBlock {
		return []byte("null"), nil
	}
	return json.Marshal(c.HTML)
}

// UnmarshalJSON reads the legacy null/string form.
func (c *ContentChunk) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = BlockChunk()
		return nil
	}
	var html string
	if err := json.Unmarshal(data, &html); err != nil {
		return err
	}
	*c = HTMLChunk(html)
	return nil
}

// BlockNode is one block in the legacy array representation. InnerContent
// interleaves HTML runs with placeholders; the n-th placeholder stands for
// InnerBlocks[n].
type BlockNode struct {
	Name         BlockName
	Attrs        Attributes
	AttrsErr     error  // set when the attribute blob failed to decode
	RawAttrs     string // the undecoded blob, kept only when AttrsErr is set
	InnerBlocks  []*BlockNode
	InnerHTML    string
	InnerContent []ContentChunk
	Span         Span // source range, zero for nodes not built from a document
}

// NewBlock returns a block whose body is the single HTML run html. An empty
// html yields a void block.
func NewBlock(name BlockName, attrs Attributes, html string) *BlockNode {
	n := &BlockNode{Name: name, Attrs: attrs, InnerHTML: html}
	if html != "" {
		n.InnerContent = []ContentChunk{HTMLChunk(html)}
	}
	return n
}

// NewFreeform returns a freeform node holding html.
func NewFreeform(html string) *BlockNode {
	return NewBlock(BlockName{}, nil, html)
}

// AppendHTML appends a run of HTML to the block body.
func (n *BlockNode) AppendHTML(html string) {
	if html == "" {
		return
	}
	n.InnerHTML += html
	n.InnerContent = append(n.InnerContent, HTMLChunk(html))
}

// AppendBlock appends a child block and its placeholder.
func (n *BlockNode) AppendBlock(child *BlockNode) {
	n.InnerBlocks = append(n.InnerBlocks, child)
	n.InnerContent = append(n.InnerContent, BlockChunk())
}

// IsFreeform reports whether the node holds content outside any delimiter.
func (n *BlockNode) IsFreeform() bool {
	return n.Name.IsZero()
}

// HTML renders the block body with every inner block rendered in place and
// no delimiters.
func (n *BlockNode) HTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

func (n *BlockNode) writeHTML(sb *strings.Builder) {
	child := 0
	for _, chunk := range n.InnerContent {
		if !chunk.IsBlock {
			sb.WriteString(chunk.HTML)
			continue
		}
		if child < len(n.InnerBlocks) {
			n.InnerBlocks[child].writeHTML(sb)
		}
		child++
	}
}

type legacyBlock struct {
	BlockName    *string        `json:"blockName"`
	Attrs        any            `json:"attrs"`
	InnerBlocks  []*BlockNode   `json:"innerBlocks"`
	InnerHTML    string         `json:"innerHTML"`
	InnerContent []ContentChunk `json:"innerContent"`
}

// MarshalJSON writes the legacy field layout.
func (n *BlockNode) MarshalJSON() ([]byte, error) {
	out := legacyBlock{
		InnerBlocks:  n.InnerBlocks,
		InnerHTML:    n.InnerHTML,
		InnerContent: n.InnerContent,
	}
	if !n.Name.IsZero() {
		name := n.Name.String()
		out.BlockName = &name
	}
	switch {
	case n.AttrsErr != nil:
		out.Attrs = nil
	case n.Attrs == nil:
		out.Attrs = Attributes{}
	default:
		out.Attrs = n.Attrs
	}
	if out.InnerBlocks == nil {
		out.InnerBlocks = []*BlockNode{}
	}
	if out.InnerContent == nil {
		out.InnerContent = []ContentChunk{}
	}
	return json.Marshal(out)
}

// ExtractFullBlockAndAdvance builds the block starting at the current token
// and leaves the processor on the last token consumed. Freeform runs become
// freeform nodes and void delimiters become leaves. An opener consumes
// tokens until its depth closes; if the document ends first, the node holds
// what was read.
func (p *Processor) ExtractFullBlockAndAdvance() (*BlockNode, error) {
	if !p.hasToken || p.token.Type == Closer {
		return nil, ErrNotExtractable
	}
	tok := p.token

	if tok.IsHTML() {
		n := NewFreeform(p.HTMLContent())
		n.Span = tok.Span
		return n, nil
	}

	n := &BlockNode{Name: tok.Name, Span: tok.Span}
	attrs, err := p.Attributes()
	if err != nil {
		n.AttrsErr = err
		n.RawAttrs = p.RawAttributes()
	} else {
		n.Attrs = attrs
	}

	if tok.Type == Void {
		return n, nil
	}

	for {
		next, err := p.NextToken()
		if errors.Is(err, io.EOF) {
			n.Span.Length = len(p.text) - n.Span.Start
			return n, nil
		}
		if err != nil {
			return nil, err
		}

		switch {
		case next.Type == Closer:
			n.Span.Length = next.Span.End() - n.Span.Start
			return n, nil
		case next.IsHTML():
			n.AppendHTML(p.HTMLContent())
		default:
			child, err := p.ExtractFullBlockAndAdvance()
			if err != nil {
				return nil, err
			}
			n.AppendBlock(child)
		}
	}
}
