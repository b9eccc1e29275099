// Package convert bridges markdown and block documents.
package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

// blockSeparator is the freeform content written between top-level blocks.
const blockSeparator = "\n\n"

// mdBlocks is a goldmark instance with GFM tables and raw HTML passthrough.
var mdBlocks = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// FromMarkdown converts markdown into top-level blocks, one per markdown
// block element, separated by blank-line freeform runs.
func FromMarkdown(src []byte) ([]*blocks.BlockNode, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}

	doc := mdBlocks.Parser().Parse(text.NewReader(src))
	c := &blockConverter{source: src}

	var nodes []*blocks.BlockNode
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		node, err := c.convertNode(child)
		if err != nil {
			return nil, err
		}
		if len(nodes) > 0 {
			nodes = append(nodes, blocks.NewFreeform(blockSeparator))
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// blockConverter holds state during AST conversion.
type blockConverter struct {
	source []byte
}

// convertNode maps a top-level markdown node to a block carrying its
// rendered HTML.
func (c *blockConverter) convertNode(n ast.Node) (*blocks.BlockNode, error) {
	var (
		name  string
		attrs blocks.Attributes
	)

	switch node := n.(type) {
	case *ast.Heading:
		name = "heading"
		if node.Level != 2 {
			if err := attrs.Set("level", node.Level); err != nil {
				return nil, err
			}
		}
	case *ast.Paragraph, *ast.TextBlock:
		name = "paragraph"
	case *ast.List:
		name = "list"
		if node.IsOrdered() {
			if err := attrs.Set("ordered", true); err != nil {
				return nil, err
			}
			if node.Start > 1 {
				if err := attrs.Set("start", node.Start); err != nil {
					return nil, err
				}
			}
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		name = "code"
	case *ast.Blockquote:
		name = "quote"
	case *ast.ThematicBreak:
		name = "separator"
	case *extast.Table:
		name = "table"
	default:
		name = "html"
	}

	rendered, err := c.render(n)
	if err != nil {
		return nil, fmt.Errorf("rendering %s block: %w", name, err)
	}

	blockName, _ := blocks.ParseBlockName(name)
	return blocks.NewBlock(blockName, attrs, "\n"+rendered+"\n"), nil
}

func (c *blockConverter) render(n ast.Node) (string, error) {
	var buf bytes.Buffer
	if err := mdBlocks.Renderer().Render(&buf, c.source, n); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
