// serialize.go writes block trees back out as delimited documents.
package blocks

import "strings"

// Serialize writes blocks as a document.
func Serialize(nodes []*BlockNode) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeBlock(&sb, n)
	}
	return sb.String()
}

// SerializeBlock writes a single block with its delimiters.
func SerializeBlock(n *BlockNode) string {
	var sb strings.Builder
	writeBlock(&sb, n)
	return sb.String()
}

// writeBlock emits an opener, the inner content with children in place of
// their placeholders, and a closer. Blocks without inner content are void.
func writeBlock(sb *strings.Builder, n *BlockNode) {
	if n.IsFreeform() {
		sb.WriteString(n.InnerHTML)
		return
	}

	name := n.Name.SerializedName()
	sb.WriteString("<!-- wp:")
	sb.WriteString(name)
	sb.WriteByte(' ')
	switch {
	case n.AttrsErr != nil && n.RawAttrs != "":
		sb.WriteString(n.RawAttrs)
		sb.WriteByte(' ')
	case len(n.Attrs) > 0:
		sb.WriteString(n.Attrs.String())
		sb.WriteByte(' ')
	}

	if len(n.InnerContent) == 0 {
		sb.WriteString("/-->")
		return
	}
	sb.WriteString("-->")

	child := 0
	for _, chunk := range n.InnerContent {
		if !chunk.IsBlock {
			sb.WriteString(chunk.HTML)
			continue
		}
		if child < len(n.InnerBlocks) {
			writeBlock(sb, n.InnerBlocks[child])
		}
		child++
	}

	sb.WriteString("<!-- /wp:")
	sb.WriteString(name)
	sb.WriteString(" -->")
}
