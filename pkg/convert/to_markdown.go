package convert

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

// ToMarkdown renders each block's HTML, inner blocks included, and converts
// it to markdown. Blocks are joined by blank lines; blocks that convert to
// nothing are skipped.
func ToMarkdown(nodes []*blocks.BlockNode) (string, error) {
	var parts []string
	for _, n := range nodes {
		html := n.HTML()
		if strings.TrimSpace(html) == "" {
			continue
		}

		markdown, err := htmltomarkdown.ConvertString(html)
		if err != nil {
			return "", err
		}
		if markdown = strings.TrimSpace(markdown); markdown != "" {
			parts = append(parts, markdown)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}
