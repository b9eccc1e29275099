package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

func TestToMarkdown(t *testing.T) {
	doc, err := blocks.Parse("<!-- wp:heading {\"level\":1} -->\n<h1>Title</h1>\n<!-- /wp:heading -->\n\n" +
		"<!-- wp:paragraph -->\n<p>Hello <em>world</em>.</p>\n<!-- /wp:paragraph -->")
	require.NoError(t, err)

	markdown, err := ToMarkdown(doc.Blocks)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nHello *world*.", markdown)
}

func TestToMarkdown_InnerBlocksRenderInPlace(t *testing.T) {
	doc, err := blocks.Parse("<!-- wp:quote --><blockquote><!-- wp:paragraph --><p>inner</p><!-- /wp:paragraph --></blockquote><!-- /wp:quote -->")
	require.NoError(t, err)

	markdown, err := ToMarkdown(doc.Blocks)
	require.NoError(t, err)
	assert.Equal(t, "> inner", markdown)
}

func TestToMarkdown_SkipsEmptyBlocks(t *testing.T) {
	doc, err := blocks.Parse("<!-- wp:spacer /-->\n\n<p>kept</p>")
	require.NoError(t, err)

	markdown, err := ToMarkdown(doc.Blocks)
	require.NoError(t, err)
	assert.Equal(t, "kept", markdown)
}
