package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

func TestFromMarkdown(t *testing.T) {
	nodes, err := FromMarkdown([]byte("# Title\n\nHello *world*.\n"))
	require.NoError(t, err)

	expected := "<!-- wp:heading {\"level\":1} -->\n<h1>Title</h1>\n<!-- /wp:heading -->\n\n" +
		"<!-- wp:paragraph -->\n<p>Hello <em>world</em>.</p>\n<!-- /wp:paragraph -->"
	assert.Equal(t, expected, blocks.Serialize(nodes))
}

func TestFromMarkdown_BlockTypes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		block    string
		attrs    string
		contains string
	}{
		{"h2 omits level", "## Sub", "core/heading", "{}", "<h2>Sub</h2>"},
		{"h3", "### Sec", "core/heading", `{"level":3}`, "<h3>Sec</h3>"},
		{"paragraph", "plain text", "core/paragraph", "{}", "<p>plain text</p>"},
		{"bullet list", "- a\n- b", "core/list", "{}", "<li>a</li>"},
		{"ordered list", "1. a\n2. b", "core/list", `{"ordered":true}`, "<ol>"},
		{"ordered list start", "3. a\n4. b", "core/list", `{"ordered":true,"start":3}`, `<ol start="3">`},
		{"fenced code", "```go\nx := 1\n```", "core/code", "{}", "x := 1"},
		{"indented code", "    x := 1", "core/code", "{}", "<pre><code>"},
		{"quote", "> said", "core/quote", "{}", "<blockquote>"},
		{"separator", "---", "core/separator", "{}", "<hr>"},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "core/table", "{}", "<table>"},
		{"raw html", "<div class=\"x\">hi</div>", "core/html", "{}", `<div class="x">hi</div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := FromMarkdown([]byte(tt.input))
			require.NoError(t, err)
			require.Len(t, nodes, 1)

			node := nodes[0]
			assert.Equal(t, tt.block, node.Name.String())
			assert.Contains(t, node.InnerHTML, tt.contains)

			attrs, err := node.Attrs.MarshalJSON()
			require.NoError(t, err)
			assert.JSONEq(t, tt.attrs, string(attrs))
		})
	}
}

func TestFromMarkdown_Empty(t *testing.T) {
	nodes, err := FromMarkdown([]byte("  \n\n"))
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestFromMarkdown_OutputParses(t *testing.T) {
	src := "# One\n\nSome text.\n\n- a\n- b\n\n---\n\n> quoted\n"
	nodes, err := FromMarkdown([]byte(src))
	require.NoError(t, err)

	out := blocks.Serialize(nodes)
	assert.Empty(t, blocks.Diagnose(out))

	doc, err := blocks.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, out, blocks.Serialize(doc.Blocks))

	var names []string
	for _, n := range doc.Blocks {
		if !n.IsFreeform() {
			names = append(names, n.Name.Name)
		}
	}
	assert.Equal(t, []string{"heading", "paragraph", "list", "separator", "quote"}, names)
}
