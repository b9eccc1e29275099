package doc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConvert_FromMarkdown(t *testing.T) {
	var out bytes.Buffer
	opts := &convertOptions{from: "markdown", stdin: strings.NewReader("Hello"), out: &out}
	require.NoError(t, runConvert("", opts))
	assert.Equal(t, "<!-- wp:paragraph -->\n<p>Hello</p>\n<!-- /wp:paragraph -->\n", out.String())
}

func TestRunConvert_ToMarkdown(t *testing.T) {
	var out bytes.Buffer
	opts := &convertOptions{to: "markdown", stdin: strings.NewReader("<!-- wp:heading --><h2>Sub</h2><!-- /wp:heading -->"), out: &out}
	require.NoError(t, runConvert("", opts))
	assert.Equal(t, "## Sub\n", out.String())
}

func TestRunConvert_Validation(t *testing.T) {
	tests := []struct {
		name   string
		opts   *convertOptions
		errMsg string
	}{
		{"no direction", &convertOptions{}, "one of --from or --to is required"},
		{"unknown from", &convertOptions{from: "rst"}, `unsupported format "rst"`},
		{"unknown to", &convertOptions{to: "html"}, `unsupported format "html"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runConvert("", tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
