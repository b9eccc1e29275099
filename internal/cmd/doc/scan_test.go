package doc

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

const sampleDoc = "<!-- wp:paragraph -->\n<p>Hi</p>\n<!-- /wp:paragraph -->\n\n<!-- wp:image {\"id\":12} /-->"

func TestScanTokens(t *testing.T) {
	rows, err := ScanTokens(sampleDoc, "", false)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "opener", rows[0].Type)
	assert.Equal(t, "core/paragraph", rows[0].Block)
	assert.Equal(t, 1, rows[0].Depth)
	assert.Equal(t, "closer", rows[1].Type)
	assert.Equal(t, "void", rows[2].Type)
	assert.Equal(t, `{"id":12}`, rows[2].Attrs)
}

func TestScanTokens_HTML(t *testing.T) {
	rows, err := ScanTokens(sampleDoc, "", true)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "html", rows[1].Type)
	assert.Equal(t, "core/freeform", rows[1].Block)

	rows, err = ScanTokens(sampleDoc, "freeform", false)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestScanTokens_Incomplete(t *testing.T) {
	rows, err := ScanTokens("<!-- wp:spacer /--><!-- wp:", "", false)
	assert.ErrorIs(t, err, blocks.ErrIncompleteInput)
	assert.Len(t, rows, 1)
}

func TestRunScan_Table(t *testing.T) {
	var out bytes.Buffer
	opts := &scanOptions{
		noColor: true,
		stdin:   strings.NewReader(sampleDoc),
		out:     &out,
	}

	require.NoError(t, runScan("", opts))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "OFFSET")
	assert.Contains(t, lines[1], "core/paragraph")
	assert.Contains(t, lines[3], `{"id":12}`)
}

func TestRunScan_JSON(t *testing.T) {
	var out bytes.Buffer
	opts := &scanOptions{
		filter:  "image",
		output:  "json",
		noColor: true,
		stdin:   strings.NewReader(sampleDoc),
		out:     &out,
	}

	require.NoError(t, runScan("-", opts))

	var rows []TokenRow
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "core/image", rows[0].Block)
}

func TestRunScan_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.html")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	var out bytes.Buffer
	require.NoError(t, runScan(path, &scanOptions{output: "plain", noColor: true, out: &out}))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 3)
}

func TestRunScan_IncompleteStillRendersRows(t *testing.T) {
	var out bytes.Buffer
	opts := &scanOptions{
		output:  "plain",
		noColor: true,
		stdin:   strings.NewReader("<!-- wp:spacer /--><!-- wp:para"),
		out:     &out,
	}

	err := runScan("", opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, blocks.ErrIncompleteInput)
	assert.Contains(t, err.Error(), "<stdin>")
	assert.Contains(t, out.String(), "core/spacer")
}

func TestRunScan_InvalidOutputFormat(t *testing.T) {
	err := runScan("", &scanOptions{output: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestRunScan_MissingFile(t *testing.T) {
	err := runScan(filepath.Join(t.TempDir(), "missing.html"), &scanOptions{noColor: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
