package post

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunList_Table(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/posts", r.URL.Path)
		assert.Equal(t, "edit", r.URL.Query().Get("context"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))

		w.Header().Set("X-WP-Total", "25")
		w.Header().Set("X-WP-TotalPages", "3")
		writeJSON(w, []any{
			testPost(1, "Hello", nestedContent),
			testPost(2, "Classic", "<p>classic</p>"),
		})
	})

	var out bytes.Buffer
	opts := &listOptions{limit: 10, page: 1}
	opts.noColor = true
	opts.out = &out

	require.NoError(t, runList(opts, client))

	output := out.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "BLOCKS")
	assert.Regexp(t, `1\s+Hello\s+publish\s+2024-03-05\s+2\n`, output)
	assert.Regexp(t, `2\s+Classic\s+publish\s+2024-03-05\s+0\n`, output)
	assert.Contains(t, output, "(page 1 of 3, use --page to see more)")
}

func TestRunList_PostType(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/pages", r.URL.Path)
		assert.Equal(t, "draft", r.URL.Query().Get("status"))
		writeJSON(w, []any{})
	})

	var out bytes.Buffer
	opts := &listOptions{limit: 10, page: 1, status: "draft"}
	opts.postType = "pages"
	opts.noColor = true
	opts.out = &out

	require.NoError(t, runList(opts, client))
	assert.Equal(t, "No posts found.\n", out.String())
}

func TestRunList_JSON(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []any{testPost(7, "Seven", headingContent)})
	})

	var out bytes.Buffer
	opts := &listOptions{limit: 10, page: 1}
	opts.output = "json"
	opts.noColor = true
	opts.out = &out

	require.NoError(t, runList(opts, client))
	assert.Contains(t, out.String(), `"id": 7`)
	assert.NotContains(t, out.String(), "use --page")
}

func TestRunList_InvalidLimit(t *testing.T) {
	opts := &listOptions{limit: 0, page: 1}
	err := runList(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid limit")
}

func TestRunList_InvalidOutput(t *testing.T) {
	opts := &listOptions{limit: 10, page: 1}
	opts.output = "xml"
	err := runList(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestRunList_APIError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]any{"code": "rest_not_logged_in", "message": "You are not currently logged in."})
	})

	opts := &listOptions{limit: 10, page: 1}
	opts.noColor = true
	opts.out = &bytes.Buffer{}

	err := runList(opts, client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list posts")
	assert.Contains(t, err.Error(), "rest_not_logged_in")
}

func TestCountBlocks(t *testing.T) {
	assert.Equal(t, 0, countBlocks(""))
	assert.Equal(t, 0, countBlocks("<p>classic</p>"))
	assert.Equal(t, 2, countBlocks(nestedContent))
	assert.Equal(t, 1, countBlocks("<!-- wp:image /--><!-- wp:"))
}
