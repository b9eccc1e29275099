package post

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/open-cli-collective/blocks-cli/api"
)

const (
	nestedContent  = `<!-- wp:group --><div><!-- wp:paragraph --><p>a</p><!-- /wp:paragraph --></div><!-- /wp:group -->`
	headingContent = `<!-- wp:heading {"level":3} --><h3>Hi</h3><!-- /wp:heading -->`
)

func testPost(id int, title, content string) map[string]any {
	return map[string]any{
		"id":           id,
		"status":       "publish",
		"type":         "post",
		"link":         "https://example.com/?p=1",
		"modified_gmt": "2024-03-05T10:00:00",
		"title":        map[string]any{"rendered": title},
		"content":      map[string]any{"raw": content, "rendered": ""},
	}
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *api.Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, api.NewClient(server.URL, "admin", "app-pass")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
