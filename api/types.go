// Package api provides a WordPress REST API client for fetching and updating
// block documents.
package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("blk.api")

// Post is a post, page or other post type object.
type Post struct {
	ID         int      `json:"id"`
	Date       Time     `json:"date_gmt,omitempty"`
	Modified   Time     `json:"modified_gmt,omitempty"`
	Slug       string   `json:"slug"`
	Status     string   `json:"status"`
	Type       string   `json:"type"`
	Link       string   `json:"link,omitempty"`
	Title      Rendered `json:"title"`
	Content    Content  `json:"content"`
	Author     int      `json:"author,omitempty"`
	Categories []int    `json:"categories,omitempty"`
}

// Rendered is a field returned both raw and rendered. Raw is only present
// when the request used the edit context.
type Rendered struct {
	Raw      string `json:"raw,omitempty"`
	Rendered string `json:"rendered"`
}

// Content is the body of a post.
type Content struct {
	Raw          string `json:"raw,omitempty"`
	Rendered     string `json:"rendered"`
	Protected    bool   `json:"protected,omitempty"`
	BlockVersion int    `json:"block_version,omitempty"`
}

// HasBlocks reports whether WordPress found block delimiters in the content.
func (c Content) HasBlocks() bool {
	return c.BlockVersion > 0
}

// User is the authenticated user.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostList is one page of a post collection.
type PostList struct {
	Posts      []Post
	Total      int // X-WP-Total
	TotalPages int // X-WP-TotalPages
}

// UpdatePostRequest is the request body for updating a post.
type UpdatePostRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Time is a wrapper around time.Time for WordPress dates.
type Time struct {
	time.Time
}

// wpTimeLayout is the zone-less layout used by the *_gmt fields.
const wpTimeLayout = "2006-01-02T15:04:05"

// UnmarshalJSON parses WordPress GMT dates, which carry no zone suffix.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)

	if s == "null" || s == `""` || s == "" {
		return nil
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		parsed, err = time.ParseInLocation(wpTimeLayout, s, time.UTC)
		if err != nil {
			return err
		}
	}

	t.Time = parsed
	return nil
}

// MarshalJSON formats time in the WordPress GMT layout.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(wpTimeLayout) + `"`), nil
}

// ErrorResponse is the error body returned by the REST API.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Data       struct {
		Status int `json:"status"`
	} `json:"data"`
}

func (e *ErrorResponse) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// StatusCode returns the HTTP status of an API error anywhere in err's
// chain, or 0 when err did not come from an HTTP response.
func StatusCode(err error) int {
	var apiErr *ErrorResponse
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
