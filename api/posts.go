package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultPostType is the REST base used when no post type is given.
const DefaultPostType = "posts"

// ListPostsOptions contains options for listing posts.
type ListPostsOptions struct {
	Type    string // REST base: posts, pages, or a custom type
	PerPage int
	Page    int
	Status  string // publish, draft, pending, private, any
	Search  string
	Edit    bool // request the edit context so raw content is returned
}

// GetPostOptions contains options for getting a post.
type GetPostOptions struct {
	Type string
	Edit bool
}

func postsPath(postType string) string {
	if postType == "" {
		postType = DefaultPostType
	}
	return "/" + url.PathEscape(postType)
}

// ListPosts returns one page of posts.
func (c *Client) ListPosts(ctx context.Context, opts *ListPostsOptions) (*PostList, error) {
	params := url.Values{}
	params.Set("per_page", "10")

	postType := ""
	if opts != nil {
		postType = opts.Type
		if opts.PerPage > 0 {
			params.Set("per_page", strconv.Itoa(opts.PerPage))
		}
		if opts.Page > 0 {
			params.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.Status != "" {
			params.Set("status", opts.Status)
		}
		if opts.Search != "" {
			params.Set("search", opts.Search)
		}
		if opts.Edit {
			params.Set("context", "edit")
		}
	}

	path := postsPath(postType) + "?" + params.Encode()
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	result := &PostList{}
	if err := json.Unmarshal(resp.body, &result.Posts); err != nil {
		return nil, fmt.Errorf("failed to parse posts response: %w", err)
	}
	result.Total, _ = strconv.Atoi(resp.header.Get("X-WP-Total"))
	result.TotalPages, _ = strconv.Atoi(resp.header.Get("X-WP-TotalPages"))

	return result, nil
}

// HasMore reports whether pages after page remain.
func (l *PostList) HasMore(page int) bool {
	return page < l.TotalPages
}

// GetPost returns a single post by ID.
func (c *Client) GetPost(ctx context.Context, id int, opts *GetPostOptions) (*Post, error) {
	postType := ""
	params := url.Values{}
	if opts != nil {
		postType = opts.Type
		if opts.Edit {
			params.Set("context", "edit")
		}
	}

	path := fmt.Sprintf("%s/%d", postsPath(postType), id)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var post Post
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("failed to parse post response: %w", err)
	}

	return &post, nil
}

// UpdatePost updates an existing post. The response is read in the edit
// context so the stored raw content can be checked.
func (c *Client) UpdatePost(ctx context.Context, postType string, id int, req *UpdatePostRequest) (*Post, error) {
	path := fmt.Sprintf("%s/%d?context=edit", postsPath(postType), id)
	body, err := c.Post(ctx, path, req)
	if err != nil {
		return nil, err
	}

	var post Post
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("failed to parse update post response: %w", err)
	}

	return &post, nil
}

// CurrentUser returns the user the credentials belong to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	body, err := c.Get(ctx, "/users/me")
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user response: %w", err)
	}

	return &user, nil
}
