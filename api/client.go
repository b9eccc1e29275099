package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	// restPrefix is where the WordPress REST API is mounted.
	restPrefix = "/wp-json/wp/v2"
)

// Client is the WordPress REST API client.
type Client struct {
	baseURL     string
	username    string
	appPassword string
	httpClient  *http.Client
}

// NewClient creates a new WordPress API client. Requests authenticate with
// an application password over basic auth.
func NewClient(baseURL, username, appPassword string) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		username:    username,
		appPassword: appPassword,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// response is a successful API response.
type response struct {
	body   []byte
	header http.Header
}

// do executes an HTTP request against the REST API.
func (c *Client) do(ctx context.Context, method, path string, body any) (*response, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	url := c.baseURL + restPrefix + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.username, c.appPassword)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	log.Debugf("%s %s", method, url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Message == "" {
			errResp = ErrorResponse{
				Message: fmt.Sprintf("API error (status %d): %s", resp.StatusCode, string(respBody)),
			}
		}
		errResp.StatusCode = resp.StatusCode
		return nil, &errResp
	}

	return &response{body: respBody, header: resp.Header}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}
