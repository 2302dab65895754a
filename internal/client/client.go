// Package client is an HTTP client for the video catalog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zhouzirui/video-catalog/backend/internal/model/lookup"
	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client talks to one catalog server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL, e.g. "http://127.0.0.1:8080".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Get fetches one video.
func (c *Client) Get(ctx context.Context, id int64) (*video.Video, error) {
	var v video.Video
	if err := c.do(ctx, http.MethodGet, videoPath(id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create stores v under v.ID.
func (c *Client) Create(ctx context.Context, v video.Video) (*video.Video, error) {
	body := map[string]any{"name": v.Name, "views": v.Views, "likes": v.Likes}
	var created video.Video
	if err := c.do(ctx, http.MethodPut, videoPath(v.ID), body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update sends the fields set in patch.
func (c *Client) Update(ctx context.Context, id int64, patch video.Patch) (*video.Video, error) {
	body := map[string]any{}
	if patch.Name != nil {
		body["name"] = *patch.Name
	}
	if patch.Views != nil {
		body["views"] = *patch.Views
	}
	if patch.Likes != nil {
		body["likes"] = *patch.Likes
	}

	var updated video.Video
	if err := c.do(ctx, http.MethodPatch, videoPath(id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes one video.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, videoPath(id), nil, nil)
}

// List fetches every video.
func (c *Client) List(ctx context.Context) ([]video.Video, error) {
	var videos []video.Video
	if err := c.do(ctx, http.MethodGet, "/videos", nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Hello looks up a name.
func (c *Client) Hello(ctx context.Context, name string) (*lookup.Person, error) {
	var p lookup.Person
	if err := c.do(ctx, http.MethodGet, "/helloworld/"+name, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func videoPath(id int64) string {
	return "/video/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
