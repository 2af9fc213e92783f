// Package client provides an HTTP/JSON client for the clubd REST API, used
// by the admin CLI commands.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/clubworks/clubd/internal/lifecycle"
	"github.com/clubworks/clubd/internal/model"
)

// Client talks to a clubd server over HTTP/JSON. When secret is non-empty,
// an Authorization bearer header is set on every request.
type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

// New creates a client targeting the given base URL
// (e.g. "http://localhost:8080").
func New(baseURL, secret string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secret:     secret,
		httpClient: &http.Client{},
	}
}

func (c *Client) CreateEvent(ctx context.Context, in *lifecycle.EventInput) (*model.Event, error) {
	var event model.Event
	if err := c.doJSON(ctx, http.MethodPost, "/v1/events", in, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := c.doJSON(ctx, http.MethodGet, "/v1/events/"+url.PathEscape(id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEventsRequest mirrors the query parameters of GET /v1/events.
type ListEventsRequest struct {
	Pinned *bool
	Search string
	Limit  int
	Offset int
}

func (c *Client) ListEvents(ctx context.Context, req *ListEventsRequest) ([]*model.Event, error) {
	q := url.Values{}
	if req != nil {
		if req.Pinned != nil {
			q.Set("pinned", fmt.Sprintf("%t", *req.Pinned))
		}
		if req.Search != "" {
			q.Set("search", req.Search)
		}
		if req.Limit > 0 {
			q.Set("limit", fmt.Sprintf("%d", req.Limit))
		}
		if req.Offset > 0 {
			q.Set("offset", fmt.Sprintf("%d", req.Offset))
		}
	}

	path := "/v1/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Events []*model.Event `json:"events"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, in *lifecycle.EventInput) (*model.Event, error) {
	var event model.Event
	if err := c.doJSON(ctx, http.MethodPut, "/v1/events/"+url.PathEscape(id), in, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/events/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AddRSVP(ctx context.Context, eventID string) (*model.Event, error) {
	var event model.Event
	if err := c.doJSON(ctx, http.MethodPost, "/v1/events/"+url.PathEscape(eventID)+"/rsvps", nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) ListMembers(ctx context.Context) ([]*model.User, error) {
	var resp struct {
		Members []*model.User `json:"members"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/members", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Members, nil
}

func (c *Client) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON
// response. If result is nil, the response body is discarded (for DELETE/204
// responses).
func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.secret != "" {
		req.Header.Set("Authorization", "Bearer "+c.secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
