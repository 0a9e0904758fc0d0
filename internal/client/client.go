// Package client is a typed HTTP client for the roster API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/types"
)

// ErrNotFound is returned for 404 answers.
var ErrNotFound = errors.New("player not found")

// APIError is a non-2xx answer decoded from the server's error body.
type APIError struct {
	Status  int
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, strings.Join(parts, "; "))
}

// Is lets errors.Is(err, ErrNotFound) match 404 answers.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client talks to one roster server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL, e.g. "http://localhost:9080".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ListParams are the list view query parameters. Zero values are omitted.
type ListParams struct {
	Search   string
	Column   string
	Operator string
	Value    string
	Page     int
	PageSize int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("search", p.Search)
	set("column", p.Column)
	set("operator", p.Operator)
	set("value", p.Value)
	if p.Page != 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize != 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return q
}

// List fetches one page of the list view.
func (c *Client) List(ctx context.Context, p ListParams) (types.Page, error) {
	var page types.Page
	path := "/players"
	if q := p.values().Encode(); q != "" {
		path += "?" + q
	}
	err := c.do(ctx, http.MethodGet, path, nil, &page)
	return page, err
}

// Get fetches one player.
func (c *Client) Get(ctx context.Context, id int) (types.PlayerView, error) {
	var v types.PlayerView
	err := c.do(ctx, http.MethodGet, playerPath(id), nil, &v)
	return v, err
}

// Create submits a new player form.
func (c *Client) Create(ctx context.Context, d model.Draft) (model.Player, error) {
	var p model.Player
	err := c.do(ctx, http.MethodPost, "/players", d, &p)
	return p, err
}

// Replace overwrites every field of player id.
func (c *Client) Replace(ctx context.Context, id int, d model.Draft) (model.Player, error) {
	var p model.Player
	err := c.do(ctx, http.MethodPut, playerPath(id), d, &p)
	return p, err
}

// Patch changes the fields present in dp.
func (c *Client) Patch(ctx context.Context, id int, dp model.DraftPatch) (model.Player, error) {
	var p model.Player
	err := c.do(ctx, http.MethodPatch, playerPath(id), dp, &p)
	return p, err
}

// Delete removes player id. Unknown ids are not an error.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, playerPath(id), nil, nil)
}

// Leagues fetches the league options.
func (c *Client) Leagues(ctx context.Context) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/leagues", nil, &out)
	return out, err
}

func playerPath(id int) string { return "/players/" + strconv.Itoa(id) }

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = strings.ToLower(strings.ReplaceAll(http.StatusText(resp.StatusCode), " ", "_"))
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
