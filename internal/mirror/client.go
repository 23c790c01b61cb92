package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/seedling/internal/domain"
)

// ErrMalformedResponse means the server answered 2xx with a body that is not
// the expected JSON or lacks one of its fields
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is a non-2xx answer from the server. Code is the server's
// {"error": ...} value when one was sent.
type StatusError struct {
	StatusCode int
	Code       string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: status %d: %s", domain.ErrMsgRemoteRejects, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%s: status %d", domain.ErrMsgRemoteRejects, e.StatusCode)
}

// Client talks to the authoritative seedling API. Every call is a single
// attempt; failures are returned, never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. timeout <= 0 uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the server root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTree fetches the authoritative state
func (c *Client) GetTree(ctx context.Context) (*domain.TreeState, error) {
	var w wireTree
	if err := c.doRequest(ctx, http.MethodGet, PathTree, "", &w); err != nil {
		return nil, err
	}
	return w.state()
}

// Water asks the server to water the shared seedling
func (c *Client) Water(ctx context.Context) (*domain.WaterResult, error) {
	var w wireWater
	if err := c.doRequest(ctx, http.MethodPost, PathWater, "", &w); err != nil {
		return nil, err
	}
	return w.result()
}

// Harvest asks the server to harvest, carrying credential in the admin header
func (c *Client) Harvest(ctx context.Context, credential string) (*domain.HarvestResult, error) {
	var w wireHarvest
	if err := c.doRequest(ctx, http.MethodPost, PathHarvest, credential, &w); err != nil {
		return nil, err
	}
	return w.result()
}

// doRequest classifies failures: no response is domain.ErrTransport,
// non-2xx is *StatusError, an undecodable 2xx body is ErrMalformedResponse
func (c *Client) doRequest(ctx context.Context, method, path, credential string, out interface{}) error {
	var body io.Reader
	if method == http.MethodPost {
		body = strings.NewReader("{}")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrTransport, err)
	}
	req.Header.Set(HeaderAccept, ContentTypeJSON)
	if body != nil {
		req.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	if credential != "" {
		req.Header.Set(HeaderAdminPassword, credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}

func statusError(resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		se.Code = payload.Error
	}
	return se
}
