package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the current access token for authenticated calls.
// The session store is the only implementation outside tests.
type TokenSource func() string

// Client talks to the event-management backend. It performs exactly one
// attempt per call, with no retries, and maps responses onto the
// console's error taxonomy.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// NewClient creates a backend client for the given base URL.
// PRE: baseURL is a valid absolute URL; token is non-nil
// POST: Returns a ready-to-use client
func NewClient(baseURL string, token TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   token,
	}
}

// do performs one backend call. A nil in decodes into nothing being sent;
// a nil out discards the response body. 401 responses always map to
// ErrUnauthorized regardless of body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("api_request_failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		slog.Info("api_unauthorized", "method", method, "path", path)
		return ErrUnauthorized
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if fields, ok := decodeFieldErrors(raw); ok {
			return fields
		}
		reqErr := &RequestError{StatusCode: resp.StatusCode, Detail: decodeDetail(raw)}
		slog.Warn("api_error_response", "method", method, "path", path, "status", resp.StatusCode, "detail", reqErr.Detail)
		return reqErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
