package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the current session token. It is consulted on every
// protected request so the client always sends the freshest token.
type TokenSource func() string

// HTTPClient implements Client over plain HTTP/JSON.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	token   TokenSource
	logger  *slog.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a backend client rooted at baseURL. The token
// source may return "" while logged out; protected calls then fail fast
// with ErrNoToken instead of going to the wire unauthenticated.
func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		token:   token,
		logger:  logger.With("component", "api"),
	}
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.call(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &resp, false)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("login response carried no token: %w", ErrServer)
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.call(ctx, http.MethodGet, "/auth/profile", nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Categories(ctx context.Context) ([]Category, error) {
	var list []Category
	if err := c.call(ctx, http.MethodGet, "/categories", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) Products(ctx context.Context) ([]Product, error) {
	var list []Product
	if err := c.call(ctx, http.MethodGet, "/products", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, payload ProductPayload) (*Product, error) {
	var p Product
	if err := c.call(ctx, http.MethodPost, "/products", payload, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id int64, payload ProductPayload) (*Product, error) {
	var p Product
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), payload, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, true)
}

// call performs one JSON round trip. The response body is decoded into out
// when out is non-nil; non-2xx statuses are mapped onto the sentinel
// errors. The path is relative to the configured base URL.
func (c *HTTPClient) call(ctx context.Context, method, path string, body, out any, protected bool) error {
	var token string
	if protected {
		token = c.token()
		if token == "" {
			return ErrNoToken
		}
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if protected {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "Request failed before a response arrived", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.statusError(method, path, resp.StatusCode); err != nil {
		// Drain the body so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// statusError maps an HTTP status to the client error taxonomy. A 401 on
// the login endpoint means bad credentials; on any other endpoint it means
// the token is missing or expired.
func (c *HTTPClient) statusError(method, path string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized && path == "/auth/login":
		return ErrInvalidCredentials
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return fmt.Errorf("%s %s returned %d: %w", method, path, status, ErrServer)
	default:
		return fmt.Errorf("%s %s returned unexpected status %d", method, path, status)
	}
}
