// Package rest is the thin HTTP layer shared by the issue tracker, CI and chat
// adapters.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxLoggedBody = 2048

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: http status %d", e.Method, e.URL, e.Status)
}

// NewHTTPClient returns an http.Client whose transport is traced.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// Authorizer decorates an outgoing request with credentials.
type Authorizer func(req *http.Request)

func BasicAuth(username, token string) Authorizer {
	return func(req *http.Request) {
		if username != "" || token != "" {
			req.SetBasicAuth(username, token)
		}
	}
}

func BearerToken(token string) Authorizer {
	return func(req *http.Request) {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

type Client struct {
	baseURL string
	auth    Authorizer
	http    *http.Client
	logger  *zap.Logger
	secrets []string
}

func NewClient(baseURL string, auth Authorizer, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		http:    httpClient,
		logger:  logger,
	}
}

// Redact masks secret wherever a request URL is logged or reported, for APIs
// that carry credentials in the path.
func (c *Client) Redact(secret string) *Client {
	if secret != "" {
		c.secrets = append(c.secrets, secret)
	}
	return c
}

func (c *Client) redacted(url string) string {
	for _, s := range c.secrets {
		url = strings.ReplaceAll(url, s, "********")
	}
	return url
}

// Request describes one call. Exactly one of JSON or Raw is used as the body.
type Request struct {
	Method      string
	Path        string
	JSON        any
	Raw         []byte
	ContentType string
	Headers     map[string]string
}

// Do sends req and, for 2xx responses with a body, decodes JSON into out when
// out is non-nil. Failures are logged with status, body and any decode error
// before being returned.
func (c *Client) Do(ctx context.Context, req Request, out any) (int, error) {
	url := c.baseURL + req.Path

	var body io.Reader
	contentType := req.ContentType
	switch {
	case req.JSON != nil:
		raw, err := json.Marshal(req.JSON)
		if err != nil {
			return 0, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
		if contentType == "" {
			contentType = "application/json; charset=utf-8"
		}
	case req.Raw != nil:
		body = bytes.NewReader(req.Raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if c.auth != nil {
		c.auth(httpReq)
	}

	logURL := c.redacted(url)
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if len(c.secrets) > 0 {
			err = errors.New(c.redacted(err.Error()))
		}
		c.logger.Error("request failed", zap.String("method", req.Method), zap.String("url", logURL), zap.Error(err))
		return 0, err
	}
	defer resp.Body.Close()
	raw, readErr := io.ReadAll(resp.Body)
	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if readErr != nil {
		c.logger.Error("response read failed",
			zap.String("method", req.Method),
			zap.String("url", logURL),
			zap.Int("status", resp.StatusCode),
			zap.Int("bytes_read", len(raw)),
			zap.Error(readErr),
		)
		// The status alone still classifies a failed call.
		if ok {
			return resp.StatusCode, fmt.Errorf("read response: %w", readErr)
		}
	}

	if !ok {
		c.logger.Error("unexpected response",
			zap.String("method", req.Method),
			zap.String("url", logURL),
			zap.Int("status", resp.StatusCode),
			zap.String("status_text", resp.Status),
			zap.String("body", truncate(raw)),
		)
		return resp.StatusCode, &StatusError{Method: req.Method, URL: logURL, Status: resp.StatusCode, Body: string(raw)}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			c.logger.Error("response parsing failed",
				zap.String("method", req.Method),
				zap.String("url", logURL),
				zap.Int("status", resp.StatusCode),
				zap.String("body", truncate(raw)),
				zap.Error(err),
			)
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func truncate(b []byte) string {
	if len(b) <= maxLoggedBody {
		return string(b)
	}
	return string(b[:maxLoggedBody]) + "..."
}

// TokenAuth sets the "token" Authorization scheme used by GitHub.
func TokenAuth(token string) Authorizer {
	return func(req *http.Request) {
		if token != "" {
			req.Header.Set("Authorization", "token "+token)
		}
	}
}

// NewAuthHTTPClient is NewHTTPClient with auth applied to every request, for
// SDKs that take an *http.Client instead of building requests through Client.
func NewAuthHTTPClient(timeout time.Duration, auth Authorizer) *http.Client {
	c := NewHTTPClient(timeout)
	c.Transport = &authTransport{auth: auth, base: c.Transport}
	return c
}

type authTransport struct {
	auth Authorizer
	base http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	t.auth(clone)
	return t.base.RoundTrip(clone)
}
