package webdav

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

const (
	// MethodPropfind is the WebDAV directory listing method
	MethodPropfind = "PROPFIND"

	headerDepth = "Depth"
)

// Client is a minimal WebDAV transport issuing GET and PROPFIND requests with
// Basic auth. It never retries; fallback policy belongs to the caller.
type Client struct {
	httpClient *http.Client
}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new WebDAV client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBytes downloads the resource at relPath
func (c *Client) FetchBytes(ctx context.Context, creds *model.RemoteCredentials, relPath string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, creds, relPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read WebDAV response body", goerr.V("path", relPath))
	}

	return data, nil
}

// FetchMetadata issues a PROPFIND limited to the entry itself (Depth 0) and
// returns the raw multistatus text
func (c *Client) FetchMetadata(ctx context.Context, creds *model.RemoteCredentials, relPath string) (string, error) {
	resp, err := c.do(ctx, MethodPropfind, creds, relPath, map[string]string{
		headerDepth: "0",
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read PROPFIND response body", goerr.V("path", relPath))
	}

	return string(data), nil
}

func (c *Client) do(ctx context.Context, method string, creds *model.RemoteCredentials, relPath string, headers map[string]string) (*http.Response, error) {
	url := creds.URL(relPath)
	ctxlog.From(ctx).Debug("WebDAV request", "method", method, "url", url)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create WebDAV request", goerr.V("method", method), goerr.V("url", url))
	}
	req.SetBasicAuth(creds.Username, creds.Password)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send WebDAV request", goerr.V("method", method), goerr.V("url", url))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, &model.TransportError{
			Method:     method,
			Path:       relPath,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	return resp, nil
}

// statusText returns the reason phrase of resp.Status without the code
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
