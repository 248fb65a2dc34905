package blogmates

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	tokenObtainPath = "/token/"
	refreshPath     = "/token/refresh/"
)

// Client is a thin HTTP wrapper for the blogmates API. It handles base URL
// construction, JSON encoding, credential transport (the backend sets the
// access and refresh tokens as cookies) and the refresh-retry policy.
type Client struct {
	baseURL       string
	http          *http.Client
	log           *logrus.Logger
	onAuthExpired func()
}

// NewClient creates a blogmates API client with a cookie jar and a fixed
// request timeout.
func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Timeout: timeout},
		log:     log,
	}, nil
}

// OnAuthExpired registers the hook invoked when a token refresh fails. The
// session store uses it to demote itself; the TUI then hard-switches to the
// login view.
func (c *Client) OnAuthExpired(fn func()) {
	c.onAuthExpired = fn
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do composes send with the auth-refresh policy: a 401 triggers at most one
// refresh and one replay of the original request. Bodies are marshalled per
// attempt, so the replay carries the original parameters. The token-obtain
// and refresh endpoints are exempt: a 401 there means bad credentials or a
// dead session, and the backend's message must reach the caller verbatim.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.send(ctx, method, path, body, out)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Status != http.StatusUnauthorized ||
		path == tokenObtainPath || path == refreshPath {
		return err
	}

	if refreshErr := c.send(ctx, http.MethodPost, refreshPath, nil, nil); refreshErr != nil {
		c.log.WithFields(logrus.Fields{
			"path": path,
		}).WithError(refreshErr).Warn("token refresh failed, session expired")
		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		return fmt.Errorf("refreshing session: %w", refreshErr)
	}

	c.log.WithField("path", path).Debug("retrying request after token refresh")
	return c.send(ctx, method, path, body, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithField("path", path).WithError(err).Warn("request failed")
		return fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := newRequestError(resp.StatusCode, data)
		c.log.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("request rejected")
		return reqErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parsing response from %s: %w", path, err)
		}
	}
	return nil
}
