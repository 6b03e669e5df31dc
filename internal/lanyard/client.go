package lanyard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Error kinds returned by FetchPresence. Callers match them with errors.Is.
var (
	ErrNoUser  = errors.New("no user id configured")
	ErrNetwork = errors.New("network error")
	ErrParse   = errors.New("parse error")
)

// PresenceFetcher fetches one presence document. *Client implements it and
// tests substitute fakes.
type PresenceFetcher interface {
	FetchPresence(ctx context.Context, userID string) (*Document, error)
}

var _ PresenceFetcher = (*Client)(nil)

// Client talks to the Lanyard REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultBaseURL   = "https://api.lanyard.rest"
	defaultUserAgent = "profilecard/0.1"
	requestTimeout   = 5 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given API base URL. An empty base uses
// the public Lanyard instance.
func NewClient(base string, opts ...Option) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchPresence retrieves the presence document of userID.
func (c *Client) FetchPresence(ctx context.Context, userID string) (*Document, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrNoUser
	}

	rel := &url.URL{Path: "/v1/users/" + url.PathEscape(userID)}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: api %s returned status %d", ErrNetwork, rel.Path, resp.StatusCode)
	}

	var payload wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrParse, err)
	}
	return payload.document()
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", base)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
