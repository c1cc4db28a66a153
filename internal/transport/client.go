package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// ErrNoBaseURL is returned when a client is constructed without a backend origin.
var ErrNoBaseURL = errors.New("transport: base url required")

// maxBodyBytes caps how much of a response body is read. Auth responses are
// small; anything larger is already suspect.
const maxBodyBytes = 1 << 20

// Options configures a Client.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	UserAgent         string
	CorrelationHeader string

	// HTTPClient, when set, replaces the default client. A cookie jar is
	// installed on it if it has none, since the jar is what carries the
	// portal session cookie between exchanges.
	HTTPClient *http.Client
}

// Request describes one outbound credential exchange.
type Request struct {
	Method string
	Path   string
	Body   any

	// WithCredentials controls whether the session cookie jar participates.
	// Registration and pre-identification OTP resend establish no session
	// and are sent without it.
	WithCredentials bool

	CorrelationID string
}

// Response is the raw transport result handed to the normalizer.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client performs exchanges against one backend origin. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	opts    Options

	// withJar and bare share one underlying RoundTripper; they differ only
	// in cookie jar participation.
	withJar *http.Client
	bare    *http.Client
}

// New creates a transport client for the given options.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: opts.Timeout}
	}
	if base.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("transport: cookie jar: %w", err)
		}
		base.Jar = jar
	}

	bare := &http.Client{
		Transport:     base.Transport,
		CheckRedirect: base.CheckRedirect,
		Timeout:       base.Timeout,
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		opts:    opts,
		withJar: base,
		bare:    bare,
	}, nil
}

// Do performs exactly one exchange. It never retries.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("transport: create request: %w", err)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.opts.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.opts.UserAgent)
	}
	if c.opts.CorrelationHeader != "" && req.CorrelationID != "" {
		httpReq.Header.Set(c.opts.CorrelationHeader, req.CorrelationID)
	}

	client := c.bare
	if req.WithCredentials {
		client = c.withJar
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("transport: exchange failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("transport: read response body: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
