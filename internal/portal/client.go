package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fetcher is the transport the request engine depends on. *Client implements
// it; tests substitute fakes.
type Fetcher interface {
	Login(ctx context.Context, req LoginRequest) ([]byte, error)
	Get(ctx context.Context, path, token string) ([]byte, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Endpoint paths. StudentPlaceholder is substituted with the subject id
// before a request is sent.
const (
	StudentPlaceholder = "<studentID>"

	LoginPath    = "/auth/login"
	GradesPath   = "/students/" + StudentPlaceholder + "/grades"
	AbsencesPath = "/students/" + StudentPlaceholder + "/absences/details"
	agendaPath   = "/students/" + StudentPlaceholder + "/agenda/all/%s/%s"
	lessonsPath  = "/students/" + StudentPlaceholder + "/lessons/%s/%s"
)

// AuthHeader carries the session token on data requests.
const AuthHeader = "Z-Auth-Token"

const (
	defaultBaseURL = "https://web.spaggiari.eu/rest/v1"
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 16 << 20
)

// AgendaPath builds the agenda path for an inclusive YYYYMMDD range.
func AgendaPath(start, end string) string {
	return fmt.Sprintf(agendaPath, start, end)
}

// LessonsPath builds the lessons path for an inclusive YYYYMMDD range.
func LessonsPath(start, end string) string {
	return fmt.Sprintf(lessonsPath, start, end)
}

// ExpandPath substitutes the student placeholder.
func ExpandPath(path, studentID string) string {
	return strings.ReplaceAll(path, StudentPlaceholder, studentID)
}

// Options configure a Client.
type Options struct {
	BaseURL    string
	Headers    http.Header
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the portal REST API.
type Client struct {
	baseURL string
	headers http.Header
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: base,
		headers: opts.Headers.Clone(),
		http:    httpClient,
		logger:  logger,
	}, nil
}

// Login posts credentials and returns the raw response body.
func (c *Client) Login(ctx context.Context, req LoginRequest) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode login: %w", err)
	}
	return c.do(ctx, http.MethodPost, LoginPath, bytes.NewReader(payload), "")
}

// Get fetches path with the session token attached and returns the raw body.
// Non-2xx responses are not errors: the portal reports expiry and failures in
// JSON bodies that the caller classifies.
func (c *Client) Get(ctx context.Context, path, token string) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodGet, path, nil, token)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, token string) ([]byte, error) {
	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(AuthHeader, token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("portal request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return data, nil
}

func parseBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("parse base_url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}
