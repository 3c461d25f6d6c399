package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"scrobblegraph/internal/logging"
	"scrobblegraph/internal/services"
	"scrobblegraph/internal/textutil"
)

// Result is a single keyword search match.
type Result struct {
	URI   string `json:"uri"`
	Label string `json:"label,omitempty"`
}

// Response models the KeywordSearch payload. Newer Lookup deployments answer
// with "docs" instead of "results"; both are accepted.
type Response struct {
	Results []Result `json:"results"`
	Docs    []struct {
		Resource []string `json:"resource"`
		Label    []string `json:"label"`
	} `json:"docs,omitempty"`
}

// Hits returns matches from whichever response shape was populated.
func (r *Response) Hits() []Result {
	if r == nil {
		return nil
	}
	if len(r.Results) > 0 {
		return r.Results
	}
	out := make([]Result, 0, len(r.Docs))
	for _, doc := range r.Docs {
		if len(doc.Resource) == 0 {
			continue
		}
		item := Result{URI: doc.Resource[0]}
		if len(doc.Label) > 0 {
			item.Label = doc.Label[0]
		}
		out = append(out, item)
	}
	return out
}

// Client queries the DBpedia Lookup keyword search.
type Client struct {
	endpoint       string
	userAgent      string
	httpClient     *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if ua := strings.TrimSpace(userAgent); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRetry overrides the retry policy for transient failures.
func WithRetry(maxRetries int, initial, maxBackoff time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if initial > 0 {
			c.initialBackoff = initial
		}
		if maxBackoff > 0 {
			c.maxBackoff = maxBackoff
		}
	}
}

// WithLogger attaches a logger for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "lookup")
	}
}

// New creates a lookup client for endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("lookup endpoint required")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("parse lookup endpoint: %w", err)
	}
	client := &Client{
		endpoint:       endpoint,
		userAgent:      "scrobblegraph",
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		maxRetries:     DefaultMaxRetries,
		initialBackoff: DefaultInitialBackoff,
		maxBackoff:     DefaultMaxBackoff,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.maxBackoff < client.initialBackoff {
		client.maxBackoff = client.initialBackoff
	}
	return client, nil
}

// Discover strips annotations from name and searches each class in order,
// returning the first hit. An empty string means no class matched.
func (c *Client) Discover(ctx context.Context, name string, classes []string) (string, error) {
	query := textutil.StripAnnotations(name)
	if query == "" {
		return "", nil
	}
	for _, class := range classes {
		resp, err := c.Search(ctx, query, class, 1)
		if err != nil {
			return "", err
		}
		for _, hit := range resp.Hits() {
			if uri := strings.TrimSpace(hit.URI); uri != "" {
				return uri, nil
			}
		}
	}
	return "", nil
}

// Search issues one keyword query, retrying transient failures with
// exponential backoff.
func (c *Client) Search(ctx context.Context, query, class string, maxHits int) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if maxHits <= 0 {
		maxHits = 1
	}
	target, err := c.searchURL(query, class, maxHits)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lookup", "build url", "invalid endpoint", err)
	}

	attempt := 0
	for {
		resp, err := c.fetch(ctx, target)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !IsRetriable(err) {
			return nil, services.Wrap(services.ErrExternal, "lookup", "search", fmt.Sprintf("query %q class %q", query, class), err)
		}
		if attempt >= c.maxRetries {
			return nil, services.Wrap(services.ErrTransient, "lookup", "search",
				fmt.Sprintf("query %q class %q failed after %d attempts", query, class, attempt+1), err)
		}
		attempt++
		backoff := backoffFor(attempt, c.initialBackoff, c.maxBackoff)
		c.logger.Warn("lookup request failed, retrying",
			logging.Duration("backoff", backoff),
			logging.Int("attempt", attempt),
			logging.Int("max_retries", c.maxRetries),
			logging.String("query", query),
			logging.String("class", class),
			logging.Error(err),
			logging.String(logging.FieldEventType, "lookup_retry"),
			logging.String(logging.FieldErrorHint, "lookup service overloaded or unreachable"),
			logging.String(logging.FieldImpact, "conversion slowed while waiting for retries"),
		)
		if err := SleepWithContext(ctx, backoff); err != nil {
			return nil, err
		}
	}
}

func (c *Client) searchURL(query, class string, maxHits int) (string, error) {
	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	params := endpoint.Query()
	params.Set("QueryString", query)
	if class = strings.TrimSpace(class); class != "" {
		params.Set("QueryClass", class)
	}
	params.Set("MaxHits", strconv.Itoa(maxHits))
	endpoint.RawQuery = params.Encode()
	return endpoint.String(), nil
}

func (c *Client) fetch(ctx context.Context, target string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, &TransportError{Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}
	return &payload, nil
}
