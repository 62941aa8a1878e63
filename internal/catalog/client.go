package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"animeseries/internal/services"
)

// ErrNotFound reports that the catalog has no record for the requested id.
var ErrNotFound = errors.New("catalog record not found")

// Page sources understood by FetchPage.
const (
	SourceTop = "top"
	SourceAll = "all"
)

const componentName = "catalog"

// Client provides access to the Jikan API.
type Client struct {
	baseURL     string
	userAgent   string
	source      string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxRetries  int
	backoffBase time.Duration
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

// WithLimiter replaces the request limiter. Tests pass rate.NewLimiter(rate.Inf, 1).
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// WithRetries sets the retry budget and the first backoff interval.
func WithRetries(maxRetries int, backoffBase time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if backoffBase > 0 {
			c.backoffBase = backoffBase
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(agent); trimmed != "" {
			c.userAgent = trimmed
		}
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithSource selects the listing walked by FetchPage.
func WithSource(source string) Option {
	return func(c *Client) {
		c.source = strings.ToLower(strings.TrimSpace(source))
	}
}

// New creates a catalog client. requestDelay is the minimum spacing between
// any two requests; zero disables spacing.
func New(baseURL string, requestDelay time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	limit := rate.Inf
	if requestDelay > 0 {
		limit = rate.Every(requestDelay)
	}
	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   "animeseries/dev",
		source:      SourceTop,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		limiter:     rate.NewLimiter(limit, 1),
		maxRetries:  3,
		backoffBase: time.Second,
	}
	for _, opt := range opts {
		opt(client)
	}
	switch client.source {
	case SourceTop, SourceAll:
	default:
		return nil, fmt.Errorf("catalog page source %q not supported", client.source)
	}
	return client, nil
}

// FetchRecord retrieves the full record for externalID, including relations
// and theme songs. A missing record yields an error matching ErrNotFound.
func (c *Client) FetchRecord(ctx context.Context, externalID int64) (*Record, error) {
	if externalID <= 0 {
		return nil, services.Wrap(services.ErrValidation, componentName, "fetch record", fmt.Sprintf("invalid id %d", externalID), nil)
	}
	endpoint := fmt.Sprintf("%s/anime/%d/full", c.baseURL, externalID)
	var payload animeEnvelope
	if err := c.get(ctx, endpoint, &payload); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, services.Wrap(services.ErrNotFound, componentName, "fetch record", fmt.Sprintf("id %d", externalID), err)
		}
		return nil, services.Wrap(services.ErrTransient, componentName, "fetch record", fmt.Sprintf("id %d", externalID), err)
	}
	if payload.Data.MalID == 0 {
		return nil, services.Wrap(services.ErrMalformedInput, componentName, "fetch record", fmt.Sprintf("id %d: empty payload", externalID), nil)
	}
	rec := payload.Data.toRecord()
	return &rec, nil
}

// FetchPage retrieves one page of the configured listing. Pages start at 1.
// Listing entries carry no relation data; callers fetch full records by id.
func (c *Client) FetchPage(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	path := "/top/anime"
	if c.source == SourceAll {
		path = "/anime"
	}
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if c.source == SourceAll {
		params.Set("order_by", "mal_id")
		params.Set("sort", "asc")
	}
	endpoint.RawQuery = params.Encode()

	var payload listEnvelope
	if err := c.get(ctx, endpoint.String(), &payload); err != nil {
		return nil, services.Wrap(services.ErrTransient, componentName, "fetch page", fmt.Sprintf("page %d", page), err)
	}
	result := &Page{
		Number:     page,
		TotalPages: payload.Pagination.LastVisiblePage,
		HasNext:    payload.Pagination.HasNextPage,
		Records:    make([]Record, 0, len(payload.Data)),
	}
	for _, item := range payload.Data {
		if item.MalID <= 0 {
			continue
		}
		result.Records = append(result.Records, item.toRecord())
	}
	return result, nil
}

// Ping performs a single cheap request so operators can confirm the catalog
// is reachable before starting a run.
func (c *Client) Ping(ctx context.Context) error {
	var payload listEnvelope
	endpoint := c.baseURL + "/top/anime?limit=1"
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return services.Wrap(services.ErrTransient, componentName, "ping", c.baseURL, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, target any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoffBase * time.Duration(1<<uint(attempt-1))
			timer := time.NewTimer(backoff)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}

		retry, err := c.do(ctx, endpoint, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

// do performs one request. The boolean result reports whether a failure is
// worth retrying.
func (c *Client) do(ctx context.Context, endpoint string, target any) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return true, fmt.Errorf("catalog returned %d (latency=%v)", resp.StatusCode, latency)
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, fmt.Errorf("catalog returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("decode catalog response: %w", err)
	}
	return false, nil
}
