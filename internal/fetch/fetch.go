// Package fetch provides the HTTP page fetcher used by all scrapers.
//
// The client applies a request timeout, a polite rate limit shared
// across all fetches, and charset normalization so that pages served in
// legacy encodings decode to UTF-8. Retries are off by default; when
// enabled, transport failures and 5xx responses are retried with
// exponential backoff while 4xx responses fail immediately.
package fetch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "swim-cli/1.0 (github.com/Ilikepi739/swim)"
)

// Error is a failed page fetch: a transport failure or a non-200
// response, always carrying the page URL.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status code %d", e.URL, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client fetches pages over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	maxRetries uint64
	cache      *Cache
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRateLimit sets the polite request rate shared by all fetches.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithRetries enables up to n retries with exponential backoff for
// transport failures and 5xx responses.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxRetries = uint64(n)
		}
	}
}

// WithCache enables an in-memory page cache with the given TTL.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.cache = NewCache(ttl)
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client with the default timeout, user agent, and a
// polite 2 requests/second limit.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: DefaultUserAgent,
		limiter:   rate.NewLimiter(rate.Limit(2), 1),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves a page and returns its body decoded to UTF-8.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			c.logger.Debug("page cache hit", zap.String("url", url))
			return body, nil
		}
	}

	var body []byte
	fetch := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		b, err := c.fetchOnce(ctx, url)
		if err != nil {
			var ferr *Error
			// 4xx responses will not improve on retry.
			if errors.As(err, &ferr) && ferr.StatusCode >= 400 && ferr.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}

	var err error
	if c.maxRetries == 0 {
		err = fetch()
	} else {
		policy := backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
		err = backoff.Retry(fetch, policy)
	}
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(url, body)
	}
	return body, nil
}

// fetchOnce performs a single request.
func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode}
	}

	bodyReader := bufio.NewReader(resp.Body)
	utf8Reader := transform.NewReader(bodyReader, determineEncoding(bodyReader).NewDecoder())
	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}

	c.logger.Debug("fetched page",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)))

	return body, nil
}

// determineEncoding sniffs the page encoding from the first bytes of
// the body, defaulting to UTF-8 when the body is too short to peek.
func determineEncoding(r *bufio.Reader) encoding.Encoding {
	peek, err := r.Peek(1024)
	if err != nil && len(peek) == 0 {
		return unicode.UTF8
	}
	e, _, _ := charset.DetermineEncoding(peek, "")
	return e
}
