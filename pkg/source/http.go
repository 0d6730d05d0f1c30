package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// ErrUnexpectedStatus is returned for non-200 upstream responses
var ErrUnexpectedStatus = errors.New("unexpected status")

// errPermanent stops retries, the request won't succeed on repeat
var errPermanent = errors.New("permanent failure")

const maxBodySize = 16 * 1024 * 1024

// acceptLanguages contains common browser Accept-Language values
var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,de;q=0.8",
}

// HTTPClient performs GET requests for adapters with retries on transport errors and 5xx responses
type HTTPClient struct {
	client    *http.Client
	userAgent string
	retries   int
	pace      time.Duration
}

// HTTPOpts defines HTTPClient parameters, zero values get defaults
type HTTPOpts struct {
	Timeout   time.Duration
	UserAgent string
	Retries   int
	Pace      time.Duration // delay between sequential requests made by one adapter
}

// NewHTTPClient makes a client shared by adapters
func NewHTTPClient(opts HTTPOpts) *HTTPClient {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "CFPTracker/1.0"
	}
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: opts.UserAgent,
		retries:   opts.Retries,
		pace:      opts.Pace,
	}
}

// Get fetches url and returns the response body. Headers are added on top of the defaults.
func (c *HTTPClient) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	var body []byte
	retrier := repeater.NewBackoff(c.retries, 250*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		b, err := c.get(ctx, url, headers)
		if err != nil {
			return err
		}
		body = b
		return nil
	}, errPermanent)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	return body, nil
}

// GetJSON fetches url and decodes the JSON response into v
func (c *HTTPClient) GetJSON(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.Get(ctx, url, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode json from %s: %w", url, err)
	}
	return nil
}

// Pace waits between sequential requests, returns early with an error if ctx is done
func (c *HTTPClient) Pace(ctx context.Context) error {
	if c.pace <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.pace):
		return nil
	}
}

func (c *HTTPClient) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", errPermanent, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
		if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %w", errPermanent, err)
		}
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
