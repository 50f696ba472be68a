// Package external holds the HTTP clients for the third-party services the
// planner consults: Unsplash for cover photos and Geoapify for geocoding and
// nearby places. Every call is bounded by a timeout and a shared rate limit.
package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrUnavailable is returned when a client is not configured (no API key)
// or the request has nothing to look up.
var ErrUnavailable = errors.New("external service unavailable")

// ErrNoResult is returned when the provider answers with no usable result.
var ErrNoResult = errors.New("no result")

// Options configures a client.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RatePerSec float64
	HTTPClient *http.Client
}

// client is the shared HTTP plumbing of every provider.
type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func newClient(o Options, defaultBase string) client {
	if o.BaseURL == "" {
		o.BaseURL = defaultBase
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	if o.RatePerSec <= 0 {
		o.RatePerSec = 5
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return client{
		baseURL: o.BaseURL,
		apiKey:  o.APIKey,
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(o.RatePerSec), 1),
	}
}

// getJSON waits for the limiter, performs GET url and decodes a 2xx body into dst.
func (c client) getJSON(ctx context.Context, url string, header http.Header, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", res.StatusCode, body)
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
