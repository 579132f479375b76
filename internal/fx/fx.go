// Package fx resolves foreign-currency to VND conversion rates for the
// salary pipeline. Quotes come from free public endpoints; a per-batch
// cache keeps lookups to one network round trip per currency.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// RateSource yields the VND price of one unit of a currency.
type RateSource interface {
	Rate(ctx context.Context, cur domain.Currency) (float64, error)
}

const (
	defaultRetries = 2
	retryBackoff   = 800 * time.Millisecond
	requestTimeout = 10 * time.Second
)

// endpoint describes one quote provider. URL receives the base currency
// code; the response shape is the common {"rates": {"VND": n}} layout.
type endpoint struct {
	name string
	url  string // fmt pattern, %s is the base currency code
}

var defaultEndpoints = []endpoint{
	{"er-api", "https://open.er-api.com/v6/latest/%s"},
	{"exchangerate-host", "https://api.exchangerate.host/latest?base=%s&symbols=VND"},
}

// Client fetches rates over HTTP, trying each provider in order with a
// bounded retry per provider.
type Client struct {
	http      *http.Client
	endpoints []endpoint
	retries   int
}

func NewClient() *Client {
	return &Client{
		http:      &http.Client{Timeout: requestTimeout},
		endpoints: defaultEndpoints,
		retries:   defaultRetries,
	}
}

// NewClientWithEndpoints overrides the provider list, mainly for tests.
func NewClientWithEndpoints(urls ...string) *Client {
	c := NewClient()
	c.endpoints = nil
	for i, u := range urls {
		c.endpoints = append(c.endpoints, endpoint{name: fmt.Sprintf("endpoint-%d", i), url: u})
	}
	return c
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (c *Client) fetch(ctx context.Context, ep endpoint, cur domain.Currency) (float64, error) {
	url := fmt.Sprintf(ep.url, cur)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch rate from %s: %w", ep.name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch rate from %s: status %d", ep.name, resp.StatusCode)
	}
	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode rate from %s: %w", ep.name, err)
	}
	rate, ok := body.Rates["VND"]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("no VND quote from %s for %s", ep.name, cur)
	}
	return rate, nil
}

// Rate queries the providers in order. Each provider gets retries+1
// attempts before falling through to the next.
func (c *Client) Rate(ctx context.Context, cur domain.Currency) (float64, error) {
	if cur == domain.CurrencyVND {
		return 1, nil
	}
	var lastErr error
	for _, ep := range c.endpoints {
		for attempt := 0; attempt <= c.retries; attempt++ {
			if attempt > 0 {
				select {
				case <-ctx.Done():
					return 0, ctx.Err()
				case <-time.After(retryBackoff):
				}
			}
			rate, err := c.fetch(ctx, ep, cur)
			if err == nil {
				return rate, nil
			}
			lastErr = err
		}
	}
	return 0, fmt.Errorf("all rate providers failed for %s: %w", cur, lastErr)
}

// Cache memoizes one RateSource for the lifetime of a batch run.
// Failures are cached too, so a dead provider costs one lookup per
// currency per batch instead of one per record.
type Cache struct {
	src RateSource

	mu    sync.Mutex
	rates map[domain.Currency]float64
	fails map[domain.Currency]bool
}

func NewCache(src RateSource) *Cache {
	return &Cache{
		src:   src,
		rates: make(map[domain.Currency]float64),
		fails: make(map[domain.Currency]bool),
	}
}

// Rate returns the memoized VND rate. A provider failure is logged once
// per currency and surfaces as rate 0 with ok false thereafter.
func (c *Cache) Rate(ctx context.Context, cur domain.Currency) (float64, bool) {
	if cur == domain.CurrencyVND {
		return 1, true
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.rates[cur]; ok {
		return r, true
	}
	if c.fails[cur] {
		return 0, false
	}

	r, err := c.src.Rate(ctx, cur)
	if err != nil {
		log.Printf("fx: no rate for %s, salaries stay unconverted: %v", cur, err)
		c.fails[cur] = true
		return 0, false
	}
	c.rates[cur] = r
	return r, true
}
