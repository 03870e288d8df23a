package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"FinWeave/internal/domain/models"
	drepo "FinWeave/internal/domain/repository"
	"FinWeave/pkg/cache"
	"FinWeave/pkg/config"
	xhttp "FinWeave/pkg/http"
	"FinWeave/pkg/logger"
	"FinWeave/pkg/util"
)

// ErrBadPayload reports a chart response the client could not make sense of.
// It marks upstream contract violations as distinct from network failures.
var ErrBadPayload = errors.New("yahoo: malformed chart payload")

// Client implements a PriceSource backed by the Yahoo Finance Chart v8 API.
type Client struct {
	baseURL     string
	interval    string
	maxAttempts int
	retryDelay  time.Duration

	limiter  *rate.Limiter
	http     *xhttp.Client
	cache    cache.Service
	cacheTTL time.Duration
	log      *logger.Logger
}

// Option configures the Client beyond its config-derived settings.
type Option func(*Client)

// WithCache caches fetched series by symbol and range, sparing the upstream
// API between scheduled runs.
func WithCache(c cache.Service, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// New creates a new chart API PriceSource.
func New(cfg *config.Config, log *logger.Logger, opts ...Option) drepo.PriceSource {
	src := cfg.Source
	interval := src.Interval
	if interval == "" {
		interval = "1d"
	}
	maxAttempts := src.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	retryDelay := src.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	rps := src.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}
	timeout := src.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	baseURL := src.BaseURL
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}

	c := &Client{
		baseURL:     baseURL,
		interval:    interval,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		http:        xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithUserAgent(src.UserAgent)),
		log:         log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads one asset's daily records for the inclusive date range.
func (c *Client) Fetch(ctx context.Context, symbol, startDate, endDate string) (models.Series, error) {
	cacheKey := fmt.Sprintf("series:%s:%s:%s", symbol, startDate, endDate)
	if c.cache != nil {
		var cached models.Series
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			c.log.Debug("series cache hit", logger.String("symbol", symbol))
			return cached, nil
		}
	}

	period1, ok := util.DateToUnix(startDate)
	if !ok {
		return nil, fmt.Errorf("yahoo: bad start date %q", startDate)
	}
	period2, ok := util.DateToUnix(endDate)
	if !ok {
		return nil, fmt.Errorf("yahoo: bad end date %q", endDate)
	}

	var resp chartResponse
	opts := &xhttp.RequestOptions{
		URL: fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(symbol)),
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(period1, 10)},
			"period2":  {strconv.FormatInt(period2, 10)},
			"interval": {c.interval},
			"events":   {"div,splits"},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		lastErr = c.http.SendAndParse(ctx, opts, &resp)
		if lastErr == nil {
			break
		}
		if !isTimeout(lastErr) || attempt == c.maxAttempts {
			return nil, fmt.Errorf("fetch %s: %w", symbol, lastErr)
		}
		c.log.Warn("fetch timed out, retrying",
			logger.String("symbol", symbol),
			logger.Int("attempt", attempt),
			logger.Error(lastErr),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}

	series, err := resp.toSeries()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", symbol, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, series, c.cacheTTL); err != nil {
			c.log.Warn("series cache write failed", logger.String("symbol", symbol), logger.Error(err))
		}
	}
	return series, nil
}

// Retry only timeout-class failures; anything else (404 symbols, bad JSON)
// will not get better on a second attempt.
func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
