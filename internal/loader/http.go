package loader

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/guttosm/p2pulse/internal/domain/models"
	"github.com/guttosm/p2pulse/internal/logger"
)

const maxRetries = 3

// HTTPSource fetches the feed document from a URL.
//
// Requests go through a client-side token bucket. Throttling answers
// (429, 418), 5xx and transport errors are retried up to maxRetries times,
// waiting Retry-After when present and 1s, 2s, 4s otherwise.
type HTTPSource struct {
	URL string
	Key string

	client  *resty.Client
	limiter *rate.Limiter
	backoff func(attempt int) time.Duration
}

// NewHTTPSource builds a source with the given per-request timeout and
// request budget (rps requests per second, burst tokens).
func NewHTTPSource(url, key string, timeout time.Duration, rps float64, burst int) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPSource{
		URL:     url,
		Key:     key,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		backoff: exponentialBackoff,
	}
}

// exponentialBackoff waits 2^attempt seconds.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

// Name identifies the source in logs and snapshots as "http:<url>".
func (s *HTTPSource) Name() string { return "http:" + s.URL }

// Load fetches the document (see fetch for the retry policy) and decodes it.
func (s *HTTPSource) Load(ctx context.Context) (models.TradeSet, error) {
	body, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(body, s.Key)
}

// fetch performs the GET with rate limiting and retry logic.
func (s *HTTPSource) fetch(ctx context.Context) ([]byte, error) {
	lg := logger.For("loader.http")
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		lg.Debug().Str("url", s.URL).Int("attempt", i+1).Msg("fetching trades")
		resp, err := s.client.R().SetContext(ctx).Get(s.URL)

		var retryAfter time.Duration
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
		case !resp.IsError():
			return resp.Body(), nil
		case resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() == http.StatusTeapot:
			lastErr = fmt.Errorf("throttled with status %s", resp.Status())
			if seconds, convErr := strconv.Atoi(resp.Header().Get("Retry-After")); convErr == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		case resp.StatusCode() >= http.StatusInternalServerError:
			lastErr = fmt.Errorf("server error %s", resp.Status())
		default:
			return nil, fmt.Errorf("%w: request failed with status %s", ErrSourceUnavailable, resp.Status())
		}

		if i == maxRetries-1 {
			break
		}
		if retryAfter == 0 {
			retryAfter = s.backoff(i)
		}

		lg.Warn().Err(lastErr).Int("attempt", i+1).Dur("retry_after", retryAfter).Msg("request failed, retrying")

		select {
		case <-time.After(retryAfter):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("%w: request failed after %d attempts: %w", ErrSourceUnavailable, maxRetries, lastErr)
}
