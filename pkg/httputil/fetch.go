package httputil

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brickforge/brickstep/pkg/cache"
	"github.com/brickforge/brickstep/pkg/errors"
	"github.com/brickforge/brickstep/pkg/observability"
)

// sourceNamespace namespaces fetched URLs in the cache.
const sourceNamespace = "http"

// maxBodySize caps fetched source bodies at 32 MiB. Model files are text
// and far smaller in practice.
const maxBodySize = 32 << 20

// Fetcher retrieves model source text over HTTP with caching and retry.
//
// The zero value is not usable; create one with NewFetcher. A Fetcher is
// safe for concurrent use.
type Fetcher struct {
	Client *http.Client
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
}

// NewFetcher creates a fetcher backed by c. A nil cache disables caching.
func NewFetcher(c cache.Cache) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Fetcher{
		Client: &http.Client{Timeout: 30 * time.Second},
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		TTL:    cache.TTLSource,
	}
}

// IsURL reports whether s looks like a fetchable http(s) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FetchText retrieves the body at rawURL as text, consulting the cache
// first. Transient failures are retried with exponential backoff.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid source URL %q", rawURL)
	}

	key := f.Keyer.SourceKey(sourceNamespace, rawURL)
	if data, hit, err := f.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "source")
		return string(data), nil
	}
	observability.Cache().OnCacheMiss(ctx, "source")

	var body []byte
	err = cache.RetryWithBackoff(ctx, func() error {
		var ferr error
		body, ferr = f.fetch(ctx, u)
		return ferr
	})
	if err != nil {
		return "", err
	}

	if f.Cache.Set(ctx, key, body, f.TTL) == nil {
		observability.Cache().OnCacheSet(ctx, "source", len(body))
	}
	return string(body), nil
}

// fetch performs a single GET. 5xx and 429 responses and transport
// failures come back retryable; other failures are final.
func (f *Fetcher) fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request for %s", u)
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, http.MethodGet, u.Host, u.Path)
	resp, err := f.Client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, u.Host, u.Path, err)
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeInternal, err, "fetch %s", u))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, u.Host, u.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to read
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeFileNotFound, "source %s not found", u)
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, cache.Retryable(errors.New(errors.ErrCodeInternal, "fetch %s: status %d", u, resp.StatusCode))
	default:
		return nil, errors.New(errors.ErrCodeInternal, "fetch %s: status %d", u, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeInternal, err, "read body of %s", u))
	}
	return body, nil
}
