// Package httputil fetches remote model sources over HTTP.
//
// # Overview
//
// Model files can live on part-library servers or plain web hosts; the
// [Fetcher] retrieves them with caching and automatic retry so repeated
// unwraps of the same URL do not re-download the source:
//
//	fetcher := httputil.NewFetcher(cache)
//	source, err := fetcher.FetchText(ctx, "https://example.com/car.mpd")
//
// # Caching
//
// Fetched bodies are stored in the configured cache under a source key
// derived from the URL. The default TTL is [cache.TTLSource]; pass a
// different TTL through the Fetcher to override it.
//
// # Retry
//
// Transient failures are retried with exponential backoff:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Client errors (404 and other 4xx) fail immediately.
package httputil
