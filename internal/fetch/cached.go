// Package fetch - cached.go provides per-run memoization of URL fetches.
package fetch

import (
	"context"
)

// Cache memoizes fetch results by URL for the lifetime of a single pipeline
// run. It is mutated only from the sequential processing path, so it carries
// no locking.
type Cache map[string]*Result

// NewCache returns an empty fetch cache.
func NewCache() Cache {
	return make(Cache)
}

// CachedFetcher wraps URL fetching with a caller-supplied memoization cache.
// Failed fetches are not cached, so a transient error does not poison the
// rest of the run.
type CachedFetcher struct {
	cache   Cache
	options *Options
}

// NewCachedFetcher creates a fetcher backed by the given cache. A nil cache
// gets a fresh one, which effectively scopes memoization to this fetcher.
func NewCachedFetcher(cache Cache, options *Options) *CachedFetcher {
	if cache == nil {
		cache = NewCache()
	}
	if options == nil {
		options = DefaultOptions()
	}
	return &CachedFetcher{cache: cache, options: options}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch retrieves a URL, returning the memoized result when the same URL was
// already fetched during this run.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if cached, ok := f.cache[urlStr]; ok {
		return &CachedResult{Result: cached, FromCache: true}, nil
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	f.cache[urlStr] = result
	return &CachedResult{Result: result, FromCache: false}, nil
}

// FetchText retrieves a URL and extracts its main text content using the
// given selectors, memoizing the extraction alongside the HTML.
func (f *CachedFetcher) FetchText(ctx context.Context, urlStr string, contentSelectors []string) (*CachedResult, error) {
	cached, err := f.Fetch(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	if cached.Text == "" {
		text, err := ExtractMainText(cached.HTML, contentSelectors)
		if err != nil {
			return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
		}
		cached.Text = text
		// Fetch returned the cached *Result, so the extraction sticks.
	}
	return cached, nil
}
