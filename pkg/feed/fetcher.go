package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedreader/pkg/cache"
	"github.com/umputun/feedreader/pkg/domain"
	"github.com/umputun/feedreader/pkg/metrics"
)

// DefaultTTL is how long a fetched feed is served from cache
const DefaultTTL = 300 * time.Second

// DocumentParser retrieves and parses a feed document
type DocumentParser interface {
	Parse(ctx context.Context, url string) (*Document, error)
}

// Fetcher returns normalized feed results, served from cache when possible.
// It keeps no state besides the cache.
type Fetcher struct {
	cache     cache.Cache
	parser    DocumentParser
	ttl       time.Duration
	parseDate func(string) (time.Time, error)
	now       func() time.Time
}

// FetcherOpts defines optional fetcher parameters
type FetcherOpts struct {
	TTL       time.Duration                   // cache ttl, DefaultTTL if zero
	ParseDate func(string) (time.Time, error) // date parser, ParseDate if nil
	Now       func() time.Time                // clock, time.Now if nil
}

// NewFetcher makes a fetcher for the cache and parser
func NewFetcher(c cache.Cache, parser DocumentParser, opts FetcherOpts) *Fetcher {
	res := &Fetcher{cache: c, parser: parser, ttl: opts.TTL, parseDate: opts.ParseDate, now: opts.Now}
	if res.ttl <= 0 {
		res.ttl = DefaultTTL
	}
	if res.parseDate == nil {
		res.parseDate = ParseDate
	}
	if res.now == nil {
		res.now = time.Now
	}
	return res
}

// Fetch returns the feed result for url. A cached result is returned as is, otherwise the feed is
// parsed, normalized to at most domain.MaxEntries entries and cached.
// Failures are not cached, the returned error wraps one of ErrFeedMalformed, ErrFeedUnreachable,
// ErrFeedShape or ErrFeedUnexpected.
func (f *Fetcher) Fetch(ctx context.Context, url string) (domain.FeedResult, error) {
	key := cache.Key(url)
	if cached, ok := f.cache.Get(ctx, key); ok {
		metrics.CacheHit()
		lgr.Printf("[DEBUG] cache hit for %s", url)
		return cached, nil
	}
	metrics.CacheMiss()

	st := time.Now()
	res, err := f.fetch(ctx, url)
	metrics.FeedFetchDuration.Observe(time.Since(st).Seconds())
	metrics.FeedFetches.WithLabelValues(status(err)).Inc()
	if err != nil {
		if IsExpected(err) {
			lgr.Printf("[WARN] error fetching feed %s: %v", url, err)
		} else {
			lgr.Printf("[ERROR] unexpected error fetching feed %s: %v", url, err)
		}
		return domain.FeedResult{}, err
	}

	if err := f.cache.Set(ctx, key, res, f.ttl); err != nil {
		lgr.Printf("[WARN] failed to cache feed %s: %v", url, err)
	}
	lgr.Printf("[DEBUG] fetched feed %s, %d entries", url, len(res.Entries))
	return res, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) (domain.FeedResult, error) {
	doc, err := f.parser.Parse(ctx, url)
	if err != nil {
		if IsExpected(err) {
			return domain.FeedResult{}, fmt.Errorf("fetch %s: %w", url, err)
		}
		return domain.FeedResult{}, fmt.Errorf("fetch %s: %w: %w", url, ErrFeedUnexpected, err)
	}
	if doc == nil {
		return domain.FeedResult{}, fmt.Errorf("fetch %s: %w: no document", url, ErrFeedShape)
	}

	res := domain.FeedResult{
		URL:         url,
		FeedTitle:   orDefault(doc.Title, domain.UnknownFeedTitle),
		LastUpdated: f.now().UTC(), // utc without monotonic reading, same as after a cache round trip
		Entries:     make([]domain.Entry, 0, min(len(doc.Entries), domain.MaxEntries)),
	}

	for _, e := range doc.Entries[:min(len(doc.Entries), domain.MaxEntries)] {
		res.Entries = append(res.Entries, domain.Entry{
			Title:     orDefault(e.Title, domain.NoTitle),
			Link:      orDefault(e.Link, domain.NoLink),
			Summary:   orDefault(e.Summary, domain.NoSummary),
			Published: published(e.Published, f.parseDate),
		})
	}

	return res, nil
}

// orDefault returns s, or def if s is blank
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
