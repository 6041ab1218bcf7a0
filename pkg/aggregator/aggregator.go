// Package aggregator fetches the configured list of feeds and collects successful results in list order.
// Failed feeds are dropped from the result list and reported separately.
package aggregator

import (
	"context"
	"errors"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/feedreader/pkg/domain"
)

// Fetcher returns a normalized result for a single feed url
type Fetcher interface {
	Fetch(ctx context.Context, url string) (domain.FeedResult, error)
}

// Aggregator collects feeds from a fixed url list
type Aggregator struct {
	fetcher     Fetcher
	urls        []string
	concurrency int
}

// Options defines optional aggregator parameters
type Options struct {
	Concurrency int // max feeds fetched at the same time, 1 (sequential) if not set
}

// Failure describes a feed which could not be fetched
type Failure struct {
	URL string
	Err error
}

// Report is the outcome of a single collection
type Report struct {
	Feeds       []domain.FeedResult // successful feeds, in url list order
	Failures    []Failure           // failed feeds, in url list order
	CollectedAt time.Time
}

// New makes aggregator for the urls
func New(fetcher Fetcher, urls []string, opts Options) *Aggregator {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	res := &Aggregator{fetcher: fetcher, concurrency: opts.Concurrency}
	res.urls = append(res.urls, urls...)
	return res
}

// URLs returns the configured feed urls
func (a *Aggregator) URLs() []string {
	return append([]string(nil), a.urls...)
}

// Collect fetches all feeds and returns successful results in url list order.
// Failures never abort the collection.
func (a *Aggregator) Collect(ctx context.Context) Report {
	type outcome struct {
		res domain.FeedResult
		err error
	}
	outcomes := make([]outcome, len(a.urls))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, u := range a.urls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].err = err
				return nil
			}
			outcomes[i].res, outcomes[i].err = a.fetcher.Fetch(ctx, u)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	report := Report{Feeds: make([]domain.FeedResult, 0, len(a.urls)), CollectedAt: time.Now()}
	for i, o := range outcomes {
		if o.err != nil {
			report.Failures = append(report.Failures, Failure{URL: a.urls[i], Err: o.err})
			continue
		}
		report.Feeds = append(report.Feeds, o.res)
	}

	if len(report.Failures) > 0 {
		lgr.Printf("[INFO] collected %d feeds, %d failed", len(report.Feeds), len(report.Failures))
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		lgr.Printf("[DEBUG] feed collection canceled")
	}
	return report
}
