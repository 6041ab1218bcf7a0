package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxFeedSize limits the size of a feed document
const maxFeedSize = 10 * 1024 * 1024

// Document is a parsed feed as read from the source. Empty fields mean the source omits them.
type Document struct {
	Title   string
	Entries []DocumentEntry
}

// DocumentEntry is a single entry of a parsed feed, all fields are raw source values
type DocumentEntry struct {
	Title     string
	Link      string
	Summary   string
	Published string
}

// Parser retrieves and parses RSS/Atom feeds over HTTP
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Parse fetches and parses a feed from the given URL.
// Transport failures wrap ErrFeedUnreachable, invalid documents wrap ErrFeedMalformed.
func (p *Parser) Parse(ctx context.Context, url string) (*Document, error) {
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFeedUnreachable, err)
	}

	feed, err := newFeedParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed: %w", ErrFeedMalformed, err)
	}

	doc := &Document{
		Title:   feed.Title,
		Entries: make([]DocumentEntry, 0, len(feed.Items)),
	}
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entry := DocumentEntry{
			Title:     item.Title,
			Link:      item.Link,
			Summary:   item.Description,
			Published: item.Published,
		}
		if entry.Summary == "" {
			entry.Summary = item.Content
		}
		doc.Entries = append(doc.Entries, entry)
	}

	return doc, nil
}

// fetch retrieves feed body from a URL
func (p *Parser) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	addBrowserHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
