package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/feedreader/pkg/domain"
)

// Generator creates an RSS feed from aggregated feed results
type Generator struct {
	baseURL string
	title   string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL, title string) *Generator {
	if title == "" {
		title = "Feed Reader"
	}
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		title:   title,
	}
}

// GenerateRSS creates an RSS 2.0 feed with the entries of all feeds, in feed order.
// Entries without a real date have no pubDate.
func (g *Generator) GenerateRSS(feeds []domain.FeedResult, buildTime time.Time) (string, error) {
	rssItems := make([]*RSSItem, 0, len(feeds)*domain.MaxEntries)
	for _, f := range feeds {
		for _, e := range f.Entries {
			rssItems = append(rssItems, g.convertToRSSItem(f, e))
		}
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         g.title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Latest entries from %d feeds", len(feeds)),
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: buildTime.Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts a feed entry to an RSS item, the source feed title goes to category
func (g *Generator) convertToRSSItem(f domain.FeedResult, e domain.Entry) *RSSItem {
	item := &RSSItem{
		Title:       e.Title,
		Link:        e.Link,
		Description: e.Summary,
		Categories:  []string{f.FeedTitle},
	}
	if e.Link != domain.NoLink {
		item.GUID = e.Link
	}
	if e.Published.IsDate() {
		item.PubDate = e.Published.Time.Format(time.RFC1123Z)
	}
	return item
}
