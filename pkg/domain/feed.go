package domain

import "time"

// placeholders used when the source feed omits a field
const (
	UnknownFeedTitle = "Unknown Feed"
	NoTitle          = "No title"
	NoLink           = "#"
	NoSummary        = "No summary available"
)

// MaxEntries is the number of entries kept per feed, extra entries are dropped
const MaxEntries = 5

// FeedResult is the normalized outcome of fetching one feed.
// Once cached it is never modified, a refetch builds a new value.
type FeedResult struct {
	URL         string    `json:"url"`
	FeedTitle   string    `json:"feed_title"`
	Entries     []Entry   `json:"entries"`
	LastUpdated time.Time `json:"last_updated"` // fetch time, not the feed's own publish time
}

// HasEntries reports whether the feed produced at least one entry
func (f FeedResult) HasEntries() bool {
	return len(f.Entries) > 0
}
