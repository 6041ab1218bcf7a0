package feed

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/umputun/feedreader/pkg/domain"
)

// ParseDate parses free-text date as found in feeds, e.g. RFC 1123 pubDate or RFC 3339 Atom dates
func ParseDate(s string) (time.Time, error) {
	return dateparse.ParseAny(strings.TrimSpace(s))
}

// published converts raw published text to the domain value.
// Absent text and the "no date" sentinel itself are missing, parse errors keep the raw text.
// Parsed time is kept in UTC, the original offset stays in the raw text.
func published(raw string, parse func(string) (time.Time, error)) domain.Published {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == domain.NoDateAvailable {
		return domain.MissingPublished()
	}
	t, err := parse(raw)
	if err != nil {
		return domain.InvalidPublished(raw)
	}
	return domain.ParsedPublished(raw, t.UTC())
}
