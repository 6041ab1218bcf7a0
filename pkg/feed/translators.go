package feed

import (
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
)

// rssTranslator keeps item published text only from pubDate.
// The default translator falls back to dc:date, which is not a publish date for us.
type rssTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *rssTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	res, err := t.DefaultRSSTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	src, ok := feed.(*rss.Feed)
	if !ok || len(src.Items) != len(res.Items) {
		return res, nil
	}
	for i, item := range src.Items {
		if res.Items[i] != nil && item != nil {
			res.Items[i].Published = item.PubDate
		}
	}
	return res, nil
}

// atomTranslator keeps entry published text only from <published>, never from <updated>
type atomTranslator struct {
	gofeed.DefaultAtomTranslator
}

func (t *atomTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	res, err := t.DefaultAtomTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	src, ok := feed.(*atom.Feed)
	if !ok || len(src.Entries) != len(res.Items) {
		return res, nil
	}
	for i, entry := range src.Entries {
		if res.Items[i] != nil && entry != nil {
			res.Items[i].Published = entry.Published
		}
	}
	return res, nil
}

// newFeedParser makes gofeed parser with published-only date translators
func newFeedParser() *gofeed.Parser {
	fp := gofeed.NewParser()
	fp.RSSTranslator = &rssTranslator{}
	fp.AtomTranslator = &atomTranslator{}
	return fp
}
