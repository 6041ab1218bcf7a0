package server

import (
	"log"
	"net/http"
	"time"

	"github.com/umputun/feedreader/pkg/aggregator"
)

type feedsResponse struct {
	Feeds       []feedView    `json:"feeds"`
	Failures    []failureView `json:"failures"`
	CollectedAt time.Time     `json:"collected_at"`
}

type feedView struct {
	URL         string      `json:"url"`
	Title       string      `json:"feed_title"`
	LastUpdated time.Time   `json:"last_updated"`
	Entries     []entryView `json:"entries"`
}

// entryView carries published both as display text and, when it is a real date, as a timestamp
type entryView struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Summary     string     `json:"summary"`
	Published   string     `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type failureView struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":           "ok",
		"version":          s.version,
		"time":             time.Now().UTC(),
		"feeds_configured": len(s.collector.URLs()),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// feedsHandler returns aggregated feeds along with the urls that failed
func (s *Server) feedsHandler(w http.ResponseWriter, r *http.Request) {
	report := s.collector.Collect(r.Context())
	renderJSON(w, r, http.StatusOK, newFeedsResponse(report))
}

// purgeCacheHandler drops all cached feeds
func (s *Server) purgeCacheHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.cache.Purge(r.Context()); err != nil {
		log.Printf("[ERROR] failed to purge cache: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	log.Printf("[INFO] feed cache purged")
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "purged"})
}

func newFeedsResponse(report aggregator.Report) feedsResponse {
	resp := feedsResponse{
		Feeds:       make([]feedView, 0, len(report.Feeds)),
		Failures:    make([]failureView, 0, len(report.Failures)),
		CollectedAt: report.CollectedAt,
	}

	for _, f := range report.Feeds {
		fv := feedView{URL: f.URL, Title: f.FeedTitle, LastUpdated: f.LastUpdated, Entries: make([]entryView, 0, len(f.Entries))}
		for _, e := range f.Entries {
			ev := entryView{Title: e.Title, Link: e.Link, Summary: e.Summary, Published: e.Published.String()}
			if e.Published.IsDate() {
				ts := e.Published.Time
				ev.PublishedAt = &ts
			}
			fv.Entries = append(fv.Entries, ev)
		}
		resp.Feeds = append(resp.Feeds, fv)
	}

	for _, fl := range report.Failures {
		msg := "unknown error"
		if fl.Err != nil {
			msg = fl.Err.Error()
		}
		resp.Failures = append(resp.Failures, failureView{URL: fl.URL, Error: msg})
	}

	return resp
}
