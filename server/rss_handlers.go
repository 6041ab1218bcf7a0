package server

import (
	"log"
	"net/http"
	"time"

	"github.com/umputun/feedreader/pkg/feed"
)

// rssHandler re-publishes aggregated entries as a single RSS feed
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	report := s.collector.Collect(r.Context())

	generator := feed.NewGenerator(s.config.GetBaseURL(), s.config.GetTitle())
	rss, err := generator.GenerateRSS(report.Feeds, time.Now())
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
