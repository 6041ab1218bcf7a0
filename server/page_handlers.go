package server

import (
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/umputun/feedreader/pkg/domain"
)

const (
	templateFeedList = "feed_list.html"
	excerptLength    = 280
	displayDate      = "Jan 2, 2006 15:04 MST"
)

var summaryPolicy = bluemonday.UGCPolicy()

// feedListHandler renders the aggregated feed list page. Feeds that failed are not shown.
func (s *Server) feedListHandler(w http.ResponseWriter, r *http.Request) {
	report := s.collector.Collect(r.Context())

	data := struct {
		Title       string
		Version     string
		Feeds       []domain.FeedResult
		FeedCount   int
		GeneratedAt time.Time
	}{
		Title:       s.config.GetTitle(),
		Version:     s.version,
		Feeds:       report.Feeds,
		FeedCount:   len(report.Feeds),
		GeneratedAt: report.CollectedAt,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, templateFeedList, data); err != nil {
		log.Printf("[ERROR] failed to render feed list: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"sanitize":  sanitizeHTML,
		"excerpt":   func(s string) string { return excerpt(s, excerptLength) },
		"published": formatPublished,
		"isodate":   func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
		"datetime":  func(t time.Time) string { return t.Format(displayDate) },
		"hasLink":   func(link string) bool { return link != "" && link != domain.NoLink },
	}
}

// sanitizeHTML strips everything except user-generated-content safe markup
func sanitizeHTML(s string) template.HTML {
	return template.HTML(summaryPolicy.Sanitize(s)) //nolint:gosec // sanitized by bluemonday
}

// formatPublished renders a parsed date in display form, otherwise the sentinel text
func formatPublished(p domain.Published) string {
	if p.IsDate() {
		return p.Time.Format(displayDate)
	}
	return p.String()
}

// excerpt extracts plain text from an html fragment and truncates it to n runes
func excerpt(s string, n int) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return truncate(strings.Join(strings.Fields(sb.String()), " "), n)
		case html.StartTagToken:
			if name, _ := z.TagName(); isHiddenTag(string(name)) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isHiddenTag(string(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
				sb.WriteByte(' ')
			}
		}
	}
}

func isHiddenTag(name string) bool {
	return name == "script" || name == "style"
}

func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
