package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedreader/pkg/aggregator"
	"github.com/umputun/feedreader/pkg/domain"
	"github.com/umputun/feedreader/server/mocks"
)

func TestServer_feedListHandler(t *testing.T) {
	collector := testCollector(testReport())
	srv := New(testConfig(), collector, &mocks.CachePurgerMock{}, "1.0.0", false)

	req := httptest.NewRequest("GET", "/", http.NoBody)
	w := httptest.NewRecorder()
	srv.feedListHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Len(t, collector.CollectCalls(), 1)

	body := w.Body.String()
	assert.Contains(t, body, "<title>Test Reader</title>")
	assert.Contains(t, body, "2 feeds")
	assert.Contains(t, body, "<h2>Feed One</h2>")
	assert.Contains(t, body, `<a href="https://example.com/1" rel="noopener" target="_blank">First Story</a>`)
	assert.Contains(t, body, "Jan 15, 2024 09:00 UTC")
	assert.Contains(t, body, "Invalid date format")
	assert.Contains(t, body, "<b>bold</b>", "safe markup kept")
	assert.NotContains(t, body, "<script>alert", "script stripped")
	assert.Contains(t, body, `title="Some bold text"`)
	assert.Contains(t, body, "Last updated: <time datetime=\"2024-01-15T10:30:00Z\">Jan 15, 2024 10:30 UTC</time>")

	// defaulted entry
	assert.Contains(t, body, "<h2>Unknown Feed</h2>")
	assert.Contains(t, body, "<h3>No title</h3>", "placeholder link is not rendered as anchor")
	assert.Contains(t, body, "No summary available")
	assert.Contains(t, body, "No date available")

	// failed feeds are omitted from the page
	assert.NotContains(t, body, "bad.xml")
}

func TestServer_feedListHandlerEmpty(t *testing.T) {
	srv := New(testConfig(), testCollector(aggregator.Report{CollectedAt: testTime}), &mocks.CachePurgerMock{}, "1.0.0", false)

	req := httptest.NewRequest("GET", "/", http.NoBody)
	w := httptest.NewRecorder()
	srv.feedListHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No feeds available.")
	assert.Contains(t, w.Body.String(), "0 feeds")
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"plain text", "hello world", 100, "hello world"},
		{"tags stripped", "<p>Hello <b>world</b></p>", 100, "Hello world"},
		{"script and style skipped", "<style>p{}</style>text<script>alert(1)</script> after", 100, "text after"},
		{"whitespace collapsed", "  a \n\n\t b  ", 100, "a b"},
		{"entities decoded", "fish &amp; chips", 100, "fish & chips"},
		{"truncated", "abcdefghij", 5, "abcde…"},
		{"truncated on runes", "привет мир", 6, "привет…"},
		{"trailing space trimmed", "abcd efgh", 5, "abcd…"},
		{"no limit", "abcdefghij", 0, "abcdefghij"},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excerpt(tt.in, tt.n))
		})
	}
}

func TestFormatPublished(t *testing.T) {
	ts := time.Date(2024, 3, 5, 7, 8, 0, 0, time.UTC)
	assert.Equal(t, "Mar 5, 2024 07:08 UTC", formatPublished(domain.ParsedPublished("raw", ts)))
	assert.Equal(t, "Invalid date format", formatPublished(domain.InvalidPublished("garbage")))
	assert.Equal(t, "No date available", formatPublished(domain.MissingPublished()))
}

func TestSanitizeHTML(t *testing.T) {
	assert.Equal(t, "<p>ok</p>", string(sanitizeHTML(`<p onclick="x()">ok</p><script>bad()</script>`)))
	assert.Equal(t, `<a href="https://example.com" rel="nofollow">link</a>`, string(sanitizeHTML(`<a href="https://example.com">link</a>`)))
	assert.Equal(t, "No summary available", string(sanitizeHTML(domain.NoSummary)))
}
