package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedreader/pkg/aggregator"
	"github.com/umputun/feedreader/server/mocks"
)

func TestServer_statusHandler(t *testing.T) {
	srv := New(testConfig(), testCollector(testReport()), &mocks.CachePurgerMock{}, "1.2.3", false)

	req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
	w := httptest.NewRecorder()
	srv.statusHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "1.2.3", resp["version"])
	assert.InDelta(t, 3, resp["feeds_configured"], 0.001)
	assert.NotEmpty(t, resp["time"])
}

func TestServer_feedsHandler(t *testing.T) {
	collector := testCollector(testReport())
	srv := New(testConfig(), collector, &mocks.CachePurgerMock{}, "1.0.0", false)

	req := httptest.NewRequest("GET", "/api/v1/feeds", http.NoBody)
	w := httptest.NewRecorder()
	srv.feedsHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, collector.CollectCalls(), 1)

	var resp feedsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Feeds, 2)
	assert.True(t, testTime.Equal(resp.CollectedAt))

	one := resp.Feeds[0]
	assert.Equal(t, "https://example.com/one.xml", one.URL)
	assert.Equal(t, "Feed One", one.Title)
	require.Len(t, one.Entries, 2)
	assert.Equal(t, "First Story", one.Entries[0].Title)
	assert.Equal(t, "Mon, 15 Jan 2024 09:00:00 +0000", one.Entries[0].Published)
	require.NotNil(t, one.Entries[0].PublishedAt)
	assert.True(t, testTime.Add(-90*time.Minute).Equal(*one.Entries[0].PublishedAt))
	assert.Equal(t, "Invalid date format", one.Entries[1].Published)
	assert.Nil(t, one.Entries[1].PublishedAt)

	two := resp.Feeds[1]
	assert.Equal(t, "Unknown Feed", two.Title)
	require.Len(t, two.Entries, 1)
	assert.Equal(t, entryView{Title: "No title", Link: "#", Summary: "No summary available", Published: "No date available"}, two.Entries[0])

	require.Len(t, resp.Failures, 1)
	assert.Equal(t, failureView{URL: "https://example.com/bad.xml", Error: "feed malformed: parse feed: EOF"}, resp.Failures[0])
}

func TestServer_feedsHandlerEmpty(t *testing.T) {
	srv := New(testConfig(), testCollector(aggregator.Report{}), &mocks.CachePurgerMock{}, "1.0.0", false)

	req := httptest.NewRequest("GET", "/api/v1/feeds", http.NoBody)
	w := httptest.NewRecorder()
	srv.feedsHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []any{}, resp["feeds"])
	assert.Equal(t, []any{}, resp["failures"])
}

func TestServer_purgeCacheHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		purger := &mocks.CachePurgerMock{PurgeFunc: func(ctx context.Context) error { return nil }}
		srv := New(testConfig(), testCollector(testReport()), purger, "1.0.0", false)

		req := httptest.NewRequest("POST", "/api/v1/cache/purge", http.NoBody)
		w := httptest.NewRecorder()
		srv.purgeCacheHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"purged"}`, w.Body.String())
		assert.Len(t, purger.PurgeCalls(), 1)
	})

	t.Run("failure", func(t *testing.T) {
		purger := &mocks.CachePurgerMock{PurgeFunc: func(ctx context.Context) error { return errors.New("db is locked") }}
		srv := New(testConfig(), testCollector(testReport()), purger, "1.0.0", false)

		req := httptest.NewRequest("POST", "/api/v1/cache/purge", http.NoBody)
		w := httptest.NewRecorder()
		srv.purgeCacheHandler(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"db is locked"}`, w.Body.String())
	})
}
