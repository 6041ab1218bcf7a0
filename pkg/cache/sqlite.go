package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/feedreader/pkg/domain"
)

//go:embed schema.sql
var schema string

const defaultDSN = "file:feedreader.db?cache=shared&mode=rwc"

// SQLite is a cache stored in sqlite database, survives restarts
type SQLite struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLite opens (or creates) sqlite cache database
func NewSQLite(dsn string) (*SQLite, error) {
	if dsn == "" {
		dsn = defaultDSN
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	// single connection keeps pragmas in effect and serializes writers
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

type cacheRow struct {
	Value     string `db:"value"`
	ExpiresAt int64  `db:"expires_at"`
}

// Get returns a not expired value for the key. Database errors are logged and reported as a miss.
func (s *SQLite) Get(ctx context.Context, key string) (domain.FeedResult, bool) {
	var row cacheRow
	err := s.db.GetContext(ctx, &row, "SELECT value, expires_at FROM feed_cache WHERE key = ?", key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			lgr.Printf("[WARN] failed to get cache entry %s: %v", key, err)
		}
		return domain.FeedResult{}, false
	}

	if s.now().UnixNano() >= row.ExpiresAt {
		return domain.FeedResult{}, false
	}

	var res domain.FeedResult
	if err := json.Unmarshal([]byte(row.Value), &res); err != nil {
		lgr.Printf("[WARN] failed to decode cache entry %s: %v", key, err)
		return domain.FeedResult{}, false
	}
	return res, true
}

// Set stores the value for ttl, overwriting any previous value.
// Lock errors are retried with backoff.
func (s *SQLite) Set(ctx context.Context, key string, value domain.FeedResult, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	expiresAt := s.now().Add(ttl).UnixNano()

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO feed_cache (key, value, expires_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
		`
		if _, err := s.db.ExecContext(ctx, query, key, string(data), expiresAt); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("set cache entry: %w", err)}
		}
		return nil
	}, errCritical)
}

// Purge drops all entries
func (s *SQLite) Purge(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM feed_cache"); err != nil {
		return fmt.Errorf("purge cache: %w", err)
	}
	return nil
}

// Cleanup removes expired entries and returns the number removed
func (s *SQLite) Cleanup(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM feed_cache WHERE expires_at <= ?", s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("cleanup cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get affected rows: %w", err)
	}
	return int(n), nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

var errCritical = errors.New("critical error")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string { return e.err.Error() }

func (e *criticalError) Unwrap() error { return e.err }

func (e *criticalError) Is(target error) bool { return target == errCritical }

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
