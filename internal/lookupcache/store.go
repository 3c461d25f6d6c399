package lookupcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one remembered discovery answer. An empty URI records that no
// class produced a match.
type Entry struct {
	Query    string    `json:"query"`
	Classes  []string  `json:"classes"`
	URI      string    `json:"uri"`
	CachedAt time.Time `json:"cached_at"`
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int       `json:"entries"`
	Hits    int       `json:"hits"`
	Misses  int       `json:"misses"`
	Oldest  time.Time `json:"oldest,omitzero"`
	Newest  time.Time `json:"newest,omitzero"`
}

// Store persists discovery answers in SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open initializes or connects to the cache database. The parent directory
// must exist.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("lookup cache path required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the remembered answer for query and classes.
func (s *Store) Get(ctx context.Context, query string, classes []string) (Entry, bool, error) {
	var (
		uri      string
		cachedAt string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT uri, cached_at FROM lookup_results WHERE query = ? AND classes = ?",
		query, classKey(classes),
	).Scan(&uri, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("query lookup cache: %w", err)
	}
	return Entry{
		Query:    query,
		Classes:  append([]string(nil), classes...),
		URI:      uri,
		CachedAt: parseTime(cachedAt),
	}, true, nil
}

// Put records an answer, replacing any previous one for the same key.
func (s *Store) Put(ctx context.Context, entry Entry) error {
	if strings.TrimSpace(entry.Query) == "" {
		return errors.New("lookup cache query cannot be empty")
	}
	cachedAt := entry.CachedAt
	if cachedAt.IsZero() {
		cachedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookup_results (query, classes, uri, cached_at) VALUES (?, ?, ?, ?)
         ON CONFLICT (query, classes) DO UPDATE SET uri = excluded.uri, cached_at = excluded.cached_at`,
		entry.Query, classKey(entry.Classes), entry.URI, cachedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store lookup result: %w", err)
	}
	return nil
}

// List returns every entry ordered by query then classes.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT query, classes, uri, cached_at FROM lookup_results ORDER BY query, classes")
	if err != nil {
		return nil, fmt.Errorf("list lookup cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var query, classes, uri, cachedAt string
		if err := rows.Scan(&query, &classes, &uri, &cachedAt); err != nil {
			return nil, fmt.Errorf("scan lookup cache row: %w", err)
		}
		entries = append(entries, Entry{
			Query:    query,
			Classes:  splitClassKey(classes),
			URI:      uri,
			CachedAt: parseTime(cachedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lookup cache: %w", err)
	}
	return entries, nil
}

// Clear removes every entry and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM lookup_results")
	if err != nil {
		return 0, fmt.Errorf("clear lookup cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Stats reports aggregate counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var (
		stats          Stats
		oldest, newest sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1),
                COALESCE(SUM(CASE WHEN uri <> '' THEN 1 ELSE 0 END), 0),
                MIN(cached_at), MAX(cached_at)
         FROM lookup_results`,
	).Scan(&stats.Entries, &stats.Hits, &oldest, &newest)
	if err != nil {
		return Stats{}, fmt.Errorf("lookup cache stats: %w", err)
	}
	stats.Misses = stats.Entries - stats.Hits
	if oldest.Valid {
		stats.Oldest = parseTime(oldest.String)
	}
	if newest.Valid {
		stats.Newest = parseTime(newest.String)
	}
	return stats, nil
}

func classKey(classes []string) string {
	return strings.Join(classes, ",")
}

func splitClassKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, ",")
}

func parseTime(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
