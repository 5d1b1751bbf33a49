package engagement

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists engagement state in its own SQLite database, separate from
// the content database so it can be wiped or excluded from backups
// independently.
type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open engagement database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS view_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slug TEXT NOT NULL,
		visitor TEXT NOT NULL,
		day TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(slug, visitor, day)
	);
	CREATE INDEX IF NOT EXISTS idx_view_events_day ON view_events(day);
	CREATE INDEX IF NOT EXISTS idx_view_events_slug ON view_events(slug);

	CREATE TABLE IF NOT EXISTS likes (
		slug TEXT NOT NULL,
		visitor TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (slug, visitor)
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create engagement schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordView registers a view event and reports whether it was the first
// one for this visitor, slug and day. Repeat views within a day are ignored.
func (s *Store) RecordView(slug, visitor string, at time.Time) (bool, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO view_events (slug, visitor, day, created_at) VALUES (?, ?, ?, ?)`,
		slug, visitor, Day(at), at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("record view: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record view: %w", err)
	}
	return n > 0, nil
}

// ToggleLike flips the like state for a visitor on a post and returns the
// new state.
func (s *Store) ToggleLike(slug, visitor string, at time.Time) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM likes WHERE slug = ? AND visitor = ?`, slug, visitor)
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	_, err = s.db.Exec(
		`INSERT INTO likes (slug, visitor, created_at) VALUES (?, ?, ?)`,
		slug, visitor, at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return true, nil
}

// HasLiked reports whether a visitor currently likes a post.
func (s *Store) HasLiked(slug, visitor string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM likes WHERE slug = ? AND visitor = ?`, slug, visitor).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return true, nil
}

// ViewsByDay returns counted views per day for the last `days` days, most
// recent first.
func (s *Store) ViewsByDay(days int) ([]DailyViews, error) {
	since := Day(time.Now().AddDate(0, 0, -days))
	rows, err := s.db.Query(
		`SELECT day, COUNT(*) FROM view_events WHERE day >= ? GROUP BY day ORDER BY day DESC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("views by day: %w", err)
	}
	defer rows.Close()

	var out []DailyViews
	for rows.Next() {
		var d DailyViews
		if err := rows.Scan(&d.Date, &d.Views); err != nil {
			return nil, fmt.Errorf("scan daily views: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TopPosts returns the most viewed slugs over the last `days` days.
func (s *Store) TopPosts(days, limit int) ([]PostViews, error) {
	since := Day(time.Now().AddDate(0, 0, -days))
	rows, err := s.db.Query(
		`SELECT slug, COUNT(*) AS views FROM view_events WHERE day >= ?
		 GROUP BY slug ORDER BY views DESC LIMIT ?`,
		since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top posts: %w", err)
	}
	defer rows.Close()

	var out []PostViews
	for rows.Next() {
		var p PostViews
		if err := rows.Scan(&p.Slug, &p.Views); err != nil {
			return nil, fmt.Errorf("scan top posts: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetSetting returns a setting value, or "" if the key is absent.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// DeleteOldEvents removes view events older than the retention window. The
// aggregate counters on the posts are not affected.
func (s *Store) DeleteOldEvents(retentionDays int) error {
	cutoff := Day(time.Now().AddDate(0, 0, -retentionDays))
	_, err := s.db.Exec(`DELETE FROM view_events WHERE day < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("delete old view events: %w", err)
	}
	return nil
}

// StartCleanupScheduler runs periodic event cleanup. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.DeleteOldEvents(retentionDays); err != nil {
					log.Printf("engagement cleanup: %v", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
