package devlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for blog posts
// and uploaded image metadata. It also owns the two invariants the pure
// helpers leave to the persistence layer: slug uniqueness and non-negative
// engagement counters.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    series_name TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT ',,',
    created_at TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1,
    views INTEGER NOT NULL DEFAULT 0,
    likes INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS images (
    key TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    url TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

const postColumns = `id, slug, title, content, series_name, tags, created_at, published, views, likes`

func scanPost(scan func(dest ...any) error) (Post, error) {
	var p Post
	var tags, createdAt string
	var published int
	if err := scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.SeriesName, &tags, &createdAt, &published, &p.Views, &p.Likes); err != nil {
		return Post{}, err
	}
	p.Tags = ParseTags(tags)
	p.Published = published == 1
	p.Link = "/posts/" + p.Slug
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		p.CreatedAt = t
	}
	return p, nil
}

// ListPosts returns all published posts ordered by creation time descending.
// If tag is non-empty, results are filtered to posts containing that tag.
func (s *Store) ListPosts(tag string) ([]Post, error) {
	var rows *sql.Rows
	var err error
	if tag == "" {
		rows, err = s.db.Query(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY created_at DESC`)
	} else {
		normalizedTag := strings.ToLower(strings.TrimSpace(tag))
		rows, err = s.db.Query(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY created_at DESC`, normalizedTag)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListSeriesPosts returns published posts in the given series, oldest first,
// so a series reads front to back.
func (s *Store) ListSeriesPosts(name string) ([]Post, error) {
	rows, err := s.db.Query(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND series_name = ? ORDER BY created_at ASC`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListAllPosts returns every post (published and drafts) for the admin
// dashboard, ordered by creation time descending.
func (s *Store) ListAllPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug)
	return scanPost(row.Scan)
}

// GetPostAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPostAny(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row.Scan)
}

// SavePost inserts or updates a post, keyed by slug. Tags are normalized to
// lowercase and stored comma-framed so tag filtering can use instr. A zero
// CreatedAt is stamped with the current time on first save.
func (s *Store) SavePost(p Post) error {
	normalizedTags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		normalizedTags[i] = strings.ToLower(strings.TrimSpace(t))
	}
	tagString := "," + strings.Join(normalizedTags, ",") + ","
	published := 0
	if p.Published {
		published = 1
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
INSERT INTO posts (slug, title, content, series_name, tags, created_at, published)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
    title = excluded.title,
    content = excluded.content,
    series_name = excluded.series_name,
    tags = excluded.tags,
    published = excluded.published`,
		p.Slug, p.Title, p.Content, p.SeriesName, tagString, createdAt.Format(time.RFC3339), published)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// EnsureUniqueSlug returns candidate unchanged if no other post uses it, and
// otherwise appends -2, -3, ... until the slug is free. The same suffixing
// policy applies to uploaded image keys.
func (s *Store) EnsureUniqueSlug(candidate string) (string, error) {
	slug := candidate
	for counter := 2; ; counter++ {
		var exists int
		err := s.db.QueryRow(`SELECT COUNT(1) FROM posts WHERE slug = ?`, slug).Scan(&exists)
		if err != nil {
			return "", err
		}
		if exists == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", candidate, counter)
	}
}

// PostExists reports whether a published post with the slug exists.
func (s *Store) PostExists(slug string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM posts WHERE slug = ? AND published = 1`, slug).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IncrementViews bumps the view counter for a published post.
func (s *Store) IncrementViews(slug string) error {
	_, err := s.db.Exec(`UPDATE posts SET views = views + 1 WHERE slug = ? AND published = 1`, slug)
	return err
}

// IncrementLikes bumps the like counter and returns the new value.
func (s *Store) IncrementLikes(slug string) (int64, error) {
	return s.adjustLikes(slug, `UPDATE posts SET likes = likes + 1 WHERE slug = ? AND published = 1`)
}

// DecrementLikes lowers the like counter, never below zero, and returns the
// new value.
func (s *Store) DecrementLikes(slug string) (int64, error) {
	return s.adjustLikes(slug, `UPDATE posts SET likes = MAX(likes - 1, 0) WHERE slug = ? AND published = 1`)
}

func (s *Store) adjustLikes(slug, query string) (int64, error) {
	if _, err := s.db.Exec(query, slug); err != nil {
		return 0, err
	}
	var likes int64
	err := s.db.QueryRow(`SELECT likes FROM posts WHERE slug = ?`, slug).Scan(&likes)
	return likes, err
}

// SaveImage stores metadata for an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (key, original_name, url, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		img.Key, img.OriginalName, img.URL, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns all uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT key, original_name, url, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Key, &img.OriginalName, &img.URL, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by key.
// ImageExists reports whether an image with the key is already recorded.
func (s *Store) ImageExists(key string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM images WHERE key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) DeleteImage(key string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE key = ?`, key)
	return err
}

// ParseTags splits a comma-framed tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
