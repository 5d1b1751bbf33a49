package devlog

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of the published post collection with TTL.
// Tag and series aggregates are computed once per load from the cached
// collection, so listing pages never touch the database on a warm cache.
type PostCache struct {
	mu      sync.RWMutex
	posts   []Post
	tags    []TagInfo
	series  []SeriesInfo
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.series = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	c.posts = posts
	c.tags = AggregateTags(posts)
	c.series = AggregateSeries(posts)
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached collection after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]Post, []TagInfo, []SeriesInfo, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags, series := c.posts, c.tags, c.series
		c.mu.RUnlock()
		return posts, tags, series, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, nil, err
	}
	return c.posts, c.tags, c.series, nil
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *PostCache) ListPosts(tag string) ([]Post, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	normalized := normalizeTag(tag)
	var filtered []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// ListTags returns tag aggregates for published posts, most used first.
func (c *PostCache) ListTags() ([]TagInfo, error) {
	_, tags, _, err := c.ensureLoaded()
	return tags, err
}

// ListSeries returns series aggregates for published posts, sorted by name.
func (c *PostCache) ListSeries() ([]SeriesInfo, error) {
	_, _, series, err := c.ensureLoaded()
	return series, err
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(slug string) (Post, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Search runs the substring matcher over the cached published collection.
func (c *PostCache) Search(keyword string) ([]Post, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return SearchPosts(posts, keyword), nil
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
