package devlog

import "time"

// Post is the core content type stored in SQLite and rendered by templates.
// SeriesName is empty for posts that belong to no series. Slug is unique
// across all posts and is treated as immutable once a post is published,
// since changing it breaks inbound links.
type Post struct {
	ID         int64
	Title      string
	Content    string
	Slug       string
	SeriesName string
	Tags       []string
	CreatedAt  time.Time
	Published  bool
	Views      int64
	Likes      int64
	Link       string
}

// TagInfo is a tag name with its number of occurrences across posts.
type TagInfo struct {
	Name  string
	Count int
}

// SeriesInfo is a series name with its number of posts.
type SeriesInfo struct {
	Name  string
	Count int
}

// Image holds metadata for an uploaded editor image.
type Image struct {
	Key          string
	OriginalName string
	URL          string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
