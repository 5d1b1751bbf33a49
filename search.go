package devlog

import (
	"sort"
	"strings"
)

// SearchPosts returns posts whose title, content, or any tag contains keyword
// as a case-insensitive substring. A blank keyword yields no results.
//
// Title and content matches come first, ordered by creation time descending;
// posts that match only through a tag follow in the order they were found.
// No post appears twice even when several criteria match it. This is a
// literal substring scan over the supplied (pre-filtered) collection, not a
// ranked search.
func SearchPosts(posts []Post, keyword string) []Post {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}
	needle := strings.ToLower(keyword)

	var primary []Post
	var byTag []Post
	seen := make(map[int64]struct{})

	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Content), needle) {
			if _, dup := seen[p.ID]; !dup {
				seen[p.ID] = struct{}{}
				primary = append(primary, p)
			}
			continue
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				if _, dup := seen[p.ID]; !dup {
					seen[p.ID] = struct{}{}
					byTag = append(byTag, p)
				}
				break
			}
		}
	}

	sort.SliceStable(primary, func(i, j int) bool {
		return primary[i].CreatedAt.After(primary[j].CreatedAt)
	})
	return append(primary, byTag...)
}
