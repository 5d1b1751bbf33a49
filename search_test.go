package devlog

import (
	"testing"
	"time"
)

func searchFixture() []Post {
	day := func(d int) time.Time {
		return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	return []Post{
		{ID: 1, Title: "Strategy pattern", Content: "Spring Boot makes this easy", Tags: []string{"Kotlin"}, CreatedAt: day(1)},
		{ID: 2, Title: "BigDecimal basics", Content: "money math", Tags: []string{"Spring", "Java"}, CreatedAt: day(2)},
		{ID: 3, Title: "JPA N+1", Content: "fetch join", Tags: []string{"JPA"}, CreatedAt: day(3)},
		{ID: 4, Title: "Spring transactions", Content: "uses Spring too", Tags: []string{"Spring"}, CreatedAt: day(4)},
	}
}

func TestSearchPostsEmptyKeyword(t *testing.T) {
	if got := SearchPosts(searchFixture(), ""); len(got) != 0 {
		t.Errorf("empty keyword should return no results, got %d", len(got))
	}
	if got := SearchPosts(searchFixture(), "   "); len(got) != 0 {
		t.Errorf("blank keyword should return no results, got %d", len(got))
	}
}

func TestSearchPostsCaseInsensitive(t *testing.T) {
	got := SearchPosts(searchFixture(), "spring")

	// Posts 1 and 4 match by content/title, post 2 only by its Spring tag.
	if len(got) != 3 {
		t.Fatalf("SearchPosts count = %d, want 3: %v", len(got), slugsOf(got))
	}
	// Title/content matches first, newest first; tag-only match appended.
	if got[0].ID != 4 || got[1].ID != 1 || got[2].ID != 2 {
		t.Errorf("order = %v, want [4 1 2]", idsOf(got))
	}
}

func TestSearchPostsNoDuplicates(t *testing.T) {
	// Post 4 matches by title, content, and tag; it must appear once.
	got := SearchPosts(searchFixture(), "Spring")
	seen := make(map[int64]int)
	for _, p := range got {
		seen[p.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("post %d appeared %d times", id, n)
		}
	}
}

func TestSearchPostsTagSubstring(t *testing.T) {
	got := SearchPosts(searchFixture(), "kotl")
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("substring tag match failed, got %v", idsOf(got))
	}
}

func TestSearchPostsNoMatch(t *testing.T) {
	if got := SearchPosts(searchFixture(), "rust"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", idsOf(got))
	}
}

func idsOf(posts []Post) []int64 {
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func slugsOf(posts []Post) []string {
	slugs := make([]string, len(posts))
	for i, p := range posts {
		slugs[i] = p.Title
	}
	return slugs
}
