package engagement

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "engagement.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordViewDedup(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	counted, err := s.RecordView("hello-world", "visitor-a", now)
	if err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if !counted {
		t.Error("first view should count")
	}

	counted, err = s.RecordView("hello-world", "visitor-a", now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if counted {
		t.Error("same visitor same day should not count again")
	}

	counted, err = s.RecordView("hello-world", "visitor-a", now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if !counted {
		t.Error("next day should count again")
	}

	counted, err = s.RecordView("hello-world", "visitor-b", now)
	if err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if !counted {
		t.Error("different visitor should count")
	}
}

func TestToggleLike(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	liked, err := s.ToggleLike("hello-world", "visitor-a", now)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !liked {
		t.Error("first toggle should like")
	}

	has, err := s.HasLiked("hello-world", "visitor-a")
	if err != nil {
		t.Fatalf("HasLiked: %v", err)
	}
	if !has {
		t.Error("HasLiked should report true after like")
	}

	liked, err = s.ToggleLike("hello-world", "visitor-a", now)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if liked {
		t.Error("second toggle should unlike")
	}

	has, err = s.HasLiked("hello-world", "visitor-a")
	if err != nil {
		t.Fatalf("HasLiked: %v", err)
	}
	if has {
		t.Error("HasLiked should report false after unlike")
	}
}

func TestViewsByDay(t *testing.T) {
	s := newTestStore(t)
	today := time.Now().UTC()
	yesterday := today.AddDate(0, 0, -1)

	for _, v := range []struct {
		slug, visitor string
		at            time.Time
	}{
		{"a", "v1", today},
		{"a", "v2", today},
		{"b", "v1", today},
		{"a", "v1", yesterday},
	} {
		if _, err := s.RecordView(v.slug, v.visitor, v.at); err != nil {
			t.Fatalf("RecordView: %v", err)
		}
	}

	daily, err := s.ViewsByDay(7)
	if err != nil {
		t.Fatalf("ViewsByDay: %v", err)
	}
	if len(daily) != 2 {
		t.Fatalf("expected 2 days, got %d", len(daily))
	}
	if daily[0].Date != Day(today) || daily[0].Views != 3 {
		t.Errorf("today: got %+v", daily[0])
	}
	if daily[1].Date != Day(yesterday) || daily[1].Views != 1 {
		t.Errorf("yesterday: got %+v", daily[1])
	}

	top, err := s.TopPosts(7, 10)
	if err != nil {
		t.Fatalf("TopPosts: %v", err)
	}
	if len(top) != 2 || top[0].Slug != "a" || top[0].Views != 3 {
		t.Errorf("TopPosts: got %+v", top)
	}
}

func TestDeleteOldEvents(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.RecordView("a", "v1", time.Now().AddDate(0, 0, -40)); err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if _, err := s.RecordView("a", "v1", time.Now()); err != nil {
		t.Fatalf("RecordView: %v", err)
	}

	if err := s.DeleteOldEvents(30); err != nil {
		t.Fatalf("DeleteOldEvents: %v", err)
	}

	daily, err := s.ViewsByDay(60)
	if err != nil {
		t.Fatalf("ViewsByDay: %v", err)
	}
	if len(daily) != 1 {
		t.Errorf("expected only the recent event to survive, got %d days", len(daily))
	}
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	v, err := s.GetSetting("hash_salt")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if v != "" {
		t.Errorf("missing setting should be empty, got %q", v)
	}

	if err := s.SetSetting("hash_salt", "abc"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := s.SetSetting("hash_salt", "def"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}

	v, err = s.GetSetting("hash_salt")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if v != "def" {
		t.Errorf("expected overwritten value, got %q", v)
	}
}
