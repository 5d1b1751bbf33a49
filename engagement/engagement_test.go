package engagement

import (
	"testing"
	"time"
)

func TestIsBot(t *testing.T) {
	bots := []string{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"Mozilla/5.0 (compatible; bingbot/2.0)",
		"curl-spider/1.0",
	}
	for _, ua := range bots {
		if !IsBot(ua) {
			t.Errorf("IsBot(%q) = false, want true", ua)
		}
	}

	humans := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Safari/604.1",
	}
	for _, ua := range humans {
		if IsBot(ua) {
			t.Errorf("IsBot(%q) = true, want false", ua)
		}
	}
}

func TestHashVisitor(t *testing.T) {
	a := HashVisitor("203.0.113.7", "Mozilla/5.0 Chrome")
	b := HashVisitor("203.0.113.7", "Mozilla/5.0 Chrome")
	c := HashVisitor("203.0.113.8", "Mozilla/5.0 Chrome")

	if a != b {
		t.Error("same input should hash identically")
	}
	if a == c {
		t.Error("different IPs should hash differently")
	}
	if len(a) != 16 {
		t.Errorf("hash length = %d, want 16", len(a))
	}
	if a == "203.0.113.7" {
		t.Error("hash must not expose the raw IP")
	}
}

func TestDay(t *testing.T) {
	// 23:30 KST is already the next day in UTC terms only after 09:00;
	// the bucket is computed in UTC regardless of input zone.
	kst := time.FixedZone("KST", 9*60*60)
	at := time.Date(2026, 3, 2, 1, 30, 0, 0, kst)
	if got := Day(at); got != "2026-03-01" {
		t.Errorf("Day = %q, want 2026-03-01", got)
	}
}
