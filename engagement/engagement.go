// Package engagement counts post views and likes without identifying
// readers. Visitors are tracked as salted hashes of IP and User-Agent, a
// view counts once per visitor per day, and likes toggle per visitor. The
// counters themselves live on the post rows in the main store; this package
// owns only the dedup/toggle state.
package engagement

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// salt holds the per-installation random salt for visitor hashing, protected
// by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for visitor hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

func getSalt() string {
	return salt.value
}

// HashVisitor creates a salted, anonymous visitor fingerprint from IP and
// User-Agent. The raw IP is never stored.
func HashVisitor(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(getSalt() + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// IsBot checks if the User-Agent is likely a bot/crawler. Bot traffic never
// moves the view counter.
func IsBot(ua string) bool {
	ua = strings.ToLower(ua)
	bots := []string{
		"bot", "crawler", "spider", "crawl", "slurp", "scrape",
		"googlebot", "bingbot", "yandex", "baidu", "duckduckbot",
		"facebookexternalhit", "twitterbot", "linkedinbot",
		"ahrefsbot", "semrushbot", "mj12bot", "dotbot",
	}
	for _, bot := range bots {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}

// Day formats t as the dedup bucket key: one view per visitor per day.
func Day(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailyViews represents counted views per day, for the admin dashboard.
type DailyViews struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// PostViews represents total counted views for one post path.
type PostViews struct {
	Slug  string `json:"slug"`
	Views int    `json:"views"`
}
