package engagement

import (
	"sync"
	"time"
)

// ipLimiter caps engagement API requests per client IP over a sliding
// window, so a single reader cannot inflate counters by hammering the
// endpoints.
type ipLimiter struct {
	mu      sync.Mutex
	seen    map[string][]time.Time
	limit   int
	window  time.Duration
	lastGC  time.Time
	gcEvery time.Duration
}

func newIPLimiter(limit int, window time.Duration) *ipLimiter {
	return &ipLimiter{
		seen:    make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		gcEvery: window * 10,
	}
}

// Allow reports whether ip may make another request now, recording it if so.
func (l *ipLimiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > l.gcEvery {
		l.gc(now)
		l.lastGC = now
	}

	recent := l.prune(l.seen[ip], now)
	if len(recent) >= l.limit {
		l.seen[ip] = recent
		return false
	}
	l.seen[ip] = append(recent, now)
	return true
}

// prune drops timestamps outside the window. Caller holds the lock.
func (l *ipLimiter) prune(ts []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// gc removes IPs with no recent activity. Caller holds the lock.
func (l *ipLimiter) gc(now time.Time) {
	for ip, ts := range l.seen {
		recent := l.prune(ts, now)
		if len(recent) == 0 {
			delete(l.seen, ip)
		} else {
			l.seen[ip] = recent
		}
	}
}
