package messaging

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// DefaultDebounceWindow is how long an identical signal is considered a repeat.
const DefaultDebounceWindow = 200 * time.Millisecond

// Deduplicator drops signals repeated within a short window. Pages can fire
// several load events for one navigation, each of which would restyle the tab.
type Deduplicator struct {
	mu              sync.Mutex
	recent          map[string]time.Time
	debounceWindow  time.Duration
	cleanupInterval time.Duration
	lastCleanup     time.Time
	now             func() time.Time
}

// NewDeduplicator creates a deduplicator with the given window.
// A non-positive window uses DefaultDebounceWindow.
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Deduplicator{
		recent:          make(map[string]time.Time),
		debounceWindow:  window,
		cleanupInterval: 5 * time.Second,
		lastCleanup:     time.Now(),
		now:             time.Now,
	}
}

func fingerprint(msg Message) string {
	data := fmt.Sprintf("%s:%s:%s:%s", msg.Action, msg.TabID, msg.Domain, msg.URL)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash[:8])
}

// IsDuplicate records msg and reports whether the same signal was seen
// within the debounce window.
func (d *Deduplicator) IsDuplicate(msg Message) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if now.Sub(d.lastCleanup) > d.cleanupInterval {
		d.cleanup(now)
	}

	key := fingerprint(msg)
	if seen, ok := d.recent[key]; ok && now.Sub(seen) < d.debounceWindow {
		return true
	}
	d.recent[key] = now
	return false
}

func (d *Deduplicator) cleanup(now time.Time) {
	for key, seen := range d.recent {
		if now.Sub(seen) > d.debounceWindow {
			delete(d.recent, key)
		}
	}
	d.lastCleanup = now
}
