// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/status-display/internal/fetch"
)

// State is the display-facing state of the weather source.
type State int

const (
	// NoData: the snapshot was invalidated by repeated failures.
	NoData State = iota
	// HasData: a snapshot is available (possibly stale).
	HasData
)

func (s State) String() string {
	if s == HasData {
		return "HAS_DATA"
	}
	return "NO_DATA"
}

// Cache is the last-known-good weather snapshot plus its bookkeeping.
//
// ConsecutiveFailures resets on every success and only grows on failure.
// Snapshot is cleared exactly when ConsecutiveFailures exceeds the
// configured maximum.
type Cache struct {
	Snapshot            *fetch.WeatherSnapshot // nil = absent
	LastSuccess         time.Time              // zero = never
	ConsecutiveFailures uint
}

// State reports whether the cache currently holds a snapshot.
func (c Cache) State() State {
	if c.Snapshot == nil {
		return NoData
	}
	return HasData
}

// Age is the time since the last successful fetch. Zero if there never was one.
func (c Cache) Age(now time.Time) time.Duration {
	if c.LastSuccess.IsZero() {
		return 0
	}
	return now.Sub(c.LastSuccess)
}

// Result is produced by one poll decision.
type Result struct {
	At        time.Time
	Attempted bool  // false: not due, cache untouched
	Err       error // non-nil means the attempt failed
	State     State // state after the decision
	Cleared   bool  // this attempt invalidated the snapshot
}
