// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tamzrod/status-display/internal/fetch"
)

// Client abstracts the weather fetch the poller gates.
type Client interface {
	FetchWeather(ctx context.Context) (fetch.WeatherSnapshot, error)
}

// Policy decides when a refresh is due and when failures invalidate data.
type Policy struct {
	Interval    time.Duration
	MaxFailures uint
}

// Due reports whether a fetch should be attempted at now.
// Elapsed time must strictly exceed Interval.
func (p Policy) Due(c Cache, now time.Time) bool {
	if c.LastSuccess.IsZero() {
		return true
	}
	return now.Sub(c.LastSuccess) > p.Interval
}

// Stale reports data that is past its refresh interval but still shown.
func (p Policy) Stale(c Cache, now time.Time) bool {
	return c.State() == HasData && p.Due(c, now)
}

// Poller owns the weather cache. It is not safe for concurrent use;
// the main loop is its only caller.
type Poller struct {
	policy Policy
	client Client
	cache  Cache
}

// New creates a poller with an empty cache.
func New(policy Policy, client Client) (*Poller, error) {
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if policy.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	return &Poller{policy: policy, client: client}, nil
}

// Policy returns the immutable refresh policy.
func (p *Poller) Policy() Policy { return p.policy }

// Cache returns a copy of the current cache.
func (p *Poller) Cache() Cache { return p.cache }

// PollOnce evaluates the refresh policy at now and fetches if due.
// When not due the cache is left untouched, whatever its state.
func (p *Poller) PollOnce(ctx context.Context, now time.Time) Result {
	if !p.policy.Due(p.cache, now) {
		return Result{At: now, State: p.cache.State()}
	}
	return p.Attempt(ctx, now)
}

// Attempt fetches unconditionally and applies the outcome to the cache.
func (p *Poller) Attempt(ctx context.Context, now time.Time) Result {
	res := Result{At: now, Attempted: true}

	snap, err := p.client.FetchWeather(ctx)
	if err != nil {
		res.Err = err
		p.cache.ConsecutiveFailures++

		// LastSuccess stays put: the next due check follows the normal
		// interval instead of retrying every tick.
		if p.cache.ConsecutiveFailures > p.policy.MaxFailures && p.cache.Snapshot != nil {
			p.cache.Snapshot = nil
			res.Cleared = true
		}

		res.State = p.cache.State()
		return res
	}

	p.cache.Snapshot = &snap
	p.cache.LastSuccess = now
	p.cache.ConsecutiveFailures = 0

	res.State = HasData
	return res
}

// Prime blocks until the first weather fetch succeeds. Each failure has
// already paid the fetcher's cooldown, so there is no extra pause here.
// It returns early only when ctx is cancelled.
func (p *Poller) Prime(ctx context.Context, now func() time.Time) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		res := p.Attempt(ctx, now())
		if res.Err == nil {
			return nil
		}
		log.Printf("weather prime attempt failed (failures=%d): %v", p.cache.ConsecutiveFailures, res.Err)
	}
}
