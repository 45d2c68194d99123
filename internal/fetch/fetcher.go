// internal/fetch/fetcher.go
package fetch

import (
	"context"
	"errors"
	"log"
	"time"
)

// Config is the runtime config the fetcher needs.
type Config struct {
	TimeURL    string
	WeatherURL string
	Timeout    time.Duration

	// Cooldown is the pause after any failed attempt, once the network
	// has been told to reset.
	Cooldown time.Duration
}

// Fetcher performs one request per call and parses it into a typed value.
// It does not retry.
type Fetcher struct {
	cfg   Config
	net   Network
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a fetcher with immutable config.
func New(cfg Config, n Network) (*Fetcher, error) {
	if n == nil {
		return nil, errors.New("fetch: network required")
	}
	if cfg.TimeURL == "" || cfg.WeatherURL == "" {
		return nil, errors.New("fetch: time and weather urls required")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("fetch: timeout must be > 0")
	}
	if cfg.Cooldown < 0 {
		return nil, errors.New("fetch: cooldown must be >= 0")
	}
	return &Fetcher{cfg: cfg, net: n, sleep: sleepCtx}, nil
}

// FetchTime reads the current wall-clock time.
func (f *Fetcher) FetchTime(ctx context.Context) (TimeSample, error) {
	body, err := f.get(ctx, "time", f.cfg.TimeURL)
	if err != nil {
		return TimeSample{}, err
	}

	ts, err := ParseTime(body)
	if err != nil {
		return TimeSample{}, f.fail(ctx, &Error{Kind: KindParse, Op: "time", Err: err})
	}
	return ts, nil
}

// FetchWeather reads the current weather conditions.
func (f *Fetcher) FetchWeather(ctx context.Context) (WeatherSnapshot, error) {
	body, err := f.get(ctx, "weather", f.cfg.WeatherURL)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	ws, err := ParseWeather(body)
	if err != nil {
		return WeatherSnapshot{}, f.fail(ctx, &Error{Kind: KindParse, Op: "weather", Err: err})
	}
	return ws, nil
}

func (f *Fetcher) get(ctx context.Context, op, url string) ([]byte, error) {
	body, err := f.net.Get(ctx, url, f.cfg.Timeout)
	if err != nil {
		return nil, f.fail(ctx, classify(op, err))
	}
	return body, nil
}

// fail resets the link and waits out the cooldown before handing the
// error back. The caller does not continue until the pause is over.
func (f *Fetcher) fail(ctx context.Context, fe *Error) error {
	log.Printf("fetch failed (source=%s): %v", fe.Op, fe)

	if err := f.net.Reset(); err != nil {
		log.Printf("network reset failed (source=%s): %v", fe.Op, err)
	}

	if f.cfg.Cooldown > 0 {
		log.Printf("sleeping %s to allow network reset (source=%s)", f.cfg.Cooldown, fe.Op)
		_ = f.sleep(ctx, f.cfg.Cooldown)
	}

	return fe
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
