// internal/controller/loop.go
package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tamzrod/status-display/internal/brightness"
	"github.com/tamzrod/status-display/internal/fetch"
	"github.com/tamzrod/status-display/internal/format"
	"github.com/tamzrod/status-display/internal/poller"
	"github.com/tamzrod/status-display/internal/sensor"
	"github.com/tamzrod/status-display/internal/status"
	"github.com/tamzrod/status-display/internal/writer"
)

// InitializingText is shown while the first weather fetch is pending.
const InitializingText = "Initializing..."

// TimeSource yields the current wall-clock time, one request per call.
type TimeSource interface {
	FetchTime(ctx context.Context) (fetch.TimeSample, error)
}

type Config struct {
	TickInterval time.Duration
	Layout       format.Layout
	Brightness   brightness.Policy
}

// Loop owns every piece of mutable state the display depends on.
// It runs on a single goroutine; nothing here is locked.
type Loop struct {
	cfg     Config
	clock   TimeSource
	weather *poller.Poller
	light   sensor.LightSensor // nil: no backlight control
	sink    writer.Sink

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	okCount  uint64
	errCount uint64
	lastErr  uint16
	ticked   bool
	timeOK   bool
	level    int
}

func New(cfg Config, clock TimeSource, weather *poller.Poller, light sensor.LightSensor, sink writer.Sink) (*Loop, error) {
	if clock == nil {
		return nil, errors.New("controller: time source required")
	}
	if weather == nil {
		return nil, errors.New("controller: weather poller required")
	}
	if sink == nil {
		return nil, errors.New("controller: display sink required")
	}
	if cfg.TickInterval <= 0 {
		return nil, errors.New("controller: tick interval must be > 0")
	}

	return &Loop{
		cfg:     cfg,
		clock:   clock,
		weather: weather,
		light:   light,
		sink:    sink,
		now:     time.Now,
		sleep:   sleepCtx,
	}, nil
}

// Run primes the weather cache, then ticks until ctx is cancelled.
// The returned error is always the context's.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Prime(ctx); err != nil {
		return err
	}

	for {
		l.Tick(ctx)

		if err := l.sleep(ctx, l.cfg.TickInterval); err != nil {
			return err
		}
	}
}

// Prime shows the start-up message and blocks until weather is available.
func (l *Loop) Prime(ctx context.Context) error {
	l.render(format.Message(InitializingText))

	if err := l.weather.Prime(ctx, l.now); err != nil {
		return err
	}

	l.okCount++
	log.Printf("weather primed (success=%d errors=%d)", l.okCount, l.errCount)
	return nil
}

// Tick runs one full iteration and returns the frame it rendered.
//
// Order: light -> time -> weather gate -> format -> render. Time goes
// before the weather gate so a failed clock read leaves the weather
// cache exactly as the previous tick left it.
func (l *Loop) Tick(ctx context.Context) format.Frame {
	l.ticked = true

	level := l.readLevel()

	ts, err := l.clock.FetchTime(ctx)
	if err != nil {
		l.fail(err)
		l.timeOK = false
		log.Printf("time fetch failed (source=time): %v", err)

		f := format.TimeError()
		l.render(f)
		l.logCounters()
		return f
	}
	l.okCount++
	l.timeOK = true

	res := l.weather.PollOnce(ctx, l.now())
	if res.Attempted {
		if res.Err != nil {
			l.fail(res.Err)
			log.Printf("weather refresh failed (failures=%d): %v", l.weather.Cache().ConsecutiveFailures, res.Err)
		} else {
			l.okCount++
		}
	}
	if res.Cleared {
		log.Printf("weather invalidated after %d consecutive failures", l.weather.Cache().ConsecutiveFailures)
	}

	if level != nil {
		l.level = *level
	}

	f := format.Format(l.cfg.Layout, format.Input{
		Time:       &ts,
		Weather:    l.weather.Cache().Snapshot,
		Brightness: level,
	})

	l.render(f)
	l.logCounters()
	return f
}

// readLevel samples the light sensor. A fault skips the backlight for this
// tick; the sink keeps whatever level it had.
func (l *Loop) readLevel() *int {
	if l.light == nil {
		return nil
	}

	lux, err := l.light.ReadLux()
	if err != nil {
		l.fail(err)
		log.Printf("light sensor read failed, backlight unchanged: %v", err)
		return nil
	}

	v := l.cfg.Brightness.Level(lux)
	return &v
}

func (l *Loop) render(f format.Frame) {
	if err := writer.Render(l.sink, f); err != nil {
		log.Printf("display render failed: %v", err)
	}

	sw, ok := l.sink.(writer.StatusWriter)
	if !ok {
		return
	}
	if err := sw.WriteStatus(l.Stats()); err != nil {
		log.Printf("status write failed: %v", err)
	}
}

func (l *Loop) fail(err error) {
	l.errCount++
	l.lastErr = errorCode(err)
}

func (l *Loop) logCounters() {
	log.Printf("tick done (health=%s success=%d errors=%d)",
		status.HealthName(l.health()), l.okCount, l.errCount)
}

// Stats is the operator-facing view of the loop.
func (l *Loop) Stats() status.Snapshot {
	now := l.now()
	c := l.weather.Cache()

	s := status.Snapshot{
		Health:              l.health(),
		ConsecutiveFailures: c.ConsecutiveFailures,
		SuccessCount:        l.okCount,
		ErrorCount:          l.errCount,
		Brightness:          l.level,
		LastErrorCode:       l.lastErr,
	}
	if !c.LastSuccess.IsZero() {
		s.WeatherAge = c.Age(now)
	}
	return s
}

func (l *Loop) health() uint16 {
	c := l.weather.Cache()

	switch {
	case !l.ticked:
		return status.HealthUnknown
	case !l.timeOK:
		return status.HealthTimeError
	case c.State() == poller.NoData:
		return status.HealthNoData
	case l.weather.Policy().Stale(c, l.now()):
		return status.HealthStale
	default:
		return status.HealthOK
	}
}

// errorCode maps a failure onto the health block's last-error slot:
// the fetch kind (1..4), 5 for a sensor fault, 255 otherwise.
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}
	if k := fetch.KindOf(err); k != 0 {
		return uint16(k)
	}
	if errors.Is(err, sensor.ErrFault) {
		return 5
	}
	return 255
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
