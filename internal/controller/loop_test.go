// internal/controller/loop_test.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tamzrod/status-display/internal/brightness"
	"github.com/tamzrod/status-display/internal/fetch"
	"github.com/tamzrod/status-display/internal/format"
	"github.com/tamzrod/status-display/internal/poller"
	"github.com/tamzrod/status-display/internal/sensor"
	"github.com/tamzrod/status-display/internal/status"
)

// ---- fakes ----

type fakeClock struct {
	fail  bool
	calls int
}

func (f *fakeClock) FetchTime(ctx context.Context) (fetch.TimeSample, error) {
	f.calls++
	if f.fail {
		return fetch.TimeSample{}, &fetch.Error{Kind: fetch.KindTimeout, Op: "time", Err: context.DeadlineExceeded}
	}
	return fetch.TimeSample{Year: 2024, Month: 1, Day: 5, Hour: 9, Minute: 4, Weekday: 4}, nil
}

type fakeWeather struct {
	failFirst int
	fail      bool
	calls     int
}

func (f *fakeWeather) FetchWeather(ctx context.Context) (fetch.WeatherSnapshot, error) {
	f.calls++
	if f.fail || f.calls <= f.failFirst {
		return fetch.WeatherSnapshot{}, &fetch.Error{Kind: fetch.KindConnection, Op: "weather", Err: errors.New("down")}
	}
	return fetch.WeatherSnapshot{Description: "Clouds", Temperature: 61}, nil
}

type fakeLight struct {
	lux  float64
	fail bool
}

func (f *fakeLight) ReadLux() (float64, error) {
	if f.fail {
		return 0, fmt.Errorf("%w: bus nack", sensor.ErrFault)
	}
	return f.lux, nil
}

type fakeSink struct {
	texts     []string
	backlight [3]int
	statuses  []status.Snapshot
}

func (f *fakeSink) Clear() error { return nil }

func (f *fakeSink) Write(text string) error {
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeSink) SetBacklight(r, g, b int) error {
	f.backlight = [3]int{r, g, b}
	return nil
}

func (f *fakeSink) WriteStatus(s status.Snapshot) error {
	f.statuses = append(f.statuses, s)
	return nil
}

func (f *fakeSink) last(t *testing.T) string {
	t.Helper()
	if len(f.texts) == 0 {
		t.Fatalf("nothing rendered")
	}
	return f.texts[len(f.texts)-1]
}

var t0 = time.Date(2024, 1, 5, 9, 4, 0, 0, time.UTC)

type harness struct {
	loop    *Loop
	clock   *fakeClock
	weather *fakeWeather
	sink    *fakeSink
	now     time.Time
}

func newHarness(t *testing.T, light sensor.LightSensor) *harness {
	t.Helper()

	h := &harness{
		clock:   &fakeClock{},
		weather: &fakeWeather{},
		sink:    &fakeSink{},
		now:     t0,
	}

	p, err := poller.New(poller.Policy{Interval: 30 * time.Second, MaxFailures: 3}, h.weather)
	if err != nil {
		t.Fatalf("poller.New() err=%v", err)
	}

	l, err := New(Config{
		TickInterval: 5 * time.Second,
		Layout:       format.DefaultLayout(),
		Brightness:   brightness.DefaultPolicy(),
	}, h.clock, p, light, h.sink)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	l.now = func() time.Time { return h.now }
	l.sleep = func(ctx context.Context, d time.Duration) error {
		h.now = h.now.Add(d)
		return ctx.Err()
	}

	h.loop = l
	return h
}

func (h *harness) prime(t *testing.T) {
	t.Helper()
	if err := h.loop.Prime(context.Background()); err != nil {
		t.Fatalf("Prime() err=%v", err)
	}
}

// ---- tests ----

func TestNew_Validation(t *testing.T) {
	p, _ := poller.New(poller.Policy{Interval: time.Second}, &fakeWeather{})
	good := Config{TickInterval: time.Second, Layout: format.DefaultLayout()}

	if _, err := New(good, nil, p, nil, &fakeSink{}); err == nil {
		t.Fatalf("expected error for nil time source")
	}
	if _, err := New(good, &fakeClock{}, nil, nil, &fakeSink{}); err == nil {
		t.Fatalf("expected error for nil poller")
	}
	if _, err := New(good, &fakeClock{}, p, nil, nil); err == nil {
		t.Fatalf("expected error for nil sink")
	}
	if _, err := New(Config{}, &fakeClock{}, p, nil, &fakeSink{}); err == nil {
		t.Fatalf("expected error for zero tick interval")
	}
}

func TestPrime_ShowsInitializingAndRetries(t *testing.T) {
	h := newHarness(t, nil)
	h.weather.failFirst = 2

	h.prime(t)

	if h.sink.texts[0] != InitializingText {
		t.Fatalf("first frame = %q", h.sink.texts[0])
	}
	if h.weather.calls != 3 {
		t.Fatalf("expected 3 weather attempts, got %d", h.weather.calls)
	}
	if h.loop.weather.Cache().State() != poller.HasData {
		t.Fatalf("weather should be available after prime")
	}
}

func TestTick_RendersClockAndWeather(t *testing.T) {
	h := newHarness(t, nil)
	h.prime(t)

	f := h.loop.Tick(context.Background())

	want := []string{
		"09:04         Clouds",
		"Fri Jan 5       61\xdfF",
	}
	if len(f.Lines) != len(want) {
		t.Fatalf("lines = %q", f.Lines)
	}
	for i := range want {
		if f.Lines[i] != want[i] {
			t.Fatalf("line %d = %q want %q", i, f.Lines[i], want[i])
		}
	}
	if h.sink.last(t) != strings.Join(want, "\n") {
		t.Fatalf("sink got %q", h.sink.last(t))
	}
	if f.Backlight != nil {
		t.Fatalf("no sensor: backlight must be nil")
	}
}

func TestTick_FailureStreakThenRecovery(t *testing.T) {
	h := newHarness(t, nil)
	h.prime(t)

	h.weather.fail = true

	for i := 1; i <= 3; i++ {
		h.now = h.now.Add(31 * time.Second)
		f := h.loop.Tick(context.Background())
		if !strings.Contains(f.Text(), "Clouds") {
			t.Fatalf("failure %d: snapshot must be retained, got %q", i, f.Text())
		}
	}

	h.now = h.now.Add(31 * time.Second)
	f := h.loop.Tick(context.Background())
	if !strings.Contains(f.Lines[0], format.PlaceholderDescription) || !strings.HasSuffix(f.Lines[1], format.PlaceholderTemperature) {
		t.Fatalf("fourth failure: expected placeholders, got %q", f.Text())
	}

	h.weather.fail = false
	h.now = h.now.Add(5 * time.Second)
	f = h.loop.Tick(context.Background())
	if !strings.Contains(f.Text(), "Clouds") {
		t.Fatalf("recovery: expected weather restored, got %q", f.Text())
	}
	if c := h.loop.weather.Cache(); c.ConsecutiveFailures != 0 {
		t.Fatalf("failures not reset: %d", c.ConsecutiveFailures)
	}
}

func TestTick_TimeErrorLeavesWeatherUntouched(t *testing.T) {
	h := newHarness(t, nil)
	h.prime(t)

	before := h.loop.weather.Cache()
	calls := h.weather.calls

	h.clock.fail = true
	h.now = h.now.Add(time.Minute) // weather would be due

	f := h.loop.Tick(context.Background())

	if f.Text() != format.TimeErrorText {
		t.Fatalf("expected %q, got %q", format.TimeErrorText, f.Text())
	}
	if h.weather.calls != calls {
		t.Fatalf("weather must not be fetched on a time error")
	}

	after := h.loop.weather.Cache()
	if after.Snapshot != before.Snapshot ||
		!after.LastSuccess.Equal(before.LastSuccess) ||
		after.ConsecutiveFailures != before.ConsecutiveFailures {
		t.Fatalf("cache changed: before=%+v after=%+v", before, after)
	}
}

func TestTick_TimeErrorWithNoData(t *testing.T) {
	h := newHarness(t, nil)
	h.prime(t)

	h.weather.fail = true
	for i := 0; i < 4; i++ {
		h.now = h.now.Add(31 * time.Second)
		h.loop.Tick(context.Background())
	}
	if h.loop.weather.Cache().State() != poller.NoData {
		t.Fatalf("expected NO_DATA")
	}

	h.clock.fail = true
	h.loop.Tick(context.Background())

	if c := h.loop.weather.Cache(); c.State() != poller.NoData || c.ConsecutiveFailures != 4 {
		t.Fatalf("time error changed NO_DATA cache: %+v", c)
	}
}

func TestTick_BacklightFollowsLux(t *testing.T) {
	light := &fakeLight{lux: 25.5}
	h := newHarness(t, light)
	h.prime(t)

	f := h.loop.Tick(context.Background())

	if f.Backlight == nil || f.Backlight.R != 50 {
		t.Fatalf("expected level 50, got %+v", f.Backlight)
	}
	if h.sink.backlight != [3]int{50, 50, 50} {
		t.Fatalf("sink backlight = %v", h.sink.backlight)
	}
}

func TestTick_SensorFaultKeepsBacklight(t *testing.T) {
	light := &fakeLight{lux: 50}
	h := newHarness(t, light)
	h.prime(t)

	h.loop.Tick(context.Background())
	if h.sink.backlight != [3]int{100, 100, 100} {
		t.Fatalf("sink backlight = %v", h.sink.backlight)
	}

	errsBefore := h.loop.Stats().ErrorCount
	light.fail = true

	f := h.loop.Tick(context.Background())

	if f.Backlight != nil {
		t.Fatalf("fault tick must not carry a backlight")
	}
	if !strings.Contains(f.Text(), "Clouds") {
		t.Fatalf("fault must not affect text, got %q", f.Text())
	}
	if h.sink.backlight != [3]int{100, 100, 100} {
		t.Fatalf("backlight changed on fault: %v", h.sink.backlight)
	}

	s := h.loop.Stats()
	if s.ErrorCount != errsBefore+1 {
		t.Fatalf("fault not counted: %d -> %d", errsBefore, s.ErrorCount)
	}
	if s.LastErrorCode != 5 {
		t.Fatalf("last error code = %d", s.LastErrorCode)
	}
	if s.Brightness != 100 {
		t.Fatalf("brightness should keep last level, got %d", s.Brightness)
	}
}

func TestStats_Health(t *testing.T) {
	h := newHarness(t, nil)

	if got := h.loop.Stats().Health; got != status.HealthUnknown {
		t.Fatalf("before first tick: %s", status.HealthName(got))
	}

	h.prime(t)
	h.loop.Tick(context.Background())
	if got := h.loop.Stats().Health; got != status.HealthOK {
		t.Fatalf("after good tick: %s", status.HealthName(got))
	}

	h.weather.fail = true
	h.now = h.now.Add(31 * time.Second)
	h.loop.Tick(context.Background())
	if got := h.loop.Stats().Health; got != status.HealthStale {
		t.Fatalf("after one failure: %s", status.HealthName(got))
	}

	for i := 0; i < 3; i++ {
		h.now = h.now.Add(31 * time.Second)
		h.loop.Tick(context.Background())
	}
	if got := h.loop.Stats().Health; got != status.HealthNoData {
		t.Fatalf("after four failures: %s", status.HealthName(got))
	}

	h.clock.fail = true
	h.loop.Tick(context.Background())
	if got := h.loop.Stats().Health; got != status.HealthTimeError {
		t.Fatalf("after time error: %s", status.HealthName(got))
	}
}

func TestTick_PublishesStatus(t *testing.T) {
	h := newHarness(t, nil)
	h.prime(t)

	n := len(h.sink.statuses)
	h.loop.Tick(context.Background())

	if len(h.sink.statuses) != n+1 {
		t.Fatalf("expected one status write per render")
	}
	s := h.sink.statuses[len(h.sink.statuses)-1]
	if s.Health != status.HealthOK || s.SuccessCount != 2 {
		t.Fatalf("unexpected status %+v", s)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	h := newHarness(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	h.loop.sleep = func(ctx context.Context, d time.Duration) error {
		ticks++
		if d != 5*time.Second {
			t.Fatalf("unexpected sleep %s", d)
		}
		if ticks == 3 {
			cancel()
		}
		return ctx.Err()
	}

	if err := h.loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if h.clock.calls != 3 {
		t.Fatalf("expected 3 ticks, got %d", h.clock.calls)
	}
}

func TestErrorCode(t *testing.T) {
	cases := []struct {
		err  error
		want uint16
	}{
		{nil, 0},
		{&fetch.Error{Kind: fetch.KindParse}, 4},
		{fmt.Errorf("wrapped: %w", &fetch.Error{Kind: fetch.KindProtocol}), 3},
		{fmt.Errorf("%w: x", sensor.ErrFault), 5},
		{errors.New("other"), 255},
	}

	for _, c := range cases {
		if got := errorCode(c.err); got != c.want {
			t.Fatalf("errorCode(%v) = %d want %d", c.err, got, c.want)
		}
	}
}
