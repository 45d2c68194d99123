// internal/controller/builder.go
package controller

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/tamzrod/status-display/internal/brightness"
	cfg "github.com/tamzrod/status-display/internal/config"
	"github.com/tamzrod/status-display/internal/fetch"
	"github.com/tamzrod/status-display/internal/format"
	"github.com/tamzrod/status-display/internal/poller"
	"github.com/tamzrod/status-display/internal/sensor"
	"github.com/tamzrod/status-display/internal/writer"
)

// Build wires the loop from validated, normalized config.
// The returned closer releases the display and sensor handles.
func Build(c *cfg.Config, console io.Writer) (*Loop, func() error, error) {
	s := c.Statusd

	f, err := fetch.New(fetch.Config{
		TimeURL:    s.Endpoints.TimeURL,
		WeatherURL: s.Endpoints.WeatherURL,
		Timeout:    time.Duration(s.Endpoints.TimeoutMs) * time.Millisecond,
		Cooldown:   time.Duration(s.Timing.ResetPauseMs) * time.Millisecond,
	}, fetch.NewHTTPNetwork())
	if err != nil {
		return nil, nil, err
	}

	p, err := poller.Build(c, f)
	if err != nil {
		return nil, nil, err
	}

	sink, closeSink, err := writer.BuildSink(s.Display, console)
	if err != nil {
		return nil, nil, err
	}

	closers := []func() error{closeSink}

	var light sensor.LightSensor
	if s.LightSensor.Enabled {
		bh, err := sensor.OpenBH1750(s.LightSensor.Bus, s.LightSensor.Address)
		if err != nil {
			_ = closeSink()
			return nil, nil, err
		}
		light = bh
		closers = append(closers, bh.Close)
	}

	loop, err := New(Config{
		TickInterval: time.Duration(s.Timing.TickMs) * time.Millisecond,
		Layout:       layout(c),
		Brightness: brightness.Policy{
			MinLux: s.LightSensor.MinLux,
			MaxLux: s.LightSensor.MaxLux,
		},
	}, f, p, light, sink)
	if err != nil {
		_ = closeAll(closers)
		return nil, nil, err
	}

	return loop, func() error { return closeAll(closers) }, nil
}

func layout(c *cfg.Config) format.Layout {
	l := format.DefaultLayout()
	l.Columns = c.Statusd.Display.Columns
	l.Rows = c.Statusd.Display.Rows
	l.DescriptionWidth = c.Statusd.Weather.DescriptionWidth
	if u := c.Statusd.Weather.TempUnit; u != "" {
		l.TempUnit = u[0]
	}
	return l
}

func closeAll(closers []func() error) error {
	var errs []string
	for _, fn := range closers {
		if err := fn(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New("close: " + strings.Join(errs, " | "))
	}
	return nil
}
