// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"

	"github.com/tamzrod/status-display/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	s := cfg.Statusd

	// ------------------------------------------------------------
	// ENDPOINTS
	// ------------------------------------------------------------

	for name, raw := range map[string]string{
		"time_url":    s.Endpoints.TimeURL,
		"weather_url": s.Endpoints.WeatherURL,
	} {
		if raw == "" {
			return fmt.Errorf("endpoints.%s is required", name)
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("endpoints.%s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoints.%s: scheme must be http or https, got %q", name, u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("endpoints.%s: host is required", name)
		}
	}

	if s.Endpoints.TimeoutMs <= 0 {
		return fmt.Errorf("endpoints.timeout_ms must be > 0")
	}

	// ------------------------------------------------------------
	// TIMING
	// ------------------------------------------------------------

	if s.Timing.TickMs <= 0 {
		return fmt.Errorf("timing.tick_ms must be > 0")
	}
	if s.Timing.WeatherRefreshMs <= 0 {
		return fmt.Errorf("timing.weather_refresh_ms must be > 0")
	}
	// A zero pause would let the start-up fetch spin on a dead link.
	if s.Timing.ResetPauseMs <= 0 {
		return fmt.Errorf("timing.reset_pause_ms must be > 0")
	}

	// ------------------------------------------------------------
	// DISPLAY GEOMETRY
	// ------------------------------------------------------------

	if s.Display.Rows < 2 {
		return fmt.Errorf("display.rows must be >= 2, got %d", s.Display.Rows)
	}
	// "HH:MM" + separator + at least one character of description.
	if s.Display.Columns < 7 {
		return fmt.Errorf("display.columns must be >= 7, got %d", s.Display.Columns)
	}
	if s.Weather.DescriptionWidth < 1 || s.Weather.DescriptionWidth > s.Display.Columns-6 {
		return fmt.Errorf(
			"weather.description_width must be within 1..%d, got %d",
			s.Display.Columns-6,
			s.Weather.DescriptionWidth,
		)
	}
	if len(s.Weather.TempUnit) > 1 {
		return fmt.Errorf("weather.temp_unit must be a single letter, got %q", s.Weather.TempUnit)
	}
	for i := 0; i < len(s.Weather.TempUnit); i++ {
		if s.Weather.TempUnit[i] > 0x7F {
			return fmt.Errorf("weather.temp_unit must be ASCII")
		}
	}

	// ------------------------------------------------------------
	// SINK
	// ------------------------------------------------------------

	switch s.Display.Sink {
	case SinkConsole:
	case SinkModbus:
		if s.Display.Modbus.Endpoint == "" {
			return fmt.Errorf("display.modbus.endpoint is required when sink is modbus")
		}
		if s.Display.Modbus.TimeoutMs <= 0 {
			return fmt.Errorf("display.modbus.timeout_ms must be > 0")
		}
		// The register map is fixed to a 20x4 panel.
		if s.Display.Columns != 20 || s.Display.Rows != 4 {
			return fmt.Errorf(
				"display: modbus sink requires 20x4 geometry, got %dx%d",
				s.Display.Columns,
				s.Display.Rows,
			)
		}
		if end := int(s.Display.Modbus.BaseAddress) + status.SlotsPerDisplay; end > 65536 {
			return fmt.Errorf(
				"display.modbus.base_address %d leaves no room for the %d-register block",
				s.Display.Modbus.BaseAddress,
				status.SlotsPerDisplay,
			)
		}
	default:
		return fmt.Errorf("display.sink must be %q or %q, got %q", SinkConsole, SinkModbus, s.Display.Sink)
	}

	// ------------------------------------------------------------
	// LIGHT SENSOR (OPT-IN)
	// ------------------------------------------------------------

	if !s.LightSensor.Enabled {
		return nil
	}

	if s.LightSensor.Address == 0 || s.LightSensor.Address > 0x7F {
		return fmt.Errorf("light_sensor.address 0x%x is not a 7-bit i2c address", s.LightSensor.Address)
	}
	if s.LightSensor.MinLux >= s.LightSensor.MaxLux {
		return fmt.Errorf(
			"light_sensor: min_lux (%v) must be below max_lux (%v)",
			s.LightSensor.MinLux,
			s.LightSensor.MaxLux,
		)
	}

	return nil
}
