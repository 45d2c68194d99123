// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	s := &cfg.Statusd

	s.Endpoints.TimeURL = strings.TrimSpace(s.Endpoints.TimeURL)
	s.Endpoints.WeatherURL = strings.TrimSpace(s.Endpoints.WeatherURL)

	// Unit letter is shown after the degree glyph; "" falls back to F.
	s.Weather.TempUnit = strings.ToUpper(s.Weather.TempUnit)
	if s.Weather.TempUnit == "" {
		s.Weather.TempUnit = "F"
	}
}
