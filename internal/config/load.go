// internal/config/load.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	envTimeURL    = "STATUSD_TIME_URL"
	envWeatherURL = "STATUSD_WEATHER_URL"
)

// Load reads the YAML file at path (optional) on top of the defaults,
// then applies endpoint overrides from the environment. A .env file in the
// working directory is loaded first if present.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envTimeURL)); v != "" {
		cfg.Statusd.Endpoints.TimeURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envWeatherURL)); v != "" {
		cfg.Statusd.Endpoints.WeatherURL = v
	}
}
