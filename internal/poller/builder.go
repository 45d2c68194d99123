// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/status-display/internal/config"
)

// Build constructs the weather poller from validated config.
func Build(c *cfg.Config, client Client) (*Poller, error) {
	return New(
		Policy{
			Interval:    time.Duration(c.Statusd.Timing.WeatherRefreshMs) * time.Millisecond,
			MaxFailures: c.Statusd.Weather.MaxConsecutiveFailures,
		},
		client,
	)
}
