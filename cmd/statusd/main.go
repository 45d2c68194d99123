// cmd/statusd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tamzrod/status-display/internal/config"
	"github.com/tamzrod/status-display/internal/controller"
)

func main() {
	// Config path is optional: defaults plus STATUSD_* env are enough.
	cfgPath := ""
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Build loop (fetcher, poller, sink, sensor)
	// --------------------

	loop, closeLoop, err := controller.Build(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("controller build failed: %v", err)
	}
	defer func() {
		if err := closeLoop(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf(
		"statusd started (sink=%s tick=%dms refresh=%dms sensor=%t)",
		cfg.Statusd.Display.Sink,
		cfg.Statusd.Timing.TickMs,
		cfg.Statusd.Timing.WeatherRefreshMs,
		cfg.Statusd.LightSensor.Enabled,
	)

	// Runs until a signal cancels ctx.
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("loop stopped: %v", err)
	}
}
