// internal/writer/builder.go
package writer

import (
	"io"
	"time"

	cfg "github.com/tamzrod/status-display/internal/config"
	wmodbus "github.com/tamzrod/status-display/internal/writer/modbus"
)

// BuildSink creates the configured display sink and its closer.
// Assumes config has already passed validation.
func BuildSink(d cfg.DisplayConfig, console io.Writer) (Sink, func() error, error) {
	if d.Sink != cfg.SinkModbus {
		return NewConsoleSink(console, d.Columns, d.Rows), func() error { return nil }, nil
	}

	c, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: d.Modbus.Endpoint,
		Timeout:  time.Duration(d.Modbus.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	sink := NewRegisterSink(RegisterPlan{
		UnitID:      d.Modbus.UnitID,
		BaseAddress: d.Modbus.BaseAddress,
	}, c)

	return sink, c.Close, nil
}
