// Package sensor reads ambient light for backlight control.
package sensor

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// ErrFault wraps every failed sensor read.
var ErrFault = errors.New("sensor fault")

// LightSensor yields one ambient light reading in lux per call.
type LightSensor interface {
	ReadLux() (float64, error)
}

// BH1750 opcodes.
const (
	bh1750PowerOn           byte = 0x01
	bh1750Reset             byte = 0x07
	bh1750ContinuousHighRes byte = 0x10

	bh1750CountsPerLux = 1.2
)

// DefaultBH1750Address is the sensor address with ADDR pulled low.
const DefaultBH1750Address uint16 = 0x23

// BH1750 is a ROHM BH1750 ambient light sensor on an I2C bus,
// running in continuous high-resolution mode.
type BH1750 struct {
	dev    *i2c.Dev
	closer func() error
}

// OpenBH1750 initializes the host drivers, opens the named I2C bus
// ("" = first available) and starts the sensor.
func OpenBH1750(busName string, addr uint16) (*BH1750, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("bh1750: host init: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("bh1750: open bus %q: %w", busName, err)
	}

	s, err := NewBH1750(bus, addr)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	s.closer = bus.Close
	return s, nil
}

// NewBH1750 starts a sensor on an already open bus.
func NewBH1750(bus i2c.Bus, addr uint16) (*BH1750, error) {
	if bus == nil {
		return nil, errors.New("bh1750: bus required")
	}

	d := &i2c.Dev{Bus: bus, Addr: addr}

	for _, op := range []byte{bh1750PowerOn, bh1750Reset, bh1750ContinuousHighRes} {
		if err := d.Tx([]byte{op}, nil); err != nil {
			return nil, fmt.Errorf("bh1750: init opcode 0x%02x: %w", op, err)
		}
	}

	return &BH1750{dev: d}, nil
}

// ReadLux returns the last conversion result.
func (s *BH1750) ReadLux() (float64, error) {
	var r [2]byte
	if err := s.dev.Tx(nil, r[:]); err != nil {
		return 0, fmt.Errorf("%w: bh1750 read: %v", ErrFault, err)
	}

	raw := uint16(r[0])<<8 | uint16(r[1])
	return float64(raw) / bh1750CountsPerLux, nil
}

// Close releases the bus if this sensor opened it.
func (s *BH1750) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer()
}
