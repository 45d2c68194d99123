// Package brightness maps ambient light readings to backlight levels.
package brightness

import "math"

const (
	DefaultMinLux = 1.0
	DefaultMaxLux = 50.0

	MinLevel = 1
	MaxLevel = 100
)

// MapFromTo linearly rescales x from [inMin,inMax] to [outMin,outMax].
func MapFromTo(x, inMin, inMax, outMin, outMax float64) float64 {
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Policy clamps readings to [MinLux,MaxLux] before rescaling.
type Policy struct {
	MinLux float64
	MaxLux float64
}

func DefaultPolicy() Policy {
	return Policy{MinLux: DefaultMinLux, MaxLux: DefaultMaxLux}
}

// Level returns the backlight level for a raw lux reading, in [1,100].
func (p Policy) Level(lux float64) int {
	if math.IsNaN(lux) {
		return MinLevel
	}

	clamped := math.Max(p.MinLux, math.Min(p.MaxLux, lux))
	v := int(MapFromTo(clamped, p.MinLux, p.MaxLux, MinLevel, MaxLevel))

	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}
