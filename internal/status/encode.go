// internal/status/encode.go
package status

import "time"

// Encode converts a Snapshot into a health block.
// Layout is protocol-locked; counters saturate instead of wrapping.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, StatusSlots)

	regs[SlotHealthCode] = s.Health
	regs[SlotConsecutiveFailures] = saturate(uint64(s.ConsecutiveFailures))
	regs[SlotSuccessCount] = saturate(s.SuccessCount)
	regs[SlotErrorCount] = saturate(s.ErrorCount)
	regs[SlotLastErrorCode] = s.LastErrorCode

	if s.WeatherAge > 0 {
		regs[SlotWeatherAgeSeconds] = saturate(uint64(s.WeatherAge / time.Second))
	}
	if s.Brightness > 0 {
		regs[SlotBrightness] = saturate(uint64(s.Brightness))
	}

	return regs
}

func saturate(v uint64) uint16 {
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}
