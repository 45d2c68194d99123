// internal/status/snapshot.go
package status

import "time"

// Snapshot is the operator-facing view of the controller after a tick.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health              uint16
	ConsecutiveFailures uint
	SuccessCount        uint64
	ErrorCount          uint64
	WeatherAge          time.Duration
	Brightness          int    // 0 = no reading
	LastErrorCode       uint16 // 0 = none; see controller.errorCode
}

// HealthName is the log label of a health code.
func HealthName(h uint16) string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthNoData:
		return "no-data"
	case HealthStale:
		return "stale"
	case HealthTimeError:
		return "time-error"
	default:
		return "unknown"
	}
}
