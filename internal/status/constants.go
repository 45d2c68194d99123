// internal/status/constants.go
package status

// Display memory block layout constants.
// These values define the register map a remote panel reads and
// MUST NOT be configurable.

// ---- PANEL GEOMETRY ----

// DisplayColumns is the character width of one row.
const DisplayColumns = 20

// DisplayRows is the number of character rows.
const DisplayRows = 4

// RegsPerRow is the number of registers holding one row (two ASCII bytes each).
const RegsPerRow = DisplayColumns / 2

// ---- TEXT ----

// SlotTextStart is the first register of row 0.
const SlotTextStart = 0

// SlotTextSlots is the number of registers used by all rows.
const SlotTextSlots = DisplayRows * RegsPerRow

// ---- BACKLIGHT ----

// SlotBacklightStart holds R, G, B in three consecutive registers.
const SlotBacklightStart = SlotTextStart + SlotTextSlots

// SlotBacklightSlots is the number of backlight channels.
const SlotBacklightSlots = 3

// ---- HEALTH BLOCK ----

// SlotStatusStart is the first register of the health block.
const SlotStatusStart = SlotBacklightStart + SlotBacklightSlots

// Offsets inside the health block.
const (
	SlotHealthCode          = 0
	SlotConsecutiveFailures = 1
	SlotSuccessCount        = 2
	SlotErrorCount          = 3
	SlotWeatherAgeSeconds   = 4
	SlotBrightness          = 5
	SlotLastErrorCode       = 6
)

// StatusSlots is the size of the health block.
const StatusSlots = 7

// SlotsPerDisplay is the full block size.
const SlotsPerDisplay = SlotStatusStart + StatusSlots

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state, before the first tick.
const HealthUnknown uint16 = 0

// HealthOK represents fresh weather and a working clock.
const HealthOK uint16 = 1

// HealthNoData represents weather invalidated by repeated failures.
const HealthNoData uint16 = 2

// HealthStale represents weather older than its refresh interval.
const HealthStale uint16 = 3

// HealthTimeError represents a failed clock read on the last tick.
const HealthTimeError uint16 = 4
