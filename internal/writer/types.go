// internal/writer/types.go
package writer

import "github.com/tamzrod/status-display/internal/status"

// Sink is the character display the controller renders to.
// Backlight channels are in [1,100].
type Sink interface {
	Clear() error
	Write(text string) error
	SetBacklight(r, g, b int) error
}

// StatusWriter is the delivery-only contract for the health block.
// Sinks that can publish it implement this alongside Sink.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// RegisterPlan places the display block inside the panel's register memory.
type RegisterPlan struct {
	UnitID      uint8
	BaseAddress uint16
}

// endpointClient is the exact contract the register sink uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}
