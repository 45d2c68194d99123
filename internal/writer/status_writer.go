// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"

	"github.com/tamzrod/status-display/internal/status"
)

// WriteStatus delivers the health block next to the display block.
// Unchanged snapshots are not rewritten; after a failure the next call
// writes unconditionally.
func (s *RegisterSink) WriteStatus(snap status.Snapshot) error {
	if s.cli == nil {
		return errors.New("status writer: missing endpoint client")
	}

	regs := status.Encode(snap)

	if !s.needFullStatus && equalRegs(regs, s.lastStatus) {
		return nil
	}

	addr := s.plan.BaseAddress + status.SlotStatusStart
	if err := s.cli.WriteRegisters(s.plan.UnitID, addr, regs); err != nil {
		s.needFullStatus = true
		return fmt.Errorf("status writer: block write failed: %w", err)
	}

	s.needFullStatus = false
	s.lastStatus = regs
	return nil
}

func equalRegs(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
