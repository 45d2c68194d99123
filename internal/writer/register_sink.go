// internal/writer/register_sink.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/status-display/internal/status"
)

// RegisterSink drives a panel that mirrors a block of holding registers
// onto its character grid and backlight.
//
// The first write, and the first write after any failure, re-asserts the
// whole text+backlight block. Otherwise only changed rows are written.
type RegisterSink struct {
	plan RegisterPlan
	cli  endpointClient

	pending   [status.DisplayRows]string
	written   [status.DisplayRows]string
	backlight [status.SlotBacklightSlots]uint16
	lit       [status.SlotBacklightSlots]uint16
	needFull  bool

	lastStatus     []uint16
	needFullStatus bool
}

func NewRegisterSink(plan RegisterPlan, cli endpointClient) *RegisterSink {
	s := &RegisterSink{
		plan:           plan,
		cli:            cli,
		needFull:       true,
		needFullStatus: true,
		backlight:      [status.SlotBacklightSlots]uint16{100, 100, 100},
	}
	s.blank()
	return s
}

func (s *RegisterSink) blank() {
	for i := range s.pending {
		s.pending[i] = padRow("", status.DisplayColumns)
	}
}

// Clear blanks the pending rows. The registers change with the next Write,
// so the panel never shows an empty frame between ticks.
func (s *RegisterSink) Clear() error {
	s.blank()
	return nil
}

// Write places text from the top-left corner, one row per line.
// Lines past the last row are dropped.
func (s *RegisterSink) Write(text string) error {
	if s.cli == nil {
		return errors.New("display writer: missing endpoint client")
	}

	for i, line := range strings.Split(text, "\n") {
		if i >= status.DisplayRows {
			break
		}
		s.pending[i] = padRow(line, status.DisplayColumns)
	}

	if s.needFull {
		return s.writeFull()
	}

	var errs []string

	for row := range s.pending {
		if s.written[row] == s.pending[row] {
			continue
		}
		addr := s.plan.BaseAddress + uint16(status.SlotTextStart+row*status.RegsPerRow)
		if err := s.cli.WriteRegisters(s.plan.UnitID, addr, encodeRow(s.pending[row])); err != nil {
			errs = append(errs, fmt.Sprintf("row%d write failed: %v", row, err))
			continue
		}
		s.written[row] = s.pending[row]
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next write.
		s.needFull = true
		return errors.New("display writer: " + strings.Join(errs, " | "))
	}

	return nil
}

// SetBacklight stores the level; it is written immediately unless a full
// re-assert is pending, which carries it.
func (s *RegisterSink) SetBacklight(r, g, b int) error {
	if err := checkBacklight(r, g, b); err != nil {
		return err
	}

	s.backlight = [status.SlotBacklightSlots]uint16{uint16(r), uint16(g), uint16(b)}

	if s.needFull || s.backlight == s.lit {
		return nil
	}
	if s.cli == nil {
		return errors.New("display writer: missing endpoint client")
	}

	addr := s.plan.BaseAddress + status.SlotBacklightStart
	if err := s.cli.WriteRegisters(s.plan.UnitID, addr, s.backlight[:]); err != nil {
		s.needFull = true
		return fmt.Errorf("display writer: backlight write failed: %w", err)
	}

	s.lit = s.backlight
	return nil
}

func (s *RegisterSink) writeFull() error {
	regs := make([]uint16, status.SlotTextSlots+status.SlotBacklightSlots)

	for row := range s.pending {
		copy(regs[status.SlotTextStart+row*status.RegsPerRow:], encodeRow(s.pending[row]))
	}
	copy(regs[status.SlotBacklightStart:], s.backlight[:])

	if err := s.cli.WriteRegisters(s.plan.UnitID, s.plan.BaseAddress+status.SlotTextStart, regs); err != nil {
		s.needFull = true
		return fmt.Errorf("display writer: full block write failed: %w", err)
	}

	s.needFull = false
	s.written = s.pending
	s.lit = s.backlight
	return nil
}

// encodeRow packs one row into registers, two bytes per register,
// high byte first. Control bytes become '?'; bytes >= 0x80 pass through
// because the panel ROM maps them to glyphs.
func encodeRow(line string) []uint16 {
	b := []byte(padRow(line, status.DisplayColumns))

	for i := range b {
		if b[i] < 0x20 || b[i] == 0x7F {
			b[i] = '?'
		}
	}

	out := make([]uint16, status.RegsPerRow)
	for i := 0; i < status.DisplayColumns; i += 2 {
		out[i/2] = uint16(b[i])<<8 | uint16(b[i+1])
	}
	return out
}
