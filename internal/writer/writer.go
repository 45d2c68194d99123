// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/status-display/internal/format"
)

// Render hands one frame to the sink: clear, backlight (if the frame
// carries one), then text. A failed backlight does not stop the text.
func Render(s Sink, f format.Frame) error {
	var errs []string

	if err := s.Clear(); err != nil {
		errs = append(errs, fmt.Sprintf("clear: %v", err))
	}

	if bl := f.Backlight; bl != nil {
		if err := s.SetBacklight(bl.R, bl.G, bl.B); err != nil {
			errs = append(errs, fmt.Sprintf("backlight: %v", err))
		}
	}

	if err := s.Write(f.Text()); err != nil {
		errs = append(errs, fmt.Sprintf("write: %v", err))
	}

	if len(errs) > 0 {
		return errors.New("render: " + strings.Join(errs, " | "))
	}
	return nil
}

func checkChannel(name string, v int) error {
	if v < 1 || v > 100 {
		return fmt.Errorf("backlight %s=%d out of range 1..100", name, v)
	}
	return nil
}

func checkBacklight(r, g, b int) error {
	if err := checkChannel("r", r); err != nil {
		return err
	}
	if err := checkChannel("g", g); err != nil {
		return err
	}
	return checkChannel("b", b)
}

// padRow cuts or space-pads line to exactly width bytes.
func padRow(line string, width int) string {
	if len(line) >= width {
		return line[:width]
	}
	return line + strings.Repeat(" ", width-len(line))
}
