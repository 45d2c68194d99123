// internal/writer/console.go
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tamzrod/status-display/internal/format"
)

// ConsoleSink draws the character grid in a terminal box. It stands in
// for the panel on a development host.
type ConsoleSink struct {
	out     io.Writer
	columns int
	rows    []string
	rgb     *[3]int
}

func NewConsoleSink(out io.Writer, columns, rows int) *ConsoleSink {
	s := &ConsoleSink{
		out:     out,
		columns: columns,
		rows:    make([]string, rows),
	}
	_ = s.Clear()
	return s
}

func (s *ConsoleSink) Clear() error {
	for i := range s.rows {
		s.rows[i] = padRow("", s.columns)
	}
	return nil
}

func (s *ConsoleSink) SetBacklight(r, g, b int) error {
	if err := checkBacklight(r, g, b); err != nil {
		return err
	}
	s.rgb = &[3]int{r, g, b}
	return nil
}

// Write places text from the top-left corner and redraws the box.
func (s *ConsoleSink) Write(text string) error {
	for i, line := range strings.Split(text, "\n") {
		if i >= len(s.rows) {
			break
		}
		s.rows[i] = padRow(line, s.columns)
	}

	_, err := fmt.Fprintln(s.out, s.render())
	return err
}

func (s *ConsoleSink) render() string {
	lines := make([]string, len(s.rows))
	for i, row := range s.rows {
		lines[i] = toTerminal(row)
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	if s.rgb != nil {
		style = style.Foreground(lipgloss.Color(fmt.Sprintf(
			"#%02x%02x%02x",
			channel(s.rgb[0]),
			channel(s.rgb[1]),
			channel(s.rgb[2]),
		)))
	}

	return style.Render(strings.Join(lines, "\n"))
}

// toTerminal maps display ROM bytes to printable UTF-8.
func toTerminal(row string) string {
	var b strings.Builder
	for i := 0; i < len(row); i++ {
		c := row[i]
		switch {
		case c == format.DegreeGlyph:
			b.WriteString("°")
		case c < 0x20 || c > 0x7E:
			b.WriteByte('?')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// channel scales a 1..100 level to 8 bits.
func channel(v int) int {
	return v * 255 / 100
}
