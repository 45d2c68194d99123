// Package format builds the text frame shown on the character display.
// Everything here is pure: no IO, no clocks.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tamzrod/status-display/internal/fetch"
)

const (
	TimeErrorText          = "TIME ERROR"
	PlaceholderDescription = "WEATHER"
	PlaceholderTemperature = "ERR"

	// TruncationMarker replaces the dropped middle of a long label.
	TruncationMarker = '\''

	// DegreeGlyph is the degree sign in the HD44780 character ROM.
	DegreeGlyph byte = 0xDF
)

var days = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var months = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Layout is the fixed geometry the formatter fills.
type Layout struct {
	Columns          int
	Rows             int
	DescriptionWidth int
	TempUnit         byte
}

func DefaultLayout() Layout {
	return Layout{
		Columns:          20,
		Rows:             4,
		DescriptionWidth: 7,
		TempUnit:         'F',
	}
}

// Backlight is one RGB backlight setting, each channel in [1,100].
type Backlight struct {
	R, G, B int
}

// Frame is exactly what one tick hands to the display.
// Lines are in the display character set (ASCII plus DegreeGlyph).
type Frame struct {
	Lines     []string
	Backlight *Backlight // nil: leave the backlight as it is
}

// Text joins the lines the way the display expects them.
func (f Frame) Text() string {
	return strings.Join(f.Lines, "\n")
}

// Input is everything one render depends on.
type Input struct {
	Time       *fetch.TimeSample      // nil: time fetch failed this tick
	Weather    *fetch.WeatherSnapshot // nil: NO_DATA
	Brightness *int                   // nil: no sensor or no reading
}

// Message is a frame holding a single line of literal text.
func Message(text string) Frame {
	return Frame{Lines: []string{text}}
}

// TimeError is the frame shown when the clock could not be read.
func TimeError() Frame {
	return Message(TimeErrorText)
}

// Format maps one tick's inputs to a frame.
func Format(l Layout, in Input) Frame {
	if in.Time == nil {
		return TimeError()
	}
	t := in.Time

	desc := PlaceholderDescription
	temp := PlaceholderTemperature
	if in.Weather != nil {
		desc = Sanitize(in.Weather.Description)
		temp = Temperature(in.Weather.Temperature, l.TempUnit)
	}

	clock := fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	date := fmt.Sprintf("%s %s %d", weekday(t.Weekday), month(t.Month), t.Day)

	f := Frame{
		Lines: []string{
			justify(clock, Truncate(desc, l.DescriptionWidth), l.Columns),
			justify(date, temp, l.Columns),
		},
	}

	if in.Brightness != nil {
		v := *in.Brightness
		f.Backlight = &Backlight{R: v, G: v, B: v}
	}

	return f
}

// Truncate shortens desc to n characters by keeping its first character,
// a marker, and the last n-2 characters: "Thunderstorm" -> "T'storm".
// Labels that already fit are returned unchanged.
func Truncate(desc string, n int) string {
	if len(desc) <= n {
		return desc
	}
	if n < 3 {
		// no room for the marker
		if n <= 0 {
			return ""
		}
		return desc[:n]
	}
	return desc[:1] + string(TruncationMarker) + desc[len(desc)-(n-2):]
}

// Temperature renders t followed by the degree glyph and the unit letter.
func Temperature(t int, unit byte) string {
	return strconv.Itoa(t) + string([]byte{DegreeGlyph, unit})
}

// Sanitize maps a label to printable ASCII; anything else becomes '?'.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(byte(r))
	}
	return b.String()
}

// justify puts left at column 0 and right flush against the last column.
// At least one space separates them; the result is cut to width.
func justify(left, right string, width int) string {
	pad := width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	line := left + strings.Repeat(" ", pad) + right
	if len(line) > width {
		line = line[:width]
	}
	return line
}

func weekday(i int) string {
	if i < 0 || i >= len(days) {
		return "???"
	}
	return days[i]
}

func month(m int) string {
	if m < 1 || m > len(months) {
		return "???"
	}
	return months[m-1]
}
