// internal/fetch/payload.go
package fetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeSample is one wall-clock reading from the time endpoint.
// Weekday is ISO-ordered: 0 = Monday.
type TimeSample struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday int
}

// WeatherSnapshot is the subset of the weather payload the display shows.
type WeatherSnapshot struct {
	Description string
	Temperature int // source units, truncated toward zero
}

// weatherPayload models the JSON returned by the weather endpoint
// (OpenWeatherMap current-weather shape).
type weatherPayload struct {
	Weather []weatherCondition `json:"weather"`
	Main    *weatherMain       `json:"main"`
}

type weatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type weatherMain struct {
	Temp *float64 `json:"temp"`
}

// ParseTime decodes a time endpoint body: a JSON string holding
// YYYY-MM-DDTHH:MM:SS with an optional fractional suffix.
func ParseTime(body []byte) (TimeSample, error) {
	var raw string
	if err := json.Unmarshal(body, &raw); err != nil {
		return TimeSample{}, fmt.Errorf("time payload: %w", err)
	}
	return ParseTimestamp(raw)
}

// ParseTimestamp parses YYYY-MM-DDTHH:MM:SS[.frac]. Anything after the
// first '.' of the time part is discarded.
func ParseTimestamp(s string) (TimeSample, error) {
	dt := strings.Split(s, "T")
	if len(dt) != 2 {
		return TimeSample{}, fmt.Errorf("timestamp %q: missing date/time separator", s)
	}

	date, err := splitInts(dt[0], "-", 3)
	if err != nil {
		return TimeSample{}, fmt.Errorf("timestamp %q: date: %w", s, err)
	}

	clock, _, _ := strings.Cut(dt[1], ".")
	tod, err := splitInts(clock, ":", 3)
	if err != nil {
		return TimeSample{}, fmt.Errorf("timestamp %q: time: %w", s, err)
	}

	year, month, day := date[0], date[1], date[2]
	hour, minute, second := tod[0], tod[1], tod[2]

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return TimeSample{}, fmt.Errorf("timestamp %q: out of range", s)
	}

	return TimeSample{
		Year:    year,
		Month:   month,
		Day:     day,
		Hour:    hour,
		Minute:  minute,
		Second:  second,
		Weekday: (int(t.Weekday()) + 6) % 7,
	}, nil
}

func splitInts(s, sep string, n int) ([]int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d %q-separated fields, got %d", n, sep, len(parts))
	}

	out := make([]int, n)
	for i, p := range parts {
		if p == "" {
			return nil, errors.New("empty field")
		}
		for j := 0; j < len(p); j++ {
			if p[j] < '0' || p[j] > '9' {
				return nil, fmt.Errorf("field %q is not numeric", p)
			}
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ParseWeather decodes a weather endpoint body. Both the condition label
// and the temperature must be present.
func ParseWeather(body []byte) (WeatherSnapshot, error) {
	var p weatherPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return WeatherSnapshot{}, fmt.Errorf("weather payload: %w", err)
	}

	if len(p.Weather) == 0 || p.Weather[0].Main == "" {
		return WeatherSnapshot{}, errors.New("weather payload: missing weather[0].main")
	}
	if p.Main == nil || p.Main.Temp == nil {
		return WeatherSnapshot{}, errors.New("weather payload: missing main.temp")
	}

	temp := math.Trunc(*p.Main.Temp)
	if temp > math.MaxInt32 || temp < math.MinInt32 {
		return WeatherSnapshot{}, fmt.Errorf("weather payload: temperature %v out of range", *p.Main.Temp)
	}

	return WeatherSnapshot{
		Description: p.Weather[0].Main,
		Temperature: int(temp),
	}, nil
}
