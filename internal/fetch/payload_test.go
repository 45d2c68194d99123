package fetch

import "testing"

func TestParseTime_WithFraction(t *testing.T) {
	ts, err := ParseTime([]byte(`"2024-01-05T13:07:42.123456"`))
	if err != nil {
		t.Fatalf("ParseTime err=%v", err)
	}

	want := TimeSample{Year: 2024, Month: 1, Day: 5, Hour: 13, Minute: 7, Second: 42, Weekday: 4}
	if ts != want {
		t.Fatalf("got %+v want %+v", ts, want)
	}
}

func TestParseTime_WithoutFraction(t *testing.T) {
	ts, err := ParseTime([]byte(`"2023-10-16T00:00:09"`))
	if err != nil {
		t.Fatalf("ParseTime err=%v", err)
	}
	// 2023-10-16 is a Monday
	if ts.Weekday != 0 {
		t.Fatalf("expected Monday (0), got %d", ts.Weekday)
	}
	if ts.Second != 9 {
		t.Fatalf("expected second 9, got %d", ts.Second)
	}
}

func TestParseTime_OffsetAfterFractionIgnored(t *testing.T) {
	if _, err := ParseTime([]byte(`"2024-06-09T08:15:00.5+02:00"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseTime_Malformed(t *testing.T) {
	cases := map[string]string{
		"not a string":     `{"datetime":"2024-01-05T13:07:42"}`,
		"no separator":     `"2024-01-05 13:07:42"`,
		"two separators":   `"2024-01-05T13:07T42"`,
		"short date":       `"2024-01T13:07:42"`,
		"short time":       `"2024-01-05T13:07"`,
		"letters":          `"2024-0a-05T13:07:42"`,
		"empty field":      `"2024--05T13:07:42"`,
		"month range":      `"2024-13-05T13:07:42"`,
		"day range":        `"2023-02-29T13:07:42"`,
		"hour range":       `"2024-01-05T24:00:00"`,
		"offset no frac":   `"2024-01-05T13:07:42+01:00"`,
		"negative segment": `"2024-01-05T-1:07:42"`,
	}

	for name, body := range cases {
		if _, err := ParseTime([]byte(body)); err == nil {
			t.Fatalf("%s: expected error for %s", name, body)
		}
	}
}

func TestParseWeather_OK(t *testing.T) {
	body := []byte(`{"weather":[{"id":211,"main":"Thunderstorm","description":"thunderstorm"}],"main":{"temp":-3.8,"humidity":80}}`)

	ws, err := ParseWeather(body)
	if err != nil {
		t.Fatalf("ParseWeather err=%v", err)
	}
	if ws.Description != "Thunderstorm" {
		t.Fatalf("description=%q", ws.Description)
	}
	// truncated toward zero, not floored
	if ws.Temperature != -3 {
		t.Fatalf("temperature=%d want -3", ws.Temperature)
	}
}

func TestParseWeather_MissingFields(t *testing.T) {
	cases := map[string]string{
		"no weather":    `{"main":{"temp":70.1}}`,
		"empty weather": `{"weather":[],"main":{"temp":70.1}}`,
		"no label":      `{"weather":[{"id":800}],"main":{"temp":70.1}}`,
		"no main":       `{"weather":[{"main":"Clear"}]}`,
		"no temp":       `{"weather":[{"main":"Clear"}],"main":{"humidity":3}}`,
		"not json":      `<html>`,
	}

	for name, body := range cases {
		if _, err := ParseWeather([]byte(body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
