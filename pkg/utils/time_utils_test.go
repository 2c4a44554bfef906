package utils

import (
	"errors"
	"testing"
	"time"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"9:05", 545, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"ab:cd", 0, true},
		{"12:5", 0, true},
		{"", 0, true},
		{"+9:00", 0, true},
		{"-0:00", 0, true},
		{"+1:+5", 0, true},
		{"09:-5", 0, true},
	}
	for _, tc := range cases {
		got, err := ToMinutes(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrMalformedTime) {
				t.Fatalf("ToMinutes(%q): expected ErrMalformedTime, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ToMinutes(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClockForDisplay(t *testing.T) {
	cases := map[string]string{
		"00:00": "12:00 AM",
		"00:05": "12:05 AM",
		"09:30": "9:30 AM",
		"12:00": "12:00 PM",
		"13:45": "1:45 PM",
		"23:59": "11:59 PM",
		"bogus": "bogus",
	}
	for in, want := range cases {
		if got := FormatClockForDisplay(in); got != want {
			t.Fatalf("FormatClockForDisplay(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayRoundTripPreservesEveryMinute(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		clock := MinutesToClock(m)
		back, err := ParseDisplayClock(FormatClockForDisplay(clock))
		if err != nil {
			t.Fatalf("minute %d: %v", m, err)
		}
		if back != m {
			t.Fatalf("minute %d round-tripped to %d", m, back)
		}
	}
}

func TestNormalizeClockStripsSeconds(t *testing.T) {
	got, err := NormalizeClock("9:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "09:00" {
		t.Fatalf("expected 09:00, got %s", got)
	}
	if _, err := NormalizeClock("09:00:99"); !errors.Is(err, ErrMalformedTime) {
		t.Fatalf("expected ErrMalformedTime, got %v", err)
	}
}

func TestDurationMinutesMayBeNegative(t *testing.T) {
	d, err := DurationMinutes("10:00", "09:15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != -45 {
		t.Fatalf("expected -45, got %d", d)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		0:   "0 min",
		45:  "45 min",
		60:  "1 hr",
		80:  "1 hr 20 min",
		240: "4 hr",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 0, 15, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}
