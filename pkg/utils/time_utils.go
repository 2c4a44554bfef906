// utils/timeutil.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const minutesPerDay = 24 * 60

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ToMinutes converts a wall-clock "HH:MM" value into minutes since midnight.
func ToMinutes(clock string) (int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, clock)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) > 2 || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, clock)
	}

	return hour*60 + minute, nil
}

// MinutesToClock is the inverse of ToMinutes for values inside a single day.
func MinutesToClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= minutesPerDay {
		m = minutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// NormalizeClock accepts "HH:MM" or "HH:MM:SS" (some catalog sources send seconds)
// and returns the canonical zero-padded "HH:MM".
func NormalizeClock(clock string) (string, error) {
	clock = strings.TrimSpace(clock)
	if parts := strings.Split(clock, ":"); len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || len(parts[2]) != 2 || !isDigits(parts[2]) || sec < 0 || sec > 59 {
			return "", fmt.Errorf("%w: %q", ErrMalformedTime, clock)
		}
		clock = parts[0] + ":" + parts[1]
	}

	m, err := ToMinutes(clock)
	if err != nil {
		return "", err
	}
	return MinutesToClock(m), nil
}

// FormatClockForDisplay renders "HH:MM" as "h:MM AM/PM". Unparseable input is
// returned unchanged so display never fails.
func FormatClockForDisplay(clock string) string {
	m, err := ToMinutes(clock)
	if err != nil {
		return clock
	}

	hour, minute := m/60, m%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}

// ParseDisplayClock reads the "h:MM AM/PM" form produced by FormatClockForDisplay.
func ParseDisplayClock(display string) (int, error) {
	t, err := time.Parse("3:04 PM", strings.TrimSpace(display))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, display)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DurationMinutes is end minus start; negative when end precedes start.
func DurationMinutes(start, end string) (int, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// FormatDuration renders minutes as "1 hr 20 min", "4 hr" or "45 min".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = -minutes
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%d hr", h)
	default:
		return fmt.Sprintf("%d hr %d min", h, m)
	}
}

// DateOnly drops the time-of-day of t, keeping its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from start to end, ignoring time-of-day
// and zone offsets.
func DaysBetween(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
