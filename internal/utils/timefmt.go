package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayOfWeek derives the weekday (0 = Sunday .. 6 = Saturday) for an ISO
// "YYYY-MM-DD" date. The date is parsed at local midnight so the weekday
// never shifts with the runtime timezone.
func DayOfWeek(date string) (int, error) {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return int(t.Weekday()), nil
}

// FormatClock renders a 24-hour "HH:MM" or "HH:MM:SS" string as "h:mm AM/PM".
// Minutes are passed through verbatim.
func FormatClock(clock string) string {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return clock
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return clock
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	displayHour := hour
	if hour == 0 {
		displayHour = 12
	} else if hour > 12 {
		displayHour = hour - 12
	}
	return fmt.Sprintf("%d:%s %s", displayHour, parts[1], period)
}

// FormatSlotLabel renders the display label for a slot window,
// e.g. ("09:00", "09:30") -> "9:00 AM - 9:30 AM".
func FormatSlotLabel(start, end string) string {
	return FormatClock(start) + " - " + FormatClock(end)
}

// NormalizeClock pads a clock string to "HH:MM:SS" so values read from TIME
// columns and values supplied by clients compare equal. Single-digit
// components are zero-padded, so "9:00" and "09:00:00" normalize the same.
func NormalizeClock(clock string) string {
	parts := strings.Split(clock, ":")
	if len(parts) == 2 {
		parts = append(parts, "00")
	}
	for i, p := range parts {
		if len(p) == 1 {
			parts[i] = "0" + p
		}
	}
	return strings.Join(parts, ":")
}
