package domain

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04", "15:04:05", "3:04PM", "3:04:05PM"}

// ParseClock resolves a wall-clock string ("09:05", "9:05 am", "10:30:00")
// to an instant on the given service day.
func ParseClock(day time.Time, s string) (time.Time, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if norm == "" {
		return time.Time{}, fmt.Errorf("parse clock: empty time")
	}

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, norm)
		if err != nil {
			continue
		}
		return At(day, t.Hour(), t.Minute(), t.Second()), nil
	}

	return time.Time{}, fmt.Errorf("parse clock %q: expected HH:MM or H:MM AM/PM", s)
}

// At returns hh:mm:ss on the calendar day of day, in day's location.
func At(day time.Time, hour, minute, second int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, second, 0, day.Location())
}

// ClockString renders the time-of-day part used in reports.
func ClockString(t time.Time) string {
	return t.Format("15:04")
}
