package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// OpeningHours is the schedule for one weekday (0=Sunday..6=Saturday).
// A nil Open or Close means the shop is closed that day.
type OpeningHours struct {
	Weekday int
	Open    *ClockTime
	Close   *ClockTime
}

// ClockTime is a wall-clock time of day in minutes since midnight.
type ClockTime int

// ParseClockTime parses "HH:MM" (24h).
func ParseClockTime(value string) (ClockTime, error) {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return ClockTime(hour*60 + minute), nil
}

// String formats the time as "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Closed reports whether the day has no usable time range.
func (h OpeningHours) Closed() bool {
	return h.Open == nil || h.Close == nil
}

// contains reports whether minute-of-day m falls in [open, close).
// An overnight range (close < open) wraps past midnight on the same weekday entry.
func (h OpeningHours) contains(m ClockTime) bool {
	if h.Closed() {
		return false
	}
	open, closeAt := *h.Open, *h.Close
	if closeAt < open {
		return m >= open || m < closeAt
	}
	return m >= open && m < closeAt
}

// SortHours orders opening hours by weekday ascending.
func SortHours(hours []OpeningHours) {
	sort.SliceStable(hours, func(i, j int) bool { return hours[i].Weekday < hours[j].Weekday })
}

func hoursFor(hours []OpeningHours, weekday int) (OpeningHours, bool) {
	for _, h := range hours {
		if h.Weekday == weekday {
			return h, true
		}
	}
	return OpeningHours{}, false
}

// IsOpenAt reports whether today's entry is open at t. t must already be in the shop's timezone.
func IsOpenAt(hours []OpeningHours, t time.Time) bool {
	h, ok := hoursFor(hours, int(t.Weekday()))
	return ok && h.contains(ClockTime(t.Hour()*60+t.Minute()))
}

// StatusText renders a short German status line for the schedule at t.
func StatusText(hours []OpeningHours, t time.Time) string {
	minute := ClockTime(t.Hour()*60 + t.Minute())
	h, ok := hoursFor(hours, int(t.Weekday()))
	if !ok || h.Closed() {
		return "Heute geschlossen"
	}
	if h.contains(minute) {
		return "Geöffnet bis " + h.Close.String()
	}
	if minute < *h.Open {
		return "Öffnet um " + h.Open.String()
	}
	return "Geschlossen"
}
