package domain

import (
	"testing"
	"time"
)

func mustClock(t *testing.T, v string) *ClockTime {
	t.Helper()
	c, err := ParseClockTime(v)
	if err != nil {
		t.Fatalf("ParseClockTime(%q): %v", v, err)
	}
	return &c
}

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"11:00", "11:00", true},
		{" 7:05", "07:05", true},
		{"23:59", "23:59", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"noon", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseClockTime(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseClockTime(%q) err = %v", tc.in, err)
		}
		if tc.ok && got.String() != tc.want {
			t.Fatalf("ParseClockTime(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestIsOpenAtAndStatusText(t *testing.T) {
	// 2026-10-15 is a Thursday (4), 2026-10-16 a Friday (5), 2026-10-18 a Sunday (0).
	hours := []OpeningHours{
		{Weekday: 0, Open: mustClock(t, "18:00"), Close: mustClock(t, "03:00")},
		{Weekday: 3, Open: mustClock(t, "12:00"), Close: mustClock(t, "12:00")},
		{Weekday: 4, Open: mustClock(t, "11:00"), Close: mustClock(t, "22:00")},
		{Weekday: 5, Open: mustClock(t, "18:00"), Close: mustClock(t, "03:00")},
		{Weekday: 6},
	}
	at := func(day, hour, minute int) time.Time {
		return time.Date(2026, 10, day, hour, minute, 0, 0, time.UTC)
	}

	cases := []struct {
		name   string
		t      time.Time
		open   bool
		status string
	}{
		{"before opening", at(15, 10, 59), false, "Öffnet um 11:00"},
		{"at opening", at(15, 11, 0), true, "Geöffnet bis 22:00"},
		{"close is exclusive", at(15, 22, 0), false, "Geschlossen"},
		{"overnight evening", at(16, 23, 30), true, "Geöffnet bis 03:00"},
		{"overnight wraps on the same entry", at(16, 1, 0), true, "Geöffnet bis 03:00"},
		{"overnight wrap close is exclusive", at(16, 3, 0), false, "Öffnet um 18:00"},
		{"sunday early hours use sunday entry", at(18, 1, 0), true, "Geöffnet bis 03:00"},
		{"closed saturday ignores friday range", at(17, 1, 0), false, "Heute geschlossen"},
		{"equal open and close is never open", at(14, 12, 0), false, "Geschlossen"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOpenAt(hours, tc.t); got != tc.open {
				t.Fatalf("IsOpenAt = %v, want %v", got, tc.open)
			}
			if got := StatusText(hours, tc.t); got != tc.status {
				t.Fatalf("StatusText = %q, want %q", got, tc.status)
			}
		})
	}
}

func TestSortHours(t *testing.T) {
	hours := []OpeningHours{{Weekday: 6}, {Weekday: 0}, {Weekday: 3}}
	SortHours(hours)
	for i, want := range []int{0, 3, 6} {
		if hours[i].Weekday != want {
			t.Fatalf("position %d = %d, want %d", i, hours[i].Weekday, want)
		}
	}
}
