package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default office-hours window applied when a weekday leaves start or stop unset
const (
	DefaultStart = 900
	DefaultStop  = 2000
)

// DayHours holds the configured start/stop for one weekday.
// Values are HHMM codes (13:30 -> 1330); nil means unset.
type DayHours struct {
	Start *int
	Stop  *int
}

// Window is the effective inclusive HHMM range for one weekday
type Window struct {
	Start int
	Stop  int
}

// Contains reports whether the HHMM code falls inside the window, both ends inclusive.
// Overnight windows (Start > Stop) are not supported and never match.
func (w Window) Contains(code int) bool {
	return w.Start <= code && code <= w.Stop
}

func (w Window) String() string {
	return fmt.Sprintf("%04d-%04d", w.Start, w.Stop)
}

// WeeklySchedule maps each weekday (indexed by time.Weekday) to its hours
type WeeklySchedule struct {
	Days [7]DayHours
}

// Set configures a weekday; nil leaves that end at its default
func (s *WeeklySchedule) Set(day time.Weekday, start, stop *int) {
	s.Days[day] = DayHours{Start: start, Stop: stop}
}

// Window returns the effective window for a weekday, defaulting each unset end separately
func (s WeeklySchedule) Window(day time.Weekday) Window {
	w := Window{Start: DefaultStart, Stop: DefaultStop}
	h := s.Days[day]
	if h.Start != nil {
		w.Start = *h.Start
	}
	if h.Stop != nil {
		w.Stop = *h.Stop
	}
	return w
}

// Contains reports whether the HHMM code is inside the window for the given weekday
func (s WeeklySchedule) Contains(day time.Weekday, code int) bool {
	return s.Window(day).Contains(code)
}

// ClockCode returns the HHMM code of t in its own location (not minutes since midnight)
func ClockCode(t time.Time) int {
	return t.Hour()*100 + t.Minute()
}

// ParseClockCode parses an HHMM value such as "900" or "2000"
func ParseClockCode(s string) (int, error) {
	s = strings.TrimSpace(s)
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if err := ValidateClockCode(code); err != nil {
		return 0, err
	}
	return code, nil
}

// ValidateClockCode checks that code is a valid HHMM value between 0000 and 2359
func ValidateClockCode(code int) error {
	if code < 0 || code > 2359 || code%100 > 59 {
		return fmt.Errorf("invalid time %d: want HHMM between 0000 and 2359", code)
	}
	return nil
}

// WeekdayByName resolves a lowercase English weekday name
func WeekdayByName(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, true
		}
	}
	return 0, false
}
