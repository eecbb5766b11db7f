// Package scan provides the token-level heuristics shared by every timetable
// parser: clock-time parsing, day/period header detection, and
// subject/code/room/teacher extraction from free text.
package scan

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/calweir/timegrid/internal/timetable"
)

var (
	clockPattern = regexp.MustCompile(`(?i)(\d{1,2})\s*[:.]\s*(\d{2})\s*(am|pm)`)

	// Time ranges accept hyphen, en dash, em dash, or the word "to".
	rangePattern = regexp.MustCompile(`(?i)(\d{1,2}\s*[:.]\s*\d{2}\s*(?:am|pm))\s*(?:-|–|—|to)\s*(\d{1,2}\s*[:.]\s*\d{2}\s*(?:am|pm))`)
)

// ParseClockTime extracts the first clock time from text and returns it in
// wire form. Accepts "8:35am", "8.35 PM", internal whitespace. Returns
// ok=false when no recognizable hour:minute+meridiem exists.
func ParseClockTime(text string) (timetable.ClockTime, bool) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 1 || hour > 12 {
		return "", false
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil || minute > 59 {
		return "", false
	}
	meridiem := "am"
	if m[3] == "pm" || m[3] == "PM" || m[3] == "Pm" || m[3] == "pM" {
		meridiem = "pm"
	}
	return timetable.ClockTime(fmt.Sprintf("%d:%02d%s", hour, minute, meridiem)), true
}

// ParseTimeRange extracts a start/end clock time pair separated by a dash
// variant or "to".
func ParseTimeRange(text string) (start, end timetable.ClockTime, ok bool) {
	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	start, ok = ParseClockTime(m[1])
	if !ok {
		return "", "", false
	}
	end, ok = ParseClockTime(m[2])
	if !ok {
		return "", "", false
	}
	return start, end, true
}
