package scan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	dayHeaderPattern  = regexp.MustCompile(`(?i)^day\s*(\d+)$`)
	dayMarkerPattern  = regexp.MustCompile(`(?i)day\s*(\d+)`)
	periodPattern     = regexp.MustCompile(`(?i)^period\s*(\d+)$`)
	tutorialPattern   = regexp.MustCompile(`(?i)^tutorial$`)
	periodMarkPattern = regexp.MustCompile(`(?i)period\s*(\d+)`)
)

// weekdayIndex maps weekday names and abbreviations to a zero-based cycle
// index. Only school days are recognized.
var weekdayIndex = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tues": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thur": 3, "thurs": 3, "thursday": 3,
	"fri": 4, "friday": 4,
}

// IsDayHeader reports whether text is a day header: "Day N" in any case, or
// a weekday name/abbreviation.
func IsDayHeader(text string) bool {
	trimmed := strings.TrimSpace(text)
	if dayHeaderPattern.MatchString(trimmed) {
		return true
	}
	_, ok := weekdayIndex[strings.ToLower(trimmed)]
	return ok
}

// WeekdayIndex returns the zero-based index for a weekday name or
// abbreviation ("Monday" -> 0 ... "Fri" -> 4).
func WeekdayIndex(text string) (int, bool) {
	idx, ok := weekdayIndex[strings.ToLower(strings.TrimSpace(text))]
	return idx, ok
}

// FindDayNumber scans anywhere in the line for a "day N" marker and returns
// the canonical "Day N" label. Unlike IsDayHeader this is a substring match,
// used by the loose fallback parser to track state across prose.
func FindDayNumber(line string) (string, bool) {
	m := dayMarkerPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return "", false
	}
	return fmt.Sprintf("Day %d", n), true
}

// MatchPeriodHeader matches a whole-line period header: exactly "Period N"
// or "Tutorial". The whole-line constraint is intentional; period headers
// are presentation rows, not prose that happens to contain the word.
func MatchPeriodHeader(line string) (name string, tutorial bool, ok bool) {
	trimmed := strings.TrimSpace(line)
	if m := periodPattern.FindStringSubmatch(trimmed); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "", false, false
		}
		return fmt.Sprintf("Period %d", n), false, true
	}
	if tutorialPattern.MatchString(trimmed) {
		return "Tutorial", true, true
	}
	return "", false, false
}

// FindPeriodNumber scans anywhere in the line for a "period N" marker.
// Substring counterpart of MatchPeriodHeader for the loose parser.
func FindPeriodNumber(line string) (string, bool) {
	m := periodMarkPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("Period %d", n), true
}
