package parsers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/calweir/timegrid/internal/scan"
	"github.com/calweir/timegrid/internal/timetable"
)

// Loose is the last-resort line scanner: no tab or fixed-block assumption.
// It walks every line tracking the current day and period, and treats any
// other non-trivial line as a potential class description.
type Loose struct{}

func (Loose) Name() string { return "loose" }

var datePattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)

// minClassLineLen filters out separator junk like "--" or "||".
const minClassLineLen = 4

func (Loose) Parse(text string) *timetable.Timetable {
	return safeParse(func() *timetable.Timetable {
		return parseLoose(text)
	})
}

func parseLoose(text string) *timetable.Timetable {
	t := timetable.New()

	currentDay := ""
	currentPeriod := ""
	daysSeen := map[string]bool{}

	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if day, ok := dayMarker(trimmed); ok {
			currentDay = day
			if !daysSeen[day] {
				daysSeen[day] = true
				t.Days = append(t.Days, day)
			}
			// A marker line can also carry the period ("Day 3 Period 2").
			if period, ok := scan.FindPeriodNumber(trimmed); ok {
				currentPeriod = period
			}
			continue
		}

		if period, ok := periodMarker(trimmed); ok {
			currentPeriod = period
			t.AddPeriod(timetable.Period{Name: period})
			continue
		}

		if len(trimmed) < minClassLineLen {
			continue
		}

		// Until a day or period marker appears there is no cell to file a
		// class under; zero-signal prose produces zero classes.
		if currentDay == "" && currentPeriod == "" {
			continue
		}

		fields := scan.ExtractFields(trimmed)
		if fields.Subject == "" && fields.Code == "" {
			continue
		}

		day := currentDay
		if day == "" {
			day = "Day 1"
		}
		period := currentPeriod
		if period == "" {
			period = "Period 1"
		}

		entry := timetable.ClassEntry{
			Subject: fields.Subject,
			Code:    fields.Code,
			Room:    fields.Room,
			Teacher: fields.Teacher,
		}
		if isDuplicateEntry(t.Classes[day][period], entry) {
			continue
		}
		t.Add(day, period, entry)
	}

	return t
}

// dayMarker recognizes "day N" anywhere in the line, or an MM/DD date mapped
// onto the 10-day cycle via (month+day) mod 10.
func dayMarker(line string) (string, bool) {
	if day, ok := scan.FindDayNumber(line); ok {
		return day, true
	}
	if m := datePattern.FindStringSubmatch(line); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return fmt.Sprintf("Day %d", (month+day)%10+1), true
		}
	}
	return "", false
}

func periodMarker(line string) (string, bool) {
	if name, _, ok := scan.MatchPeriodHeader(line); ok {
		return name, true
	}
	return scan.FindPeriodNumber(line)
}

// isDuplicateEntry drops a line only when an existing entry in the same cell
// has the same subject AND the same room/teacher. Same subject with a
// different room or teacher is kept as a second entry, so legitimate
// double-booked classes survive.
func isDuplicateEntry(cell []timetable.ClassEntry, candidate timetable.ClassEntry) bool {
	for _, existing := range cell {
		if existing.Subject == candidate.Subject &&
			existing.Room == candidate.Room &&
			existing.Teacher == candidate.Teacher {
			return true
		}
	}
	return false
}
