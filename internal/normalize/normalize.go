// Package normalize turns any candidate structure into a canonical
// timetable. Normalize is total and idempotent. Every candidate passes
// through it before being considered canonical.
package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/calweir/timegrid/internal/scan"
	"github.com/calweir/timegrid/internal/timetable"
)

var (
	canonicalDayPattern = regexp.MustCompile(`(?i)^day\s*(\d+)$`)
	trailingNumPattern  = regexp.MustCompile(`(\d+)\s*$`)
)

// displaySubjects maps recognized subject abbreviations (trimmed,
// lowercased) to their presentation form. An explicit table, not inferred.
var displaySubjects = map[string]string{
	"pst": "Private Study",
}

// Normalize produces a canonical timetable from any candidate. It never
// fails: an internal panic returns a copy of the candidate, because
// normalization must never be the reason ingestion fails. Callers always
// own the returned structure; the recovery path clones so the candidate is
// never shared.
func Normalize(candidate *timetable.Timetable) (result *timetable.Timetable) {
	defer func() {
		if r := recover(); r != nil {
			result = candidate.Clone()
			if result == nil {
				result = timetable.DefaultSkeleton()
			}
		}
	}()

	if candidate == nil {
		return timetable.DefaultSkeleton()
	}

	days, dayMapping := standardizeDays(candidate.Days)
	periods := standardizePeriods(candidate.Periods)

	out := &timetable.Timetable{
		Days:    days,
		Periods: periods,
		Classes: map[string]map[string][]timetable.ClassEntry{},
	}

	// Cell completion: every (day, period) pair exists, empty by default.
	for _, day := range days {
		out.Classes[day] = map[string][]timetable.ClassEntry{}
		for _, p := range periods {
			out.Classes[day][p.Name] = []timetable.ClassEntry{}
		}
	}

	periodByName := make(map[string]timetable.Period, len(periods))
	for _, p := range periods {
		periodByName[p.Name] = p
	}

	for rawDay, cells := range candidate.Classes {
		day, ok := dayMapping[rawDay]
		if !ok {
			// Class data keyed under a day the days list never mentioned
			// still gets the same standardization before the cell check.
			day = canonicalDay(rawDay)
		}
		if _, known := out.Classes[day]; !known {
			continue
		}
		for period, entries := range cells {
			if _, known := out.Classes[day][period]; !known {
				continue
			}
			for _, e := range entries {
				completed, ok := completeEntry(e, periodByName[period])
				if !ok {
					continue
				}
				out.Classes[day][period] = append(out.Classes[day][period], completed)
			}
		}
	}

	return out
}

// standardizeDays maps every candidate day label to its canonical "Day N"
// form and returns the old-to-new mapping used to rewrite class keys.
// Canonical order is school-cycle order, not source insertion order.
func standardizeDays(raw []string) ([]string, map[string]string) {
	if len(raw) == 0 {
		raw = timetable.DefaultDays()
	}

	mapping := map[string]string{}
	seen := map[string]bool{}
	var days []string
	for _, label := range raw {
		canonical := canonicalDay(label)
		mapping[label] = canonical
		if !seen[canonical] {
			seen[canonical] = true
			days = append(days, canonical)
		}
	}

	sort.SliceStable(days, func(i, j int) bool {
		ni, iOK := dayNumber(days[i])
		nj, jOK := dayNumber(days[j])
		switch {
		case iOK && jOK:
			return ni < nj
		case iOK:
			return true
		default:
			return false
		}
	})

	return days, mapping
}

// canonicalDay maps a label to "Day N": pattern passthrough, weekday lookup,
// else unchanged.
func canonicalDay(label string) string {
	trimmed := strings.TrimSpace(label)
	if m := canonicalDayPattern.FindStringSubmatch(trimmed); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return fmt.Sprintf("Day %d", n)
		}
	}
	if idx, ok := scan.WeekdayIndex(trimmed); ok {
		return fmt.Sprintf("Day %d", idx+1)
	}
	return trimmed
}

func dayNumber(label string) (int, bool) {
	m := canonicalDayPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

// standardizePeriods substitutes the default schedule when no periods exist,
// borrows times from a same-named or number-suffix-matching default for
// periods that arrive without them, and drops duplicate names.
func standardizePeriods(raw []timetable.Period) []timetable.Period {
	if len(raw) == 0 {
		return timetable.DefaultPeriods()
	}

	defaults := timetable.DefaultPeriods()
	seen := map[string]bool{}
	var periods []timetable.Period
	for _, p := range raw {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		if p.StartTime == "" || p.EndTime == "" {
			if d, ok := matchDefaultPeriod(p.Name, defaults); ok {
				if p.StartTime == "" {
					p.StartTime = d.StartTime
				}
				if p.EndTime == "" {
					p.EndTime = d.EndTime
				}
			}
		}
		periods = append(periods, p)
	}
	return periods
}

func matchDefaultPeriod(name string, defaults []timetable.Period) (timetable.Period, bool) {
	for _, d := range defaults {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	num := trailingNumPattern.FindString(name)
	if num == "" {
		return timetable.Period{}, false
	}
	for _, d := range defaults {
		if trailingNumPattern.FindString(d.Name) == num {
			return d, true
		}
	}
	return timetable.Period{}, false
}

// completeEntry fills missing entry fields, defaults times to the owning
// period's, applies the display transform, and rejects vacuous entries.
func completeEntry(e timetable.ClassEntry, owner timetable.Period) (timetable.ClassEntry, bool) {
	e.Subject = strings.TrimSpace(e.Subject)
	e.Code = strings.TrimSpace(e.Code)
	e.Room = strings.TrimSpace(e.Room)
	e.Teacher = strings.TrimSpace(e.Teacher)

	if e.Vacuous() {
		return e, false
	}

	if e.StartTime == "" {
		e.StartTime = owner.StartTime
	}
	if e.EndTime == "" {
		e.EndTime = owner.EndTime
	}

	if display, ok := displaySubjects[strings.ToLower(e.Subject)]; ok {
		e.DisplaySubject = display
	}

	return e, true
}
