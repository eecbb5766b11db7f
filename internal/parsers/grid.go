package parsers

import (
	"strings"

	"github.com/calweir/timegrid/internal/scan"
	"github.com/calweir/timegrid/internal/timetable"
)

// Grid parses tab-delimited column-major timetables: line 1 holds tab
// separated day headers; each block starts with a period header line, an
// optional time-range line, then up to four tab-separated field lines with
// one cell per day (subject, code, room/teacher in any fold).
type Grid struct{}

func (Grid) Name() string { return "grid" }

func (Grid) Parse(text string) *timetable.Timetable {
	return safeParse(func() *timetable.Timetable {
		return parseGrid(text)
	})
}

// maxFieldLines bounds how many lines a single period block may contribute
// per day. Observed formats use between two and four.
const maxFieldLines = 4

func parseGrid(text string) *timetable.Timetable {
	t := timetable.New()

	lines := splitLines(text)
	if len(lines) == 0 || !strings.Contains(lines[0], "\t") {
		return t
	}

	var days []string
	headerish := false
	for _, cell := range strings.Split(lines[0], "\t") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if scan.IsDayHeader(cell) {
			headerish = true
		}
		days = append(days, cell)
	}
	if !headerish || len(days) == 0 {
		return t
	}
	t.Days = days

	cursor := 1
	for cursor < len(lines) {
		name, _, ok := scan.MatchPeriodHeader(lines[cursor])
		if !ok {
			cursor++
			continue
		}
		cursor++

		period := timetable.Period{Name: name}
		if cursor < len(lines) {
			if start, end, ok := scan.ParseTimeRange(lines[cursor]); ok {
				period.StartTime = start
				period.EndTime = end
				cursor++
			}
		}
		t.AddPeriod(period)

		// Field lines run until the next period header.
		var fieldLines []string
		for cursor < len(lines) {
			if _, _, isHeader := scan.MatchPeriodHeader(lines[cursor]); isHeader {
				break
			}
			if len(fieldLines) < maxFieldLines && strings.TrimSpace(lines[cursor]) != "" {
				fieldLines = append(fieldLines, lines[cursor])
			}
			cursor++
		}

		for i, day := range days {
			var parts []string
			for _, fl := range fieldLines {
				cells := strings.Split(fl, "\t")
				if i < len(cells) {
					if cell := strings.TrimSpace(cells[i]); cell != "" {
						parts = append(parts, cell)
					}
				}
			}
			if len(parts) == 0 {
				continue
			}

			fields := scan.ExtractFields(strings.Join(parts, " "))
			if fields.Subject == "" && fields.Code == "" {
				continue
			}
			t.Add(day, period.Name, timetable.ClassEntry{
				Subject:   fields.Subject,
				Code:      fields.Code,
				Room:      fields.Room,
				Teacher:   fields.Teacher,
				StartTime: period.StartTime,
				EndTime:   period.EndTime,
			})
		}
	}

	return t
}
