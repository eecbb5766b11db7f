package parsers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/calweir/timegrid/internal/scan"
	"github.com/calweir/timegrid/internal/timetable"
)

// Blocks parses row-major layouts where one class occupies a run of lines
// rather than tab columns. After a period header and optional time line,
// each day's class is three consecutive lines (subject, code, room+teacher)
// with the day implied by the group's position.
type Blocks struct{}

func (Blocks) Name() string { return "blocks" }

var leadingRoomPattern = regexp.MustCompile(`^[A-Z]\s?\d+\b`)

func (Blocks) Parse(text string) *timetable.Timetable {
	return safeParse(func() *timetable.Timetable {
		return parseBlocks(text)
	})
}

func parseBlocks(text string) *timetable.Timetable {
	t := timetable.New()

	if strings.Contains(text, "\t") {
		return t
	}

	var lines []string
	for _, line := range splitLines(text) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	// A leading run of day-header lines names the columns.
	cursor := 0
	var days []string
	for cursor < len(lines) && scan.IsDayHeader(lines[cursor]) {
		days = append(days, lines[cursor])
		cursor++
	}
	dayCount := len(days)
	if dayCount > 0 {
		t.Days = days
	} else {
		dayCount = len(timetable.DefaultDays())
	}

	dayLabel := func(i int) string {
		if i < len(days) {
			return days[i]
		}
		return fmt.Sprintf("Day %d", i+1)
	}

	sawPeriod := false
	for cursor < len(lines) {
		name, _, ok := scan.MatchPeriodHeader(lines[cursor])
		if !ok {
			cursor++
			continue
		}
		sawPeriod = true
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

		// Groups of exactly three lines per day, stopping early at the next
		// period header (days with fewer populated periods) or end of data.
		for dayIdx := 0; dayIdx < dayCount && cursor+3 <= len(lines); dayIdx++ {
			if _, _, isHeader := scan.MatchPeriodHeader(lines[cursor]); isHeader {
				break
			}

			subjectLine := lines[cursor]
			codeLine := lines[cursor+1]
			roomTeacherLine := lines[cursor+2]
			cursor += 3

			code := scan.ExtractCourseCode(codeLine)
			if code == "" {
				code = strings.Trim(codeLine, "() ")
			}
			room, teacher := splitRoomTeacher(roomTeacherLine)

			subject := strings.TrimSpace(subjectLine)
			if subject == "" && code == "" {
				continue
			}
			t.Add(dayLabel(dayIdx), period.Name, timetable.ClassEntry{
				Subject:   subject,
				Code:      code,
				Room:      room,
				Teacher:   teacher,
				StartTime: period.StartTime,
				EndTime:   period.EndTime,
			})
		}
	}

	if !sawPeriod {
		return timetable.New()
	}
	return t
}

// splitRoomTeacher splits "M07 Mr Smith" into its room token and the
// remainder as teacher.
func splitRoomTeacher(line string) (room, teacher string) {
	if m := leadingRoomPattern.FindString(line); m != "" {
		room = strings.ReplaceAll(m, " ", "")
		teacher = strings.TrimSpace(line[len(m):])
		return room, teacher
	}
	return "", strings.TrimSpace(line)
}
