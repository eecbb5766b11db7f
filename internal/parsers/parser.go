// Package parsers holds the structural text parsing strategies. Source
// layouts carry no self-describing marker, so strategies are tried in order
// rather than auto-detected.
package parsers

import (
	"strings"

	"github.com/calweir/timegrid/internal/timetable"
)

// Strategy turns raw timetable text into a candidate structure. Parse never
// fails and never panics past its boundary; unusable input yields an empty
// candidate.
type Strategy interface {
	Name() string
	Parse(text string) *timetable.Timetable
}

// Ordered returns the strategies in escalation order: strictest first,
// loosest last.
func Ordered() []Strategy {
	return []Strategy{Grid{}, Blocks{}, Loose{}}
}

// safeParse runs fn and converts a panic into an empty candidate. Parsers
// operate on adversarial input; nothing may propagate past this boundary.
func safeParse(fn func() *timetable.Timetable) (result *timetable.Timetable) {
	defer func() {
		if r := recover(); r != nil {
			result = timetable.New()
		}
	}()
	result = fn()
	if result == nil {
		result = timetable.New()
	}
	return result
}

// splitLines normalizes line endings and splits, preserving empty lines so
// positional parsers keep their offsets.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
