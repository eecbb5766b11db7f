package jsonrepair

import (
	"encoding/json"

	"github.com/calweir/timegrid/internal/timetable"
)

// singularAliases maps the singular key variants some model responses use
// to their canonical plural names. This quirk recurs across sources, so the
// aliasing runs on every decode path, not just one.
var singularAliases = map[string]string{
	"day":    "days",
	"period": "periods",
	"class":  "classes",
}

// aliasSingularKeys renames singular top-level keys to plural, only when the
// plural key is absent.
func aliasSingularKeys(doc map[string]any) {
	for singular, plural := range singularAliases {
		if _, hasPlural := doc[plural]; hasPlural {
			continue
		}
		if v, hasSingular := doc[singular]; hasSingular {
			doc[plural] = v
			delete(doc, singular)
		}
	}
}

// decodeCandidate parses text as JSON and coerces it into a candidate
// timetable. Unknown keys are dropped, missing fields stay zero, and cells
// holding a single object instead of an array are wrapped.
func decodeCandidate(text string) (*timetable.Timetable, bool) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, false
	}
	aliasSingularKeys(doc)
	return fromDocument(doc), true
}

func fromDocument(doc map[string]any) *timetable.Timetable {
	t := timetable.New()

	if days, ok := doc["days"].([]any); ok {
		for _, d := range days {
			if s, ok := d.(string); ok && s != "" {
				t.Days = append(t.Days, s)
			}
		}
	}

	if periods, ok := doc["periods"].([]any); ok {
		for _, p := range periods {
			m, ok := p.(map[string]any)
			if !ok {
				continue
			}
			t.Periods = append(t.Periods, timetable.Period{
				Name:      stringField(m, "name"),
				StartTime: timetable.ClockTime(stringField(m, "startTime")),
				EndTime:   timetable.ClockTime(stringField(m, "endTime")),
			})
		}
	}

	if classes, ok := doc["classes"].(map[string]any); ok {
		for day, cells := range classes {
			cellMap, ok := cells.(map[string]any)
			if !ok {
				continue
			}
			for period, raw := range cellMap {
				for _, entry := range coerceEntries(raw) {
					t.Add(day, period, entry)
				}
			}
		}
	}

	return t
}

// coerceEntries accepts either an array of entry objects or a bare entry
// object and returns the decoded entries.
func coerceEntries(raw any) []timetable.ClassEntry {
	switch v := raw.(type) {
	case []any:
		var entries []timetable.ClassEntry
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				entries = append(entries, entryFromMap(m))
			}
		}
		return entries
	case map[string]any:
		return []timetable.ClassEntry{entryFromMap(v)}
	default:
		return nil
	}
}

func entryFromMap(m map[string]any) timetable.ClassEntry {
	return timetable.ClassEntry{
		Subject:   stringField(m, "subject"),
		Code:      stringField(m, "code"),
		Room:      stringField(m, "room"),
		Teacher:   stringField(m, "teacher"),
		StartTime: timetable.ClockTime(stringField(m, "startTime")),
		EndTime:   timetable.ClockTime(stringField(m, "endTime")),
	}
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
