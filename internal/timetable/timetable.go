// Package timetable defines the canonical timetable structure produced by
// ingestion, along with the frozen default school-cycle values.
package timetable

// ClockTime is a 12-hour clock time in its wire form: no leading zero on the
// hour, lowercase meridiem (e.g. "8:35am", "12:25pm"). The textual form
// round-trips through JSON unchanged.
type ClockTime string

// String returns the wire form.
func (c ClockTime) String() string {
	return string(c)
}

// Period is one named slot in the daily schedule.
type Period struct {
	Name      string    `json:"name"`
	StartTime ClockTime `json:"startTime"`
	EndTime   ClockTime `json:"endTime"`
}

// ClassEntry is a single class occupying a (day, period) cell.
type ClassEntry struct {
	Subject        string    `json:"subject"`
	Code           string    `json:"code"`
	Room           string    `json:"room"`
	Teacher        string    `json:"teacher"`
	StartTime      ClockTime `json:"startTime"`
	EndTime        ClockTime `json:"endTime"`
	DisplaySubject string    `json:"displaySubject,omitempty"`
}

// Vacuous reports whether the entry carries no identifying information.
// Vacuous entries are removed during normalization; empty cells are
// represented by empty slices, never by placeholder entries.
func (e ClassEntry) Vacuous() bool {
	return e.Subject == "" && e.Code == ""
}

// Timetable is the canonical output of the ingestion pipeline.
//
// A normalized Timetable satisfies:
//   - Days contains no duplicates
//   - Periods contains no duplicate names
//   - Classes has exactly the keys of Days, and each day map has exactly
//     the period names as keys (possibly mapping to empty slices)
type Timetable struct {
	Days    []string                           `json:"days"`
	Periods []Period                           `json:"periods"`
	Classes map[string]map[string][]ClassEntry `json:"classes"`
}

// New returns an empty candidate structure with allocated maps.
func New() *Timetable {
	return &Timetable{
		Days:    []string{},
		Periods: []Period{},
		Classes: map[string]map[string][]ClassEntry{},
	}
}

// Add appends an entry to the (day, period) cell, allocating as needed.
func (t *Timetable) Add(day, period string, e ClassEntry) {
	if t.Classes == nil {
		t.Classes = map[string]map[string][]ClassEntry{}
	}
	if t.Classes[day] == nil {
		t.Classes[day] = map[string][]ClassEntry{}
	}
	t.Classes[day][period] = append(t.Classes[day][period], e)
}

// AddPeriod appends a period unless one with the same name already exists.
func (t *Timetable) AddPeriod(p Period) {
	for _, existing := range t.Periods {
		if existing.Name == p.Name {
			return
		}
	}
	t.Periods = append(t.Periods, p)
}

// ClassCount returns the total number of class entries across all cells.
// Callers use this to decide whether ingestion recognized anything.
func (t *Timetable) ClassCount() int {
	if t == nil {
		return 0
	}
	count := 0
	for _, day := range t.Classes {
		for _, cell := range day {
			count += len(cell)
		}
	}
	return count
}

// Clone returns a deep copy. Ingestion hands owned structures to callers;
// callers may freely mutate their copy.
func (t *Timetable) Clone() *Timetable {
	if t == nil {
		return nil
	}
	out := &Timetable{
		Days:    append([]string{}, t.Days...),
		Periods: append([]Period{}, t.Periods...),
		Classes: make(map[string]map[string][]ClassEntry, len(t.Classes)),
	}
	for day, cells := range t.Classes {
		out.Classes[day] = make(map[string][]ClassEntry, len(cells))
		for period, entries := range cells {
			out.Classes[day][period] = append([]ClassEntry{}, entries...)
		}
	}
	return out
}
