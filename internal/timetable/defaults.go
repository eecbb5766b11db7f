package timetable

// defaultDays is the canonical 10-day school cycle.
var defaultDays = [...]string{
	"Day 1", "Day 2", "Day 3", "Day 4", "Day 5",
	"Day 6", "Day 7", "Day 8", "Day 9", "Day 10",
}

// defaultPeriods is the 5-period bell schedule used when input carries no
// period information, and the source of borrowed times for periods that
// arrive without them.
var defaultPeriods = [...]Period{
	{Name: "Period 1", StartTime: "8:35am", EndTime: "9:35am"},
	{Name: "Period 2", StartTime: "9:40am", EndTime: "10:40am"},
	{Name: "Tutorial", StartTime: "11:05am", EndTime: "11:35am"},
	{Name: "Period 3", StartTime: "11:40am", EndTime: "12:40pm"},
	{Name: "Period 4", StartTime: "1:25pm", EndTime: "2:25pm"},
}

// DefaultDays returns a fresh copy of the canonical day sequence.
// Accessors return copies so no caller can mutate shared state.
func DefaultDays() []string {
	out := make([]string, len(defaultDays))
	copy(out, defaultDays[:])
	return out
}

// DefaultPeriods returns a fresh copy of the default bell schedule.
func DefaultPeriods() []Period {
	out := make([]Period, len(defaultPeriods))
	copy(out, defaultPeriods[:])
	return out
}

// DefaultSkeleton returns the well-formed empty timetable: default days and
// periods with every cell present and empty. This is the terminal fallback
// for every ingestion path.
func DefaultSkeleton() *Timetable {
	t := &Timetable{
		Days:    DefaultDays(),
		Periods: DefaultPeriods(),
		Classes: map[string]map[string][]ClassEntry{},
	}
	for _, day := range t.Days {
		t.Classes[day] = map[string][]ClassEntry{}
		for _, p := range t.Periods {
			t.Classes[day][p.Name] = []ClassEntry{}
		}
	}
	return t
}
