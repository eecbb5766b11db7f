package normalize

import (
	"reflect"
	"testing"

	"github.com/calweir/timegrid/internal/timetable"
)

// checkInvariants asserts the four canonical invariants.
func checkInvariants(t *testing.T, tt *timetable.Timetable) {
	t.Helper()

	seenDays := map[string]bool{}
	for _, day := range tt.Days {
		if seenDays[day] {
			t.Errorf("duplicate day %q", day)
		}
		seenDays[day] = true
	}

	seenPeriods := map[string]bool{}
	for _, p := range tt.Periods {
		if seenPeriods[p.Name] {
			t.Errorf("duplicate period %q", p.Name)
		}
		seenPeriods[p.Name] = true
	}

	if len(tt.Classes) != len(tt.Days) {
		t.Errorf("classes has %d day keys, days has %d", len(tt.Classes), len(tt.Days))
	}
	for _, day := range tt.Days {
		cells, ok := tt.Classes[day]
		if !ok {
			t.Errorf("missing classes key for day %q", day)
			continue
		}
		if len(cells) != len(tt.Periods) {
			t.Errorf("day %q has %d period keys, want %d", day, len(cells), len(tt.Periods))
		}
		for _, p := range tt.Periods {
			entries, ok := cells[p.Name]
			if !ok {
				t.Errorf("missing cell %q/%q", day, p.Name)
			}
			for _, e := range entries {
				if e.Vacuous() {
					t.Errorf("vacuous entry in %q/%q", day, p.Name)
				}
			}
		}
	}
}

func TestNormalize_EmptyCandidate(t *testing.T) {
	got := Normalize(timetable.New())

	if len(got.Days) != 10 {
		t.Errorf("Days = %d, want default 10", len(got.Days))
	}
	if len(got.Periods) != 5 {
		t.Errorf("Periods = %d, want default 5", len(got.Periods))
	}
	if got.ClassCount() != 0 {
		t.Errorf("ClassCount = %d, want 0", got.ClassCount())
	}
	checkInvariants(t, got)
}

func TestNormalize_NilCandidate(t *testing.T) {
	got := Normalize(nil)
	checkInvariants(t, got)
	if got.ClassCount() != 0 {
		t.Errorf("ClassCount = %d", got.ClassCount())
	}
}

func TestNormalize_WeekdayAliasing(t *testing.T) {
	candidate := timetable.New()
	candidate.Days = []string{"Monday", "Tuesday"}
	candidate.Add("Monday", "Period 1", timetable.ClassEntry{Subject: "Math"})

	got := Normalize(candidate)

	if !reflect.DeepEqual(got.Days, []string{"Day 1", "Day 2"}) {
		t.Fatalf("Days = %v, want [Day 1 Day 2]", got.Days)
	}
	if len(got.Classes["Day 1"]["Period 1"]) != 1 {
		t.Errorf("class data not remapped from Monday to Day 1: %v", got.Classes)
	}
	checkInvariants(t, got)
}

func TestNormalize_DayOrderIsCycleOrder(t *testing.T) {
	candidate := timetable.New()
	candidate.Days = []string{"Day 10", "Day 2", "Day 1"}

	got := Normalize(candidate)

	if !reflect.DeepEqual(got.Days, []string{"Day 1", "Day 2", "Day 10"}) {
		t.Errorf("Days = %v, want cycle order", got.Days)
	}
}

func TestNormalize_DeduplicatesDays(t *testing.T) {
	candidate := timetable.New()
	candidate.Days = []string{"Day 1", "day 1", "Monday"}

	got := Normalize(candidate)

	if !reflect.DeepEqual(got.Days, []string{"Day 1"}) {
		t.Errorf("Days = %v, want [Day 1]", got.Days)
	}
	checkInvariants(t, got)
}

func TestNormalize_PeriodTimeBorrowing(t *testing.T) {
	candidate := timetable.New()
	candidate.Days = []string{"Day 1"}
	candidate.Periods = []timetable.Period{
		{Name: "Period 1"},                         // same-name match
		{Name: "P 2"},                              // number-suffix match
		{Name: "Assembly", StartTime: "9:00am", EndTime: "9:20am"}, // keeps own times
	}

	got := Normalize(candidate)

	if got.Periods[0].StartTime != "8:35am" || got.Periods[0].EndTime != "9:35am" {
		t.Errorf("Period 1 times = %v–%v, want borrowed defaults", got.Periods[0].StartTime, got.Periods[0].EndTime)
	}
	if got.Periods[1].StartTime != "9:40am" {
		t.Errorf("P 2 StartTime = %v, want number-suffix borrow", got.Periods[1].StartTime)
	}
	if got.Periods[2].StartTime != "9:00am" {
		t.Errorf("Assembly StartTime = %v, want unchanged", got.Periods[2].StartTime)
	}
}

func TestNormalize_EntryCompletion(t *testing.T) {
	candidate := timetable.New()
	candidate.Days = []string{"Day 1"}
	candidate.Periods = []timetable.Period{{Name: "Period 1", StartTime: "8:35am", EndTime: "9:35am"}}
	candidate.Add("Day 1", "Period 1", timetable.ClassEntry{Subject: "Math"})
	candidate.Add("Day 1", "Period 1", timetable.ClassEntry{
		Subject: "Science", StartTime: "8:35am", EndTime: "10:40am", // cross-period override
	})

	got := Normalize(candidate)

	cell := got.Classes["Day 1"]["Period 1"]
	if cell[0].StartTime != "8:35am" || cell[0].EndTime != "9:35am" {
		t.Errorf("entry times = %v–%v, want owning period times", cell[0].StartTime, cell[0].EndTime)
	}
	if cell[1].EndTime != "10:40am" {
		t.Errorf("override EndTime = %v, want preserved", cell[1].EndTime)
	}
}

func TestNormalize_RemovesVacuousEntries(t *testing.T) {
	candidate := timetable.New()
	candidate.Days = []string{"Day 1"}
	candidate.Periods = []timetable.Period{{Name: "Period 1"}}
	candidate.Add("Day 1", "Period 1", timetable.ClassEntry{Room: "M07", Teacher: "Mr Smith"})

	got := Normalize(candidate)

	if got.ClassCount() != 0 {
		t.Errorf("ClassCount = %d, want vacuous entry removed", got.ClassCount())
	}
	checkInvariants(t, got)
}

func TestNormalize_DisplayTransform(t *testing.T) {
	candidate := timetable.New()
	candidate.Days = []string{"Day 1"}
	candidate.Periods = []timetable.Period{{Name: "Period 1"}}
	candidate.Add("Day 1", "Period 1", timetable.ClassEntry{Subject: " pst "})
	candidate.Add("Day 1", "Period 1", timetable.ClassEntry{Subject: "Psychology"})

	got := Normalize(candidate)

	cell := got.Classes["Day 1"]["Period 1"]
	if cell[0].DisplaySubject != "Private Study" {
		t.Errorf("DisplaySubject = %q, want Private Study", cell[0].DisplaySubject)
	}
	if cell[1].DisplaySubject != "" {
		t.Errorf("Psychology DisplaySubject = %q, want empty", cell[1].DisplaySubject)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	candidate := timetable.New()
	candidate.Days = []string{"Monday", "Day 2", "Day 10"}
	candidate.Periods = []timetable.Period{{Name: "Period 1"}, {Name: "Tutorial"}}
	candidate.Add("Monday", "Period 1", timetable.ClassEntry{Subject: "PST"})
	candidate.Add("Day 2", "Tutorial", timetable.ClassEntry{Subject: "Math", Code: "10MA1"})

	once := Normalize(candidate)
	twice := Normalize(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalize not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
	checkInvariants(t, once)
}

func TestNormalize_UnknownDayKeyInClasses(t *testing.T) {
	candidate := timetable.New()
	candidate.Days = []string{"Day 1"}
	candidate.Periods = []timetable.Period{{Name: "Period 1"}}
	candidate.Add("Monday", "Period 1", timetable.ClassEntry{Subject: "Math"})

	got := Normalize(candidate)

	// "Monday" standardizes to "Day 1" even though the days list never
	// mentioned it.
	if len(got.Classes["Day 1"]["Period 1"]) != 1 {
		t.Errorf("classes = %v, want Monday data under Day 1", got.Classes)
	}
}

func TestNormalize_ResultIsCallerOwned(t *testing.T) {
	candidate := timetable.New()
	candidate.Days = []string{"Day 1"}
	candidate.Periods = []timetable.Period{{Name: "Period 1"}}
	candidate.Add("Day 1", "Period 1", timetable.ClassEntry{Subject: "Math", Code: "10MA1"})

	got := Normalize(candidate)
	got.Days[0] = "Tampered"
	got.Classes["Day 1"]["Period 1"][0].Subject = "Mutated"

	if candidate.Days[0] != "Day 1" {
		t.Error("mutating the result leaked into the candidate days")
	}
	if candidate.Classes["Day 1"]["Period 1"][0].Subject != "Math" {
		t.Error("mutating the result leaked into the candidate classes")
	}
}
