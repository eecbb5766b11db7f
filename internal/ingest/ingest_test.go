package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/calweir/timegrid/internal/providers"
	"github.com/calweir/timegrid/internal/timetable"
)

const aiJSON = "```json\n" + `{
	"days": ["Day 1"],
	"periods": [{"name": "Period 1", "startTime": "8:35am", "endTime": "9:35am"}],
	"classes": {"Day 1": {"Period 1": [{"subject": "Math", "code": "10MA1"}]}}
}` + "\n```"

// prose long enough to clear the default prompt threshold is unnecessary in
// tests; the threshold is lowered instead.
const proseInput = `Timetable for day 1
Period 1
Math (10MA1) M07 Mr Smith`

func TestIngest_JSONInput(t *testing.T) {
	raw := `{"days": ["Day 1"], "periods": [], "classes": {"Day 1": {"Period 1": [{"subject": "Math"}]}}}`

	result := Ingest(context.Background(), raw, Options{})

	if result.Source != "json" {
		t.Fatalf("Source = %q, want json", result.Source)
	}
	if result.ClassCount != 1 {
		t.Errorf("ClassCount = %d, want 1", result.ClassCount)
	}
}

func TestIngest_FencedJSONInput(t *testing.T) {
	result := Ingest(context.Background(), aiJSON, Options{})

	if result.Source != "json" {
		t.Fatalf("Source = %q, want json", result.Source)
	}
	if result.ClassCount != 1 {
		t.Errorf("ClassCount = %d", result.ClassCount)
	}
}

func TestIngest_AIStrategy(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = aiJSON

	result := Ingest(context.Background(), proseInput, Options{
		Client:          mock,
		PromptThreshold: 10,
	})

	if result.Source != "ai" {
		t.Fatalf("Source = %q, want ai", result.Source)
	}
	if result.ClassCount != 1 {
		t.Errorf("ClassCount = %d", result.ClassCount)
	}
	if mock.RequestCount() != 1 {
		t.Errorf("RequestCount = %d, want 1", mock.RequestCount())
	}
}

func TestIngest_AIRetriesOnceThenSucceeds(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = aiJSON
	mock.FailFirst = 1

	result := Ingest(context.Background(), proseInput, Options{
		Client:          mock,
		PromptThreshold: 10,
	})

	if result.Source != "ai" {
		t.Fatalf("Source = %q, want ai", result.Source)
	}
	if mock.RequestCount() != 2 {
		t.Errorf("RequestCount = %d, want 2", mock.RequestCount())
	}
}

func TestIngest_AIFailureFallsThrough(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ShouldFail = true

	result := Ingest(context.Background(), proseInput, Options{
		Client:          mock,
		PromptThreshold: 10,
	})

	if result.Source != "loose" {
		t.Fatalf("Source = %q, want loose fallback", result.Source)
	}
	if result.ClassCount != 1 {
		t.Errorf("ClassCount = %d", result.ClassCount)
	}
}

func TestIngest_AIGarbageOutputFallsThrough(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "I could not find a timetable in that text, sorry."

	result := Ingest(context.Background(), proseInput, Options{
		Client:          mock,
		PromptThreshold: 10,
	})

	if result.Source != "loose" {
		t.Fatalf("Source = %q, want loose fallback", result.Source)
	}
}

func TestIngest_ShortInputSkipsAI(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = aiJSON

	result := Ingest(context.Background(), proseInput, Options{
		Client: mock,
		// default threshold: proseInput is far shorter than 1000 chars
	})

	if mock.RequestCount() != 0 {
		t.Errorf("RequestCount = %d, want AI skipped for short input", mock.RequestCount())
	}
	if result.Source != "loose" {
		t.Errorf("Source = %q", result.Source)
	}
}

func TestIngest_TabInputSkipsAI(t *testing.T) {
	mock := providers.NewMockClient()
	grid := "Day 1\tDay 2\nPeriod 1\nMath\tEnglish\n" + strings.Repeat("x\ty\n", 600)

	result := Ingest(context.Background(), grid, Options{
		Client:          mock,
		PromptThreshold: 10,
	})

	if mock.RequestCount() != 0 {
		t.Errorf("RequestCount = %d, want AI skipped for tab-shaped input", mock.RequestCount())
	}
	if result.Source != "grid" {
		t.Errorf("Source = %q, want grid", result.Source)
	}
}

func TestIngest_GridStrategy(t *testing.T) {
	grid := "Day 1\tDay 2\n" +
		"Period 1\n" +
		"8:35am–9:35am\n" +
		"Math\tEnglish\n" +
		"(10MA1)\t(10EN1)\n" +
		"M07 Mr Smith\tA08 Ms Jones"

	result := Ingest(context.Background(), grid, Options{})

	if result.Source != "grid" {
		t.Fatalf("Source = %q, want grid", result.Source)
	}
	if result.ClassCount != 2 {
		t.Errorf("ClassCount = %d, want 2", result.ClassCount)
	}

	entry := result.Timetable.Classes["Day 1"]["Period 1"][0]
	if entry.Subject != "Math" || entry.Code != "10MA1" || entry.StartTime != "8:35am" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestIngest_ZeroSignalReturnsSkeleton(t *testing.T) {
	result := Ingest(context.Background(), "asdf qwer", Options{})

	if result.Source != "default" {
		t.Fatalf("Source = %q, want default", result.Source)
	}
	if result.ClassCount != 0 {
		t.Errorf("ClassCount = %d, want 0", result.ClassCount)
	}
	if len(result.Timetable.Days) != 10 || len(result.Timetable.Periods) != 5 {
		t.Errorf("skeleton shape = %d days, %d periods", len(result.Timetable.Days), len(result.Timetable.Periods))
	}
	for _, day := range result.Timetable.Days {
		for _, p := range result.Timetable.Periods {
			if cell, ok := result.Timetable.Classes[day][p.Name]; !ok || len(cell) != 0 {
				t.Fatalf("cell %q/%q = %v, want present and empty", day, p.Name, cell)
			}
		}
	}
}

func TestIngest_NeverReturnsNil(t *testing.T) {
	for _, raw := range []string{"", "{", "```", "\x00\x01", "{\"days\": 12}"} {
		result := Ingest(context.Background(), raw, Options{})
		if result == nil || result.Timetable == nil {
			t.Fatalf("Ingest(%q) returned nil", raw)
		}
	}
}

func TestValidateCandidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		candidate := timetable.DefaultSkeleton()
		if err := ValidateCandidate(candidate); err != nil {
			t.Fatalf("ValidateCandidate() error = %v", err)
		}
	})

	t.Run("nil classes rejected", func(t *testing.T) {
		candidate := &timetable.Timetable{Days: []string{"Day 1"}}
		if err := ValidateCandidate(candidate); err == nil {
			t.Fatal("ValidateCandidate() expected error for nil classes")
		}
	})
}
