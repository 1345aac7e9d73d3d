package conflict

import (
	"strings"
	"testing"

	"github.com/ndmitriev/caseline/internal/model"
)

func evt(id, date, tm, loc string, persons ...string) model.TimelineEvent {
	return model.TimelineEvent{
		ID:              id,
		Date:            date,
		Time:            tm,
		Location:        loc,
		Description:     "test event",
		Source:          "statement.txt",
		InvolvedPersons: persons,
	}
}

func TestDetect_OverlappingLocations(t *testing.T) {
	events := []model.TimelineEvent{
		evt("evt-0-0", "2024-01-15", "21:00", "Riverside Bar", "Marcus Webb"),
		evt("evt-1-0", "2024-01-15", "21:30", "Warehouse District", "Marcus Webb"),
	}

	conflicts := Detect(events)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}

	c := conflicts[0]
	if c.Type != "time_inconsistency" {
		t.Errorf("type = %q", c.Type)
	}
	if c.Severity != model.SeverityHigh {
		t.Errorf("severity = %s", c.Severity)
	}
	if len(c.AffectedPersons) != 1 || c.AffectedPersons[0] != "Marcus Webb" {
		t.Errorf("affected persons = %v", c.AffectedPersons)
	}
	if !strings.Contains(c.Recommendation, "Re-interview Marcus Webb about their whereabouts on 2024-01-15") {
		t.Errorf("recommendation = %q", c.Recommendation)
	}
	if c.Events[0].ID != "evt-0-0" || c.Events[1].ID != "evt-1-0" {
		t.Errorf("events = %s, %s", c.Events[0].ID, c.Events[1].ID)
	}
}

func TestDetect_DifferentDatesNoConflict(t *testing.T) {
	events := []model.TimelineEvent{
		evt("evt-0-0", "2024-01-15", "21:00", "Riverside Bar", "Marcus Webb"),
		evt("evt-1-0", "2024-01-16", "21:00", "Warehouse District", "Marcus Webb"),
	}
	if got := Detect(events); len(got) != 0 {
		t.Errorf("different dates must not conflict: %+v", got)
	}
}

func TestDetect_SameLocationNoConflict(t *testing.T) {
	events := []model.TimelineEvent{
		evt("evt-0-0", "2024-01-15", "21:00", "Riverside Bar", "Marcus Webb"),
		evt("evt-1-0", "2024-01-15", "21:30", "Riverside Bar", "Marcus Webb"),
	}
	if got := Detect(events); len(got) != 0 {
		t.Errorf("same-location overlap is consistent: %+v", got)
	}
}

func TestDetect_MissingLocationNoConflict(t *testing.T) {
	events := []model.TimelineEvent{
		evt("evt-0-0", "2024-01-15", "21:00", "", "Marcus Webb"),
		evt("evt-1-0", "2024-01-15", "21:30", "Warehouse District", "Marcus Webb"),
	}
	if got := Detect(events); len(got) != 0 {
		t.Errorf("unknown location must not conflict: %+v", got)
	}
}

func TestDetect_AdjacentIntervalsStrict(t *testing.T) {
	// Default duration is 60 minutes; 21:00 ends exactly when 22:00 starts.
	events := []model.TimelineEvent{
		evt("evt-0-0", "2024-01-15", "21:00", "Riverside Bar", "Marcus Webb"),
		evt("evt-1-0", "2024-01-15", "22:00", "Warehouse District", "Marcus Webb"),
	}
	if got := Detect(events); len(got) != 0 {
		t.Errorf("touching intervals do not overlap: %+v", got)
	}
}

func TestDetect_EndTimeMetadataOverride(t *testing.T) {
	long := evt("evt-0-0", "2024-01-15", "20:00", "Riverside Bar", "Marcus Webb")
	long.Metadata = map[string]string{"end_time": "23:00"}
	events := []model.TimelineEvent{
		long,
		evt("evt-1-0", "2024-01-15", "22:00", "Warehouse District", "Marcus Webb"),
	}

	if got := Detect(events); len(got) != 1 {
		t.Fatalf("explicit end_time should extend the interval into overlap, got %d conflicts", len(got))
	}
}

func TestDetect_SharedPairMergesPersons(t *testing.T) {
	events := []model.TimelineEvent{
		evt("evt-0-0", "2024-01-15", "21:00", "Riverside Bar", "Marcus Webb", "Dana Reyes"),
		evt("evt-1-0", "2024-01-15", "21:30", "Warehouse District", "Marcus Webb", "Dana Reyes"),
	}

	conflicts := Detect(events)
	if len(conflicts) != 1 {
		t.Fatalf("shared pair must yield a single conflict, got %d", len(conflicts))
	}
	got := conflicts[0].AffectedPersons
	if len(got) != 2 || got[0] != "Dana Reyes" || got[1] != "Marcus Webb" {
		t.Errorf("affected persons = %v", got)
	}
}

func TestDetect_MissingTimeTreatedAsMidnight(t *testing.T) {
	events := []model.TimelineEvent{
		evt("evt-0-0", "2024-01-15", "", "Riverside Bar", "Marcus Webb"),
		evt("evt-1-0", "2024-01-15", "00:30", "Warehouse District", "Marcus Webb"),
	}

	conflicts := Detect(events)
	if len(conflicts) != 1 {
		t.Fatalf("missing time defaults to midnight, got %d conflicts", len(conflicts))
	}
	if !strings.Contains(conflicts[0].Details, "time unknown") {
		t.Errorf("details should mark the unknown time: %q", conflicts[0].Details)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	events := []model.TimelineEvent{
		evt("evt-0-0", "2024-01-15", "21:00", "Riverside Bar", "Marcus Webb", "Dana Reyes"),
		evt("evt-1-0", "2024-01-15", "21:30", "Warehouse District", "Dana Reyes"),
		evt("evt-2-0", "2024-01-15", "21:15", "Harbor Pier", "Marcus Webb"),
	}

	first := Detect(events)
	second := Detect(events)
	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Description != second[i].Description {
			t.Errorf("run order differs at %d: %q vs %q", i, first[i].Description, second[i].Description)
		}
	}
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name   string
		aTime  string
		bTime  string
		aEnd   string
		expect bool
	}{
		{"nested", "21:00", "21:30", "", true},
		{"touching", "21:00", "22:00", "", false},
		{"disjoint", "09:00", "14:00", "", false},
		{"extended end", "09:00", "11:00", "12:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := evt("a", "2024-01-15", tt.aTime, "X")
			b := evt("b", "2024-01-15", tt.bTime, "Y")
			if tt.aEnd != "" {
				a.Metadata = map[string]string{"end_time": tt.aEnd}
			}
			if got := intervalsOverlap(a, b); got != tt.expect {
				t.Errorf("intervalsOverlap(%s, %s) = %v, want %v", tt.aTime, tt.bTime, got, tt.expect)
			}
		})
	}
}
