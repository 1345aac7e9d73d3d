// Package conflict flags scheduling contradictions in a reconstructed
// timeline: one person placed at two different locations at overlapping
// times on the same date.
package conflict

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ndmitriev/caseline/internal/model"
)

// defaultDurationMinutes is assumed for events without an explicit end time
const defaultDurationMinutes = 60

// Detect returns every time inconsistency in the event list. An event with N
// involved persons participates in N per-person groups; a contradicting pair
// shared by several persons yields a single conflict naming all of them.
func Detect(events []model.TimelineEvent) []model.Conflict {
	byPerson := groupByPerson(events)

	persons := make([]string, 0, len(byPerson))
	for p := range byPerson {
		persons = append(persons, p)
	}
	sort.Strings(persons)

	conflicts := make(map[string]*model.Conflict)
	var order []string

	for _, person := range persons {
		group := byPerson[person]
		sortChronologically(group)

		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.Date != b.Date {
					continue
				}
				if !intervalsOverlap(a, b) {
					continue
				}
				if a.Location == "" || b.Location == "" || a.Location == b.Location {
					// A same-location overlap is a consistent account
					continue
				}

				key := pairKey(a.ID, b.ID)
				if existing, ok := conflicts[key]; ok {
					existing.AffectedPersons = appendUnique(existing.AffectedPersons, person)
					continue
				}

				c := newTimeInconsistency(a, b, person)
				conflicts[key] = &c
				order = append(order, key)
			}
		}
	}

	result := make([]model.Conflict, 0, len(order))
	for _, key := range order {
		result = append(result, *conflicts[key])
	}
	return result
}

func newTimeInconsistency(a, b model.TimelineEvent, person string) model.Conflict {
	return model.Conflict{
		Type:     "time_inconsistency",
		Severity: model.SeverityHigh,
		Description: fmt.Sprintf("%s is placed at %q and %q during overlapping times on %s",
			person, a.Location, b.Location, a.Date),
		Events:          [2]model.TimelineEvent{a, b},
		AffectedPersons: []string{person},
		Details: fmt.Sprintf("%s %s at %q (%s) overlaps %s %s at %q (%s)",
			a.Date, displayTime(a), a.Location, a.Source,
			b.Date, displayTime(b), b.Location, b.Source),
		Recommendation: fmt.Sprintf("Re-interview %s about their whereabouts on %s and seek independent corroboration for both accounts", person, a.Date),
	}
}

// groupByPerson indexes events by each involved person
func groupByPerson(events []model.TimelineEvent) map[string][]model.TimelineEvent {
	byPerson := make(map[string][]model.TimelineEvent)
	for _, e := range events {
		for _, person := range e.InvolvedPersons {
			byPerson[person] = append(byPerson[person], e)
		}
	}
	return byPerson
}

// sortChronologically orders events by combined date and time; a missing
// time sorts as midnight
func sortChronologically(events []model.TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		ki := events[i].Date + " " + orMidnight(events[i].Time)
		kj := events[j].Date + " " + orMidnight(events[j].Time)
		if ki != kj {
			return ki < kj
		}
		return events[i].ID < events[j].ID
	})
}

// intervalsOverlap applies the strict overlap test start1 < end2 && end1 > start2
// over minute offsets within the shared date
func intervalsOverlap(a, b model.TimelineEvent) bool {
	startA := minutesOf(a.Time)
	startB := minutesOf(b.Time)
	endA := endMinutes(a, startA)
	endB := endMinutes(b, startB)
	return startA < endB && endA > startB
}

// endMinutes honors an explicit end_time recorded in the event metadata,
// defaulting to start plus one hour
func endMinutes(e model.TimelineEvent, start int) int {
	if e.Metadata != nil {
		if raw, ok := e.Metadata["end_time"]; ok {
			if end, ok := parseMinutes(raw); ok {
				return end
			}
		}
	}
	return start + defaultDurationMinutes
}

// minutesOf converts HH:MM to minutes since midnight; missing or malformed
// times default to midnight
func minutesOf(t string) int {
	if m, ok := parseMinutes(t); ok {
		return m
	}
	return 0
}

func parseMinutes(t string) (int, bool) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func orMidnight(t string) string {
	if t == "" {
		return "00:00"
	}
	return t
}

func displayTime(e model.TimelineEvent) string {
	if e.Time == "" {
		return "time unknown"
	}
	return e.Time
}

func pairKey(id1, id2 string) string {
	if id1 > id2 {
		id1, id2 = id2, id1
	}
	return id1 + "|" + id2
}

func appendUnique(list []string, s string) []string {
	for _, item := range list {
		if item == s {
			return list
		}
	}
	return append(list, s)
}
