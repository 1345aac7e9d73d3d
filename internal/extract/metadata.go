package extract

import (
	"reflect"
	"sort"
	"strings"

	"github.com/ndmitriev/caseline/internal/model"
)

// maxParticipantHints caps how many participant names are collected from a
// single document's metadata
const maxParticipantHints = 6

// Metadata key vocabularies. Key matching is case-insensitive and
// substring-based so "event_location" and "sceneAddress" both register.
var (
	locationKeyVocab    = []string{"location", "place", "address", "venue", "scene", "site"}
	participantKeyVocab = []string{"participant", "attendee", "people", "person", "present", "witness", "involved", "names", "speaker"}
	dateKeyVocab        = []string{"date", "day", "occurred"}
	timeKeyVocab        = []string{"time", "hour"}
	timestampKeyVocab   = []string{"timestamp", "datetime", "created", "recorded", "logged"}
)

// structuredEvent is a nested metadata object that itself looks like an
// event: it carries its own date/time/location/participant hints. Structured
// events are queued and consumed in line order during extraction.
type structuredEvent struct {
	date         string
	time         string
	location     string
	participants []string
}

// timestampHint is a combined date-time value found in metadata
type timestampHint struct {
	date string
	time string
}

// metadataHints is everything the recursive scan collects from one document
type metadataHints struct {
	locations    []string
	participants []string
	dates        []string
	times        []string
	timestamps   []timestampHint
	structured   []structuredEvent
}

func (h *metadataHints) firstLocation() string {
	if len(h.locations) == 0 {
		return ""
	}
	return h.locations[0]
}

func (h *metadataHints) firstDate() string {
	if len(h.dates) == 0 {
		return ""
	}
	return h.dates[0]
}

func (h *metadataHints) firstTime() string {
	if len(h.times) == 0 {
		return ""
	}
	return h.times[0]
}

// scanMetadata recursively walks a document's nested metadata collecting
// hints. The walk is guarded against cycles with a visited set keyed by
// object identity, so even self-referential structures terminate.
func scanMetadata(meta model.Map) *metadataHints {
	hints := &metadataHints{}
	if meta == nil {
		return hints
	}
	w := &metadataWalker{
		hints:   hints,
		visited: make(map[uintptr]bool),
	}
	w.walkMap(meta)
	return hints
}

type metadataWalker struct {
	hints   *metadataHints
	visited map[uintptr]bool
}

func (w *metadataWalker) walkMap(m model.Map) {
	if len(m) == 0 {
		return
	}
	id := reflect.ValueOf(m).Pointer()
	if w.visited[id] {
		return
	}
	w.visited[id] = true

	// Deterministic iteration keeps extraction reproducible
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		w.walkEntry(k, m[k])
	}
}

func (w *metadataWalker) walkList(key string, l model.List) {
	if len(l) == 0 {
		return
	}
	id := reflect.ValueOf(l).Pointer()
	if w.visited[id] {
		return
	}
	w.visited[id] = true

	for _, item := range l {
		w.walkEntry(key, item)
	}
}

func (w *metadataWalker) walkEntry(key string, v model.Value) {
	switch t := v.(type) {
	case model.Map:
		if se, ok := asStructuredEvent(t); ok {
			w.hints.structured = append(w.hints.structured, se)
		}
		w.walkMap(t)
	case model.List:
		w.walkList(key, t)
	default:
		s, ok := model.AsString(v)
		if !ok || strings.TrimSpace(s) == "" {
			return
		}
		w.collectString(key, strings.TrimSpace(s))
	}
}

// collectString classifies one string metadata value by the vocabulary its
// key matches. A combined date-time value wins over plain date/time keys.
func (w *metadataWalker) collectString(key, value string) {
	lowerKey := strings.ToLower(key)

	if date, tod, ok := findTimestamp(value); ok && keyMatches(lowerKey, timestampKeyVocab) {
		w.hints.timestamps = append(w.hints.timestamps, timestampHint{date: date, time: tod})
		return
	}

	switch {
	case keyMatches(lowerKey, locationKeyVocab):
		w.hints.locations = append(w.hints.locations, value)
	case keyMatches(lowerKey, participantKeyVocab):
		w.collectParticipants(value)
	case keyMatches(lowerKey, dateKeyVocab):
		if d := findDate(value); d != "" {
			w.hints.dates = append(w.hints.dates, d)
		}
	case keyMatches(lowerKey, timeKeyVocab):
		if t := findTime(value); t != "" {
			w.hints.times = append(w.hints.times, t)
		}
	default:
		// Combined timestamps are recognized under any key
		if date, tod, ok := findTimestamp(value); ok {
			w.hints.timestamps = append(w.hints.timestamps, timestampHint{date: date, time: tod})
		}
	}
}

// collectParticipants splits a participant value on commas, semicolons, and
// newlines, capped at maxParticipantHints for the whole document
func (w *metadataWalker) collectParticipants(value string) {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		if len(w.hints.participants) >= maxParticipantHints {
			return
		}
		name := strings.TrimSpace(p)
		if name != "" {
			w.hints.participants = append(w.hints.participants, name)
		}
	}
}

// asStructuredEvent decides whether a nested object is itself an event.
// It must match at least two of the four hint vocabularies, or carry both a
// date and a time.
func asStructuredEvent(m model.Map) (structuredEvent, bool) {
	se := structuredEvent{}
	classes := 0

	// Deterministic iteration: with several keys in one vocabulary class the
	// first in key order wins, not a random one
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := m[k]
		s, ok := model.AsString(v)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		s = strings.TrimSpace(s)
		lowerKey := strings.ToLower(k)

		switch {
		case keyMatches(lowerKey, dateKeyVocab):
			if d := findDate(s); d != "" && se.date == "" {
				se.date = d
				classes++
			}
		case keyMatches(lowerKey, timeKeyVocab):
			if t := findTime(s); t != "" && se.time == "" {
				se.time = t
				classes++
			}
		case keyMatches(lowerKey, locationKeyVocab):
			if se.location == "" {
				se.location = s
				classes++
			}
		case keyMatches(lowerKey, participantKeyVocab):
			if se.participants == nil {
				for _, p := range strings.FieldsFunc(s, func(r rune) bool {
					return r == ',' || r == ';' || r == '\n'
				}) {
					if name := strings.TrimSpace(p); name != "" {
						se.participants = append(se.participants, name)
					}
				}
				if len(se.participants) > 0 {
					classes++
				}
			}
		}
	}

	if classes >= 2 || (se.date != "" && se.time != "") {
		return se, true
	}
	return structuredEvent{}, false
}

func keyMatches(lowerKey string, vocab []string) bool {
	for _, word := range vocab {
		if strings.Contains(lowerKey, word) {
			return true
		}
	}
	return false
}
