package extract

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ndmitriev/caseline/internal/model"
)

// Known placeholder phrases emitted by upstream extraction pipelines when a
// document yields no usable text. Lines containing them carry no events.
var placeholderPhrases = []string{
	"no extracted text",
	"no text extracted",
	"no text could be extracted",
	"summary unavailable",
	"no summary available",
	"content unavailable",
	"unable to extract",
	"no content",
	"not available",
}

// Structural tokens typical of binary formats leaking through text
// extraction
var formatArtifactTokens = []string{
	"%PDF-",
	"endstream",
	"endobj",
	"xref",
	"{\\rtf",
	"PK\x03\x04",
}

// maxDescription bounds the length of the event description taken from a
// source line
const maxDescription = 300

// TimelineExtractor turns raw case documents into a dated event sequence.
// It is a pure transformation: identical input produces byte-identical
// output, and malformed values are substituted rather than raised.
type TimelineExtractor struct{}

// NewTimelineExtractor creates a new timeline extractor
func NewTimelineExtractor() *TimelineExtractor {
	return &TimelineExtractor{}
}

// Extract produces the ordered event list for a set of case documents.
// If no document yields a single event, exactly one fallback event anchored
// at the case baseline is returned.
func (e *TimelineExtractor) Extract(docs []model.Document, baseline model.Baseline) []model.TimelineEvent {
	var events []model.TimelineEvent

	for docIdx, doc := range docs {
		events = append(events, e.extractDocument(docIdx, doc, baseline)...)
	}

	if len(events) == 0 {
		return []model.TimelineEvent{fallbackEvent(docs, baseline)}
	}

	return events
}

func (e *TimelineExtractor) extractDocument(docIdx int, doc model.Document, baseline model.Baseline) []model.TimelineEvent {
	hints := scanMetadata(doc.Metadata)

	var events []model.TimelineEvent
	structIdx := 0
	eventIdx := 0

	for lineIdx, raw := range strings.Split(doc.Content, "\n") {
		line := strings.TrimSpace(raw)
		if !usableLine(line) {
			continue
		}

		// Structured metadata events are consumed in line order, one per
		// surviving line
		var se *structuredEvent
		if structIdx < len(hints.structured) {
			se = &hints.structured[structIdx]
			structIdx++
		}
		var ts *timestampHint
		if eventIdx < len(hints.timestamps) {
			ts = &hints.timestamps[eventIdx]
		} else if len(hints.timestamps) > 0 {
			ts = &hints.timestamps[len(hints.timestamps)-1]
		}

		event := model.TimelineEvent{
			ID:          fmt.Sprintf("evt-%d-%d", docIdx, lineIdx),
			Date:        deriveDate(line, se, ts, hints, baseline),
			Time:        deriveTime(line, se, ts, hints),
			Location:    deriveLocation(line, se, hints),
			Description: truncate(line, maxDescription),
			Source:      doc.Filename,
			SourceType:  doc.Type,
			Confidence:  positionalConfidence(docIdx, lineIdx),
		}

		if persons := findPersons(line); len(persons) > 0 {
			event.InvolvedPersons = persons
		} else if se != nil && len(se.participants) > 0 {
			event.InvolvedPersons = append([]string(nil), se.participants...)
		} else if len(hints.participants) > 0 {
			event.InvolvedPersons = append([]string(nil), hints.participants...)
		}

		events = append(events, event)
		eventIdx++
	}

	return events
}

// deriveDate applies the date precedence: line pattern, structured event,
// raw timestamp, first metadata date, case baseline
func deriveDate(line string, se *structuredEvent, ts *timestampHint, hints *metadataHints, baseline model.Baseline) string {
	if d := findDate(line); d != "" {
		return d
	}
	if se != nil && se.date != "" {
		return se.date
	}
	if ts != nil && ts.date != "" {
		return ts.date
	}
	if d := hints.firstDate(); d != "" {
		return d
	}
	return baselineDate(baseline)
}

// deriveTime applies the same precedence for the time of day. Unlike dates
// there is no baseline fallback: an unknown time stays absent.
func deriveTime(line string, se *structuredEvent, ts *timestampHint, hints *metadataHints) string {
	if t := findTime(line); t != "" {
		return t
	}
	if se != nil && se.time != "" {
		return se.time
	}
	if ts != nil && ts.time != "" {
		return ts.time
	}
	return hints.firstTime()
}

// deriveLocation: explicit label or preposition phrase in the line, else the
// structured event, else the first metadata hint
func deriveLocation(line string, se *structuredEvent, hints *metadataHints) string {
	if loc := findLocation(line); loc != "" {
		return loc
	}
	if se != nil && se.location != "" {
		return se.location
	}
	return hints.firstLocation()
}

// positionalConfidence is a small positional bias rewarding later documents
// and lines, not a semantic confidence
func positionalConfidence(docIdx, lineIdx int) float64 {
	c := 0.55 + float64(docIdx+lineIdx)*0.03
	if c > 0.9 {
		return 0.9
	}
	return c
}

// baselineDate normalizes the case baseline date, accepting it verbatim when
// it is already in ISO form
func baselineDate(baseline model.Baseline) string {
	if d := findDate(baseline.Date); d != "" {
		return d
	}
	return baseline.Date
}

// fallbackEvent is the single synthetic event emitted when no document
// yields anything usable
func fallbackEvent(docs []model.Document, baseline model.Baseline) model.TimelineEvent {
	source := "case-file"
	sourceType := "unknown"
	if len(docs) > 0 {
		if docs[0].Filename != "" {
			source = docs[0].Filename
		}
		if docs[0].Type != "" {
			sourceType = docs[0].Type
		}
	}

	return model.TimelineEvent{
		ID:          "evt-fallback",
		Date:        baselineDate(baseline),
		Time:        baseline.Time,
		Description: "No timeline events could be extracted from the case documents",
		Source:      source,
		SourceType:  sourceType,
		Confidence:  0.5,
	}
}

// usableLine decides whether a line can carry an event. Placeholder phrases,
// binary/format artifacts, and low-information lines are dropped; a line with
// a recognizable date or time survives regardless of information content.
func usableLine(line string) bool {
	if line == "" {
		return false
	}

	lower := strings.ToLower(line)
	if lower == "n/a" || lower == "na" || lower == "-" {
		return false
	}
	for _, phrase := range placeholderPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}

	if looksBinary(line) {
		return false
	}

	if hasDateOrTime(line) {
		return true
	}
	return informativeTokens(line) >= 2
}

// looksBinary flags lines that are format debris rather than prose: embedded
// null or replacement characters, structural tokens, or a high ratio of
// non-alphanumeric symbols
func looksBinary(line string) bool {
	if strings.ContainsRune(line, '\x00') || strings.ContainsRune(line, '�') {
		return true
	}
	for _, token := range formatArtifactTokens {
		if strings.Contains(line, token) {
			return true
		}
	}

	var symbols, total int
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsPunct(r) {
			symbols++
			continue
		}
		switch r {
		case '<', '>', '{', '}', '\\', '|', '^', '~':
			symbols++
		}
	}
	if total == 0 {
		return true
	}
	return float64(symbols)/float64(total) > 0.3
}

// informativeTokens counts tokens longer than three characters
func informativeTokens(line string) int {
	count := 0
	for _, tok := range strings.Fields(line) {
		if len(strings.Trim(tok, ".,;:!?\"'()")) > 3 {
			count++
		}
	}
	return count
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
