package model

// TimelineEvent is one dated occurrence reconstructed from case material.
// Ordering within a document follows source line order; ids are stable per
// (document index, line index) so repeated runs produce identical output.
type TimelineEvent struct {
	ID              string            `json:"id"`                         // Stable id, e.g. "evt-0-12"
	Date            string            `json:"date"`                       // YYYY-MM-DD
	Time            string            `json:"time,omitempty"`             // HH:MM, 24-hour
	Location        string            `json:"location,omitempty"`         // Where the event took place
	Description     string            `json:"description"`                // The source line itself
	Source          string            `json:"source"`                     // Filename of the originating document
	SourceType      string            `json:"source_type"`                // Document type
	InvolvedPersons []string          `json:"involved_persons,omitempty"` // Names recognized in the line
	Confidence      float64           `json:"confidence"`                 // Positional confidence, 0..1
	Metadata        map[string]string `json:"metadata,omitempty"`         // Extraction provenance (end_time, hints used)
}

// Conflict is a scheduling contradiction between two events for one or more
// persons. It always references exactly two events sharing a person and date.
type Conflict struct {
	Type            string           `json:"type"`             // Currently always "time_inconsistency"
	Severity        Severity         `json:"severity"`         // Currently always high
	Description     string           `json:"description"`      // Human-readable summary
	Events          [2]TimelineEvent `json:"events"`           // The two contradicting events
	AffectedPersons []string         `json:"affected_persons"` // Persons appearing in both events
	Details         string           `json:"details"`          // Times, locations, and sources involved
	Recommendation  string           `json:"recommendation"`   // Fixed-template follow-up action
}
