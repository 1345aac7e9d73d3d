package model

// Document is one piece of case material submitted for analysis.
// Documents are immutable inputs: the engine never mutates them.
type Document struct {
	Content  string `json:"content"`            // Extracted text (possibly from OCR or HTML reduction)
	Filename string `json:"filename"`           // Original filename, used as event source
	Type     string `json:"type"`               // Document type (report, transcript, note, html, ...)
	Metadata Map    `json:"metadata,omitempty"` // Arbitrarily nested key/value structure
}

// Baseline anchors undated material to the case itself.
// Lines and documents without any recognizable date fall back to it.
type Baseline struct {
	Date string `json:"date"`           // YYYY-MM-DD
	Time string `json:"time,omitempty"` // HH:MM, 24-hour
}

// Interview is one recorded interview transcript for a single speaker
type Interview struct {
	Speaker  string `json:"speaker"`        // Speaker name
	Role     string `json:"role"`           // suspect, witness, victim_family, ...
	Date     string `json:"date"`           // Interview date, YYYY-MM-DD
	FullText string `json:"full_text"`      // Complete transcript text
}

// KnownFact is a detail the investigation has released publicly
type KnownFact struct {
	Detail      string `json:"detail"`                 // The fact as released
	DisclosedOn string `json:"disclosed_on,omitempty"` // YYYY-MM-DD of disclosure
}

// EvidenceItem is a piece of physical evidence with its discovery date
type EvidenceItem struct {
	Description  string `json:"description"`   // How the item is referred to
	DiscoveredOn string `json:"discovered_on"` // YYYY-MM-DD the item was found
}

// CaseKnowledge is the read-only lookup context for guilty-knowledge
// cross-referencing. It is never produced by the engine, only consumed.
type CaseKnowledge struct {
	PublicFacts          []KnownFact    `json:"public_facts,omitempty"`           // Facts with disclosure dates
	PerpetratorOnlyFacts []string       `json:"perpetrator_only_facts,omitempty"` // Details never released
	Evidence             []EvidenceItem `json:"evidence,omitempty"`               // Items with discovery dates
	Suspects             []string       `json:"suspects,omitempty"`               // Known suspect names
}
