package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Read-only pattern tables, initialized once at process start and never
// mutated afterwards.
var (
	isoDatePattern   = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	slashDatePattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	monthDatePattern = regexp.MustCompile(`\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
	dayMonthPattern  = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})\b`)

	clockTimePattern  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*([AaPp])\.?[Mm]\.?\b`)
	plainTimePattern  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	hourMeridiemOnly  = regexp.MustCompile(`\b(\d{1,2})\s*([AaPp])\.?[Mm]\.?\b`)
	combinedTimestamp = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})[T ](\d{1,2}):(\d{2})`)

	locationLabelPattern = regexp.MustCompile(`(?i)\blocation\s*:\s*(.+)`)
	prepositionPattern   = regexp.MustCompile(`\b(?:at|near|inside|outside|towards?)\s+((?:the\s+)?[A-Z][A-Za-z'&-]*(?:\s+[A-Z][A-Za-z'&-]*)*)`)

	personNamePattern = regexp.MustCompile(`\b([A-Z][a-z]+)\s+([A-Z][a-z]+)\b`)
)

var monthNumbers = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// Capitalized second words that mark a two-word phrase as a place or
// organization rather than a person.
var nonPersonSuffixes = map[string]bool{
	"Street": true, "Avenue": true, "Road": true, "Boulevard": true,
	"Lane": true, "Drive": true, "Bridge": true, "Park": true,
	"Square": true, "Alley": true, "Station": true, "Hospital": true,
	"Hotel": true, "Bank": true, "Building": true, "Tower": true,
	"Club": true, "Bar": true, "County": true, "City": true,
	"Department": true, "Police": true, "Office": true, "Court": true,
	"School": true, "University": true, "Church": true, "Library": true,
	"Harbor": true, "Pier": true, "Market": true, "Mall": true,
}

// Capitalized first words that start sentences or name places, not people.
var nonPersonPrefixes = map[string]bool{
	"The": true, "New": true, "Old": true, "North": true, "South": true,
	"East": true, "West": true, "Lake": true, "Mount": true, "Fort": true,
	"San": true, "Los": true, "Las": true, "Saint": true, "Upper": true,
	"Lower": true, "Grand": true, "Central": true, "January": true,
	"February": true, "March": true, "April": true, "May": true,
	"June": true, "July": true, "August": true, "September": true,
	"October": true, "November": true, "December": true, "Monday": true,
	"Tuesday": true, "Wednesday": true, "Thursday": true, "Friday": true,
	"Saturday": true, "Sunday": true,
}

// findDate returns the first recognizable date in the text, normalized to
// YYYY-MM-DD, or "" if none is found
func findDate(text string) string {
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		return normalizeYMD(m[1], m[2], m[3])
	}
	if m := slashDatePattern.FindStringSubmatch(text); m != nil {
		// Slash dates are read as MM/DD/YYYY
		return normalizeYMD(m[3], m[1], m[2])
	}
	if m := monthDatePattern.FindStringSubmatch(text); m != nil {
		month := monthNumbers[strings.ToLower(m[1])]
		return normalizeYMD(m[3], strconv.Itoa(month), m[2])
	}
	if m := dayMonthPattern.FindStringSubmatch(text); m != nil {
		month := monthNumbers[strings.ToLower(m[2])]
		return normalizeYMD(m[3], strconv.Itoa(month), m[1])
	}
	return ""
}

// normalizeYMD zero-pads date components, rejecting impossible values
func normalizeYMD(year, month, day string) string {
	y, err1 := strconv.Atoi(year)
	m, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	if y < 1000 || m < 1 || m > 12 || d < 1 || d > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// findTime returns the first recognizable time of day in the text, normalized
// to 24-hour HH:MM, or "" if none is found. Accepted forms: H:MM, HH:MM,
// H AM/PM, H:MM AM/PM. Noon and midnight follow clock convention:
// 12 AM -> 00:xx, 12 PM -> 12:xx.
func findTime(text string) string {
	if m := clockTimePattern.FindStringSubmatch(text); m != nil {
		return normalizeClock(m[1], m[2], m[3])
	}
	if m := plainTimePattern.FindStringSubmatch(text); m != nil {
		return normalizeClock(m[1], m[2], "")
	}
	if m := hourMeridiemOnly.FindStringSubmatch(text); m != nil {
		return normalizeClock(m[1], "00", m[2])
	}
	return ""
}

// normalizeClock converts hour/minute/meridiem components to 24-hour HH:MM
func normalizeClock(hour, minute, meridiem string) string {
	h, err1 := strconv.Atoi(hour)
	m, err2 := strconv.Atoi(minute)
	if err1 != nil || err2 != nil || m > 59 {
		return ""
	}

	switch strings.ToLower(meridiem) {
	case "a":
		if h > 12 {
			return ""
		}
		if h == 12 {
			h = 0
		}
	case "p":
		if h > 12 {
			return ""
		}
		if h != 12 {
			h += 12
		}
	default:
		if h > 23 {
			return ""
		}
	}

	return fmt.Sprintf("%02d:%02d", h, m)
}

// findTimestamp returns the date and time parts of the first combined
// date-time string in the text
func findTimestamp(text string) (date, tod string, ok bool) {
	m := combinedTimestamp.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	date = normalizeYMD(m[1], m[2], m[3])
	tod = normalizeClock(m[4], m[5], "")
	if date == "" {
		return "", "", false
	}
	return date, tod, true
}

// findLocation returns a location mentioned in the line: an explicit
// "location:" label wins over a preposition pattern
func findLocation(line string) string {
	if m := locationLabelPattern.FindStringSubmatch(line); m != nil {
		loc := strings.TrimSpace(m[1])
		// Cut at sentence punctuation so trailing narrative is not swallowed
		if idx := strings.IndexAny(loc, ".;!?"); idx > 0 {
			loc = strings.TrimSpace(loc[:idx])
		}
		return loc
	}
	if m := prepositionPattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// findPersons returns the distinct person names recognized in the line.
// Two-capitalized-word phrases pass through a non-person filter that rejects
// organizational and place-like phrases.
func findPersons(line string) []string {
	matches := personNamePattern.FindAllStringSubmatch(line, -1)
	if matches == nil {
		return nil
	}

	seen := make(map[string]bool)
	var persons []string
	for _, m := range matches {
		first, second := m[1], m[2]
		if nonPersonPrefixes[first] || nonPersonSuffixes[second] {
			continue
		}
		name := first + " " + second
		if !seen[name] {
			seen[name] = true
			persons = append(persons, name)
		}
	}
	return persons
}

// hasDateOrTime reports whether the line contains any recognizable date or
// time pattern; such lines are kept even when otherwise low-information
func hasDateOrTime(line string) bool {
	return findDate(line) != "" || findTime(line) != ""
}
