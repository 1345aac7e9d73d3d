package extract

import (
	"strings"
	"unicode"
)

// minSentenceLength drops fragments too short to carry a usable claim
const minSentenceLength = 10

// splitSentences splits transcript text into sentences. A boundary is
// sentence-ending punctuation followed (after closing quotes and spaces) by a
// capital letter. Quoted speech is preserved: terminators inside double
// quotes do not split.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	runes := []rune(text)

	var sentences []string
	var current strings.Builder
	inQuote := false

	flush := func() {
		s := strings.TrimSpace(current.String())
		if len(s) >= minSentenceLength {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i, r := range runes {
		current.WriteRune(r)

		if r == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			continue
		}

		if r == '.' || r == '!' || r == '?' {
			if nextIsCapital(runes, i+1) {
				flush()
			}
		}
	}
	flush()

	return sentences
}

// nextIsCapital looks past closing quotes and whitespace for an uppercase
// letter, the signal that a new sentence begins
func nextIsCapital(runes []rune, from int) bool {
	for i := from; i < len(runes); i++ {
		r := runes[i]
		if r == '"' || r == '\'' || unicode.IsSpace(r) {
			continue
		}
		return unicode.IsUpper(r)
	}
	// End of text closes the final sentence
	return true
}
