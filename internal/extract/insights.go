package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ndmitriev/caseline/internal/model"
)

// Fixed category pattern sets. One candidate insight is created per matched
// sentence per category; the tables are read-only after initialization.
var categoryPatterns = map[model.InsightCategory][]*regexp.Regexp{
	model.CategoryCrimeSceneDetail: {
		regexp.MustCompile(`(?i)\b(crime scene|at the scene|the scene was)\b`),
		regexp.MustCompile(`(?i)\bblood\b.*\b(floor|wall|carpet|spatter|pool)\b`),
		regexp.MustCompile(`(?i)\b(ransacked|forced entry|broken (window|lock|glass)|overturned)\b`),
	},
	model.CategoryVictimState: {
		regexp.MustCompile(`(?i)\bvictim was\b`),
		regexp.MustCompile(`(?i)\b(she|he) was (found|lying|wearing|dressed)\b`),
		regexp.MustCompile(`(?i)\b(was|were) (strangled|stabbed|shot|beaten|drowned)\b`),
		regexp.MustCompile(`(?i)\b(bruise|bruises|unconscious|lifeless)\b`),
	},
	model.CategoryBodyKnowledge: {
		regexp.MustCompile(`(?i)\bthe body\b`),
		regexp.MustCompile(`(?i)\bbody was (found|moved|positioned|lying|covered)\b`),
		regexp.MustCompile(`(?i)\bface[ -]?(down|up)\b`),
		regexp.MustCompile(`(?i)\b(rigor mortis|position of the body)\b`),
	},
	model.CategoryTimingDetail: {
		regexp.MustCompile(`\b\d{1,2}:\d{2}\b`),
		regexp.MustCompile(`(?i)\baround (midnight|noon|\d{1,2})\b`),
		regexp.MustCompile(`(?i)\bthat (night|evening|morning|afternoon)\b`),
		regexp.MustCompile(`(?i)\b(minutes|hours) (before|after|later|earlier)\b`),
		regexp.MustCompile(`(?i)\bo'?clock\b`),
	},
	model.CategoryLocationKnowledge: {
		regexp.MustCompile(`(?i)\b(behind the|in the (alley|basement|garage|woods|park|warehouse))\b`),
		regexp.MustCompile(`(?i)\b(back (door|entrance)|side (street|door)|service entrance)\b`),
		regexp.MustCompile(`\b[A-Z][a-z]+ (Street|Avenue|Road|Bridge|Park|Alley|Square)\b`),
	},
	model.CategoryEvidenceKnowledge: {
		regexp.MustCompile(`(?i)\b(fingerprint|footprint|shell casing|fiber|fibres?|dna)\b`),
		regexp.MustCompile(`(?i)\bthe (knife|gun|weapon|rope|bottle|bat)\b`),
		regexp.MustCompile(`(?i)\btraces? of\b`),
	},
	model.CategoryWeaponKnowledge: {
		regexp.MustCompile(`(?i)\b(murder weapon|caliber|serrated|blunt (object|instrument))\b`),
		regexp.MustCompile(`(?i)\b(knife|gun|pistol|revolver|blade|hammer|bat|rope|cord)\b.*\b(used|found|hidden|missing|wiped)\b`),
	},
	model.CategoryVictimMovement: {
		regexp.MustCompile(`(?i)\b(victim|she|he) (left|went|walked|drove|headed|was seen)\b`),
		regexp.MustCompile(`(?i)\b(last seen|on (her|his) way (home|to)|leaving the)\b`),
	},
}

// Specificity scoring patterns
var (
	explicitTimePattern   = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	vagueMeridiemPattern  = regexp.MustCompile(`(?i)\b\d{1,2}\s*(am|pm)\b`)
	countedQuantityRegexp = regexp.MustCompile(`(?i)\b(\d+|two|three|four|five|six|seven|eight|nine|ten)\s+(wounds?|stab(s|bings)?|shots?|minutes?|hours?|times|feet|meters?|blocks?|steps?)\b`)
	precisionWordPattern  = regexp.MustCompile(`(?i)\b(exact(ly)?|specific(ally)?|precise(ly)?)\b`)
	streetPlacePattern    = regexp.MustCompile(`\b[A-Z][a-z]+ (Street|Avenue|Road|Boulevard|Lane|Drive|Park|Bridge|Alley|Square)\b`)
	colorNounPattern      = regexp.MustCompile(`(?i)\b(red|blue|green|black|white|yellow|brown|grey|gray|purple|orange)\s+[a-z]+`)
)

// Confidence bases per specificity tier; a guilty-knowledge flag adds 0.3,
// capped at 1.
var confidenceBase = map[model.Specificity]float64{
	model.SpecificityGeneral:        0.4,
	model.SpecificitySpecific:       0.6,
	model.SpecificityHighlySpecific: 0.8,
}

// detailKeyLength is the detail prefix used for per-speaker deduplication
const detailKeyLength = 100

// sensitiveLengthThreshold marks a statement in a sensitive category as
// guilty knowledge on length alone. This is a coarse proxy carried over from
// investigative practice; it has no corroboration signal and is a likely
// source of false positives.
const sensitiveLengthThreshold = 80

// InsightExtractor extracts typed claims from interview transcripts
type InsightExtractor struct{}

// NewInsightExtractor creates a new insight extractor
func NewInsightExtractor() *InsightExtractor {
	return &InsightExtractor{}
}

// Extract returns the deduplicated insights for one interview. The optional
// case knowledge enables the before-discovery and perpetrator-only checks;
// passing nil disables them without error.
func (e *InsightExtractor) Extract(iv model.Interview, know *model.CaseKnowledge) []model.ExtractedInsight {
	var insights []model.ExtractedInsight

	for _, sentence := range splitSentences(iv.FullText) {
		for _, category := range orderedCategories() {
			if !matchesCategory(sentence, category) {
				continue
			}

			specificity := gradeSpecificity(sentence)
			if specificity == model.SpecificityVague {
				continue
			}

			flagged, reason := flagGuiltyKnowledge(sentence, category, iv.Date, know)

			confidence := confidenceBase[specificity]
			if flagged {
				confidence += 0.3
			}
			if confidence > 1 {
				confidence = 1
			}

			insights = append(insights, model.ExtractedInsight{
				Speaker:                  iv.Speaker,
				Role:                     iv.Role,
				Type:                     category,
				Detail:                   truncate(sentence, 200),
				FullQuote:                sentence,
				Specificity:              specificity,
				FlaggedAsGuiltyKnowledge: flagged,
				Reason:                   reason,
				Confidence:               confidence,
				InterviewDate:            iv.Date,
			})
		}
	}

	return dedupeInsights(insights)
}

// orderedCategories returns the categories in a fixed order so extraction is
// deterministic regardless of map iteration
func orderedCategories() []model.InsightCategory {
	return []model.InsightCategory{
		model.CategoryCrimeSceneDetail,
		model.CategoryVictimState,
		model.CategoryBodyKnowledge,
		model.CategoryTimingDetail,
		model.CategoryLocationKnowledge,
		model.CategoryEvidenceKnowledge,
		model.CategoryWeaponKnowledge,
		model.CategoryVictimMovement,
	}
}

func matchesCategory(sentence string, category model.InsightCategory) bool {
	for _, p := range categoryPatterns[category] {
		if p.MatchString(sentence) {
			return true
		}
	}
	return false
}

// gradeSpecificity assigns the points-based ordinal grade:
// explicit clock time +2, vague AM/PM time +1, counted quantity +2,
// precision words +1, street/place phrase +2, color+noun +1, length>150 +1.
// Totals >=4 / >=2 / >=1 map to highly_specific / specific / general.
func gradeSpecificity(sentence string) model.Specificity {
	points := 0

	if explicitTimePattern.MatchString(sentence) {
		points += 2
	} else if vagueMeridiemPattern.MatchString(sentence) {
		points++
	}
	if countedQuantityRegexp.MatchString(sentence) {
		points += 2
	}
	if precisionWordPattern.MatchString(sentence) {
		points++
	}
	if streetPlacePattern.MatchString(sentence) {
		points += 2
	}
	if colorNounPattern.MatchString(sentence) {
		points++
	}
	if len(sentence) > 150 {
		points++
	}

	switch {
	case points >= 4:
		return model.SpecificityHighlySpecific
	case points >= 2:
		return model.SpecificitySpecific
	case points >= 1:
		return model.SpecificityGeneral
	default:
		return model.SpecificityVague
	}
}

// flagGuiltyKnowledge applies the three flagging rules in order:
// perpetrator-only phrase, evidence mentioned before its discovery date, and
// the sensitive-category length proxy
func flagGuiltyKnowledge(sentence string, category model.InsightCategory, interviewDate string, know *model.CaseKnowledge) (bool, string) {
	lower := strings.ToLower(sentence)

	if know != nil {
		for _, fact := range know.PerpetratorOnlyFacts {
			if fact != "" && strings.Contains(lower, strings.ToLower(fact)) {
				return true, fmt.Sprintf("mentions a detail known only to the perpetrator: %q", fact)
			}
		}

		for _, item := range know.Evidence {
			if item.Description == "" || !strings.Contains(lower, strings.ToLower(item.Description)) {
				continue
			}
			if interviewDate != "" && item.DiscoveredOn != "" && interviewDate < item.DiscoveredOn {
				return true, fmt.Sprintf("mentions %q before it was discovered (%s)", item.Description, item.DiscoveredOn)
			}
		}
	}

	if category.Sensitive() && len(sentence) > sensitiveLengthThreshold {
		return true, "unusually detailed statement in a sensitive category (weak signal; verify independently)"
	}

	return false, ""
}

// dedupeInsights keeps the highest-confidence insight per
// (speaker, detail prefix) pair, preserving first-seen order
func dedupeInsights(insights []model.ExtractedInsight) []model.ExtractedInsight {
	type slot struct {
		index int
	}
	best := make(map[string]slot)
	var unique []model.ExtractedInsight

	for _, in := range insights {
		key := in.Speaker + "|" + strings.ToLower(truncate(in.Detail, detailKeyLength))
		if s, ok := best[key]; ok {
			if in.Confidence > unique[s.index].Confidence {
				unique[s.index] = in
			}
			continue
		}
		best[key] = slot{index: len(unique)}
		unique = append(unique, in)
	}

	return unique
}

// SortInsights orders insights for stable presentation: flagged first, then
// by confidence descending, then by speaker
func SortInsights(insights []model.ExtractedInsight) {
	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].FlaggedAsGuiltyKnowledge != insights[j].FlaggedAsGuiltyKnowledge {
			return insights[i].FlaggedAsGuiltyKnowledge
		}
		if insights[i].Confidence != insights[j].Confidence {
			return insights[i].Confidence > insights[j].Confidence
		}
		return insights[i].Speaker < insights[j].Speaker
	})
}
