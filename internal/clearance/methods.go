// Package clearance scores how reliable a suspect clearance is, using a
// fixed method-reliability table and closed-form deduction rules. Every
// evaluation is recomputed fresh; nothing is cached or mutated.
package clearance

import "github.com/ndmitriev/caseline/internal/model"

// MethodProfile is the fixed reliability classification of one clearance
// method
type MethodProfile struct {
	Reliability model.Reliability     `json:"reliability"`
	Basis       model.ScientificBasis `json:"scientific_basis"`
	BaseScore   int                   `json:"base_score"` // 0..100
}

// methodProfiles is the closed method table: read-only static configuration,
// initialized once and never mutated. An input method outside this table is
// an input-shape violation.
var methodProfiles = map[model.ClearanceMethod]MethodProfile{
	model.MethodDNAExclusion:         {Reliability: model.ReliabilityHigh, Basis: model.BasisStrong, BaseScore: 95},
	model.MethodFingerprintExclusion: {Reliability: model.ReliabilityHigh, Basis: model.BasisStrong, BaseScore: 90},
	model.MethodVideoEvidence:        {Reliability: model.ReliabilityHigh, Basis: model.BasisStrong, BaseScore: 90},
	model.MethodDigitalForensics:     {Reliability: model.ReliabilityHigh, Basis: model.BasisModerate, BaseScore: 85},
	model.MethodVerifiedAlibi:        {Reliability: model.ReliabilityHigh, Basis: model.BasisModerate, BaseScore: 80},
	model.MethodPhoneRecords:         {Reliability: model.ReliabilityMedium, Basis: model.BasisModerate, BaseScore: 70},
	model.MethodWitnessCorroboration: {Reliability: model.ReliabilityMedium, Basis: model.BasisWeak, BaseScore: 60},
	model.MethodStatementConsistency: {Reliability: model.ReliabilityLow, Basis: model.BasisWeak, BaseScore: 30},
	model.MethodNoApparentMotive:     {Reliability: model.ReliabilityLow, Basis: model.BasisNone, BaseScore: 15},
	model.MethodPolygraphPassed:      {Reliability: model.ReliabilityLow, Basis: model.BasisNone, BaseScore: 10},
	model.MethodCooperativeDemeanor:  {Reliability: model.ReliabilityLow, Basis: model.BasisNone, BaseScore: 5},
}

// MethodTable returns the method profiles in a fixed presentation order
func MethodTable() []struct {
	Method  model.ClearanceMethod
	Profile MethodProfile
} {
	ordered := []model.ClearanceMethod{
		model.MethodDNAExclusion,
		model.MethodFingerprintExclusion,
		model.MethodVideoEvidence,
		model.MethodDigitalForensics,
		model.MethodVerifiedAlibi,
		model.MethodPhoneRecords,
		model.MethodWitnessCorroboration,
		model.MethodStatementConsistency,
		model.MethodNoApparentMotive,
		model.MethodPolygraphPassed,
		model.MethodCooperativeDemeanor,
	}

	table := make([]struct {
		Method  model.ClearanceMethod
		Profile MethodProfile
	}, 0, len(ordered))
	for _, m := range ordered {
		table = append(table, struct {
			Method  model.ClearanceMethod
			Profile MethodProfile
		}{Method: m, Profile: methodProfiles[m]})
	}
	return table
}

// biasedRelationships marks alibi witnesses whose relationship to the
// suspect undermines their independence
var biasedRelationships = map[string]bool{
	"family":   true,
	"spouse":   true,
	"parent":   true,
	"sibling":  true,
	"child":    true,
	"romantic": true,
	"partner":  true,
	"friend":   true,
}

func isBiasedRelationship(relationship string) bool {
	return biasedRelationships[normalizeToken(relationship)]
}

func isHighReliability(m model.ClearanceMethod) bool {
	return methodProfiles[m].Reliability == model.ReliabilityHigh
}
