package model

// Severity indicates the importance of a finding or red flag
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the position of the severity in its total order (low < medium < high < critical)
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// Specificity grades how concretely detailed a statement is
type Specificity string

const (
	SpecificityVague          Specificity = "vague"
	SpecificityGeneral        Specificity = "general"
	SpecificitySpecific       Specificity = "specific"
	SpecificityHighlySpecific Specificity = "highly_specific"
)

// Rank returns the position of the specificity in its total order (vague < general < specific < highly_specific)
func (s Specificity) Rank() int {
	switch s {
	case SpecificityVague:
		return 0
	case SpecificityGeneral:
		return 1
	case SpecificitySpecific:
		return 2
	case SpecificityHighlySpecific:
		return 3
	default:
		return -1
	}
}

// ClearanceStrength grades how reliable a suspect clearance is
type ClearanceStrength string

const (
	StrengthUnreliable ClearanceStrength = "unreliable"
	StrengthVeryWeak   ClearanceStrength = "very_weak"
	StrengthWeak       ClearanceStrength = "weak"
	StrengthModerate   ClearanceStrength = "moderate"
	StrengthStrong     ClearanceStrength = "strong"
)

// Rank returns the position of the strength in its total order (unreliable < very_weak < weak < moderate < strong)
func (s ClearanceStrength) Rank() int {
	switch s {
	case StrengthUnreliable:
		return 0
	case StrengthVeryWeak:
		return 1
	case StrengthWeak:
		return 2
	case StrengthModerate:
		return 3
	case StrengthStrong:
		return 4
	default:
		return -1
	}
}

// Downgrade returns the strength one tier lower, saturating at unreliable
func (s ClearanceStrength) Downgrade() ClearanceStrength {
	switch s {
	case StrengthStrong:
		return StrengthModerate
	case StrengthModerate:
		return StrengthWeak
	case StrengthWeak:
		return StrengthVeryWeak
	default:
		return StrengthUnreliable
	}
}
