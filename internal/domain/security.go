package domain

import "strings"

// RiskTier classifies a requested action. It is derived per request and
// never stored.
type RiskTier string

const (
	RiskNormal    RiskTier = "normal"
	RiskDangerous RiskTier = "dangerous"
)

// ParseRiskTier maps a rules-file value onto a tier. Anything unrecognised
// is treated as dangerous.
func ParseRiskTier(value string) RiskTier {
	if strings.EqualFold(strings.TrimSpace(value), string(RiskNormal)) {
		return RiskNormal
	}
	return RiskDangerous
}

// MaxTier returns the more severe of the given tiers.
func MaxTier(tiers ...RiskTier) RiskTier {
	for _, tier := range tiers {
		if tier == RiskDangerous {
			return RiskDangerous
		}
	}
	return RiskNormal
}

// RiskAssessment is a tier together with the rules that produced it.
type RiskAssessment struct {
	Tier         RiskTier
	Reasons      []string
	MatchedRules []string
}

// Merge folds other into a, keeping the most severe tier.
func (a RiskAssessment) Merge(other RiskAssessment) RiskAssessment {
	a.Tier = MaxTier(a.Tier, other.Tier)
	a.Reasons = append(a.Reasons, other.Reasons...)
	a.MatchedRules = append(a.MatchedRules, other.MatchedRules...)
	return a
}

// ConfirmationLevel selects which accepted-answer set a gate uses.
type ConfirmationLevel string

const (
	ConfirmOrdinary ConfirmationLevel = "ordinary"
	ConfirmElevated ConfirmationLevel = "elevated"
)

// ConfirmationOutcome is the operator's answer to a single gate.
type ConfirmationOutcome string

const (
	Authorized ConfirmationOutcome = "authorized"
	Denied     ConfirmationOutcome = "denied"
)

// PatternRule is one entry of a classification table: a substring and the
// tier it implies.
type PatternRule struct {
	Pattern string `yaml:"pattern" toml:"pattern"`
	Tier    string `yaml:"tier" toml:"tier"`
	Reason  string `yaml:"reason" toml:"reason"`
}
