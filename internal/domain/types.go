// Package domain contains core business entities and types for drug
// interaction analysis over a pharmacological knowledge graph.
//
// Severity grading follows the conventional four-level clinical scale
// (minor < moderate < major < contraindicated) used by drug interaction
// compendia.
package domain

import "errors"

// Severity represents the clinical seriousness of a drug-drug interaction.
// The ordering is fixed: MINOR < MODERATE < MAJOR < CONTRAINDICATED.
type Severity string

const (
	SEVERITY_NONE   Severity = "NONE"
	MINOR           Severity = "MINOR"
	MODERATE        Severity = "MODERATE"
	MAJOR           Severity = "MAJOR"
	CONTRAINDICATED Severity = "CONTRAINDICATED"
)

// RiskLevel represents the aggregate risk classification for a medication list.
type RiskLevel string

const (
	RISK_LOW      RiskLevel = "LOW"
	RISK_MODERATE RiskLevel = "MODERATE"
	RISK_HIGH     RiskLevel = "HIGH"
	RISK_CRITICAL RiskLevel = "CRITICAL"
)

// PathwayType represents how two drugs are connected in the knowledge graph.
type PathwayType string

const (
	PATHWAY_DIRECT          PathwayType = "DIRECT"
	PATHWAY_ENZYME_MEDIATED PathwayType = "ENZYME_MEDIATED"
	PATHWAY_CLASS_EFFECT    PathwayType = "CLASS_EFFECT"
)

// Validation errors for graph and prediction data integrity
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidSeverity = errors.New("invalid interaction severity")
	ErrInvalidRisk     = errors.New("invalid risk level")
	ErrInvalidPathway  = errors.New("invalid pathway type")
)

// IsValid validates that the Severity is one of the four clinical levels
// (or NONE for "no interaction"). Unvalidated severities must never reach
// the risk aggregation path.
func (s Severity) IsValid() bool {
	switch s {
	case SEVERITY_NONE, MINOR, MODERATE, MAJOR, CONTRAINDICATED:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// Score maps the severity onto the ordinal risk scale used by the
// aggregator: MINOR=1, MODERATE=2, MAJOR=3, CONTRAINDICATED=4, NONE=0.
// The mapping is fixed and never derived from runtime data.
func (s Severity) Score() int {
	switch s {
	case MINOR:
		return 1
	case MODERATE:
		return 2
	case MAJOR:
		return 3
	case CONTRAINDICATED:
		return 4
	default:
		return 0
	}
}

// RiskLevelFromScore maps a maximum severity score onto the overall risk
// level: >=4 CRITICAL, >=3 HIGH, >=2 MODERATE, else LOW.
func RiskLevelFromScore(maxScore int) RiskLevel {
	switch {
	case maxScore >= 4:
		return RISK_CRITICAL
	case maxScore >= 3:
		return RISK_HIGH
	case maxScore >= 2:
		return RISK_MODERATE
	default:
		return RISK_LOW
	}
}

// IsValid validates the risk level.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RISK_LOW, RISK_MODERATE, RISK_HIGH, RISK_CRITICAL:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// IsValid validates the pathway type.
func (p PathwayType) IsValid() bool {
	switch p {
	case PATHWAY_DIRECT, PATHWAY_ENZYME_MEDIATED, PATHWAY_CLASS_EFFECT:
		return true
	default:
		return false
	}
}

// String returns the string representation of the pathway type.
func (p PathwayType) String() string {
	return string(p)
}
