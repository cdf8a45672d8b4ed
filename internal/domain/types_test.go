package domain

import (
	"testing"
)

func TestSeverityConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    Severity
		expected string
	}{
		{"None", SEVERITY_NONE, "NONE"},
		{"Minor", MINOR, "MINOR"},
		{"Moderate", MODERATE, "MODERATE"},
		{"Major", MAJOR, "MAJOR"},
		{"Contraindicated", CONTRAINDICATED, "CONTRAINDICATED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
			if !tt.value.IsValid() {
				t.Errorf("Expected %s to be valid", tt.expected)
			}
		})
	}

	if Severity("FATAL").IsValid() {
		t.Error("Expected unknown severity to be invalid")
	}
}

func TestSeverityScoreOrdering(t *testing.T) {
	tests := []struct {
		name     string
		value    Severity
		expected int
	}{
		{"None", SEVERITY_NONE, 0},
		{"Minor", MINOR, 1},
		{"Moderate", MODERATE, 2},
		{"Major", MAJOR, 3},
		{"Contraindicated", CONTRAINDICATED, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Score(); got != tt.expected {
				t.Errorf("Expected score %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestRiskLevelFromScore(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		expected RiskLevel
	}{
		{"No interactions", 0, RISK_LOW},
		{"Minor only", 1, RISK_LOW},
		{"Moderate", 2, RISK_MODERATE},
		{"Major", 3, RISK_HIGH},
		{"Contraindicated", 4, RISK_CRITICAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskLevelFromScore(tt.score); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair("Warfarin", "aspirin")
	if a != "aspirin" || b != "warfarin" {
		t.Errorf("Expected (aspirin, warfarin), got (%s, %s)", a, b)
	}

	a2, b2 := CanonicalPair("aspirin", "warfarin")
	if a2 != a || b2 != b {
		t.Error("Expected canonical pair to be order-independent")
	}

	if PairKey("Warfarin", "Aspirin") != PairKey("aspirin", "WARFARIN ") {
		t.Error("Expected pair keys to normalize case and whitespace")
	}
}

func TestPredictionValidate(t *testing.T) {
	tests := []struct {
		name    string
		pred    Prediction
		wantErr bool
	}{
		{"Valid interaction", Prediction{HasInteraction: true, Confidence: 0.9, Severity: MAJOR}, false},
		{"Valid no interaction", Prediction{HasInteraction: false, Confidence: 0.7, Severity: SEVERITY_NONE}, false},
		{"Confidence above range", Prediction{HasInteraction: true, Confidence: 1.2, Severity: MAJOR}, true},
		{"Invalid severity", Prediction{HasInteraction: true, Confidence: 0.5, Severity: Severity("BAD")}, true},
		{"Interaction without severity", Prediction{HasInteraction: true, Confidence: 0.5, Severity: SEVERITY_NONE}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pred.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
