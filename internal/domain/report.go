package domain

import (
	"time"
)

// Verdict values for a completed conversation.
const (
	VerdictPhishingConfirmed = "phishing confirmed"
	VerdictSuspicious        = "suspicious"
	VerdictNormal            = "normal"
	VerdictUnanalyzable      = "unanalyzable"
)

// Risk tiers attached to a verdict.
const (
	RiskHigh    = "high"
	RiskMedium  = "medium"
	RiskLow     = "low"
	RiskUnknown = "unknown"
)

// Report is the structured risk assessment produced at call end.
// Field names on the wire follow the report contract consumed by the
// mobile client.
type Report struct {
	Verdict     string    `json:"result"`
	RiskLevel   string    `json:"risk_level"`
	Score       float64   `json:"scam_score"`
	ScamTypes   []string  `json:"scam_types"`
	Evidence    []string  `json:"evidence"`
	ActionGuide []string  `json:"action_guide"`
	Summary     string    `json:"conversation_summary"`
	Timestamp   time.Time `json:"timestamp"`
}
