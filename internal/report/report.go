// Package report builds the end-of-call risk report from a full
// conversation transcript.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/fiveshield/shieldcall/internal/catalog"
	"github.com/fiveshield/shieldcall/internal/domain"
	"github.com/fiveshield/shieldcall/internal/scorer"
)

// Verdict ladder thresholds, evaluated high to low.
const (
	confirmedThreshold  = 0.7
	suspiciousThreshold = 0.4
)

const maxEvidence = 3

// shortConversationTurns is the turn count at or below which the summary
// is the fixed short-conversation sentence.
const shortConversationTurns = 3

// Evidence sentences per matched category, appended in priority order.
var evidenceSentences = []struct {
	category string
	sentence string
}{
	{catalog.AuthorityImpersonation, "Expressions impersonating a public authority were used."},
	{catalog.AccountRequest, "The caller asked for an account number or a money transfer."},
	{catalog.UrgencyPressure, "Pressure demanding an immediate response was detected."},
	{catalog.Threat, "Threatening expressions such as arrest or detention were used."},
}

var actionGuides = map[string][]string{
	domain.VerdictPhishingConfirmed: {
		"Do not call this number back.",
		"Verify directly through the institution's official number.",
		"Never provide account details or personal information.",
		"If in doubt, report to the police (112) or the Financial Supervisory Service (1332).",
	},
	domain.VerdictSuspicious: {
		"Judge carefully before acting.",
		"Verify through official channels.",
		"Do not provide personal or financial information.",
	},
	domain.VerdictNormal: {
		"The call appears to be legitimate.",
		"Re-confirm through official channels if needed.",
	},
}

// Generator synthesizes call reports. It is stateless and safe for
// concurrent use.
type Generator struct {
	scorer     *scorer.Scorer
	categories []catalog.Category
}

// NewGenerator creates a report generator sharing the given scorer.
func NewGenerator(sc *scorer.Scorer) *Generator {
	return &Generator{
		scorer:     sc,
		categories: catalog.Categories(),
	}
}

// Generate aggregates the transcript, re-scores it and derives the
// verdict, evidence and action guide. It never errors: an empty
// transcript yields the fixed unanalyzable report.
func (g *Generator) Generate(history []domain.Turn) domain.Report {
	if len(history) == 0 {
		return emptyReport()
	}

	texts := make([]string, 0, len(history))
	for _, turn := range history {
		texts = append(texts, turn.Text)
	}
	fullText := strings.Join(texts, " ")

	result := g.scorer.Score(fullText)
	scamTypes := g.classify(fullText)

	var verdict, riskLevel string
	switch {
	case result.Score >= confirmedThreshold:
		verdict = domain.VerdictPhishingConfirmed
		riskLevel = domain.RiskHigh
	case result.Score >= suspiciousThreshold:
		verdict = domain.VerdictSuspicious
		riskLevel = domain.RiskMedium
	default:
		verdict = domain.VerdictNormal
		riskLevel = domain.RiskLow
	}

	return domain.Report{
		Verdict:     verdict,
		RiskLevel:   riskLevel,
		Score:       result.Score,
		ScamTypes:   scamTypes,
		Evidence:    buildEvidence(fullText, g.categories),
		ActionGuide: actionGuides[verdict],
		Summary:     summarize(history),
		Timestamp:   time.Now().UTC(),
	}
}

// classify returns the labels of all categories with at least one
// keyword present in the text. Classification is presence-only and
// independent of the numeric score.
func (g *Generator) classify(text string) []string {
	lowered := strings.ToLower(text)

	var labels []string
	for _, cat := range g.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lowered, kw) {
				labels = append(labels, cat.Label)
				break
			}
		}
	}

	if len(labels) == 0 {
		return []string{catalog.LabelOther}
	}
	return labels
}

// buildEvidence collects one fixed sentence per matched evidence
// category, in priority order, truncated to maxEvidence.
func buildEvidence(text string, categories []catalog.Category) []string {
	lowered := strings.ToLower(text)

	byID := make(map[string]catalog.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	var evidence []string
	for _, e := range evidenceSentences {
		cat, ok := byID[e.category]
		if !ok {
			continue
		}
		for _, kw := range cat.Keywords {
			if strings.Contains(lowered, kw) {
				evidence = append(evidence, e.sentence)
				break
			}
		}
		if len(evidence) == maxEvidence {
			break
		}
	}

	if len(evidence) == 0 {
		return []string{"no notable anomalies detected"}
	}
	return evidence
}

func summarize(history []domain.Turn) string {
	if len(history) <= shortConversationTurns {
		return "A short conversation took place."
	}

	var callerTurns, aiTurns int
	for _, turn := range history {
		switch turn.Speaker {
		case domain.SpeakerCaller:
			callerTurns++
		case domain.SpeakerAI:
			aiTurns++
		}
	}

	return fmt.Sprintf("The conversation ran %d turns in total (caller: %d, ai: %d).",
		len(history), callerTurns, aiTurns)
}

func emptyReport() domain.Report {
	return domain.Report{
		Verdict:     domain.VerdictUnanalyzable,
		RiskLevel:   domain.RiskUnknown,
		Score:       0.0,
		ScamTypes:   []string{},
		Evidence:    []string{"no conversation content"},
		ActionGuide: []string{"retry the call"},
		Summary:     "No conversation was recorded.",
		Timestamp:   time.Now().UTC(),
	}
}
