// Package responder orchestrates scoring, strategy selection and reply
// generation for one conversation turn.
package responder

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fiveshield/shieldcall/internal/domain"
	"github.com/fiveshield/shieldcall/internal/scorer"
	"github.com/fiveshield/shieldcall/internal/strategy"
)

// historyWindow bounds how many past turns are included in the prompt.
const historyWindow = 10

// Scripted fallback replies used when no generator is configured or the
// generation call fails.
const (
	mockVictimCredentials = "네, 지금 당장 계좌번호와 비밀번호를 알려주시면 안전하게 보호해드리겠습니다."
	mockVictimPressure    = "지금은 시간이 없습니다. 지금 당장 처리하지 않으면 계좌가 동결될 수 있습니다."
	mockVictimOpening     = "안녕하세요, 금융감독원입니다. 귀하의 계좌에서 의심스러운 거래가 감지되었습니다."

	mockScammerStall  = "네, 확인해보고 다시 연락드리겠습니다."
	mockScammerRefuse = "죄송하지만 개인정보는 제공할 수 없습니다."
	mockScammerAck    = "네, 알겠습니다. 확인해보겠습니다."
)

// Responder produces a role-appropriate reply for each incoming turn.
type Responder struct {
	scorer      *scorer.Scorer
	gen         domain.Generator // nil when no collaborator is configured
	timeout     time.Duration
	temperature float64
	maxTokens   int
}

// New creates a responder. gen may be nil, in which case every turn is
// answered from the scripted fallback.
func New(sc *scorer.Scorer, gen domain.Generator, cfg domain.GeneratorConfig) *Responder {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.8
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 200
	}

	return &Responder{
		scorer:      sc,
		gen:         gen,
		timeout:     timeout,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Respond produces a reply for turnText and returns it with the scam
// score computed for the turn. The incoming turn is scored only when the
// caller plays the scammer; when the caller plays the victim the AI is
// the attacker and the score is forced to 0.0. Generation is a single
// bounded attempt; any failure degrades silently to the fallback reply.
func (r *Responder) Respond(ctx context.Context, turnText string, role domain.Role, history []domain.Turn) (string, float64) {
	var score float64
	if role == domain.RoleScammer {
		score = r.scorer.Score(turnText).Score
	}

	if r.gen == nil {
		return r.fallback(turnText, score, role), score
	}

	req := &domain.GenerationRequest{
		Messages:    buildPrompt(strategy.Directive(score, role), history, turnText),
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
	}

	genCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := r.gen.Complete(genCtx, req)
	if err != nil {
		slog.Warn("reply generation failed, using fallback", "error", err)
		return r.fallback(turnText, score, role), score
	}

	return strings.TrimSpace(reply), score
}

// buildPrompt assembles the chat prompt: directive, the most recent
// history turns and the current turn as the final user message. Turns
// with unrecognized speaker tags are dropped.
func buildPrompt(directive string, history []domain.Turn, turnText string) []domain.PromptMessage {
	msgs := make([]domain.PromptMessage, 0, historyWindow+2)
	msgs = append(msgs, domain.PromptMessage{Role: domain.PromptRoleSystem, Content: directive})

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	for _, turn := range recent {
		switch turn.Speaker {
		case domain.SpeakerCaller:
			msgs = append(msgs, domain.PromptMessage{Role: domain.PromptRoleUser, Content: turn.Text})
		case domain.SpeakerAI:
			msgs = append(msgs, domain.PromptMessage{Role: domain.PromptRoleAssistant, Content: turn.Text})
		}
	}

	return append(msgs, domain.PromptMessage{Role: domain.PromptRoleUser, Content: turnText})
}

// fallback picks a scripted reply by simple substring checks on the
// incoming turn, mirroring the live strategy of each role.
func (r *Responder) fallback(turnText string, score float64, role domain.Role) string {
	if role == domain.RoleVictim {
		switch {
		case strings.Contains(turnText, "계좌") || strings.Contains(turnText, "비밀번호"):
			return mockVictimCredentials
		case strings.Contains(turnText, "확인") || strings.Contains(turnText, "의심"):
			return mockVictimPressure
		default:
			return mockVictimOpening
		}
	}

	switch {
	case score > 0.7:
		return mockScammerStall
	case strings.Contains(turnText, "계좌") || strings.Contains(turnText, "송금"):
		return mockScammerRefuse
	default:
		return mockScammerAck
	}
}
