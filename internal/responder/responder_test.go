package responder

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fiveshield/shieldcall/internal/domain"
	"github.com/fiveshield/shieldcall/internal/scorer"
	"github.com/fiveshield/shieldcall/internal/strategy"
)

// fakeGenerator records the request it receives and returns a canned
// reply or error.
type fakeGenerator struct {
	reply string
	err   error
	got   *domain.GenerationRequest
}

func (f *fakeGenerator) Complete(ctx context.Context, req *domain.GenerationRequest) (string, error) {
	f.got = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestResponder(gen domain.Generator) *Responder {
	return New(scorer.New(), gen, domain.GeneratorConfig{
		Timeout:     5,
		Temperature: 0.8,
		MaxTokens:   200,
	})
}

func TestRespondWithGenerator(t *testing.T) {
	gen := &fakeGenerator{reply: "  네, 어떤 일로 전화주셨나요?  "}
	r := newTestResponder(gen)

	reply, score := r.Respond(context.Background(), "안녕하세요", domain.RoleScammer, nil)

	if reply != "네, 어떤 일로 전화주셨나요?" {
		t.Errorf("expected trimmed generator reply, got %q", reply)
	}
	if score != 0.0 {
		t.Errorf("expected score 0.0 for benign text, got %.2f", score)
	}

	if gen.got == nil {
		t.Fatal("generator was not invoked")
	}
	if gen.got.Temperature != 0.8 {
		t.Errorf("expected temperature 0.8, got %.2f", gen.got.Temperature)
	}
	if gen.got.MaxTokens != 200 {
		t.Errorf("expected max tokens 200, got %d", gen.got.MaxTokens)
	}
}

func TestRespondScoresOnlyScammerRole(t *testing.T) {
	text := "지금 당장 계좌번호를 알려주세요, 법적 조치가 있을 수 있습니다"

	r := newTestResponder(&fakeGenerator{reply: "ok"})

	_, scammerScore := r.Respond(context.Background(), text, domain.RoleScammer, nil)
	if scammerScore == 0.0 {
		t.Error("expected non-zero score for scammer role")
	}

	gen := &fakeGenerator{reply: "ok"}
	r = newTestResponder(gen)

	_, victimScore := r.Respond(context.Background(), text, domain.RoleVictim, nil)
	if victimScore != 0.0 {
		t.Errorf("expected forced 0.0 score for victim role, got %.2f", victimScore)
	}

	// With a zero score the victim directive must be the neutral one.
	wantDirective := strategy.Directive(0.0, domain.RoleVictim)
	if gen.got.Messages[0].Content != wantDirective {
		t.Error("victim prompt did not carry the neutral directive")
	}
}

func TestRespondPromptShape(t *testing.T) {
	history := []domain.Turn{
		{Speaker: domain.SpeakerCaller, Text: "첫번째"},
		{Speaker: domain.SpeakerAI, Text: "두번째"},
		{Speaker: "operator", Text: "무시됨"},
	}

	gen := &fakeGenerator{reply: "ok"}
	r := newTestResponder(gen)

	r.Respond(context.Background(), "현재 발화", domain.RoleScammer, history)

	msgs := gen.got.Messages
	// system directive + 2 recognized turns + current turn
	if len(msgs) != 4 {
		t.Fatalf("expected 4 prompt messages, got %d", len(msgs))
	}

	if msgs[0].Role != domain.PromptRoleSystem {
		t.Errorf("expected system message first, got %s", msgs[0].Role)
	}
	if msgs[1].Role != domain.PromptRoleUser || msgs[1].Content != "첫번째" {
		t.Errorf("caller turn mapped wrong: %+v", msgs[1])
	}
	if msgs[2].Role != domain.PromptRoleAssistant || msgs[2].Content != "두번째" {
		t.Errorf("ai turn mapped wrong: %+v", msgs[2])
	}
	if msgs[3].Role != domain.PromptRoleUser || msgs[3].Content != "현재 발화" {
		t.Errorf("current turn mapped wrong: %+v", msgs[3])
	}
}

func TestRespondHistoryWindow(t *testing.T) {
	var history []domain.Turn
	for i := 0; i < 15; i++ {
		history = append(history, domain.Turn{
			Speaker: domain.SpeakerCaller,
			Text:    fmt.Sprintf("turn-%d", i),
		})
	}

	gen := &fakeGenerator{reply: "ok"}
	r := newTestResponder(gen)

	r.Respond(context.Background(), "현재 발화", domain.RoleScammer, history)

	msgs := gen.got.Messages
	// system + last 10 + current
	if len(msgs) != 12 {
		t.Fatalf("expected 12 prompt messages, got %d", len(msgs))
	}
	if msgs[1].Content != "turn-5" {
		t.Errorf("expected window to start at turn-5, got %q", msgs[1].Content)
	}
	if msgs[10].Content != "turn-14" {
		t.Errorf("expected window to end at turn-14, got %q", msgs[10].Content)
	}
}

func TestRespondFallbackWithoutGenerator(t *testing.T) {
	r := newTestResponder(nil)

	tests := []struct {
		name string
		text string
		role domain.Role
		want string
	}{
		{"ScammerAccountRequest", "계좌 번호 알려주세요", domain.RoleScammer, mockScammerRefuse},
		{"ScammerPlain", "안녕하세요", domain.RoleScammer, mockScammerAck},
		{"VictimCredentials", "비밀번호가 필요합니다", domain.RoleVictim, mockVictimCredentials},
		{"VictimSuspicion", "확인해보겠습니다", domain.RoleVictim, mockVictimPressure},
		{"VictimPlain", "여보세요", domain.RoleVictim, mockVictimOpening},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, _ := r.Respond(context.Background(), tt.text, tt.role, nil)
			if reply != tt.want {
				t.Errorf("expected %q, got %q", tt.want, reply)
			}
		})
	}
}

func TestRespondFallbackStallsOnHighScore(t *testing.T) {
	r := newTestResponder(nil)

	// Above the 0.7 stall threshold: authority 8 + personal 7 +
	// account 6 + urgency 5 keyword matches.
	text := "검찰청 경찰청 법원 국세청 금융감독원 검사 공무원 " +
		"주민등록번호 주민번호 신분증 비밀번호 카드번호 카드 비밀번호 인증번호 " +
		"계좌번호 송금 이체 입금 임시계좌 " +
		"지금 바로 즉시 긴급 마감 늦으면 체포"

	reply, score := r.Respond(context.Background(), text, domain.RoleScammer, nil)
	if score <= 0.7 {
		t.Fatalf("expected score above 0.7, got %.2f", score)
	}
	if reply != mockScammerStall {
		t.Errorf("expected stalling reply, got %q", reply)
	}
}

func TestRespondGeneratorErrorFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream unavailable")}
	r := newTestResponder(gen)

	reply, score := r.Respond(context.Background(), "계좌 이체 부탁드립니다", domain.RoleScammer, nil)

	if reply != mockScammerRefuse {
		t.Errorf("expected fallback reply on generator error, got %q", reply)
	}
	if score == 0.0 {
		t.Error("expected score to survive generator failure")
	}
}
