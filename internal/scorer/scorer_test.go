package scorer

import (
	"testing"

	"github.com/fiveshield/shieldcall/internal/catalog"
	"github.com/fiveshield/shieldcall/internal/domain"
)

func TestScoreEmpty(t *testing.T) {
	s := New()

	result := s.Score("")
	if result.Score != 0.0 {
		t.Errorf("expected score 0.0 for empty text, got %.2f", result.Score)
	}
	if len(result.Matches) != 0 {
		t.Errorf("expected no matches for empty text, got %d", len(result.Matches))
	}
}

func TestScore(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{
			name: "NoKeywords",
			text: "안녕하세요 잘 지내셨어요",
			want: 0.0,
		},
		{
			// 1 authority match: 0.1 * 0.30
			name: "SingleKeyword",
			text: "검찰청에서 연락드렸습니다",
			want: 0.03,
		},
		{
			// urgency 당장+지금 당장 (0.04), account 계좌번호+계좌 (0.05),
			// threat 법적 조치 (0.035) -> 0.125 rounds to 0.13
			name: "MixedCategories",
			text: "지금 당장 계좌번호를 알려주세요, 법적 조치가 있을 수 있습니다",
			want: 0.13,
		},
		{
			// authority 8 (0.24) + personal 7 (0.21) + account 6 (0.15)
			// + urgency 5 (0.10)
			name: "HighRiskBoundary",
			text: "검찰청 경찰청 법원 국세청 금융감독원 검사 공무원 " +
				"주민등록번호 주민번호 신분증 비밀번호 카드번호 카드 비밀번호 인증번호 " +
				"계좌번호 송금 이체 입금 임시계좌 " +
				"지금 바로 즉시 긴급 마감 늦으면",
			want: 0.70,
		},
		{
			// authority 8 (0.24) + account 4 (0.10) + urgency 3 (0.06)
			name: "SuspiciousBoundary",
			text: "검찰청 경찰청 법원 국세청 금융감독원 검사 공무원 " +
				"계좌번호 송금 이체 즉시 긴급 마감",
			want: 0.40,
		},
		{
			// personal 6 (0.18) + account 6 (0.15) + urgency 3 (0.06)
			name: "JustBelowSuspicious",
			text: "주민등록번호 주민번호 신분증 비밀번호 카드번호 인증번호 " +
				"계좌번호 송금 이체 입금 임시계좌 즉시 긴급 마감",
			want: 0.39,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Score(tt.text)
			if result.Score != tt.want {
				t.Errorf("expected score %.2f, got %.2f", tt.want, result.Score)
			}
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := New()
	text := "지금 당장 계좌번호를 알려주세요"

	first := s.Score(text)
	for i := 0; i < 10; i++ {
		again := s.Score(text)
		if again.Score != first.Score {
			t.Fatalf("score changed across calls: %.2f vs %.2f", first.Score, again.Score)
		}
	}
}

func TestScoreClampedToOne(t *testing.T) {
	s := New()

	// Every keyword in the catalog at once pushes the weighted sum past
	// 1.0, so the total must clamp.
	var text string
	for _, cat := range catalog.Categories() {
		for _, kw := range cat.Keywords {
			text += kw + " "
		}
	}

	result := s.Score(text)
	if result.Score != 1.0 {
		t.Errorf("expected clamped score 1.0, got %.2f", result.Score)
	}
}

func TestScoreMatchBreakdown(t *testing.T) {
	s := New()

	result := s.Score("지금 당장 계좌번호를 알려주세요, 법적 조치가 있을 수 있습니다")

	got := make(map[string]domain.CategoryMatch, len(result.Matches))
	for _, m := range result.Matches {
		got[m.Category] = m
	}

	for _, want := range []string{
		catalog.UrgencyPressure,
		catalog.AccountRequest,
		catalog.Threat,
	} {
		if _, ok := got[want]; !ok {
			t.Errorf("expected a match for category %s", want)
		}
	}

	if _, ok := got[catalog.AuthorityImpersonation]; ok {
		t.Error("unexpected authority match")
	}

	account := got[catalog.AccountRequest]
	if len(account.Keywords) != 2 {
		t.Errorf("expected 2 account keywords (계좌번호 and its 계좌 substring), got %v", account.Keywords)
	}
}

func TestScoreUppercaseKeywordNeverMatches(t *testing.T) {
	s := New()

	// The text is lowercased before matching while keywords are compared
	// as written, so the uppercase OTP keyword cannot match itself.
	result := s.Score("OTP 번호를 알려주세요")
	for _, m := range result.Matches {
		for _, kw := range m.Keywords {
			if kw == "OTP" {
				t.Error("OTP keyword must not match lowercased text")
			}
		}
	}
}
