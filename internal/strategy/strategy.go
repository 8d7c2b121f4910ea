// Package strategy selects the behavioral directive that conditions the
// tone of a generated reply.
package strategy

import (
	"github.com/fiveshield/shieldcall/internal/domain"
)

// Score thresholds for the directive ladder.
const (
	highRiskThreshold = 0.7
	cautionThreshold  = 0.4
)

// The directive texts are constant data: multi-line Korean system
// instructions handed to the generator as-is.
const (
	// AI plays the phisher, counterpart is already suspicious.
	victimAggressive = `당신은 피싱 전화를 거는 사기범입니다. 상대방이 의심하고 거부하면:
1. 더 강하게 압박합니다
2. 긴급성을 강조합니다 ("지금 당장", "시간이 없습니다")
3. 법적 위협을 사용합니다 ("법적 책임", "계좌 동결")
4. 권위를 사칭합니다 ("금융감독원", "검찰청")
5. 개인정보(계좌번호, 비밀번호)를 요구합니다
자연스럽지만 교묘하게 피싱을 시도하세요. 짧고 간결하게 응답하세요.`

	// AI plays a plain caller.
	victimNeutral = `당신은 전화를 거는 사람입니다. 상대방의 반응에 따라:
1. 정중하게 대화합니다
2. 목적을 명확히 전달합니다
3. 자연스럽게 대화합니다
짧고 간결하게 응답하세요.`

	// AI plays the potential victim, stalling a likely phisher.
	scammerStalling = `당신은 전화를 받는 일반인입니다. 상대방이 의심스러운 요구를 하면:
1. 시간을 끌면서 정보를 주지 않습니다
2. "확인해보고 다시 연락드리겠습니다"라고 말합니다
3. 개인정보는 절대 제공하지 않습니다
4. 자연스럽고 정중하게 대화하되, 결단력 있게 거절합니다
5. 당황하거나 헷갈리는 척하면서 시간을 끕니다
짧고 간결하게 응답하세요.`

	// AI plays the potential victim, caller looks dubious.
	scammerCautious = `당신은 전화를 받는 일반인입니다. 상대방의 요구에 대해:
1. 신중하게 대응합니다
2. 확인이 필요하다고 말합니다
3. 개인정보는 신중하게 다룹니다
자연스럽고 정중하게 대화하세요.`

	// AI plays the potential victim on a normal business call.
	scammerCooperative = `당신은 전화를 받는 일반인입니다. 정상적인 업무 전화에 대해:
1. 정중하고 친절하게 응답합니다
2. 필요한 정보를 확인합니다
3. 자연스럽게 대화합니다
짧고 간결하게 응답하세요.`
)

// Directive returns the system instruction for the downstream generator
// given the turn's scam score and the caller's role. The branch structure
// is the contract: victim has 2 score bands, scammer has 3, for 5
// distinct directives in total.
func Directive(score float64, role domain.Role) string {
	if role == domain.RoleVictim {
		if score > highRiskThreshold {
			return victimAggressive
		}
		return victimNeutral
	}

	switch {
	case score > highRiskThreshold:
		return scammerStalling
	case score > cautionThreshold:
		return scammerCautious
	default:
		return scammerCooperative
	}
}
