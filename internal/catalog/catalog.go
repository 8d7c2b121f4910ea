// Package catalog defines the static scam pattern catalog.
//
// The catalog is an ordered list of immutable category records. Consumers
// iterate it generically, so adding a category requires no scorer or
// report changes.
package catalog

// Category is a named group of scam keywords with a scoring weight.
type Category struct {
	ID       string
	Label    string
	Keywords []string
	Weight   float64
}

// Category identifiers.
const (
	AuthorityImpersonation = "authority_impersonation"
	UrgencyPressure        = "urgency_pressure"
	AccountRequest         = "account_request"
	PersonalInfoRequest    = "personal_info_request"
	Threat                 = "threat"
)

// LabelOther classifies conversations that match no catalog category.
const LabelOther = "other"

// The keyword corpus is Korean voice-phishing domain vocabulary.
// Matching is substring containment against lowercased text, so partial
// matches across categories are expected (e.g. "계좌 동결" also matches
// the account category's "계좌").
var categories = []Category{
	{
		ID:    AuthorityImpersonation,
		Label: "authority impersonation",
		Keywords: []string{
			"검찰청", "경찰청", "법원", "국세청", "금융감독원",
			"검사", "경찰", "공무원",
		},
		Weight: 0.30,
	},
	{
		ID:    UrgencyPressure,
		Label: "urgency pressure",
		Keywords: []string{
			"지금 바로", "즉시", "긴급", "당장", "지금 당장",
			"시간 없습니다", "늦으면", "마감", "오늘 안에",
		},
		Weight: 0.20,
	},
	{
		ID:    AccountRequest,
		Label: "account request",
		Keywords: []string{
			"계좌번호", "계좌", "송금", "이체", "입금",
			"안전계좌", "보호계좌", "임시계좌",
		},
		Weight: 0.25,
	},
	{
		ID:    PersonalInfoRequest,
		Label: "personal info request",
		Keywords: []string{
			"주민등록번호", "주민번호", "신분증", "비밀번호",
			"카드번호", "카드 비밀번호", "OTP", "인증번호",
		},
		Weight: 0.30,
	},
	{
		ID:    Threat,
		Label: "threat",
		Keywords: []string{
			"체포", "구속", "수사", "소환", "압수수색",
			"계좌 동결", "자산 압류", "법적 조치",
		},
		Weight: 0.35,
	},
}

// Categories returns the catalog in definition order.
func Categories() []Category {
	result := make([]Category, len(categories))
	copy(result, categories)
	return result
}
