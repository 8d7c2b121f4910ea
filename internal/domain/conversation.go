// Package domain defines the core types and interfaces for Shieldcall.
package domain

// Role determines which party the AI impersonates during a decoy call.
type Role string

const (
	// RoleScammer means the human caller plays the phisher,
	// so the AI answers as the potential victim. This is the default.
	RoleScammer Role = "scammer"

	// RoleVictim means the human caller plays the potential victim,
	// so the AI answers as the caller attempting phishing.
	RoleVictim Role = "victim"
)

// ParseRole maps a request string to a Role, defaulting to RoleScammer.
func ParseRole(s string) Role {
	if s == string(RoleVictim) {
		return RoleVictim
	}
	return RoleScammer
}

// Speaker tags recognized in conversation history.
const (
	SpeakerCaller = "caller"
	SpeakerAI     = "ai"
)

// Turn is one utterance in a decoy conversation. Turns are produced by
// the client and consumed read-only.
type Turn struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}
