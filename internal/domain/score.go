package domain

// ScoreResult is the output of scoring a piece of text for scam
// indicators. Score is normalized to [0.0, 1.0] and rounded to two
// decimal places.
type ScoreResult struct {
	Score   float64         `json:"score"`
	Matches []CategoryMatch `json:"matches,omitempty"`
}

// CategoryMatch records which keywords of a catalog category were found
// in the text and the weighted contribution of the category to the total.
type CategoryMatch struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Score    float64  `json:"score"`
}
