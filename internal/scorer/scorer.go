// Package scorer maps call text to a normalized scam risk score.
package scorer

import (
	"math"
	"strings"

	"github.com/fiveshield/shieldcall/internal/catalog"
	"github.com/fiveshield/shieldcall/internal/domain"
)

// perKeywordIncrement is the raw score added per matched keyword before
// the category weight is applied.
const perKeywordIncrement = 0.1

// Scorer computes scam scores from the pattern catalog. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	categories []catalog.Category
}

// New creates a scorer backed by the static pattern catalog.
func New() *Scorer {
	return &Scorer{categories: catalog.Categories()}
}

// Score analyzes text and returns a normalized scam score in [0.0, 1.0],
// rounded to two decimals, with a per-category match breakdown. Empty
// text scores 0.0 with no matches. The function is pure: repeated calls
// with the same input yield the same result.
func (s *Scorer) Score(text string) domain.ScoreResult {
	if text == "" {
		return domain.ScoreResult{}
	}

	// Lowercasing is a no-op for Hangul but keeps mixed-language input
	// consistent. Keywords are compared as written in the catalog.
	lowered := strings.ToLower(text)

	var result domain.ScoreResult
	for _, cat := range s.categories {
		var matched []string
		for _, kw := range cat.Keywords {
			if strings.Contains(lowered, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) == 0 {
			continue
		}

		raw := float64(len(matched)) * perKeywordIncrement
		contribution := math.Min(raw, 1.0) * cat.Weight

		result.Score += contribution
		result.Matches = append(result.Matches, domain.CategoryMatch{
			Category: cat.ID,
			Keywords: matched,
			Score:    contribution,
		})
	}

	result.Score = round2(math.Min(result.Score, 1.0))
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
