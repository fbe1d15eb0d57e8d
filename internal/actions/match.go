package actions

import (
	"strings"

	"github.com/ayambakarnusantara/action-server/internal/models"
)

// matchScore rates how well a product name answers a search term. Exact
// match beats prefix beats substring beats word overlap, with a small bonus
// for well-rated products so ties break toward what buyers liked.
func matchScore(term string, p models.ProductSummary) float64 {
	name := strings.ToLower(p.Name)
	query := strings.ToLower(term)

	var score float64
	switch {
	case name == query:
		score = 100
	case strings.HasPrefix(name, query):
		score = 80
	case strings.Contains(name, query):
		score = 60
	default:
		queryWords := strings.Fields(query)
		nameWords := strings.Fields(name)
		matching := 0
		for _, qw := range queryWords {
			for _, nw := range nameWords {
				if strings.Contains(nw, qw) {
					matching++
					break
				}
			}
		}
		if len(queryWords) > 0 {
			score = float64(matching) / float64(len(queryWords)) * 50
		}
	}

	if p.AverageRating != nil {
		bonus := *p.AverageRating * 2
		if bonus > 10 {
			bonus = 10
		}
		score += bonus
	}
	return score
}

// bestMatch picks the candidate with the highest match score, or nil for an
// empty candidate list.
func bestMatch(term string, candidates []models.ProductSummary) *models.ProductSummary {
	var best *models.ProductSummary
	bestScore := -1.0
	for i := range candidates {
		if score := matchScore(term, candidates[i]); score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}
	return best
}
