package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayambakarnusantara/action-server/internal/models"
)

func summary(name string, rating *float64) models.ProductSummary {
	return models.ProductSummary{Name: name, AverageRating: rating}
}

func TestMatchScoreOrdersExactOverPrefixOverSubstring(t *testing.T) {
	term := "ayam bakar"

	exact := matchScore(term, summary("Ayam Bakar", nil))
	prefix := matchScore(term, summary("Ayam Bakar Spesial", nil))
	wordOverlap := matchScore(term, summary("Sambal Ayam", nil))

	assert.Greater(t, exact, prefix)
	assert.Greater(t, prefix, wordOverlap)
	assert.Greater(t, wordOverlap, 0.0, "sharing a word still counts")
}

func TestMatchScoreRatingBonusIsCapped(t *testing.T) {
	term := "ayam bakar"
	five := 5.0

	rated := matchScore(term, summary("Ayam Bakar", &five))
	plain := matchScore(term, summary("Ayam Bakar", nil))

	assert.Equal(t, plain+10, rated, "a five-star product earns the full but capped bonus")
}

func TestMatchScoreRatingCannotOutrankBetterName(t *testing.T) {
	term := "ayam bakar"
	five := 5.0

	exactPlain := matchScore(term, summary("Ayam Bakar", nil))
	prefixRated := matchScore(term, summary("Ayam Bakar Spesial", &five))

	assert.Greater(t, exactPlain, prefixRated)
}

func TestBestMatch(t *testing.T) {
	candidates := []models.ProductSummary{
		summary("Sambal Ayam", nil),
		summary("Ayam Bakar Spesial", nil),
		summary("Ayam Bakar", nil),
	}

	best := bestMatch("ayam bakar", candidates)
	require.NotNil(t, best)
	assert.Equal(t, "Ayam Bakar", best.Name)

	assert.Nil(t, bestMatch("ayam bakar", nil))
}
