package actions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayambakarnusantara/action-server/internal/models"
)

func TestAddRatingRequiresLogin(t *testing.T) {
	a := &AddRating{products: &fakeProducts{}, ratings: &fakeRatings{}, log: testLog}
	d := &Dispatcher{}

	events := a.Run(context.Background(), d, trackerWithSlots(map[string]any{
		"product_id":   float64(1),
		"rating_value": float64(5),
	}))

	require.Len(t, events, 1)
	assert.Equal(t, Followup("utter_redirect_login"), events[0])
	assert.Equal(t, []string{"utter_login_required"}, templates(d))
}

func TestAddRatingRejectsOutOfRangeValue(t *testing.T) {
	upserted := false
	ratings := &fakeRatings{
		upsert: func(int64, int64, int, *string) error {
			upserted = true
			return nil
		},
	}
	a := &AddRating{products: &fakeProducts{}, ratings: ratings, log: testLog}

	for _, value := range []float64{0, 6} {
		d := &Dispatcher{}
		events := a.Run(context.Background(), d, trackerWithSlots(map[string]any{
			"user_id":      float64(7),
			"product_id":   float64(1),
			"rating_value": value,
		}))
		assert.Empty(t, events)
		assert.Contains(t, allText(d), "antara 1 sampai 5")
	}
	assert.False(t, upserted, "invalid values must never reach the store")
}

func TestAddRatingWithoutCommentBranchesToFollowup(t *testing.T) {
	products := &fakeProducts{
		byID: func(id int64) (*models.ProductDetail, error) {
			return testDetail(1, "Ayam Bakar"), nil
		},
	}
	var gotComment *string
	ratings := &fakeRatings{
		upsert: func(userID, productID int64, value int, comment *string) error {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, int64(1), productID)
			assert.Equal(t, 5, value)
			gotComment = comment
			return nil
		},
	}
	a := &AddRating{products: products, ratings: ratings, log: testLog}
	d := &Dispatcher{}

	events := a.Run(context.Background(), d, trackerWithSlots(map[string]any{
		"user_id":      float64(7),
		"product_id":   float64(1),
		"rating_value": float64(5),
	}))

	assert.Nil(t, gotComment)
	require.Len(t, events, 3)
	assert.Equal(t, Followup("utter_ask_rating_comment"), events[2])
	assert.Contains(t, allText(d), "⭐⭐⭐⭐⭐")
}

func TestAddRatingWithCommentThanksForReview(t *testing.T) {
	products := &fakeProducts{
		byID: func(id int64) (*models.ProductDetail, error) {
			return testDetail(1, "Ayam Bakar"), nil
		},
	}
	ratings := &fakeRatings{
		upsert: func(_, _ int64, _ int, comment *string) error {
			require.NotNil(t, comment)
			assert.Equal(t, "Enak banget!", *comment)
			return nil
		},
	}
	a := &AddRating{products: products, ratings: ratings, log: testLog}
	d := &Dispatcher{}

	events := a.Run(context.Background(), d, trackerWithSlots(map[string]any{
		"user_id":        float64(7),
		"product_id":     float64(1),
		"rating_value":   float64(4),
		"rating_comment": "Enak banget!",
	}))

	require.Len(t, events, 4)
	assert.Equal(t, Followup("action_thank_for_review"), events[3])
	assert.Contains(t, allText(d), "Ulasan Anda")
}

func TestAddRatingUnknownProduct(t *testing.T) {
	a := &AddRating{products: &fakeProducts{}, ratings: &fakeRatings{}, log: testLog}
	d := &Dispatcher{}

	events := a.Run(context.Background(), d, trackerWithSlots(map[string]any{
		"user_id":      float64(7),
		"product_id":   float64(99),
		"rating_value": float64(5),
	}))

	assert.Empty(t, events)
	assert.Contains(t, allText(d), "produk dengan ID 99 tidak ditemukan")
}

func TestShowUserRatingsRequiresLogin(t *testing.T) {
	a := &ShowUserRatings{ratings: &fakeRatings{}, log: testLog}
	d := &Dispatcher{}

	events := a.Run(context.Background(), d, trackerWithSlots(map[string]any{}))
	require.Len(t, events, 1)
	assert.Equal(t, Followup("utter_redirect_login"), events[0])
}

func TestShowUserRatingsListsHistory(t *testing.T) {
	comment := "Mantap"
	ratings := &fakeRatings{
		userRatings: func(userID int64) ([]models.UserRating, error) {
			assert.Equal(t, int64(7), userID)
			return []models.UserRating{{
				Value:       5,
				Comment:     &comment,
				ProductName: "Ayam Bakar",
				ShopName:    "Warung Nusantara",
				CreatedAt:   time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
			}}, nil
		},
	}
	a := &ShowUserRatings{ratings: ratings, log: testLog}
	d := &Dispatcher{}

	events := a.Run(context.Background(), d,
		trackerWithSlots(map[string]any{"user_id": float64(7)}))

	require.Len(t, events, 1)
	assert.Equal(t, Followup("utter_ask_more_help"), events[0])
	text := allText(d)
	assert.Contains(t, text, "Ayam Bakar")
	assert.Contains(t, text, "Mantap")
	assert.Contains(t, text, "20 May 2025")
}

func TestShowUserRatingsEmptyHistory(t *testing.T) {
	a := &ShowUserRatings{ratings: &fakeRatings{}, log: testLog}
	d := &Dispatcher{}

	events := a.Run(context.Background(), d,
		trackerWithSlots(map[string]any{"user_id": float64(7)}))

	require.Len(t, events, 1)
	assert.Contains(t, allText(d), "belum memberikan rating")
}
