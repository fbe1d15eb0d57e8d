package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/database"
	"github.com/ayambakarnusantara/action-server/internal/models"
)

// AddRating records a logged-in user's rating of a product. A rating with a
// comment closes with a thank-you; one without branches into the comment
// follow-up question.
type AddRating struct {
	products ProductStore
	ratings  RatingStore
	log      *zap.SugaredLogger
}

func (a *AddRating) Name() string { return "action_add_rating" }

func (a *AddRating) Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event {
	userID, loggedIn := t.SlotInt64("user_id")
	if !loggedIn {
		d.Utter("utter_login_required")
		return []Event{Followup("utter_redirect_login")}
	}

	productID, ok := t.SlotOrEntityInt64("product_id")
	if !ok {
		d.Utter("utter_ask_product_id")
		return nil
	}

	value, ok := ratingValue(t)
	if !ok {
		d.Utter("utter_ask_rating_value")
		return nil
	}
	if !models.ValidRatingValue(value) {
		d.Say("Rating harus bernilai antara 1 sampai 5. Silakan berikan rating yang valid.")
		return nil
	}

	var comment *string
	if c, ok := t.SlotString("rating_comment"); ok {
		comment = &c
	}

	product, err := a.products.GetProductByID(ctx, productID)
	if errors.Is(err, database.ErrNotFound) {
		d.Say(fmt.Sprintf("Maaf, produk dengan ID %d tidak ditemukan.", productID))
		return nil
	}
	if err != nil {
		a.log.Errorw("product lookup for rating failed", "product_id", productID, "error", err)
		d.Say("Maaf, terjadi kesalahan saat menyimpan rating. Silakan coba lagi nanti.")
		return nil
	}

	if err := a.ratings.UpsertProductRating(ctx, userID, productID, value, comment); err != nil {
		a.log.Errorw("saving rating failed",
			"user_id", userID, "product_id", productID, "error", err)
		d.Say("Maaf, terjadi kesalahan saat menyimpan rating Anda. Silakan coba lagi nanti.")
		return nil
	}

	message := fmt.Sprintf("Terima kasih! Anda telah memberikan rating %s untuk produk *%s*.",
		stars(value), product.Name)

	if comment != nil {
		message += fmt.Sprintf("\n\nUlasan Anda: \"%s\"", *comment)
		d.Say(message)
		return []Event{
			SlotSet("rating_value", nil),
			SlotSet("rating_comment", nil),
			SlotSet("conversation_stage", "post_rating"),
			Followup("action_thank_for_review"),
		}
	}

	d.Say(message)
	return []Event{
		SlotSet("rating_value", nil),
		SlotSet("conversation_stage", "post_rating"),
		Followup("utter_ask_rating_comment"),
	}
}

// ratingValue reads the rating from the slot or the latest entity.
func ratingValue(t *Tracker) (int, bool) {
	if v, ok := t.SlotInt64("rating_value"); ok {
		return int(v), true
	}
	if v, ok := t.EntityInt64("rating_value"); ok {
		return int(v), true
	}
	return 0, false
}

// ThankForReview closes the rating flow.
type ThankForReview struct{}

func (a *ThankForReview) Name() string { return "action_thank_for_review" }

func (a *ThankForReview) Run(_ context.Context, d *Dispatcher, _ *Tracker) []Event {
	d.Utter("utter_thank_for_review")
	return []Event{Followup("utter_ask_more_help")}
}

// ShowUserRatings lists every rating the logged-in user has written.
type ShowUserRatings struct {
	ratings RatingStore
	log     *zap.SugaredLogger
}

func (a *ShowUserRatings) Name() string { return "action_show_user_ratings" }

func (a *ShowUserRatings) Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event {
	userID, loggedIn := t.SlotInt64("user_id")
	if !loggedIn {
		d.Utter("utter_login_required")
		return []Event{Followup("utter_redirect_login")}
	}

	ratings, err := a.ratings.GetUserRatings(ctx, userID, searchLimit, 0)
	if err != nil {
		a.log.Errorw("listing user ratings failed", "user_id", userID, "error", err)
		d.Say("Maaf, terjadi kesalahan saat mengambil data rating Anda. Silakan coba lagi nanti.")
		return nil
	}
	if len(ratings) == 0 {
		d.Say("Anda belum memberikan rating untuk produk apapun.")
		return []Event{Followup("utter_ask_more_help")}
	}

	var b strings.Builder
	b.WriteString("📊 *Rating yang Anda Berikan*\n\n")
	for i, r := range ratings {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, r.ProductName)
		fmt.Fprintf(&b, "   %s\n", stars(r.Value))
		if r.Comment != nil {
			fmt.Fprintf(&b, "   \"%s\"\n", *r.Comment)
		}
		fmt.Fprintf(&b, "   🏪 Toko: %s\n", r.ShopName)
		fmt.Fprintf(&b, "   📅 %s\n\n", formatDate(r.CreatedAt))
	}
	d.Say(b.String())

	return []Event{Followup("utter_ask_more_help")}
}
