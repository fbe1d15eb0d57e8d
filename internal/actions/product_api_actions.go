package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/catalog"
)

const productDisplayLimit = 5

// SearchProductAPI reads products from the storefront's public API instead
// of the chatbot database. With a product_id slot or entity it fetches that
// one product; otherwise it searches by the product entity, listing
// everything when no term was given.
type SearchProductAPI struct {
	directory ShopDirectory
	log       *zap.SugaredLogger
}

func (a *SearchProductAPI) Name() string { return "action_search_product_api" }

func (a *SearchProductAPI) Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event {
	if id, ok := t.SlotOrEntityInt64("product_id"); ok {
		a.showOne(ctx, d, id)
		return nil
	}

	term, _ := t.Entity("product")

	searchContext := "semua produk yang tersedia"
	if term != "" {
		searchContext = fmt.Sprintf("dengan nama '%s'", term)
	}

	products, err := a.directory.SearchProducts(ctx, term)
	if err != nil {
		a.log.Warnw("product catalog lookup failed", "term", term, "error", err)
		d.Say(catalogFailureMessage(err, "produk"))
		return nil
	}

	if len(products) == 0 {
		d.Say(fmt.Sprintf("Tidak ada produk yang ditemukan %s.", searchContext))
		return nil
	}

	display := products
	if len(display) > productDisplayLimit {
		display = display[:productDisplayLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Berikut produk yang kami temukan %s:\n", searchContext)
	for _, p := range display {
		fmt.Fprintf(&b, "\n- **%s** (%s)\n", p.Name, rupiah(decimal.NewFromFloat(p.Price)))
		fmt.Fprintf(&b, "  Stok: %d | %s\n", p.Stock, apiRatingDisplay(p))
		if p.Category != "" {
			fmt.Fprintf(&b, "  Kategori: %s\n", p.Category)
		}
	}
	if len(products) > productDisplayLimit {
		fmt.Fprintf(&b, "\nDan %d produk lainnya.", len(products)-productDisplayLimit)
	}
	d.Say(b.String())

	return nil
}

func (a *SearchProductAPI) showOne(ctx context.Context, d *Dispatcher, id int64) {
	p, err := a.directory.GetProduct(ctx, id)
	if err != nil {
		a.log.Warnw("product catalog fetch failed", "product_id", id, "error", err)
		d.Say(catalogFailureMessage(err, "produk"))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", p.Name)
	fmt.Fprintf(&b, "Harga: %s\n", rupiah(decimal.NewFromFloat(p.Price)))
	fmt.Fprintf(&b, "Stok: %d\n", p.Stock)
	fmt.Fprintf(&b, "Rating: %s\n", apiRatingDisplay(*p))
	if p.Category != "" {
		fmt.Fprintf(&b, "Kategori: %s\n", p.Category)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Description)
	}
	if p.ImageURL != nil {
		fmt.Fprintf(&b, "\nFoto: %s\n", *p.ImageURL)
	}
	d.Say(b.String())
}

func apiRatingDisplay(p catalog.Product) string {
	if p.RatingCount == 0 {
		return "Belum ada rating"
	}
	return fmt.Sprintf("⭐ %.1f (%d ulasan)", p.AverageRating, p.RatingCount)
}
