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

const (
	searchLimit      = 10
	listLimit        = 5
	reviewExcerpts   = 3
	topRatedMinCount = 1
)

// ProductSearch answers "cari <produk>" with a ranked result list.
type ProductSearch struct {
	products ProductStore
	log      *zap.SugaredLogger
}

func (a *ProductSearch) Name() string { return "action_product_search" }

func (a *ProductSearch) Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event {
	term, ok := t.Entity("product")
	if !ok {
		d.Say("Maaf, saya tidak mengerti produk apa yang Anda cari. Bisa berikan nama produknya?")
		return nil
	}

	products, err := a.products.SearchProductsByName(ctx, term, searchLimit, 0)
	if err != nil {
		a.log.Errorw("product search failed", "term", term, "error", err)
		d.Say("Maaf, terjadi kesalahan saat mencari produk. Silakan coba lagi nanti.")
		return nil
	}
	if len(products) == 0 {
		d.Say(fmt.Sprintf("Maaf, saya tidak menemukan produk '%s'. Coba cari dengan kata kunci lain?", term))
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Saya menemukan %d produk untuk '%s':\n\n", len(products), term)
	for i, p := range products {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, p.Name)
		fmt.Fprintf(&b, "   💰 %s\n", rupiah(p.Price))
		fmt.Fprintf(&b, "   📦 Stok: %d\n", p.Stock)
		fmt.Fprintf(&b, "   🏪 Toko: %s\n", p.ShopName)
		fmt.Fprintf(&b, "   %s\n\n", ratingDisplay(p.AverageRating))
	}
	d.Say(b.String())

	return []Event{
		SlotSet("search_results", products),
		Followup("utter_ask_more_help"),
	}
}

// ProductDetail shows one product in full. The product is picked by id when
// one is known, otherwise by name through a widening search: exact name,
// then priority search, then the description-inclusive search, scored for
// the best match.
type ProductDetail struct {
	products ProductStore
	ratings  RatingStore
	log      *zap.SugaredLogger
}

func (a *ProductDetail) Name() string { return "action_product_detail" }

func (a *ProductDetail) Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event {
	productID, haveID := t.SlotOrEntityInt64("product_id")

	var term string
	if !haveID {
		var haveTerm bool
		term, haveTerm = t.Entity("product")
		if !haveTerm {
			d.Say("Maaf, saya tidak tahu produk mana yang ingin Anda lihat detailnya. Bisa sebutkan ID atau nama produknya?")
			return nil
		}
	}

	var product *models.ProductDetail
	var err error
	if haveID {
		product, err = a.products.GetProductByID(ctx, productID)
		if errors.Is(err, database.ErrNotFound) {
			d.Say(fmt.Sprintf("Maaf, saya tidak menemukan produk dengan ID %d.", productID))
			return nil
		}
	} else {
		product, err = a.resolveByName(ctx, term)
		if errors.Is(err, database.ErrNotFound) {
			d.Say(fmt.Sprintf("Maaf, saya tidak menemukan produk yang sesuai dengan '%s'.", term))
			return nil
		}
	}
	if err != nil {
		a.log.Errorw("product detail failed", "error", err)
		d.Say("Maaf, terjadi kesalahan saat mencari detail produk. Silakan coba lagi nanti.")
		return nil
	}

	reviews, err := a.ratings.GetProductRatings(ctx, product.ID, reviewExcerpts, 0)
	if err != nil {
		a.log.Warnw("loading reviews failed", "product_id", product.ID, "error", err)
		reviews = nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", product.Name)
	fmt.Fprintf(&b, "💰 Harga: %s\n", rupiah(product.Price))
	fmt.Fprintf(&b, "📦 Stok: %d\n", product.Stock)
	fmt.Fprintf(&b, "🏪 Toko: %s\n", product.ShopName)
	if product.AverageRating != nil {
		fmt.Fprintf(&b, "⭐ Rating: %.1f/5.0 (%d ulasan)\n\n", *product.AverageRating, product.RatingCount)
	} else {
		b.WriteString("⭐ Belum ada rating\n\n")
	}
	fmt.Fprintf(&b, "📝 *Deskripsi*:\n%s\n\n", product.Description)

	if len(reviews) > 0 {
		b.WriteString("*Ulasan Pembeli*:\n")
		for i, r := range reviews {
			fmt.Fprintf(&b, "%d. ⭐ %d/5 - %s\n", i+1, r.Value, r.Username)
			if r.Comment != nil {
				fmt.Fprintf(&b, "   \"%s\"\n", *r.Comment)
			}
		}
	}
	d.Say(b.String())

	return []Event{
		SlotSet("current_product", product),
		SlotSet("product_id", product.ID),
		Followup("utter_ask_more_help"),
	}
}

// resolveByName widens the search until something matches, then fetches the
// best-scoring candidate in full. database.ErrNotFound means every stage
// came up empty.
func (a *ProductDetail) resolveByName(ctx context.Context, term string) (*models.ProductDetail, error) {
	product, err := a.products.GetProductByName(ctx, term)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	candidates, err := a.products.SearchProductsByName(ctx, term, searchLimit, 0)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		candidates, err = a.products.SearchProductsFull(ctx, term, searchLimit)
		if err != nil {
			return nil, err
		}
	}

	best := bestMatch(term, candidates)
	if best == nil {
		return nil, database.ErrNotFound
	}
	return a.products.GetProductByID(ctx, best.ID)
}

// ListTopProducts shows the best-rated products, falling back to the newest
// when nothing has been rated yet.
type ListTopProducts struct {
	products ProductStore
	log      *zap.SugaredLogger
}

func (a *ListTopProducts) Name() string { return "action_list_top_products" }

func (a *ListTopProducts) Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event {
	top, err := a.products.GetTopRatedProducts(ctx, listLimit, topRatedMinCount)
	if err != nil {
		a.log.Errorw("listing top products failed", "error", err)
		d.Say("Maaf, terjadi kesalahan saat mengambil daftar produk. Silakan coba lagi nanti.")
		return nil
	}

	if len(top) == 0 {
		newest, err := a.products.GetAllProducts(ctx, listLimit, 0, models.SortNewest)
		if err != nil {
			a.log.Errorw("listing newest products failed", "error", err)
			d.Say("Maaf, terjadi kesalahan saat mengambil daftar produk. Silakan coba lagi nanti.")
			return nil
		}
		if len(newest) == 0 {
			d.Say("Maaf, sepertinya belum ada produk yang tersedia saat ini.")
			return nil
		}

		var b strings.Builder
		b.WriteString("Berikut adalah produk terbaru kami:\n\n")
		for i, p := range newest {
			fmt.Fprintf(&b, "%d. *%s*\n", i+1, p.Name)
			fmt.Fprintf(&b, "   💰 %s\n", rupiah(p.Price))
			fmt.Fprintf(&b, "   🏪 Toko: %s\n\n", p.ShopName)
		}
		d.Say(b.String())
		return []Event{
			SlotSet("top_products", newest),
			Followup("utter_ask_more_help"),
		}
	}

	var b strings.Builder
	b.WriteString("Berikut adalah produk dengan rating tertinggi:\n\n")
	for i, p := range top {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, p.Name)
		fmt.Fprintf(&b, "   💰 %s\n", rupiah(p.Price))
		if p.AverageRating != nil {
			fmt.Fprintf(&b, "   ⭐ %.1f/5.0 (%d ulasan)\n", *p.AverageRating, p.RatingCount)
		}
		fmt.Fprintf(&b, "   🏪 Toko: %s\n\n", p.ShopName)
	}
	d.Say(b.String())

	return []Event{
		SlotSet("top_products", top),
		Followup("utter_ask_more_help"),
	}
}

// ListShopProducts shows one shop's products, the shop picked by id or by
// name.
type ListShopProducts struct {
	products ProductStore
	ratings  RatingStore
	shops    ShopStore
	log      *zap.SugaredLogger
}

func (a *ListShopProducts) Name() string { return "action_list_shop_products" }

func (a *ListShopProducts) Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event {
	shopID, haveID := t.SlotOrEntityInt64("shop_id")
	if !haveID {
		name, haveName := t.Entity("shop")
		if !haveName {
			d.Say("Untuk melihat produk dari toko tertentu, saya perlu tahu toko mana yang Anda maksud. Bisa sebutkan nama toko atau ID toko?")
			return nil
		}

		shop, err := a.shops.GetShopByName(ctx, name)
		if errors.Is(err, database.ErrNotFound) {
			d.Say(fmt.Sprintf("Maaf, saya tidak menemukan toko dengan nama '%s'.", name))
			return nil
		}
		if err != nil {
			a.log.Errorw("shop lookup failed", "name", name, "error", err)
			d.Say("Maaf, terjadi kesalahan saat mengambil daftar produk toko. Silakan coba lagi nanti.")
			return nil
		}
		shopID = shop.ID
	}

	products, err := a.products.GetProductsByShop(ctx, shopID, searchLimit, 0)
	if err != nil {
		a.log.Errorw("listing shop products failed", "shop_id", shopID, "error", err)
		d.Say("Maaf, terjadi kesalahan saat mengambil daftar produk toko. Silakan coba lagi nanti.")
		return nil
	}
	if len(products) == 0 {
		d.Say("Maaf, tidak ditemukan produk dari toko ini atau toko yang dimaksud tidak ada.")
		return nil
	}

	shopRating, err := a.ratings.GetShopAverageRating(ctx, shopID)
	if err != nil {
		a.log.Warnw("shop rating lookup failed", "shop_id", shopID, "error", err)
		shopRating = nil
	}

	var b strings.Builder
	b.WriteString("🏪 *Produk dari Toko*\n")
	if shopRating != nil {
		fmt.Fprintf(&b, "⭐ Rating Toko: %.1f/5.0\n\n", *shopRating)
	} else {
		b.WriteString("⭐ Toko belum memiliki rating\n\n")
	}
	for i, p := range products {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, p.Name)
		fmt.Fprintf(&b, "   💰 %s\n", rupiah(p.Price))
		fmt.Fprintf(&b, "   📦 Stok: %d\n", p.Stock)
		fmt.Fprintf(&b, "   %s\n\n", ratingDisplay(p.AverageRating))
	}
	d.Say(b.String())

	return []Event{
		SlotSet("shop_products", products),
		SlotSet("shop_id", shopID),
		Followup("utter_ask_more_help"),
	}
}
