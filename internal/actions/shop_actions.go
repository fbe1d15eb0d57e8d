package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/catalog"
)

const shopDisplayLimit = 5

// catalogFailureMessage picks the user-facing line for a remote catalog
// failure. The server's own message wins when the envelope carried one;
// subject names the service in the generic lines ("toko", "produk").
func catalogFailureMessage(err error, subject string) string {
	var apiErr *catalog.APIError
	switch {
	case errors.As(err, &apiErr):
		return fmt.Sprintf("Info dari server: %s", apiErr.Message)
	case errors.Is(err, catalog.ErrUnavailable):
		return fmt.Sprintf("Maaf, tidak dapat terhubung ke layanan %s. Periksa koneksi Anda.", subject)
	case errors.Is(err, catalog.ErrBadStatus):
		return fmt.Sprintf("Maaf, gagal mengambil data %s dari server.", subject)
	case errors.Is(err, catalog.ErrBadPayload):
		return fmt.Sprintf("Maaf, ada masalah dengan format data dari layanan %s.", subject)
	default:
		return fmt.Sprintf("Maaf, terjadi kesalahan yang tidak terduga saat memproses permintaan %s Anda.", subject)
	}
}

// SearchShopAPI lists shops from the storefront's public API, optionally
// filtered by the shop_name entity. Each catalog failure class gets its own
// user-facing message.
type SearchShopAPI struct {
	directory ShopDirectory
	log       *zap.SugaredLogger
}

func (a *SearchShopAPI) Name() string { return "action_search_shop_api" }

func (a *SearchShopAPI) Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event {
	name, _ := t.Entity("shop_name")

	searchContext := "semua toko yang tersedia"
	if name != "" {
		searchContext = fmt.Sprintf("dengan nama '%s'", name)
	}

	shops, err := a.directory.SearchShops(ctx, name)
	if err != nil {
		a.log.Warnw("shop directory lookup failed", "name", name, "error", err)
		d.Say(catalogFailureMessage(err, "toko"))
		return nil
	}

	if len(shops) == 0 {
		d.Say(fmt.Sprintf("Tidak ada toko yang ditemukan %s.", searchContext))
		return nil
	}

	display := shops
	if len(display) > shopDisplayLimit {
		display = display[:shopDisplayLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Berikut toko yang kami temukan %s:\n", searchContext)
	for _, shop := range display {
		fmt.Fprintf(&b, "\n- **%s**\n", shop.Name)
		if shop.Address != "" {
			fmt.Fprintf(&b, "  Alamat: %s\n", shop.Address)
		}
		fmt.Fprintf(&b, "  Pemilik: %s\n", shop.OwnerName)
		if shop.Description != "" {
			fmt.Fprintf(&b, "  Deskripsi: %s\n", shop.Description)
		}
		if shop.BannerImageURL != nil {
			fmt.Fprintf(&b, "  Banner: %s\n", *shop.BannerImageURL)
		}
	}
	if len(shops) > shopDisplayLimit {
		fmt.Fprintf(&b, "\nDan %d toko lainnya.", len(shops)-shopDisplayLimit)
	}
	d.Say(b.String())

	return nil
}
