package actions

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayambakarnusantara/action-server/internal/catalog"
)

func TestSearchShopAPIFiltersByName(t *testing.T) {
	directory := &fakeDirectory{
		search: func(name string) ([]catalog.Shop, error) {
			assert.Equal(t, "nusantara", name)
			return []catalog.Shop{{
				Name:      "Warung Nusantara",
				Address:   "Jl. Merdeka 10",
				OwnerName: "Budi",
			}}, nil
		},
	}
	a := &SearchShopAPI{directory: directory, log: testLog}
	d := &Dispatcher{}

	events := a.Run(context.Background(), d,
		trackerWithEntities(Entity{Name: "shop_name", Value: "nusantara"}))

	assert.Empty(t, events)
	text := allText(d)
	assert.Contains(t, text, "dengan nama 'nusantara'")
	assert.Contains(t, text, "**Warung Nusantara**")
	assert.Contains(t, text, "Pemilik: Budi")
}

func TestSearchShopAPIWithoutNameListsAll(t *testing.T) {
	directory := &fakeDirectory{
		search: func(name string) ([]catalog.Shop, error) {
			assert.Empty(t, name)
			return nil, nil
		},
	}
	a := &SearchShopAPI{directory: directory, log: testLog}
	d := &Dispatcher{}

	a.Run(context.Background(), d, trackerWithEntities())
	assert.Contains(t, allText(d), "Tidak ada toko yang ditemukan semua toko yang tersedia")
}

func TestSearchShopAPITruncatesLongLists(t *testing.T) {
	var shops []catalog.Shop
	for i := 0; i < 8; i++ {
		shops = append(shops, catalog.Shop{Name: fmt.Sprintf("Toko %d", i), OwnerName: "X"})
	}
	directory := &fakeDirectory{
		search: func(string) ([]catalog.Shop, error) { return shops, nil },
	}
	a := &SearchShopAPI{directory: directory, log: testLog}
	d := &Dispatcher{}

	a.Run(context.Background(), d, trackerWithEntities())
	text := allText(d)
	assert.Contains(t, text, "Toko 4")
	assert.NotContains(t, text, "Toko 5")
	assert.Contains(t, text, "Dan 3 toko lainnya.")
}

func TestSearchShopAPIErrorClasses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &catalog.APIError{Message: "toko tutup"}, "Info dari server: toko tutup"},
		{"unreachable", catalog.ErrUnavailable, "tidak dapat terhubung ke layanan toko"},
		{"bad status", fmt.Errorf("%w: 502", catalog.ErrBadStatus), "gagal mengambil data toko"},
		{"bad payload", catalog.ErrBadPayload, "format data dari layanan toko"},
		{"unexpected", assert.AnError, "kesalahan yang tidak terduga"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directory := &fakeDirectory{
				search: func(string) ([]catalog.Shop, error) { return nil, tt.err },
			}
			a := &SearchShopAPI{directory: directory, log: testLog}
			d := &Dispatcher{}

			events := a.Run(context.Background(), d, trackerWithEntities())
			assert.Empty(t, events)
			assert.Contains(t, allText(d), tt.want)
		})
	}
}

func TestRegistryWiresEveryAction(t *testing.T) {
	r := NewRegistry(RegistryDeps{
		Products:  &fakeProducts{},
		Ratings:   &fakeRatings{},
		Orders:    &fakeOrders{},
		Shops:     &fakeShops{},
		Directory: &fakeDirectory{search: func(string) ([]catalog.Shop, error) { return nil, nil }},
		Log:       testLog,
	})

	for _, name := range []string{
		"action_product_search",
		"action_product_detail",
		"action_list_top_products",
		"action_list_shop_products",
		"action_check_order_status",
		"action_check_payment_status",
		"action_add_rating",
		"action_thank_for_review",
		"action_show_user_ratings",
		"action_search_shop_api",
		"action_search_product_api",
		"action_acknowledge_affirmation",
		"action_acknowledge_denial",
		"action_redirect_order_page",
	} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, "missing action %s", name)
	}
	require.Len(t, r.Names(), 14)

	_, ok := r.Lookup("action_unknown")
	assert.False(t, ok)
}
