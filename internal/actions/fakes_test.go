package actions

import (
	"context"

	"github.com/ayambakarnusantara/action-server/internal/catalog"
	"github.com/ayambakarnusantara/action-server/internal/database"
	"github.com/ayambakarnusantara/action-server/internal/models"
)

// Function-field fakes. Unset fields report not-found so tests only wire
// what the action under test actually touches.

type fakeProducts struct {
	byID     func(id int64) (*models.ProductDetail, error)
	byName   func(name string) (*models.ProductDetail, error)
	search   func(name string) ([]models.ProductSummary, error)
	full     func(term string) ([]models.ProductSummary, error)
	all      func(sortBy models.ProductSort) ([]models.ProductSummary, error)
	byShop   func(shopID int64) ([]models.ProductSummary, error)
	topRated func() ([]models.ProductSummary, error)
}

func (f *fakeProducts) GetProductByID(_ context.Context, id int64) (*models.ProductDetail, error) {
	if f.byID == nil {
		return nil, database.ErrNotFound
	}
	return f.byID(id)
}

func (f *fakeProducts) GetProductByName(_ context.Context, name string) (*models.ProductDetail, error) {
	if f.byName == nil {
		return nil, database.ErrNotFound
	}
	return f.byName(name)
}

func (f *fakeProducts) SearchProductsByName(_ context.Context, name string, _, _ int) ([]models.ProductSummary, error) {
	if f.search == nil {
		return nil, nil
	}
	return f.search(name)
}

func (f *fakeProducts) SearchProductsFull(_ context.Context, term string, _ int) ([]models.ProductSummary, error) {
	if f.full == nil {
		return nil, nil
	}
	return f.full(term)
}

func (f *fakeProducts) GetAllProducts(_ context.Context, _, _ int, sortBy models.ProductSort) ([]models.ProductSummary, error) {
	if f.all == nil {
		return nil, nil
	}
	return f.all(sortBy)
}

func (f *fakeProducts) GetProductsByShop(_ context.Context, shopID int64, _, _ int) ([]models.ProductSummary, error) {
	if f.byShop == nil {
		return nil, nil
	}
	return f.byShop(shopID)
}

func (f *fakeProducts) GetTopRatedProducts(_ context.Context, _, _ int) ([]models.ProductSummary, error) {
	if f.topRated == nil {
		return nil, nil
	}
	return f.topRated()
}

type fakeRatings struct {
	productRatings func(productID int64) ([]models.Rating, error)
	productAvg     func(productID int64) (*float64, error)
	shopAvg        func(shopID int64) (*float64, error)
	userRatings    func(userID int64) ([]models.UserRating, error)
	upsert         func(userID, productID int64, value int, comment *string) error
}

func (f *fakeRatings) GetProductRatings(_ context.Context, productID int64, _, _ int) ([]models.Rating, error) {
	if f.productRatings == nil {
		return nil, nil
	}
	return f.productRatings(productID)
}

func (f *fakeRatings) GetProductAverageRating(_ context.Context, productID int64) (*float64, error) {
	if f.productAvg == nil {
		return nil, nil
	}
	return f.productAvg(productID)
}

func (f *fakeRatings) GetShopAverageRating(_ context.Context, shopID int64) (*float64, error) {
	if f.shopAvg == nil {
		return nil, nil
	}
	return f.shopAvg(shopID)
}

func (f *fakeRatings) GetUserRatings(_ context.Context, userID int64, _, _ int) ([]models.UserRating, error) {
	if f.userRatings == nil {
		return nil, nil
	}
	return f.userRatings(userID)
}

func (f *fakeRatings) UpsertProductRating(_ context.Context, userID, productID int64, value int, comment *string) error {
	if f.upsert == nil {
		return nil
	}
	return f.upsert(userID, productID, value, comment)
}

type fakeOrders struct {
	order         func(orderID int64) (*models.OrderDetail, error)
	payment       func(orderID int64) (*models.Payment, error)
	paymentStatus func(orderID int64) (*models.PaymentStatus, error)
}

func (f *fakeOrders) GetOrderByID(_ context.Context, orderID int64) (*models.OrderDetail, error) {
	if f.order == nil {
		return nil, database.ErrNotFound
	}
	return f.order(orderID)
}

func (f *fakeOrders) GetPaymentByOrderID(_ context.Context, orderID int64) (*models.Payment, error) {
	if f.payment == nil {
		return nil, database.ErrNotFound
	}
	return f.payment(orderID)
}

func (f *fakeOrders) GetPaymentStatus(_ context.Context, orderID int64) (*models.PaymentStatus, error) {
	if f.paymentStatus == nil {
		return nil, database.ErrNotFound
	}
	return f.paymentStatus(orderID)
}

type fakeShops struct {
	byName func(name string) (*models.Shop, error)
}

func (f *fakeShops) GetShopByName(_ context.Context, name string) (*models.Shop, error) {
	if f.byName == nil {
		return nil, database.ErrNotFound
	}
	return f.byName(name)
}

type fakeDirectory struct {
	search         func(name string) ([]catalog.Shop, error)
	searchProducts func(term string) ([]catalog.Product, error)
	getProduct     func(id int64) (*catalog.Product, error)
}

func (f *fakeDirectory) SearchShops(_ context.Context, name string) ([]catalog.Shop, error) {
	return f.search(name)
}

func (f *fakeDirectory) SearchProducts(_ context.Context, term string) ([]catalog.Product, error) {
	if f.searchProducts == nil {
		return nil, nil
	}
	return f.searchProducts(term)
}

func (f *fakeDirectory) GetProduct(_ context.Context, id int64) (*catalog.Product, error) {
	if f.getProduct == nil {
		return nil, catalog.ErrUnavailable
	}
	return f.getProduct(id)
}

// Tracker builders.

func trackerWithEntities(entities ...Entity) *Tracker {
	return &Tracker{Slots: map[string]any{}, Entities: entities}
}

func trackerWithSlots(slots map[string]any) *Tracker {
	return &Tracker{Slots: slots}
}

func allText(d *Dispatcher) string {
	var out string
	for _, r := range d.Responses() {
		out += r.Text
	}
	return out
}

func templates(d *Dispatcher) []string {
	var out []string
	for _, r := range d.Responses() {
		if r.Template != "" {
			out = append(out, r.Template)
		}
	}
	return out
}
