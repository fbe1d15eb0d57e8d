// Package actions implements the conversational actions behind the webhook:
// each one reads conversation state from a Tracker, talks to the store or
// the catalog API, and answers with user-facing messages plus slot and
// followup events for the orchestrator.
package actions

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/catalog"
	"github.com/ayambakarnusantara/action-server/internal/models"
)

// Entity is one extracted entity from the latest user message.
type Entity struct {
	Name  string `json:"entity"`
	Value any    `json:"value"`
}

// Tracker carries the conversation state the orchestrator sends with each
// action request: filled slots plus the latest message's entities.
type Tracker struct {
	SenderID string
	Slots    map[string]any
	Entities []Entity
}

// Slot returns the raw slot value, nil when unset.
func (t *Tracker) Slot(name string) any {
	return t.Slots[name]
}

// SlotString returns a non-empty string slot.
func (t *Tracker) SlotString(name string) (string, bool) {
	s, ok := asString(t.Slots[name])
	return s, ok && s != ""
}

// SlotInt64 returns a slot coerced to int64. Slots arrive as JSON, so
// numbers show up as float64 and ids are often sent as digit strings.
func (t *Tracker) SlotInt64(name string) (int64, bool) {
	return asInt64(t.Slots[name])
}

// Entity returns the first latest-message entity with the given name.
func (t *Tracker) Entity(name string) (string, bool) {
	for _, e := range t.Entities {
		if e.Name == name {
			s, ok := asString(e.Value)
			return s, ok && s != ""
		}
	}
	return "", false
}

// EntityInt64 returns the first entity with the given name coerced to int64.
func (t *Tracker) EntityInt64(name string) (int64, bool) {
	for _, e := range t.Entities {
		if e.Name == name {
			return asInt64(e.Value)
		}
	}
	return 0, false
}

// SlotOrEntityInt64 resolves an identifier the way every lookup action does:
// the slot wins, the latest message's entity is the fallback.
func (t *Tracker) SlotOrEntityInt64(name string) (int64, bool) {
	if id, ok := t.SlotInt64(name); ok {
		return id, true
	}
	return t.EntityInt64(name)
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case json.Number:
		return s.String(), true
	default:
		return "", false
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// Response is one message for the user: free text or a named utterance
// template the orchestrator expands itself.
type Response struct {
	Text     string `json:"text,omitempty"`
	Template string `json:"response,omitempty"`
}

// Dispatcher collects the messages an action wants shown, in order.
type Dispatcher struct {
	responses []Response
}

// Say queues a free-text message.
func (d *Dispatcher) Say(text string) {
	d.responses = append(d.responses, Response{Text: text})
}

// Utter queues a named utterance template.
func (d *Dispatcher) Utter(template string) {
	d.responses = append(d.responses, Response{Template: template})
}

// Responses returns everything queued so far.
func (d *Dispatcher) Responses() []Response {
	return d.responses
}

// Event is one state change an action hands back to the orchestrator.
type Event struct {
	Event string `json:"event"`
	Name  string `json:"name"`
	Value any    `json:"value,omitempty"`
}

// SlotSet builds a slot-write event.
func SlotSet(name string, value any) Event {
	return Event{Event: "slot", Name: name, Value: value}
}

// Followup builds a followup-action event.
func Followup(name string) Event {
	return Event{Event: "followup", Name: name}
}

// Action is one named conversational action. Run never returns an error:
// failures become apology messages, matching what the orchestrator can
// actually do with them.
type Action interface {
	Name() string
	Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event
}

// Store surfaces consumed by the actions, split by concern so tests fake
// only what an action touches. *store.Store satisfies all of them.

type ProductStore interface {
	GetProductByID(ctx context.Context, productID int64) (*models.ProductDetail, error)
	GetProductByName(ctx context.Context, name string) (*models.ProductDetail, error)
	SearchProductsByName(ctx context.Context, name string, limit, offset int) ([]models.ProductSummary, error)
	SearchProductsFull(ctx context.Context, term string, limit int) ([]models.ProductSummary, error)
	GetAllProducts(ctx context.Context, limit, offset int, sortBy models.ProductSort) ([]models.ProductSummary, error)
	GetProductsByShop(ctx context.Context, shopID int64, limit, offset int) ([]models.ProductSummary, error)
	GetTopRatedProducts(ctx context.Context, limit, minRatings int) ([]models.ProductSummary, error)
}

type RatingStore interface {
	GetProductRatings(ctx context.Context, productID int64, limit, offset int) ([]models.Rating, error)
	GetProductAverageRating(ctx context.Context, productID int64) (*float64, error)
	GetShopAverageRating(ctx context.Context, shopID int64) (*float64, error)
	GetUserRatings(ctx context.Context, userID int64, limit, offset int) ([]models.UserRating, error)
	UpsertProductRating(ctx context.Context, userID, productID int64, value int, comment *string) error
}

type OrderStore interface {
	GetOrderByID(ctx context.Context, orderID int64) (*models.OrderDetail, error)
	GetPaymentByOrderID(ctx context.Context, orderID int64) (*models.Payment, error)
	GetPaymentStatus(ctx context.Context, orderID int64) (*models.PaymentStatus, error)
}

type ShopStore interface {
	GetShopByName(ctx context.Context, name string) (*models.Shop, error)
}

// ShopDirectory is the remote catalog surface, satisfied by *catalog.Client.
type ShopDirectory interface {
	SearchShops(ctx context.Context, name string) ([]catalog.Shop, error)
	SearchProducts(ctx context.Context, term string) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id int64) (*catalog.Product, error)
}

// Registry maps action names to implementations for the webhook.
type Registry struct {
	actions map[string]Action
}

// RegistryDeps are the shared dependencies the actions draw on.
type RegistryDeps struct {
	Products  ProductStore
	Ratings   RatingStore
	Orders    OrderStore
	Shops     ShopStore
	Directory ShopDirectory
	Log       *zap.SugaredLogger
}

// NewRegistry wires every action.
func NewRegistry(deps RegistryDeps) *Registry {
	r := &Registry{actions: make(map[string]Action)}
	for _, a := range []Action{
		&ProductSearch{products: deps.Products, log: deps.Log},
		&ProductDetail{products: deps.Products, ratings: deps.Ratings, log: deps.Log},
		&ListTopProducts{products: deps.Products, log: deps.Log},
		&ListShopProducts{products: deps.Products, ratings: deps.Ratings, shops: deps.Shops, log: deps.Log},
		&CheckOrderStatus{orders: deps.Orders, log: deps.Log},
		&CheckPaymentStatus{orders: deps.Orders, log: deps.Log},
		&AddRating{products: deps.Products, ratings: deps.Ratings, log: deps.Log},
		&ThankForReview{},
		&ShowUserRatings{ratings: deps.Ratings, log: deps.Log},
		&SearchShopAPI{directory: deps.Directory, log: deps.Log},
		&SearchProductAPI{directory: deps.Directory, log: deps.Log},
		&AcknowledgeAffirmation{},
		&AcknowledgeDenial{},
		&RedirectOrderPage{},
	} {
		r.Register(a)
	}
	return r
}

// Register adds or replaces one action.
func (r *Registry) Register(a Action) {
	r.actions[a.Name()] = a
}

// Lookup resolves an action by its wire name.
func (r *Registry) Lookup(name string) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// Names lists the registered action names, for the health endpoint and logs.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	return names
}
