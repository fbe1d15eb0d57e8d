// Package catalog is the client for the storefront's public HTTP API, used
// for lookups that live outside the chatbot database (notably the seller
// shop directory).
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Failure classes. Callers pick their user-facing message off these rather
// than parsing error text.
var (
	// ErrUnavailable indicates the API could not be reached at all.
	ErrUnavailable = errors.New("catalog api unreachable")

	// ErrBadStatus indicates a non-200 response.
	ErrBadStatus = errors.New("catalog api bad status")

	// ErrBadPayload indicates a 200 response whose body was not the
	// expected envelope.
	ErrBadPayload = errors.New("catalog api bad payload")
)

// APIError is a well-formed envelope with success=false; Message carries the
// server's own explanation.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "catalog api: " + e.Message
}

// Shop is one entry of the remote shop directory.
type Shop struct {
	Name           string  `json:"shopName"`
	Address        string  `json:"shopAddress"`
	Description    string  `json:"description"`
	BannerImageURL *string `json:"bannerImageURL"`
	OwnerName      string  `json:"ownerName"`
}

// Product is one entry of the remote product listing.
type Product struct {
	ID            int64   `json:"_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	Category      string  `json:"category"`
	ImageURL      *string `json:"productImageURL"`
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// Client talks to the storefront API rooted at a base URL.
type Client struct {
	base string
	http *http.Client
	log  *zap.SugaredLogger
}

// NewClient builds a Client for the given API root, e.g.
// "https://api.example.com/api". A zero timeout means requests only stop at
// context cancellation.
func NewClient(baseURL string, timeout time.Duration, log *zap.SugaredLogger) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// envelope is the API's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// SearchShops queries the shop directory. An empty name lists every shop.
func (c *Client) SearchShops(ctx context.Context, name string) ([]Shop, error) {
	endpoint := c.base + "/shop"
	if name != "" {
		endpoint += "?" + url.Values{"searchByShopName": {name}}.Encode()
	}

	data, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Shops *[]Shop `json:"shops"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Shops == nil {
		return nil, fmt.Errorf("%w: missing shops key", ErrBadPayload)
	}
	return *payload.Shops, nil
}

// SearchProducts queries the remote product listing by free-text term.
func (c *Client) SearchProducts(ctx context.Context, term string) ([]Product, error) {
	endpoint := c.base + "/product"
	if term != "" {
		endpoint += "?" + url.Values{"searchByName": {term}}.Encode()
	}

	data, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Products *[]Product `json:"products"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Products == nil {
		return nil, fmt.Errorf("%w: missing products key", ErrBadPayload)
	}
	return *payload.Products, nil
}

// GetProduct fetches one remote product by id. The product's fields sit
// directly under the envelope's data key.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	data, err := c.get(ctx, c.base+"/product/"+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}

	var p Product
	if err := json.Unmarshal(data, &p); err != nil || p.ID == 0 {
		return nil, fmt.Errorf("%w: missing product fields", ErrBadPayload)
	}
	return &p, nil
}

// get performs one request and peels the envelope, mapping each failure mode
// to its class.
func (c *Client) get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("catalog api unreachable", "url", endpoint, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warnw("catalog api bad status",
			"url", endpoint, "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if !env.Success {
		return nil, &APIError{Message: env.Message}
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%w: missing data key", ErrBadPayload)
	}
	return env.Data, nil
}
