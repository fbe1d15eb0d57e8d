package models

import "time"

// Rating value bounds, inclusive.
const (
	RatingMin = 1
	RatingMax = 5
)

// ValidRatingValue reports whether v is an allowed rating value.
func ValidRatingValue(v int) bool {
	return v >= RatingMin && v <= RatingMax
}

// Rating is one user's rating of a product, joined with the author.
type Rating struct {
	ID        int64     `json:"id" db:"id"`
	Value     int       `json:"value" db:"value"`
	Comment   *string   `json:"comment,omitempty" db:"comment"`
	UserID    int64     `json:"userId" db:"userId"`
	Username  string    `json:"username" db:"username"`
	FullName  string    `json:"fullName" db:"fullName"`
	UserPhoto *string   `json:"userPhoto,omitempty" db:"photoUser"`
	CreatedAt time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updatedAt"`
}

// UserRating is one row of a user's own rating history, joined with the
// rated product and its shop.
type UserRating struct {
	ID           int64     `json:"id" db:"id"`
	Value        int       `json:"value" db:"value"`
	Comment      *string   `json:"comment,omitempty" db:"comment"`
	ProductID    int64     `json:"productId" db:"productId"`
	ProductName  string    `json:"productName" db:"product_name"`
	ProductPhoto *string   `json:"productPhoto,omitempty" db:"photoProduct"`
	ShopID       int64     `json:"shopId" db:"shopId"`
	ShopName     string    `json:"shopName" db:"shop_name"`
	CreatedAt    time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updatedAt"`
}
