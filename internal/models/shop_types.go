package models

import "time"

// Shop is the model for the 'Shop' table, joined with its admin.
type Shop struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Address       string    `json:"address" db:"address"`
	Photo         *string   `json:"photo,omitempty" db:"photoShop"`
	AdminID       int64     `json:"adminId" db:"adminId"`
	AdminUsername string    `json:"adminUsername" db:"admin_username"`
	AverageRating *float64  `json:"averageRating,omitempty"`
	ProductCount  int       `json:"productCount"`
	CreatedAt     time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updatedAt"`
}
