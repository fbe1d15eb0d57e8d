package models

import "time"

// User is the model for the 'User' table. The password column is never
// selected by the store, so it has no field here to leak.
type User struct {
	ID          int64     `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	FullName    string    `json:"fullName" db:"fullName"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber *string   `json:"phoneNumber,omitempty" db:"phoneNumber"`
	Photo       *string   `json:"photo,omitempty" db:"photoUser"`
	Address     *string   `json:"address,omitempty" db:"address"`
	CreatedAt   time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updatedAt"`
}
