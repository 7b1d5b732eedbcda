package domain

import (
	"errors"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleOperator = "operator"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// User models an authenticated actor. Role gates which job transitions the
// actor may request; operators additionally carry the shop they run.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	ShopID       string    `json:"shop_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserProfile is the display profile persisted in the session store.
type UserProfile struct {
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	PhotoURL string `json:"photo_url,omitempty"`
}
