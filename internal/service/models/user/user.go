package user

import (
	"database/sql/driver"
	"errors"
	"time"
)

// Role distinguishes ordering clients from restaurant operators.
type Role string

const (
	RoleClient     Role = "CLIENT"
	RoleRestaurant Role = "RESTAURANT"
)

var ErrInvalidRole = errors.New("invalid role")

func (r Role) String() string {
	return string(r)
}

func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleRestaurant:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// User is an account. RestaurantID is set only for RESTAURANT operators.
// Deactivated accounts keep their rows but cannot log in.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	RestaurantID int64     `json:"restaurantId,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
