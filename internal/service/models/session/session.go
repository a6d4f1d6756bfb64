package session

import (
	"time"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
)

// Session is an issued bearer token with its resolved identity.
type Session struct {
	Token        string    `json:"token"`
	UserID       int64     `json:"userId"`
	Role         user.Role `json:"role"`
	RestaurantID int64     `json:"restaurantId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
