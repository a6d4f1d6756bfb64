package registeruser

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	Register(ctx context.Context, newUser user.User, password string) (user.User, error)
}

// registerRequest represents a registration request.
type registerRequest struct {
	Name         string `json:"name"         validate:"required"`
	Email        string `json:"email"        validate:"required,email"`
	Password     string `json:"password"     validate:"required,min=8"`
	Role         string `json:"role"         validate:"required"`
	RestaurantID int64  `json:"restaurantId"`
}

// Validate validates the registration request.
func (r *registerRequest) Validate() error {
	return validator.New().Struct(r)
}

// Register handles the account registration request.
func Register(w http.ResponseWriter, r *http.Request, service service) {
	req := registerRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for register", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for register", "error", err)

		return
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	created, err := service.Register(r.Context(), user.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		RestaurantID: req.RestaurantID,
	}, req.Password)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error registering user", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for register", "error", err)
	}
}
