package loginuser

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/session"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
}

// loginRequest represents a login request.
type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the login request.
func (r *loginRequest) Validate() error {
	return validator.New().Struct(r)
}

// Login handles the credential exchange for a bearer session.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for login", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for login", "error", err)

		return
	}

	sess, err := service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error logging in", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(sess); err != nil {
		slog.Error("Error sending response for login", "error", err)
	}
}
