package getprofile

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	GetUser(ctx context.Context, id int64) (*user.User, error)
}

// GetProfile returns the account behind the current session.
func GetProfile(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	u, err := service.GetUser(r.Context(), sess.UserID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting profile", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(u); err != nil {
		slog.Error("Error sending response for profile", "error", err)
	}
}
