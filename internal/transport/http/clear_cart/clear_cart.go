package clearcart

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Clear(ctx context.Context, clientID int64) error
}

// ClearCart empties the current client's cart.
func ClearCart(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	if err := service.Clear(r.Context(), sess.UserID); err != nil {
		httperr.Write(w, err)
		slog.Error("Error clearing cart", "client_id", sess.UserID, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
