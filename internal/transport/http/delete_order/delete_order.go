package deleteorder

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Delete(ctx context.Context, id, actorRestaurantID int64) error
}

// DeleteOrder removes an order and its items. Destructive path kept for
// restaurant operators; cancellation is the usual route.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	if err := service.Delete(r.Context(), id, sess.RestaurantID); err != nil {
		httperr.Write(w, err)
		slog.Error("Error deleting order", "order_id", id, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
