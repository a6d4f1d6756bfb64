package orderhistory

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/history"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	History(ctx context.Context, orderID int64) ([]history.StatusChange, error)
}

// OrderHistory returns the status trail of one order, oldest first.
func OrderHistory(w http.ResponseWriter, r *http.Request, service service) {
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

	o, err := service.GetByID(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting order for history", "order_id", id, "error", err)

		return
	}

	if sess.Role == user.RoleRestaurant {
		if o.RestaurantID != sess.RestaurantID {
			http.Error(w, "order belongs to another restaurant", http.StatusForbidden)

			return
		}
	} else if o.ClientID != sess.UserID {
		http.Error(w, "order belongs to another client", http.StatusForbidden)

		return
	}

	trail, err := service.History(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting order history", "order_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(trail); err != nil {
		slog.Error("Error sending response for order history", "error", err)
	}
}
