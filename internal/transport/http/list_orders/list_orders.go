package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	ListByClient(ctx context.Context, clientID int64, st *status.Status) ([]order.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, st *status.Status) ([]order.Order, error)
}

type queryOrdersRequest struct {
	Status string `schema:"status,omitempty"`
}

// ListOrders lists the caller's orders. Clients see their own orders,
// restaurant operators see their restaurant's orders newest first. An
// optional status query narrows the listing.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request for order listing", "error", err)

		return
	}

	var st *status.Status
	if query.Status != "" {
		parsed, err := status.ParseStatus(query.Status)
		if err != nil {
			httperr.Write(w, err)

			return
		}
		st = &parsed
	}

	var orders []order.Order
	var err error
	if sess.Role == user.RoleRestaurant {
		orders, err = service.ListByRestaurant(r.Context(), sess.RestaurantID, st)
	} else {
		orders, err = service.ListByClient(r.Context(), sess.UserID, st)
	}
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error listing orders", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error sending response for order listing", "error", err)
	}
}
