package cancelorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/ordersvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	Cancel(ctx context.Context, cmd ordersvc.CancelOrderCommand) (order.Order, error)
}

// CancelOrder moves a non-terminal order to CANCELED. A client may cancel
// only their own orders, an operator only their restaurant's.
func CancelOrder(w http.ResponseWriter, r *http.Request, service service) {
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

	cmd := ordersvc.CancelOrderCommand{
		OrderID: id,
		ActorID: sess.UserID,
	}
	if sess.Role == user.RoleRestaurant {
		cmd.ActorRestaurantID = sess.RestaurantID
	} else {
		current, err := service.GetByID(r.Context(), id)
		if err != nil {
			httperr.Write(w, err)
			slog.Error("Error getting order for cancel", "order_id", id, "error", err)

			return
		}
		if current.ClientID != sess.UserID {
			http.Error(w, "order belongs to another client", http.StatusForbidden)

			return
		}
	}

	canceled, err := service.Cancel(r.Context(), cmd)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error canceling order", "order_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(canceled); err != nil {
		slog.Error("Error sending response for cancel order", "error", err)
	}
}
