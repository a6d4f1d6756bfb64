package updateorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/orderitem"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/ordersvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Update(ctx context.Context, cmd ordersvc.UpdateOrderCommand) (order.Order, error)
}

// itemInUpdateOrderRequest represents an item in an order edit.
type itemInUpdateOrderRequest struct {
	ProductID     int64  `json:"productId"     validate:"gt=0"`
	Quantity      int    `json:"quantity"`
	ProductTitle  string `json:"productTitle"  validate:"required"`
	ProductUrl    string `json:"productUrl"`
	PriceCents    int64  `json:"priceCents"    validate:"gt=0"`
	PriceCurrency string `json:"priceCurrency" validate:"required"`
	Observations  string `json:"observations"`
}

// updateOrderRequest represents an order edit from the restaurant side.
// Items may be omitted to change the status alone; lines with a
// non-positive quantity are dropped.
type updateOrderRequest struct {
	Status string                     `json:"status" validate:"required"`
	Items  []itemInUpdateOrderRequest `json:"items"  validate:"omitempty,dive"`
}

// Validate validates the order edit request.
func (r *updateOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateOrder applies a status change and an optional item resubmission
// for an order owned by the acting restaurant.
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
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

	req := updateOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update order", "error", err)

		return
	}

	st, err := status.ParseStatus(req.Status)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	var items []orderitem.OrderItem
	if req.Items != nil {
		items = make([]orderitem.OrderItem, len(req.Items))
		for i, item := range req.Items {
			cur, err := currency.ParseCurrency(item.PriceCurrency)
			if err != nil {
				httperr.Write(w, err)

				return
			}
			items[i] = orderitem.OrderItem{
				ProductID:     item.ProductID,
				Quantity:      item.Quantity,
				ProductTitle:  item.ProductTitle,
				ProductUrl:    item.ProductUrl,
				PriceCents:    item.PriceCents,
				PriceCurrency: cur,
				Observations:  item.Observations,
			}
		}
	}

	updated, err := service.Update(r.Context(), ordersvc.UpdateOrderCommand{
		OrderID:           id,
		Status:            st,
		Items:             items,
		ActorID:           sess.UserID,
		ActorRestaurantID: sess.RestaurantID,
	})
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error updating order", "order_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("Error sending response for update order", "error", err)
	}
}
