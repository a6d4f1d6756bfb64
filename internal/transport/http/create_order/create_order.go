package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/orderitem"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/ordersvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, cmd ordersvc.CreateOrderCommand) (order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID     int64  `json:"productId"     validate:"gt=0"`
	Quantity      int    `json:"quantity"      validate:"gt=0"`
	ProductTitle  string `json:"productTitle"  validate:"required"`
	ProductUrl    string `json:"productUrl"`
	PriceCents    int64  `json:"priceCents"    validate:"gt=0"`
	PriceCurrency string `json:"priceCurrency" validate:"required"`
	Observations  string `json:"observations"`
}

// toModel converts itemInCreateOrderRequest to orderitem.OrderItem.
func (r *itemInCreateOrderRequest) toModel() (*orderitem.OrderItem, error) {
	cur, err := currency.ParseCurrency(r.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &orderitem.OrderItem{
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		ProductTitle:  r.ProductTitle,
		ProductUrl:    r.ProductUrl,
		PriceCents:    r.PriceCents,
		PriceCurrency: cur,
		Observations:  r.Observations,
	}, nil
}

// createOrderRequest represents a direct order submission. The status and
// total are always computed server-side.
type createOrderRequest struct {
	RestaurantID int64                      `json:"restaurantId" validate:"gt=0"`
	Items        []itemInCreateOrderRequest `json:"items"        validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateOrder handles a direct order submission from the current client.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	items := make([]orderitem.OrderItem, len(req.Items))
	for i := range req.Items {
		item, err := req.Items[i].toModel()
		if err != nil {
			httperr.Write(w, err)
			slog.Error("Error converting create order request to model", "error", err)

			return
		}
		items[i] = *item
	}

	created, err := service.Create(r.Context(), ordersvc.CreateOrderCommand{
		ClientID:     sess.UserID,
		RestaurantID: req.RestaurantID,
		Items:        items,
	})
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating order", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create order", "error", err)
	}
}
