package addcartitem

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/cart"
	getcart "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/get_cart"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	AddProduct(ctx context.Context, clientID, productID int64, quantity int) (cart.Cart, error)
}

// addItemRequest represents an add cart item request. Quantity is optional
// and defaults to 1.
type addItemRequest struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int   `json:"quantity"  validate:"gte=0"`
}

// Validate validates the add cart item request.
func (r *addItemRequest) Validate() error {
	return validator.New().Struct(r)
}

// AddCartItem puts a product into the current client's cart.
func AddCartItem(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	req := addItemRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for add cart item", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for add cart item", "error", err)

		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	c, err := service.AddProduct(r.Context(), sess.UserID, req.ProductID, req.Quantity)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error adding cart item", "product_id", req.ProductID, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(getcart.NewCartResponse(c)); err != nil {
		slog.Error("Error sending response for add cart item", "error", err)
	}
}
