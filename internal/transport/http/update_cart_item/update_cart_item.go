package updatecartitem

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/cart"
	getcart "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/get_cart"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	UpdateQuantity(ctx context.Context, clientID, productID int64, quantity int) (cart.Cart, error)
}

// updateItemRequest represents a quantity change for one cart line.
type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets the quantity of one line in the current client's
// cart. A non-positive quantity removes the line.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)

		return
	}

	req := updateItemRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update cart item", "error", err)

		return
	}

	c, err := service.UpdateQuantity(r.Context(), sess.UserID, productID, req.Quantity)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error updating cart item", "product_id", productID, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(getcart.NewCartResponse(c)); err != nil {
		slog.Error("Error sending response for update cart item", "error", err)
	}
}
