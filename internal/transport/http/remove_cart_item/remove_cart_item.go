package removecartitem

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
	RemoveProduct(ctx context.Context, clientID, productID int64) (cart.Cart, error)
}

// RemoveCartItem drops one line from the current client's cart.
func RemoveCartItem(w http.ResponseWriter, r *http.Request, service service) {
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

	c, err := service.RemoveProduct(r.Context(), sess.UserID, productID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error removing cart item", "product_id", productID, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(getcart.NewCartResponse(c)); err != nil {
		slog.Error("Error sending response for remove cart item", "error", err)
	}
}
