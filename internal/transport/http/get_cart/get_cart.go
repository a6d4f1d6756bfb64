package getcart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/cart"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Get(ctx context.Context, clientID int64) (cart.Cart, error)
}

// cartResponse adds the derived totals to the cart payload.
type cartResponse struct {
	cart.Cart
	TotalItems      int   `json:"totalItems"`
	TotalPriceCents int64 `json:"totalPriceCents"`
}

// NewCartResponse builds the response payload for a cart.
func NewCartResponse(c cart.Cart) cartResponse {
	return cartResponse{
		Cart:            c,
		TotalItems:      c.TotalItems(),
		TotalPriceCents: c.TotalPriceCents(),
	}
}

// GetCart returns the current client's cart with derived totals.
func GetCart(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	c, err := service.Get(r.Context(), sess.UserID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting cart", "client_id", sess.UserID, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(NewCartResponse(c)); err != nil {
		slog.Error("Error sending response for cart", "error", err)
	}
}
