package checkoutcart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Checkout(ctx context.Context, clientID int64, observations string) (order.Order, error)
}

// checkoutRequest represents a checkout request. The body is optional;
// observations apply to every line of the resulting order.
type checkoutRequest struct {
	Observations string `json:"observations"`
}

// Checkout turns the current client's cart into an order.
func Checkout(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	req := checkoutRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for checkout", "error", err)

		return
	}

	created, err := service.Checkout(r.Context(), sess.UserID, req.Observations)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error checking out cart", "client_id", sess.UserID, "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for checkout", "error", err)
	}
}
