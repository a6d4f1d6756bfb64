package listordersbystatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	ListByStatus(ctx context.Context, st status.Status) ([]order.Order, error)
}

// ListOrdersByStatus lists every order currently in the given status. It is
// an operator view, so the route is restricted to restaurant sessions.
func ListOrdersByStatus(w http.ResponseWriter, r *http.Request, service service) {
	st, err := status.ParseStatus(chi.URLParam(r, "status"))
	if err != nil {
		httperr.Write(w, err)

		return
	}

	orders, err := service.ListByStatus(r.Context(), st)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error listing orders by status", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error sending response for order listing by status", "error", err)
	}
}
