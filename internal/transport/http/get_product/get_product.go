package getproduct

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/product"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
}

// GetProduct handles the single product request.
func GetProduct(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)

		return
	}

	p, err := service.GetByID(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting product", "product_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("Error sending response for product", "error", err)
	}
}
