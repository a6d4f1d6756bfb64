package updateproduct

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/product"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Update(ctx context.Context, p product.Product, actorRestaurantID int64) (product.Product, error)
}

// productRequest represents an update product request.
type productRequest struct {
	Name          string `json:"name"        validate:"required"`
	Description   string `json:"description"`
	Category      string `json:"category"    validate:"required"`
	ImageURL      string `json:"imageUrl"`
	PriceCents    int64  `json:"priceCents"  validate:"gt=0"`
	PriceCurrency string `json:"priceCurrency"`
	Available     bool   `json:"available"`
}

// Validate validates the update product request.
func (r *productRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateProduct handles the update product request for the acting restaurant.
func UpdateProduct(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)

		return
	}

	req := productRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update product", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update product", "error", err)

		return
	}

	var cur currency.Currency
	if req.PriceCurrency != "" {
		cur, err = currency.ParseCurrency(req.PriceCurrency)
		if err != nil {
			httperr.Write(w, err)

			return
		}
	}

	updated, err := service.Update(r.Context(), product.Product{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		PriceCents:    req.PriceCents,
		PriceCurrency: cur,
		Available:     req.Available,
	}, sess.RestaurantID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error updating product", "product_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("Error sending response for update product", "error", err)
	}
}
