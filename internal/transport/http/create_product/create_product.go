package createproduct

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/product"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, p product.Product, actorRestaurantID int64) (product.Product, error)
}

// productRequest represents a create product request.
type productRequest struct {
	Name          string `json:"name"        validate:"required"`
	Description   string `json:"description"`
	Category      string `json:"category"    validate:"required"`
	ImageURL      string `json:"imageUrl"`
	PriceCents    int64  `json:"priceCents"  validate:"gt=0"`
	PriceCurrency string `json:"priceCurrency"`
	Available     bool   `json:"available"`
}

// Validate validates the create product request.
func (r *productRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *productRequest) toModel() (*product.Product, error) {
	cur := currency.CurrencyBRL
	if r.PriceCurrency != "" {
		parsed, err := currency.ParseCurrency(r.PriceCurrency)
		if err != nil {
			return nil, err
		}
		cur = parsed
	}

	return &product.Product{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		ImageURL:      r.ImageURL,
		PriceCents:    r.PriceCents,
		PriceCurrency: cur,
		Available:     r.Available,
	}, nil
}

// CreateProduct handles the create product request for the acting restaurant.
func CreateProduct(w http.ResponseWriter, r *http.Request, service service) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)

		return
	}

	req := productRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create product", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create product", "error", err)

		return
	}

	model, err := req.toModel()
	if err != nil {
		httperr.Write(w, err)

		return
	}

	created, err := service.Create(r.Context(), *model, sess.RestaurantID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating product", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create product", "error", err)
	}
}
