package listproducts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/product"
)

// service is an interface for the service layer.
type service interface {
	List(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
}

type queryProductsRequest struct {
	Ids           []int64 `schema:"ids,omitempty"`
	RestaurantIds []int64 `schema:"restaurantIds,omitempty"`
	Category      string  `schema:"category,omitempty"`
	Name          string  `schema:"name,omitempty"`
	AvailableOnly bool    `schema:"availableOnly,omitempty"`
	Limit         int     `schema:"limit,omitempty"`
	Offset        int     `schema:"offset,omitempty"`
}

func (q *queryProductsRequest) ToModel() *product.QueryProductsModel {
	return &product.QueryProductsModel{
		Ids:           q.Ids,
		RestaurantIds: q.RestaurantIds,
		Category:      q.Category,
		Name:          q.Name,
		AvailableOnly: q.AvailableOnly,
		Limit:         q.Limit,
		Offset:        q.Offset,
	}
}

// ListProducts handles the catalog listing request.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryProductsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request for product listing", "error", err)

		return
	}

	products, err := service.List(r.Context(), query.ToModel())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing products", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(products); err != nil {
		slog.Error("Error sending response for product listing", "error", err)
	}
}
