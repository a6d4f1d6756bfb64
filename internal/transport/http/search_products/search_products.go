package searchproducts

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
	Search(ctx context.Context, name string) ([]product.Product, error)
}

type searchProductsRequest struct {
	Name string `schema:"name,required"`
}

// SearchProducts matches catalog entries by name substring.
func SearchProducts(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &searchProductsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request for product search", "error", err)

		return
	}

	products, err := service.Search(r.Context(), query.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error searching products", "name", query.Name, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(products); err != nil {
		slog.Error("Error sending response for product search", "error", err)
	}
}
