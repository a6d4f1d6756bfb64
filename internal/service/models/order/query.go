package order

import "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"

// QueryOrdersModel represents filter parameters for querying orders
type QueryOrdersModel struct {
	Ids           []int64         `json:"ids,omitempty"`
	ClientIds     []int64         `json:"clientIds,omitempty"`
	RestaurantIds []int64         `json:"restaurantIds,omitempty"`
	Statuses      []status.Status `json:"statuses,omitempty"`
	SortDesc      bool            `json:"sortDesc,omitempty"`
	Limit         int             `json:"limit,omitempty"`
	Offset        int             `json:"offset,omitempty"`
}
