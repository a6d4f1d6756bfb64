package product

// QueryProductsModel represents filter parameters for querying the catalog.
type QueryProductsModel struct {
	Ids           []int64 `json:"ids,omitempty"`
	RestaurantIds []int64 `json:"restaurantIds,omitempty"`
	Category      string  `json:"category,omitempty"`
	Name          string  `json:"name,omitempty"`
	AvailableOnly bool    `json:"availableOnly,omitempty"`
	Limit         int     `json:"limit,omitempty"`
	Offset        int     `json:"offset,omitempty"`
}
