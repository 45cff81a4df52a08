package dto

import "github.com/polkiloo/eatsprint/internal/domain/model"

// FoodResponse is a catalog entry priced in major units.
type FoodResponse struct {
	ID          int64             `json:"_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       model.MajorAmount `json:"price"`
	Category    string            `json:"category"`
	Image       string            `json:"image"`
}

// FoodListResponse wraps catalog listing.
type FoodListResponse struct {
	Success bool           `json:"success"`
	Data    []FoodResponse `json:"data"`
}
