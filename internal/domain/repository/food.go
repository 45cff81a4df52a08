package repository

import (
	"context"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// FoodRepository provides read access to the catalog.
type FoodRepository interface {
	List(ctx context.Context) ([]model.Food, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Food, error)
}
