package usecase

import (
	"context"

	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/domain/repository"
)

// CatalogUseCase exposes the read-only food catalog.
type CatalogUseCase struct {
	foods repository.FoodRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(foods repository.FoodRepository) *CatalogUseCase {
	return &CatalogUseCase{foods: foods}
}

// List returns all foods.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Food, error) {
	foods, err := u.foods.List(ctx)
	if err != nil {
		return nil, err
	}
	if foods == nil {
		foods = []model.Food{}
	}
	return foods, nil
}

// Get returns foods with the given identifiers; unknown ids are absent from the result.
func (u *CatalogUseCase) Get(ctx context.Context, ids []int64) ([]model.Food, error) {
	if len(ids) == 0 {
		return []model.Food{}, nil
	}
	return u.foods.GetByIDs(ctx, ids)
}
