package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"

	domainErrors "github.com/polkiloo/eatsprint/internal/domain/errors"
	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/domain/repository"
)

// CartUseCase manages per-user carts.
type CartUseCase struct {
	carts repository.CartRepository
	foods repository.FoodRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, foods repository.FoodRepository) *CartUseCase {
	return &CartUseCase{carts: carts, foods: foods}
}

// Add increments quantity of an item by one.
func (u *CartUseCase) Add(ctx context.Context, userID int64, itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return domainErrors.ErrInvalidItem
	}
	return u.carts.Increment(ctx, userID, itemID, 1)
}

// Remove decrements quantity of an item, never below zero.
func (u *CartUseCase) Remove(ctx context.Context, userID int64, itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return domainErrors.ErrInvalidItem
	}
	return u.carts.Decrement(ctx, userID, itemID)
}

// Get returns the stored cart without zero entries.
func (u *CartUseCase) Get(ctx context.Context, userID int64) (model.Cart, error) {
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cart.Compact(), nil
}

// Clear empties the cart.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	return u.carts.Clear(ctx, userID)
}

// Merge folds a cart collected before login into the stored one and returns the result.
func (u *CartUseCase) Merge(ctx context.Context, userID int64, local model.Cart) (model.Cart, error) {
	if err := u.carts.Merge(ctx, userID, local.Compact()); err != nil {
		return nil, err
	}
	return u.Get(ctx, userID)
}

// Quote prices the cart against the catalog. Unknown items are skipped.
func (u *CartUseCase) Quote(ctx context.Context, userID int64) (*model.Quote, error) {
	cart, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	quantities := make(map[int64]int, len(cart))
	ids := make([]int64, 0, len(cart))
	for key, qty := range cart {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		quantities[id] += qty
		ids = append(ids, id)
	}

	quote := &model.Quote{Items: []model.LineItem{}}
	if len(ids) == 0 {
		return quote, nil
	}

	foods, err := u.foods.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(foods, func(i, j int) bool { return foods[i].ID < foods[j].ID })

	for _, food := range foods {
		qty, ok := quantities[food.ID]
		if !ok {
			continue
		}
		quote.Items = append(quote.Items, model.LineItem{
			Name:      food.Name,
			UnitPrice: food.Price.Minor(),
			Quantity:  qty,
		})
	}
	quote.Total = model.TotalOf(quote.Items)

	return quote, nil
}
