package repository

import (
	"context"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// CartRepository stores per-user carts. Writes are last-write-wins.
type CartRepository interface {
	Increment(ctx context.Context, userID int64, itemID string, by int) error
	// Decrement lowers quantity by one, clamped at zero; zero removes the entry.
	Decrement(ctx context.Context, userID int64, itemID string) error
	// Merge adds every positive quantity of local to the stored cart.
	Merge(ctx context.Context, userID int64, local model.Cart) error
	Get(ctx context.Context, userID int64) (model.Cart, error)
	Clear(ctx context.Context, userID int64) error
}
