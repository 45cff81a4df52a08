package redis

import (
	"context"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/domain/repository"
)

const cartKeyPrefix = "cart:"

// decrementItemScript lowers a cart entry by one and drops it at zero.
var decrementItemScript = goredis.NewScript(`
local key = KEYS[1]
local field = ARGV[1]

local current = redis.call('HGET', key, field)
if not current then
	return 0
end

current = tonumber(current)
if current <= 1 then
	redis.call('HDEL', key, field)
	return 0
end

return redis.call('HINCRBY', key, field, -1)
`)

// CartStore keeps carts as Redis hashes keyed by user id.
type CartStore struct {
	client goredis.UniversalClient
}

var _ repository.CartRepository = (*CartStore)(nil)

// NewCartStore wraps a connected Redis client.
func NewCartStore(client goredis.UniversalClient) *CartStore {
	return &CartStore{client: client}
}

// HealthCheck verifies Redis connectivity.
func (s *CartStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func cartKey(userID int64) string {
	return cartKeyPrefix + strconv.FormatInt(userID, 10)
}

func (s *CartStore) Increment(ctx context.Context, userID int64, itemID string, by int) error {
	if by <= 0 {
		return nil
	}
	return s.client.HIncrBy(ctx, cartKey(userID), itemID, int64(by)).Err()
}

func (s *CartStore) Decrement(ctx context.Context, userID int64, itemID string) error {
	return decrementItemScript.Run(ctx, s.client, []string{cartKey(userID)}, itemID).Err()
}

func (s *CartStore) Merge(ctx context.Context, userID int64, local model.Cart) error {
	local = local.Compact()
	if len(local) == 0 {
		return nil
	}

	key := cartKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for itemID, qty := range local {
			pipe.HIncrBy(ctx, key, itemID, int64(qty))
		}
		return nil
	})
	return err
}

func (s *CartStore) Get(ctx context.Context, userID int64) (model.Cart, error) {
	raw, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	cart := make(model.Cart, len(raw))
	for itemID, value := range raw {
		qty, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("cart entry %s: %w", itemID, err)
		}
		cart[itemID] = qty
	}
	return cart.Compact(), nil
}

func (s *CartStore) Clear(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, cartKey(userID)).Err()
}
