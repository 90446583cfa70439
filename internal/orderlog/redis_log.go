package orderlog

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const redisKey = "orderHistory"

// redisLog appends orders to a redis list, newest last, matching the
// append-only contract of the local file log.
type redisLog struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) Log {
	return &redisLog{rdb: rdb}
}

func (r *redisLog) Append(ctx context.Context, order Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return r.rdb.RPush(ctx, redisKey, raw).Err()
}

func (r *redisLog) List(ctx context.Context) ([]Order, error) {
	raws, err := r.rdb.LRange(ctx, redisKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(raws))
	for _, raw := range raws {
		var order Order
		if err := json.Unmarshal([]byte(raw), &order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
