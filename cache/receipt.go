package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/model"

	"github.com/redis/go-redis/v9"
)

// ReceiptCache remembers which gateway order was created for a client receipt,
// so a retried create-order with the same receipt does not open a second order.
type ReceiptCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewReceiptCache(client *redis.Client, ttl time.Duration) *ReceiptCache {
	return &ReceiptCache{
		client: client,
		prefix: "payment:receipt:",
		ttl:    ttl,
	}
}

func (c *ReceiptCache) key(receipt string) string {
	return c.prefix + receipt
}

// Get returns nil, nil when nothing is cached for receipt.
func (c *ReceiptCache) Get(ctx context.Context, receipt string) (*model.PaymentOrder, error) {
	raw, err := c.client.Get(ctx, c.key(receipt)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var order model.PaymentOrder
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil, fmt.Errorf("decode cached order for %q: %w", receipt, err)
	}
	return &order, nil
}

func (c *ReceiptCache) Put(ctx context.Context, order model.PaymentOrder) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(order.Receipt), string(raw), c.ttl).Err()
}
