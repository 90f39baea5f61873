package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopkart/backend/pkg/models"
)

// Product read cache. Catalog reads are the hot path; cart and order
// mutations always go to MongoDB so they never see a stale price from here.

const productTTL = 24 * time.Hour

func productKey(productID string) string {
	return fmt.Sprintf("product:%s", productID)
}

// CacheProduct stores one product as a TTL'd JSON entry keyed by id.
func CacheProduct(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", product.ID.Hex(), err)
	}

	pipe := client.TxPipeline()
	pipe.Set(ctx, productKey(product.ID.Hex()), productJSON, productTTL)
	pipe.LPush(ctx, "products:recent", product.ID.Hex())
	pipe.LTrim(ctx, "products:recent", 0, 99)
	pipe.Expire(ctx, "products:recent", productTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache product %s: %w", product.ID.Hex(), err)
	}
	return nil
}

// GetProductFromCache returns the cached product, or an error on a miss.
func GetProductFromCache(ctx context.Context, productID string) (*models.Product, error) {
	client := RedisClient()
	defer client.Close()

	productJSON, err := client.Get(ctx, productKey(productID)).Result()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

// RemoveProductFromCache evicts a product after an update or soft delete.
func RemoveProductFromCache(ctx context.Context, productID string) error {
	client := RedisClient()
	defer client.Close()

	pipe := client.TxPipeline()
	pipe.Del(ctx, productKey(productID))
	pipe.LRem(ctx, "products:recent", 0, productID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove product %s from cache: %w", productID, err)
	}
	return nil
}
