package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/redis/go-redis/v9"

	"museum/entity"
)

const catalogCacheKey = "museum:catalog"

type CatalogRepository interface {
	Get(ctx context.Context) (entity.Catalog, error)
}

// CatalogCache is a read-through Redis cache in front of the catalog
// repository. Redis errors are logged and the repository is used directly.
type CatalogCache struct {
	repo CatalogRepository
	rdb  redis.UniversalClient
	ttl  time.Duration
}

func NewCatalogCache(repo CatalogRepository, rdb redis.UniversalClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		repo: repo,
		rdb:  rdb,
		ttl:  ttl,
	}
}

func (c *CatalogCache) Catalog(ctx context.Context) (entity.Catalog, error) {
	logger := log.FromContext(ctx)

	cached, err := c.rdb.Get(ctx, catalogCacheKey).Bytes()
	switch {
	case err == nil:
		var catalog entity.Catalog
		unmarshalErr := json.Unmarshal(cached, &catalog)
		if unmarshalErr == nil {
			return catalog, nil
		}
		logger.WithError(unmarshalErr).Warn("Cached catalog is corrupted, reloading")
	case !errors.Is(err, redis.Nil):
		logger.WithError(err).Warn("Could not read catalog from cache")
	}

	catalog, err := c.repo.Get(ctx)
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("could not get catalog: %w", err)
	}

	payload, err := json.Marshal(catalog)
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("could not marshal catalog: %w", err)
	}

	if err := c.rdb.Set(ctx, catalogCacheKey, payload, c.ttl).Err(); err != nil {
		logger.WithError(err).Warn("Could not store catalog in cache")
	}

	return catalog, nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		return fmt.Errorf("could not invalidate catalog cache: %w", err)
	}
	return nil
}
