package services

import (
	"context"
	"time"

	"loyalt/internal/datastore"
	"loyalt/internal/models"
	"loyalt/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceAnalytics serves the vendor dashboard aggregates off the readonly
// replica.
type ServiceAnalytics struct {
	container *do.Injector
	dbRO      *bun.DB
	cache     caching.Cache
}

func NewServiceAnalytics(container *do.Injector) (*ServiceAnalytics, error) {
	dbRO, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAnalytics{container, dbRO, cache}, nil
}

// GetShopStats aggregates scan counts and point flow since the given day.
func (service *ServiceAnalytics) GetShopStats(ctx context.Context, shopID string, from time.Time) (*models.ShopStats, error) {
	callback := func() (*models.ShopStats, error) {
		return datastore.GetShopStats(ctx, service.dbRO, shopID, from)
	}

	stats, err := caching.UseCache(ctx, service.cache, DBKeyShopStats(shopID, from), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return stats, nil
}

func (service *ServiceAnalytics) ListShopRewards(ctx context.Context, shopID string) ([]models.Reward, error) {
	rewards, err := datastore.ListRewardsByShop(ctx, service.dbRO, shopID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return rewards, nil
}
