package services

import (
	"context"
	"database/sql"
	"errors"

	"loyalt/internal/interfaces"
	"loyalt/internal/models"
	"loyalt/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

type ServiceShop struct {
	container *do.Injector
	store     interfaces.Store
	cache     caching.Cache
}

func NewServiceShop(container *do.Injector) (*ServiceShop, error) {
	store, err := do.Invoke[interfaces.Store](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceShop{container, store, cache}, nil
}

func (service *ServiceShop) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	callback := func() (*models.Shop, error) {
		return service.store.GetShop(ctx, shopID)
	}

	shop, err := caching.UseCache(ctx, service.cache, DBKeyShop(shopID), CACHE_TTL_5_MINS, callback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrShopNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return shop, nil
}

func (service *ServiceShop) ListShops(ctx context.Context) ([]models.Shop, error) {
	callback := func() ([]models.Shop, error) {
		return service.store.ListShops(ctx)
	}

	shops, err := caching.UseCache(ctx, service.cache, DBKeyShops(), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return shops, nil
}
