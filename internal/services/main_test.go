package services

import (
	"context"
	"testing"
	"time"

	"loyalt/internal/datastore/memstore"
	"loyalt/internal/interfaces"
	"loyalt/internal/models"
	"loyalt/internal/pkg/caching"
	"loyalt/internal/pkg/limiter"
	"loyalt/internal/pkg/locking"

	"github.com/samber/do"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) (*do.Injector, *memstore.MemStore) {
	t.Helper()

	store := memstore.New()

	injector := do.New()
	t.Cleanup(func() {
		//nolint:errcheck
		injector.Shutdown()
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Store, error) {
		return store, nil
	})
	do.Provide(injector, func(i *do.Injector) (interfaces.Locker, error) {
		return locking.NewLocalLocker(), nil
	})
	do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
		return limiter.Unlimited{}, nil
	})
	do.Provide(injector, func(i *do.Injector) (interfaces.ActivityLog, error) {
		return memstore.NewActivityLog(ACTIVITY_LOG_LIMIT), nil
	})
	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		return caching.NewCacheLocal()
	})
	do.Provide(injector, func(i *do.Injector) (caching.ReadOnlyCache, error) {
		return do.Invoke[caching.Cache](i)
	})
	do.Provide(injector, func(i *do.Injector) (*ServiceConfig, error) {
		return NewServiceConfig(injector)
	})
	do.Provide(injector, func(i *do.Injector) (*ServiceUser, error) {
		return NewServiceUser(injector)
	})
	do.Provide(injector, func(i *do.Injector) (*ServiceLedger, error) {
		return NewServiceLedger(injector)
	})
	do.Provide(injector, func(i *do.Injector) (*ServiceShop, error) {
		return NewServiceShop(injector)
	})
	do.Provide(injector, func(i *do.Injector) (*ServiceReward, error) {
		return NewServiceReward(injector)
	})
	do.Provide(injector, func(i *do.Injector) (*ServiceScan, error) {
		return NewServiceScan(injector)
	})

	return injector, store
}

func seedProfile(t *testing.T, store *memstore.MemStore, userID string, points int) {
	t.Helper()

	err := store.CreateProfile(context.Background(), &models.Profile{
		UserID:          userID,
		Name:            "Tester",
		Role:            models.RoleClient,
		Points:          points,
		MembershipLevel: models.TierForPoints(points),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	})
	require.NoError(t, err)
}

func seedShop(store *memstore.MemStore, shopID, name string) {
	store.AddShop(&models.Shop{
		ID:        shopID,
		Name:      name,
		APIKey:    "key-" + shopID,
		CreatedAt: time.Now(),
	})
}

func seedReward(store *memstore.MemStore, rewardID, shopID, title string, cost int) {
	store.AddReward(&models.Reward{
		ID:             rewardID,
		ShopID:         shopID,
		Title:          title,
		PointsRequired: cost,
		ExpiryDate:     time.Now().AddDate(0, 1, 0),
		IsActive:       true,
		CreatedAt:      time.Now(),
	})
}
