package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"loyalt/internal/interfaces"
	"loyalt/internal/models"
	"loyalt/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

type ServiceUser struct {
	container *do.Injector
	store     interfaces.Store
	cache     caching.Cache
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	store, err := do.Invoke[interfaces.Store](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, store, cache}, nil
}

// FindOrCreateProfile bootstraps a zero-balance profile the first time an
// authenticated identity is seen.
func (service *ServiceUser) FindOrCreateProfile(ctx context.Context, userAuth *models.AuthUser) (*models.Profile, error) {
	if userAuth == nil {
		return nil, errorx.Wrap(ErrNotLoggedIn, errorx.Authn)
	}

	profile, err := service.GetProfile(ctx, userAuth.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	role := userAuth.Role
	if role == "" {
		role = models.RoleClient
	}

	profile = &models.Profile{
		UserID:          userAuth.ID,
		Name:            userAuth.Name,
		Role:            role,
		Points:          0,
		MembershipLevel: models.MembershipStandard,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := service.store.CreateProfile(ctx, profile); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Set(ctx, DBKeyProfile(userAuth.ID), profile, CACHE_TTL_1_MIN)

	return profile, nil
}

func (service *ServiceUser) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	callback := func() (*models.Profile, error) {
		return service.store.GetProfile(ctx, userID)
	}

	return caching.UseCache(ctx, service.cache, DBKeyProfile(userID), CACHE_TTL_1_MIN, callback)
}

func (service *ServiceUser) GetTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 || limit > TRANSACTION_HISTORY_DEFAULT_LIMIT {
		limit = TRANSACTION_HISTORY_DEFAULT_LIMIT
	}

	transactions, err := service.store.GetTransactionsByUser(ctx, userID, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return transactions, nil
}
