package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loyalt/internal/interfaces"
	"loyalt/internal/models"
	"loyalt/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

// ServiceLedger owns every balance change. The profile's points and
// membership level are mutated nowhere else.
type ServiceLedger struct {
	container *do.Injector
	store     interfaces.Store
	cache     caching.Cache
}

func NewServiceLedger(container *do.Injector) (*ServiceLedger, error) {
	store, err := do.Invoke[interfaces.Store](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLedger{container, store, cache}, nil
}

// AddPoints applies a signed delta to the user's balance together with its
// transaction record. The store performs the sequence atomically, so no
// additional lock is needed here.
func (service *ServiceLedger) AddPoints(ctx context.Context, userID, shopID string, delta int, description string) (*models.Profile, error) {
	profile, err := service.store.ApplyPointsChange(ctx, userID, shopID, delta, description)
	if errors.Is(err, interfaces.ErrInsufficientPoints) {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrProfileNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyProfile(userID))

	return profile, nil
}

// InsufficientPointsError formats the user-facing message with both counts.
func InsufficientPointsError(required, available int) error {
	return fmt.Errorf("you need %d points to redeem this reward (you have %d)", required, available)
}
