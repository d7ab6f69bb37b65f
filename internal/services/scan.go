package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"loyalt/internal/interfaces"
	"loyalt/internal/models"
	"loyalt/internal/pkg/limiter"
	"loyalt/internal/pkg/qr"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

const (
	ScanTypePoints = "points"
	ScanTypeReward = "reward"
)

// ServiceScan is the entry point of the scan workflow. It decodes the
// payload, resolves the shop and dispatches to the ledger or the reward
// state machine.
type ServiceScan struct {
	container *do.Injector
	store     interfaces.Store
	limiter   interfaces.Limiter
	activity  interfaces.ActivityLog
	users     *ServiceUser
	shops     *ServiceShop
	ledger    *ServiceLedger
	rewards   *ServiceReward
	config    *ServiceConfig
}

func NewServiceScan(container *do.Injector) (*ServiceScan, error) {
	store, err := do.Invoke[interfaces.Store](container)
	if err != nil {
		return nil, err
	}

	rate, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	activity, err := do.Invoke[interfaces.ActivityLog](container)
	if err != nil {
		return nil, err
	}

	users, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	shops, err := do.Invoke[*ServiceShop](container)
	if err != nil {
		return nil, err
	}

	ledger, err := do.Invoke[*ServiceLedger](container)
	if err != nil {
		return nil, err
	}

	rewards, err := do.Invoke[*ServiceReward](container)
	if err != nil {
		return nil, err
	}

	config, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceScan{container, store, rate, activity, users, shops, ledger, rewards, config}, nil
}

// HandleScan processes one raw QR payload on behalf of the scanning user.
// A failed activity-log write never fails the scan.
func (service *ServiceScan) HandleScan(ctx context.Context, userAuth *models.AuthUser, rawPayload string) (*models.ScanResult, error) {
	if userAuth == nil {
		return nil, errorx.Wrap(ErrNotLoggedIn, errorx.Authn)
	}

	payload, err := qr.Decode(rawPayload)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Validation)
	}

	// missing config rows fall back to the compiled default
	scanLimit, _ := service.config.GetIntConfig(ctx, CONFIG_SCAN_RATE_LIMIT_PER_MINUTE, SCAN_RATE_LIMIT_PER_MINUTE)
	err = service.limiter.Allow(ctx, LimitKeyUserScan(userAuth.ID), redis_rate.PerMinute(scanLimit))
	if errors.Is(err, limiter.ErrRateLimited) {
		return nil, errorx.Wrap(err, errorx.RateLimiting)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if _, err := service.users.FindOrCreateProfile(ctx, userAuth); err != nil {
		return nil, err
	}

	shop, err := service.shops.GetShop(ctx, payload.ShopID)
	if err != nil {
		return nil, err
	}

	var result *models.ScanResult
	switch payload.Kind {
	case qr.KindPoints:
		result, err = service.handlePointsScan(ctx, userAuth, shop, payload)
	case qr.KindReward:
		result, err = service.handleRewardScan(ctx, userAuth, payload)
	default:
		err = errorx.Wrap(qr.ErrInvalidType, errorx.Validation)
	}
	if err != nil {
		return nil, err
	}

	//nolint:errcheck
	service.activity.Append(ctx, userAuth.ID, &models.ScanActivity{
		Type:      result.Type,
		ShopID:    payload.ShopID,
		Points:    result.Points,
		Message:   result.Message,
		CreatedAt: time.Now(),
	})

	return result, nil
}

func (service *ServiceScan) handlePointsScan(ctx context.Context, userAuth *models.AuthUser, shop *models.Shop, payload *qr.Payload) (*models.ScanResult, error) {
	if err := service.consumeStoredCode(ctx, payload.ID); err != nil {
		return nil, err
	}

	description := payload.Description
	if description == "" {
		description = fmt.Sprintf("Earned %d points from %s", payload.Value, shop.Name)
	}

	profile, err := service.ledger.AddPoints(ctx, userAuth.ID, shop.ID, payload.Value, description)
	if err != nil {
		return nil, err
	}

	return &models.ScanResult{
		Type:            ScanTypePoints,
		Message:         fmt.Sprintf("You earned %d points!", payload.Value),
		Points:          payload.Value,
		TotalPoints:     profile.Points,
		MembershipLevel: profile.MembershipLevel,
	}, nil
}

// consumeStoredCode enforces single-use on codes that have a backing
// record. Counter codes whose id matches no record pass through, the
// payload is the source of truth for those.
func (service *ServiceScan) consumeStoredCode(ctx context.Context, codeID string) error {
	if codeID == "" {
		return nil
	}

	code, err := service.store.GetQRCode(ctx, codeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	if code.ExpiryDate.Before(time.Now()) {
		return errorx.Wrap(ErrCodeExpired, errorx.Validation)
	}

	if !code.IsSingleUse {
		return nil
	}

	err = service.store.ConsumeQRCode(ctx, code.ID, time.Now())
	if errors.Is(err, interfaces.ErrCodeAlreadyUsed) {
		return errorx.Wrap(err, errorx.Validation)
	}
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	return nil
}

func (service *ServiceScan) handleRewardScan(ctx context.Context, userAuth *models.AuthUser, payload *qr.Payload) (*models.ScanResult, error) {
	redemption, err := service.rewards.Redeem(ctx, userAuth, payload.ID)
	if err != nil {
		return nil, err
	}

	return &models.ScanResult{
		Type:    ScanTypeReward,
		Message: "Reward redeemed successfully!",
		Points:  -redemption.PointsSpent,
		Reward:  redemption.Reward,
	}, nil
}

// RecentActivity returns the newest scan entries for the user, newest
// first.
func (service *ServiceScan) RecentActivity(ctx context.Context, userAuth *models.AuthUser) ([]*models.ScanActivity, error) {
	if userAuth == nil {
		return nil, errorx.Wrap(ErrNotLoggedIn, errorx.Authn)
	}

	limit, _ := service.config.GetIntConfig(ctx, CONFIG_ACTIVITY_LOG_LIMIT, ACTIVITY_LOG_LIMIT)
	entries, err := service.activity.Recent(ctx, userAuth.ID, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return entries, nil
}
