package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"loyalt/internal/interfaces"
	"loyalt/internal/models"
	"loyalt/internal/pkg/caching"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

var ErrRewardUnavailable = errors.New("reward is no longer available")

type ServiceReward struct {
	container *do.Injector
	store     interfaces.Store
	locker    interfaces.Locker
	cache     caching.Cache
	ledger    *ServiceLedger
}

func NewServiceReward(container *do.Injector) (*ServiceReward, error) {
	store, err := do.Invoke[interfaces.Store](container)
	if err != nil {
		return nil, err
	}

	locker, err := do.Invoke[interfaces.Locker](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	ledger, err := do.Invoke[*ServiceLedger](container)
	if err != nil {
		return nil, err
	}

	return &ServiceReward{container, store, locker, cache, ledger}, nil
}

func (service *ServiceReward) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	callback := func() (*models.Reward, error) {
		return service.store.GetReward(ctx, rewardID)
	}

	reward, err := caching.UseCache(ctx, service.cache, DBKeyReward(rewardID), CACHE_TTL_5_MINS, callback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrRewardNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return reward, nil
}

// Redeem moves a reward into its terminal redeemed state. An unacquired
// reward is paid for and redeemed in one step; an already claimed one only
// flips. Concurrent attempts on the same (user, reward) pair are serialized
// by a lock so the balance check cannot race the deduction.
func (service *ServiceReward) Redeem(ctx context.Context, userAuth *models.AuthUser, rewardID string) (*models.RedemptionResult, error) {
	if userAuth == nil {
		return nil, errorx.Wrap(ErrNotLoggedIn, errorx.Authn)
	}

	release, err := service.locker.TryLock(LockKeyUserReward(userAuth.ID, rewardID))
	if err != nil {
		return nil, errorx.Wrap(ErrRedemptionLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer release()

	reward, err := service.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	userReward, err := service.store.GetUserReward(ctx, userAuth.ID, rewardID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if userReward != nil {
		if userReward.Redeemed {
			return nil, errorx.Wrap(interfaces.ErrAlreadyRedeemed, errorx.Invalid)
		}

		err := service.store.RedeemUserReward(ctx, userAuth.ID, rewardID, now)
		if errors.Is(err, interfaces.ErrAlreadyRedeemed) {
			return nil, errorx.Wrap(err, errorx.Invalid)
		}
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}

		//nolint:errcheck
		service.cache.Delete(ctx, DBKeyUserRewards(userAuth.ID))

		profile, err := service.store.GetProfile(ctx, userAuth.ID)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}

		return &models.RedemptionResult{
			Reward:          reward,
			PointsSpent:     0,
			PointsRemaining: profile.Points,
		}, nil
	}

	if !reward.IsActive || reward.ExpiryDate.Before(now) {
		return nil, errorx.Wrap(ErrRewardUnavailable, errorx.Invalid)
	}

	profile, err := service.store.GetProfile(ctx, userAuth.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrProfileNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if profile.Points < reward.PointsRequired {
		return nil, errorx.Wrap(InsufficientPointsError(reward.PointsRequired, profile.Points), errorx.Invalid)
	}

	profile, err = service.ledger.AddPoints(ctx, userAuth.ID, reward.ShopID, -reward.PointsRequired, fmt.Sprintf("Redeemed reward: %s", reward.Title))
	if err != nil {
		return nil, err
	}

	err = service.store.InsertUserReward(ctx, &models.UserReward{
		ID:           uuid.NewString(),
		UserID:       userAuth.ID,
		RewardID:     rewardID,
		ShopID:       reward.ShopID,
		AcquiredDate: now,
		ExpiryDate:   reward.ExpiryDate,
		Redeemed:     true,
		RedeemedDate: &now,
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUserRewards(userAuth.ID))

	return &models.RedemptionResult{
		Reward:          reward,
		PointsSpent:     reward.PointsRequired,
		PointsRemaining: profile.Points,
	}, nil
}

// Claim pays for a reward and parks it in the user's wallet without
// redeeming it.
func (service *ServiceReward) Claim(ctx context.Context, userAuth *models.AuthUser, rewardID string) (*models.UserReward, error) {
	if userAuth == nil {
		return nil, errorx.Wrap(ErrNotLoggedIn, errorx.Authn)
	}

	release, err := service.locker.TryLock(LockKeyUserReward(userAuth.ID, rewardID))
	if err != nil {
		return nil, errorx.Wrap(ErrRedemptionLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer release()

	reward, err := service.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !reward.IsActive || reward.ExpiryDate.Before(now) {
		return nil, errorx.Wrap(ErrRewardUnavailable, errorx.Invalid)
	}

	_, err = service.store.GetUserReward(ctx, userAuth.ID, rewardID)
	if err == nil {
		return nil, errorx.Wrap(ErrRewardAlreadyAcquired, errorx.Invalid)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	profile, err := service.store.GetProfile(ctx, userAuth.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrProfileNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if profile.Points < reward.PointsRequired {
		return nil, errorx.Wrap(InsufficientPointsError(reward.PointsRequired, profile.Points), errorx.Invalid)
	}

	_, err = service.ledger.AddPoints(ctx, userAuth.ID, reward.ShopID, -reward.PointsRequired, fmt.Sprintf("Claimed reward: %s", reward.Title))
	if err != nil {
		return nil, err
	}

	userReward := &models.UserReward{
		ID:           uuid.NewString(),
		UserID:       userAuth.ID,
		RewardID:     rewardID,
		ShopID:       reward.ShopID,
		AcquiredDate: now,
		ExpiryDate:   reward.ExpiryDate,
		Redeemed:     false,
	}
	if err := service.store.InsertUserReward(ctx, userReward); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUserRewards(userAuth.ID))

	return userReward, nil
}

// ListAvailableRewards returns catalogue rewards the user has not claimed.
func (service *ServiceReward) ListAvailableRewards(ctx context.Context, userID string) ([]models.Reward, error) {
	rewards, err := service.store.ListActiveRewards(ctx, time.Now())
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	owned, err := service.store.ListUserRewards(ctx, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	ownedSet := map[string]bool{}
	for _, userReward := range owned {
		ownedSet[userReward.RewardID] = true
	}

	available := []models.Reward{}
	for _, reward := range rewards {
		if !ownedSet[reward.ID] {
			available = append(available, reward)
		}
	}

	return available, nil
}

// ListUserRewards returns the user's wallet, optionally narrowed to active
// (claimed, unredeemed, unexpired) or expired entries.
func (service *ServiceReward) ListUserRewards(ctx context.Context, userID string, filter string) ([]models.UserRewardDetail, error) {
	callback := func() ([]models.UserReward, error) {
		return service.store.ListUserRewards(ctx, userID)
	}

	owned, err := caching.UseCache(ctx, service.cache, DBKeyUserRewards(userID), CACHE_TTL_5_SECONDS, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	now := time.Now()
	details := []models.UserRewardDetail{}
	for _, userReward := range owned {
		switch filter {
		case REWARD_FILTER_ACTIVE:
			if userReward.Redeemed || userReward.ExpiryDate.Before(now) {
				continue
			}
		case REWARD_FILTER_EXPIRED:
			// redeemed entries count as spent and show up here, matching
			// a wallet's used-coupons view
			if !userReward.Redeemed && !userReward.ExpiryDate.Before(now) {
				continue
			}
		}

		reward, err := service.store.GetReward(ctx, userReward.RewardID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}

		details = append(details, models.UserRewardDetail{UserReward: userReward, Reward: reward})
	}

	return details, nil
}
