package services

import (
	"context"
	"testing"
	"time"

	"loyalt/internal/models"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemUnacquiredReward(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 100)
	seedShop(store, "shop-1", "Brew & Bean")
	seedReward(store, "reward-1", "shop-1", "Free Espresso", 80)

	rewards, err := do.Invoke[*ServiceReward](injector)
	require.NoError(t, err)

	result, err := rewards.Redeem(ctx, &models.AuthUser{ID: "user-1"}, "reward-1")
	require.NoError(t, err)
	assert.Equal(t, 80, result.PointsSpent)
	assert.Equal(t, 20, result.PointsRemaining)
	assert.Equal(t, "reward-1", result.Reward.ID)

	userReward, err := store.GetUserReward(ctx, "user-1", "reward-1")
	require.NoError(t, err)
	assert.True(t, userReward.Redeemed)
	require.NotNil(t, userReward.RedeemedDate)

	transactions, err := store.GetTransactionsByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, -80, transactions[0].Points)
	assert.Equal(t, models.TransactionRedeem, transactions[0].Type)
	assert.Equal(t, "Redeemed reward: Free Espresso", transactions[0].Description)
}

func TestRedeemInsufficientPoints(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 50)
	seedShop(store, "shop-1", "Brew & Bean")
	seedReward(store, "reward-1", "shop-1", "Pastry Combo", 100)

	rewards, err := do.Invoke[*ServiceReward](injector)
	require.NoError(t, err)

	_, err = rewards.Redeem(ctx, &models.AuthUser{ID: "user-1"}, "reward-1")
	require.Error(t, err)

	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 50, profile.Points)

	transactions, err := store.GetTransactionsByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Empty(t, transactions)

	owned, err := store.ListUserRewards(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestRedeemTwiceFails(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 200)
	seedShop(store, "shop-1", "Brew & Bean")
	seedReward(store, "reward-1", "shop-1", "Free Espresso", 80)

	rewards, err := do.Invoke[*ServiceReward](injector)
	require.NoError(t, err)

	_, err = rewards.Redeem(ctx, &models.AuthUser{ID: "user-1"}, "reward-1")
	require.NoError(t, err)

	_, err = rewards.Redeem(ctx, &models.AuthUser{ID: "user-1"}, "reward-1")
	require.Error(t, err)

	// the second attempt must not touch the balance
	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 120, profile.Points)

	transactions, err := store.GetTransactionsByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestRedeemUnknownReward(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 200)

	rewards, err := do.Invoke[*ServiceReward](injector)
	require.NoError(t, err)

	_, err = rewards.Redeem(ctx, &models.AuthUser{ID: "user-1"}, "reward-missing")
	assert.Error(t, err)
}

func TestClaimThenRedeem(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 100)
	seedShop(store, "shop-1", "Brew & Bean")
	seedReward(store, "reward-1", "shop-1", "Free Espresso", 80)

	rewards, err := do.Invoke[*ServiceReward](injector)
	require.NoError(t, err)

	userReward, err := rewards.Claim(ctx, &models.AuthUser{ID: "user-1"}, "reward-1")
	require.NoError(t, err)
	assert.False(t, userReward.Redeemed)

	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 20, profile.Points)

	// claiming again is rejected
	_, err = rewards.Claim(ctx, &models.AuthUser{ID: "user-1"}, "reward-1")
	require.Error(t, err)

	result, err := rewards.Redeem(ctx, &models.AuthUser{ID: "user-1"}, "reward-1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.PointsSpent)
	assert.Equal(t, 20, result.PointsRemaining)

	redeemed, err := store.GetUserReward(ctx, "user-1", "reward-1")
	require.NoError(t, err)
	assert.True(t, redeemed.Redeemed)
}

func TestListAvailableRewards(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 500)
	seedShop(store, "shop-1", "Brew & Bean")
	seedReward(store, "reward-1", "shop-1", "Free Espresso", 80)
	seedReward(store, "reward-2", "shop-1", "Pastry Combo", 250)

	store.AddReward(&models.Reward{
		ID:             "reward-stale",
		ShopID:         "shop-1",
		Title:          "Old Promo",
		PointsRequired: 10,
		ExpiryDate:     time.Now().AddDate(0, 0, -1),
		IsActive:       true,
	})

	rewards, err := do.Invoke[*ServiceReward](injector)
	require.NoError(t, err)

	available, err := rewards.ListAvailableRewards(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, available, 2)

	_, err = rewards.Claim(ctx, &models.AuthUser{ID: "user-1"}, "reward-1")
	require.NoError(t, err)

	available, err = rewards.ListAvailableRewards(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "reward-2", available[0].ID)
}

func TestListUserRewardsRedeemedShowsAsExpired(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 200)
	seedShop(store, "shop-1", "Brew & Bean")
	seedReward(store, "reward-1", "shop-1", "Free Espresso", 80)

	rewards, err := do.Invoke[*ServiceReward](injector)
	require.NoError(t, err)

	_, err = rewards.Redeem(ctx, &models.AuthUser{ID: "user-1"}, "reward-1")
	require.NoError(t, err)

	// a redeemed reward leaves the active view but must not vanish, it
	// moves to the expired one
	active, err := rewards.ListUserRewards(ctx, "user-1", REWARD_FILTER_ACTIVE)
	require.NoError(t, err)
	assert.Empty(t, active)

	expired, err := rewards.ListUserRewards(ctx, "user-1", REWARD_FILTER_EXPIRED)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "reward-1", expired[0].RewardID)
	assert.True(t, expired[0].Redeemed)
}

func TestListUserRewardsFilters(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 500)
	seedShop(store, "shop-1", "Brew & Bean")
	seedReward(store, "reward-1", "shop-1", "Free Espresso", 80)

	store.AddReward(&models.Reward{
		ID:             "reward-old",
		ShopID:         "shop-1",
		Title:          "Old Promo",
		PointsRequired: 10,
		ExpiryDate:     time.Now().AddDate(0, 1, 0),
		IsActive:       true,
	})

	rewards, err := do.Invoke[*ServiceReward](injector)
	require.NoError(t, err)

	_, err = rewards.Claim(ctx, &models.AuthUser{ID: "user-1"}, "reward-1")
	require.NoError(t, err)

	// expired wallet entry inserted directly
	err = store.InsertUserReward(ctx, &models.UserReward{
		ID:           "ur-old",
		UserID:       "user-1",
		RewardID:     "reward-old",
		ShopID:       "shop-1",
		AcquiredDate: time.Now().AddDate(0, -2, 0),
		ExpiryDate:   time.Now().AddDate(0, -1, 0),
	})
	require.NoError(t, err)

	active, err := rewards.ListUserRewards(ctx, "user-1", REWARD_FILTER_ACTIVE)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "reward-1", active[0].RewardID)
	require.NotNil(t, active[0].Reward)
	assert.Equal(t, "Free Espresso", active[0].Reward.Title)

	expired, err := rewards.ListUserRewards(ctx, "user-1", REWARD_FILTER_EXPIRED)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "reward-old", expired[0].RewardID)
}
