package services

import (
	"context"
	"testing"

	"loyalt/internal/models"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAddPoints(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 0)
	seedShop(store, "shop-1", "Brew & Bean")

	ledger, err := do.Invoke[*ServiceLedger](injector)
	require.NoError(t, err)

	profile, err := ledger.AddPoints(ctx, "user-1", "shop-1", 15, "Earned 15 points from Brew & Bean")
	require.NoError(t, err)
	assert.Equal(t, 15, profile.Points)
	assert.Equal(t, models.MembershipStandard, profile.MembershipLevel)

	transactions, err := store.GetTransactionsByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, 15, transactions[0].Points)
	assert.Equal(t, models.TransactionEarn, transactions[0].Type)
	assert.Equal(t, "shop-1", transactions[0].ShopID)
}

func TestLedgerAddPointsUnknownUser(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedShop(store, "shop-1", "Brew & Bean")

	ledger, err := do.Invoke[*ServiceLedger](injector)
	require.NoError(t, err)

	_, err = ledger.AddPoints(ctx, "ghost", "shop-1", 15, "")
	assert.Error(t, err)
}

func TestLedgerDeductBelowZero(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 40)
	seedShop(store, "shop-1", "Brew & Bean")

	ledger, err := do.Invoke[*ServiceLedger](injector)
	require.NoError(t, err)

	_, err = ledger.AddPoints(ctx, "user-1", "shop-1", -50, "too much")
	require.Error(t, err)

	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 40, profile.Points)

	transactions, err := store.GetTransactionsByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestLedgerTierTransitions(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 240)
	seedShop(store, "shop-1", "Brew & Bean")

	ledger, err := do.Invoke[*ServiceLedger](injector)
	require.NoError(t, err)

	profile, err := ledger.AddPoints(ctx, "user-1", "shop-1", 10, "")
	require.NoError(t, err)
	assert.Equal(t, 250, profile.Points)
	assert.Equal(t, models.MembershipSilver, profile.MembershipLevel)

	profile, err = ledger.AddPoints(ctx, "user-1", "shop-1", 750, "")
	require.NoError(t, err)
	assert.Equal(t, models.MembershipPlatinum, profile.MembershipLevel)

	// spending drops the level back down
	profile, err = ledger.AddPoints(ctx, "user-1", "shop-1", -900, "")
	require.NoError(t, err)
	assert.Equal(t, 100, profile.Points)
	assert.Equal(t, models.MembershipStandard, profile.MembershipLevel)
}
