package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"loyalt/internal/models"
	"loyalt/internal/pkg/qr"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleScanPoints(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedShop(store, "shop-1", "Brew & Bean")

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	result, err := scan.HandleScan(ctx, &models.AuthUser{ID: "user-1", Name: "Tester"}, "points:shop-1:10:qr-1")
	require.NoError(t, err)
	assert.Equal(t, ScanTypePoints, result.Type)
	assert.Equal(t, "You earned 10 points!", result.Message)
	assert.Equal(t, 10, result.Points)
	assert.Equal(t, 10, result.TotalPoints)
	assert.Equal(t, models.MembershipStandard, result.MembershipLevel)

	// the profile was bootstrapped on first scan
	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, profile.Points)

	transactions, err := store.GetTransactionsByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Earned 10 points from Brew & Bean", transactions[0].Description)
}

func TestHandleScanVendorJSONPayload(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedShop(store, "shop-1", "Brew & Bean")

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	payload := `{"type":"loyalt-points","shopId":"shop-1","points":25,"description":"Checkout code","timestamp":"2026-01-02T03:04:05Z"}`
	result, err := scan.HandleScan(ctx, &models.AuthUser{ID: "user-1"}, payload)
	require.NoError(t, err)
	assert.Equal(t, 25, result.Points)

	transactions, err := store.GetTransactionsByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Checkout code", transactions[0].Description)
}

func TestHandleScanTierUpgrade(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 240)
	seedShop(store, "shop-1", "Brew & Bean")

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	result, err := scan.HandleScan(ctx, &models.AuthUser{ID: "user-1"}, "points:shop-1:10:qr-1")
	require.NoError(t, err)
	assert.Equal(t, 250, result.TotalPoints)
	assert.Equal(t, models.MembershipSilver, result.MembershipLevel)
}

func TestHandleScanReward(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedProfile(t, store, "user-1", 100)
	seedShop(store, "shop-1", "Brew & Bean")
	seedReward(store, "reward-9", "shop-1", "Free Espresso", 80)

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	result, err := scan.HandleScan(ctx, &models.AuthUser{ID: "user-1"}, "reward:shop-1:0:reward-9")
	require.NoError(t, err)
	assert.Equal(t, ScanTypeReward, result.Type)
	assert.Equal(t, "Reward redeemed successfully!", result.Message)
	require.NotNil(t, result.Reward)
	assert.Equal(t, "reward-9", result.Reward.ID)

	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 20, profile.Points)
}

func TestHandleScanSingleUseCode(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedShop(store, "shop-1", "Brew & Bean")
	store.AddQRCode(&models.QRCode{
		ID:          "code-1",
		ShopID:      "shop-1",
		PointsValue: 10,
		IsSingleUse: true,
		ExpiryDate:  time.Now().AddDate(0, 1, 0),
	})

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	payload, err := qr.EncodeVendorJSON("shop-1", "code-1", 10, "Promo", time.Now())
	require.NoError(t, err)

	user := &models.AuthUser{ID: "user-1"}
	result, err := scan.HandleScan(ctx, user, payload)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Points)

	// the second scan of a single-use code is rejected without awarding
	_, err = scan.HandleScan(ctx, user, payload)
	require.Error(t, err)

	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, profile.Points)

	transactions, err := store.GetTransactionsByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)

	code, err := store.GetQRCode(ctx, "code-1")
	require.NoError(t, err)
	assert.True(t, code.Used)
	require.NotNil(t, code.UsedAt)
}

func TestHandleScanMultiUseCode(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedShop(store, "shop-1", "Brew & Bean")
	store.AddQRCode(&models.QRCode{
		ID:          "code-2",
		ShopID:      "shop-1",
		PointsValue: 5,
		IsSingleUse: false,
		ExpiryDate:  time.Now().AddDate(0, 1, 0),
	})

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	user := &models.AuthUser{ID: "user-1"}
	for i := 0; i < 3; i++ {
		_, err := scan.HandleScan(ctx, user, "points:shop-1:5:code-2")
		require.NoError(t, err)
	}

	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 15, profile.Points)
}

func TestHandleScanExpiredStoredCode(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedShop(store, "shop-1", "Brew & Bean")
	store.AddQRCode(&models.QRCode{
		ID:          "code-3",
		ShopID:      "shop-1",
		PointsValue: 10,
		IsSingleUse: true,
		ExpiryDate:  time.Now().AddDate(0, 0, -1),
	})

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	_, err = scan.HandleScan(ctx, &models.AuthUser{ID: "user-1"}, "points:shop-1:10:code-3")
	require.Error(t, err)

	transactions, err := store.GetTransactionsByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestHandleScanMalformedPayload(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedShop(store, "shop-1", "Brew & Bean")

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	cases := []string{
		"",
		"points:shop-1",
		"mystery:shop-1:10:qr-1",
		"points:shop-1:-5:qr-1",
	}
	for _, raw := range cases {
		_, err := scan.HandleScan(ctx, &models.AuthUser{ID: "user-1"}, raw)
		assert.Error(t, err, raw)
	}

	transactions, err := store.GetTransactionsByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestHandleScanUnknownShop(t *testing.T) {
	injector, _ := newTestContainer(t)
	ctx := context.Background()

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	_, err = scan.HandleScan(ctx, &models.AuthUser{ID: "user-1"}, "points:shop-missing:10:qr-1")
	assert.Error(t, err)
}

func TestHandleScanRequiresUser(t *testing.T) {
	injector, _ := newTestContainer(t)

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	_, err = scan.HandleScan(context.Background(), nil, "points:shop-1:10:qr-1")
	assert.Error(t, err)
}

func TestRecentActivityBounded(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedShop(store, "shop-1", "Brew & Bean")

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	user := &models.AuthUser{ID: "user-1"}
	for i := 0; i < ACTIVITY_LOG_LIMIT+5; i++ {
		_, err := scan.HandleScan(ctx, user, fmt.Sprintf("points:shop-1:%d:qr-%d", i+1, i))
		require.NoError(t, err)
	}

	entries, err := scan.RecentActivity(ctx, user)
	require.NoError(t, err)
	require.Len(t, entries, ACTIVITY_LOG_LIMIT)

	// newest first, oldest entries dropped
	assert.Equal(t, ACTIVITY_LOG_LIMIT+5, entries[0].Points)
	assert.Equal(t, 6, entries[len(entries)-1].Points)
}

func TestRecentActivityConfiguredLimit(t *testing.T) {
	injector, store := newTestContainer(t)
	ctx := context.Background()

	seedShop(store, "shop-1", "Brew & Bean")
	store.SetConfig(CONFIG_ACTIVITY_LOG_LIMIT, "5")

	scan, err := do.Invoke[*ServiceScan](injector)
	require.NoError(t, err)

	user := &models.AuthUser{ID: "user-1"}
	for i := 0; i < 10; i++ {
		_, err := scan.HandleScan(ctx, user, fmt.Sprintf("points:shop-1:%d:qr-%d", i+1, i))
		require.NoError(t, err)
	}

	entries, err := scan.RecentActivity(ctx, user)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
