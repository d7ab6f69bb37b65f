package interfaces

import (
	"context"
	"errors"
	"time"

	"loyalt/internal/models"

	"github.com/go-redis/redis_rate/v10"
)

// Store errors shared by every implementation. Missing rows are reported
// as sql.ErrNoRows, matching bun.
var (
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrAlreadyRedeemed    = errors.New("reward already redeemed")
	ErrCodeAlreadyUsed    = errors.New("qr code already used")
)

// Store is the backing-store surface the scan workflow consumes. The
// postgres implementation lives in datastore, tests use memstore.
type Store interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	CreateProfile(ctx context.Context, profile *models.Profile) error

	// ApplyPointsChange appends a transaction and updates balance and
	// membership level in a single atomic scope. It fails with
	// ErrInsufficientPoints when the delta would push the balance
	// negative, without writing anything.
	ApplyPointsChange(ctx context.Context, userID, shopID string, delta int, description string) (*models.Profile, error)

	GetTransactionsByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error)

	GetShop(ctx context.Context, shopID string) (*models.Shop, error)
	ListShops(ctx context.Context) ([]models.Shop, error)

	GetReward(ctx context.Context, rewardID string) (*models.Reward, error)
	ListActiveRewards(ctx context.Context, now time.Time) ([]models.Reward, error)

	GetUserReward(ctx context.Context, userID, rewardID string) (*models.UserReward, error)
	ListUserRewards(ctx context.Context, userID string) ([]models.UserReward, error)
	InsertUserReward(ctx context.Context, userReward *models.UserReward) error

	// RedeemUserReward flips redeemed to true exactly once; a second
	// call fails with ErrAlreadyRedeemed.
	RedeemUserReward(ctx context.Context, userID, rewardID string, at time.Time) error

	GetQRCode(ctx context.Context, codeID string) (*models.QRCode, error)

	// ConsumeQRCode marks a code used exactly once; a second call fails
	// with ErrCodeAlreadyUsed.
	ConsumeQRCode(ctx context.Context, codeID string, at time.Time) error

	GetConfig(ctx context.Context, key string) (*models.Config, error)
}

// Locker serializes multi-step workflows per key. Production uses redsync,
// tests an in-process locker.
type Locker interface {
	TryLock(key string) (release func() error, err error)
}

// ActivityLog is the bounded device-scoped recent-scan log.
type ActivityLog interface {
	Append(ctx context.Context, userID string, entry *models.ScanActivity) error
	Recent(ctx context.Context, userID string, limit int) ([]*models.ScanActivity, error)
}

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}
