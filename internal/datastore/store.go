package datastore

import (
	"context"
	"time"

	"loyalt/internal/interfaces"
	"loyalt/internal/models"

	"github.com/uptrace/bun"
)

// PostgresStore adapts the package's query functions to interfaces.Store.
type PostgresStore struct {
	db *bun.DB
}

var _ interfaces.Store = (*PostgresStore)(nil)

func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db}
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return FindProfileByUserID(ctx, s.db, userID)
}

func (s *PostgresStore) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return CreateProfile(ctx, s.db, profile)
}

func (s *PostgresStore) ApplyPointsChange(ctx context.Context, userID, shopID string, delta int, description string) (*models.Profile, error) {
	return ApplyPointsChange(ctx, s.db, userID, shopID, delta, description)
}

func (s *PostgresStore) GetTransactionsByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return GetTransactionsByUser(ctx, s.db, userID, limit)
}

func (s *PostgresStore) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	return GetShop(ctx, s.db, shopID)
}

func (s *PostgresStore) ListShops(ctx context.Context) ([]models.Shop, error) {
	return ListShops(ctx, s.db)
}

func (s *PostgresStore) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	return GetReward(ctx, s.db, rewardID)
}

func (s *PostgresStore) ListActiveRewards(ctx context.Context, now time.Time) ([]models.Reward, error) {
	return ListActiveRewards(ctx, s.db, now)
}

func (s *PostgresStore) GetUserReward(ctx context.Context, userID, rewardID string) (*models.UserReward, error) {
	return GetUserReward(ctx, s.db, userID, rewardID)
}

func (s *PostgresStore) ListUserRewards(ctx context.Context, userID string) ([]models.UserReward, error) {
	return ListUserRewards(ctx, s.db, userID)
}

func (s *PostgresStore) InsertUserReward(ctx context.Context, userReward *models.UserReward) error {
	return InsertUserReward(ctx, s.db, userReward)
}

func (s *PostgresStore) RedeemUserReward(ctx context.Context, userID, rewardID string, at time.Time) error {
	return RedeemUserReward(ctx, s.db, userID, rewardID, at)
}

func (s *PostgresStore) GetQRCode(ctx context.Context, codeID string) (*models.QRCode, error) {
	return GetQRCode(ctx, s.db, codeID)
}

func (s *PostgresStore) ConsumeQRCode(ctx context.Context, codeID string, at time.Time) error {
	return ConsumeQRCode(ctx, s.db, codeID, at)
}

func (s *PostgresStore) GetConfig(ctx context.Context, key string) (*models.Config, error) {
	return GetConfigByKey(ctx, s.db, key)
}
