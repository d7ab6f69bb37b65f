package datastore

import (
	"context"
	"time"

	"loyalt/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func CreateTableReward(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Reward)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Reward)(nil)).Index("index_reward_shop_id").IfNotExists().Column("shop_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetReward(ctx context.Context, db *bun.DB, rewardID string) (*models.Reward, error) {
	var reward models.Reward
	err := db.NewSelect().Model(&reward).Where("id = ?", rewardID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func ListActiveRewards(ctx context.Context, db *bun.DB, now time.Time) ([]models.Reward, error) {
	var rewards []models.Reward
	err := db.NewSelect().Model(&rewards).
		Where("is_active = ?", true).
		Where("expiry_date >= ?", now).
		Order("points_required ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

func ListRewardsByShop(ctx context.Context, db *bun.DB, shopID string) ([]models.Reward, error) {
	var rewards []models.Reward
	err := db.NewSelect().Model(&rewards).Where("shop_id = ?", shopID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

func CreateReward(ctx context.Context, db *bun.DB, reward *models.Reward) error {
	if reward.ID == "" {
		reward.ID = uuid.NewString()
	}
	_, err := db.NewInsert().Model(reward).Exec(ctx)
	return err
}
