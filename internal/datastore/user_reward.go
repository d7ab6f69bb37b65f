package datastore

import (
	"context"
	"database/sql"
	"time"

	"loyalt/internal/interfaces"
	"loyalt/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func CreateTableUserReward(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserReward)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserReward)(nil)).Index("index_user_reward_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	// one acquisition record per (user, reward)
	_, err = db.NewCreateIndex().Model((*models.UserReward)(nil)).Index("index_user_reward_user_id_reward_id").IfNotExists().Unique().Column("user_id", "reward_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetUserReward(ctx context.Context, db *bun.DB, userID, rewardID string) (*models.UserReward, error) {
	var userReward models.UserReward
	err := db.NewSelect().Model(&userReward).
		Where("user_id = ? AND reward_id = ?", userID, rewardID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &userReward, nil
}

func ListUserRewards(ctx context.Context, db *bun.DB, userID string) ([]models.UserReward, error) {
	var userRewards []models.UserReward
	err := db.NewSelect().Model(&userRewards).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return userRewards, nil
}

func InsertUserReward(ctx context.Context, db *bun.DB, userReward *models.UserReward) error {
	if userReward.ID == "" {
		userReward.ID = uuid.NewString()
	}
	_, err := db.NewInsert().Model(userReward).Exec(ctx)
	return err
}

// RedeemUserReward flips redeemed exactly once. The redeemed=false guard
// makes the transition idempotence-safe under concurrent presentations of
// the same reward.
func RedeemUserReward(ctx context.Context, db *bun.DB, userID, rewardID string, at time.Time) error {
	res, err := db.NewUpdate().Model((*models.UserReward)(nil)).
		Set("redeemed = ?", true).
		Set("redeemed_date = ?", at).
		Where("user_id = ? AND reward_id = ?", userID, rewardID).
		Where("redeemed = ?", false).
		Exec(ctx)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	if _, err := GetUserReward(ctx, db, userID, rewardID); err != nil {
		return sql.ErrNoRows
	}
	return interfaces.ErrAlreadyRedeemed
}
