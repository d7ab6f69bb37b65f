package datastore

import (
	"context"
	"time"

	"loyalt/internal/interfaces"
	"loyalt/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func CreateTableProfile(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Profile)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Profile)(nil)).Index("index_profile_user_id").IfNotExists().Unique().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindProfileByUserID(ctx context.Context, db bun.IDB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.NewSelect().Model(&profile).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func CreateProfile(ctx context.Context, db *bun.DB, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	_, err := db.NewInsert().Model(profile).Exec(ctx)
	return err
}

// ApplyPointsChange runs the check-then-update sequence inside one database
// transaction with the profile row locked, so concurrent redemptions cannot
// race the balance check and no transaction row is ever orphaned.
func ApplyPointsChange(ctx context.Context, db *bun.DB, userID, shopID string, delta int, description string) (*models.Profile, error) {
	var profile models.Profile

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(&profile).Where("user_id = ?", userID).For("UPDATE").Scan(ctx); err != nil {
			return err
		}

		newPoints := profile.Points + delta
		if newPoints < 0 {
			return interfaces.ErrInsufficientPoints
		}

		kind := models.TransactionRedeem
		if delta > 0 {
			kind = models.TransactionEarn
		}

		trx := &models.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			ShopID:      shopID,
			Points:      delta,
			Type:        kind,
			Description: description,
			CreatedAt:   time.Now(),
		}
		if _, err := tx.NewInsert().Model(trx).Exec(ctx); err != nil {
			return err
		}

		profile.Points = newPoints
		profile.MembershipLevel = models.TierForPoints(newPoints)
		profile.UpdatedAt = time.Now()

		_, err := tx.NewUpdate().Model(&profile).
			Column("points", "membership_level", "updated_at").
			Where("user_id = ?", userID).
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
