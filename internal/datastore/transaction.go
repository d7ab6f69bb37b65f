package datastore

import (
	"context"
	"time"

	"loyalt/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableTransaction(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Transaction)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Transaction)(nil)).Index("index_transaction_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Transaction)(nil)).Index("index_transaction_shop_id").IfNotExists().Column("shop_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Transaction)(nil)).Index("index_transaction_created_at").IfNotExists().Column("created_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetTransactionsByUser(ctx context.Context, db *bun.DB, userID string, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := db.NewSelect().Model(&transactions).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetShopStats aggregates a shop's transactions since a point in time for
// the vendor dashboard.
func GetShopStats(ctx context.Context, db *bun.DB, shopID string, from time.Time) (*models.ShopStats, error) {
	var stats models.ShopStats
	err := db.NewSelect().
		ColumnExpr("shop_id").
		ColumnExpr("COUNT(*) AS scan_count").
		ColumnExpr("COALESCE(SUM(CASE WHEN points > 0 THEN points ELSE 0 END), 0) AS points_issued").
		ColumnExpr("COALESCE(SUM(CASE WHEN points < 0 THEN -points ELSE 0 END), 0) AS points_redeemed").
		ColumnExpr("COUNT(DISTINCT user_id) AS unique_customers").
		TableExpr("transaction").
		Where("shop_id = ?", shopID).
		Where("created_at >= ?", from).
		GroupExpr("shop_id").
		Scan(ctx, &stats)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
