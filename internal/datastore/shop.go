package datastore

import (
	"context"

	"loyalt/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func CreateTableShop(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Shop)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Shop)(nil)).Index("index_shop_api_key").IfNotExists().Unique().Column("api_key").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Shop)(nil)).Index("index_shop_owner_id").IfNotExists().Column("owner_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetShop(ctx context.Context, db *bun.DB, shopID string) (*models.Shop, error) {
	var shop models.Shop
	err := db.NewSelect().Model(&shop).Where("id = ?", shopID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func ListShops(ctx context.Context, db *bun.DB) ([]models.Shop, error) {
	var shops []models.Shop
	err := db.NewSelect().Model(&shops).Order("name ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return shops, nil
}

func FindShopByAPIKey(ctx context.Context, db *bun.DB, apiKey string) (*models.Shop, error) {
	var shop models.Shop
	err := db.NewSelect().Model(&shop).Where("api_key = ?", apiKey).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func CreateShop(ctx context.Context, db *bun.DB, shop *models.Shop) error {
	if shop.ID == "" {
		shop.ID = uuid.NewString()
	}
	_, err := db.NewInsert().Model(shop).Exec(ctx)
	return err
}
