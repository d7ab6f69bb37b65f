package datastore

import (
	"context"
	"time"

	"loyalt/internal/interfaces"
	"loyalt/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func CreateTableQRCode(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.QRCode)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.QRCode)(nil)).Index("index_qr_code_shop_id").IfNotExists().Column("shop_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertQRCode(ctx context.Context, db *bun.DB, code *models.QRCode) error {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	_, err := db.NewInsert().Model(code).Exec(ctx)
	return err
}

func GetQRCode(ctx context.Context, db *bun.DB, codeID string) (*models.QRCode, error) {
	var code models.QRCode
	err := db.NewSelect().Model(&code).Where("id = ?", codeID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func ConsumeQRCode(ctx context.Context, db *bun.DB, codeID string, at time.Time) error {
	res, err := db.NewUpdate().
		Model((*models.QRCode)(nil)).
		Set("used = ?", true).
		Set("used_at = ?", at).
		Where("id = ?", codeID).
		Where("used = ?", false).
		Exec(ctx)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := GetQRCode(ctx, db, codeID); err != nil {
			return err
		}
		return interfaces.ErrCodeAlreadyUsed
	}

	return nil
}

func ListQRCodesByShop(ctx context.Context, db *bun.DB, shopID string) ([]models.QRCode, error) {
	var codes []models.QRCode
	err := db.NewSelect().Model(&codes).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return codes, nil
}
