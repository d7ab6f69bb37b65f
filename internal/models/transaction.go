package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	TransactionEarn   = "earn"
	TransactionRedeem = "redeem"
)

// Transaction is an append-only record of a points change. Rows are never
// updated or deleted.
type Transaction struct {
	bun.BaseModel `bun:"table:transaction"`
	ID            string    `bun:"id,pk" json:"id"`
	UserID        string    `bun:"user_id" json:"user_id"`
	ShopID        string    `bun:"shop_id" json:"shop_id"`
	Points        int       `bun:"points" json:"points"`
	Type          string    `bun:"type" json:"type"`
	Description   string    `bun:"description" json:"description"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// ShopStats aggregates transactions for the vendor dashboard.
type ShopStats struct {
	ShopID          string `bun:"shop_id" json:"shop_id"`
	ScanCount       int    `bun:"scan_count" json:"scan_count"`
	PointsIssued    int    `bun:"points_issued" json:"points_issued"`
	PointsRedeemed  int    `bun:"points_redeemed" json:"points_redeemed"`
	UniqueCustomers int    `bun:"unique_customers" json:"unique_customers"`
}
