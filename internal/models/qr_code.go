package models

import (
	"time"

	"github.com/uptrace/bun"
)

// QRCode is a vendor-generated code record. The payload handed to the
// vendor is derived from it, the record itself never leaves the backend.
type QRCode struct {
	bun.BaseModel `bun:"table:qr_code"`
	ID            string     `bun:"id,pk" json:"id"`
	ShopID        string     `bun:"shop_id" json:"shop_id"`
	PointsValue   int        `bun:"points_value" json:"points_value"`
	Description   string     `bun:"description" json:"description"`
	ExpiryDate    time.Time  `bun:"expiry_date" json:"expiry_date"`
	IsSingleUse   bool       `bun:"is_single_use" json:"is_single_use"`
	Used          bool       `bun:"used" json:"used"`
	UsedAt        *time.Time `bun:"used_at" json:"used_at"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
}
