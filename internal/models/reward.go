package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Reward struct {
	bun.BaseModel  `bun:"table:reward"`
	ID             string    `bun:"id,pk" json:"id"`
	ShopID         string    `bun:"shop_id" json:"shop_id"`
	Title          string    `bun:"title" json:"title"`
	Description    string    `bun:"description" json:"description"`
	PointsRequired int       `bun:"points_required" json:"points_required"`
	ExpiryDate     time.Time `bun:"expiry_date" json:"expiry_date"`
	IsActive       bool      `bun:"is_active" json:"is_active"`
	ColorScheme    string    `bun:"color_scheme" json:"color_scheme"`
	CreatedAt      time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// RedemptionResult is the user-facing outcome of a reward redemption.
type RedemptionResult struct {
	Reward          *Reward `json:"reward"`
	PointsSpent     int     `json:"points_spent"`
	PointsRemaining int     `json:"points_remaining"`
}
